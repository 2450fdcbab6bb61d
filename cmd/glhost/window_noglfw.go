//go:build !glfw

package main

import (
	"errors"

	"github.com/woxQAQ/wasmgl-host/internal/config"
	"github.com/woxQAQ/wasmgl-host/internal/driver"
)

func newGLFWWindow(*config.HostConfig) (driver.Window, error) {
	return nil, errors.New("glhost was built without the glfw tag")
}
