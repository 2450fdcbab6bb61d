//go:build glfw

package main

import (
	"github.com/woxQAQ/wasmgl-host/internal/config"
	"github.com/woxQAQ/wasmgl-host/internal/driver"
)

func newGLFWWindow(cfg *config.HostConfig) (driver.Window, error) {
	return driver.NewGLFWWindow(driver.GLFWConfig{
		Width:  cfg.Canvas.Width,
		Height: cfg.Canvas.Height,
		Title:  cfg.Canvas.Title,
	})
}
