package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadHostConfigDefaults(t *testing.T) {
	cfg, err := LoadHostConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Default log level mismatch: got %s, want info", cfg.LogLevel)
	}

	if cfg.Backend != BackendHeadless {
		t.Errorf("Default backend mismatch: got %s, want %s", cfg.Backend, BackendHeadless)
	}

	if cfg.Module.Path != "bin/main.wasm" {
		t.Errorf("Default module path mismatch: got %s, want bin/main.wasm", cfg.Module.Path)
	}

	if want := []string{"onInit", "enter"}; !reflect.DeepEqual(cfg.Exports.Init, want) {
		t.Errorf("Default init exports mismatch: got %v, want %v", cfg.Exports.Init, want)
	}

	if want := []string{"onAnimationFrame", "step"}; !reflect.DeepEqual(cfg.Exports.Frame, want) {
		t.Errorf("Default frame exports mismatch: got %v, want %v", cfg.Exports.Frame, want)
	}

	if cfg.Exports.Resize != "" {
		t.Errorf("Resize export should be disabled by default, got %q", cfg.Exports.Resize)
	}

	if cfg.Wasm.MemoryPages != 256 {
		t.Errorf("Default memory pages mismatch: got %d, want 256", cfg.Wasm.MemoryPages)
	}

	if cfg.Frames.Rate != 60 || cfg.Frames.Max != 0 {
		t.Errorf("Default frame pacing mismatch: got %+v", cfg.Frames)
	}

	if !reflect.DeepEqual(cfg.Dev.BuildCommand, DefaultBuildCommand) {
		t.Errorf("Default build command mismatch: got %v", cfg.Dev.BuildCommand)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glhost.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadHostConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
module:
  path: out/demo.wasm
exports:
  resize: onResize
canvas:
  width: 1024
  height: 768
frames:
  max: 120
dev:
  watch: true
  build_command: [make, wasm]
`)

	cfg, err := LoadHostConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Log level mismatch: got %s, want debug", cfg.LogLevel)
	}

	if cfg.Module.Path != "out/demo.wasm" {
		t.Errorf("Module path mismatch: got %s", cfg.Module.Path)
	}

	if cfg.Exports.Resize != "onResize" {
		t.Errorf("Resize export mismatch: got %s", cfg.Exports.Resize)
	}

	if cfg.Canvas.Width != 1024 || cfg.Canvas.Height != 768 {
		t.Errorf("Canvas size mismatch: got %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}

	if cfg.Frames.Max != 120 {
		t.Errorf("Max frames mismatch: got %d", cfg.Frames.Max)
	}

	if !cfg.Dev.Watch || !reflect.DeepEqual(cfg.Dev.BuildCommand, []string{"make", "wasm"}) {
		t.Errorf("Dev config mismatch: got %+v", cfg.Dev)
	}

	// Keys absent from the file keep their defaults.
	if cfg.Canvas.Title != "wasmgl-host" {
		t.Errorf("Canvas title mismatch: got %s", cfg.Canvas.Title)
	}
}

func TestLoadHostConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "canvas:\n  width: 1024\n")
	t.Setenv("GLHOST_CANVAS_WIDTH", "640")
	t.Setenv("GLHOST_BACKEND", "glfw")
	t.Setenv("GLHOST_WASM_WASI", "true")

	cfg, err := LoadHostConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Canvas.Width != 640 {
		t.Errorf("Environment should override file: got width %d, want 640", cfg.Canvas.Width)
	}

	if cfg.Backend != BackendGLFW {
		t.Errorf("Backend mismatch: got %s", cfg.Backend)
	}

	if !cfg.Wasm.WASI {
		t.Errorf("WASI should be enabled from the environment")
	}
}

func TestLoadHostConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown backend", "backend: vulkan\n", "backend"},
		{"no module", "module:\n  path: \"\"\n", "module.path"},
		{"zero width", "canvas:\n  width: 0\n", "canvas size"},
		{"negative rate", "frames:\n  rate: -1\n", "frames.rate"},
		{"too many pages", "wasm:\n  memory_pages: 70000\n", "65536"},
		{"watch without command", "dev:\n  watch: true\n  build_command: []\n", "build_command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadHostConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadHostConfigMissingFile(t *testing.T) {
	if _, err := LoadHostConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}
