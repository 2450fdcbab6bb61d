package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Backends selectable with the backend key.
const (
	BackendHeadless = "headless"
	BackendGLFW     = "glfw"
)

// DefaultBuildCommand builds src/main.zig into bin/main.wasm with the two exports the
// host calls.
var DefaultBuildCommand = []string{
	"zig", "build-exe", "src/main.zig",
	"-target", "wasm32-freestanding",
	"-fno-entry",
	"--export=onInit",
	"--export=onAnimationFrame",
	"-femit-bin=bin/main.wasm",
}

// HostConfig is the configuration of the glhost binary.
type HostConfig struct {
	LogLevel string        `mapstructure:"log_level"`
	Backend  string        `mapstructure:"backend"`
	Module   ModuleConfig  `mapstructure:"module"`
	Exports  ExportsConfig `mapstructure:"exports"`
	Canvas   CanvasConfig  `mapstructure:"canvas"`
	Frames   FramesConfig  `mapstructure:"frames"`
	Wasm     WasmConfig    `mapstructure:"wasm"`
	Dev      DevConfig     `mapstructure:"dev"`
}

// ModuleConfig locates the guest module. URL wins over Path; a manifest overrides both.
type ModuleConfig struct {
	Path     string `mapstructure:"path"`
	URL      string `mapstructure:"url"`
	Manifest string `mapstructure:"manifest"`
}

// ExportsConfig names the guest exports. Init and Frame are tried in order.
type ExportsConfig struct {
	Init   []string `mapstructure:"init"`
	Frame  []string `mapstructure:"frame"`
	Exit   string   `mapstructure:"exit"`
	Resize string   `mapstructure:"resize"`
}

// CanvasConfig sizes the drawing surface.
type CanvasConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// FramesConfig paces the headless frame loop.
type FramesConfig struct {
	// Frames per second. Zero runs frames back to back.
	Rate float64 `mapstructure:"rate"`
	// Stop after this many frames. Zero runs until interrupted.
	Max uint64 `mapstructure:"max"`
}

// WasmConfig holds Wasm runtime configuration.
type WasmConfig struct {
	// Memory limit per module (in pages, 64KB each).
	MemoryPages uint32 `mapstructure:"memory_pages"`
	// Keep debug info for guest stack traces.
	Debug bool `mapstructure:"debug"`
	// Compilation cache directory. Empty keeps the cache in memory.
	CacheDir string `mapstructure:"cache_dir"`
	// Provide wasi_snapshot_preview1 to the guest.
	WASI bool `mapstructure:"wasi"`
}

// DevConfig drives the rebuild-on-change loop.
type DevConfig struct {
	Watch        bool     `mapstructure:"watch"`
	SourceDir    string   `mapstructure:"source_dir"`
	Extension    string   `mapstructure:"extension"`
	BuildDir     string   `mapstructure:"build_dir"`
	BuildCommand []string `mapstructure:"build_command"`
}

// LoadHostConfig reads defaults, then the optional file at configPath, then GLHOST_*
// environment variables (GLHOST_CANVAS_WIDTH overrides canvas.width).
func LoadHostConfig(configPath string) (*HostConfig, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("backend", BackendHeadless)

	v.SetDefault("module.path", "bin/main.wasm")
	v.SetDefault("module.url", "")
	v.SetDefault("module.manifest", "")

	v.SetDefault("exports.init", []string{"onInit", "enter"})
	v.SetDefault("exports.frame", []string{"onAnimationFrame", "step"})
	v.SetDefault("exports.exit", "exit")
	v.SetDefault("exports.resize", "")

	v.SetDefault("canvas.width", 800)
	v.SetDefault("canvas.height", 600)
	v.SetDefault("canvas.title", "wasmgl-host")

	v.SetDefault("frames.rate", 60)
	v.SetDefault("frames.max", 0)

	// Wasm defaults
	v.SetDefault("wasm.memory_pages", 256) // 16MB
	v.SetDefault("wasm.debug", false)
	v.SetDefault("wasm.cache_dir", "")
	v.SetDefault("wasm.wasi", false)

	v.SetDefault("dev.watch", false)
	v.SetDefault("dev.source_dir", "src")
	v.SetDefault("dev.extension", ".zig")
	v.SetDefault("dev.build_dir", ".")
	v.SetDefault("dev.build_command", DefaultBuildCommand)

	v.SetEnvPrefix("GLHOST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg HostConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail later with a less useful error.
func (c *HostConfig) Validate() error {
	switch c.Backend {
	case BackendHeadless, BackendGLFW:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendHeadless, BackendGLFW, c.Backend)
	}
	if c.Module.Path == "" && c.Module.URL == "" && c.Module.Manifest == "" {
		return fmt.Errorf("one of module.path, module.url or module.manifest is required")
	}
	if len(c.Exports.Init) == 0 || len(c.Exports.Frame) == 0 {
		return fmt.Errorf("exports.init and exports.frame must name at least one export")
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Frames.Rate < 0 {
		return fmt.Errorf("frames.rate must not be negative, got %v", c.Frames.Rate)
	}
	if c.Wasm.MemoryPages > 65536 {
		return fmt.Errorf("wasm.memory_pages %d exceeds the 65536 page limit", c.Wasm.MemoryPages)
	}
	if c.Dev.Watch && len(c.Dev.BuildCommand) == 0 {
		return fmt.Errorf("dev.build_command is required when dev.watch is set")
	}
	return nil
}
