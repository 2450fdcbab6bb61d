// Command glhost loads a WebAssembly module, gives it a WebGL surface and drives its
// animation-frame loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/woxQAQ/wasmgl-host/internal/binding"
	"github.com/woxQAQ/wasmgl-host/internal/config"
	"github.com/woxQAQ/wasmgl-host/internal/driver"
	"github.com/woxQAQ/wasmgl-host/internal/manifest"
	"github.com/woxQAQ/wasmgl-host/internal/rebuild"
	"github.com/woxQAQ/wasmgl-host/internal/wasm"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to configuration file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error); overrides log_level")
	modulePath := flag.String("module", "", "Path to the Wasm module; overrides module.path")
	backend := flag.String("backend", "", "Window backend (headless, glfw); overrides backend")
	watch := flag.Bool("watch", false, "Rebuild and reload when sources change")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadHostConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, *logLevel, *modulePath, *backend, *watch)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting glhost",
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("date", date),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Host stopped with an error", zap.Error(err))
	}

	logger.Info("Host shutdown complete")
}

// applyFlags lets explicitly set flags override the loaded configuration.
func applyFlags(cfg *config.HostConfig, logLevel, modulePath, backend string, watch bool) {
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if modulePath != "" {
		cfg.Module.Path = modulePath
		cfg.Module.URL = ""
		cfg.Module.Manifest = ""
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if watch {
		cfg.Dev.Watch = true
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// applyManifest merges a module manifest into the configuration: the manifest's Wasm
// file, its non-empty export names and its build settings win.
func applyManifest(cfg *config.HostConfig, m *manifest.Manifest) {
	cfg.Module.Path = m.WasmPath()
	cfg.Module.URL = ""

	if len(m.Exports.Init) > 0 {
		cfg.Exports.Init = m.Exports.Init
	}
	if len(m.Exports.Frame) > 0 {
		cfg.Exports.Frame = m.Exports.Frame
	}
	if m.Exports.Exit != "" {
		cfg.Exports.Exit = m.Exports.Exit
	}
	if m.Exports.Resize != "" {
		cfg.Exports.Resize = m.Exports.Resize
	}

	if m.Buildable() {
		cfg.Dev.BuildCommand = m.Build.Command
		cfg.Dev.BuildDir = m.BuildDir()
		cfg.Dev.SourceDir = m.SourceDir()
		if m.Build.Extension != "" {
			cfg.Dev.Extension = m.Build.Extension
		}
	}
}

func moduleSource(cfg *config.HostConfig) wasm.ModuleSource {
	if cfg.Module.URL != "" {
		return &wasm.HTTPModuleSource{URL: cfg.Module.URL}
	}
	return &wasm.FileModuleSource{Path: cfg.Module.Path}
}

func newWindow(cfg *config.HostConfig) (driver.Window, error) {
	if cfg.Backend == config.BackendGLFW {
		return newGLFWWindow(cfg)
	}
	return driver.NewHeadlessWindow(driver.HeadlessConfig{
		Width:     cfg.Canvas.Width,
		Height:    cfg.Canvas.Height,
		Rate:      cfg.Frames.Rate,
		MaxFrames: cfg.Frames.Max,
	}), nil
}

func run(ctx context.Context, cfg *config.HostConfig, logger *zap.Logger) error {
	if cfg.Module.Manifest != "" {
		m, err := manifest.Load(cfg.Module.Manifest)
		if err != nil {
			return err
		}
		logger.Info("Loaded manifest",
			zap.String("name", m.Name),
			zap.String("version", m.Version),
			zap.String("wasm", m.WasmPath()),
		)
		applyManifest(cfg, m)
	}

	runtime, err := wasm.NewRuntime(ctx, logger, &wasm.RuntimeConfig{
		MemoryPages:  cfg.Wasm.MemoryPages,
		DebugEnabled: cfg.Wasm.Debug,
		CacheDir:     cfg.Wasm.CacheDir,
		EnableWASI:   cfg.Wasm.WASI,
	})
	if err != nil {
		return err
	}
	defer runtime.Close(context.WithoutCancel(ctx))

	if err := binding.Register(runtime); err != nil {
		return err
	}

	window, err := newWindow(cfg)
	if err != nil {
		return err
	}
	defer window.Close()

	d := driver.New(runtime, window, driver.Config{
		Source: moduleSource(cfg),
		Exports: driver.Exports{
			Init:   cfg.Exports.Init,
			Frame:  cfg.Exports.Frame,
			Exit:   cfg.Exports.Exit,
			Resize: cfg.Exports.Resize,
		},
	}, logger)

	if cfg.Dev.Watch {
		if err := startWatcher(ctx, cfg, d, logger); err != nil {
			return err
		}
	}

	return d.Run(ctx)
}

// startWatcher builds the module if it is missing and rebuilds it on source changes.
func startWatcher(ctx context.Context, cfg *config.HostConfig, d *driver.Driver, logger *zap.Logger) error {
	if cfg.Module.URL != "" {
		return fmt.Errorf("dev.watch needs a module path, not a URL")
	}
	output, err := filepath.Abs(cfg.Module.Path)
	if err != nil {
		return err
	}

	builder, err := rebuild.NewBuilder(rebuild.BuilderConfig{
		Command: cfg.Dev.BuildCommand,
		Dir:     cfg.Dev.BuildDir,
		Output:  output,
	}, logger)
	if err != nil {
		return err
	}
	if _, err := builder.EnsureBuilt(ctx); err != nil {
		return err
	}

	watcher, err := rebuild.NewWatcher(builder, d, rebuild.WatchConfig{
		Dir:       cfg.Dev.SourceDir,
		Extension: cfg.Dev.Extension,
	}, logger)
	if err != nil {
		return err
	}
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logger.Error("Watcher stopped", zap.Error(err))
		}
	}()
	return nil
}
