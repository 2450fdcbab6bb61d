package wasm

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
)

// Runtime manages the wazero runtime lifecycle.
// One Runtime backs every module instance of the process.
type Runtime struct {
	// wazero runtime
	runtime wazero.Runtime

	// On-disk compilation cache, nil when CacheDir is empty.
	cache wazero.CompilationCache

	// Compiled module cache (key: module name -> value: *CompiledModule)
	modules sync.Map

	// Active module instances (for cleanup on shutdown)
	// key: instance ID -> value: api.Module
	instances sync.Map

	// Host namespaces, instantiated on first use.
	hostMu      sync.Mutex
	hostModules []HostModule
	hostReady   bool

	config *RuntimeConfig
	logger *zap.Logger

	closeOnce sync.Once
	closed    chan struct{}
}

// RuntimeConfig holds runtime configuration.
type RuntimeConfig struct {
	// Memory limit for guest modules (in pages, 64KB each). Zero keeps the wazero default.
	MemoryPages uint32

	// Keep DWARF-based debug info for guest stack traces.
	DebugEnabled bool

	// Compilation cache directory (for persistent caching)
	// If empty, uses in-memory caching only
	CacheDir string

	// Instantiate wasi_snapshot_preview1 for modules built against WASI.
	EnableWASI bool
}

// CompiledModule wraps a wazero.CompiledModule with metadata.
type CompiledModule struct {
	Module wazero.CompiledModule

	Name      string
	Source    string
	SizeBytes int64

	CompiledAt int64
}

// NewRuntime creates and initializes a new wazero runtime.
func NewRuntime(ctx context.Context, logger *zap.Logger, config *RuntimeConfig) (*Runtime, error) {
	if config == nil {
		config = DefaultRuntimeConfig()
	}

	rc := wazero.NewRuntimeConfig().WithDebugInfoEnabled(config.DebugEnabled)
	if config.MemoryPages > 0 {
		if config.MemoryPages > 65536 {
			return nil, fmt.Errorf("memory_pages %d exceeds the 65536 page limit", config.MemoryPages)
		}
		rc = rc.WithMemoryLimitPages(config.MemoryPages)
	}

	var cache wazero.CompilationCache
	if config.CacheDir != "" {
		var err error
		cache, err = wazero.NewCompilationCacheWithDir(config.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open compilation cache %s: %w", config.CacheDir, err)
		}
		rc = rc.WithCompilationCache(cache)
	}

	r := wazero.NewRuntimeWithConfig(ctx, rc)

	if config.EnableWASI {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
			_ = r.Close(ctx)
			return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
		}
	}

	runtime := &Runtime{
		runtime: r,
		cache:   cache,
		config:  config,
		logger:  logger.With(zap.String("component", "wasm-runtime")),
		closed:  make(chan struct{}),
	}

	logger.Info("Wasm runtime initialized",
		zap.Uint32("memory_pages", config.MemoryPages),
		zap.Bool("debug_enabled", config.DebugEnabled),
		zap.String("cache_dir", config.CacheDir),
		zap.Bool("wasi", config.EnableWASI),
	)

	return runtime, nil
}

// DefaultRuntimeConfig returns sensible defaults.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		MemoryPages:  256, // 16MB
		DebugEnabled: false,
		CacheDir:     "",
		EnableWASI:   false,
	}
}

// RegisterHostModule adds a namespace that guest modules can import.
// All host modules must be registered before the first instantiation.
func (r *Runtime) RegisterHostModule(m HostModule) error {
	r.hostMu.Lock()
	defer r.hostMu.Unlock()

	if r.hostReady {
		return fmt.Errorf("host module '%s' registered after instantiation", m.Name())
	}
	for _, existing := range r.hostModules {
		if existing.Name() == m.Name() {
			return fmt.Errorf("host module '%s' already registered", m.Name())
		}
	}
	r.hostModules = append(r.hostModules, m)
	return nil
}

// HostModuleNames returns the registered namespaces in registration order.
func (r *Runtime) HostModuleNames() []string {
	r.hostMu.Lock()
	defer r.hostMu.Unlock()

	names := make([]string, len(r.hostModules))
	for i, m := range r.hostModules {
		names[i] = m.Name()
	}
	return names
}

// instantiateHostModules builds and instantiates every registered namespace once.
func (r *Runtime) instantiateHostModules(ctx context.Context) error {
	r.hostMu.Lock()
	defer r.hostMu.Unlock()

	if r.hostReady {
		return nil
	}
	for _, m := range r.hostModules {
		builder := r.runtime.NewHostModuleBuilder(m.Name())
		m.Export(builder)
		if _, err := builder.Instantiate(ctx); err != nil {
			return fmt.Errorf("failed to instantiate host module '%s': %w", m.Name(), err)
		}
		r.logger.Debug("Host module instantiated", zap.String("namespace", m.Name()))
	}
	r.hostReady = true
	return nil
}

// Close gracefully shuts down the runtime.
// Safe to call multiple times (idempotent).
func (r *Runtime) Close(ctx context.Context) error {
	var err error
	r.closeOnce.Do(func() {
		r.logger.Info("Shutting down Wasm runtime")

		r.instances.Range(func(key, value interface{}) bool {
			if inst, ok := value.(interface{ Close(context.Context) error }); ok {
				if closeErr := inst.Close(ctx); closeErr != nil {
					r.logger.Warn("Failed to close instance",
						zap.String("instance_id", key.(string)),
						zap.Error(closeErr),
					)
				}
			}
			return true
		})

		// Close the runtime (closes compiled modules)
		err = r.runtime.Close(ctx)
		if r.cache != nil {
			if cacheErr := r.cache.Close(ctx); cacheErr != nil && err == nil {
				err = cacheErr
			}
		}

		close(r.closed)
		r.logger.Info("Wasm runtime shutdown complete")
	})

	return err
}

// GetCompiledModule retrieves a compiled module from cache.
func (r *Runtime) GetCompiledModule(name string) (*CompiledModule, bool) {
	if val, ok := r.modules.Load(name); ok {
		if mod, ok := val.(*CompiledModule); ok {
			return mod, true
		}
	}
	return nil, false
}

// StoreCompiledModule stores a compiled module in cache.
func (r *Runtime) StoreCompiledModule(module *CompiledModule) {
	r.modules.Store(module.Name, module)
}

// EvictCompiledModule drops a compiled module from cache so the next load recompiles it.
// Running instances of the module are unaffected.
func (r *Runtime) EvictCompiledModule(ctx context.Context, name string) bool {
	val, ok := r.modules.LoadAndDelete(name)
	if !ok {
		return false
	}
	if mod, ok := val.(*CompiledModule); ok {
		if err := mod.Module.Close(ctx); err != nil {
			r.logger.Warn("Failed to close compiled module",
				zap.String("module", name),
				zap.Error(err),
			)
		}
	}
	r.logger.Debug("Compiled module evicted", zap.String("module", name))
	return true
}

// GetInstance retrieves an active instance.
func (r *Runtime) GetInstance(instanceID string) (interface{}, bool) {
	return r.instances.Load(instanceID)
}

// StoreInstance stores an active instance.
func (r *Runtime) StoreInstance(instanceID string, instance interface{}) {
	r.instances.Store(instanceID, instance)
}

// DeleteInstance removes an instance from tracking.
func (r *Runtime) DeleteInstance(instanceID string) {
	r.instances.Delete(instanceID)
}

// IsClosed returns whether the runtime has been closed.
func (r *Runtime) IsClosed() bool {
	select {
	case <-r.closed:
		return true
	default:
		return false
	}
}
