package wasm

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/woxQAQ/wasmgl-host/pkg/abi"
)

// InstanceManager creates and manages module instances.
type InstanceManager struct {
	runtime *Runtime
	logger  *zap.Logger
}

// NewInstanceManager creates a new instance manager.
func NewInstanceManager(runtime *Runtime, logger *zap.Logger) *InstanceManager {
	return &InstanceManager{
		runtime: runtime,
		logger:  logger.With(zap.String("component", "wasm-instance")),
	}
}

// InstanceConfig holds configuration for creating instances.
type InstanceConfig struct {
	// Module name to instantiate.
	ModuleName string

	// Instance ID (if empty, one is generated).
	InstanceID string

	// Stdout and Stderr receive WASI output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Instance represents an instantiated Wasm module.
type Instance struct {
	module  api.Module
	runtime *Runtime

	ID        string
	Name      string
	CreatedAt int64

	// Exported functions, resolved on first use.
	exports map[string]api.Function
}

// Instantiate creates a new instance from a compiled module.
// Registered host modules are instantiated first so the guest's imports resolve.
func (m *InstanceManager) Instantiate(ctx context.Context, config *InstanceConfig) (*Instance, error) {
	compiled, ok := m.runtime.GetCompiledModule(config.ModuleName)
	if !ok {
		return nil, &ModuleNotFoundError{ModuleName: config.ModuleName}
	}

	instanceID := config.InstanceID
	if instanceID == "" {
		instanceID = generateInstanceID()
	}

	m.logger.Info("Instantiating Wasm module",
		zap.String("module", config.ModuleName),
		zap.String("instance_id", instanceID),
	)

	if err := m.runtime.instantiateHostModules(ctx); err != nil {
		return nil, err
	}

	// Only reactor-style initialisation runs here; the frame loop drives everything else.
	moduleConfig := wazero.NewModuleConfig().
		WithName(instanceID).
		WithStartFunctions(abi.ReactorInit)
	if config.Stdout != nil {
		moduleConfig = moduleConfig.WithStdout(config.Stdout)
	}
	if config.Stderr != nil {
		moduleConfig = moduleConfig.WithStderr(config.Stderr)
	}

	module, err := m.runtime.runtime.InstantiateModule(ctx, compiled.Module, moduleConfig)
	if err != nil {
		return nil, &InstantiationError{
			ModuleName: config.ModuleName,
			InstanceID: instanceID,
			Err:        err,
		}
	}

	instance := &Instance{
		module:    module,
		runtime:   m.runtime,
		ID:        instanceID,
		Name:      config.ModuleName,
		CreatedAt: time.Now().Unix(),
		exports:   make(map[string]api.Function),
	}

	m.runtime.StoreInstance(instanceID, module)

	m.logger.Info("Module instantiated successfully",
		zap.String("instance_id", instanceID),
		zap.Int("exported_functions", len(compiled.Module.ExportedFunctions())),
	)

	return instance, nil
}

// Module returns the underlying wazero module.
func (i *Instance) Module() api.Module {
	return i.module
}

// Memory returns the exported linear memory named name.
func (i *Instance) Memory(name string) (api.Memory, error) {
	mem := i.module.ExportedMemory(name)
	if mem == nil {
		return nil, &ExportNotFoundError{ModuleName: i.Name, ExportName: name, Kind: "memory"}
	}
	return mem, nil
}

// Function returns the exported function named name.
func (i *Instance) Function(name string) (api.Function, error) {
	if fn, ok := i.exports[name]; ok {
		return fn, nil
	}
	fn := i.module.ExportedFunction(name)
	if fn == nil {
		return nil, &FunctionNotFoundError{ModuleName: i.Name, FunctionName: name}
	}
	i.exports[name] = fn
	return fn, nil
}

// HasFunction reports whether the instance exports a function named name.
func (i *Instance) HasFunction(name string) bool {
	_, err := i.Function(name)
	return err == nil
}

// FirstFunction returns the first of names the instance exports, with its name.
func (i *Instance) FirstFunction(names ...string) (api.Function, string, error) {
	for _, name := range names {
		if fn, err := i.Function(name); err == nil {
			return fn, name, nil
		}
	}
	if len(names) == 0 {
		return nil, "", fmt.Errorf("no export names given")
	}
	return nil, "", &FunctionNotFoundError{ModuleName: i.Name, FunctionName: names[0]}
}

// Close closes the instance and releases resources.
func (i *Instance) Close(ctx context.Context) error {
	i.runtime.DeleteInstance(i.ID)
	return i.module.Close(ctx)
}

var instanceSeq atomic.Uint64

// generateInstanceID generates a process-unique instance ID.
func generateInstanceID() string {
	return fmt.Sprintf("inst-%d-%d", time.Now().UnixNano(), instanceSeq.Add(1))
}
