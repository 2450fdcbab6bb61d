package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"

	"github.com/woxQAQ/wasmgl-host/internal/binding"
	"github.com/woxQAQ/wasmgl-host/internal/wasm"
	"github.com/woxQAQ/wasmgl-host/pkg/abi"
)

// Exports names the guest exports the driver calls. Init and Frame list candidates in
// order of preference.
type Exports struct {
	Init  []string
	Frame []string

	// Exit is called once when the loop ends. Optional.
	Exit string

	// Resize is called with (width, height) after a resize. Empty disables it.
	Resize string
}

// DefaultExports returns the names used by modules built for the browser shim, followed
// by the names the development build exports.
func DefaultExports() Exports {
	return Exports{
		Init:  abi.InitExports(),
		Frame: abi.FrameExports(),
		Exit:  abi.ExitExport,
	}
}

// Config configures a Driver.
type Config struct {
	Source  wasm.ModuleSource
	Exports Exports

	// MemoryExport is the name of the exported linear memory. Defaults to "memory".
	MemoryExport string

	// SurfaceOptions are applied to every surface the driver builds.
	SurfaceOptions []binding.Option

	// Stdout and Stderr receive WASI output. Nil routes it to the logger.
	Stdout io.Writer
	Stderr io.Writer
}

// Driver runs one guest module in a window. Run owns the module; the other methods may
// be called from any goroutine.
type Driver struct {
	cfg       Config
	window    Window
	runtime   *wasm.Runtime
	loader    *wasm.ModuleLoader
	instances *wasm.InstanceManager
	logger    *zap.Logger

	reload  chan struct{}
	frames  atomic.Uint64
	loads   atomic.Uint64
	surface atomic.Pointer[binding.Surface]

	// Loop state, owned by Run.
	inst    *wasm.Instance
	callCtx context.Context
	frame   api.Function
	resize  api.Function
	exit    api.Function
}

// New creates a driver. The runtime must have the binding namespaces registered.
func New(runtime *wasm.Runtime, window Window, cfg Config, logger *zap.Logger) *Driver {
	if cfg.MemoryExport == "" {
		cfg.MemoryExport = abi.MemoryExport
	}
	if len(cfg.Exports.Init) == 0 && len(cfg.Exports.Frame) == 0 {
		cfg.Exports = DefaultExports()
	}
	return &Driver{
		cfg:       cfg,
		window:    window,
		runtime:   runtime,
		loader:    wasm.NewModuleLoader(runtime, logger),
		instances: wasm.NewInstanceManager(runtime, logger),
		logger:    logger.With(zap.String("component", "driver")),
		reload:    make(chan struct{}, 1),
	}
}

// Reload asks the loop to tear the module down and load it again from its source.
// Requests made while one is pending are merged.
func (d *Driver) Reload() {
	select {
	case d.reload <- struct{}{}:
	default:
	}
}

// Frames returns the number of frame exports called so far.
func (d *Driver) Frames() uint64 {
	return d.frames.Load()
}

// Loads returns how many times the module has been set up, counting reloads.
func (d *Driver) Loads() uint64 {
	return d.loads.Load()
}

// Surface returns the surface of the current instance, nil before the first load.
func (d *Driver) Surface() *binding.Surface {
	return d.surface.Load()
}

// Run syncs the window, loads the module, calls its init export and then drives the
// frame loop until the window closes or ctx is cancelled. Either ending returns nil.
// Setup failures and traps raised by the module are returned.
func (d *Driver) Run(ctx context.Context) error {
	w, h := Sync(d.window)
	d.logger.Info("Window synced", zap.Int("width", w), zap.Int("height", h))

	if err := d.setup(ctx); err != nil {
		return err
	}
	defer d.teardown(ctx)

	for {
		if err := d.drain(ctx); err != nil {
			return err
		}

		ts, err := d.window.NextFrame(ctx)
		if err != nil {
			if errors.Is(err, ErrWindowClosed) || ctx.Err() != nil {
				d.logger.Info("Frame loop stopped", zap.Uint64("frames", d.Frames()))
				return nil
			}
			return err
		}

		if _, err := d.frame.Call(d.callCtx, encodeTimestamp(d.frame, ts)...); err != nil {
			return fmt.Errorf("frame export: %w", err)
		}
		d.frames.Add(1)
	}
}

// drain handles every pending resize and reload before the next frame.
func (d *Driver) drain(ctx context.Context) error {
	for {
		select {
		case <-d.window.Resized():
			if err := d.handleResize(); err != nil {
				return err
			}
		case <-d.reload:
			d.logger.Info("Reloading module", zap.String("module", d.cfg.Source.Name()))
			d.teardown(ctx)
			d.runtime.EvictCompiledModule(ctx, d.cfg.Source.Name())
			Sync(d.window)
			if err := d.setup(ctx); err != nil {
				return fmt.Errorf("reload: %w", err)
			}
		default:
			return nil
		}
	}
}

func (d *Driver) handleResize() error {
	w, h := Sync(d.window)
	d.logger.Debug("Window resized", zap.Int("width", w), zap.Int("height", h))
	if d.resize == nil {
		return nil
	}
	if _, err := d.resize.Call(d.callCtx, api.EncodeI32(int32(w)), api.EncodeI32(int32(h))); err != nil {
		return fmt.Errorf("resize export: %w", err)
	}
	return nil
}

// setup loads and instantiates the module on a fresh surface and calls its init export.
func (d *Driver) setup(ctx context.Context) error {
	compiled, err := d.loader.LoadModule(ctx, d.cfg.Source)
	if err != nil {
		return err
	}

	surface := binding.NewSurface(d.window.GL(), d.logger, d.cfg.SurfaceOptions...)
	callCtx := binding.WithSurface(ctx, surface)

	inst, err := d.instances.Instantiate(callCtx, &wasm.InstanceConfig{
		ModuleName: compiled.Name,
		Stdout:     d.output(d.cfg.Stdout, zapcore.InfoLevel),
		Stderr:     d.output(d.cfg.Stderr, zapcore.WarnLevel),
	})
	if err != nil {
		return err
	}

	if err := d.resolve(inst, surface); err != nil {
		_ = inst.Close(ctx)
		return err
	}

	initFn, initName, err := inst.FirstFunction(d.cfg.Exports.Init...)
	if err != nil {
		_ = inst.Close(ctx)
		return err
	}

	d.inst = inst
	d.callCtx = callCtx
	d.surface.Store(surface)
	d.loads.Add(1)

	if _, err := initFn.Call(callCtx); err != nil {
		_ = inst.Close(ctx)
		d.inst = nil
		return fmt.Errorf("init export %s: %w", initName, err)
	}
	d.logger.Info("Module initialized",
		zap.String("module", compiled.Name),
		zap.String("instance_id", inst.ID),
		zap.String("init", initName),
	)
	return nil
}

// resolve attaches the instance memory and looks up the frame, exit and resize exports.
func (d *Driver) resolve(inst *wasm.Instance, surface *binding.Surface) error {
	mem, err := inst.Memory(d.cfg.MemoryExport)
	if err != nil {
		return err
	}
	surface.AttachMemory(mem)

	frame, _, err := inst.FirstFunction(d.cfg.Exports.Frame...)
	if err != nil {
		return err
	}
	if n := len(frame.Definition().ParamTypes()); n > 1 {
		return fmt.Errorf("frame export %s takes %d parameters, want at most 1",
			frame.Definition().Name(), n)
	}
	d.frame = frame

	d.exit, d.resize = nil, nil
	if name := d.cfg.Exports.Exit; name != "" && inst.HasFunction(name) {
		d.exit, _ = inst.Function(name)
	}
	if name := d.cfg.Exports.Resize; name != "" {
		fn, err := inst.Function(name)
		if err != nil {
			d.logger.Warn("Resize export not found, module will not be notified",
				zap.String("export", name))
		} else {
			d.resize = fn
		}
	}
	return nil
}

// teardown calls the exit export and closes the instance.
func (d *Driver) teardown(ctx context.Context) {
	if d.inst == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if d.exit != nil {
		if _, err := d.exit.Call(binding.WithSurface(ctx, d.Surface())); err != nil {
			d.logger.Warn("Exit export failed", zap.Error(err))
		}
	}
	if err := d.inst.Close(ctx); err != nil {
		d.logger.Warn("Failed to close instance", zap.String("instance_id", d.inst.ID), zap.Error(err))
	}
	d.inst = nil
}

func (d *Driver) output(w io.Writer, level zapcore.Level) io.Writer {
	if w != nil {
		return w
	}
	return &zapio.Writer{Log: d.logger.With(zap.String("source", "guest")), Level: level}
}

// encodeTimestamp converts a millisecond timestamp to the frame export's parameter type.
func encodeTimestamp(fn api.Function, ts float64) []uint64 {
	params := fn.Definition().ParamTypes()
	if len(params) == 0 {
		return nil
	}
	switch params[0] {
	case api.ValueTypeF32:
		return []uint64{api.EncodeF32(float32(ts))}
	case api.ValueTypeI64:
		return []uint64{api.EncodeI64(int64(ts))}
	case api.ValueTypeI32:
		return []uint64{api.EncodeI32(int32(ts))}
	default:
		return []uint64{api.EncodeF64(ts)}
	}
}
