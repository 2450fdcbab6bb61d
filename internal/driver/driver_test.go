package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap/zaptest"

	"github.com/woxQAQ/wasmgl-host/internal/binding"
	"github.com/woxQAQ/wasmgl-host/internal/wasm"
	"github.com/woxQAQ/wasmgl-host/internal/wasmtest"
)

// probe is a host namespace the test guests call to report what the driver did.
type probe struct {
	inits   int
	exits   int
	stamps  []float64
	resizes [][2]int32
	onFrame func(n int)
}

func (p *probe) Name() string { return "probe" }

func (p *probe) Export(b wazero.HostModuleBuilder) {
	b.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(context.Context, api.Module, []uint64) {
			p.inits++
		}), nil, nil).
		Export("init")
	b.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			p.stamps = append(p.stamps, api.DecodeF64(stack[0]))
			if p.onFrame != nil {
				p.onFrame(len(p.stamps))
			}
		}), []api.ValueType{api.ValueTypeF64}, nil).
		Export("frame")
	b.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			p.resizes = append(p.resizes, [2]int32{api.DecodeI32(stack[0]), api.DecodeI32(stack[1])})
		}), []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}, nil).
		Export("resize")
	b.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(context.Context, api.Module, []uint64) {
			p.exits++
		}), nil, nil).
		Export("exit")
}

// guest builds a module that creates a buffer and reports to probe in every export.
func guest(initName, frameName string, withMemory bool) []byte {
	m := wasmtest.New()
	initImport := m.Import("probe", "init", nil, nil)
	frame := m.Import("probe", "frame", wasmtest.Params(wasmtest.F64), nil)
	resize := m.Import("probe", "resize", wasmtest.Params(wasmtest.I32, wasmtest.I32), nil)
	exit := m.Import("probe", "exit", nil, nil)
	createBuffer := m.Import(binding.WebGLNamespace, "createBuffer", nil, wasmtest.Params(wasmtest.I32))

	onInit := m.Func(nil, nil, nil,
		wasmtest.Call(initImport),
		wasmtest.Call(createBuffer), wasmtest.Drop(),
	)
	onFrame := m.Func(wasmtest.Params(wasmtest.F64), nil, nil,
		wasmtest.LocalGet(0), wasmtest.Call(frame),
	)
	onResize := m.Func(wasmtest.Params(wasmtest.I32, wasmtest.I32), nil, nil,
		wasmtest.LocalGet(0), wasmtest.LocalGet(1), wasmtest.Call(resize),
	)
	onExit := m.Func(nil, nil, nil, wasmtest.Call(exit))

	m.ExportFunc(initName, onInit).
		ExportFunc(frameName, onFrame).
		ExportFunc("onResize", onResize).
		ExportFunc("exit", onExit)
	if withMemory {
		m.Memory(1, "memory")
	}
	return m.Bytes()
}

func newDriver(t *testing.T, p *probe, window Window, module []byte, exports Exports) *Driver {
	t.Helper()
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	runtime, err := wasm.NewRuntime(ctx, logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { runtime.Close(ctx) })
	require.NoError(t, binding.Register(runtime))
	require.NoError(t, runtime.RegisterHostModule(p))

	return New(runtime, window, Config{
		Source:  &wasm.MemoryModuleSource{ModuleName: "guest", Data: module},
		Exports: exports,
	}, logger)
}

func TestRun_OneFrameCallPerFrame(t *testing.T) {
	p := &probe{}
	window := NewHeadlessWindow(HeadlessConfig{Width: 320, Height: 200, MaxFrames: 5})
	d := newDriver(t, p, window, guest("onInit", "onAnimationFrame", true), DefaultExports())

	require.NoError(t, d.Run(context.Background()))

	assert.Equal(t, 1, p.inits)
	assert.Equal(t, 1, p.exits)
	assert.Len(t, p.stamps, 5)
	assert.True(t, isNonDecreasing(p.stamps), "timestamps %v", p.stamps)
	assert.Equal(t, uint64(5), d.Frames())
	assert.Equal(t, uint64(5), window.Frames())

	require.NotNil(t, d.Surface())
	assert.Equal(t, 1, d.Surface().Buffers.Len())
}

func TestRun_SyncsWindowBeforeLoading(t *testing.T) {
	p := &probe{}
	window := NewHeadlessWindow(HeadlessConfig{Width: 320, Height: 200, MaxFrames: 1})
	d := newDriver(t, p, window, guest("onInit", "onAnimationFrame", true), DefaultExports())

	require.NoError(t, d.Run(context.Background()))

	w, h := window.BackingSize()
	assert.Equal(t, [2]int{320, 200}, [2]int{w, h})
	assert.Equal(t, [4]int32{0, 0, 320, 200}, window.Soft().ViewportRect())
}

func TestRun_Resize(t *testing.T) {
	tests := []struct {
		name    string
		exports Exports
		want    [][2]int32
	}{
		{"not notified by default", DefaultExports(), nil},
		{"notified when configured", Exports{
			Init:   []string{"onInit"},
			Frame:  []string{"onAnimationFrame"},
			Resize: "onResize",
		}, [][2]int32{{640, 480}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &probe{}
			window := NewHeadlessWindow(HeadlessConfig{Width: 320, Height: 200, MaxFrames: 4})
			p.onFrame = func(n int) {
				if n == 2 {
					window.Resize(640, 480)
				}
			}
			d := newDriver(t, p, window, guest("onInit", "onAnimationFrame", true), tt.exports)

			require.NoError(t, d.Run(context.Background()))

			w, h := window.BackingSize()
			assert.Equal(t, [2]int{640, 480}, [2]int{w, h})
			assert.Equal(t, [4]int32{0, 0, 640, 480}, window.Soft().ViewportRect())
			assert.Equal(t, tt.want, p.resizes)
			assert.Len(t, p.stamps, 4)
		})
	}
}

// clearingGuest clears the color buffer on every frame.
func clearingGuest() []byte {
	m := wasmtest.New()
	clearColor := m.Import(binding.WebGLNamespace, "clearColor",
		wasmtest.Params(wasmtest.F32, wasmtest.F32, wasmtest.F32, wasmtest.F32), nil)
	clearFn := m.Import(binding.WebGLNamespace, "clear", wasmtest.Params(wasmtest.I32), nil)

	onInit := m.Func(nil, nil, nil)
	onFrame := m.Func(wasmtest.Params(wasmtest.F64), nil, nil,
		wasmtest.F32Const(0), wasmtest.F32Const(0), wasmtest.F32Const(0), wasmtest.F32Const(1),
		wasmtest.Call(clearColor),
		wasmtest.I32Const(0x4000), wasmtest.Call(clearFn),
	)
	m.ExportFunc("onInit", onInit).ExportFunc("onAnimationFrame", onFrame).Memory(1, "memory")
	return m.Bytes()
}

func TestRun_HeadlessCallLog(t *testing.T) {
	const frames = 2000
	tests := []struct {
		name   string
		record bool
	}{
		{"not kept by default", false},
		{"kept when recording", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := NewHeadlessWindow(HeadlessConfig{Width: 1, Height: 1, MaxFrames: frames, Record: tt.record})
			d := newDriver(t, &probe{}, window, clearingGuest(), DefaultExports())

			require.NoError(t, d.Run(context.Background()))
			require.Equal(t, uint64(frames), d.Frames())
			assert.Equal(t, [4]float32{0, 0, 0, 1}, window.Soft().ClearColorValue())

			calls := window.Soft().Calls()
			if tt.record {
				assert.GreaterOrEqual(t, len(calls), 2*frames)
			} else {
				assert.Empty(t, calls)
			}
		})
	}
}

func TestRun_FallbackExportNames(t *testing.T) {
	p := &probe{}
	window := NewHeadlessWindow(HeadlessConfig{Width: 1, Height: 1, MaxFrames: 2})
	d := newDriver(t, p, window, guest("enter", "step", true), DefaultExports())

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, 1, p.inits)
	assert.Len(t, p.stamps, 2)
}

func TestRun_Reload(t *testing.T) {
	p := &probe{}
	window := NewHeadlessWindow(HeadlessConfig{Width: 1, Height: 1, MaxFrames: 6})
	d := newDriver(t, p, window, guest("onInit", "onAnimationFrame", true), DefaultExports())

	var first *binding.Surface
	p.onFrame = func(n int) {
		if n == 3 {
			first = d.Surface()
			d.Reload()
			d.Reload()
		}
	}

	require.NoError(t, d.Run(context.Background()))

	assert.Equal(t, 2, p.inits)
	assert.Equal(t, 2, p.exits)
	assert.Equal(t, uint64(2), d.Loads())
	assert.Len(t, p.stamps, 6)
	require.NotNil(t, first)
	assert.NotSame(t, first, d.Surface())
	assert.Equal(t, 1, d.Surface().Buffers.Len())
}

func TestRun_StopsOnCancel(t *testing.T) {
	p := &probe{}
	window := NewHeadlessWindow(HeadlessConfig{Width: 1, Height: 1})
	d := newDriver(t, p, window, guest("onInit", "onAnimationFrame", true), DefaultExports())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.onFrame = func(n int) {
		if n == 3 {
			cancel()
		}
	}

	require.NoError(t, d.Run(ctx))
	assert.Len(t, p.stamps, 3)
	assert.Equal(t, 1, p.exits)
}

func TestRun_MissingMemory(t *testing.T) {
	p := &probe{}
	window := NewHeadlessWindow(HeadlessConfig{Width: 1, Height: 1, MaxFrames: 1})
	d := newDriver(t, p, window, guest("onInit", "onAnimationFrame", false), DefaultExports())

	err := d.Run(context.Background())
	var notFound *wasm.ExportNotFoundError
	require.True(t, errors.As(err, &notFound), "got %v", err)
	assert.Equal(t, "memory", notFound.ExportName)
	assert.Equal(t, 0, p.inits)
}

func TestRun_MissingInit(t *testing.T) {
	p := &probe{}
	window := NewHeadlessWindow(HeadlessConfig{Width: 1, Height: 1, MaxFrames: 1})
	d := newDriver(t, p, window, guest("start", "onAnimationFrame", true), DefaultExports())

	err := d.Run(context.Background())
	var notFound *wasm.FunctionNotFoundError
	require.True(t, errors.As(err, &notFound), "got %v", err)
	assert.Equal(t, "onInit", notFound.FunctionName)
}

func TestRun_FrameTrapIsFatal(t *testing.T) {
	m := wasmtest.New()
	noop := m.Func(nil, nil, nil)
	trap := m.Func(wasmtest.Params(wasmtest.F64), nil, nil, wasmtest.Unreachable())
	m.ExportFunc("onInit", noop).ExportFunc("onAnimationFrame", trap).Memory(1, "memory")

	window := NewHeadlessWindow(HeadlessConfig{Width: 1, Height: 1, MaxFrames: 3})
	d := newDriver(t, &probe{}, window, m.Bytes(), DefaultExports())

	err := d.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame export")
	assert.Equal(t, uint64(0), d.Frames())
}

func TestHeadlessWindow(t *testing.T) {
	window := NewHeadlessWindow(HeadlessConfig{Width: 10, Height: 20, Rate: 1000})
	ctx := context.Background()

	var stamps []float64
	for i := 0; i < 3; i++ {
		ts, err := window.NextFrame(ctx)
		require.NoError(t, err)
		stamps = append(stamps, ts)
	}
	assert.True(t, isNonDecreasing(stamps))

	window.Resize(30, 40)
	window.Resize(50, 60)
	select {
	case <-window.Resized():
	default:
		t.Fatal("resize not signalled")
	}
	w, h := window.BoundingSize()
	assert.Equal(t, [2]int{50, 60}, [2]int{w, h})

	require.NoError(t, window.Close())
	require.NoError(t, window.Close())
	_, err := window.NextFrame(ctx)
	assert.ErrorIs(t, err, ErrWindowClosed)
}

func TestHeadlessWindow_CloseFromAnotherGoroutine(t *testing.T) {
	window := NewHeadlessWindow(HeadlessConfig{Width: 1, Height: 1, Rate: 0.001})

	errc := make(chan error, 1)
	go func() {
		_, err := window.NextFrame(context.Background())
		errc <- err
	}()

	require.NoError(t, window.Close())
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrWindowClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("NextFrame did not return after Close")
	}
}

func isNonDecreasing(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] < v[i-1] {
			return false
		}
	}
	return true
}
