package binding

import (
	"context"
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/woxQAQ/wasmgl-host/internal/gl"
	"github.com/woxQAQ/wasmgl-host/internal/handles"
	"github.com/woxQAQ/wasmgl-host/internal/wasm"
)

// Surface is the host-side state behind one guest instance: the rendering context, the
// handle tables, the memory bridge and the pending log text.
//
// A Surface is used from the goroutine that calls into its instance and is not safe for
// concurrent use.
type Surface struct {
	GL     gl.Context
	Memory *wasm.Memory

	Shaders   *handles.Table[gl.Shader]
	Programs  *handles.Table[gl.Program]
	Buffers   *handles.Table[gl.Buffer]
	Locations *handles.Table[gl.UniformLocation]

	logBuf strings.Builder
	sink   func(string)
	logger *zap.Logger
}

// Option configures a Surface.
type Option func(*Surface)

// WithSink sends flushed guest log text to sink instead of the logger.
func WithSink(sink func(string)) Option {
	return func(s *Surface) {
		s.sink = sink
	}
}

// NewSurface creates a surface over ctx with empty handle tables and no memory attached.
func NewSurface(ctx gl.Context, logger *zap.Logger, opts ...Option) *Surface {
	s := &Surface{
		GL:        ctx,
		Memory:    wasm.NewMemory(nil),
		Shaders:   handles.NewTable[gl.Shader](handles.KindShader),
		Programs:  handles.NewTable[gl.Program](handles.KindProgram),
		Buffers:   handles.NewTable[gl.Buffer](handles.KindBuffer),
		Locations: handles.NewTable[gl.UniformLocation](handles.KindUniformLocation),
		logger:    logger.With(zap.String("component", "binding")),
	}
	s.sink = func(text string) {
		s.logger.Info(text, zap.String("source", "guest"))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AttachMemory sets the guest memory the bridge reads from.
func (s *Surface) AttachMemory(mem api.Memory) {
	s.Memory.Attach(mem)
	s.logger.Debug("Guest memory attached", zap.Uint32("size_bytes", mem.Size()))
}

// PendingLog returns text written but not yet flushed.
func (s *Surface) PendingLog() string {
	return s.logBuf.String()
}

type surfaceKey struct{}

// WithSurface returns a context that carries s to host functions.
func WithSurface(ctx context.Context, s *Surface) context.Context {
	return context.WithValue(ctx, surfaceKey{}, s)
}

// FromContext returns the Surface carried by ctx.
func FromContext(ctx context.Context) (*Surface, bool) {
	s, ok := ctx.Value(surfaceKey{}).(*Surface)
	return s, ok && s != nil
}

// str reads a guest string or aborts the host function fn.
func (s *Surface) str(fn string, ptr, length uint32) string {
	v, err := s.Memory.ReadString(ptr, length)
	if err != nil {
		wasm.Fail(fn, err)
	}
	return v
}

// floats reads count guest float32 values or aborts the host function fn.
func (s *Surface) floats(fn string, ptr, count uint32) []float32 {
	v, err := s.Memory.ReadFloat32s(ptr, count)
	if err != nil {
		wasm.Fail(fn, err)
	}
	return v
}

// lookup resolves a handle or aborts the host function fn.
func lookup[T any](fn string, table *handles.Table[T], id uint32) T {
	v, err := table.Get(id)
	if err != nil {
		wasm.Fail(fn, err)
	}
	return v
}
