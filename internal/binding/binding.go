// Package binding implements the host namespaces a guest module imports: the WebGL
// surface ("webgl"), its legacy aliases ("env") and the log accumulator ("log").
//
// Every host function runs against the Surface carried by the call's context, so one
// runtime can host several independent instances.
package binding

//go:generate go run ../../cmd/glgen -in webgl.yaml -out zz_webgl.go

import (
	"context"
	"errors"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/woxQAQ/wasmgl-host/internal/wasm"
	"github.com/woxQAQ/wasmgl-host/pkg/abi"
)

// Namespace names imported by guest modules.
const (
	WebGLNamespace = abi.WebGLNamespace
	EnvNamespace   = abi.EnvNamespace
	LogNamespace   = abi.LogNamespace
)

// ErrNoSurface is raised when a host function runs without a Surface in its context.
var ErrNoSurface = errors.New("no binding surface in call context")

// Func is one host function: its wasm signature and the Go implementation.
// Arguments arrive in stack; results are written back to stack[0:].
type Func struct {
	Params     []api.ValueType
	ParamNames []string
	Results    []api.ValueType
	Fn         func(ctx context.Context, s *Surface, stack []uint64)
}

// Namespace is a named set of host functions, exported as one wazero host module.
type Namespace struct {
	name  string
	funcs map[string]Func
}

var _ wasm.HostModule = (*Namespace)(nil)

// NewNamespace creates an empty namespace.
func NewNamespace(name string) *Namespace {
	return &Namespace{name: name, funcs: make(map[string]Func)}
}

// Name returns the import module name.
func (n *Namespace) Name() string {
	return n.name
}

// Layer adds funcs to the namespace. Entries replace existing ones with the same name,
// so later layers take precedence.
func (n *Namespace) Layer(funcs map[string]Func) *Namespace {
	for name, f := range funcs {
		n.funcs[name] = f
	}
	return n
}

// Lookup returns the function exported under name.
func (n *Namespace) Lookup(name string) (Func, bool) {
	f, ok := n.funcs[name]
	return f, ok
}

// Names returns the exported names, sorted.
func (n *Namespace) Names() []string {
	names := make([]string, 0, len(n.funcs))
	for name := range n.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Export implements wasm.HostModule.
func (n *Namespace) Export(builder wazero.HostModuleBuilder) {
	for _, name := range n.Names() {
		f := n.funcs[name]
		fb := builder.NewFunctionBuilder().
			WithGoModuleFunction(bind(name, f.Fn), f.Params, f.Results).
			WithName(name)
		if len(f.ParamNames) == len(f.Params) && len(f.ParamNames) > 0 {
			fb = fb.WithParameterNames(f.ParamNames...)
		}
		fb.Export(name)
	}
}

// bind resolves the Surface for each call.
func bind(name string, fn func(context.Context, *Surface, []uint64)) api.GoModuleFunc {
	return func(ctx context.Context, _ api.Module, stack []uint64) {
		s, ok := FromContext(ctx)
		if !ok {
			wasm.Fail(name, ErrNoSurface)
		}
		fn(ctx, s, stack)
	}
}

// Register adds the webgl, env and log namespaces to r.
func Register(r *wasm.Runtime) error {
	webgl := WebGL()
	for _, ns := range []*Namespace{webgl, Env(webgl), Log()} {
		if err := r.RegisterHostModule(ns); err != nil {
			return err
		}
	}
	return nil
}

// WebGL composes the webgl namespace: the generated pass-through, the constants, then
// the handle-translating overrides on top.
func WebGL() *Namespace {
	return NewNamespace(WebGLNamespace).
		Layer(passThrough()).
		Layer(constants()).
		Layer(overrides())
}

func decodeBool(v uint64) bool {
	return api.DecodeU32(v) != 0
}

func encodeBool(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
