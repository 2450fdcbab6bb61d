package binding

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/woxQAQ/wasmgl-host/internal/gl"
	"github.com/woxQAQ/wasmgl-host/internal/wasm"
)

var (
	i32 = api.ValueTypeI32
	f32 = api.ValueTypeF32
)

// overrides are the entry points that take handles or guest pointers instead of
// WebGL objects and strings.
func overrides() map[string]Func {
	return map[string]Func{
		"compileShader": {
			Params:     []api.ValueType{i32, i32, i32},
			ParamNames: []string{"srcPtr", "srcLen", "type"},
			Results:    []api.ValueType{i32},
			Fn:         compileShader,
		},
		"linkShaderProgram": {
			Params:     []api.ValueType{i32, i32},
			ParamNames: []string{"vertexShader", "fragmentShader"},
			Results:    []api.ValueType{i32},
			Fn:         linkShaderProgram,
		},
		"getAttribLocation": {
			Params:     []api.ValueType{i32, i32, i32},
			ParamNames: []string{"program", "namePtr", "nameLen"},
			Results:    []api.ValueType{i32},
			Fn:         getAttribLocation,
		},
		"getUniformLocation": {
			Params:     []api.ValueType{i32, i32, i32},
			ParamNames: []string{"program", "namePtr", "nameLen"},
			Results:    []api.ValueType{i32},
			Fn:         getUniformLocation,
		},
		"createBuffer": {
			Results: []api.ValueType{i32},
			Fn:      createBuffer,
		},
		"bindBuffer": {
			Params:     []api.ValueType{i32, i32},
			ParamNames: []string{"target", "buffer"},
			Fn:         bindBuffer,
		},
		"bufferData": {
			Params:     []api.ValueType{i32, i32, i32, i32},
			ParamNames: []string{"target", "dataPtr", "count", "usage"},
			Fn:         bufferData,
		},
		"useProgram": {
			Params:     []api.ValueType{i32},
			ParamNames: []string{"program"},
			Fn:         useProgram,
		},
		"uniform1f": {
			Params:     []api.ValueType{i32, f32},
			ParamNames: []string{"location", "x"},
			Fn: func(_ context.Context, s *Surface, stack []uint64) {
				loc := lookup("uniform1f", s.Locations, api.DecodeU32(stack[0]))
				s.GL.Uniform1f(loc, api.DecodeF32(stack[1]))
			},
		},
		"uniform2f": {
			Params:     []api.ValueType{i32, f32, f32},
			ParamNames: []string{"location", "x", "y"},
			Fn: func(_ context.Context, s *Surface, stack []uint64) {
				loc := lookup("uniform2f", s.Locations, api.DecodeU32(stack[0]))
				s.GL.Uniform2f(loc, api.DecodeF32(stack[1]), api.DecodeF32(stack[2]))
			},
		},
		"uniform3f": {
			Params:     []api.ValueType{i32, f32, f32, f32},
			ParamNames: []string{"location", "x", "y", "z"},
			Fn: func(_ context.Context, s *Surface, stack []uint64) {
				loc := lookup("uniform3f", s.Locations, api.DecodeU32(stack[0]))
				s.GL.Uniform3f(loc, api.DecodeF32(stack[1]), api.DecodeF32(stack[2]), api.DecodeF32(stack[3]))
			},
		},
		"uniform1i": {
			Params:     []api.ValueType{i32, i32},
			ParamNames: []string{"location", "x"},
			Fn: func(_ context.Context, s *Surface, stack []uint64) {
				loc := lookup("uniform1i", s.Locations, api.DecodeU32(stack[0]))
				s.GL.Uniform1i(loc, api.DecodeI32(stack[1]))
			},
		},
		"uniform4fv": {
			Params:     []api.ValueType{i32, f32, f32, f32, f32},
			ParamNames: []string{"location", "x", "y", "z", "w"},
			Fn:         uniform4fv,
		},
		"uniformMatrix4fv": {
			Params:     []api.ValueType{i32, i32, i32},
			ParamNames: []string{"location", "transpose", "dataPtr"},
			Fn: func(_ context.Context, s *Surface, stack []uint64) {
				loc := lookup("uniformMatrix4fv", s.Locations, api.DecodeU32(stack[0]))
				m := s.floats("uniformMatrix4fv", api.DecodeU32(stack[2]), 16)
				s.GL.UniformMatrix4fv(loc, decodeBool(stack[1]), m)
			},
		},
	}
}

// compileShader registers the shader only once it has compiled.
func compileShader(_ context.Context, s *Surface, stack []uint64) {
	const fn = "compileShader"
	src := s.str(fn, api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
	typ := api.DecodeU32(stack[2])

	sh := s.GL.CreateShader(typ)
	if sh == nil {
		wasm.Fail(fn, &gl.ShaderCompileError{Type: typ, Log: "invalid shader type"})
	}
	s.GL.ShaderSource(sh, src)
	s.GL.CompileShader(sh)
	if !s.GL.ShaderCompiled(sh) {
		log := s.GL.ShaderInfoLog(sh)
		s.GL.DeleteShader(sh)
		wasm.Fail(fn, &gl.ShaderCompileError{Type: typ, Log: log})
	}
	stack[0] = api.EncodeU32(s.Shaders.Add(sh))
}

// linkShaderProgram registers the program only once it has linked.
func linkShaderProgram(_ context.Context, s *Surface, stack []uint64) {
	const fn = "linkShaderProgram"
	vs := lookup(fn, s.Shaders, api.DecodeU32(stack[0]))
	fs := lookup(fn, s.Shaders, api.DecodeU32(stack[1]))

	prog := s.GL.CreateProgram()
	s.GL.AttachShader(prog, vs)
	s.GL.AttachShader(prog, fs)
	s.GL.LinkProgram(prog)
	if !s.GL.ProgramLinked(prog) {
		log := s.GL.ProgramInfoLog(prog)
		s.GL.DeleteProgram(prog)
		wasm.Fail(fn, &gl.ProgramLinkError{Log: log})
	}
	stack[0] = api.EncodeU32(s.Programs.Add(prog))
}

func getAttribLocation(_ context.Context, s *Surface, stack []uint64) {
	const fn = "getAttribLocation"
	prog := lookup(fn, s.Programs, api.DecodeU32(stack[0]))
	name := s.str(fn, api.DecodeU32(stack[1]), api.DecodeU32(stack[2]))
	stack[0] = api.EncodeI32(s.GL.GetAttribLocation(prog, name))
}

// getUniformLocation issues a handle even when the uniform is absent. The handle then
// names a nil location, and uploads through it are ignored.
func getUniformLocation(_ context.Context, s *Surface, stack []uint64) {
	const fn = "getUniformLocation"
	prog := lookup(fn, s.Programs, api.DecodeU32(stack[0]))
	name := s.str(fn, api.DecodeU32(stack[1]), api.DecodeU32(stack[2]))
	stack[0] = api.EncodeU32(s.Locations.Add(s.GL.GetUniformLocation(prog, name)))
}

func createBuffer(_ context.Context, s *Surface, stack []uint64) {
	stack[0] = api.EncodeU32(s.Buffers.Add(s.GL.CreateBuffer()))
}

func bindBuffer(_ context.Context, s *Surface, stack []uint64) {
	buf := lookup("bindBuffer", s.Buffers, api.DecodeU32(stack[1]))
	s.GL.BindBuffer(api.DecodeU32(stack[0]), buf)
}

func bufferData(_ context.Context, s *Surface, stack []uint64) {
	data := s.floats("bufferData", api.DecodeU32(stack[1]), api.DecodeU32(stack[2]))
	s.GL.BufferData(api.DecodeU32(stack[0]), data, api.DecodeU32(stack[3]))
}

func useProgram(_ context.Context, s *Surface, stack []uint64) {
	s.GL.UseProgram(lookup("useProgram", s.Programs, api.DecodeU32(stack[0])))
}

func uniform4fv(_ context.Context, s *Surface, stack []uint64) {
	loc := lookup("uniform4fv", s.Locations, api.DecodeU32(stack[0]))
	s.GL.Uniform4fv(loc, []float32{
		api.DecodeF32(stack[1]),
		api.DecodeF32(stack[2]),
		api.DecodeF32(stack[3]),
		api.DecodeF32(stack[4]),
	})
}
