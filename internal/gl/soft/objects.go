package soft

import (
	"fmt"
	"strings"

	"github.com/woxQAQ/wasmgl-host/internal/gl"
)

func asShader(s gl.Shader) *Shader {
	sh, _ := s.(*Shader)
	return sh
}

func asProgram(p gl.Program) *Program {
	prog, _ := p.(*Program)
	return prog
}

func asBuffer(b gl.Buffer) *Buffer {
	buf, _ := b.(*Buffer)
	return buf
}

func asLocation(l gl.UniformLocation) *UniformLocation {
	loc, _ := l.(*UniformLocation)
	return loc
}

func (c *Context) CreateShader(typ uint32) gl.Shader {
	c.record("createShader", typ)
	if typ != gl.VertexShader && typ != gl.FragmentShader {
		c.setError(gl.InvalidEnum)
		return nil
	}
	return &Shader{ID: c.id(), Type: typ}
}

func (c *Context) ShaderSource(shader gl.Shader, source string) {
	c.record("shaderSource", shader, source)
	if sh := asShader(shader); sh != nil {
		sh.Source = source
	}
}

func (c *Context) CompileShader(shader gl.Shader) {
	c.record("compileShader", shader)
	sh := asShader(shader)
	if sh == nil {
		c.setError(gl.InvalidValue)
		return
	}
	decls, err := parseGLSL(sh.Source)
	if err != nil {
		sh.compiled = false
		sh.log = err.Error()
		return
	}
	sh.compiled = true
	sh.log = ""
	sh.decls = decls
}

func (c *Context) ShaderCompiled(shader gl.Shader) bool {
	c.record("getShaderParameter", shader, gl.CompileStatus)
	sh := asShader(shader)
	return sh != nil && sh.compiled
}

func (c *Context) ShaderInfoLog(shader gl.Shader) string {
	c.record("getShaderInfoLog", shader)
	if sh := asShader(shader); sh != nil {
		return sh.log
	}
	return ""
}

func (c *Context) DeleteShader(shader gl.Shader) {
	c.record("deleteShader", shader)
	if sh := asShader(shader); sh != nil {
		sh.deleted = true
	}
}

func (c *Context) CreateProgram() gl.Program {
	c.record("createProgram")
	return &Program{ID: c.id()}
}

func (c *Context) AttachShader(program gl.Program, shader gl.Shader) {
	c.record("attachShader", program, shader)
	prog, sh := asProgram(program), asShader(shader)
	if prog == nil || sh == nil {
		c.setError(gl.InvalidValue)
		return
	}
	for _, attached := range prog.Shaders {
		if attached == sh || attached.Type == sh.Type {
			c.setError(gl.InvalidOperation)
			return
		}
	}
	prog.Shaders = append(prog.Shaders, sh)
}

func (c *Context) LinkProgram(program gl.Program) {
	c.record("linkProgram", program)
	prog := asProgram(program)
	if prog == nil {
		c.setError(gl.InvalidValue)
		return
	}

	prog.linked = false
	var vs, fs *Shader
	for _, sh := range prog.Shaders {
		switch sh.Type {
		case gl.VertexShader:
			vs = sh
		case gl.FragmentShader:
			fs = sh
		}
	}
	switch {
	case vs == nil:
		prog.log = "ERROR: Missing vertex shader"
		return
	case fs == nil:
		prog.log = "ERROR: Missing fragment shader"
		return
	case !vs.compiled:
		prog.log = "ERROR: Vertex shader is not compiled"
		return
	case !fs.compiled:
		prog.log = "ERROR: Fragment shader is not compiled"
		return
	}

	for name, typ := range fs.decls.varyings {
		if vtyp, ok := vs.decls.varyings[name]; ok && vtyp != typ {
			prog.log = fmt.Sprintf("ERROR: Varying '%s' has different types in the vertex and fragment shaders", name)
			return
		}
	}

	prog.attribs = make(map[string]int32, len(vs.decls.attributes))
	for i, name := range vs.decls.attributes {
		prog.attribs[name] = int32(i)
	}
	prog.uniforms = make(map[string]bool)
	for _, name := range vs.decls.uniforms {
		prog.uniforms[name] = true
	}
	for _, name := range fs.decls.uniforms {
		prog.uniforms[name] = true
	}
	prog.values = make(map[string][]float32)
	prog.linked = true
	prog.log = ""
}

func (c *Context) ProgramLinked(program gl.Program) bool {
	c.record("getProgramParameter", program, gl.LinkStatus)
	prog := asProgram(program)
	return prog != nil && prog.linked
}

func (c *Context) ProgramInfoLog(program gl.Program) string {
	c.record("getProgramInfoLog", program)
	if prog := asProgram(program); prog != nil {
		return prog.log
	}
	return ""
}

func (c *Context) DeleteProgram(program gl.Program) {
	c.record("deleteProgram", program)
	if prog := asProgram(program); prog != nil {
		prog.deleted = true
	}
}

func (c *Context) UseProgram(program gl.Program) {
	c.record("useProgram", program)
	if program == nil {
		c.program = nil
		return
	}
	prog := asProgram(program)
	if prog == nil || !prog.linked {
		c.setError(gl.InvalidOperation)
		return
	}
	c.program = prog
}

func (c *Context) GetAttribLocation(program gl.Program, name string) int32 {
	c.record("getAttribLocation", program, name)
	prog := asProgram(program)
	if prog == nil || !prog.linked {
		c.setError(gl.InvalidOperation)
		return -1
	}
	if loc, ok := prog.attribs[name]; ok {
		return loc
	}
	return -1
}

func (c *Context) GetUniformLocation(program gl.Program, name string) gl.UniformLocation {
	c.record("getUniformLocation", program, name)
	prog := asProgram(program)
	if prog == nil || !prog.linked {
		c.setError(gl.InvalidOperation)
		return nil
	}
	base := name
	if i := strings.IndexByte(base, '['); i >= 0 {
		base = base[:i]
	}
	if !prog.uniforms[base] {
		return nil
	}
	return &UniformLocation{Program: prog, Name: name}
}

// setUniform stores v for location. A nil location is silently ignored, as in WebGL.
func (c *Context) setUniform(location gl.UniformLocation, v []float32) {
	loc := asLocation(location)
	if loc == nil {
		return
	}
	if c.program == nil || loc.Program != c.program {
		c.setError(gl.InvalidOperation)
		return
	}
	loc.Program.values[loc.Name] = append([]float32(nil), v...)
}

func (c *Context) Uniform1f(location gl.UniformLocation, x float32) {
	c.record("uniform1f", location, x)
	c.setUniform(location, []float32{x})
}

func (c *Context) Uniform2f(location gl.UniformLocation, x, y float32) {
	c.record("uniform2f", location, x, y)
	c.setUniform(location, []float32{x, y})
}

func (c *Context) Uniform3f(location gl.UniformLocation, x, y, z float32) {
	c.record("uniform3f", location, x, y, z)
	c.setUniform(location, []float32{x, y, z})
}

func (c *Context) Uniform1i(location gl.UniformLocation, x int32) {
	c.record("uniform1i", location, x)
	c.setUniform(location, []float32{float32(x)})
}

func (c *Context) Uniform4fv(location gl.UniformLocation, v []float32) {
	c.record("uniform4fv", location, v)
	if len(v) == 0 || len(v)%4 != 0 {
		c.setError(gl.InvalidValue)
		return
	}
	c.setUniform(location, v)
}

func (c *Context) UniformMatrix4fv(location gl.UniformLocation, transpose bool, v []float32) {
	c.record("uniformMatrix4fv", location, transpose, v)
	// WebGL 1 rejects transpose=true.
	if transpose || len(v) == 0 || len(v)%16 != 0 {
		c.setError(gl.InvalidValue)
		return
	}
	c.setUniform(location, v)
}

func (c *Context) CreateBuffer() gl.Buffer {
	c.record("createBuffer")
	return &Buffer{ID: c.id()}
}

func (c *Context) BindBuffer(target uint32, buffer gl.Buffer) {
	c.record("bindBuffer", target, buffer)
	buf := asBuffer(buffer)
	if buf != nil {
		if buf.Target != 0 && buf.Target != target {
			c.setError(gl.InvalidOperation)
			return
		}
		buf.Target = target
	}
	switch target {
	case gl.ArrayBuffer:
		c.arrayBuffer = buf
	case gl.ElementArrayBuffer:
		c.elementBuffer = buf
	default:
		c.setError(gl.InvalidEnum)
	}
}

func (c *Context) BufferData(target uint32, data []float32, usage uint32) {
	c.record("bufferData", target, len(data), usage)
	buf := c.BoundBuffer(target)
	if buf == nil {
		c.setError(gl.InvalidOperation)
		return
	}
	switch usage {
	case gl.StreamDraw, gl.StaticDraw, gl.DynamicDraw:
	default:
		c.setError(gl.InvalidEnum)
		return
	}
	buf.Data = append(buf.Data[:0], data...)
	buf.Usage = usage
}
