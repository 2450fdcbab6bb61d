//go:build glfw

// Package desktop implements gl.Context on OpenGL 2.1 through go-gl. The context must be
// current on the calling OS thread, which the GLFW window arranges.
package desktop

import (
	"regexp"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"

	glctx "github.com/woxQAQ/wasmgl-host/internal/gl"
)

type shader struct{ handle uint32 }

type program struct{ handle uint32 }

type buffer struct{ handle uint32 }

type location struct {
	program uint32
	value   int32
}

// Context forwards to the OpenGL context current on this thread.
type Context struct{}

var _ glctx.Context = (*Context)(nil)

// New loads the OpenGL entry points. A context must already be current.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return &Context{}, nil
}

// Version returns the GL_VERSION string of the current context.
func (c *Context) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (c *Context) ActiveTexture(texture uint32) { gl.ActiveTexture(texture) }
func (c *Context) BlendColor(r, g, b, a float32) { gl.BlendColor(r, g, b, a) }
func (c *Context) BlendEquation(mode uint32) { gl.BlendEquation(mode) }
func (c *Context) BlendFunc(sfactor, dfactor uint32) { gl.BlendFunc(sfactor, dfactor) }
func (c *Context) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	gl.BlendEquationSeparate(modeRGB, modeAlpha)
}
func (c *Context) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	gl.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}
func (c *Context) Clear(mask uint32) { gl.Clear(mask) }
func (c *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (c *Context) ClearDepth(depth float32) { gl.ClearDepth(float64(depth)) }
func (c *Context) ClearStencil(s int32) { gl.ClearStencil(s) }
func (c *Context) ColorMask(r, g, b, a bool) { gl.ColorMask(r, g, b, a) }
func (c *Context) CullFace(mode uint32) { gl.CullFace(mode) }
func (c *Context) DepthFunc(fn uint32) { gl.DepthFunc(fn) }
func (c *Context) DepthMask(flag bool) { gl.DepthMask(flag) }
func (c *Context) DepthRange(zNear, zFar float32) { gl.DepthRange(float64(zNear), float64(zFar)) }
func (c *Context) Disable(capability uint32) { gl.Disable(capability) }
func (c *Context) DisableVertexAttribArray(i uint32) { gl.DisableVertexAttribArray(i) }
func (c *Context) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}
func (c *Context) DrawElements(mode uint32, count int32, typ uint32, offset int32) {
	gl.DrawElements(mode, count, typ, gl.PtrOffset(int(offset)))
}
func (c *Context) Enable(capability uint32) { gl.Enable(capability) }
func (c *Context) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }
func (c *Context) Finish() { gl.Finish() }
func (c *Context) Flush() { gl.Flush() }
func (c *Context) FrontFace(mode uint32) { gl.FrontFace(mode) }
func (c *Context) GenerateMipmap(target uint32) { gl.GenerateMipmap(target) }
func (c *Context) GetError() uint32 { return gl.GetError() }
func (c *Context) Hint(target, mode uint32) { gl.Hint(target, mode) }
func (c *Context) IsEnabled(capability uint32) bool { return gl.IsEnabled(capability) }
func (c *Context) LineWidth(width float32) { gl.LineWidth(width) }
func (c *Context) PixelStorei(pname uint32, param int32) { gl.PixelStorei(pname, param) }
func (c *Context) PolygonOffset(factor, units float32) { gl.PolygonOffset(factor, units) }
func (c *Context) SampleCoverage(value float32, inv bool) { gl.SampleCoverage(value, inv) }
func (c *Context) Scissor(x, y, width, height int32) { gl.Scissor(x, y, width, height) }
func (c *Context) StencilFunc(fn uint32, ref int32, mask uint32) {
	gl.StencilFunc(fn, ref, mask)
}
func (c *Context) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	gl.StencilFuncSeparate(face, fn, ref, mask)
}
func (c *Context) StencilMask(mask uint32) { gl.StencilMask(mask) }
func (c *Context) StencilMaskSeparate(face, m uint32) { gl.StencilMaskSeparate(face, m) }
func (c *Context) StencilOp(fail, zfail, zpass uint32) { gl.StencilOp(fail, zfail, zpass) }
func (c *Context) StencilOpSeparate(face, fail, zfail, zpass uint32) {
	gl.StencilOpSeparate(face, fail, zfail, zpass)
}
func (c *Context) VertexAttrib1f(index uint32, x float32) { gl.VertexAttrib1f(index, x) }
func (c *Context) VertexAttrib2f(index uint32, x, y float32) { gl.VertexAttrib2f(index, x, y) }
func (c *Context) VertexAttrib3f(index uint32, x, y, z float32) { gl.VertexAttrib3f(index, x, y, z) }
func (c *Context) VertexAttrib4f(index uint32, x, y, z, w float32) {
	gl.VertexAttrib4f(index, x, y, z, w)
}
func (c *Context) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride, offset int32) {
	gl.VertexAttribPointerWithOffset(index, size, typ, normalized, stride, uintptr(offset))
}
func (c *Context) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

// precisionStatement matches GLSL ES default precision declarations, which GLSL 1.20
// does not accept.
var precisionStatement = regexp.MustCompile(`(?m)^\s*precision\s+\w+\s+\w+\s*;`)

// desktopSource rewrites WebGL GLSL ES 1.00 source for GLSL 1.20.
func desktopSource(src string) string {
	if strings.Contains(src, "#version") {
		return src
	}
	src = precisionStatement.ReplaceAllString(src, "")
	return "#version 120\n#define lowp\n#define mediump\n#define highp\n#line 1\n" + src
}

func (c *Context) CreateShader(typ uint32) glctx.Shader {
	if typ != gl.VERTEX_SHADER && typ != gl.FRAGMENT_SHADER {
		return nil
	}
	return &shader{handle: gl.CreateShader(typ)}
}

func (c *Context) ShaderSource(s glctx.Shader, source string) {
	csources, free := gl.Strs(desktopSource(source))
	defer free()
	gl.ShaderSource(s.(*shader).handle, 1, csources, nil)
}

func (c *Context) CompileShader(s glctx.Shader) { gl.CompileShader(s.(*shader).handle) }

func (c *Context) ShaderCompiled(s glctx.Shader) bool {
	var status int32
	gl.GetShaderiv(s.(*shader).handle, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (c *Context) ShaderInfoLog(s glctx.Shader) string {
	handle := s.(*shader).handle
	var logLength int32
	gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}

func (c *Context) DeleteShader(s glctx.Shader) { gl.DeleteShader(s.(*shader).handle) }

func (c *Context) CreateProgram() glctx.Program {
	return &program{handle: gl.CreateProgram()}
}

func (c *Context) AttachShader(p glctx.Program, s glctx.Shader) {
	gl.AttachShader(p.(*program).handle, s.(*shader).handle)
}

func (c *Context) LinkProgram(p glctx.Program) { gl.LinkProgram(p.(*program).handle) }

func (c *Context) ProgramLinked(p glctx.Program) bool {
	var status int32
	gl.GetProgramiv(p.(*program).handle, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (c *Context) ProgramInfoLog(p glctx.Program) string {
	handle := p.(*program).handle
	var logLength int32
	gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(handle, logLength, nil, gl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}

func (c *Context) DeleteProgram(p glctx.Program) { gl.DeleteProgram(p.(*program).handle) }

func (c *Context) UseProgram(p glctx.Program) {
	if p == nil {
		gl.UseProgram(0)
		return
	}
	gl.UseProgram(p.(*program).handle)
}

func (c *Context) GetAttribLocation(p glctx.Program, name string) int32 {
	return gl.GetAttribLocation(p.(*program).handle, gl.Str(name+"\x00"))
}

func (c *Context) GetUniformLocation(p glctx.Program, name string) glctx.UniformLocation {
	handle := p.(*program).handle
	loc := gl.GetUniformLocation(handle, gl.Str(name+"\x00"))
	if loc < 0 {
		return nil
	}
	return &location{program: handle, value: loc}
}

// uniform returns the location value, or false for the nil location, which WebGL
// ignores.
func uniform(l glctx.UniformLocation) (int32, bool) {
	loc, ok := l.(*location)
	if !ok || loc == nil {
		return 0, false
	}
	return loc.value, true
}

func (c *Context) Uniform1f(l glctx.UniformLocation, x float32) {
	if loc, ok := uniform(l); ok {
		gl.Uniform1f(loc, x)
	}
}

func (c *Context) Uniform2f(l glctx.UniformLocation, x, y float32) {
	if loc, ok := uniform(l); ok {
		gl.Uniform2f(loc, x, y)
	}
}

func (c *Context) Uniform3f(l glctx.UniformLocation, x, y, z float32) {
	if loc, ok := uniform(l); ok {
		gl.Uniform3f(loc, x, y, z)
	}
}

func (c *Context) Uniform1i(l glctx.UniformLocation, x int32) {
	if loc, ok := uniform(l); ok {
		gl.Uniform1i(loc, x)
	}
}

func (c *Context) Uniform4fv(l glctx.UniformLocation, v []float32) {
	if loc, ok := uniform(l); ok && len(v) >= 4 {
		gl.Uniform4fv(loc, int32(len(v)/4), &v[0])
	}
}

func (c *Context) UniformMatrix4fv(l glctx.UniformLocation, transpose bool, v []float32) {
	if transpose {
		// WebGL 1 rejects transposed uploads.
		return
	}
	if loc, ok := uniform(l); ok && len(v) >= 16 {
		gl.UniformMatrix4fv(loc, int32(len(v)/16), false, &v[0])
	}
}

func (c *Context) CreateBuffer() glctx.Buffer {
	var handle uint32
	gl.GenBuffers(1, &handle)
	return &buffer{handle: handle}
}

func (c *Context) BindBuffer(target uint32, b glctx.Buffer) {
	if b == nil {
		gl.BindBuffer(target, 0)
		return
	}
	gl.BindBuffer(target, b.(*buffer).handle)
}

func (c *Context) BufferData(target uint32, data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}
