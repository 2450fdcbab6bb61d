// Package gl defines the rendering API proxied to guest modules.
//
// Context mirrors the WebGL 1 rendering context: purely numeric entry points keep their
// WebGL shape, and entry points that take or return GPU objects use the opaque Shader,
// Program, Buffer and UniformLocation types. Backends live in sub-packages.
package gl

// Opaque objects owned by a Context. Only the Context that created an object can use it.
type (
	Shader          any
	Program         any
	Buffer          any
	UniformLocation any
)

// Context is a WebGL 1 style rendering context.
//
// Methods are called from a single goroutine, the one driving the guest module.
type Context interface {
	// Numeric entry points. These are exposed to guests one-to-one.

	ActiveTexture(texture uint32)
	BlendColor(r, g, b, a float32)
	BlendEquation(mode uint32)
	BlendEquationSeparate(modeRGB, modeAlpha uint32)
	BlendFunc(sfactor, dfactor uint32)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	Clear(mask uint32)
	ClearColor(r, g, b, a float32)
	ClearDepth(depth float32)
	ClearStencil(s int32)
	ColorMask(r, g, b, a bool)
	CullFace(mode uint32)
	DepthFunc(fn uint32)
	DepthMask(flag bool)
	DepthRange(zNear, zFar float32)
	Disable(capability uint32)
	DisableVertexAttribArray(index uint32)
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, typ uint32, offset int32)
	Enable(capability uint32)
	EnableVertexAttribArray(index uint32)
	Finish()
	Flush()
	FrontFace(mode uint32)
	GenerateMipmap(target uint32)
	GetError() uint32
	Hint(target, mode uint32)
	IsEnabled(capability uint32) bool
	LineWidth(width float32)
	PixelStorei(pname uint32, param int32)
	PolygonOffset(factor, units float32)
	SampleCoverage(value float32, invert bool)
	Scissor(x, y, width, height int32)
	StencilFunc(fn uint32, ref int32, mask uint32)
	StencilFuncSeparate(face, fn uint32, ref int32, mask uint32)
	StencilMask(mask uint32)
	StencilMaskSeparate(face, mask uint32)
	StencilOp(fail, zfail, zpass uint32)
	StencilOpSeparate(face, fail, zfail, zpass uint32)
	VertexAttrib1f(index uint32, x float32)
	VertexAttrib2f(index uint32, x, y float32)
	VertexAttrib3f(index uint32, x, y, z float32)
	VertexAttrib4f(index uint32, x, y, z, w float32)
	VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride, offset int32)
	Viewport(x, y, width, height int32)

	// Object entry points. Guests reach these through handle-translating overrides.

	CreateShader(typ uint32) Shader
	ShaderSource(shader Shader, source string)
	CompileShader(shader Shader)
	// ShaderCompiled reports getShaderParameter(shader, COMPILE_STATUS).
	ShaderCompiled(shader Shader) bool
	ShaderInfoLog(shader Shader) string
	DeleteShader(shader Shader)

	CreateProgram() Program
	AttachShader(program Program, shader Shader)
	LinkProgram(program Program)
	// ProgramLinked reports getProgramParameter(program, LINK_STATUS).
	ProgramLinked(program Program) bool
	ProgramInfoLog(program Program) string
	DeleteProgram(program Program)
	UseProgram(program Program)

	GetAttribLocation(program Program, name string) int32
	// GetUniformLocation returns nil when the program has no active uniform by that name.
	GetUniformLocation(program Program, name string) UniformLocation
	Uniform1f(location UniformLocation, x float32)
	Uniform2f(location UniformLocation, x, y float32)
	Uniform3f(location UniformLocation, x, y, z float32)
	Uniform1i(location UniformLocation, x int32)
	Uniform4fv(location UniformLocation, v []float32)
	UniformMatrix4fv(location UniformLocation, transpose bool, v []float32)

	CreateBuffer() Buffer
	BindBuffer(target uint32, buffer Buffer)
	BufferData(target uint32, data []float32, usage uint32)
}
