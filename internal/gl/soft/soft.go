// Package soft is a headless gl.Context.
//
// It rasterises nothing. It keeps the state a WebGL context would keep (bindings,
// capabilities, buffers, uniforms, the error flag), optionally records every call in
// order, and checks shader sources well enough to reject text that is not GLSL. It backs the
// headless window and the test suites.
package soft

import (
	"github.com/woxQAQ/wasmgl-host/internal/gl"
)

// Call is one recorded entry point invocation.
type Call struct {
	Name string
	Args []any
}

// Shader is the soft backend's shader object.
type Shader struct {
	ID       uint32
	Type     uint32
	Source   string
	compiled bool
	log      string
	decls    declarations
	deleted  bool
}

// Program is the soft backend's program object.
type Program struct {
	ID       uint32
	Shaders  []*Shader
	linked   bool
	log      string
	attribs  map[string]int32
	uniforms map[string]bool
	values   map[string][]float32
	deleted  bool
}

// Buffer is the soft backend's buffer object.
type Buffer struct {
	ID     uint32
	Target uint32
	Data   []float32
	Usage  uint32
}

// UniformLocation names one active uniform of a linked program.
type UniformLocation struct {
	Program *Program
	Name    string
}

// VertexAttrib is the pointer state of one vertex attribute slot.
type VertexAttrib struct {
	Enabled    bool
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     int32
	Buffer     *Buffer
}

// Draw is a recorded draw call together with the objects it resolved to.
type Draw struct {
	Mode        uint32
	First       int32
	Count       int32
	Program     *Program
	ArrayBuffer *Buffer
}

// Context implements gl.Context without a GPU.
type Context struct {
	recording bool
	calls     []Call
	draws     []Draw
	drawCount uint64

	nextID uint32
	err    uint32

	enabled    map[uint32]bool
	clearColor [4]float32
	viewport   [4]int32
	scissor    [4]int32
	depthFunc  uint32
	blendSrc   uint32
	blendDst   uint32
	cullFace   uint32
	frontFace  uint32
	lineWidth  float32
	colorMask  [4]bool
	depthMask  bool

	program       *Program
	arrayBuffer   *Buffer
	elementBuffer *Buffer
	attribs       map[uint32]*VertexAttrib
}

var _ gl.Context = (*Context)(nil)

// Option configures a Context.
type Option func(*Context)

// WithRecording keeps every call and draw until ResetCalls. Without it Calls and Draws
// stay empty and only DrawCount advances.
func WithRecording() Option {
	return func(c *Context) {
		c.recording = true
	}
}

// New returns a context in the WebGL default state.
func New(opts ...Option) *Context {
	c := &Context{
		enabled:   map[uint32]bool{gl.Dither: true},
		depthFunc: gl.Less,
		blendSrc:  1,
		blendDst:  0,
		cullFace:  0x0405,
		frontFace: gl.CCW,
		lineWidth: 1,
		colorMask: [4]bool{true, true, true, true},
		depthMask: true,
		attribs:   make(map[uint32]*VertexAttrib),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) record(name string, args ...any) {
	if c.recording {
		c.calls = append(c.calls, Call{Name: name, Args: args})
	}
}

func (c *Context) draw(d Draw) {
	c.drawCount++
	if c.recording {
		c.draws = append(c.draws, d)
	}
}

func (c *Context) setError(code uint32) {
	if c.err == gl.NoError {
		c.err = code
	}
}

func (c *Context) id() uint32 {
	c.nextID++
	return c.nextID
}

// Calls returns a copy of the recorded calls.
func (c *Context) Calls() []Call {
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

// CallNames returns the names of the recorded calls, in order.
func (c *Context) CallNames() []string {
	names := make([]string, len(c.calls))
	for i, call := range c.calls {
		names[i] = call.Name
	}
	return names
}

// Draws returns the recorded draw calls.
func (c *Context) Draws() []Draw {
	out := make([]Draw, len(c.draws))
	copy(out, c.draws)
	return out
}

// DrawCount returns the number of accepted draw calls, recorded or not.
func (c *Context) DrawCount() uint64 { return c.drawCount }

// ResetCalls forgets recorded calls and draws but keeps all state.
func (c *Context) ResetCalls() {
	c.calls = nil
	c.draws = nil
}

// ViewportRect returns the current viewport as x, y, width, height.
func (c *Context) ViewportRect() [4]int32 { return c.viewport }

// ClearColorValue returns the current clear color.
func (c *Context) ClearColorValue() [4]float32 { return c.clearColor }

// DepthFuncValue returns the current depth function.
func (c *Context) DepthFuncValue() uint32 { return c.depthFunc }

// CurrentProgram returns the program installed by UseProgram.
func (c *Context) CurrentProgram() *Program { return c.program }

// BoundBuffer returns the buffer bound to target.
func (c *Context) BoundBuffer(target uint32) *Buffer {
	switch target {
	case gl.ArrayBuffer:
		return c.arrayBuffer
	case gl.ElementArrayBuffer:
		return c.elementBuffer
	}
	return nil
}

// Attrib returns the state of a vertex attribute slot, or nil if never touched.
func (c *Context) Attrib(index uint32) *VertexAttrib { return c.attribs[index] }

// UniformValue returns the last value uploaded to the named uniform of p.
func (p *Program) UniformValue(name string) []float32 {
	return p.values[name]
}

// Linked reports the link status of p.
func (p *Program) Linked() bool { return p.linked }

// Compiled reports the compile status of s.
func (s *Shader) Compiled() bool { return s.compiled }

func (c *Context) attrib(index uint32) *VertexAttrib {
	a, ok := c.attribs[index]
	if !ok {
		a = &VertexAttrib{Size: 4, Type: gl.Float}
		c.attribs[index] = a
	}
	return a
}

func (c *Context) ActiveTexture(texture uint32) { c.record("activeTexture", texture) }

func (c *Context) BlendColor(r, g, b, a float32) { c.record("blendColor", r, g, b, a) }

func (c *Context) BlendEquation(mode uint32) { c.record("blendEquation", mode) }

func (c *Context) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	c.record("blendEquationSeparate", modeRGB, modeAlpha)
}

func (c *Context) BlendFunc(sfactor, dfactor uint32) {
	c.record("blendFunc", sfactor, dfactor)
	c.blendSrc, c.blendDst = sfactor, dfactor
}

func (c *Context) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	c.record("blendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
	c.blendSrc, c.blendDst = srcRGB, dstRGB
}

func (c *Context) Clear(mask uint32) {
	c.record("clear", mask)
	if mask&^(gl.ColorBufferBit|gl.DepthBufferBit|gl.StencilBufferBit) != 0 {
		c.setError(gl.InvalidValue)
	}
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.record("clearColor", r, g, b, a)
	c.clearColor = [4]float32{r, g, b, a}
}

func (c *Context) ClearDepth(depth float32) { c.record("clearDepth", depth) }

func (c *Context) ClearStencil(s int32) { c.record("clearStencil", s) }

func (c *Context) ColorMask(r, g, b, a bool) {
	c.record("colorMask", r, g, b, a)
	c.colorMask = [4]bool{r, g, b, a}
}

func (c *Context) CullFace(mode uint32) {
	c.record("cullFace", mode)
	c.cullFace = mode
}

func (c *Context) DepthFunc(fn uint32) {
	c.record("depthFunc", fn)
	if fn < gl.Never || fn > gl.Always {
		c.setError(gl.InvalidEnum)
		return
	}
	c.depthFunc = fn
}

func (c *Context) DepthMask(flag bool) {
	c.record("depthMask", flag)
	c.depthMask = flag
}

func (c *Context) DepthRange(zNear, zFar float32) { c.record("depthRange", zNear, zFar) }

func (c *Context) Disable(capability uint32) {
	c.record("disable", capability)
	c.enabled[capability] = false
}

func (c *Context) DisableVertexAttribArray(index uint32) {
	c.record("disableVertexAttribArray", index)
	c.attrib(index).Enabled = false
}

func (c *Context) DrawArrays(mode uint32, first, count int32) {
	c.record("drawArrays", mode, first, count)
	if mode > gl.TriangleFan {
		c.setError(gl.InvalidEnum)
		return
	}
	if first < 0 || count < 0 {
		c.setError(gl.InvalidValue)
		return
	}
	if c.program == nil || !c.program.linked {
		c.setError(gl.InvalidOperation)
		return
	}
	c.draw(Draw{
		Mode:        mode,
		First:       first,
		Count:       count,
		Program:     c.program,
		ArrayBuffer: c.arrayBuffer,
	})
}

func (c *Context) DrawElements(mode uint32, count int32, typ uint32, offset int32) {
	c.record("drawElements", mode, count, typ, offset)
	if c.program == nil || c.elementBuffer == nil {
		c.setError(gl.InvalidOperation)
		return
	}
	c.draw(Draw{
		Mode:        mode,
		First:       offset,
		Count:       count,
		Program:     c.program,
		ArrayBuffer: c.arrayBuffer,
	})
}

func (c *Context) Enable(capability uint32) {
	c.record("enable", capability)
	c.enabled[capability] = true
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.record("enableVertexAttribArray", index)
	c.attrib(index).Enabled = true
}

func (c *Context) Finish() { c.record("finish") }

func (c *Context) Flush() { c.record("flush") }

func (c *Context) FrontFace(mode uint32) {
	c.record("frontFace", mode)
	c.frontFace = mode
}

func (c *Context) GenerateMipmap(target uint32) { c.record("generateMipmap", target) }

func (c *Context) GetError() uint32 {
	c.record("getError")
	code := c.err
	c.err = gl.NoError
	return code
}

func (c *Context) Hint(target, mode uint32) { c.record("hint", target, mode) }

func (c *Context) IsEnabled(capability uint32) bool {
	c.record("isEnabled", capability)
	return c.enabled[capability]
}

func (c *Context) LineWidth(width float32) {
	c.record("lineWidth", width)
	c.lineWidth = width
}

func (c *Context) PixelStorei(pname uint32, param int32) { c.record("pixelStorei", pname, param) }

func (c *Context) PolygonOffset(factor, units float32) { c.record("polygonOffset", factor, units) }

func (c *Context) SampleCoverage(value float32, invert bool) {
	c.record("sampleCoverage", value, invert)
}

func (c *Context) Scissor(x, y, width, height int32) {
	c.record("scissor", x, y, width, height)
	c.scissor = [4]int32{x, y, width, height}
}

func (c *Context) StencilFunc(fn uint32, ref int32, mask uint32) {
	c.record("stencilFunc", fn, ref, mask)
}

func (c *Context) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	c.record("stencilFuncSeparate", face, fn, ref, mask)
}

func (c *Context) StencilMask(mask uint32) { c.record("stencilMask", mask) }

func (c *Context) StencilMaskSeparate(face, mask uint32) {
	c.record("stencilMaskSeparate", face, mask)
}

func (c *Context) StencilOp(fail, zfail, zpass uint32) { c.record("stencilOp", fail, zfail, zpass) }

func (c *Context) StencilOpSeparate(face, fail, zfail, zpass uint32) {
	c.record("stencilOpSeparate", face, fail, zfail, zpass)
}

func (c *Context) VertexAttrib1f(index uint32, x float32) { c.record("vertexAttrib1f", index, x) }

func (c *Context) VertexAttrib2f(index uint32, x, y float32) {
	c.record("vertexAttrib2f", index, x, y)
}

func (c *Context) VertexAttrib3f(index uint32, x, y, z float32) {
	c.record("vertexAttrib3f", index, x, y, z)
}

func (c *Context) VertexAttrib4f(index uint32, x, y, z, w float32) {
	c.record("vertexAttrib4f", index, x, y, z, w)
}

func (c *Context) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride, offset int32) {
	c.record("vertexAttribPointer", index, size, typ, normalized, stride, offset)
	if size < 1 || size > 4 || stride < 0 || offset < 0 {
		c.setError(gl.InvalidValue)
		return
	}
	if c.arrayBuffer == nil {
		c.setError(gl.InvalidOperation)
		return
	}
	a := c.attrib(index)
	a.Size, a.Type, a.Normalized, a.Stride, a.Offset = size, typ, normalized, stride, offset
	a.Buffer = c.arrayBuffer
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.record("viewport", x, y, width, height)
	if width < 0 || height < 0 {
		c.setError(gl.InvalidValue)
		return
	}
	c.viewport = [4]int32{x, y, width, height}
}
