package soft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woxQAQ/wasmgl-host/internal/gl"
)

const vertexSrc = `
attribute vec3 a_position;
attribute vec2 a_uv, a_extra;
uniform mat4 u_mvp;
varying vec2 v_uv;

void main() {
	v_uv = a_uv;
	gl_Position = u_mvp * vec4(a_position, 1.0);
}
`

const fragmentSrc = `
#ifdef GL_ES
precision mediump float;
#endif
uniform vec4 u_color;
uniform float u_time[2];
varying vec2 v_uv;

/* block comment */
void main() {
	// line comment
	gl_FragColor = u_color * v_uv.x;
}
`

func compile(t *testing.T, c *Context, typ uint32, src string) gl.Shader {
	t.Helper()
	sh := c.CreateShader(typ)
	c.ShaderSource(sh, src)
	c.CompileShader(sh)
	require.True(t, c.ShaderCompiled(sh), "compile log: %s", c.ShaderInfoLog(sh))
	return sh
}

func link(t *testing.T, c *Context) gl.Program {
	t.Helper()
	prog := c.CreateProgram()
	c.AttachShader(prog, compile(t, c, gl.VertexShader, vertexSrc))
	c.AttachShader(prog, compile(t, c, gl.FragmentShader, fragmentSrc))
	c.LinkProgram(prog)
	require.True(t, c.ProgramLinked(prog), "link log: %s", c.ProgramInfoLog(prog))
	return prog
}

func TestCompileShader_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantLog string
	}{
		{"prose", "not valid glsl", "ERROR: 0:1: 'not' : syntax error"},
		{"empty", "   ", "empty shader source"},
		{"no main", "precision mediump float;\nuniform vec4 c;", "'main' : function not defined"},
		{"unbalanced", "void main() {", "unexpected end of file"},
		{"mismatched", "void main() { ) }", "')' : syntax error"},
		{"string literal", "void main() { \"x\"; }", "'\"' : syntax error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			sh := c.CreateShader(gl.FragmentShader)
			c.ShaderSource(sh, tt.src)
			c.CompileShader(sh)

			assert.False(t, c.ShaderCompiled(sh))
			assert.Contains(t, c.ShaderInfoLog(sh), tt.wantLog)
		})
	}
}

func TestCompileShader_Struct(t *testing.T) {
	c := New()
	compile(t, c, gl.FragmentShader, `
precision mediump float;
struct Light { vec3 dir; float power; } sun;
uniform Light u_light;
Light makeLight() { Light l; return l; }
void main() { gl_FragColor = vec4(u_light.power); }
`)
}

func TestCreateShader_BadType(t *testing.T) {
	c := New()
	assert.Nil(t, c.CreateShader(0x1234))
	assert.Equal(t, gl.InvalidEnum, c.GetError())
	assert.Equal(t, gl.NoError, c.GetError())
}

func TestLinkProgram(t *testing.T) {
	c := New()
	prog := link(t, c)

	assert.Equal(t, int32(0), c.GetAttribLocation(prog, "a_position"))
	assert.Equal(t, int32(1), c.GetAttribLocation(prog, "a_uv"))
	assert.Equal(t, int32(2), c.GetAttribLocation(prog, "a_extra"))
	assert.Equal(t, int32(-1), c.GetAttribLocation(prog, "missing"))

	assert.NotNil(t, c.GetUniformLocation(prog, "u_mvp"))
	assert.NotNil(t, c.GetUniformLocation(prog, "u_color"))
	assert.NotNil(t, c.GetUniformLocation(prog, "u_time[1]"))
	assert.Nil(t, c.GetUniformLocation(prog, "missing"))
}

func TestLinkProgram_MissingShader(t *testing.T) {
	c := New()
	prog := c.CreateProgram()
	c.AttachShader(prog, compile(t, c, gl.VertexShader, vertexSrc))
	c.LinkProgram(prog)

	assert.False(t, c.ProgramLinked(prog))
	assert.Equal(t, "ERROR: Missing fragment shader", c.ProgramInfoLog(prog))
}

func TestLinkProgram_VaryingMismatch(t *testing.T) {
	c := New()
	prog := c.CreateProgram()
	c.AttachShader(prog, compile(t, c, gl.VertexShader, vertexSrc))
	c.AttachShader(prog, compile(t, c, gl.FragmentShader, "precision mediump float;\nvarying vec3 v_uv;\nvoid main() {}"))
	c.LinkProgram(prog)

	assert.False(t, c.ProgramLinked(prog))
	assert.Contains(t, c.ProgramInfoLog(prog), "v_uv")
}

func TestUniforms(t *testing.T) {
	c := New()
	prog := link(t, c)
	loc := c.GetUniformLocation(prog, "u_color")

	// Uploading without the program installed is an error.
	c.Uniform4fv(loc, []float32{1, 2, 3, 4})
	assert.Equal(t, gl.InvalidOperation, c.GetError())

	c.UseProgram(prog)
	c.Uniform4fv(loc, []float32{1, 2, 3, 4})
	assert.Equal(t, gl.NoError, c.GetError())
	assert.Equal(t, []float32{1, 2, 3, 4}, prog.(*Program).UniformValue("u_color"))

	// A nil location is ignored.
	c.Uniform4fv(nil, []float32{9, 9, 9, 9})
	assert.Equal(t, gl.NoError, c.GetError())

	c.UniformMatrix4fv(c.GetUniformLocation(prog, "u_mvp"), true, make([]float32, 16))
	assert.Equal(t, gl.InvalidValue, c.GetError())
}

func TestBuffers(t *testing.T) {
	c := New()

	c.BufferData(gl.ArrayBuffer, []float32{1}, gl.StaticDraw)
	assert.Equal(t, gl.InvalidOperation, c.GetError())

	buf := c.CreateBuffer()
	c.BindBuffer(gl.ArrayBuffer, buf)
	c.BufferData(gl.ArrayBuffer, []float32{0, 0.5, -0.5}, gl.StaticDraw)
	assert.Equal(t, gl.NoError, c.GetError())

	got := c.BoundBuffer(gl.ArrayBuffer)
	require.Same(t, buf, got)
	assert.Equal(t, []float32{0, 0.5, -0.5}, got.Data)
	assert.Equal(t, gl.StaticDraw, got.Usage)

	// A buffer keeps its first target.
	c.BindBuffer(gl.ElementArrayBuffer, buf)
	assert.Equal(t, gl.InvalidOperation, c.GetError())
}

func TestDrawArrays_ResolvesBoundObjects(t *testing.T) {
	c := New(WithRecording())
	prog := link(t, c)
	buf := c.CreateBuffer()

	c.DrawArrays(gl.Triangles, 0, 3)
	assert.Equal(t, gl.InvalidOperation, c.GetError())

	c.UseProgram(prog)
	c.BindBuffer(gl.ArrayBuffer, buf)
	c.VertexAttribPointer(0, 3, gl.Float, false, 0, 0)
	c.EnableVertexAttribArray(0)
	c.DrawArrays(gl.Triangles, 0, 3)

	draws := c.Draws()
	require.Len(t, draws, 1)
	assert.Same(t, prog, draws[0].Program)
	assert.Same(t, buf, draws[0].ArrayBuffer)
	assert.Equal(t, int32(3), draws[0].Count)

	attr := c.Attrib(0)
	require.NotNil(t, attr)
	assert.True(t, attr.Enabled)
	assert.Same(t, buf, attr.Buffer)
}

func TestStateAndRecording(t *testing.T) {
	c := New(WithRecording())

	c.ClearColor(0.1, 0.2, 0.3, 1)
	c.Enable(gl.DepthTest)
	c.DepthFunc(gl.Lequal)
	c.Clear(gl.ColorBufferBit | gl.DepthBufferBit)
	c.Viewport(0, 0, 640, 480)

	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, c.ClearColorValue())
	assert.True(t, c.IsEnabled(gl.DepthTest))
	assert.Equal(t, gl.Lequal, c.DepthFuncValue())
	assert.Equal(t, [4]int32{0, 0, 640, 480}, c.ViewportRect())
	assert.Equal(t,
		[]string{"clearColor", "enable", "depthFunc", "clear", "viewport", "isEnabled"},
		c.CallNames())

	c.ResetCalls()
	assert.Empty(t, c.Calls())
	assert.Equal(t, [4]int32{0, 0, 640, 480}, c.ViewportRect())
}

func TestRecordingOffByDefault(t *testing.T) {
	c := New()
	prog := link(t, c)
	c.UseProgram(prog)
	for i := 0; i < 1000; i++ {
		c.ClearColor(0, 0, 0, 1)
		c.Clear(gl.ColorBufferBit)
		c.DrawArrays(gl.Triangles, 0, 3)
	}

	assert.Empty(t, c.Calls())
	assert.Empty(t, c.Draws())
	assert.Equal(t, uint64(1000), c.DrawCount())
	assert.Equal(t, [4]float32{0, 0, 0, 1}, c.ClearColorValue())
}

func TestGetError_FirstErrorWins(t *testing.T) {
	c := New()
	c.Clear(0xFFFFFFFF)
	c.DepthFunc(0)
	assert.Equal(t, gl.InvalidValue, c.GetError())
	assert.Equal(t, gl.NoError, c.GetError())
}
