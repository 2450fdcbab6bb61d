//go:build wasm

package wasm

import "unsafe"

//go:wasmimport webgl compileShader
func compileShader(srcPtr unsafe.Pointer, srcLen uint32, typ uint32) uint32

//go:wasmimport webgl linkShaderProgram
func linkShaderProgram(vertex, fragment uint32) uint32

//go:wasmimport webgl getAttribLocation
func getAttribLocation(program uint32, namePtr unsafe.Pointer, nameLen uint32) int32

//go:wasmimport webgl getUniformLocation
func getUniformLocation(program uint32, namePtr unsafe.Pointer, nameLen uint32) uint32

//go:wasmimport webgl bufferData
func bufferData(target uint32, dataPtr unsafe.Pointer, count uint32, usage uint32)

//go:wasmimport webgl uniformMatrix4fv
func uniformMatrix4fv(location uint32, transpose uint32, dataPtr unsafe.Pointer)

// CompileShader compiles src as a shader of type typ and returns its handle. A compile
// error traps.
func CompileShader(src string, typ uint32) uint32 {
	return compileShader(unsafe.Pointer(unsafe.StringData(src)), uint32(len(src)), typ)
}

// LinkShaderProgram links two compiled shaders and returns the program handle. A link
// error traps.
func LinkShaderProgram(vertex, fragment uint32) uint32 {
	return linkShaderProgram(vertex, fragment)
}

// GetAttribLocation returns the location of an attribute, or -1.
func GetAttribLocation(program uint32, name string) int32 {
	return getAttribLocation(program, unsafe.Pointer(unsafe.StringData(name)), uint32(len(name)))
}

// GetUniformLocation returns a uniform location handle.
func GetUniformLocation(program uint32, name string) uint32 {
	return getUniformLocation(program, unsafe.Pointer(unsafe.StringData(name)), uint32(len(name)))
}

// BufferData uploads data to the buffer bound to target.
func BufferData(target uint32, data []float32, usage uint32) {
	if len(data) == 0 {
		return
	}
	bufferData(target, unsafe.Pointer(&data[0]), uint32(len(data)), usage)
}

// UniformMatrix4fv sets a mat4 uniform from column-major values.
func UniformMatrix4fv(location uint32, m *[16]float32) {
	uniformMatrix4fv(location, 0, unsafe.Pointer(m))
}

//go:wasmimport webgl createBuffer
func CreateBuffer() uint32

//go:wasmimport webgl bindBuffer
func BindBuffer(target, buffer uint32)

//go:wasmimport webgl useProgram
func UseProgram(program uint32)

//go:wasmimport webgl uniform1f
func Uniform1f(location uint32, x float32)

//go:wasmimport webgl uniform2f
func Uniform2f(location uint32, x, y float32)

//go:wasmimport webgl uniform4fv
func Uniform4fv(location uint32, x, y, z, w float32)

//go:wasmimport webgl clearColor
func ClearColor(r, g, b, a float32)

//go:wasmimport webgl clear
func Clear(mask uint32)

//go:wasmimport webgl enable
func Enable(capability uint32)

//go:wasmimport webgl depthFunc
func DepthFunc(fn uint32)

//go:wasmimport webgl viewport
func Viewport(x, y, width, height int32)

//go:wasmimport webgl enableVertexAttribArray
func EnableVertexAttribArray(index uint32)

//go:wasmimport webgl vertexAttribPointer
func VertexAttribPointer(index uint32, size int32, typ uint32, normalized uint32, stride, offset int32)

//go:wasmimport webgl drawArrays
func DrawArrays(mode uint32, first, count int32)
