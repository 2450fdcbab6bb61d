package abi

// Names shared by the host and guest modules.
// This package defines the import namespaces and export names of the guest ABI.

// Import namespaces provided by the host.
const (
	// WebGLNamespace holds the WebGL surface: numeric pass-through functions, constants
	// as zero-argument functions, and the handle-translating entry points.
	WebGLNamespace = "webgl"

	// EnvNamespace holds the gl*-prefixed aliases of the earlier explicit surface.
	EnvNamespace = "env"

	// LogNamespace holds write and flush.
	LogNamespace = "log"
)

// Exports the host looks up on the guest.
const (
	MemoryExport = "memory"

	InitExport  = "onInit"
	FrameExport = "onAnimationFrame"

	// Names used by the development build.
	EnterExport = "enter"
	StepExport  = "step"
	ExitExport  = "exit"

	// ReactorInit is run on instantiation when the guest exports it.
	ReactorInit = "_initialize"
)

// InitExports returns the init export candidates in order of preference.
func InitExports() []string {
	return []string{InitExport, EnterExport}
}

// FrameExports returns the frame export candidates in order of preference.
func FrameExports() []string {
	return []string{FrameExport, StepExport}
}

// Shader types accepted by compileShader.
const (
	FragmentShader uint32 = 0x8B30
	VertexShader   uint32 = 0x8B31
)
