package gl

import "fmt"

// ShaderCompileError is raised when a shader fails to compile.
// Log carries the context's info log verbatim.
type ShaderCompileError struct {
	Type uint32
	Log  string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("Error compiling shader (%s): %s", ShaderTypeName(e.Type), e.Log)
}

// ProgramLinkError is raised when a program fails to link.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return "Error linking program: " + e.Log
}

// ShaderTypeName returns a readable name for a shader type enum.
func ShaderTypeName(typ uint32) string {
	switch typ {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return fmt.Sprintf("0x%04X", typ)
	}
}
