package wasm

import (
	"github.com/tetratelabs/wazero"
)

// HostModule is a namespace of Go functions that guest modules import by name.
type HostModule interface {
	// Name is the import module name, e.g. "webgl".
	Name() string

	// Export adds the namespace's functions to builder.
	Export(builder wazero.HostModuleBuilder)
}

// Fail aborts the running host function. wazero recovers the panic and returns it,
// wrapped, from the guest call that led here, so callers can match it with errors.As.
func Fail(function string, err error) {
	panic(&HostFunctionError{FunctionName: function, Err: err})
}
