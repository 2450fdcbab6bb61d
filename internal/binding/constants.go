package binding

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/woxQAQ/wasmgl-host/internal/gl"
)

// constants exposes each WebGL constant as a function of no arguments returning its
// value, under the constant's own name. Host modules cannot export globals.
func constants() map[string]Func {
	funcs := make(map[string]Func, len(gl.Constants))
	for name, value := range gl.Constants {
		encoded := api.EncodeU32(value)
		funcs[name] = Func{
			Results: []api.ValueType{api.ValueTypeI32},
			Fn: func(_ context.Context, _ *Surface, stack []uint64) {
				stack[0] = encoded
			},
		}
	}
	return funcs
}
