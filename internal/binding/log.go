package binding

import (
	"context"

	"github.com/tetratelabs/wazero/api"
)

// Log returns the log namespace: write appends guest text, flush emits it as one line.
func Log() *Namespace {
	return NewNamespace(LogNamespace).Layer(map[string]Func{
		"write": {
			Params:     []api.ValueType{api.ValueTypeI32, api.ValueTypeI32},
			ParamNames: []string{"ptr", "len"},
			Fn: func(_ context.Context, s *Surface, stack []uint64) {
				s.WriteLog(s.str("write", api.DecodeU32(stack[0]), api.DecodeU32(stack[1])))
			},
		},
		"flush": {
			Fn: func(_ context.Context, s *Surface, _ []uint64) {
				s.FlushLog()
			},
		},
	})
}

// WriteLog appends text to the pending log.
func (s *Surface) WriteLog(text string) {
	s.logBuf.WriteString(text)
}

// FlushLog emits the pending log as a single output and clears it. Nothing is emitted
// when no text is pending.
func (s *Surface) FlushLog() {
	if s.logBuf.Len() == 0 {
		return
	}
	text := s.logBuf.String()
	s.logBuf.Reset()
	s.sink(text)
}
