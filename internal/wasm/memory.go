package wasm

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/tetratelabs/wazero/api"
	"golang.org/x/text/encoding/unicode"
)

var (
	errOutOfRange  = errors.New("range exceeds memory size")
	errMisaligned  = errors.New("offset is not 4-byte aligned")
	errLengthLimit = errors.New("length overflows 32-bit address space")
)

// Memory reads guest linear memory by offset and length.
//
// The host never writes guest memory. Every read goes through the attached api.Memory
// at call time, so growth of the guest memory between calls is always observed. Read
// results are copies and stay valid after the guest runs again.
type Memory struct {
	mem api.Memory
}

// NewMemory creates a memory helper. mem may be nil and attached later.
func NewMemory(mem api.Memory) *Memory {
	return &Memory{mem: mem}
}

// Attach sets the memory to read from. It is called once the instance exists.
func (m *Memory) Attach(mem api.Memory) {
	m.mem = mem
}

// Attached reports whether a memory has been attached.
func (m *Memory) Attached() bool {
	return m.mem != nil
}

// Size returns the current size of the attached memory in bytes.
func (m *Memory) Size() uint32 {
	if m.mem == nil {
		return 0
	}
	return m.mem.Size()
}

func (m *Memory) read(op string, ptr, length uint32) ([]byte, error) {
	if m.mem == nil {
		return nil, &MemoryAccessError{Operation: op, Address: ptr, Length: length, Err: ErrMemoryNotAttached}
	}
	buf, ok := m.mem.Read(ptr, length)
	if !ok {
		return nil, &MemoryAccessError{Operation: op, Address: ptr, Length: length, Err: errOutOfRange}
	}
	return buf, nil
}

// ReadBytes returns a copy of length bytes starting at ptr.
func (m *Memory) ReadBytes(ptr, length uint32) ([]byte, error) {
	buf, err := m.read("read_bytes", ptr, length)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	return out, nil
}

// ReadString decodes length bytes at ptr as UTF-8. A leading byte order mark is
// dropped and invalid sequences decode to U+FFFD.
func (m *Memory) ReadString(ptr, length uint32) (string, error) {
	buf, err := m.read("read_string", ptr, length)
	if err != nil {
		return "", err
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(buf)
	if err != nil {
		return "", &MemoryAccessError{Operation: "read_string", Address: ptr, Length: length, Err: err}
	}
	return string(out), nil
}

// ReadFloat32s returns count little-endian float32 values starting at ptr.
// ptr must be 4-byte aligned.
func (m *Memory) ReadFloat32s(ptr, count uint32) ([]float32, error) {
	if count > math.MaxUint32/4 {
		return nil, &MemoryAccessError{Operation: "read_f32", Address: ptr, Length: count, Err: errLengthLimit}
	}
	if ptr%4 != 0 {
		return nil, &MemoryAccessError{Operation: "read_f32", Address: ptr, Length: count * 4, Err: errMisaligned}
	}
	buf, err := m.read("read_f32", ptr, count*4)
	if err != nil {
		return nil, err
	}
	out := make([]float32, count)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out, nil
}
