package wasm

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/woxQAQ/wasmgl-host/internal/wasmtest"
)

func float32Bytes(vs ...float32) []byte {
	var out []byte
	for _, v := range vs {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

// guestMemory instantiates a one-page module whose memory holds data at offset.
func guestMemory(t *testing.T, offset uint32, data []byte) api.Memory {
	t.Helper()
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	t.Cleanup(func() { r.Close(ctx) })

	mod, err := r.Instantiate(ctx, wasmtest.New().Memory(1, "memory").Data(offset, data).Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return mod.ExportedMemory("memory")
}

func TestMemory_NotAttached(t *testing.T) {
	mem := NewMemory(nil)
	if mem.Attached() {
		t.Fatal("New memory without api.Memory should not be attached")
	}

	_, err := mem.ReadString(0, 1)
	if !errors.Is(err, ErrMemoryNotAttached) {
		t.Errorf("err = %v, want ErrMemoryNotAttached", err)
	}
	if mem.Size() != 0 {
		t.Errorf("Size = %d, want 0", mem.Size())
	}
}

func TestMemory_ReadString(t *testing.T) {
	payload := []byte("Hello\xEF\xBB\xBFbom\xFFx")
	mem := NewMemory(nil)
	mem.Attach(guestMemory(t, 16, payload))

	tests := []struct {
		name      string
		ptr, size uint32
		want      string
	}{
		{"plain", 16, 5, "Hello"},
		{"empty", 16, 0, ""},
		{"leading bom dropped", 21, 6, "bom"},
		{"invalid byte replaced", 26, 3, "m�x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mem.ReadString(tt.ptr, tt.size)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ReadString(%d, %d) = %q, want %q", tt.ptr, tt.size, got, tt.want)
			}
		})
	}
}

func TestMemory_ReadBytesIsACopy(t *testing.T) {
	raw := guestMemory(t, 0, []byte{1, 2, 3})
	mem := NewMemory(raw)

	got, err := mem.ReadBytes(0, 3)
	if err != nil {
		t.Fatal(err)
	}
	raw.WriteByte(0, 9)
	if got[0] != 1 {
		t.Error("ReadBytes result should not alias guest memory")
	}
}

func TestMemory_ReadFloat32s(t *testing.T) {
	mem := NewMemory(guestMemory(t, 64, float32Bytes(0, 0.5, -0.5, -0.5, 0.5, -0.5)))

	got, err := mem.ReadFloat32s(64, 6)
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{0, 0.5, -0.5, -0.5, 0.5, -0.5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ReadFloat32s = %v, want %v", got, want)
		}
	}

	var accessErr *MemoryAccessError
	if _, err := mem.ReadFloat32s(66, 1); !errors.As(err, &accessErr) {
		t.Errorf("misaligned read: err = %v, want *MemoryAccessError", err)
	}
	if _, err := mem.ReadFloat32s(math.MaxUint32-3, 2); !errors.As(err, &accessErr) {
		t.Errorf("overflowing read: err = %v, want *MemoryAccessError", err)
	}
	if _, err := mem.ReadFloat32s(0, math.MaxUint32/2); !errors.As(err, &accessErr) {
		t.Errorf("huge count: err = %v, want *MemoryAccessError", err)
	}
}

func TestMemory_OutOfRange(t *testing.T) {
	mem := NewMemory(guestMemory(t, 0, nil))

	_, err := mem.ReadBytes(mem.Size()-2, 4)
	var accessErr *MemoryAccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("err = %v, want *MemoryAccessError", err)
	}
	if accessErr.Operation != "read_bytes" || accessErr.Length != 4 {
		t.Errorf("unexpected error detail: %+v", accessErr)
	}
}

func TestMemory_SeesGrowth(t *testing.T) {
	raw := guestMemory(t, 0, nil)
	mem := NewMemory(raw)

	end := mem.Size()
	if _, err := mem.ReadBytes(end, 4); err == nil {
		t.Fatal("read past the end should fail before growth")
	}
	if _, ok := raw.Grow(1); !ok {
		t.Fatal("grow failed")
	}
	if _, err := mem.ReadBytes(end, 4); err != nil {
		t.Errorf("read after growth: %v", err)
	}
}
