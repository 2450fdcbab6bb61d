//go:build wasm

package wasm

import "unsafe"

//go:wasmimport log write
func write(ptr unsafe.Pointer, length uint32)

//go:wasmimport log flush
func flush()

// Write appends s to the host log buffer.
func Write(s string) {
	if len(s) == 0 {
		return
	}
	write(unsafe.Pointer(unsafe.StringData(s)), uint32(len(s)))
}

// Flush emits the buffered text as one log line.
func Flush() { flush() }

// Println writes s and flushes.
func Println(s string) {
	Write(s)
	Flush()
}
