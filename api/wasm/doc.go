// Package wasm declares the host imports for guest modules written in Go.
//
// Build the guest with GOOS=wasip1 GOARCH=wasm and -buildmode=c-shared so that it is a
// reactor: the host runs _initialize on instantiation and then calls the exports below.
//
// NOTE: uint32 is used for pointers and lengths because WebAssembly uses a 32-bit
// linear memory model. All Wasm memory addresses are represented as 32-bit integers
// (addresses 0 to 4GB).
//
// Exported functions a guest must implement:
//
//	//go:wasmexport onInit
//	func onInit()
//
//	//go:wasmexport onAnimationFrame
//	func onAnimationFrame(timestamp float64)
//
// An optional resize export receives (width, height int32) when the host is configured
// to notify it.
package wasm
