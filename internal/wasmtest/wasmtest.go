// Package wasmtest assembles small WebAssembly binaries for tests.
//
// Guests in the test suites only need imports, a memory, a data segment and a handful of
// functions, so the builder writes the binary format directly.
package wasmtest

import (
	"encoding/binary"
	"math"
)

// ValType is a wasm value type.
type ValType byte

const (
	I32 ValType = 0x7F
	I64 ValType = 0x7E
	F32 ValType = 0x7D
	F64 ValType = 0x7C
)

// Opcodes used by the helpers below.
const (
	opEnd      = 0x0B
	opDrop     = 0x1A
	opCall     = 0x10
	opLocalGet = 0x20
	opI32Const = 0x41
	opI64Const = 0x42
	opF32Const = 0x43
	opF64Const = 0x44
	opUnreach  = 0x00
)

type funcType struct {
	params, results []ValType
}

type importFunc struct {
	module, name string
	typ          uint32
}

type function struct {
	typ    uint32
	locals []ValType
	body   []byte
}

type export struct {
	name  string
	kind  byte
	index uint32
}

type segment struct {
	offset uint32
	data   []byte
}

// Module builds a wasm binary. Imports must be added before functions so that function
// indices returned by Import and Func are final.
type Module struct {
	types   []funcType
	imports []importFunc
	funcs   []function
	memory  *uint32
	exports []export
	data    []segment
}

// New returns an empty module.
func New() *Module {
	return &Module{}
}

func (m *Module) typeIndex(params, results []ValType) uint32 {
	for i, t := range m.types {
		if equal(t.params, params) && equal(t.results, results) {
			return uint32(i)
		}
	}
	m.types = append(m.types, funcType{params: params, results: results})
	return uint32(len(m.types) - 1)
}

// Import declares an imported function and returns its function index.
func (m *Module) Import(module, name string, params, results []ValType) uint32 {
	if len(m.funcs) > 0 {
		panic("wasmtest: Import after Func")
	}
	m.imports = append(m.imports, importFunc{module: module, name: name, typ: m.typeIndex(params, results)})
	return uint32(len(m.imports) - 1)
}

// Func defines a function and returns its function index. The trailing end opcode is
// appended automatically.
func (m *Module) Func(params, results, locals []ValType, body ...[]byte) uint32 {
	var code []byte
	for _, b := range body {
		code = append(code, b...)
	}
	m.funcs = append(m.funcs, function{typ: m.typeIndex(params, results), locals: locals, body: code})
	return uint32(len(m.imports) + len(m.funcs) - 1)
}

// ExportFunc exports function index under name.
func (m *Module) ExportFunc(name string, index uint32) *Module {
	m.exports = append(m.exports, export{name: name, kind: 0x00, index: index})
	return m
}

// Memory declares memory 0 with the given minimum page count, exported as name when
// name is non-empty.
func (m *Module) Memory(pages uint32, name string) *Module {
	m.memory = &pages
	if name != "" {
		m.exports = append(m.exports, export{name: name, kind: 0x02, index: 0})
	}
	return m
}

// Data places bytes at offset in memory 0.
func (m *Module) Data(offset uint32, data []byte) *Module {
	m.data = append(m.data, segment{offset: offset, data: data})
	return m
}

// Bytes encodes the module.
func (m *Module) Bytes() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

	if len(m.types) > 0 {
		var sec []byte
		sec = appendU32(sec, uint32(len(m.types)))
		for _, t := range m.types {
			sec = append(sec, 0x60)
			sec = appendValTypes(sec, t.params)
			sec = appendValTypes(sec, t.results)
		}
		out = appendSection(out, 1, sec)
	}

	if len(m.imports) > 0 {
		var sec []byte
		sec = appendU32(sec, uint32(len(m.imports)))
		for _, imp := range m.imports {
			sec = appendName(sec, imp.module)
			sec = appendName(sec, imp.name)
			sec = append(sec, 0x00)
			sec = appendU32(sec, imp.typ)
		}
		out = appendSection(out, 2, sec)
	}

	if len(m.funcs) > 0 {
		var sec []byte
		sec = appendU32(sec, uint32(len(m.funcs)))
		for _, f := range m.funcs {
			sec = appendU32(sec, f.typ)
		}
		out = appendSection(out, 3, sec)
	}

	if m.memory != nil {
		sec := appendU32(nil, 1)
		sec = append(sec, 0x00)
		sec = appendU32(sec, *m.memory)
		out = appendSection(out, 5, sec)
	}

	if len(m.exports) > 0 {
		var sec []byte
		sec = appendU32(sec, uint32(len(m.exports)))
		for _, e := range m.exports {
			sec = appendName(sec, e.name)
			sec = append(sec, e.kind)
			sec = appendU32(sec, e.index)
		}
		out = appendSection(out, 7, sec)
	}

	if len(m.funcs) > 0 {
		var sec []byte
		sec = appendU32(sec, uint32(len(m.funcs)))
		for _, f := range m.funcs {
			var entry []byte
			entry = appendU32(entry, uint32(len(f.locals)))
			for _, l := range f.locals {
				entry = appendU32(entry, 1)
				entry = append(entry, byte(l))
			}
			entry = append(entry, f.body...)
			entry = append(entry, opEnd)
			sec = appendU32(sec, uint32(len(entry)))
			sec = append(sec, entry...)
		}
		out = appendSection(out, 10, sec)
	}

	if len(m.data) > 0 {
		var sec []byte
		sec = appendU32(sec, uint32(len(m.data)))
		for _, d := range m.data {
			sec = append(sec, 0x00)
			sec = append(sec, I32Const(int32(d.offset))...)
			sec = append(sec, opEnd)
			sec = appendU32(sec, uint32(len(d.data)))
			sec = append(sec, d.data...)
		}
		out = appendSection(out, 11, sec)
	}

	return out
}

// I32Const pushes v.
func I32Const(v int32) []byte {
	return appendS64([]byte{opI32Const}, int64(v))
}

// I64Const pushes v.
func I64Const(v int64) []byte {
	return appendS64([]byte{opI64Const}, v)
}

// F32Const pushes v.
func F32Const(v float32) []byte {
	return binary.LittleEndian.AppendUint32([]byte{opF32Const}, math.Float32bits(v))
}

// F64Const pushes v.
func F64Const(v float64) []byte {
	return binary.LittleEndian.AppendUint64([]byte{opF64Const}, math.Float64bits(v))
}

// LocalGet pushes local i.
func LocalGet(i uint32) []byte {
	return appendU32([]byte{opLocalGet}, i)
}

// Call calls function index.
func Call(index uint32) []byte {
	return appendU32([]byte{opCall}, index)
}

// Drop discards the top of the stack.
func Drop() []byte {
	return []byte{opDrop}
}

// Unreachable traps.
func Unreachable() []byte {
	return []byte{opUnreach}
}

// Params is shorthand for a value type list.
func Params(types ...ValType) []ValType {
	return types
}

func appendSection(out []byte, id byte, body []byte) []byte {
	out = append(out, id)
	out = appendU32(out, uint32(len(body)))
	return append(out, body...)
}

func appendName(out []byte, s string) []byte {
	out = appendU32(out, uint32(len(s)))
	return append(out, s...)
}

func appendValTypes(out []byte, types []ValType) []byte {
	out = appendU32(out, uint32(len(types)))
	for _, t := range types {
		out = append(out, byte(t))
	}
	return out
}

func appendU32(out []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func appendS64(out []byte, v int64) []byte {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func equal(a, b []ValType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
