// Package handles maps small integer IDs to opaque rendering-context objects.
//
// A handle is the index of an object in its table. Tables only grow: a handle stays
// valid, and keeps naming the same object, for as long as the table exists.
package handles

import "fmt"

// Kind names the resource kind a table holds. It only shows up in errors and logs.
type Kind string

const (
	KindShader          Kind = "shader"
	KindProgram         Kind = "program"
	KindBuffer          Kind = "buffer"
	KindUniformLocation Kind = "uniform location"
)

// LookupError is returned when a handle does not name an entry in its table.
type LookupError struct {
	Kind Kind
	ID   uint32
	Len  int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown %s handle %d (table holds %d)", e.Kind, e.ID, e.Len)
}

// Table is an append-only list of objects of one kind.
// It is not safe for concurrent use; a table belongs to a single module instance.
type Table[T any] struct {
	kind  Kind
	items []T
}

// NewTable creates an empty table for the given kind.
func NewTable[T any](kind Kind) *Table[T] {
	return &Table[T]{kind: kind}
}

// Add appends v and returns its handle.
func (t *Table[T]) Add(v T) uint32 {
	t.items = append(t.items, v)
	return uint32(len(t.items) - 1)
}

// Get resolves a handle.
func (t *Table[T]) Get(id uint32) (T, error) {
	if uint64(id) >= uint64(len(t.items)) {
		var zero T
		return zero, &LookupError{Kind: t.kind, ID: id, Len: len(t.items)}
	}
	return t.items[id], nil
}

// MustGet resolves a handle and panics with a *LookupError when it is unknown.
func (t *Table[T]) MustGet(id uint32) T {
	v, err := t.Get(id)
	if err != nil {
		panic(err)
	}
	return v
}

// Len returns the number of handles issued so far.
func (t *Table[T]) Len() int {
	return len(t.items)
}

// Kind returns the resource kind of the table.
func (t *Table[T]) Kind() Kind {
	return t.kind
}
