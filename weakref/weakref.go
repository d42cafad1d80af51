// Package weakref provides a comparable weak reference, suitable as a map key or set element.
package weakref

import "weak"

// Ref is a weak reference to a value of type T. Two refs are equal if they were made from the
// same pointer. The zero Ref refers to nothing.
type Ref[T any] struct {
	p weak.Pointer[T]
}

// Make returns a weak reference to v.
func Make[T any](v *T) Ref[T] {
	return Ref[T]{weak.Make(v)}
}

// Value returns the referenced value, or nil if it was garbage collected or r is zero.
func (r Ref[T]) Value() *T { return r.p.Value() }
