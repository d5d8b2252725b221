// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

// Indirection marker primitives. The cycle-resolution stage wraps a
// cycle-member field's type reference in one of these; generators render them
// as heap-indirected, lazy, or shared references, and targets without such a
// concept elide them through the declared fallback to the wrapped type.
const (
	IndirectBoxed   = "Boxed"
	IndirectDefer   = "Deferred"
	IndirectCounted = "Counted"
)

// IsIndirection reports whether name is one of the indirection markers.
func IsIndirection(name string) bool {
	switch name {
	case IndirectBoxed, IndirectDefer, IndirectCounted:
		return true
	}
	return false
}

// IndirectionPrimitive builds the marker primitive for name: a single-parameter
// wrapper whose fallback elides it entirely.
func IndirectionPrimitive(name string) *Primitive {
	return &Primitive{
		Name:        name,
		Description: "indirection wrapper introduced to break a definition cycle",
		Parameters:  []TypeParameter{{Name: "T"}},
		Fallback:    &TypeReference{Name: "T"},
	}
}

// EnsureIndirection registers the marker primitive in the typespace if it is
// not already present.
func EnsureIndirection(ts *Typespace, name string) {
	if _, ok := ts.Get(name); ok {
		return
	}
	ts.Insert(IndirectionPrimitive(name))
}
