// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"iter"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Typespace is a named collection of types with name-indexed lookup.
//
// The name index is derived state: it is lazily rebuilt after any structural
// mutation (insert, remove, rename, extend, sort) and is never observable
// stale, since every lookup goes through ensureIndex first.
type Typespace struct {
	Name string

	types    []Type
	index    map[string]int // nil when stale
	reserved map[string]struct{}
}

// NewTypespace creates an empty typespace with the given name.
func NewTypespace(name string) Typespace {
	return Typespace{Name: name}
}

func (ts *Typespace) ensureIndex() {
	if ts.index != nil {
		return
	}
	ts.index = make(map[string]int, len(ts.types))
	for i, t := range ts.types {
		if _, ok := ts.index[t.TypeName()]; !ok {
			ts.index[t.TypeName()] = i
		}
	}
}

func (ts *Typespace) invalidate() {
	ts.index = nil
}

// Reserve establishes a placeholder slot for name so that self-referential
// and mutually-referential types can be constructed before their full
// definition exists. Returns whether the name was newly reserved.
func (ts *Typespace) Reserve(name string) bool {
	ts.ensureIndex()
	if _, ok := ts.index[name]; ok {
		return false
	}
	if ts.reserved == nil {
		ts.reserved = make(map[string]struct{})
	}
	if _, ok := ts.reserved[name]; ok {
		return false
	}
	ts.reserved[name] = struct{}{}
	return true
}

// IsReserved reports whether name holds a reserved-but-unfilled slot.
// Reserved slots are invisible to Get and Types, so they cannot leak into
// rendering.
func (ts *Typespace) IsReserved(name string) bool {
	_, ok := ts.reserved[name]
	return ok
}

// Insert adds a type. If a non-placeholder entry already exists under the
// same name the call is a no-op: the first writer wins. A reserved slot is
// filled in place.
func (ts *Typespace) Insert(t Type) {
	ts.ensureIndex()
	name := t.TypeName()
	if _, ok := ts.index[name]; ok {
		return
	}
	delete(ts.reserved, name)
	ts.index[name] = len(ts.types)
	ts.types = append(ts.types, t)
}

// Get returns the type registered under name.
func (ts *Typespace) Get(name string) (Type, bool) {
	ts.ensureIndex()
	i, ok := ts.index[name]
	if !ok {
		return nil, false
	}
	return ts.types[i], true
}

// Remove deletes the type registered under name and returns it.
func (ts *Typespace) Remove(name string) (Type, bool) {
	ts.ensureIndex()
	i, ok := ts.index[name]
	if !ok {
		delete(ts.reserved, name)
		return nil, false
	}
	t := ts.types[i]
	ts.types = append(ts.types[:i], ts.types[i+1:]...)
	ts.invalidate()
	return t, true
}

// Rename applies a rename rule to every type name and recursively to every
// field, variant, and fallback type reference. A search string ending in the
// module separator renames the module prefix only; otherwise the whole name
// must match.
func (ts *Typespace) Rename(search, replace string) {
	for _, t := range ts.types {
		if renamed, ok := renameString(t.TypeName(), search, replace); ok {
			t.setName(renamed)
		}
		t.renameRefs(search, replace)
	}
	ts.invalidate()
}

// Extend merges other into the typespace, skipping names already present.
func (ts *Typespace) Extend(other *Typespace) {
	for _, t := range other.types {
		ts.Insert(t)
	}
}

// SortTypes orders the types by name for deterministic serialization.
func (ts *Typespace) SortTypes() {
	sort.Slice(ts.types, func(i, j int) bool {
		return ts.types[i].TypeName() < ts.types[j].TypeName()
	})
	ts.invalidate()
}

// Names returns the sorted list of registered (non-reserved) type names.
func (ts *Typespace) Names() []string {
	names := make([]string, 0, len(ts.types))
	for _, t := range ts.types {
		names = append(names, t.TypeName())
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered types, excluding reserved slots.
func (ts *Typespace) Len() int {
	return len(ts.types)
}

// Types iterates over the registered types in insertion order.
func (ts *Typespace) Types() iter.Seq[Type] {
	return func(yield func(Type) bool) {
		for _, t := range ts.types {
			if !yield(t) {
				return
			}
		}
	}
}

// Fingerprint hashes the canonical interchange form of a type. Two types are
// treated as structurally equal when their fingerprints match.
func Fingerprint(t Type) uint64 {
	data, err := MarshalType(t)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}

// TypesEqual reports structural equality of two type definitions.
func TypesEqual(a, b Type) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	return Fingerprint(a) == Fingerprint(b)
}
