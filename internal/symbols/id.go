// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package symbols assigns stable structured identifiers to schema entities
// and tracks the dependency graph between them.
package symbols

import "strings"

// Kind categorizes a symbol.
type Kind uint8

const (
	KindStruct Kind = iota
	KindEnum
	KindPrimitive
	KindField
	KindVariant
	KindEndpoint
	KindTypeAlias
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindPrimitive:
		return "primitive"
	case KindField:
		return "field"
	case KindVariant:
		return "variant"
	case KindEndpoint:
		return "endpoint"
	case KindTypeAlias:
		return "type_alias"
	default:
		return "unknown"
	}
}

// ID is a stable structured symbol identifier: a kind plus a path.
// Two symbols are equal iff kind and full path match. IDs are totally
// ordered so that iteration over them is deterministic.
type ID struct {
	Kind Kind
	Path []string
}

// NewID builds an ID from a kind and path segments.
func NewID(kind Kind, path ...string) ID {
	return ID{Kind: kind, Path: path}
}

// Child derives an ID one path segment deeper with a new kind.
func (id ID) Child(kind Kind, segment string) ID {
	path := make([]string, 0, len(id.Path)+1)
	path = append(path, id.Path...)
	path = append(path, segment)
	return ID{Kind: kind, Path: path}
}

// Equal reports whether both kind and full path match.
func (id ID) Equal(other ID) bool {
	return id.Compare(other) == 0
}

// Compare orders IDs by kind, then path segments lexicographically.
func (id ID) Compare(other ID) int {
	if id.Kind != other.Kind {
		if id.Kind < other.Kind {
			return -1
		}
		return 1
	}
	for i := 0; i < len(id.Path) && i < len(other.Path); i++ {
		if c := strings.Compare(id.Path[i], other.Path[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(id.Path) < len(other.Path):
		return -1
	case len(id.Path) > len(other.Path):
		return 1
	}
	return 0
}

// PathString returns the separator-joined path.
func (id ID) PathString() string {
	return strings.Join(id.Path, ".")
}

// String returns the kind-qualified display form, e.g. "struct:app.Pet".
func (id ID) String() string {
	return id.Kind.String() + ":" + id.PathString()
}

// key is the map key form; paths cannot contain the unit separator.
func (id ID) key() string {
	return id.Kind.String() + "\x1f" + strings.Join(id.Path, "\x1f")
}
