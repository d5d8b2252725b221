// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

// TypeReference is a possibly-generic reference to a named type.
// Arguments correspond positionally to the referent's declared type
// parameters; a type parameter may not itself carry arguments.
type TypeReference struct {
	Name      string          `json:"name"`
	Arguments []TypeReference `json:"arguments,omitempty"`
}

// Ref builds a reference to a named type with optional arguments.
func Ref(name string, arguments ...TypeReference) TypeReference {
	return TypeReference{Name: name, Arguments: arguments}
}

// Equal reports structural equality of two references.
func (r TypeReference) Equal(other TypeReference) bool {
	if r.Name != other.Name || len(r.Arguments) != len(other.Arguments) {
		return false
	}
	for i := range r.Arguments {
		if !r.Arguments[i].Equal(other.Arguments[i]) {
			return false
		}
	}
	return true
}

// Walk visits the reference and every nested argument, depth first.
func (r *TypeReference) Walk(visit func(*TypeReference)) {
	visit(r)
	for i := range r.Arguments {
		r.Arguments[i].Walk(visit)
	}
}

// References reports whether name appears anywhere in the reference tree.
func (r TypeReference) References(name string) bool {
	if r.Name == name {
		return true
	}
	for _, a := range r.Arguments {
		if a.References(name) {
			return true
		}
	}
	return false
}

// rename applies a rename rule to the reference and all nested arguments.
func (r *TypeReference) rename(search, replace string) {
	r.Walk(func(ref *TypeReference) {
		if renamed, ok := renameString(ref.Name, search, replace); ok {
			ref.Name = renamed
		}
	})
}

// substituteParams replaces parameter-name references with the positionally
// matching argument. Used when folding transparent types and instantiating
// generics.
func substituteParams(ref TypeReference, params []TypeParameter, args []TypeReference) TypeReference {
	for i, p := range params {
		if ref.Name == p.Name {
			if i < len(args) {
				return args[i]
			}
			return ref
		}
	}
	out := TypeReference{Name: ref.Name}
	if len(ref.Arguments) > 0 {
		out.Arguments = make([]TypeReference, len(ref.Arguments))
		for i, a := range ref.Arguments {
			out.Arguments[i] = substituteParams(a, params, args)
		}
	}
	return out
}

// TypeParameter is a declared generic parameter. Identity is the name;
// the description is documentation only.
type TypeParameter struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// paramIndex returns the position of name among params, or -1.
func paramIndex(params []TypeParameter, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}
