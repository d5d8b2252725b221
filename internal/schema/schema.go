// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import "sort"

// Schema is the top-level container: an input typespace, an output typespace,
// and the list of exposed functions. Input and output are kept separate
// because the same logical type may need different shapes per direction
// (e.g. differing optionality).
type Schema struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	InputTypes  Typespace  `json:"input_types,omitempty"`
	OutputTypes Typespace  `json:"output_types,omitempty"`
	Functions   []Function `json:"functions,omitempty"`
}

// NewSchema creates an empty schema.
func NewSchema(name string) *Schema {
	return &Schema{
		Name:        name,
		InputTypes:  NewTypespace("input"),
		OutputTypes: NewTypespace("output"),
	}
}

// LookupType finds a type by name, preferring the input typespace.
func (s *Schema) LookupType(name string) (Type, bool) {
	if t, ok := s.InputTypes.Get(name); ok {
		return t, true
	}
	return s.OutputTypes.Get(name)
}

// RenameType applies a rename rule to both typespaces and to every function
// signature reference.
func (s *Schema) RenameType(search, replace string) {
	s.InputTypes.Rename(search, replace)
	s.OutputTypes.Rename(search, replace)
	for i := range s.Functions {
		s.Functions[i].renameRefs(search, replace)
	}
}

// ConsolidateTypes guarantees that no name present in both typespaces maps to
// two structurally different definitions, and returns the sorted union of all
// type names.
//
// Colliding non-equal definitions are disambiguated by inserting an "input"
// or "output" path segment before the trailing name segment. The loop re-runs
// the scan after each rename pass: every renamed pair leaves the collision
// set, so the pass count is bounded by the number of originally colliding
// names. Names that would collide with an existing input/output submodule
// entry are assumed absent (see DESIGN.md).
func (s *Schema) ConsolidateTypes() []string {
	for {
		all := make(map[string]struct{})
		var conflicting []string
		for t := range s.InputTypes.Types() {
			all[t.TypeName()] = struct{}{}
		}
		for t := range s.OutputTypes.Types() {
			name := t.TypeName()
			all[name] = struct{}{}
			in, ok := s.InputTypes.Get(name)
			if !ok {
				continue
			}
			if !TypesEqual(in, t) {
				conflicting = append(conflicting, name)
			}
		}

		if len(conflicting) == 0 {
			names := make([]string, 0, len(all))
			for name := range all {
				names = append(names, name)
			}
			sort.Strings(names)
			return names
		}

		sort.Strings(conflicting)
		for _, name := range conflicting {
			qn := ParseName(name)
			inputName := qn.WithSegmentBeforeLast(s.InputTypes.Name).String()
			outputName := qn.WithSegmentBeforeLast(s.OutputTypes.Name).String()
			s.InputTypes.Rename(name, inputName)
			s.OutputTypes.Rename(name, outputName)
			for i := range s.Functions {
				s.Functions[i].renameInputRefs(name, inputName)
				s.Functions[i].renameOutputRefs(name, outputName)
			}
		}
	}
}

// FoldTransparentTypes removes single-field wrapper structs marked
// transparent, rewriting every reference to the wrapper into a reference to
// the wrapped field's type with generic arguments substituted.
func (s *Schema) FoldTransparentTypes() {
	for _, ts := range []*Typespace{&s.InputTypes, &s.OutputTypes} {
		for {
			folded := false
			for _, name := range ts.Names() {
				t, ok := ts.Get(name)
				if !ok {
					continue
				}
				st, ok := t.(*Struct)
				if !ok || !st.Transparent || len(st.Fields) != 1 {
					continue
				}
				inner := st.Fields[0].TypeRef
				params := st.Parameters
				replaceTransparentRefs(ts, name, params, inner)
				s.replaceFunctionRefs(name, params, inner)
				ts.Remove(name)
				folded = true
				break
			}
			if !folded {
				break
			}
		}
	}
}

func (s *Schema) replaceFunctionRefs(wrapper string, params []TypeParameter, inner TypeReference) {
	for i := range s.Functions {
		f := &s.Functions[i]
		for _, ref := range []**TypeReference{&f.InputType, &f.InputHeaders, &f.OutputType, &f.ErrorType} {
			if *ref != nil {
				folded := foldRef(**ref, wrapper, params, inner)
				*ref = &folded
			}
		}
	}
}

func replaceTransparentRefs(ts *Typespace, wrapper string, params []TypeParameter, inner TypeReference) {
	for t := range ts.Types() {
		switch v := t.(type) {
		case *Struct:
			for i := range v.Fields {
				v.Fields[i].TypeRef = foldRef(v.Fields[i].TypeRef, wrapper, params, inner)
			}
		case *Enum:
			for i := range v.Variants {
				for j := range v.Variants[i].Fields {
					v.Variants[i].Fields[j].TypeRef = foldRef(v.Variants[i].Fields[j].TypeRef, wrapper, params, inner)
				}
			}
		case *Primitive:
			if v.Fallback != nil {
				folded := foldRef(*v.Fallback, wrapper, params, inner)
				v.Fallback = &folded
			}
		}
	}
}

// foldRef rewrites wrapper<args...> into the wrapped inner reference with the
// wrapper's parameters substituted by args, recursing through arguments.
func foldRef(ref TypeReference, wrapper string, params []TypeParameter, inner TypeReference) TypeReference {
	if len(ref.Arguments) > 0 {
		args := make([]TypeReference, len(ref.Arguments))
		for i, a := range ref.Arguments {
			args[i] = foldRef(a, wrapper, params, inner)
		}
		ref.Arguments = args
	}
	if ref.Name == wrapper {
		return substituteParams(inner, params, ref.Arguments)
	}
	return ref
}
