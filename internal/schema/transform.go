// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import "github.com/cockroachdb/errors"

// TransformKind names a field-type transform applied before generation.
// It is a closed, serializable set dispatched through a TransformRegistry
// rather than a function pointer stored on the field.
type TransformKind string

const (
	// TransformNone leaves the field type untouched.
	TransformNone TransformKind = ""
	// TransformFallbackRecursively rewrites the field type through the full
	// primitive fallback chain.
	TransformFallbackRecursively TransformKind = "fallback_recursively"
)

// TransformFunc rewrites a field's type reference against a typespace.
type TransformFunc func(ref TypeReference, ts *Typespace) (TypeReference, error)

// TransformRegistry maps transform kinds to their implementations.
type TransformRegistry map[TransformKind]TransformFunc

// DefaultTransforms returns the built-in transform dispatch table.
func DefaultTransforms() TransformRegistry {
	return TransformRegistry{
		TransformFallbackRecursively: func(ref TypeReference, ts *Typespace) (TypeReference, error) {
			return ts.FallbackRecursively(ref)
		},
	}
}

// ApplyTransforms runs every field's declared transform against its owning
// typespace using the given dispatch table. Unknown kinds are an error.
func (s *Schema) ApplyTransforms(reg TransformRegistry) error {
	for _, ts := range []*Typespace{&s.InputTypes, &s.OutputTypes} {
		if err := applyTypespaceTransforms(ts, reg); err != nil {
			return err
		}
	}
	return nil
}

func applyTypespaceTransforms(ts *Typespace, reg TransformRegistry) error {
	apply := func(f *Field) error {
		if f.Transform == TransformNone {
			return nil
		}
		fn, ok := reg[f.Transform]
		if !ok {
			return errors.Newf("unknown field transform %q on field %q", f.Transform, f.Name)
		}
		ref, err := fn(f.TypeRef, ts)
		if err != nil {
			return errors.Wrapf(err, "transform %q on field %q", f.Transform, f.Name)
		}
		f.TypeRef = ref
		return nil
	}

	for t := range ts.Types() {
		switch v := t.(type) {
		case *Struct:
			for i := range v.Fields {
				if err := apply(&v.Fields[i]); err != nil {
					return err
				}
			}
		case *Enum:
			for i := range v.Variants {
				for j := range v.Variants[i].Fields {
					if err := apply(&v.Variants[i].Fields[j]); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
