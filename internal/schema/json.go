// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	json "github.com/goccy/go-json"

	"github.com/cockroachdb/errors"
)

// typeEnvelope is the kind-tagged interchange form of the Type union.
// Empty strings, empty collections, and false booleans are omitted.
type typeEnvelope struct {
	Kind           Kind            `json:"kind"`
	Name           string          `json:"name"`
	SerdeName      string          `json:"serde_name,omitempty"`
	Description    string          `json:"description,omitempty"`
	Parameters     []TypeParameter `json:"parameters,omitempty"`
	Fallback       *TypeReference  `json:"fallback,omitempty"`
	Fields         []Field         `json:"fields,omitempty"`
	Transparent    bool            `json:"transparent,omitempty"`
	Representation *Representation `json:"representation,omitempty"`
	Variants       []Variant       `json:"variants,omitempty"`
}

func envelope(t Type) (*typeEnvelope, error) {
	switch v := t.(type) {
	case *Primitive:
		return &typeEnvelope{
			Kind:        KindPrimitive,
			Name:        v.Name,
			Description: v.Description,
			Parameters:  v.Parameters,
			Fallback:    v.Fallback,
		}, nil
	case *Struct:
		return &typeEnvelope{
			Kind:        KindStruct,
			Name:        v.Name,
			SerdeName:   v.SerdeName,
			Description: v.Description,
			Parameters:  v.Parameters,
			Fields:      v.Fields,
			Transparent: v.Transparent,
		}, nil
	case *Enum:
		env := &typeEnvelope{
			Kind:        KindEnum,
			Name:        v.Name,
			SerdeName:   v.SerdeName,
			Description: v.Description,
			Parameters:  v.Parameters,
			Variants:    v.Variants,
		}
		if !v.Representation.IsZero() {
			rep := v.Representation
			env.Representation = &rep
		}
		return env, nil
	default:
		return nil, errors.Newf("unknown type kind %T", t)
	}
}

func (e *typeEnvelope) unwrap() (Type, error) {
	switch e.Kind {
	case KindPrimitive:
		return &Primitive{
			Name:        e.Name,
			Description: e.Description,
			Parameters:  e.Parameters,
			Fallback:    e.Fallback,
		}, nil
	case KindStruct:
		return &Struct{
			Name:        e.Name,
			SerdeName:   e.SerdeName,
			Description: e.Description,
			Parameters:  e.Parameters,
			Fields:      e.Fields,
			Transparent: e.Transparent,
		}, nil
	case KindEnum:
		out := &Enum{
			Name:        e.Name,
			SerdeName:   e.SerdeName,
			Description: e.Description,
			Parameters:  e.Parameters,
			Variants:    e.Variants,
		}
		if e.Representation != nil {
			out.Representation = *e.Representation
		}
		return out, nil
	default:
		return nil, errors.Newf("unknown type kind %q", e.Kind)
	}
}

// MarshalType serializes a type into its kind-tagged interchange form.
func MarshalType(t Type) ([]byte, error) {
	env, err := envelope(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// UnmarshalType deserializes a kind-tagged type definition.
func UnmarshalType(data []byte) (Type, error) {
	var env typeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "decode type")
	}
	return env.unwrap()
}

type typespaceEnvelope struct {
	Name  string          `json:"name,omitempty"`
	Types []*typeEnvelope `json:"types,omitempty"`
}

// MarshalJSON serializes the typespace as its name plus kind-tagged types.
func (ts Typespace) MarshalJSON() ([]byte, error) {
	env := typespaceEnvelope{Name: ts.Name}
	for _, t := range ts.types {
		te, err := envelope(t)
		if err != nil {
			return nil, err
		}
		env.Types = append(env.Types, te)
	}
	return json.Marshal(env)
}

// UnmarshalJSON replaces the typespace contents from interchange form.
func (ts *Typespace) UnmarshalJSON(data []byte) error {
	var env typespaceEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return errors.Wrap(err, "decode typespace")
	}
	*ts = NewTypespace(env.Name)
	for _, te := range env.Types {
		t, err := te.unwrap()
		if err != nil {
			return err
		}
		ts.Insert(t)
	}
	return nil
}

// Marshal serializes the schema to indented interchange JSON.
func (s *Schema) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal parses a schema from interchange JSON.
func Unmarshal(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "decode schema")
	}
	if s.InputTypes.Name == "" {
		s.InputTypes.Name = "input"
	}
	if s.OutputTypes.Name == "" {
		s.OutputTypes.Name = "output"
	}
	return &s, nil
}
