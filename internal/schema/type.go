// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package schema defines the language-agnostic API schema model: primitives,
// structs, enums, functions, and the typespaces that hold them. It is the
// input vocabulary for the normalization pipeline and the semantic builder.
package schema

import "strconv"

// Kind identifies the category of a type definition.
type Kind string

const (
	KindPrimitive Kind = "primitive"
	KindStruct    Kind = "struct"
	KindEnum      Kind = "enum"
)

// Type is the closed union over Primitive, Struct, and Enum.
type Type interface {
	Kind() Kind
	TypeName() string
	TypeDescription() string
	TypeParameters() []TypeParameter

	setName(name string)
	renameRefs(search, replace string)
	clone() Type
}

// Primitive is a built-in type the schema vocabulary treats as opaque.
// Fallback names a substitute reference for targets that cannot represent
// the primitive directly; it may reference the primitive's own parameters.
type Primitive struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  []TypeParameter `json:"parameters,omitempty"`
	Fallback    *TypeReference  `json:"fallback,omitempty"`
}

func (p *Primitive) Kind() Kind                      { return KindPrimitive }
func (p *Primitive) TypeName() string                { return p.Name }
func (p *Primitive) TypeDescription() string         { return p.Description }
func (p *Primitive) TypeParameters() []TypeParameter { return p.Parameters }

func (p *Primitive) setName(name string) { p.Name = name }

func (p *Primitive) renameRefs(search, replace string) {
	if p.Fallback != nil {
		p.Fallback.rename(search, replace)
	}
}

func (p *Primitive) clone() Type {
	out := *p
	out.Parameters = append([]TypeParameter(nil), p.Parameters...)
	if p.Fallback != nil {
		fb := cloneRef(*p.Fallback)
		out.Fallback = &fb
	}
	return &out
}

// Struct is a named product type.
type Struct struct {
	Name        string          `json:"name"`
	SerdeName   string          `json:"serde_name,omitempty"`
	Description string          `json:"description,omitempty"`
	Parameters  []TypeParameter `json:"parameters,omitempty"`
	Fields      []Field         `json:"fields,omitempty"`
	Transparent bool            `json:"transparent,omitempty"`
}

func (s *Struct) Kind() Kind                      { return KindStruct }
func (s *Struct) TypeName() string                { return s.Name }
func (s *Struct) TypeDescription() string         { return s.Description }
func (s *Struct) TypeParameters() []TypeParameter { return s.Parameters }

// IsAlias reports whether the struct is a single-field wrapper: exactly one
// field that is either unnamed (a tuple position) or marked transparent.
func (s *Struct) IsAlias() bool {
	if len(s.Fields) != 1 {
		return false
	}
	return s.Transparent || isTupleFieldName(s.Fields[0].Name)
}

// IsUnit reports whether the struct wraps a single optional unnamed unit field.
func (s *Struct) IsUnit() bool {
	if len(s.Fields) != 1 {
		return false
	}
	f := s.Fields[0]
	return isTupleFieldName(f.Name) && !f.Required && f.TypeRef.Name == "unit" && len(f.TypeRef.Arguments) == 0
}

// IsTuple reports whether every field name parses as a non-negative integer.
func (s *Struct) IsTuple() bool {
	if len(s.Fields) == 0 {
		return false
	}
	for _, f := range s.Fields {
		if !isTupleFieldName(f.Name) {
			return false
		}
	}
	return true
}

func (s *Struct) setName(name string) { s.Name = name }

func (s *Struct) renameRefs(search, replace string) {
	for i := range s.Fields {
		s.Fields[i].TypeRef.rename(search, replace)
	}
}

func (s *Struct) clone() Type {
	out := *s
	out.Parameters = append([]TypeParameter(nil), s.Parameters...)
	out.Fields = cloneFields(s.Fields)
	return &out
}

// Enum is a named sum type.
type Enum struct {
	Name           string          `json:"name"`
	SerdeName      string          `json:"serde_name,omitempty"`
	Description    string          `json:"description,omitempty"`
	Parameters     []TypeParameter `json:"parameters,omitempty"`
	Representation Representation  `json:"representation,omitempty"`
	Variants       []Variant       `json:"variants,omitempty"`
}

func (e *Enum) Kind() Kind                      { return KindEnum }
func (e *Enum) TypeName() string                { return e.Name }
func (e *Enum) TypeDescription() string         { return e.Description }
func (e *Enum) TypeParameters() []TypeParameter { return e.Parameters }

func (e *Enum) setName(name string) { e.Name = name }

func (e *Enum) renameRefs(search, replace string) {
	for i := range e.Variants {
		for j := range e.Variants[i].Fields {
			e.Variants[i].Fields[j].TypeRef.rename(search, replace)
		}
	}
}

func (e *Enum) clone() Type {
	out := *e
	out.Parameters = append([]TypeParameter(nil), e.Parameters...)
	out.Variants = make([]Variant, len(e.Variants))
	for i, v := range e.Variants {
		nv := v
		nv.Fields = cloneFields(v.Fields)
		if v.Discriminant != nil {
			d := *v.Discriminant
			nv.Discriminant = &d
		}
		out.Variants[i] = nv
	}
	return &out
}

// Field is a struct or variant member. Required=false carries the
// nullable-vs-absent distinction into code generation.
type Field struct {
	Name        string        `json:"name"`
	SerdeName   string        `json:"serde_name,omitempty"`
	Description string        `json:"description,omitempty"`
	TypeRef     TypeReference `json:"type"`
	Required    bool          `json:"required,omitempty"`
	Flattened   bool          `json:"flattened,omitempty"`
	Transform   TransformKind `json:"transform,omitempty"`
}

// WireName returns the serialization name, falling back to the field name.
func (f Field) WireName() string {
	if f.SerdeName != "" {
		return f.SerdeName
	}
	return f.Name
}

// Variant is one alternative of an enum.
type Variant struct {
	Name         string  `json:"name"`
	SerdeName    string  `json:"serde_name,omitempty"`
	Description  string  `json:"description,omitempty"`
	Fields       []Field `json:"fields,omitempty"`
	Discriminant *int    `json:"discriminant,omitempty"`
	Untagged     bool    `json:"untagged,omitempty"`
}

// WireName returns the serialization name, falling back to the variant name.
func (v Variant) WireName() string {
	if v.SerdeName != "" {
		return v.SerdeName
	}
	return v.Name
}

// RepresentationKind selects the enum tagging strategy.
type RepresentationKind string

const (
	// RepresentationExternal is the default: {Variant: {...}}.
	RepresentationExternal RepresentationKind = "external"
	// RepresentationInternal embeds the tag: {tag: "Variant", ...fields}.
	RepresentationInternal RepresentationKind = "internal"
	// RepresentationAdjacent pairs tag and content keys.
	RepresentationAdjacent RepresentationKind = "adjacent"
	// RepresentationNone is untagged.
	RepresentationNone RepresentationKind = "none"
)

// Representation describes how enum variants are tagged on the wire.
type Representation struct {
	Kind    RepresentationKind `json:"kind,omitempty"`
	Tag     string             `json:"tag,omitempty"`
	Content string             `json:"content,omitempty"`
}

// IsZero reports whether the representation is the unset default.
func (r Representation) IsZero() bool {
	return r.Kind == "" && r.Tag == "" && r.Content == ""
}

// EffectiveKind returns the kind, defaulting to external tagging.
func (r Representation) EffectiveKind() RepresentationKind {
	if r.Kind == "" {
		return RepresentationExternal
	}
	return r.Kind
}

func isTupleFieldName(name string) bool {
	n, err := strconv.Atoi(name)
	return err == nil && n >= 0
}

func cloneRef(r TypeReference) TypeReference {
	out := TypeReference{Name: r.Name}
	if len(r.Arguments) > 0 {
		out.Arguments = make([]TypeReference, len(r.Arguments))
		for i, a := range r.Arguments {
			out.Arguments[i] = cloneRef(a)
		}
	}
	return out
}

func cloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.TypeRef = cloneRef(f.TypeRef)
		out[i] = f
	}
	return out
}
