// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package semantic builds the fully-resolved, deterministically-ordered
// representation of a normalized schema. Every textual type reference is
// paired with a stable symbol identity, and iteration order is the symbol
// ID's total order, so repeated runs over identical input render
// byte-identical output.
package semantic

import (
	"iter"
	"sort"

	"github.com/google/uuid"

	"github.com/dacolabs/reflectgen/internal/schema"
	"github.com/dacolabs/reflectgen/internal/symbols"
)

// ResolvedTypeReference pairs a best-effort resolved symbol identity with the
// recursively resolved argument list. Name preserves the original text for
// diagnostics.
type ResolvedTypeReference struct {
	Symbol    symbols.ID
	Name      string
	Arguments []ResolvedTypeReference
}

// IsGenericParameter reports whether the reference resolved to a generic
// parameter placeholder rather than a concrete type.
func (r ResolvedTypeReference) IsGenericParameter() bool {
	return r.Symbol.Kind == symbols.KindTypeAlias && len(r.Symbol.Path) == 1
}

// FieldDef is a resolved struct or variant member.
type FieldDef struct {
	ID          symbols.ID
	Name        string
	SerdeName   string
	Description string
	Type        ResolvedTypeReference
	Required    bool
	Flattened   bool
}

// WireName returns the serialization name, falling back to the field name.
func (f FieldDef) WireName() string {
	if f.SerdeName != "" {
		return f.SerdeName
	}
	return f.Name
}

// VariantDef is a resolved enum alternative.
type VariantDef struct {
	ID           symbols.ID
	Name         string
	SerdeName    string
	Description  string
	Fields       []FieldDef
	Discriminant *int
	Untagged     bool
}

// WireName returns the serialization name, falling back to the variant name.
func (v VariantDef) WireName() string {
	if v.SerdeName != "" {
		return v.SerdeName
	}
	return v.Name
}

// TypeDef is the closed union over the resolved type definitions.
type TypeDef interface {
	DefID() symbols.ID
	DefName() string
	DefDescription() string
}

// StructDef is a resolved product type.
type StructDef struct {
	ID          symbols.ID
	Name        string
	SerdeName   string
	Description string
	Parameters  []string
	Fields      []FieldDef
	Transparent bool
}

func (d *StructDef) DefID() symbols.ID      { return d.ID }
func (d *StructDef) DefName() string        { return d.Name }
func (d *StructDef) DefDescription() string { return d.Description }

// EnumDef is a resolved sum type.
type EnumDef struct {
	ID             symbols.ID
	Name           string
	SerdeName      string
	Description    string
	Parameters     []string
	Representation schema.Representation
	Variants       []VariantDef
}

func (d *EnumDef) DefID() symbols.ID      { return d.ID }
func (d *EnumDef) DefName() string        { return d.Name }
func (d *EnumDef) DefDescription() string { return d.Description }

// PrimitiveDef is a resolved primitive, including its resolved fallback.
type PrimitiveDef struct {
	ID          symbols.ID
	Name        string
	Description string
	Parameters  []string
	Fallback    *ResolvedTypeReference
}

func (d *PrimitiveDef) DefID() symbols.ID      { return d.ID }
func (d *PrimitiveDef) DefName() string        { return d.Name }
func (d *PrimitiveDef) DefDescription() string { return d.Description }

// FunctionDef is a resolved API endpoint.
type FunctionDef struct {
	ID            symbols.ID
	Name          string
	Path          string
	Description   string
	Input         *ResolvedTypeReference
	InputHeaders  *ResolvedTypeReference
	Output        *ResolvedTypeReference
	Error         *ResolvedTypeReference
	Serialization []schema.SerializationMode
	Readonly      bool
}

// Schema is the immutable semantic representation. Constructed once by the
// Normalizer and read-only afterwards.
type Schema struct {
	ID          uuid.UUID
	Name        string
	Description string

	types     map[string]TypeDef
	functions map[string]FunctionDef
	typeIDs   []symbols.ID
	funcIDs   []symbols.ID
	table     *symbols.Table
}

// SymbolTable exposes the symbol registry backing the schema.
func (s *Schema) SymbolTable() *symbols.Table {
	return s.table
}

// Type returns the definition registered under id.
func (s *Schema) Type(id symbols.ID) (TypeDef, bool) {
	d, ok := s.types[idKey(id)]
	return d, ok
}

// Function returns the endpoint registered under id.
func (s *Schema) Function(id symbols.ID) (FunctionDef, bool) {
	f, ok := s.functions[idKey(id)]
	return f, ok
}

// Types iterates the type definitions in symbol ID order.
func (s *Schema) Types() iter.Seq2[symbols.ID, TypeDef] {
	return func(yield func(symbols.ID, TypeDef) bool) {
		for _, id := range s.typeIDs {
			if !yield(id, s.types[idKey(id)]) {
				return
			}
		}
	}
}

// Functions iterates the endpoints in symbol ID order.
func (s *Schema) Functions() iter.Seq2[symbols.ID, FunctionDef] {
	return func(yield func(symbols.ID, FunctionDef) bool) {
		for _, id := range s.funcIDs {
			if !yield(id, s.functions[idKey(id)]) {
				return
			}
		}
	}
}

// DeclarationOrder returns the type symbol IDs ordered so that dependencies
// precede dependents, for targets that need declaration-before-use emission.
// If a cycle survived (tolerated by the normalizer), it falls back to the
// total ID order.
func (s *Schema) DeclarationOrder() []symbols.ID {
	sorted, err := s.table.TopologicalSort()
	if err != nil {
		sorted = s.table.IDs()
	}
	var out []symbols.ID
	for _, id := range sorted {
		if _, ok := s.types[idKey(id)]; ok {
			out = append(out, id)
		}
	}
	return out
}

// TypeCount returns the number of resolved type definitions.
func (s *Schema) TypeCount() int { return len(s.types) }

// FunctionCount returns the number of resolved endpoints.
func (s *Schema) FunctionCount() int { return len(s.functions) }

func idKey(id symbols.ID) string {
	return id.String()
}

func sortIDs(ids []symbols.ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })
}
