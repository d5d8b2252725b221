// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typescript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/reflectgen/internal/generate"
	"github.com/dacolabs/reflectgen/internal/schema"
	"github.com/dacolabs/reflectgen/internal/semantic"
)

func render(t *testing.T, s *schema.Schema) string {
	t.Helper()
	sem, err := semantic.NewNormalizer(nil).Normalize(s)
	require.NoError(t, err)
	out, err := (&Generator{}).Generate(sem, generate.Options{})
	require.NoError(t, err)
	return string(out)
}

func TestGenerator_Struct(t *testing.T) {
	s := schema.NewSchema("petstore")
	s.InputTypes.Insert(&schema.Struct{
		Name:        "Pet",
		Description: "A pet in the store.",
		Fields: []schema.Field{
			{Name: "name", TypeRef: schema.Ref("string"), Required: true},
			{Name: "age", TypeRef: schema.Ref("u32")},
			{Name: "tags", TypeRef: schema.Ref("Vec", schema.Ref("string")), Required: true},
		},
	})

	out := render(t, s)
	assert.Contains(t, out, "/** A pet in the store. */")
	assert.Contains(t, out, "export interface Pet {")
	assert.Contains(t, out, "name: string;")
	assert.Contains(t, out, "age?: number | null;")
	assert.Contains(t, out, "tags: Array<string>;")
}

func TestGenerator_WireNames(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{Name: "Pet", Fields: []schema.Field{
		{Name: "kind", SerdeName: "type", TypeRef: schema.Ref("string"), Required: true},
	}})

	out := render(t, s)
	assert.Contains(t, out, "type: string;")
	assert.NotContains(t, out, "kind: string;")
}

func TestGenerator_ExternalEnum(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Enum{Name: "Status", Variants: []schema.Variant{
		{Name: "Available"},
		{Name: "Sold", Fields: []schema.Field{
			{Name: "price", TypeRef: schema.Ref("u64"), Required: true},
		}},
	}})

	out := render(t, s)
	assert.Contains(t, out, "export type Status =")
	assert.Contains(t, out, `| "Available"`)
	assert.Contains(t, out, "| { Sold: { price: bigint } }")
}

func TestGenerator_InternalEnum(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Enum{
		Name:           "Event",
		Representation: schema.Representation{Kind: schema.RepresentationInternal, Tag: "type"},
		Variants: []schema.Variant{
			{Name: "Created", Fields: []schema.Field{
				{Name: "id", TypeRef: schema.Ref("string"), Required: true},
			}},
			{Name: "Deleted"},
		},
	})

	out := render(t, s)
	assert.Contains(t, out, `({ type: "Created" } & { id: string })`)
	assert.Contains(t, out, `{ type: "Deleted" }`)
}

func TestGenerator_AdjacentEnum(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Enum{
		Name:           "Shape",
		Representation: schema.Representation{Kind: schema.RepresentationAdjacent, Tag: "t", Content: "c"},
		Variants: []schema.Variant{
			{Name: "Circle", Fields: []schema.Field{
				{Name: "0", TypeRef: schema.Ref("f64"), Required: true},
			}},
		},
	})

	out := render(t, s)
	assert.Contains(t, out, `{ t: "Circle"; c: number }`)
}

func TestGenerator_NewtypeAndTupleStructs(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{Name: "UserId", Fields: []schema.Field{
		{Name: "0", TypeRef: schema.Ref("u64"), Required: true},
	}})
	s.InputTypes.Insert(&schema.Struct{Name: "Point", Fields: []schema.Field{
		{Name: "0", TypeRef: schema.Ref("f64"), Required: true},
		{Name: "1", TypeRef: schema.Ref("f64"), Required: true},
	}})

	out := render(t, s)
	assert.Contains(t, out, "export type UserId = bigint;")
	assert.Contains(t, out, "export type Point = [number, number];")
}

func TestGenerator_GenericStruct(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{
		Name:       "Page",
		Parameters: []schema.TypeParameter{{Name: "T"}},
		Fields: []schema.Field{
			{Name: "items", TypeRef: schema.Ref("Vec", schema.Ref("T")), Required: true},
			{Name: "total", TypeRef: schema.Ref("u32"), Required: true},
		},
	})

	out := render(t, s)
	assert.Contains(t, out, "export interface Page<T> {")
	assert.Contains(t, out, "items: Array<T>;")
}

func TestGenerator_IndirectionElided(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{Name: "Node", Fields: []schema.Field{
		{Name: "next", TypeRef: schema.Ref(schema.IndirectBoxed, schema.Ref("Node"))},
	}})

	out := render(t, s)
	assert.Contains(t, out, "next?: Node | null;")
	assert.NotContains(t, out, "Boxed")
}

func TestGenerator_DeclarationBeforeUse(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{Name: "Pet", Fields: []schema.Field{
		{Name: "tag", TypeRef: schema.Ref("Tag"), Required: true},
	}})
	s.InputTypes.Insert(&schema.Struct{Name: "Tag", Fields: []schema.Field{
		{Name: "value", TypeRef: schema.Ref("string"), Required: true},
	}})

	out := render(t, s)
	// Tag is declared before Pet uses it.
	assert.Less(t, strings.Index(out, "export interface Tag"), strings.Index(out, "export interface Pet"))
}

func TestGenerator_Functions(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{Name: "Pet", Fields: []schema.Field{
		{Name: "name", TypeRef: schema.Ref("string"), Required: true},
	}})
	s.Functions = append(s.Functions, schema.Function{
		Name:       "pets.create",
		Path:       "/pets.create",
		InputType:  &schema.TypeReference{Name: "Pet"},
		OutputType: &schema.TypeReference{Name: "Pet"},
	})

	out := render(t, s)
	assert.Contains(t, out, "export async function petsCreate(opts: ClientOptions, input: Pet): Promise<Pet> {")
	assert.Contains(t, out, `return request(opts, "/pets.create", input);`)
}
