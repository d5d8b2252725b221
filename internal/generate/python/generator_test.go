// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package python

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

func TestGenerator_Dataclass(t *testing.T) {
	s := schema.NewSchema("petstore")
	s.InputTypes.Insert(&schema.Struct{
		Name:        "Pet",
		Description: "A pet in the store.",
		Fields: []schema.Field{
			{Name: "name", TypeRef: schema.Ref("string"), Required: true},
			{Name: "age", TypeRef: schema.Ref("u32")},
		},
	})

	out := render(t, s)
	assert.Contains(t, out, "from __future__ import annotations")
	assert.Contains(t, out, "@dataclasses.dataclass\nclass Pet:")
	assert.Contains(t, out, `"""A pet in the store."""`)
	assert.Contains(t, out, "    name: str\n")
	assert.Contains(t, out, "    age: typing.Optional[int] = None\n")
}

func TestGenerator_OptionalFieldsFollowRequired(t *testing.T) {
	// Dataclass fields with defaults must come after fields without.
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{Name: "Pet", Fields: []schema.Field{
		{Name: "nickname", TypeRef: schema.Ref("string")},
		{Name: "name", TypeRef: schema.Ref("string"), Required: true},
	}})

	out := render(t, s)
	assert.Less(t, strings.Index(out, "name: str"), strings.Index(out, "nickname: typing.Optional[str] = None"))
}

func TestGenerator_UnitEnum(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Enum{Name: "Status", Variants: []schema.Variant{
		{Name: "Available"},
		{Name: "Sold", SerdeName: "sold"},
	}})

	out := render(t, s)
	assert.Contains(t, out, "class Status(enum.Enum):")
	assert.Contains(t, out, `    AVAILABLE = "Available"`)
	assert.Contains(t, out, `    SOLD = "sold"`)
}

func TestGenerator_DataEnum(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Enum{Name: "Shape", Variants: []schema.Variant{
		{Name: "Circle", Fields: []schema.Field{
			{Name: "radius", TypeRef: schema.Ref("f64"), Required: true},
		}},
		{Name: "Point"},
	}})

	out := render(t, s)
	assert.Contains(t, out, "class ShapeCircle:")
	assert.Contains(t, out, "    radius: float\n")
	assert.Contains(t, out, "class ShapePoint:")
	assert.Contains(t, out, "Shape = typing.Union[ShapeCircle, ShapePoint]")
}

func TestGenerator_TypeVars(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{
		Name:       "Page",
		Parameters: []schema.TypeParameter{{Name: "T"}},
		Fields: []schema.Field{
			{Name: "items", TypeRef: schema.Ref("Vec", schema.Ref("T")), Required: true},
		},
	})

	out := render(t, s)
	assert.Contains(t, out, `T = typing.TypeVar("T")`)
	assert.Contains(t, out, "class Page(typing.Generic[T]):")
	assert.Contains(t, out, "    items: typing.List[T]\n")
}

func TestGenerator_CollectionTypes(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{Name: "Bag", Fields: []schema.Field{
		{Name: "counts", TypeRef: schema.Ref("HashMap", schema.Ref("string"), schema.Ref("u64")), Required: true},
		{Name: "labels", TypeRef: schema.Ref("HashSet", schema.Ref("string")), Required: true},
	}})

	out := render(t, s)
	assert.Contains(t, out, "counts: typing.Dict[str, int]")
	assert.Contains(t, out, "labels: typing.Set[str]")
}

func TestGenerator_Client(t *testing.T) {
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
	assert.Contains(t, out, "class Client:")
	assert.Contains(t, out, "def pets_create(self, input: Pet) -> Pet:")
	assert.Contains(t, out, `return self._request("/pets.create", input)`)
}

func TestGenerator_NoFunctionsNoClient(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{Name: "Pet", Fields: []schema.Field{
		{Name: "name", TypeRef: schema.Ref("string"), Required: true},
	}})

	out := render(t, s)
	assert.NotContains(t, out, "class Client:")
}
