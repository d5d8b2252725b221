// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dacolabs/reflectgen/internal/schema"
	"github.com/dacolabs/reflectgen/internal/symbols"
)

func buildTestSchema() *schema.Schema {
	s := schema.NewSchema("petstore")
	s.Description = "pet store api"

	s.InputTypes.Insert(&schema.Struct{Name: "Pet", Fields: []schema.Field{
		{Name: "name", TypeRef: schema.Ref("string"), Required: true},
		{Name: "tag", TypeRef: schema.Ref("Tag")},
		{Name: "friends", TypeRef: schema.Ref("Vec", schema.Ref("Pet"))},
	}})
	s.InputTypes.Insert(&schema.Struct{Name: "Tag", Fields: []schema.Field{
		{Name: "value", TypeRef: schema.Ref("string"), Required: true},
	}})
	s.InputTypes.Insert(&schema.Enum{Name: "Status", Variants: []schema.Variant{
		{Name: "Available"},
		{Name: "Sold", Fields: []schema.Field{{Name: "0", TypeRef: schema.Ref("u64"), Required: true}}},
	}})

	s.Functions = append(s.Functions, schema.Function{
		Name:       "pets.create",
		Path:       "/pets.create",
		InputType:  &schema.TypeReference{Name: "Pet"},
		OutputType: &schema.TypeReference{Name: "Pet"},
		ErrorType:  &schema.TypeReference{Name: "Status"},
	})
	return s
}

func TestNormalizer_ResolvesReferences(t *testing.T) {
	sem, err := NewNormalizer(nil).Normalize(buildTestSchema())
	require.NoError(t, err)

	petID := symbols.NewID(symbols.KindStruct, "Pet")
	pet, ok := sem.Type(petID)
	require.True(t, ok)

	fields := pet.(*StructDef).Fields
	require.Len(t, fields, 3)

	assert.Equal(t, symbols.NewID(symbols.KindPrimitive, "std", "string"), fields[0].Type.Symbol)
	assert.Equal(t, symbols.NewID(symbols.KindStruct, "Tag"), fields[1].Type.Symbol)

	vec := fields[2].Type
	assert.Equal(t, symbols.NewID(symbols.KindPrimitive, "std", "Vec"), vec.Symbol)
	require.Len(t, vec.Arguments, 1)
	assert.True(t, petID.Equal(vec.Arguments[0].Symbol), "nested argument resolves to Pet")
}

func TestNormalizer_FunctionResolution(t *testing.T) {
	sem, err := NewNormalizer(nil).Normalize(buildTestSchema())
	require.NoError(t, err)

	fnID := symbols.NewID(symbols.KindEndpoint, "pets", "create")
	fn, ok := sem.Function(fnID)
	require.True(t, ok)

	assert.Equal(t, "/pets.create", fn.Path)
	assert.Equal(t, symbols.NewID(symbols.KindStruct, "Pet"), fn.Input.Symbol)
	assert.Equal(t, symbols.NewID(symbols.KindEnum, "Status"), fn.Error.Symbol)
	assert.Nil(t, fn.InputHeaders)
}

func TestNormalizer_DeterministicOrdering(t *testing.T) {
	collect := func() ([]string, []string) {
		sem, err := NewNormalizer(zap.NewNop()).Normalize(buildTestSchema())
		require.NoError(t, err)
		var types, funcs []string
		for id := range sem.Types() {
			types = append(types, id.String())
		}
		for id := range sem.Functions() {
			funcs = append(funcs, id.String())
		}
		return types, funcs
	}

	firstTypes, firstFuncs := collect()
	for range 5 {
		types, funcs := collect()
		assert.Equal(t, firstTypes, types)
		assert.Equal(t, firstFuncs, funcs)
	}
}

func TestNormalizer_GenericParameterScope(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{
		Name:       "Page",
		Parameters: []schema.TypeParameter{{Name: "T"}},
		Fields: []schema.Field{
			{Name: "items", TypeRef: schema.Ref("Vec", schema.Ref("T")), Required: true},
		},
	})

	sem, err := NewNormalizer(nil).Normalize(s)
	require.NoError(t, err)

	page, ok := sem.Type(symbols.NewID(symbols.KindStruct, "Page"))
	require.True(t, ok)

	item := page.(*StructDef).Fields[0].Type.Arguments[0]
	assert.True(t, item.IsGenericParameter())
	assert.Equal(t, "T", item.Name)
}

func TestNormalizer_UnresolvedDegradesToPlaceholder(t *testing.T) {
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{Name: "Pet", Fields: []schema.Field{
		{Name: "ghost", TypeRef: schema.Ref("Phantom"), Required: true},
		{Name: "far", TypeRef: schema.Ref("other.mod.Thing"), Required: true},
	}})

	sem, err := NewNormalizer(zap.NewNop()).Normalize(s)
	require.NoError(t, err, "unresolved references are not fatal")

	pet, _ := sem.Type(symbols.NewID(symbols.KindStruct, "Pet"))
	fields := pet.(*StructDef).Fields

	assert.Equal(t, symbols.KindTypeAlias, fields[0].Type.Symbol.Kind, "unqualified placeholder")
	assert.Equal(t, symbols.KindStruct, fields[1].Type.Symbol.Kind, "qualified placeholder")
	assert.Equal(t, "Phantom", fields[0].Type.Name, "original text is preserved")
}

func TestNormalizer_SurvivingCycleTolerated(t *testing.T) {
	// A cycle that skipped the resolution stage is logged, not fatal.
	s := schema.NewSchema("test")
	s.InputTypes.Insert(&schema.Struct{Name: "A", Fields: []schema.Field{
		{Name: "b", TypeRef: schema.Ref("B"), Required: true},
	}})
	s.InputTypes.Insert(&schema.Struct{Name: "B", Fields: []schema.Field{
		{Name: "a", TypeRef: schema.Ref("A"), Required: true},
	}})

	sem, err := NewNormalizer(zap.NewNop()).Normalize(s)
	require.NoError(t, err)
	assert.Equal(t, 2, sem.TypeCount())
}

func TestNormalize_EndToEnd(t *testing.T) {
	s := schema.NewSchema("petstore")
	s.InputTypes.Insert(&schema.Struct{Name: "app.Node", Fields: []schema.Field{
		{Name: "next", TypeRef: schema.Ref("app.Node"), Required: true},
	}})

	sem, err := Normalize(s, zap.NewNop())
	require.NoError(t, err)

	node, ok := sem.Type(symbols.NewID(symbols.KindStruct, "Node"))
	require.True(t, ok, "module path was stripped")

	next := node.(*StructDef).Fields[0].Type
	assert.Equal(t, schema.IndirectBoxed, next.Name, "self cycle was boxed")
	require.Len(t, next.Arguments, 1)
	assert.Equal(t, "Node", next.Arguments[0].Name)

	// No cycle survives: the symbol table sorts cleanly.
	_, err = sem.SymbolTable().TopologicalSort()
	assert.NoError(t, err)
}

func TestNormalizer_MergedTypespacesFirstWriterWins(t *testing.T) {
	s := schema.NewSchema("test")
	mk := func() *schema.Struct {
		return &schema.Struct{Name: "Tag", Fields: []schema.Field{{Name: "v", TypeRef: schema.Ref("string"), Required: true}}}
	}
	s.InputTypes.Insert(mk())
	s.OutputTypes.Insert(mk())

	sem, err := NewNormalizer(nil).Normalize(s)
	require.NoError(t, err)
	assert.Equal(t, 1, sem.TypeCount(), "equal duplicates merge to one definition")
}
