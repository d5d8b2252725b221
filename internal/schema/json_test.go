// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalType_KindTagged(t *testing.T) {
	data, err := MarshalType(&Struct{Name: "Pet"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "struct", m["kind"])
	assert.Equal(t, "Pet", m["name"])
}

func TestMarshalType_OmitsDefaults(t *testing.T) {
	data, err := MarshalType(&Struct{Name: "Pet", Fields: []Field{
		{Name: "name", TypeRef: Ref("string")},
	}})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "serde_name")
	assert.NotContains(t, m, "description")
	assert.NotContains(t, m, "parameters")
	assert.NotContains(t, m, "transparent")

	field := m["fields"].([]any)[0].(map[string]any)
	assert.NotContains(t, field, "required", "false booleans are omitted")
	assert.NotContains(t, field, "flattened")
	assert.NotContains(t, field, "transform")
}

func TestMarshalType_EnumRepresentation(t *testing.T) {
	data, err := MarshalType(&Enum{
		Name:           "Event",
		Representation: Representation{Kind: RepresentationAdjacent, Tag: "type", Content: "data"},
		Variants:       []Variant{{Name: "Created"}},
	})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	rep := m["representation"].(map[string]any)
	assert.Equal(t, "adjacent", rep["kind"])
	assert.Equal(t, "type", rep["tag"])
	assert.Equal(t, "data", rep["content"])
}

func TestTypeRoundTrip(t *testing.T) {
	disc := 4
	original := []Type{
		&Primitive{
			Name:       "HashSet",
			Parameters: []TypeParameter{{Name: "V"}},
			Fallback:   refPtr(Ref("Vec", Ref("V"))),
		},
		&Struct{
			Name:      "Pet",
			SerdeName: "pet",
			Fields: []Field{
				{Name: "name", TypeRef: Ref("string"), Required: true},
				{Name: "tags", TypeRef: Ref("Vec", Ref("Tag")), Transform: TransformFallbackRecursively},
			},
		},
		&Enum{
			Name:           "Status",
			Representation: Representation{Kind: RepresentationInternal, Tag: "kind"},
			Variants: []Variant{
				{Name: "Active", Discriminant: &disc},
				{Name: "Retired", Untagged: true},
			},
		},
	}

	for _, ty := range original {
		data, err := MarshalType(ty)
		require.NoError(t, err, ty.TypeName())
		back, err := UnmarshalType(data)
		require.NoError(t, err, ty.TypeName())
		assert.Equal(t, ty, back, ty.TypeName())
	}
}

func TestSchemaRoundTrip(t *testing.T) {
	s := petSchema()

	data, err := s.Marshal()
	require.NoError(t, err)

	back, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, s.Name, back.Name)
	assert.Equal(t, s.InputTypes.Names(), back.InputTypes.Names())
	assert.Equal(t, s.OutputTypes.Names(), back.OutputTypes.Names())
	require.Len(t, back.Functions, 1)
	assert.Equal(t, "pets.create", back.Functions[0].Name)
	assert.Equal(t, "app.Pet", back.Functions[0].InputType.Name)
}

func TestLoadBytes_YAML(t *testing.T) {
	doc := []byte(`
name: petstore
input_types:
  name: input
  types:
    - kind: struct
      name: Pet
      fields:
        - name: name
          type: {name: string}
          required: true
functions:
  - name: pets.get
    input_type: {name: Pet}
`)

	s, err := LoadBytes(doc, "schema.yaml")
	require.NoError(t, err)

	assert.Equal(t, "petstore", s.Name)
	pet, ok := s.InputTypes.Get("Pet")
	require.True(t, ok)
	assert.True(t, pet.(*Struct).Fields[0].Required)
	require.Len(t, s.Functions, 1)
	assert.Equal(t, "Pet", s.Functions[0].InputType.Name)
}

func TestLoadBytes_UnsupportedFormat(t *testing.T) {
	_, err := LoadBytes(nil, "schema.toml")
	assert.Error(t, err)
}
