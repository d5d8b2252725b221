// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonSchema = `{
  "name": "petstore",
  "input_types": {
    "types": [
      {
        "kind": "struct",
        "name": "Pet",
        "fields": [
          {"name": "name", "type": {"name": "string"}, "required": true}
        ]
      }
    ]
  }
}`

const yamlSchema = `name: petstore
input_types:
  types:
    - kind: struct
      name: Pet
      fields:
        - name: name
          type:
            name: string
          required: true
`

func TestLoader_LoadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"api.json": {Data: []byte(jsonSchema)},
		"api.yaml": {Data: []byte(yamlSchema)},
		"api.txt":  {Data: []byte("nope")},
	}
	loader := NewLoader(fsys)

	for _, name := range []string{"api.json", "api.yaml"} {
		s, err := loader.LoadFile(name)
		require.NoError(t, err, name)
		assert.Equal(t, "petstore", s.Name)

		pet, ok := s.LookupType("Pet")
		require.True(t, ok)
		assert.Equal(t, KindStruct, pet.Kind())
	}
}

func TestLoader_UnsupportedExtension(t *testing.T) {
	loader := NewLoader(fstest.MapFS{"api.txt": {Data: []byte("x")}})
	_, err := loader.LoadFile("api.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported schema format")
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(fstest.MapFS{})
	_, err := loader.LoadFile("missing.json")
	assert.Error(t, err)
}

func TestLoadBytes_EquivalentFormats(t *testing.T) {
	fromJSON, err := LoadBytes([]byte(jsonSchema), "api.json")
	require.NoError(t, err)
	fromYAML, err := LoadBytes([]byte(yamlSchema), "api.yaml")
	require.NoError(t, err)

	jsonOut, err := fromJSON.Marshal()
	require.NoError(t, err)
	yamlOut, err := fromYAML.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(jsonOut), string(yamlOut))
}
