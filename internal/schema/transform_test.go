// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransforms_FallbackRecursively(t *testing.T) {
	s := NewSchema("test")
	s.InputTypes.Insert(&Primitive{
		Name:       "HashSet",
		Parameters: []TypeParameter{{Name: "V"}},
		Fallback:   refPtr(Ref("Vec", Ref("V"))),
	})
	s.InputTypes.Insert(&Struct{Name: "Pet", Fields: []Field{
		{Name: "tags", TypeRef: Ref("HashSet", Ref("string")), Transform: TransformFallbackRecursively},
		{Name: "name", TypeRef: Ref("string")},
	}})

	require.NoError(t, s.ApplyTransforms(DefaultTransforms()))

	pet, _ := s.InputTypes.Get("Pet")
	assert.Equal(t, Ref("Vec", Ref("string")), pet.(*Struct).Fields[0].TypeRef)
	assert.Equal(t, Ref("string"), pet.(*Struct).Fields[1].TypeRef, "untransformed field is untouched")
}

func TestApplyTransforms_UnknownKind(t *testing.T) {
	s := NewSchema("test")
	s.InputTypes.Insert(&Struct{Name: "Pet", Fields: []Field{
		{Name: "tags", TypeRef: Ref("string"), Transform: TransformKind("mystery")},
	}})

	err := s.ApplyTransforms(DefaultTransforms())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestApplyTransforms_CustomRegistration(t *testing.T) {
	s := NewSchema("test")
	s.InputTypes.Insert(&Struct{Name: "Pet", Fields: []Field{
		{Name: "id", TypeRef: Ref("u64"), Transform: TransformKind("stringify")},
	}})

	reg := DefaultTransforms()
	reg["stringify"] = func(TypeReference, *Typespace) (TypeReference, error) {
		return Ref("string"), nil
	}

	require.NoError(t, s.ApplyTransforms(reg))
	pet, _ := s.InputTypes.Get("Pet")
	assert.Equal(t, Ref("string"), pet.(*Struct).Fields[0].TypeRef)
}
