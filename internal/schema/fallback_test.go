// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackOnce_DegenerateWrapper(t *testing.T) {
	ts := NewTypespace("input")
	ts.Insert(&Primitive{
		Name:       "Wrapper",
		Parameters: []TypeParameter{{Name: "T"}},
		Fallback:   &TypeReference{Name: "T"},
	})

	got := ts.FallbackOnce(Ref("Wrapper", Ref("u32")))

	require.NotNil(t, got)
	assert.Equal(t, Ref("u32"), *got, "wrapper elides to its single argument")
}

func TestFallbackOnce_ReshuffledAndDiscardedParameters(t *testing.T) {
	ts := NewTypespace("input")
	ts.Insert(&Primitive{
		Name:       "DashMap",
		Parameters: []TypeParameter{{Name: "K"}, {Name: "V"}},
		Fallback:   refPtr(Ref("HashSet", Ref("V"))),
	})

	got := ts.FallbackOnce(Ref("DashMap", Ref("string"), Ref("u8")))

	require.NotNil(t, got)
	assert.Equal(t, Ref("HashSet", Ref("u8")), *got, "K is dropped, V keeps its origin argument")
}

func TestFallbackOnce_NoFallback(t *testing.T) {
	ts := NewTypespace("input")
	ts.Insert(&Primitive{Name: "string"})
	ts.Insert(&Struct{Name: "Pet"})

	assert.Nil(t, ts.FallbackOnce(Ref("string")))
	assert.Nil(t, ts.FallbackOnce(Ref("Pet")), "non-primitives have no fallback")
	assert.Nil(t, ts.FallbackOnce(Ref("unknown")))
}

func TestFallbackOnce_TooFewArguments(t *testing.T) {
	ts := NewTypespace("input")
	ts.Insert(&Primitive{
		Name:       "Wrapper",
		Parameters: []TypeParameter{{Name: "T"}},
		Fallback:   &TypeReference{Name: "T"},
	})

	assert.Nil(t, ts.FallbackOnce(Ref("Wrapper")), "missing origin argument degrades to nil")
}

func TestFallbackRecursively_Chain(t *testing.T) {
	ts := NewTypespace("input")
	ts.Insert(&Primitive{
		Name:       "BTreeSet",
		Parameters: []TypeParameter{{Name: "V"}},
		Fallback:   refPtr(Ref("HashSet", Ref("V"))),
	})
	ts.Insert(&Primitive{
		Name:       "HashSet",
		Parameters: []TypeParameter{{Name: "V"}},
		Fallback:   refPtr(Ref("Vec", Ref("V"))),
	})
	ts.Insert(&Primitive{Name: "Vec", Parameters: []TypeParameter{{Name: "V"}}})

	got, err := ts.FallbackRecursively(Ref("BTreeSet", Ref("u8")))
	require.NoError(t, err)
	assert.Equal(t, Ref("Vec", Ref("u8")), got)
}

func TestFallbackRecursively_CycleGuard(t *testing.T) {
	ts := NewTypespace("input")
	ts.Insert(&Primitive{
		Name:       "A",
		Parameters: []TypeParameter{{Name: "T"}},
		Fallback:   refPtr(Ref("B", Ref("T"))),
	})
	ts.Insert(&Primitive{
		Name:       "B",
		Parameters: []TypeParameter{{Name: "T"}},
		Fallback:   refPtr(Ref("A", Ref("T"))),
	})

	_, err := ts.FallbackRecursively(Ref("A", Ref("u8")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cyclic fallback chain")
}

func TestFallbackRecursively_NoChange(t *testing.T) {
	ts := NewTypespace("input")

	got, err := ts.FallbackRecursively(Ref("Pet"))
	require.NoError(t, err)
	assert.Equal(t, Ref("Pet"), got)
}
