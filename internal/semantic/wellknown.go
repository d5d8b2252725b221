// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package semantic

import "github.com/dacolabs/reflectgen/internal/symbols"

// wellKnownNames maps standard-library type names to stable primitive
// identities so that references resolve even when the schema does not carry
// explicit definitions for them.
func wellKnownNames() map[string]symbols.ID {
	out := make(map[string]symbols.ID)
	std := func(names ...string) {
		for _, name := range names {
			out[name] = symbols.NewID(symbols.KindPrimitive, "std", name)
		}
	}
	std(
		"u8", "u16", "u32", "u64", "u128", "usize",
		"i8", "i16", "i32", "i64", "i128", "isize",
		"f32", "f64",
		"bool", "char", "string", "str", "unit",
		"Vec", "HashMap", "BTreeMap", "HashSet", "BTreeSet",
		"Option", "Result", "Tuple",
		"DateTime", "Date", "Time", "Duration", "Uuid", "Bytes",
	)
	for _, name := range []string{"Boxed", "Deferred", "Counted"} {
		out[name] = symbols.NewID(symbols.KindPrimitive, "std", name)
	}
	return out
}
