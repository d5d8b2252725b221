// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package normalize

import "github.com/dacolabs/reflectgen/internal/schema"

// TypeConsolidationStage reconciles the input and output typespaces.
//
// The policy is equality-preserving: a name present in both spaces is left
// alone when the two definitions are structurally equal, and split into
// input/output submodules only on a genuine structural conflict. This is the
// single consolidation policy for the whole system (see DESIGN.md).
type TypeConsolidationStage struct{}

func (s *TypeConsolidationStage) Name() string { return "type_consolidation" }

func (s *TypeConsolidationStage) Transform(sch *schema.Schema) []error {
	sch.ConsolidateTypes()

	// The fixpoint loop guarantees the invariant unless a rename landed on a
	// name that already existed in the target submodule. Verify rather than
	// assume, and report every violation in one batch.
	var diags []error
	for _, name := range sch.InputTypes.Names() {
		in, _ := sch.InputTypes.Get(name)
		out, ok := sch.OutputTypes.Get(name)
		if !ok {
			continue
		}
		if !schema.TypesEqual(in, out) {
			diags = append(diags, &ConflictingDefinitionError{
				Symbol:   name,
				Existing: string(in.Kind()),
				New:      string(out.Kind()),
			})
		}
	}
	return diags
}
