// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package normalize

import (
	"sort"

	"go.uber.org/zap"

	"github.com/dacolabs/reflectgen/internal/schema"
)

// Strategy selects how a definition cycle is broken.
type Strategy string

const (
	// StrategyIntelligent boxes self-cycles and defers multi-node cycles.
	StrategyIntelligent Strategy = "intelligent"
	// StrategyBoxing wraps cycle-member references in a heap indirection.
	StrategyBoxing Strategy = "boxing"
	// StrategyForwardDeclarations wraps cycle-member references in a lazy
	// forward reference.
	StrategyForwardDeclarations Strategy = "forward_declarations"
	// StrategyOptionalBreaking clears Required on cycle-member fields.
	StrategyOptionalBreaking Strategy = "optional_breaking"
	// StrategyReferenceCounted wraps cycle-member references in a shared
	// reference.
	StrategyReferenceCounted Strategy = "reference_counted"
)

// CircularDependencyStage finds strongly connected components in the type
// dependency graph and rewrites the schema so no cycle survives: every
// intra-component reference is wrapped in an indirection marker primitive
// (or made optional), which downstream dependency analysis treats as a soft
// edge. Optional references and already-wrapped references are soft to begin
// with and do not form edges.
type CircularDependencyStage struct {
	Strategy Strategy
	Log      *zap.Logger
}

func (s *CircularDependencyStage) Name() string { return "circular_dependency_resolution" }

func (s *CircularDependencyStage) Transform(sch *schema.Schema) []error {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	strategy := s.Strategy
	if strategy == "" {
		strategy = StrategyIntelligent
	}

	var diags []error
	for _, ts := range []*schema.Typespace{&sch.InputTypes, &sch.OutputTypes} {
		components := stronglyConnected(ts)
		for _, comp := range components {
			if len(comp) == 1 && !hasHardEdge(ts, comp[0], comp[0]) {
				continue
			}
			log.Info("breaking definition cycle",
				zap.Strings("members", comp),
				zap.String("strategy", string(strategy)))
			if err := breakComponent(ts, comp, strategy); err != nil {
				diags = append(diags, err)
			}
		}
	}
	return diags
}

// stronglyConnected runs Tarjan's algorithm over the typespace's hard
// dependency edges and returns each component's members sorted by name.
// Components are returned in deterministic order.
func stronglyConnected(ts *schema.Typespace) [][]string {
	type nodeState struct {
		index   int
		lowlink int
		onStack bool
	}

	names := ts.Names()
	states := make(map[string]*nodeState, len(names))
	var stack []string
	var components [][]string
	counter := 0

	var connect func(name string)
	connect = func(name string) {
		st := &nodeState{index: counter, lowlink: counter}
		counter++
		states[name] = st
		stack = append(stack, name)
		st.onStack = true

		for _, dep := range hardEdges(ts, name) {
			depState, seen := states[dep]
			switch {
			case !seen:
				connect(dep)
				if low := states[dep].lowlink; low < st.lowlink {
					st.lowlink = low
				}
			case depState.onStack:
				if depState.index < st.lowlink {
					st.lowlink = depState.index
				}
			}
		}

		if st.lowlink == st.index {
			var comp []string
			for {
				n := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				states[n].onStack = false
				comp = append(comp, n)
				if n == name {
					break
				}
			}
			sort.Strings(comp)
			components = append(components, comp)
		}
	}

	for _, name := range names {
		if _, seen := states[name]; !seen {
			connect(name)
		}
	}
	return components
}

// hardEdges returns the names referenced by required, non-indirected fields
// of the named type, restricted to types present in the typespace.
func hardEdges(ts *schema.Typespace, name string) []string {
	t, ok := ts.Get(name)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var edges []string
	add := func(f schema.Field) {
		if !f.Required {
			return
		}
		collectHardRefs(f.TypeRef, func(target string) {
			if _, ok := ts.Get(target); !ok {
				return
			}
			if _, dup := seen[target]; dup {
				return
			}
			seen[target] = struct{}{}
			edges = append(edges, target)
		})
	}

	switch v := t.(type) {
	case *schema.Struct:
		for _, f := range v.Fields {
			add(f)
		}
	case *schema.Enum:
		for _, variant := range v.Variants {
			for _, f := range variant.Fields {
				add(f)
			}
		}
	}
	sort.Strings(edges)
	return edges
}

// collectHardRefs visits every name in the reference tree, skipping subtrees
// wrapped in an indirection marker.
func collectHardRefs(ref schema.TypeReference, visit func(string)) {
	if schema.IsIndirection(ref.Name) {
		return
	}
	visit(ref.Name)
	for _, a := range ref.Arguments {
		collectHardRefs(a, visit)
	}
}

func hasHardEdge(ts *schema.Typespace, from, to string) bool {
	for _, dep := range hardEdges(ts, from) {
		if dep == to {
			return true
		}
	}
	return false
}

// breakComponent rewrites every intra-component hard reference according to
// the strategy. Wrapping all internal edges is heavier than strictly needed
// to break the cycle, but it is deterministic and keeps every member
// renderable in declaration order.
func breakComponent(ts *schema.Typespace, comp []string, strategy Strategy) error {
	members := make(map[string]struct{}, len(comp))
	for _, name := range comp {
		members[name] = struct{}{}
	}

	resolved := strategy
	if strategy == StrategyIntelligent {
		if len(comp) == 1 {
			resolved = StrategyBoxing
		} else {
			resolved = StrategyForwardDeclarations
		}
	}

	var marker string
	switch resolved {
	case StrategyBoxing:
		marker = schema.IndirectBoxed
	case StrategyForwardDeclarations:
		marker = schema.IndirectDefer
	case StrategyReferenceCounted:
		marker = schema.IndirectCounted
	case StrategyOptionalBreaking:
		marker = ""
	default:
		return &ValidationError{Symbol: comp[0], Message: "unknown cycle resolution strategy " + string(resolved)}
	}

	rewrite := func(f *schema.Field) {
		if !f.Required {
			return
		}
		if !refTouches(f.TypeRef, members) {
			return
		}
		if marker == "" {
			f.Required = false
			return
		}
		f.TypeRef = wrapCycleRefs(f.TypeRef, members, marker)
	}

	for _, name := range comp {
		t, ok := ts.Get(name)
		if !ok {
			continue
		}
		switch v := t.(type) {
		case *schema.Struct:
			for i := range v.Fields {
				rewrite(&v.Fields[i])
			}
		case *schema.Enum:
			for i := range v.Variants {
				for j := range v.Variants[i].Fields {
					rewrite(&v.Variants[i].Fields[j])
				}
			}
		}
	}

	if marker != "" {
		schema.EnsureIndirection(ts, marker)
	}
	return nil
}

func refTouches(ref schema.TypeReference, members map[string]struct{}) bool {
	if schema.IsIndirection(ref.Name) {
		return false
	}
	if _, ok := members[ref.Name]; ok {
		return true
	}
	for _, a := range ref.Arguments {
		if refTouches(a, members) {
			return true
		}
	}
	return false
}

// wrapCycleRefs wraps each innermost component-member reference in the
// marker, leaving already-wrapped subtrees alone.
func wrapCycleRefs(ref schema.TypeReference, members map[string]struct{}, marker string) schema.TypeReference {
	if schema.IsIndirection(ref.Name) {
		return ref
	}
	if _, ok := members[ref.Name]; ok {
		return schema.Ref(marker, ref)
	}
	for i, a := range ref.Arguments {
		ref.Arguments[i] = wrapCycleRefs(a, members, marker)
	}
	return ref
}
