// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package symbols

import (
	"sort"
	"strings"
)

// Info carries the registered facts about a symbol.
type Info struct {
	ID          ID
	Name        string
	Description string
}

// Table is the symbol registry: symbols by ID, a secondary path index, and
// the directed dependency edges between symbols (dependent -> dependency).
type Table struct {
	symbols map[string]Info
	byPath  map[string]ID
	deps    map[string]map[string]struct{}
	ids     map[string]ID
}

// NewTable creates an empty symbol table.
func NewTable() *Table {
	return &Table{
		symbols: make(map[string]Info),
		byPath:  make(map[string]ID),
		deps:    make(map[string]map[string]struct{}),
		ids:     make(map[string]ID),
	}
}

// Register inserts or overwrites a symbol by its ID and indexes it by path.
func (t *Table) Register(info Info) {
	k := info.ID.key()
	t.symbols[k] = info
	t.ids[k] = info.ID
	t.byPath[info.ID.PathString()] = info.ID
}

// Lookup returns the registered info for id.
func (t *Table) Lookup(id ID) (Info, bool) {
	info, ok := t.symbols[id.key()]
	return info, ok
}

// ByPath resolves a separator-joined path to its symbol ID.
func (t *Table) ByPath(path string) (ID, bool) {
	id, ok := t.byPath[path]
	return id, ok
}

// Len returns the number of registered symbols.
func (t *Table) Len() int {
	return len(t.symbols)
}

// AddDependency records that dependent needs dependency declared first.
func (t *Table) AddDependency(dependent, dependency ID) {
	k := dependent.key()
	if t.deps[k] == nil {
		t.deps[k] = make(map[string]struct{})
	}
	t.deps[k][dependency.key()] = struct{}{}
}

// Dependencies returns the direct dependencies of id in sorted order.
func (t *Table) Dependencies(id ID) []ID {
	return t.sortedDeps(id.key())
}

// IDs returns all registered symbol IDs in their total order.
func (t *Table) IDs() []ID {
	out := make([]ID, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

func (t *Table) sortedDeps(key string) []ID {
	edges := t.deps[key]
	if len(edges) == 0 {
		return nil
	}
	out := make([]ID, 0, len(edges))
	for dep := range edges {
		if id, ok := t.ids[dep]; ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

// CycleError reports a dependency cycle found during topological sorting.
type CycleError struct {
	Cycle []ID
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		names[i] = id.String()
	}
	return "dependency cycle: " + strings.Join(names, " -> ")
}

// TopologicalSort orders all registered symbols so that every dependency
// precedes its dependents. Traversal is a three-color depth-first search
// seeded and expanded in sorted ID order, so repeated calls on an unchanged
// table return byte-identical orderings. A symbol revisited while still
// in progress signals a cycle, returned as a *CycleError carrying the
// offending chain.
func (t *Table) TopologicalSort() ([]ID, error) {
	const (
		white = 0 // unvisited
		gray  = 1 // in progress
		black = 2 // done
	)

	color := make(map[string]int, len(t.symbols))
	order := make([]ID, 0, len(t.symbols))
	var stack []ID

	var visit func(id ID) *CycleError
	visit = func(id ID) *CycleError {
		k := id.key()
		switch color[k] {
		case black:
			return nil
		case gray:
			cycle := []ID{id}
			for i := len(stack) - 1; i >= 0 && !stack[i].Equal(id); i-- {
				cycle = append(cycle, stack[i])
			}
			return &CycleError{Cycle: cycle}
		}
		color[k] = gray
		stack = append(stack, id)
		for _, dep := range t.sortedDeps(k) {
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		color[k] = black
		order = append(order, id)
		return nil
	}

	for _, id := range t.IDs() {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}
