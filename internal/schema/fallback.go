// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import "github.com/cockroachdb/errors"

// FallbackOnce substitutes origin's primitive with its declared fallback,
// re-mapping generic arguments by parameter name.
//
// Given a primitive P<p0..pn> with fallback F and origin P<a0..an>:
//   - if F names one of P's own parameters, the wrapper is elided and the
//     positionally matching origin argument is returned directly;
//   - otherwise the result is F with each of F's declared arguments replaced
//     by the origin argument at the matching parameter index. Fallback
//     arguments that match no declared parameter are dropped.
//
// Returns nil when origin does not name a primitive with a fallback, or when
// origin supplies fewer arguments than a referenced parameter index requires
// (a malformed schema is tolerated, not a panic).
func (ts *Typespace) FallbackOnce(origin TypeReference) *TypeReference {
	t, ok := ts.Get(origin.Name)
	if !ok {
		return nil
	}
	p, ok := t.(*Primitive)
	if !ok || p.Fallback == nil {
		return nil
	}

	if i := paramIndex(p.Parameters, p.Fallback.Name); i >= 0 {
		if i >= len(origin.Arguments) {
			return nil
		}
		out := cloneRef(origin.Arguments[i])
		return &out
	}

	out := TypeReference{Name: p.Fallback.Name}
	for _, arg := range p.Fallback.Arguments {
		i := paramIndex(p.Parameters, arg.Name)
		if i < 0 {
			continue
		}
		if i >= len(origin.Arguments) {
			return nil
		}
		out.Arguments = append(out.Arguments, cloneRef(origin.Arguments[i]))
	}
	return &out
}

// FallbackRecursively applies FallbackOnce until the reference no longer
// resolves to a primitive with a fallback, following multi-level chains such
// as BTreeSet -> HashSet -> Vec. A visited set guards against cyclic fallback
// declarations, which are reported as an error rather than looping forever.
func (ts *Typespace) FallbackRecursively(origin TypeReference) (TypeReference, error) {
	current := origin
	visited := map[string]struct{}{current.Name: {}}
	for {
		next := ts.FallbackOnce(current)
		if next == nil {
			return current, nil
		}
		if _, seen := visited[next.Name]; seen {
			return origin, errors.Newf("cyclic fallback chain at %q starting from %q", next.Name, origin.Name)
		}
		visited[next.Name] = struct{}{}
		current = *next
	}
}
