// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import "strings"

// Sep is the module separator token used in qualified type names,
// e.g. "app.model.Pet".
const Sep = "."

// QualName is a qualified type name as an ordered list of path segments.
// The zero value is the empty name.
type QualName []string

// ParseName splits a separator-joined name into its segments.
func ParseName(name string) QualName {
	if name == "" {
		return nil
	}
	return strings.Split(name, Sep)
}

// String joins the segments back into a separator-joined name.
func (q QualName) String() string {
	return strings.Join(q, Sep)
}

// SimpleName returns the trailing segment, or "" for the empty name.
func (q QualName) SimpleName() string {
	if len(q) == 0 {
		return ""
	}
	return q[len(q)-1]
}

// Module returns all segments except the trailing one.
func (q QualName) Module() QualName {
	if len(q) < 2 {
		return nil
	}
	return q[:len(q)-1]
}

// IsQualified reports whether the name carries a module path.
func (q QualName) IsQualified() bool {
	return len(q) > 1
}

// StripModule returns the name reduced to its trailing segment.
func (q QualName) StripModule() QualName {
	if len(q) == 0 {
		return nil
	}
	return QualName{q[len(q)-1]}
}

// WithSegmentBeforeLast returns a copy with seg inserted before the trailing
// segment, e.g. ("app.Pet", "input") -> "app.input.Pet".
func (q QualName) WithSegmentBeforeLast(seg string) QualName {
	if len(q) == 0 {
		return QualName{seg}
	}
	out := make(QualName, 0, len(q)+1)
	out = append(out, q[:len(q)-1]...)
	out = append(out, seg, q[len(q)-1])
	return out
}

// renameString applies a rename rule to a separator-joined name.
// A search string ending in Sep renames the module prefix only; any other
// search string must match the whole name. Returns the (possibly unchanged)
// name and whether it changed.
func renameString(name, search, replace string) (string, bool) {
	if strings.HasSuffix(search, Sep) {
		if rest, ok := strings.CutPrefix(name, search); ok {
			return replace + rest, true
		}
		return name, false
	}
	if name == search {
		return replace, true
	}
	return name, false
}
