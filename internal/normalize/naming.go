// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package normalize

import (
	"sort"
	"strings"

	"github.com/dacolabs/reflectgen/internal/schema"
)

// genericSegments are module path segments too generic to disambiguate with.
var genericSegments = map[string]struct{}{
	"model":  {},
	"models": {},
	"proto":  {},
	"api":    {},
	"types":  {},
	"schema": {},
	"v1":     {},
	"v2":     {},
}

// NamingResolutionStage strips module qualification from type names so that
// generated code uses simple names. When two qualified names share a simple
// name, each is prefixed with its nearest meaningful module segment,
// capitalized: app.model.Pet colliding with zoo.model.Pet becomes AppPet and
// ZooPet. All references throughout the schema follow the computed rename
// map. It also validates generic instantiation arity while walking the
// definitions.
type NamingResolutionStage struct{}

func (s *NamingResolutionStage) Name() string { return "naming_resolution" }

func (s *NamingResolutionStage) Transform(sch *schema.Schema) []error {
	diags := validateArity(sch)
	if len(diags) > 0 {
		return diags
	}

	// Group every qualified name by its simple name.
	bySimple := make(map[string][]string)
	taken := make(map[string]struct{})
	for _, name := range allTypeNames(sch) {
		qn := schema.ParseName(name)
		if !qn.IsQualified() {
			taken[name] = struct{}{}
			continue
		}
		bySimple[qn.SimpleName()] = append(bySimple[qn.SimpleName()], name)
	}

	renames := make(map[string]string)
	simples := make([]string, 0, len(bySimple))
	for simple := range bySimple {
		simples = append(simples, simple)
	}
	sort.Strings(simples)

	for _, simple := range simples {
		qualified := bySimple[simple]
		sort.Strings(qualified)
		_, simpleTaken := taken[simple]
		if len(qualified) == 1 && !simpleTaken {
			renames[qualified[0]] = simple
			taken[simple] = struct{}{}
			continue
		}
		for _, name := range qualified {
			candidate := disambiguate(schema.ParseName(name))
			if _, exists := taken[candidate]; exists {
				candidate = camelJoin(schema.ParseName(name))
			}
			renames[name] = candidate
			taken[candidate] = struct{}{}
		}
	}

	olds := make([]string, 0, len(renames))
	for old := range renames {
		olds = append(olds, old)
	}
	sort.Strings(olds)
	for _, old := range olds {
		sch.RenameType(old, renames[old])
	}
	return nil
}

// disambiguate prepends the nearest meaningful module segment to the simple
// name, e.g. app.model.Pet -> AppPet (skipping the generic "model").
func disambiguate(qn schema.QualName) string {
	simple := qn.SimpleName()
	module := qn.Module()
	for i := len(module) - 1; i >= 0; i-- {
		if _, generic := genericSegments[strings.ToLower(module[i])]; generic {
			continue
		}
		return capitalize(module[i]) + simple
	}
	return simple
}

func camelJoin(qn schema.QualName) string {
	var sb strings.Builder
	for _, seg := range qn {
		sb.WriteString(capitalize(seg))
	}
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func allTypeNames(sch *schema.Schema) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, ts := range []*schema.Typespace{&sch.InputTypes, &sch.OutputTypes} {
		for _, name := range ts.Names() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// validateArity reports references that supply more generic arguments than
// their referent declares.
func validateArity(sch *schema.Schema) []error {
	var diags []error
	check := func(owner string, ref schema.TypeReference) {
		ref.Walk(func(r *schema.TypeReference) {
			t, ok := sch.LookupType(r.Name)
			if !ok {
				return
			}
			if len(r.Arguments) > len(t.TypeParameters()) {
				diags = append(diags, &InvalidGenericParameterError{
					TypeName:  r.Name,
					Parameter: owner,
					Reason:    "more arguments than declared parameters",
				})
			}
		})
	}

	for _, ts := range []*schema.Typespace{&sch.InputTypes, &sch.OutputTypes} {
		for t := range ts.Types() {
			switch v := t.(type) {
			case *schema.Struct:
				for _, f := range v.Fields {
					check(v.Name+"."+f.Name, f.TypeRef)
				}
			case *schema.Enum:
				for _, variant := range v.Variants {
					for _, f := range variant.Fields {
						check(v.Name+"."+variant.Name+"."+f.Name, f.TypeRef)
					}
				}
			}
		}
	}
	for _, fn := range sch.Functions {
		for _, ref := range fn.SignatureRefs() {
			check(fn.Name, *ref)
		}
	}
	return diags
}
