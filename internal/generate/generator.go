// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package generate provides the code generator registry and shared helpers
// for the per-language generators.
package generate

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dacolabs/reflectgen/internal/semantic"
)

// Options carries generator-independent output settings.
type Options struct {
	// Package names the output module/namespace where the target language
	// has one (Python module, Rust crate module).
	Package string
}

// Generator defines the interface all target-language generators implement.
type Generator interface {
	// Name returns the generator's identifier (e.g., "typescript", "openapi").
	Name() string

	// Generate renders the semantic schema into target-language source.
	Generate(s *semantic.Schema, opts Options) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".ts").
	FileExtension() string
}

// Registry maps generator names to implementations.
type Registry map[string]Generator

// Add registers a generator under its own name.
func (r Registry) Add(g Generator) {
	r[g.Name()] = g
}

// Get retrieves a generator by name.
func (r Registry) Get(name string) (Generator, error) {
	g, ok := r[name]
	if !ok {
		return nil, errors.Newf("unknown generator: %s", name)
	}
	return g, nil
}

// Available returns all registered generator names, sorted.
func (r Registry) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToPascalCase converts a snake_case or kebab-case string to PascalCase.
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})

	var sb strings.Builder
	for _, part := range parts {
		if part != "" {
			sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}
	return sb.String()
}

// ToSnakeCase converts a string to a valid snake_case identifier.
func ToSnakeCase(s string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				prev := s[i-1]
				if prev >= 'a' && prev <= 'z' || prev >= '0' && prev <= '9' {
					sb.WriteByte('_')
				}
			}
			sb.WriteRune(r - 'A' + 'a')
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	out := strings.Trim(sb.String(), "_")
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}
