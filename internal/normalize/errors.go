// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package normalize

import (
	"fmt"
	"strings"
)

// Diagnostics are collected per stage and reported in one batch, so a single
// pipeline run surfaces every problem found rather than stopping at the first.

// UnresolvedReferenceError reports a type reference with no known referent.
type UnresolvedReferenceError struct {
	Name     string
	Referrer string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference %q in %q", e.Name, e.Referrer)
}

// CircularDependencyError reports a definition cycle that could not be broken.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return "circular dependency: " + strings.Join(e.Cycle, " -> ")
}

// ConflictingDefinitionError reports two irreconcilable definitions under one
// symbol.
type ConflictingDefinitionError struct {
	Symbol   string
	Existing string
	New      string
}

func (e *ConflictingDefinitionError) Error() string {
	return fmt.Sprintf("conflicting definitions for %q: %s vs %s", e.Symbol, e.Existing, e.New)
}

// InvalidGenericParameterError reports a malformed generic instantiation.
type InvalidGenericParameterError struct {
	TypeName  string
	Parameter string
	Reason    string
}

func (e *InvalidGenericParameterError) Error() string {
	return fmt.Sprintf("invalid generic parameter %q on %q: %s", e.Parameter, e.TypeName, e.Reason)
}

// ValidationError reports a semantic-validation failure on a symbol.
type ValidationError struct {
	Symbol  string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q: %s", e.Symbol, e.Message)
}

// StageError carries the complete diagnostic batch of the stage that failed.
type StageError struct {
	Stage       string
	Diagnostics []error
}

func (e *StageError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.Error()
	}
	return fmt.Sprintf("stage %q failed: %s", e.Stage, strings.Join(msgs, "; "))
}

// Unwrap exposes the individual diagnostics to errors.Is/As.
func (e *StageError) Unwrap() []error {
	return e.Diagnostics
}
