// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(schema, output *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Path to schema file").
				Placeholder("api.json").
				Validate(requiredValidator("schema path")).
				Value(schema),
			huh.NewInput().
				Title("Output directory").
				Placeholder("generated").
				Value(output),
		),
	).WithTheme(Theme()).Run()
}
