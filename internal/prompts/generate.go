// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunGenerateForm prompts for the target generators to run.
func RunGenerateForm(targets *[]string, available []string) error {
	options := make([]huh.Option[string], len(available))
	for i, name := range available {
		options[i] = huh.NewOption(name, name)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Targets").
				Options(options...).
				Validate(nonEmptySelection).
				Value(targets),
		),
	).WithTheme(Theme()).Run()
}
