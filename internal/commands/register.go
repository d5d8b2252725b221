// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dacolabs/reflectgen/internal/generate"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(generators generate.Registry) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reflectgen",
		Short: "Generate typed API clients from reflection schemas",
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newGenerateCmd(generators))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
