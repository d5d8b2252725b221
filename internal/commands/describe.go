// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dacolabs/reflectgen/internal/prompts"
	"github.com/dacolabs/reflectgen/internal/semantic"
	"github.com/dacolabs/reflectgen/internal/session"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show a summary of the project schema",
		Long: `Show a summary of the project schema after normalization: its
metadata, resolved type definitions, and endpoints.`,
		Example: `  # Describe the schema
  reflectgen describe`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runDescribe(ctx)
		},
	}
	return cmd
}

func runDescribe(ctx *session.Context) error {
	sem, err := semantic.Normalize(ctx.Schema, zap.NewNop())
	if err != nil {
		return err
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Name", Value: sem.Name},
		{Label: "Description", Value: sem.Description},
		{Label: "Types", Value: fmt.Sprint(sem.TypeCount())},
		{Label: "Endpoints", Value: fmt.Sprint(sem.FunctionCount())},
	}, "")

	for _, def := range sem.Types() {
		fmt.Printf("  %s %s\n", def.DefID().Kind, def.DefName())
	}
	for _, fn := range sem.Functions() {
		path := fn.Path
		if path == "" {
			path = "/" + fn.Name
		}
		fmt.Printf("  endpoint %s -> %s\n", fn.Name, path)
	}
	return nil
}
