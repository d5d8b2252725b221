// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/reflectgen/internal/commands"
	"github.com/dacolabs/reflectgen/internal/generate"
	"github.com/dacolabs/reflectgen/internal/generate/openapi"
	"github.com/dacolabs/reflectgen/internal/generate/python"
	"github.com/dacolabs/reflectgen/internal/generate/rust"
	"github.com/dacolabs/reflectgen/internal/generate/typescript"
)

func registerGenerators() generate.Registry {
	generators := make(generate.Registry)
	generators.Add(&typescript.Generator{})
	generators.Add(&python.Generator{})
	generators.Add(&rust.Generator{})
	generators.Add(&openapi.Generator{})
	return generators
}

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, env lookup).
func Run(ctx context.Context, getenv func(string) string) error {
	generators := registerGenerators()
	rootCmd := commands.NewRootCmd(generators)
	return rootCmd.ExecuteContext(ctx)
}
