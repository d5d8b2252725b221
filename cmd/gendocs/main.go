// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Command gendocs generates LLM-friendly markdown documentation for the reflectgen CLI.
//
// Usage:
//
//	go run ./cmd/gendocs [output-dir]
//
// Default output directory is ./docs/cli.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/dacolabs/reflectgen/internal/commands"
	"github.com/dacolabs/reflectgen/internal/generate"
	"github.com/dacolabs/reflectgen/internal/generate/openapi"
	"github.com/dacolabs/reflectgen/internal/generate/python"
	"github.com/dacolabs/reflectgen/internal/generate/rust"
	"github.com/dacolabs/reflectgen/internal/generate/typescript"
)

func main() {
	dir := "./docs/cli"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	generators := make(generate.Registry)
	generators.Add(&typescript.Generator{})
	generators.Add(&python.Generator{})
	generators.Add(&rust.Generator{})
	generators.Add(&openapi.Generator{})

	rootCmd := commands.NewRootCmd(generators)
	rootCmd.DisableAutoGenTag = true

	if err := os.MkdirAll(dir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output dir: %v\n", err)
		os.Exit(1)
	}

	if err := doc.GenMarkdownTree(rootCmd, dir); err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	// Rename reflectgen.md to index.md
	oldPath := dir + "/reflectgen.md"
	newPath := dir + "/index.md"
	if err := os.Rename(oldPath, newPath); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "error renaming %s to %s: %v\n", oldPath, newPath, err)
		os.Exit(1)
	}

	fmt.Printf("Documentation generated in %s\n", dir)
}
