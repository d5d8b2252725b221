// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dacolabs/reflectgen/internal/generate"
	"github.com/dacolabs/reflectgen/internal/prompts"
	"github.com/dacolabs/reflectgen/internal/semantic"
	"github.com/dacolabs/reflectgen/internal/session"
)

type generateOptions struct {
	targets []string
	output  string
	pkg     string
	verbose bool
}

func newGenerateCmd(generators generate.Registry) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate client code from the project schema",
		Long: fmt.Sprintf(`Generate client code from the project schema.

Available targets: %s`, strings.Join(generators.Available(), ", ")),
		Example: `  # Interactive mode
  reflectgen generate

  # Generate specific targets
  reflectgen generate --target typescript --target openapi

  # Generate into a custom output directory
  reflectgen generate --target rust --output clients`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, generators, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.targets, "target", "t", nil,
		fmt.Sprintf("Target generator (%s), repeatable", strings.Join(generators.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (defaults to config output or \"generated\")")
	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "Package/module name for targets that need one")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log normalization details")

	return cmd
}

func runGenerate(cmd *cobra.Command, generators generate.Registry, opts *generateOptions) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	targets := opts.targets
	if len(targets) == 0 {
		targets = ctx.Config.Targets
	}
	if len(targets) == 0 {
		if err := prompts.RunGenerateForm(&targets, generators.Available()); err != nil {
			return err
		}
	}
	if len(targets) == 0 {
		return errors.New("no targets selected")
	}
	for _, target := range targets {
		if _, err := generators.Get(target); err != nil {
			return errors.Newf("unsupported target %q. Available targets: %s",
				target, strings.Join(generators.Available(), ", "))
		}
	}

	output := opts.output
	if output == "" {
		output = ctx.Config.Output
	}
	if output == "" {
		output = "generated"
	}

	log, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	sem, err := semantic.Normalize(ctx.Schema, log)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(output, 0o750); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	baseName := generate.ToSnakeCase(ctx.Schema.Name)
	if baseName == "" {
		baseName = "schema"
	}

	// Targets are independent once the semantic schema is built, so they
	// render in parallel.
	var (
		mu    sync.Mutex
		files []string
	)
	g, _ := errgroup.WithContext(cmd.Context())
	for _, target := range targets {
		g.Go(func() error {
			gen, err := generators.Get(target)
			if err != nil {
				return err
			}
			data, err := gen.Generate(sem, generate.Options{Package: opts.pkg})
			if err != nil {
				return errors.Wrapf(err, "generate %s", target)
			}
			outFile := filepath.Join(output, baseName+gen.FileExtension())
			if err := os.WriteFile(outFile, data, 0o600); err != nil {
				return errors.Wrapf(err, "write %s", target)
			}
			mu.Lock()
			files = append(files, outFile)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fields := make([]prompts.ResultField, len(files))
	for i, f := range files {
		fields[i] = prompts.ResultField{Label: "Wrote", Value: f}
	}
	prompts.PrintResult(fields, fmt.Sprintf("Generated %d target(s)", len(files)))
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
