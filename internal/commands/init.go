// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dacolabs/reflectgen/internal/config"
	"github.com/dacolabs/reflectgen/internal/prompts"
	"github.com/dacolabs/reflectgen/internal/session"
)

type initOptions struct {
	schema         string
	output         string
	targets        []string
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new reflectgen project",
		Long: `Initialize a new reflectgen project with a reflectgen.yaml
configuration file pointing at an existing schema.`,
		Example: `  # Interactive mode
  reflectgen init

  # Non-interactive
  reflectgen init --schema api.json --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.schema, "schema", "s", "", "Path to the schema file (.json or .yaml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "generated", "Default output directory")
	cmd.Flags().StringSliceVarP(&opts.targets, "target", "t", nil, "Default target generator(s)")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts (requires --schema)")

	return cmd
}

func runInit(opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "get current directory")
	}

	// Check that the current directory isn't already initialized
	configPath := filepath.Join(cwd, session.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return errors.Newf("%s already exists; project already initialized", session.ConfigFileName)
	}

	if opts.nonInteractive {
		if opts.schema == "" {
			return errors.New("non-interactive mode requires --schema")
		}
	} else {
		if err := prompts.RunInitForm(&opts.schema, &opts.output); err != nil {
			return err
		}
	}

	schemaPath := opts.schema
	if !filepath.IsAbs(schemaPath) {
		schemaPath = filepath.Join(cwd, schemaPath)
	}
	if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
		return errors.Newf("schema file not found: %s", opts.schema)
	}

	cfg := config.Config{
		Version: config.CurrentConfigVersion,
		Schema:  opts.schema,
		Output:  opts.output,
		Targets: opts.targets,
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if err := cfg.Save(configPath); err != nil {
		return errors.Wrapf(err, "write %s", session.ConfigFileName)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Schema", Value: cfg.Schema},
		{Label: "Output", Value: cfg.Output},
	}, "Initialization completed")
	return nil
}
