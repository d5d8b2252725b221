// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/dacolabs/reflectgen/internal/config"
	"github.com/dacolabs/reflectgen/internal/schema"
)

var (
	// ErrNotInitialized indicates no reflectgen.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in a reflectgen project (reflectgen.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSchemaNotFound indicates the schema file referenced by config doesn't exist.
	ErrSchemaNotFound = errors.New("schema file not found")

	// ErrInvalidSchema indicates the schema file exists but couldn't be parsed.
	ErrInvalidSchema = errors.New("invalid schema")
)

// ConfigFileName is the name of the reflectgen configuration file.
const ConfigFileName = "reflectgen.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved project configuration and parsed schema.
type Context struct {
	Config *config.Config
	Schema *schema.Schema
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the project Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "get current directory")
	}

	configPath := filepath.Join(cwd, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.WithSecondaryError(ErrInvalidConfig, err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, errors.WithSecondaryError(ErrInvalidConfig, validateErr)
	}

	schemaPath := cfg.Schema
	if !filepath.IsAbs(schemaPath) {
		schemaPath = filepath.Join(cwd, schemaPath)
	}
	if _, statErr := os.Stat(schemaPath); os.IsNotExist(statErr) {
		return nil, errors.Wrapf(ErrSchemaNotFound, "%s", schemaPath)
	}

	loader := schema.NewLoader(os.DirFS(filepath.Dir(schemaPath)))
	sch, err := loader.LoadFile(filepath.Base(schemaPath))
	if err != nil {
		return nil, errors.WithSecondaryError(ErrInvalidSchema, err)
	}

	projCtx := &Context{
		Config: cfg,
		Schema: sch,
	}

	return context.WithValue(ctx, contextKey{}, projCtx), nil
}

// From extracts the project Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if projCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return projCtx
	}
	return nil
}
