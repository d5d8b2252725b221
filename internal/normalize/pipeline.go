// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package normalize transforms a raw schema into a consolidated, unambiguous,
// cycle-free form ready for semantic resolution. Stages run strictly in
// order: consolidation must precede naming resolution, which must precede
// cycle detection, since each keys on the previous stage's renames.
package normalize

import (
	"go.uber.org/zap"

	"github.com/dacolabs/reflectgen/internal/schema"
)

// Stage is one in-place schema transformation. A non-empty return is the
// stage's complete diagnostic batch and marks the stage as failed.
type Stage interface {
	Name() string
	Transform(s *schema.Schema) []error
}

// Pipeline runs an ordered list of stages, short-circuiting on the first
// stage that reports diagnostics.
type Pipeline struct {
	stages []Stage
	log    *zap.Logger
}

// NewPipeline creates a pipeline over the given stages. A nil logger
// defaults to the no-op logger.
func NewPipeline(log *zap.Logger, stages ...Stage) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{stages: stages, log: log}
}

// Standard returns the default pipeline: type consolidation, naming
// resolution, then circular-dependency resolution with the Intelligent
// strategy.
func Standard(log *zap.Logger) *Pipeline {
	return NewPipeline(log,
		&TypeConsolidationStage{},
		&NamingResolutionStage{},
		&CircularDependencyStage{Strategy: StrategyIntelligent, Log: log},
	)
}

// Run executes the stages in order. On failure the returned *StageError
// carries every diagnostic the failing stage accumulated; later stages do
// not run.
func (p *Pipeline) Run(s *schema.Schema) error {
	for _, stage := range p.stages {
		p.log.Debug("running normalization stage", zap.String("stage", stage.Name()))
		if diags := stage.Transform(s); len(diags) > 0 {
			p.log.Warn("normalization stage failed",
				zap.String("stage", stage.Name()),
				zap.Int("diagnostics", len(diags)))
			return &StageError{Stage: stage.Name(), Diagnostics: diags}
		}
	}
	return nil
}
