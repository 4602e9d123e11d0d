// Package mermaid generates Mermaid diagram definitions in-process for Go
// callers that would otherwise shell out to the mermaid-gen binary.
package mermaid

import (
	"context"

	"github.com/google/uuid"
	"github.com/povarna/mermaid-gen/internal/setup"
	"github.com/rs/zerolog"
)

// FlowchartGenerator produces text for a prompt. *generation.Pipeline satisfies it.
type FlowchartGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Generator struct {
	pipeline FlowchartGenerator
	logger   *zerolog.Logger
}

func NewGenerator(pipeline FlowchartGenerator, logger *zerolog.Logger) *Generator {
	return &Generator{
		pipeline: pipeline,
		logger:   logger,
	}
}

// NewGeneratorFromEnv wires a Generator from the provider file and environment,
// the same way the CLI does.
func NewGeneratorFromEnv(ctx context.Context, logger *zerolog.Logger) (*Generator, error) {
	deps, err := setup.WireFromEnv(ctx, logger)
	if err != nil {
		return nil, err
	}

	return NewGenerator(deps.Pipeline, deps.Logger), nil
}

// GenerateFlowchart returns the generated diagram definition for prompt.
func (g *Generator) GenerateFlowchart(ctx context.Context, prompt string) (string, error) {
	requestID := uuid.New().String()
	g.logger.Info().Str("requestID", requestID).Msg("generating flowchart")

	definition, err := g.pipeline.Generate(ctx, prompt)
	if err != nil {
		g.logger.Error().Err(err).Str("requestID", requestID).Msg("flowchart generation failed")
		return "", err
	}

	g.logger.Info().
		Str("requestID", requestID).
		Int("length", len(definition)).
		Msg("flowchart generated")

	return definition, nil
}
