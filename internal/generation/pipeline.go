// Package generation runs a single prompt through a text-generation model and
// post-processes the first candidate.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/povarna/mermaid-gen/internal/llm"
	"github.com/rs/zerolog"
)

// ModelID is the pretrained model every backend is bound to.
const ModelID = "EleutherAI/gpt-neo-125M"

// Sampling parameters. They do not depend on the prompt.
const (
	MaxLength   = 300
	DoSample    = true
	Temperature = 0.7
)

var ErrNoCandidates = errors.New("generation returned no candidates")

type Pipeline struct {
	client llm.LLMClient
	logger *zerolog.Logger
}

func NewPipeline(client llm.LLMClient, logger *zerolog.Logger) *Pipeline {
	return &Pipeline{
		client: client,
		logger: logger,
	}
}

// NewRequest builds the request sent to the backend for prompt.
func NewRequest(prompt string) llm.LLMRequest {
	return llm.LLMRequest{
		Prompt:             prompt,
		MaxLength:          MaxLength,
		DoSample:           DoSample,
		Temperature:        Temperature,
		NumReturnSequences: 1,
	}
}

// Generate invokes the model once and returns the first candidate with the
// echoed prompt removed.
func (p *Pipeline) Generate(ctx context.Context, prompt string) (string, error) {
	p.logger.Debug().
		Int("prompt_len", len(prompt)).
		Int("max_length", MaxLength).
		Float64("temperature", Temperature).
		Msg("invoking model")

	response, err := p.client.InvokeModel(ctx, NewRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	if response == nil || len(response.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	generated := response.Candidates[0].GeneratedText
	text := StripPrompt(prompt, generated)

	p.logger.Debug().
		Int("candidates", len(response.Candidates)).
		Bool("prompt_echoed", strings.HasPrefix(generated, prompt)).
		Str("stop_reason", response.StopReason).
		Msg("generation complete")

	return text, nil
}

// StripPrompt removes prompt from the start of text and trims the remainder.
// Text that does not start with prompt is returned unchanged.
func StripPrompt(prompt, text string) string {
	if !strings.HasPrefix(text, prompt) {
		return text
	}
	return strings.TrimSpace(text[len(prompt):])
}
