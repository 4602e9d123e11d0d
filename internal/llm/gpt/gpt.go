package gpt

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/povarna/mermaid-gen/internal/llm"
)

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	n := request.NumReturnSequences
	if n < 1 {
		n = 1
	}

	// Base models have no chat template, so the legacy completions route is used.
	// Echo keeps the prompt in the text the same way return_full_text does.
	params := openai.CompletionNewParams{
		Model:       openai.CompletionNewParamsModel(c.ModelID),
		Prompt:      openai.CompletionNewParamsPromptUnion{OfString: openai.String(request.Prompt)},
		MaxTokens:   openai.Int(int64(request.MaxLength)),
		Temperature: openai.Float(sampleTemperature(request)),
		N:           openai.Int(int64(n)),
		Echo:        openai.Bool(true),
	}

	output, err := c.Client.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke model %s: %w", c.ModelID, err)
	}

	if len(output.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	response := &llm.LLMResponse{
		Candidates: make([]llm.Candidate, 0, len(output.Choices)),
		StopReason: string(output.Choices[0].FinishReason),
	}
	for _, choice := range output.Choices {
		response.Candidates = append(response.Candidates, llm.Candidate{GeneratedText: choice.Text})
	}

	return response, nil
}

// sampleTemperature maps greedy decoding to temperature 0, which is how
// OpenAI-compatible servers express it.
func sampleTemperature(request llm.LLMRequest) float64 {
	if !request.DoSample {
		return 0
	}
	return request.Temperature
}
