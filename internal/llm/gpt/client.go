package gpt

import (
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Client struct {
	Client  openai.Client
	ModelID string
}

// NewClient targets an OpenAI-compatible server (vLLM, TGI) hosting modelID.
// The API key is optional since self-hosted servers usually run without one.
func NewClient(baseURL string, apiKey string, model string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("OpenAI-compatible base URL is required")
	}
	if model == "" {
		return nil, fmt.Errorf("OpenAI model ID is required")
	}

	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	return &Client{
		Client:  openai.NewClient(opts...),
		ModelID: model,
	}, nil
}
