package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/povarna/mermaid-gen/internal/llm"
)

// Completion-style request accepted by Custom Model Import.
type importedModelRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	N           int     `json:"n,omitempty"`
}

// The response shape depends on the imported architecture. Generation is a
// pointer so an empty continuation is still a candidate.
type importedModelResponse struct {
	Generation *string `json:"generation"`
	StopReason string `json:"stop_reason"`
	Outputs    []struct {
		Text       string `json:"text"`
		StopReason string `json:"stop_reason"`
	} `json:"outputs"`
	Choices []struct {
		Text         string `json:"text"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	body, err := json.Marshal(newImportedModelRequest(request))
	if err != nil {
		return nil, fmt.Errorf("Unable to serialize bedrock request. Error: %w", err)
	}

	output, err := c.Client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.ModelID,
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("Unable to invoke imported model. Error: %w", err)
	}

	return decodeImportedModelResponse(output.Body)
}

func newImportedModelRequest(request llm.LLMRequest) importedModelRequest {
	temperature := request.Temperature
	if !request.DoSample {
		temperature = 0
	}

	return importedModelRequest{
		Prompt:      request.Prompt,
		MaxTokens:   request.MaxLength,
		Temperature: temperature,
		N:           request.NumReturnSequences,
	}
}

func decodeImportedModelResponse(body []byte) (*llm.LLMResponse, error) {
	var response importedModelResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal bedrock response. Error: %w", err)
	}

	result := &llm.LLMResponse{}
	switch {
	case len(response.Choices) > 0:
		for _, choice := range response.Choices {
			result.Candidates = append(result.Candidates, llm.Candidate{GeneratedText: choice.Text})
		}
		result.StopReason = response.Choices[0].FinishReason
	case len(response.Outputs) > 0:
		for _, out := range response.Outputs {
			result.Candidates = append(result.Candidates, llm.Candidate{GeneratedText: out.Text})
		}
		result.StopReason = response.Outputs[0].StopReason
	case response.Generation != nil:
		result.Candidates = []llm.Candidate{{GeneratedText: *response.Generation}}
		result.StopReason = response.StopReason
	}

	return result, nil
}
