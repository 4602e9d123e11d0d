package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/povarna/mermaid-gen/internal/llm"
)

type textGenerationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters textGenerationParams `json:"parameters"`
	Options    requestOptions       `json:"options"`
}

type textGenerationParams struct {
	MaxNewTokens       int     `json:"max_new_tokens"`
	DoSample           bool    `json:"do_sample"`
	Temperature        float64 `json:"temperature"`
	NumReturnSequences int     `json:"num_return_sequences,omitempty"`
	ReturnFullText     bool    `json:"return_full_text"`
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type textGenerationOutput struct {
	GeneratedText string `json:"generated_text"`
	Details       *struct {
		FinishReason string `json:"finish_reason"`
	} `json:"details,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	payload := textGenerationRequest{
		Inputs: request.Prompt,
		Parameters: textGenerationParams{
			MaxNewTokens:       request.MaxLength,
			DoSample:           request.DoSample,
			Temperature:        request.Temperature,
			NumReturnSequences: request.NumReturnSequences,
			// Keep the prompt in the output like the transformers pipeline does.
			ReturnFullText: true,
		},
		Options: requestOptions{WaitForModel: true},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize text-generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke model %s: %w", c.ModelID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("inference API error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("inference API error (status %d): %s", resp.StatusCode, string(body))
	}

	outputs, err := decodeOutputs(body)
	if err != nil {
		return nil, err
	}

	response := &llm.LLMResponse{
		Candidates: make([]llm.Candidate, 0, len(outputs)),
	}
	for _, out := range outputs {
		response.Candidates = append(response.Candidates, llm.Candidate{GeneratedText: out.GeneratedText})
	}
	if len(outputs) > 0 && outputs[0].Details != nil {
		response.StopReason = outputs[0].Details.FinishReason
	}

	return response, nil
}

// decodeOutputs accepts the Inference API list form and the single object
// returned by text-generation-inference's /generate route.
func decodeOutputs(body []byte) ([]textGenerationOutput, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var single struct {
			textGenerationOutput
			apiError
		}
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w (body: %s)", err, string(body))
		}
		if single.Error != "" {
			return nil, fmt.Errorf("inference API error: %s", single.Error)
		}
		return []textGenerationOutput{single.textGenerationOutput}, nil
	}

	var outputs []textGenerationOutput
	if err := json.Unmarshal(trimmed, &outputs); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w (body: %s)", err, string(body))
	}
	return outputs, nil
}
