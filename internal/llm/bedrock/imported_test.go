package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/povarna/mermaid-gen/internal/llm"
)

type fakeRuntime struct {
	input *bedrockruntime.InvokeModelInput
	body  string
	err   error
}

func (f *fakeRuntime) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.body)}, nil
}

func TestInvokeModel_SendsFixedPayload(t *testing.T) {
	runtime := &fakeRuntime{body: `{"generation":"graph TD\n A --> B","stop_reason":"length"}`}
	client := &Client{Client: runtime, ModelID: "arn:aws:bedrock:us-east-1:123456789012:imported-model/gptneo"}

	resp, err := client.InvokeModel(context.Background(), llm.LLMRequest{
		Prompt:             "graph TD",
		MaxLength:          300,
		DoSample:           true,
		Temperature:        0.7,
		NumReturnSequences: 1,
	})
	if err != nil {
		t.Fatalf("InvokeModel failed: %v", err)
	}

	if *runtime.input.ModelId != client.ModelID {
		t.Errorf("Expected model %s, got %s", client.ModelID, *runtime.input.ModelId)
	}

	var sent importedModelRequest
	if err := json.Unmarshal(runtime.input.Body, &sent); err != nil {
		t.Fatalf("Failed to decode sent body: %v", err)
	}
	if sent.Prompt != "graph TD" || sent.MaxTokens != 300 || sent.Temperature != 0.7 {
		t.Errorf("Unexpected payload: %+v", sent)
	}

	if len(resp.Candidates) != 1 || resp.Candidates[0].GeneratedText != "graph TD\n A --> B" {
		t.Errorf("Unexpected candidates: %+v", resp.Candidates)
	}
	if resp.StopReason != "length" {
		t.Errorf("Expected stop reason 'length', got '%s'", resp.StopReason)
	}
}

func TestInvokeModel_RuntimeError(t *testing.T) {
	runtimeErr := errors.New("ModelNotReadyException")
	client := &Client{Client: &fakeRuntime{err: runtimeErr}, ModelID: "arn"}

	_, err := client.InvokeModel(context.Background(), llm.LLMRequest{Prompt: "x"})
	if !errors.Is(err, runtimeErr) {
		t.Errorf("Expected wrapped runtime error, got %v", err)
	}
}

func TestDecodeImportedModelResponse(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		candidates []string
		stopReason string
		wantErr    bool
	}{
		{
			name:       "completion choices",
			body:       `{"choices":[{"text":"a","finish_reason":"length"},{"text":"b","finish_reason":"stop"}]}`,
			candidates: []string{"a", "b"},
			stopReason: "length",
		},
		{
			name:       "outputs list",
			body:       `{"outputs":[{"text":"c","stop_reason":"stop"}]}`,
			candidates: []string{"c"},
			stopReason: "stop",
		},
		{
			name:       "single generation",
			body:       `{"generation":"d","stop_reason":"length"}`,
			candidates: []string{"d"},
			stopReason: "length",
		},
		{
			name:       "empty generation",
			body:       `{"generation":"","stop_reason":"stop"}`,
			candidates: []string{""},
			stopReason: "stop",
		},
		{
			name:       "empty body object",
			body:       `{}`,
			candidates: nil,
		},
		{
			name:    "invalid json",
			body:    `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := decodeImportedModelResponse([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(resp.Candidates) != len(tt.candidates) {
				t.Fatalf("Expected %d candidates, got %d", len(tt.candidates), len(resp.Candidates))
			}
			for i, want := range tt.candidates {
				if resp.Candidates[i].GeneratedText != want {
					t.Errorf("Candidate %d: expected %q, got %q", i, want, resp.Candidates[i].GeneratedText)
				}
			}
			if resp.StopReason != tt.stopReason {
				t.Errorf("Expected stop reason %q, got %q", tt.stopReason, resp.StopReason)
			}
		})
	}
}

func TestNewImportedModelRequest_Greedy(t *testing.T) {
	req := newImportedModelRequest(llm.LLMRequest{Prompt: "x", MaxLength: 10, DoSample: false, Temperature: 0.7})
	if req.Temperature != 0 {
		t.Errorf("Expected temperature 0 for greedy decoding, got %f", req.Temperature)
	}
}
