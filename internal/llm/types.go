package llm

// LLMRequest carries the prompt and sampling parameters for a single generation call.
type LLMRequest struct {
	Prompt             string
	MaxLength          int
	DoSample           bool
	Temperature        float64
	NumReturnSequences int
}

// Candidate is one generated continuation.
type Candidate struct {
	GeneratedText string
}

// LLMResponse holds the candidate continuations in the order the backend returned them.
type LLMResponse struct {
	Candidates []Candidate
	StopReason string
}
