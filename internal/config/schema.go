package config

// ProvidersConfig selects the text-generation backend and how to reach it
type ProvidersConfig struct {
	Provider    string            `yaml:"provider"`
	HuggingFace HuggingFaceConfig `yaml:"huggingface"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Bedrock     BedrockConfig     `yaml:"bedrock"`
}

// HuggingFaceConfig points at the Inference API or a text-generation-inference server
type HuggingFaceConfig struct {
	BaseURL        string `yaml:"base_url"`
	RawEndpoint    bool   `yaml:"raw_endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// OpenAIConfig points at an OpenAI-compatible server hosting the model
type OpenAIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// BedrockConfig addresses the imported copy of the model in Bedrock
type BedrockConfig struct {
	Region   string `yaml:"region"`
	ModelARN string `yaml:"model_arn"`
}
