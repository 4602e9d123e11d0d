package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/povarna/mermaid-gen/internal/config"
	"github.com/povarna/mermaid-gen/internal/generation"
	"github.com/povarna/mermaid-gen/internal/llm"
	"github.com/povarna/mermaid-gen/internal/llm/bedrock"
	"github.com/povarna/mermaid-gen/internal/llm/gpt"
	"github.com/povarna/mermaid-gen/internal/llm/huggingface"
	"github.com/rs/zerolog"
)

type Config struct {
	Provider       string
	HFBaseURL      string
	HFToken        string
	HFRawEndpoint  bool
	HFTimeout      time.Duration
	OpenAIBaseURL  string
	OpenAIKey      string
	AWSRegion      string
	BedrockModelID string
}

type Dependencies struct {
	Pipeline *generation.Pipeline
	Logger   *zerolog.Logger
}

// LoadConfig merges the provider file with the environment. Environment
// variables win over file values.
func LoadConfig(file *config.ProvidersConfig) *Config {
	if file == nil {
		file = &config.ProvidersConfig{Provider: config.ProviderHuggingFace}
	}

	return &Config{
		Provider:       getEnv("LLM_PROVIDER", file.Provider),
		HFBaseURL:      getEnv("HF_BASE_URL", file.HuggingFace.BaseURL),
		HFToken:        getEnv("HF_TOKEN", ""),
		HFRawEndpoint:  getEnvBool("HF_RAW_ENDPOINT", file.HuggingFace.RawEndpoint),
		HFTimeout:      time.Duration(file.HuggingFace.TimeoutSeconds) * time.Second,
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", file.OpenAI.BaseURL),
		OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
		AWSRegion:      getEnv("AWS_REGION", defaultString(file.Bedrock.Region, "us-east-1")),
		BedrockModelID: getEnv("BEDROCK_MODEL_ARN", file.Bedrock.ModelARN),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	llmClient, err := createLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	logger.Debug().
		Str("provider", cfg.Provider).
		Str("model", generation.ModelID).
		Msg("text-generation client ready")

	return &Dependencies{
		Pipeline: generation.NewPipeline(llmClient, logger),
		Logger:   logger,
	}, nil
}

// WireFromEnv loads the provider file, applies environment overrides and wires
// the pipeline.
func WireFromEnv(ctx context.Context, logger *zerolog.Logger) (*Dependencies, error) {
	providers, err := config.LoadProvidersConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load provider config: %w", err)
	}

	return Wire(ctx, LoadConfig(providers), logger)
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func defaultString(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func createLLMClient(ctx context.Context, cfg *Config) (llm.LLMClient, error) {
	switch cfg.Provider {
	case config.ProviderHuggingFace, "":
		return huggingface.NewClient(cfg.HFBaseURL, cfg.HFToken, generation.ModelID, cfg.HFRawEndpoint, cfg.HFTimeout)
	case config.ProviderOpenAI:
		return gpt.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIKey, generation.ModelID)
	case config.ProviderBedrock:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.BedrockModelID)
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}
