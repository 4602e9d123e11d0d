package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderBedrock     = "bedrock"

	DefaultPath = "configs/mermaid-gen.yaml"
)

// LoadProvidersConfig reads the provider file from $MERMAID_GEN_CONFIG or the
// default path. A missing file yields the defaults.
func LoadProvidersConfig() (*ProvidersConfig, error) {
	path := os.Getenv("MERMAID_GEN_CONFIG")
	if path == "" {
		path = DefaultPath
	}

	var cfg ProvidersConfig

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		applyDefaults(&cfg)
		return &cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *ProvidersConfig) {
	if cfg.Provider == "" {
		cfg.Provider = ProviderHuggingFace
	}
}

func (c *ProvidersConfig) Validate() error {
	switch c.Provider {
	case ProviderHuggingFace, ProviderOpenAI, ProviderBedrock:
	default:
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}
	if c.HuggingFace.TimeoutSeconds < 0 {
		return fmt.Errorf("huggingface.timeout_seconds must not be negative")
	}
	return nil
}
