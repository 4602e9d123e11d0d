package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProvidersConfig_Success(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "mermaid-gen.yaml")

	configContent := `provider: openai
huggingface:
  base_url: http://tgi:8080/generate
  raw_endpoint: true
  timeout_seconds: 30
openai:
  base_url: http://vllm:8000/v1/
bedrock:
  region: eu-west-1
  model_arn: arn:aws:bedrock:eu-west-1:123456789012:imported-model/abc
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	t.Setenv("MERMAID_GEN_CONFIG", configPath)

	cfg, err := LoadProvidersConfig()
	if err != nil {
		t.Fatalf("LoadProvidersConfig() failed: %v", err)
	}

	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Expected provider 'openai', got '%s'", cfg.Provider)
	}
	if cfg.HuggingFace.BaseURL != "http://tgi:8080/generate" {
		t.Errorf("Unexpected huggingface base_url '%s'", cfg.HuggingFace.BaseURL)
	}
	if !cfg.HuggingFace.RawEndpoint {
		t.Error("Expected huggingface.raw_endpoint=true")
	}
	if cfg.HuggingFace.TimeoutSeconds != 30 {
		t.Errorf("Expected timeout_seconds=30, got %d", cfg.HuggingFace.TimeoutSeconds)
	}
	if cfg.OpenAI.BaseURL != "http://vllm:8000/v1/" {
		t.Errorf("Unexpected openai base_url '%s'", cfg.OpenAI.BaseURL)
	}
	if cfg.Bedrock.Region != "eu-west-1" {
		t.Errorf("Expected bedrock region 'eu-west-1', got '%s'", cfg.Bedrock.Region)
	}
}

func TestLoadProvidersConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("MERMAID_GEN_CONFIG", "/nonexistent/path/mermaid-gen.yaml")

	cfg, err := LoadProvidersConfig()
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got error: %v", err)
	}
	if cfg.Provider != ProviderHuggingFace {
		t.Errorf("Expected default provider 'huggingface', got '%s'", cfg.Provider)
	}
}

func TestLoadProvidersConfig_EmptyProviderDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, []byte("openai:\n  base_url: http://x/v1/\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("MERMAID_GEN_CONFIG", configPath)

	cfg, err := LoadProvidersConfig()
	if err != nil {
		t.Fatalf("LoadProvidersConfig() failed: %v", err)
	}
	if cfg.Provider != ProviderHuggingFace {
		t.Errorf("Expected default provider 'huggingface', got '%s'", cfg.Provider)
	}
}

func TestLoadProvidersConfig_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(configPath, []byte("provider: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("MERMAID_GEN_CONFIG", configPath)

	_, err := LoadProvidersConfig()
	if err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Expected parse error, got: %v", err)
	}
}

func TestLoadProvidersConfig_UnknownProvider(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "unknown.yaml")
	if err := os.WriteFile(configPath, []byte("provider: sagemaker\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("MERMAID_GEN_CONFIG", configPath)

	_, err := LoadProvidersConfig()
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "sagemaker") {
		t.Errorf("Expected error to name the provider, got: %v", err)
	}
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := &ProvidersConfig{
		Provider:    ProviderHuggingFace,
		HuggingFace: HuggingFaceConfig{TimeoutSeconds: -1},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for negative timeout")
	}
}
