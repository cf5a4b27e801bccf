package providers

import (
	"fmt"

	"github.com/repoghost/repoghost/providers/contracts"
	"github.com/repoghost/repoghost/providers/ollama"
	"github.com/repoghost/repoghost/providers/openai"
)

// AIProviderConfig holds the oracle settings shared by all providers.
type AIProviderConfig struct {
	Provider              string   `mapstructure:"provider"`
	BaseURL               string   `mapstructure:"base_url"`
	Model                 string   `mapstructure:"model"`
	ApiKey                string   `mapstructure:"api_key"`
	Temperature           *float32 `mapstructure:"temperature"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout"`
}

// SummaryProviderFactory returns the provider adapter named in config.
func SummaryProviderFactory(config *AIProviderConfig) (contracts.ISummaryProvider, error) {
	switch config.Provider {
	case "openai", "azure-openai", "openrouter", "deepseek", "mistral", "qwen", "grok":
		// All of these speak the OpenAI chat-completions dialect.
		return openai.NewOpenAISummaryProvider(&openai.OpenAIConfig{
			BaseURL:     config.BaseURL,
			Model:       config.Model,
			ApiKey:      config.ApiKey,
			Temperature: config.Temperature,
		}), nil
	case "ollama":
		return ollama.NewOllamaSummaryProvider(&ollama.OllamaConfig{
			BaseURL:     config.BaseURL,
			Model:       config.Model,
			Temperature: config.Temperature,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
