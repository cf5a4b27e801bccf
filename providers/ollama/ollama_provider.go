package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/repoghost/repoghost/providers/contracts"
	"github.com/repoghost/repoghost/providers/models"
	ollama_models "github.com/repoghost/repoghost/providers/ollama/models"
)

// OllamaConfig implements the summary provider interface for a local Ollama
// instance.
type OllamaConfig struct {
	BaseURL     string
	Model       string
	Temperature *float32

	client *http.Client
}

const defaultBaseURL = "http://localhost:11434/api"

// NewOllamaSummaryProvider initializes a new Ollama provider.
func NewOllamaSummaryProvider(config *OllamaConfig) contracts.ISummaryProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OllamaConfig{
		BaseURL:     baseURL,
		Model:       config.Model,
		Temperature: config.Temperature,
		client:      &http.Client{},
	}
}

func (ollamaProvider *OllamaConfig) SummarizeChunk(ctx context.Context, prompt string) (string, error) {
	reqBody := ollama_models.OllamaChatCompletionRequest{
		Model: ollamaProvider.Model,
		Messages: []ollama_models.Message{
			{Role: "user", Content: prompt},
		},
		Stream:      false,
		Temperature: ollamaProvider.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat", ollamaProvider.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ollamaProvider.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiError models.AIError
		if err := json.Unmarshal(body, &apiError); err == nil && apiError.Error.Message != "" {
			return "", fmt.Errorf("API request failed with status code '%d' - %s", resp.StatusCode, apiError.Error.Message)
		}
		return "", fmt.Errorf("API request failed with status code '%d'", resp.StatusCode)
	}

	var response ollama_models.OllamaChatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %v", err)
	}

	return strings.TrimSpace(response.Message.Content), nil
}
