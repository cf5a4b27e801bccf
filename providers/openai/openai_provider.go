package openai

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
	openai_models "github.com/repoghost/repoghost/providers/openai/models"
)

// OpenAIConfig implements the summary provider interface for OpenAI-compatible
// chat-completion APIs.
type OpenAIConfig struct {
	BaseURL     string
	Model       string
	ApiKey      string
	Temperature *float32

	client *http.Client
}

const defaultBaseURL = "https://api.openai.com/v1"

// NewOpenAISummaryProvider initializes a new OpenAI provider. The HTTP client
// is shared across calls so connections are reused between chunks.
func NewOpenAISummaryProvider(config *OpenAIConfig) contracts.ISummaryProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAIConfig{
		BaseURL:     baseURL,
		Model:       config.Model,
		ApiKey:      config.ApiKey,
		Temperature: config.Temperature,
		client:      &http.Client{},
	}
}

func (openaiProvider *OpenAIConfig) SummarizeChunk(ctx context.Context, prompt string) (string, error) {
	reqBody := openai_models.OpenAIChatCompletionRequest{
		Model: openaiProvider.Model,
		Messages: []openai_models.Message{
			{Role: "user", Content: prompt},
		},
		Temperature: openaiProvider.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", openaiProvider.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if openaiProvider.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+openaiProvider.ApiKey)
	}

	resp, err := openaiProvider.client.Do(req)
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

	var response openai_models.OpenAIChatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %v", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("malformed response: no choices returned")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
