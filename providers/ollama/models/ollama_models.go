package models

// Message is one turn of an Ollama chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OllamaChatCompletionRequest is the non-streaming request body for /api/chat.
type OllamaChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature *float32  `json:"temperature,omitempty"`
}

// OllamaChatCompletionResponse is the subset of the response we consume.
type OllamaChatCompletionResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}
