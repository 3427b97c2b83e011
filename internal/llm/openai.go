package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIGenerator talks to any OpenAI-compatible chat completions API.
type OpenAIGenerator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIGenerator creates a generator. BaseURL must include the API version
// path (for example http://localhost:8080/v1); empty uses the OpenAI default.
func NewOpenAIGenerator(cfg Config) *OpenAIGenerator {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return &OpenAIGenerator{
		client:    openai.NewClientWithConfig(config),
		model:     cfg.Model,
		maxTokens: cfg.maxTokens(),
	}
}

// Generate sends prompt as a single user message.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: g.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
