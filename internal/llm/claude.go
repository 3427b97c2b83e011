package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

// ClaudeGenerator calls the Anthropic messages API.
type ClaudeGenerator struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// NewClaudeGenerator creates a generator. An empty BaseURL uses the public API.
func NewClaudeGenerator(cfg Config) *ClaudeGenerator {
	var opts []anthropic.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}
	return &ClaudeGenerator{
		client:    anthropic.NewClient(cfg.APIKey, opts...),
		model:     cfg.Model,
		maxTokens: cfg.maxTokens(),
	}
}

func (g *ClaudeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(g.model),
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(prompt)},
			},
		},
		MaxTokens: g.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}
	for _, c := range resp.Content {
		if c.Text != nil {
			return *c.Text, nil
		}
	}
	return "", fmt.Errorf("no response content")
}
