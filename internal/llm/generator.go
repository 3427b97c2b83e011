package llm

import (
	"context"
	"fmt"
	"strings"
)

// Generator produces free text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator builds the Generator named by cfg.Provider.
// It returns a nil Generator and no error for ProviderNone, in which case
// callers fall back to templated text.
func NewGenerator(ctx context.Context, cfg Config) (Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch provider {
	case "", ProviderNone:
		return nil, nil

	case ProviderOpenAI:
		return NewOpenAIGenerator(cfg), nil

	case ProviderOllama:
		if cfg.APIKey == "" {
			cfg.APIKey = "ollama"
		}
		cfg.BaseURL = apiBaseURL(cfg.BaseURL)
		return NewOpenAIGenerator(cfg), nil

	case ProviderClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("claude provider requires an API key")
		}
		return NewClaudeGenerator(cfg), nil

	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return NewGeminiGenerator(ctx, cfg)

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
