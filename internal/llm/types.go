package llm

import (
	"fmt"
	"strings"
)

// Provider names accepted by NewGenerator.
const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config selects and configures a text generation backend.
type Config struct {
	// Provider is one of the Provider constants. Empty means ProviderNone.
	Provider string
	BaseURL  string
	Model    string
	APIKey   string

	// MaxTokens caps the generated length. If 0, defaultMaxTokens is used.
	MaxTokens int
}

const defaultMaxTokens = 512

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return defaultMaxTokens
}

// apiBaseURL appends /v1 to an OpenAI-compatible server root when missing.
func apiBaseURL(baseURL string) string {
	u := strings.TrimRight(baseURL, "/")
	if u == "" || strings.HasSuffix(u, "/v1") {
		return u
	}
	return fmt.Sprintf("%s/v1", u)
}
