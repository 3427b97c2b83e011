package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"dealmatch/internal/embedding"
)

// EmbeddingsClient embeds text through an OpenAI-compatible embeddings API.
// Vectors are checked against ExpectedSize and scaled to unit length.
type EmbeddingsClient struct {
	BaseURL      string
	Model        string
	ExpectedSize int // Expected vector size for validation
	embedder     embeddings.Embedder
}

var _ embedding.Embedder = (*EmbeddingsClient)(nil)

// NewEmbeddingsClient creates a new embeddings client.
// expectedSize is the expected vector size (from QDRANT_VECTOR_SIZE config).
// An empty apiKey is sent as "none" for local servers without auth.
func NewEmbeddingsClient(baseURL, apiKey, model string, expectedSize int) (*EmbeddingsClient, error) {
	if expectedSize <= 0 {
		return nil, fmt.Errorf("expected vector size must be positive, got %d", expectedSize)
	}
	if apiKey == "" {
		apiKey = "none"
	}

	base := apiBaseURL(baseURL)
	client, err := openai.New(
		openai.WithBaseURL(base),
		openai.WithToken(apiKey),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &EmbeddingsClient{
		BaseURL:      base,
		Model:        model,
		ExpectedSize: expectedSize,
		embedder:     embedder,
	}, nil
}

// EmbedText embeds a single text.
func (c *EmbeddingsClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return vecs[0], nil
}

// EmbedTexts generates embeddings for the given texts.
// Returns a slice of float32 vectors, one per input text.
func (c *EmbeddingsClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	vecs, err := c.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed texts: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(vecs))
	}

	for i, vec := range vecs {
		if len(vec) != c.ExpectedSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(vec), c.ExpectedSize)
		}
		vecs[i] = embedding.Normalize(vec)
	}
	return vecs, nil
}
