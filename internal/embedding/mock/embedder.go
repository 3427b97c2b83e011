// Package mock provides a deterministic bag-of-words embedder for tests and offline runs.
package mock

import (
	"context"
	"fmt"
	"sync"

	"dealmatch/internal/embedding"
	"dealmatch/internal/lexical"
)

// DefaultDim is the vector size used when Embedder.Dim is zero.
const DefaultDim = 256

// Embedder is a test double for embedding.Embedder.
// Each distinct token gets its own dimension in first-seen order, so texts
// sharing tokens score higher than texts that share none.
type Embedder struct {
	// Dim is the vector size. Token slots wrap once it is exhausted.
	Dim int

	// EmbedTextsFunc replaces the default behavior when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	mu        sync.Mutex
	vocab     map[string]int
	callCount int
}

var _ embedding.Embedder = (*Embedder)(nil)

// NewEmbedder creates a mock embedder with default deterministic behavior.
func NewEmbedder() *Embedder {
	return &Embedder{Dim: DefaultDim}
}

// EmbedText embeds a single text.
func (m *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vecs, err := m.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return vecs[0], nil
}

// EmbedTexts embeds texts as L2-normalized token count vectors.
func (m *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.EmbedTextsFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, texts)
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vector(text)
	}
	return out, nil
}

// CallCount returns the number of EmbedText/EmbedTexts calls.
func (m *Embedder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

func (m *Embedder) vector(text string) []float32 {
	dim := m.Dim
	if dim <= 0 {
		dim = DefaultDim
	}
	vec := make([]float32, dim)

	m.mu.Lock()
	if m.vocab == nil {
		m.vocab = make(map[string]int)
	}
	for _, token := range lexical.Tokenize(text) {
		slot, ok := m.vocab[token]
		if !ok {
			slot = len(m.vocab)
			m.vocab[token] = slot
		}
		vec[slot%dim]++
	}
	m.mu.Unlock()

	return embedding.Normalize(vec)
}
