// Package similarity scores query/candidate text pairs with embedding cosine similarity in [0,1].
package similarity

import (
	"context"
	"fmt"
	"math"

	"dealmatch/internal/embedding"
)

// Reranker maps embedding cosine similarity onto [0,1].
type Reranker struct {
	embedder embedding.Embedder
}

// New creates a Reranker over embedder.
func New(embedder embedding.Embedder) *Reranker {
	return &Reranker{embedder: embedder}
}

// Similarity returns (cos+1)/2 for query and candidate. Both texts are embedded in one call.
func (r *Reranker) Similarity(ctx context.Context, query, candidate string) (float64, error) {
	vecs, err := r.embedder.EmbedTexts(ctx, []string{query, candidate})
	if err != nil {
		return 0, fmt.Errorf("failed to embed pair: %w", err)
	}
	if len(vecs) != 2 {
		return 0, fmt.Errorf("embedding count mismatch: expected 2, got %d", len(vecs))
	}
	return Rescale(embedding.Dot(vecs[0], vecs[1])), nil
}

// SimilarityBatch scores N parallel pairs with one embed call for the queries
// and one for the candidates.
func (r *Reranker) SimilarityBatch(ctx context.Context, queries, candidates []string) ([]float64, error) {
	if len(queries) != len(candidates) {
		return nil, fmt.Errorf("pair count mismatch: %d queries, %d candidates", len(queries), len(candidates))
	}
	if len(queries) == 0 {
		return []float64{}, nil
	}

	qv, err := r.embedder.EmbedTexts(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("failed to embed queries: %w", err)
	}
	cv, err := r.embedder.EmbedTexts(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidates: %w", err)
	}
	if len(qv) != len(queries) || len(cv) != len(candidates) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d and %d", len(queries), len(qv), len(cv))
	}

	out := make([]float64, len(queries))
	for i := range queries {
		out[i] = Rescale(embedding.Dot(qv[i], cv[i]))
	}
	return out, nil
}

// Rescale clamps cos to [-1,1] and maps it to [0,1]. Non-finite input yields 0.
func Rescale(cos float64) float64 {
	if math.IsNaN(cos) || math.IsInf(cos, 0) {
		return 0
	}
	cos = max(-1, min(1, cos))
	return (cos + 1) / 2
}

// Mean averages scores. An empty slice yields 0.
func Mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
