package retrieval

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"dealmatch/internal/contextutil"
	"dealmatch/internal/embedding"
	"dealmatch/internal/lexical"
)

var errNoEmbedder = errors.New("no embedder configured")

// Retriever ranks passages by embedding dot product, or by shared tokens when
// the embedding step fails.
type Retriever struct {
	embedder embedding.Embedder
}

// NewRetriever creates a Retriever. A nil embedder always uses keyword scoring.
func NewRetriever(embedder embedding.Embedder) *Retriever {
	return &Retriever{embedder: embedder}
}

// Rank returns at most topK passages, best first.
func (r *Retriever) Rank(ctx context.Context, passages []Passage, query string, topK int) []RankedPassage {
	return r.RankDetailed(ctx, passages, query, topK).Passages
}

// RankDetailed is Rank plus the scoring method used and the embedding error, if any.
func (r *Retriever) RankDetailed(ctx context.Context, passages []Passage, query string, topK int) Result {
	if len(passages) == 0 || topK <= 0 {
		return Result{Passages: []RankedPassage{}, Method: MethodSimilarity}
	}

	scores, err := r.similarityScores(ctx, passages, query)
	method := MethodSimilarity
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "embedding failed, using keyword overlap",
			"passages", len(passages), "error", err)
		scores = keywordScores(passages, query)
		method = MethodKeyword
	}

	ranked := make([]RankedPassage, len(passages))
	for i, p := range passages {
		ranked[i] = RankedPassage{Passage: p, Score: scores[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return Result{Passages: ranked, Method: method, Err: err}
}

// similarityScores embeds the query once and the passages once.
func (r *Retriever) similarityScores(ctx context.Context, passages []Passage, query string) ([]float64, error) {
	if r.embedder == nil {
		return nil, errNoEmbedder
	}

	qv, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	pvs, err := r.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed passages: %w", err)
	}
	if len(pvs) != len(passages) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(passages), len(pvs))
	}

	scores := make([]float64, len(passages))
	for i, pv := range pvs {
		scores[i] = embedding.Finite(embedding.Dot(qv, pv))
	}
	return scores, nil
}

func keywordScores(passages []Passage, query string) []float64 {
	q := lexical.TokenSet(query)
	scores := make([]float64, len(passages))
	for i, p := range passages {
		scores[i] = float64(lexical.Overlap(q, lexical.TokenSet(p.Text)))
	}
	return scores
}
