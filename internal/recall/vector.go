package recall

import (
	"context"
	"fmt"
	"math"

	"dealmatch/internal/embedding"
	"dealmatch/internal/lexical"
	"dealmatch/internal/model"
	"dealmatch/internal/vectorstore"
)

// VectorIndex is the nearest-neighbor lookup the vector source needs.
type VectorIndex interface {
	Nearest(ctx context.Context, collection string, vector []float32, k int) ([]vectorstore.Neighbor, error)
}

// VectorSource recalls investors by embedding similarity.
type VectorSource struct {
	embedder   embedding.Embedder
	index      VectorIndex
	collection string
}

// NewVectorSource creates a vector source over collection.
func NewVectorSource(embedder embedding.Embedder, index VectorIndex, collection string) *VectorSource {
	return &VectorSource{embedder: embedder, index: index, collection: collection}
}

// Name implements Source.
func (s *VectorSource) Name() model.Source {
	return model.SourceVector
}

// Recall embeds query and converts each neighbor to a candidate with a vector percentage.
func (s *VectorSource) Recall(ctx context.Context, query string, k int) ([]model.Candidate, error) {
	if k <= 0 {
		return []model.Candidate{}, nil
	}

	vec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	neighbors, err := s.index.Nearest(ctx, s.collection, vec, k)
	if err != nil {
		return nil, fmt.Errorf("failed to query vector index: %w", err)
	}

	out := make([]model.Candidate, 0, len(neighbors))
	for _, n := range neighbors {
		inv := model.InvestorFromPayload(n.Meta)
		if inv.Name == "" {
			continue
		}
		c := model.Candidate{
			Investor: inv,
			Scores:   map[model.Source]int{model.SourceVector: NeighborPct(n.Distance, n.Certainty)},
		}
		if n.Distance != nil && isFinite(*n.Distance) {
			d := *n.Distance
			c.Distance = &d
		}
		out = append(out, c)
	}
	return out, nil
}

// NeighborPct prefers the store's certainty and falls back to the distance transform.
func NeighborPct(distance, certainty *float64) int {
	if certainty != nil && isFinite(*certainty) {
		return CertaintyToPct(*certainty)
	}
	return DistanceToPct(distance)
}

// DistanceToPct maps a cosine distance in [0,2] to round(100*(1-d/2)).
// Nil or non-finite distance yields 0. Out-of-domain values are clamped first.
func DistanceToPct(distance *float64) int {
	if distance == nil || !isFinite(*distance) {
		return 0
	}
	d := max(0, min(2, *distance))
	return lexical.ClampPct(math.Round((1 - d/2) * 100))
}

// CertaintyToPct maps a certainty in [0,1] to round(100*c), clamped.
func CertaintyToPct(certainty float64) int {
	return lexical.ClampPct(math.Round(certainty * 100))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
