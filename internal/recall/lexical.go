package recall

import (
	"context"
	"fmt"
	"sort"

	"dealmatch/internal/lexical"
	"dealmatch/internal/model"
)

// DefaultScanLimit bounds how many rows the lexical source reads per query.
const DefaultScanLimit = 200

// Scanner enumerates at most limit investors from the relational store.
type Scanner interface {
	Scan(ctx context.Context, limit int) ([]model.Investor, error)
}

// LexicalSource scores a bounded scan of investors with the lexical scorer.
type LexicalSource struct {
	scanner   Scanner
	scorer    *lexical.Scorer
	limit     int
	threshold int
}

// LexicalOption configures a LexicalSource.
type LexicalOption func(*LexicalSource)

// WithScanLimit caps the rows scanned per query.
func WithScanLimit(limit int) LexicalOption {
	return func(s *LexicalSource) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithThreshold keeps only rows scoring strictly above threshold.
func WithThreshold(threshold int) LexicalOption {
	return func(s *LexicalSource) {
		s.threshold = threshold
	}
}

// NewLexicalSource creates a lexical source. A nil scorer uses lexical.DefaultScorer.
func NewLexicalSource(scanner Scanner, scorer *lexical.Scorer, opts ...LexicalOption) *LexicalSource {
	if scorer == nil {
		scorer = lexical.DefaultScorer()
	}
	s := &LexicalSource{scanner: scanner, scorer: scorer, limit: DefaultScanLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (s *LexicalSource) Name() model.Source {
	return model.SourceLexical
}

// Recall returns up to k rows above the threshold, best first, ties by name.
func (s *LexicalSource) Recall(ctx context.Context, query string, k int) ([]model.Candidate, error) {
	if k <= 0 {
		return []model.Candidate{}, nil
	}

	rows, err := s.scanner.Scan(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to scan investors: %w", err)
	}

	pcts := s.scorer.PercentAll(query, rows)
	out := make([]model.Candidate, 0, len(rows))
	for i, inv := range rows {
		if pcts[i] <= s.threshold {
			continue
		}
		out = append(out, model.Candidate{
			Investor: inv,
			Scores:   map[model.Source]int{model.SourceLexical: pcts[i]},
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Scores[model.SourceLexical], out[j].Scores[model.SourceLexical]
		if pi != pj {
			return pi > pj
		}
		return out[i].Investor.Name < out[j].Investor.Name
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}
