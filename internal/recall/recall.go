// Package recall pulls a bounded candidate set for a query from one or more sources.
package recall

import (
	"context"
	"errors"
	"strings"

	"dealmatch/internal/contextutil"
	"dealmatch/internal/model"
)

// ErrAllSourcesFailed is returned, with an empty candidate set, when every source errored.
var ErrAllSourcesFailed = errors.New("all recall sources failed")

// Source is one place candidates can be recalled from.
type Source interface {
	Name() model.Source
	Recall(ctx context.Context, query string, k int) ([]model.Candidate, error)
}

// Recaller queries its sources in order and merges their candidates by investor name.
type Recaller struct {
	sources []Source
}

// NewRecaller creates a Recaller over sources. Nil sources are skipped.
func NewRecaller(sources ...Source) *Recaller {
	r := &Recaller{}
	for _, s := range sources {
		if s != nil {
			r.sources = append(r.sources, s)
		}
	}
	return r
}

// Sources returns the configured source names.
func (r *Recaller) Sources() []model.Source {
	names := make([]model.Source, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

// Recall returns merged candidates in first-seen order. A failing source is
// logged and contributes nothing; only when all sources fail is
// ErrAllSourcesFailed returned, alongside an empty slice.
func (r *Recaller) Recall(ctx context.Context, query string, k int) ([]model.Candidate, error) {
	logger := contextutil.LoggerFromContext(ctx)

	merged := []model.Candidate{}
	index := make(map[string]int)
	failed := 0

	for _, src := range r.sources {
		got, err := src.Recall(ctx, query, k)
		if err != nil {
			failed++
			logger.WarnContext(ctx, "recall source failed", "source", src.Name(), "error", err)
			continue
		}
		logger.DebugContext(ctx, "recall source completed", "source", src.Name(), "candidates", len(got))

		for _, c := range got {
			key := strings.ToLower(strings.TrimSpace(c.Investor.Name))
			if key == "" {
				continue
			}
			if i, ok := index[key]; ok {
				merged[i].Merge(c)
				continue
			}
			index[key] = len(merged)
			fresh := model.Candidate{Investor: c.Investor}
			fresh.Merge(c)
			merged = append(merged, fresh)
		}
	}

	if len(r.sources) > 0 && failed == len(r.sources) {
		logger.ErrorContext(ctx, "all recall sources failed", "sources", len(r.sources))
		return []model.Candidate{}, ErrAllSourcesFailed
	}
	return merged, nil
}
