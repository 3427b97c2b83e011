// Package qa answers questions about one investor from cited passages of its record.
package qa

import (
	"context"

	"dealmatch/internal/contextutil"
	"dealmatch/internal/model"
	"dealmatch/internal/retrieval"
)

const (
	// DefaultTarget is the number of passages an answer cites.
	DefaultTarget = 3
	// DefaultFetch is how many passages are ranked before mode filtering.
	DefaultFetch = 6
)

// Request is a question about one investor.
type Request struct {
	Investor model.Investor
	Question string
	// Mode is "profile", "fit" or empty to infer from the question.
	Mode string
	// SeekerText is the pitch summary used in fit mode.
	SeekerText string
}

// Answer is a composed answer with the passages it was built from.
type Answer struct {
	Text      string                    `json:"answer"`
	Passages  []retrieval.RankedPassage `json:"passages"`
	Citations []retrieval.Citation      `json:"citations"`
	Mode      Mode                      `json:"mode"`
	Intent    Intent                    `json:"intent"`
	Method    retrieval.Method          `json:"method"`
}

// Composer builds cited answers.
type Composer struct {
	retriever *retrieval.Retriever
	target    int
	fetch     int
	chunkSize int
}

// Option configures a Composer.
type Option func(*Composer)

// WithTarget sets how many passages are cited and how many are ranked before filtering.
// A fetch smaller than target is raised to target.
func WithTarget(target, fetch int) Option {
	return func(c *Composer) {
		if target > 0 {
			c.target = target
		}
		if fetch > 0 {
			c.fetch = fetch
		}
		if c.fetch < c.target {
			c.fetch = c.target
		}
	}
}

// WithChunkSize sets the passage soft cap in runes.
func WithChunkSize(n int) Option {
	return func(c *Composer) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// NewComposer creates a Composer ranking passages with retriever.
func NewComposer(retriever *retrieval.Retriever, opts ...Option) *Composer {
	c := &Composer{
		retriever: retriever,
		target:    DefaultTarget,
		fetch:     DefaultFetch,
		chunkSize: retrieval.DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ask resolves mode and intent, ranks the passage pool and composes the answer.
func (c *Composer) Ask(ctx context.Context, req Request) Answer {
	logger := contextutil.LoggerFromContext(ctx)

	mode := ResolveMode(req.Mode, req.Question)
	intent := ClassifyIntent(req.Question)

	record := RecordPassages(req.Investor, c.chunkSize)
	pool := append([]retrieval.Passage{}, record...)
	if mode == ModeFit {
		pool = append(pool, SeekerPassages(req.SeekerText, c.chunkSize)...)
	}

	res := c.retriever.RankDetailed(ctx, pool, req.Question, c.fetch)

	var selected []retrieval.RankedPassage
	if mode == ModeProfile {
		selected = c.selectProfile(res.Passages, record)
	} else {
		selected = res.Passages
		if len(selected) > c.target {
			selected = selected[:c.target]
		}
	}

	citations := make([]retrieval.Citation, len(selected))
	for i, p := range selected {
		citations[i] = p.Citation
	}

	logger.DebugContext(ctx, "composed answer",
		"investor", req.Investor.Name, "mode", mode, "intent", intent,
		"method", res.Method, "pool", len(pool), "citations", len(citations))

	return Answer{
		Text:      compose(intent, mode, req.Investor, req.SeekerText, selected),
		Passages:  selected,
		Citations: citations,
		Mode:      mode,
		Intent:    intent,
		Method:    res.Method,
	}
}

// selectProfile keeps record passages only, then backfills from record in
// order with zero scores until the target is met.
func (c *Composer) selectProfile(ranked []retrieval.RankedPassage, record []retrieval.Passage) []retrieval.RankedPassage {
	out := make([]retrieval.RankedPassage, 0, c.target)
	seen := make(map[string]struct{}, c.target)

	for _, p := range ranked {
		if len(out) == c.target {
			break
		}
		if p.Citation.Source != retrieval.SourceRecord {
			continue
		}
		key := passageKey(p.Passage)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}

	for _, p := range record {
		if len(out) == c.target {
			break
		}
		key := passageKey(p)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, retrieval.RankedPassage{Passage: p})
	}
	return out
}
