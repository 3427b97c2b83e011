package lexical

import (
	"math"

	"dealmatch/internal/model"
)

// Bucket is a group of investor fields whose overlap with the query is capped together.
type Bucket struct {
	Name   string
	Cap    int
	Fields func(model.Investor) []string
}

// Caps sets the per-bucket caps of DefaultBuckets.
type Caps struct {
	Sectors           int `toml:"sectors"`
	Stages            int `toml:"stages"`
	Geo               int `toml:"geo"`
	ThesisConstraints int `toml:"thesis_constraints"`
}

// DefaultCaps gives a maximum raw score of 9.
var DefaultCaps = Caps{Sectors: 3, Stages: 2, Geo: 2, ThesisConstraints: 2}

// DefaultBuckets returns the sector, stage, geography and thesis+constraints buckets.
func DefaultBuckets(c Caps) []Bucket {
	return []Bucket{
		{Name: "sectors", Cap: c.Sectors, Fields: func(i model.Investor) []string { return []string{i.Sectors} }},
		{Name: "stages", Cap: c.Stages, Fields: func(i model.Investor) []string { return []string{i.Stages} }},
		{Name: "geo", Cap: c.Geo, Fields: func(i model.Investor) []string { return []string{i.Geo} }},
		{Name: "thesis_constraints", Cap: c.ThesisConstraints, Fields: func(i model.Investor) []string {
			return []string{i.Thesis, i.Constraints}
		}},
	}
}

// Scorer computes capped token overlap between a query and an investor.
type Scorer struct {
	buckets []Bucket
	max     int
}

// NewScorer builds a scorer over buckets. Negative caps count as zero.
func NewScorer(buckets []Bucket) *Scorer {
	s := &Scorer{buckets: buckets}
	for _, b := range buckets {
		if b.Cap > 0 {
			s.max += b.Cap
		}
	}
	return s
}

// DefaultScorer uses DefaultBuckets(DefaultCaps).
func DefaultScorer() *Scorer {
	return NewScorer(DefaultBuckets(DefaultCaps))
}

// MaxRaw is the sum of caps.
func (s *Scorer) MaxRaw() int {
	return s.max
}

// Score returns the raw capped overlap.
func (s *Scorer) Score(query string, inv model.Investor) float64 {
	return float64(s.score(TokenSet(query), inv))
}

func (s *Scorer) score(query map[string]struct{}, inv model.Investor) int {
	if len(query) == 0 {
		return 0
	}
	total := 0
	for _, b := range s.buckets {
		if b.Cap <= 0 {
			continue
		}
		hits := Overlap(query, TokenSet(b.Fields(inv)...))
		total += min(hits, b.Cap)
	}
	return total
}

// Percent returns round(100*raw/max) clamped to [0,100].
func (s *Scorer) Percent(query string, inv model.Investor) int {
	return s.percent(TokenSet(query), inv)
}

func (s *Scorer) percent(query map[string]struct{}, inv model.Investor) int {
	if s.max <= 0 {
		return 0
	}
	return ClampPct(math.Round(100 * float64(s.score(query, inv)) / float64(s.max)))
}

// PercentAll scores many investors against one query, tokenizing the query once.
func (s *Scorer) PercentAll(query string, invs []model.Investor) []int {
	q := TokenSet(query)
	out := make([]int, len(invs))
	for i, inv := range invs {
		out[i] = s.percent(q, inv)
	}
	return out
}

// ClampPct converts v to an int in [0,100]. Non-finite values become 0.
func ClampPct(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
