package ranking

import (
	"sort"

	"dealmatch/internal/model"
)

// Scored is a candidate with its blended percentage.
type Scored struct {
	model.Candidate
	Score int
}

// BlendAll blends every candidate independently with w.
func BlendAll(candidates []model.Candidate, w Weights) []Scored {
	out := make([]Scored, len(candidates))
	for i, c := range candidates {
		out[i] = Scored{Candidate: c, Score: w.Blend(c.Scores)}
	}
	return out
}

// Rank orders candidates by score descending, then distance ascending with
// missing distances last, then name. It truncates to topN and
// only then drops zero scores from the kept slice. A topN below 1 yields an empty result. The input is not modified.
func Rank(candidates []Scored, topN int) []Scored {
	if len(candidates) == 0 || topN <= 0 {
		return []Scored{}
	}

	sorted := make([]Scored, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	if len(sorted) > topN {
		sorted = sorted[:topN]
	}

	out := make([]Scored, 0, len(sorted))
	for _, s := range sorted {
		if s.Score > 0 {
			out = append(out, s)
		}
	}
	return out
}

func less(a, b Scored) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	switch {
	case a.Distance != nil && b.Distance != nil:
		if *a.Distance != *b.Distance {
			return *a.Distance < *b.Distance
		}
	case a.Distance != nil:
		return true
	case b.Distance != nil:
		return false
	}
	return a.Investor.Name < b.Investor.Name
}
