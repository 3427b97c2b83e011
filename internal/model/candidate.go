package model

// Source names a recall source.
type Source string

const (
	SourceLexical Source = "lexical"
	SourceVector  Source = "vector"
)

// Candidate is one recalled investor with the per-source percentages that found it.
// A source missing from Scores did not score the candidate.
type Candidate struct {
	Investor Investor
	Scores   map[Source]int
	Distance *float64
}

// Score returns the percentage from source s and whether it was present.
func (c Candidate) Score(s Source) (int, bool) {
	v, ok := c.Scores[s]
	return v, ok
}

// Merge folds other into c. Existing scores and distance win.
func (c *Candidate) Merge(other Candidate) {
	if c.Scores == nil {
		c.Scores = make(map[Source]int, len(other.Scores))
	}
	for s, v := range other.Scores {
		if _, ok := c.Scores[s]; !ok {
			c.Scores[s] = v
		}
	}
	if c.Distance == nil && other.Distance != nil {
		d := *other.Distance
		c.Distance = &d
	}
}
