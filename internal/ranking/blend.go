// Package ranking blends per-source percentages and orders candidates deterministically.
package ranking

import (
	"math"

	"dealmatch/internal/lexical"
	"dealmatch/internal/model"
)

// Weights are the blend weights for the two recall sources.
type Weights struct {
	Lexical float64 `toml:"lexical"`
	Vector  float64 `toml:"vector"`
}

// DefaultWeights favor the vector source once both are present.
var DefaultWeights = Weights{Lexical: 0.4, Vector: 0.6}

// Blend merges per-source percentages with DefaultWeights.
func Blend(scores map[model.Source]int) int {
	return DefaultWeights.Blend(scores)
}

// Blend merges per-source percentages into one percentage in [0,100].
// No score yields 0. A single score passes through unchanged; weights are
// applied only when both sources are present.
func (w Weights) Blend(scores map[model.Source]int) int {
	lex, hasLex := scores[model.SourceLexical]
	vec, hasVec := scores[model.SourceVector]

	switch {
	case hasLex && hasVec:
		return lexical.ClampPct(math.Round(w.Lexical*float64(lex) + w.Vector*float64(vec)))
	case hasVec:
		return lexical.ClampPct(float64(vec))
	case hasLex:
		return lexical.ClampPct(float64(lex))
	default:
		return 0
	}
}
