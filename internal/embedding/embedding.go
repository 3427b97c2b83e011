// Package embedding defines the embedding provider contract and vector helpers.
package embedding

import (
	"context"
	"math"
)

// Embedder turns text into unit-length vectors of a fixed dimension.
// Implementations must be safe for concurrent use.
type Embedder interface {
	// EmbedText embeds a single text.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts embeds texts in one call. The result is in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Dot returns the dot product of a and b over their common length.
func Dot(a, b []float32) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Normalize scales v to unit length in place and returns it.
// A zero vector is returned unchanged.
func Normalize(v []float32) []float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	if sumSquares == 0 {
		return v
	}
	inv := 1 / math.Sqrt(sumSquares)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
	return v
}

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
