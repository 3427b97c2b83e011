// Package retrieval ranks cited text passages against a query, falling back
// to keyword overlap when embeddings are unavailable.
package retrieval

// Citation sources.
const (
	SourceRecord    = "record"
	SourceSecondary = "secondary"
)

// Citation records where a passage came from.
type Citation struct {
	Source string `json:"source"`
	Title  string `json:"title"`
	Field  string `json:"field"`
}

// Passage is a bounded chunk of field text with its citation.
type Passage struct {
	Text     string   `json:"text"`
	Citation Citation `json:"citation"`
}

// RankedPassage is a passage with its retrieval score.
type RankedPassage struct {
	Passage
	Score float64 `json:"score"`
}

// Method names the scoring path that produced a Result.
type Method string

const (
	MethodSimilarity Method = "similarity"
	MethodKeyword    Method = "keyword"
)

// Result is the outcome of RankDetailed.
// Err holds the embedding failure that forced the keyword path, if any.
type Result struct {
	Passages []RankedPassage
	Method   Method
	Err      error
}
