package storage

import (
	"database/sql"
	"time"

	"dealmatch/internal/retrieval"
)

// QAResponse is a stored answer to an investor question.
type QAResponse struct {
	ID           string // UUID, assigned on save when empty
	InvestorName string
	Question     string
	Mode         string
	Intent       string
	Answer       string
	Citations    []retrieval.Citation // Stored as a JSON array
	CreatedAt    time.Time
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
