package model

import (
	"strings"
	"time"
)

// Pitch is a seeker record: a startup looking for investors.
type Pitch struct {
	ID       string `json:"id,omitempty"`
	Summary  string `json:"summary"`
	Sector   string `json:"sector,omitempty"`
	Stage    string `json:"stage,omitempty"`
	Geo      string `json:"geo,omitempty"`
	Traction string `json:"traction,omitempty"`
}

// QueryText joins the non-empty pitch fields into one query string, summary first.
func (p Pitch) QueryText() string {
	var parts []string
	for _, f := range []string{p.Summary, p.Sector, p.Stage, p.Geo, p.Traction} {
		if s := strings.TrimSpace(f); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}

// Match is a persisted ranking result for one pitch and one investor.
type Match struct {
	PitchID      string    `json:"pitch_id"`
	InvestorName string    `json:"investor_name"`
	ScorePct     int       `json:"score_pct"`
	Distance     *float64  `json:"distance,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
