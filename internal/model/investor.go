// Package model holds the record types shared by the ranking core and the service layer.
package model

import "strings"

// MoneyRange is a check-size range. Nil bounds are unknown.
type MoneyRange struct {
	Min      *float64 `json:"check_min,omitempty"`
	Max      *float64 `json:"check_max,omitempty"`
	Currency string   `json:"check_currency,omitempty"`
}

// Empty reports whether neither bound is set.
func (m MoneyRange) Empty() bool {
	return m.Min == nil && m.Max == nil
}

// Investor is a candidate record. Name is its identity.
type Investor struct {
	Name        string     `json:"name"`
	Firm        string     `json:"firm,omitempty"`
	Sectors     string     `json:"sectors,omitempty"`
	Stages      string     `json:"stages,omitempty"`
	Geo         string     `json:"geo,omitempty"`
	Check       MoneyRange `json:"-"`
	Thesis      string     `json:"thesis,omitempty"`
	Constraints string     `json:"constraints,omitempty"`
	Profile     string     `json:"profile,omitempty"`
}

// ProfileText is the text embedded for the investor in the vector index.
func (i Investor) ProfileText() string {
	parts := []string{i.Name}
	for _, f := range []string{i.Sectors, i.Stages, i.Geo, i.Thesis, i.Constraints, i.Profile} {
		if s := strings.TrimSpace(f); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}

// Float returns a pointer to v, for building money ranges.
func Float(v float64) *float64 {
	return &v
}
