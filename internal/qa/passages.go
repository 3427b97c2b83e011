package qa

import (
	"strconv"
	"strings"

	"dealmatch/internal/model"
	"dealmatch/internal/retrieval"
)

// Field names used in citations.
const (
	FieldSectors     = "Sectors"
	FieldStages      = "Stages"
	FieldGeo         = "Geography"
	FieldCheck       = "Check size"
	FieldThesis      = "Thesis"
	FieldConstraints = "Constraints"
	FieldProfile     = "Profile"
	FieldSummary     = "Summary"
)

const defaultCurrency = "USD"

// FormatMoney renders a range as "min - max CUR". Missing bounds are left out
// and an empty range renders as "".
func FormatMoney(m model.MoneyRange) string {
	if m.Empty() {
		return ""
	}
	bound := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	rng := strings.Trim(bound(m.Min)+" - "+bound(m.Max), " -")
	cur := strings.TrimSpace(m.Currency)
	if cur == "" {
		cur = defaultCurrency
	}
	return strings.TrimSpace(rng + " " + cur)
}

type recordField struct {
	name string
	text string
}

func recordFields(inv model.Investor) []recordField {
	return []recordField{
		{FieldSectors, inv.Sectors},
		{FieldStages, inv.Stages},
		{FieldGeo, inv.Geo},
		{FieldCheck, FormatMoney(inv.Check)},
		{FieldThesis, inv.Thesis},
		{FieldConstraints, inv.Constraints},
		{FieldProfile, inv.Profile},
	}
}

// RecordPassages chunks every non-empty investor field into cited passages.
func RecordPassages(inv model.Investor, chunkSize int) []retrieval.Passage {
	var out []retrieval.Passage
	for _, f := range recordFields(inv) {
		for _, chunk := range retrieval.SplitParagraphs(f.text, chunkSize) {
			out = append(out, retrieval.Passage{
				Text: chunk,
				Citation: retrieval.Citation{
					Source: retrieval.SourceRecord,
					Title:  inv.Name,
					Field:  f.name,
				},
			})
		}
	}
	return out
}

// SeekerPassages chunks the seeker's free text, cited as secondary.
func SeekerPassages(text string, chunkSize int) []retrieval.Passage {
	var out []retrieval.Passage
	for _, chunk := range retrieval.SplitParagraphs(text, chunkSize) {
		out = append(out, retrieval.Passage{
			Text: chunk,
			Citation: retrieval.Citation{
				Source: retrieval.SourceSecondary,
				Title:  "Pitch",
				Field:  FieldSummary,
			},
		})
	}
	return out
}

func passageKey(p retrieval.Passage) string {
	return p.Citation.Source + "\x00" + p.Citation.Field + "\x00" + p.Text
}
