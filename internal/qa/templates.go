package qa

import (
	"fmt"
	"sort"
	"strings"

	"dealmatch/internal/lexical"
	"dealmatch/internal/model"
	"dealmatch/internal/retrieval"
)

const missing = "—"

// fieldText returns the best-ranked selected record passage for field,
// else the raw field value, else a dash.
func fieldText(field, raw string, selected []retrieval.RankedPassage) string {
	for _, p := range selected {
		if p.Citation.Source == retrieval.SourceRecord && p.Citation.Field == field {
			return clause(p.Text)
		}
	}
	if s := clause(raw); s != "" {
		return s
	}
	return missing
}

// clause trims whitespace and trailing periods so values sit inside sentences.
func clause(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ". ")
}

func compose(intent Intent, mode Mode, inv model.Investor, seeker string, selected []retrieval.RankedPassage) string {
	name := inv.Name
	if name == "" {
		name = "This investor"
	}
	f := func(field, raw string) string { return fieldText(field, raw, selected) }

	sectors := f(FieldSectors, inv.Sectors)
	stages := f(FieldStages, inv.Stages)
	geo := f(FieldGeo, inv.Geo)

	switch intent {
	case IntentThesis:
		return fmt.Sprintf("%s typically backs startups aligned with its thesis: %s.\nPreferred sectors: %s. Stages: %s. Geography: %s.",
			name, f(FieldThesis, inv.Thesis), sectors, stages, geo)

	case IntentFit:
		var b strings.Builder
		fmt.Fprintf(&b, "Your fit is assessed across sector, stage and geography. This investor mentions sectors [%s], stages [%s], and regions [%s].",
			sectors, stages, geo)
		if mode == ModeFit {
			if shared := sharedTerms(seeker, inv.Sectors, inv.Stages, inv.Geo); len(shared) > 0 {
				fmt.Fprintf(&b, " Your pitch overlaps on: %s.", strings.Join(shared, ", "))
			} else if strings.TrimSpace(seeker) != "" {
				b.WriteString(" Your pitch does not clearly overlap these yet.")
			}
		}
		b.WriteString(" Emphasize the overlaps from your pitch (traction, ICP, and market proof).")
		return b.String()

	case IntentSector:
		return fmt.Sprintf("Preferred sectors/technologies: %s. Thesis highlights: %s.", sectors, f(FieldThesis, inv.Thesis))

	case IntentGeo:
		return fmt.Sprintf("Regional focus: %s. They are generally open if the team and traction match the thesis.", geo)

	case IntentCheck:
		return fmt.Sprintf("Typical check size: %s. Stage focus: %s.", f(FieldCheck, FormatMoney(inv.Check)), stages)

	case IntentConstraints:
		return fmt.Sprintf("Stated constraints: %s. Keep your pitch clear of anything they exclude.", f(FieldConstraints, inv.Constraints))

	case IntentDiligence:
		return fmt.Sprintf("Expect diligence against the thesis: %s. Bring traction metrics that fit %s companies in %s.",
			f(FieldThesis, inv.Thesis), stages, sectors)

	case IntentPortfolio:
		profile := f(FieldProfile, inv.Profile)
		if profile == missing {
			profile = f(FieldThesis, inv.Thesis)
		}
		return fmt.Sprintf("%s looks for companies like these: %s. Comparable focus areas: %s.", name, profile, sectors)
	}

	var b strings.Builder
	b.WriteString("Here are the core details:\n")
	fmt.Fprintf(&b, "- Sectors: %s\n- Stages: %s\n- Geography: %s\n", sectors, stages, geo)
	fmt.Fprintf(&b, "- Check size: %s\n- Thesis: %s\n- Constraints: %s\n\n",
		f(FieldCheck, FormatMoney(inv.Check)), f(FieldThesis, inv.Thesis), f(FieldConstraints, inv.Constraints))
	b.WriteString("If you share more specifics from your pitch, I can tailor the answer further.")
	return b.String()
}

// sharedTerms lists, sorted, the tokens of seeker that appear in any field.
func sharedTerms(seeker string, fields ...string) []string {
	s := lexical.TokenSet(seeker)
	f := lexical.TokenSet(fields...)
	var out []string
	for token := range s {
		if _, ok := f[token]; ok {
			out = append(out, token)
		}
	}
	sort.Strings(out)
	return out
}
