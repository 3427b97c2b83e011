package qa

import (
	"strings"

	"dealmatch/internal/lexical"
)

// Mode selects the passage pool for an answer.
type Mode string

const (
	// ModeProfile answers from the investor record alone.
	ModeProfile Mode = "profile"
	// ModeFit answers from the investor record plus the seeker's text.
	ModeFit Mode = "fit"
)

var fitCues = []string{"my", "our", "ours", "we", "fit"}

// ResolveMode returns explicit when it names a mode, otherwise fit when the
// question has a first-person or fit cue, otherwise profile.
func ResolveMode(explicit, question string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(explicit))) {
	case ModeProfile:
		return ModeProfile
	case ModeFit:
		return ModeFit
	}

	tokens := lexical.TokenSet(question)
	for _, cue := range fitCues {
		if _, ok := tokens[cue]; ok {
			return ModeFit
		}
	}
	return ModeProfile
}

// Intent is the answer template a question resolves to.
type Intent string

const (
	IntentThesis      Intent = "thesis"
	IntentFit         Intent = "fit"
	IntentSector      Intent = "sector"
	IntentGeo         Intent = "geo"
	IntentCheck       Intent = "check"
	IntentConstraints Intent = "constraints"
	IntentDiligence   Intent = "diligence"
	IntentPortfolio   Intent = "portfolio"
	IntentGeneral     Intent = "general"
)

// intentRules are checked in order; the first rule with a matching keyword wins.
var intentRules = []struct {
	intent   Intent
	keywords []string
}{
	{IntentThesis, []string{"thesis", "align", "type of startup"}},
	{IntentFit, []string{"fit", "focus area", "good match"}},
	{IntentSector, []string{"sector", "technolog", "tech", "industr"}},
	{IntentGeo, []string{"region", "geograph", "global", "countr", "location"}},
	{IntentCheck, []string{"check", "size", "ticket", "how much"}},
	{IntentConstraints, []string{"constraint", "avoid", "exclude", "won't", "not invest"}},
	{IntentDiligence, []string{"diligence", "expect", "metric", "traction", "kpi"}},
	{IntentPortfolio, []string{"portfolio", "similar", "compan"}},
}

// ClassifyIntent maps a question to an intent by keyword, in fixed priority order.
func ClassifyIntent(question string) Intent {
	q := strings.ToLower(question)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}
