package qa

import (
	"context"
	"fmt"
	"math"
	"strings"

	"dealmatch/internal/contextutil"
	"dealmatch/internal/lexical"
	"dealmatch/internal/model"
	"dealmatch/internal/retrieval"
	"dealmatch/internal/similarity"
)

const analysisSnippets = 4

// AgentNote is one rule-based reviewer's output.
type AgentNote struct {
	Agent   string   `json:"agent"`
	Summary string   `json:"summary"`
	Bullets []string `json:"bullets"`
}

// Analysis explains how a pitch lines up with an investor.
type Analysis struct {
	Investor  string                    `json:"investor"`
	Snippets  []retrieval.RankedPassage `json:"context_snippets"`
	Agents    []AgentNote               `json:"agents"`
	ScoreHint int                       `json:"score_hint"`
	Method    retrieval.Method          `json:"method"`
}

// Analyzer grounds a few explainable rule checks in retrieved record passages.
type Analyzer struct {
	retriever *retrieval.Retriever
	reranker  *similarity.Reranker
	chunkSize int
}

// NewAnalyzer creates an Analyzer. A nil reranker scores from alignment checks only.
func NewAnalyzer(retriever *retrieval.Retriever, reranker *similarity.Reranker) *Analyzer {
	return &Analyzer{retriever: retriever, reranker: reranker, chunkSize: retrieval.DefaultChunkSize}
}

// Analyze reviews pitch against inv.
func (a *Analyzer) Analyze(ctx context.Context, inv model.Investor, pitch model.Pitch) Analysis {
	logger := contextutil.LoggerFromContext(ctx)

	summary := pitch.QueryText()
	query := "Why is this investor a fit for startup with: " + summary
	res := a.retriever.RankDetailed(ctx, RecordPassages(inv, a.chunkSize), query, analysisSnippets)

	alignment, aligned := alignmentAgent(inv, pitch)
	hint := int(math.Round(100 * float64(aligned) / 3))
	if a.reranker != nil && len(res.Passages) > 0 && summary != "" {
		queries := make([]string, len(res.Passages))
		docs := make([]string, len(res.Passages))
		for i, p := range res.Passages {
			queries[i] = summary
			docs[i] = p.Text
		}
		sims, err := a.reranker.SimilarityBatch(ctx, queries, docs)
		if err != nil {
			logger.WarnContext(ctx, "similarity score hint unavailable, using alignment checks", "error", err)
		} else {
			hint = lexical.ClampPct(math.Round(100 * similarity.Mean(sims)))
		}
	}

	return Analysis{
		Investor:  inv.Name,
		Snippets:  res.Passages,
		Agents:    []AgentNote{strategyAgent(inv), riskAgent(inv), alignment, fitAgent(hint)},
		ScoreHint: hint,
		Method:    res.Method,
	}
}

func investorTokens(inv model.Investor) map[string]struct{} {
	return lexical.TokenSet(inv.Name, inv.Sectors, inv.Stages, inv.Geo, inv.Thesis, inv.Constraints, inv.Profile)
}

func hasAny(tokens map[string]struct{}, words ...string) bool {
	for _, w := range words {
		if _, ok := tokens[w]; ok {
			return true
		}
	}
	return false
}

func investorText(inv model.Investor) string {
	return strings.ToLower(strings.Join([]string{inv.Sectors, inv.Stages, inv.Geo, inv.Thesis, inv.Constraints, inv.Profile}, " | "))
}

func strategyAgent(inv model.Investor) AgentNote {
	tokens := investorTokens(inv)
	var bullets []string
	if hasAny(tokens, "ai", "robotics", "ml") {
		bullets = append(bullets, "Focus on AI/Robotics aligns with your product direction.")
	}
	if hasAny(tokens, "fintech", "saas", "devtools") {
		bullets = append(bullets, "FinTech/SaaS/DevTools focus overlaps with your category.")
	}
	if strings.Contains(investorText(inv), "network effects") {
		bullets = append(bullets, "Preference for network effects: highlight flywheel metrics.")
	}
	if len(bullets) == 0 {
		bullets = append(bullets, "Overall sector and thesis appear compatible.")
	}
	return AgentNote{Agent: "StrategyAgent", Summary: "Sector and thesis alignment", Bullets: bullets}
}

func riskAgent(inv model.Investor) AgentNote {
	text := investorText(inv)
	var bullets []string
	if strings.Contains(text, "no crypto") {
		bullets = append(bullets, "Constraint: avoids crypto, so keep crypto out of the narrative.")
	}
	if strings.Contains(text, "hardware") {
		bullets = append(bullets, "Constraint on heavy hardware: emphasize software margins.")
	}
	if strings.Contains(text, "north america only") {
		bullets = append(bullets, "Geo focus is North America: clarify your GTM regions.")
	}
	if len(bullets) == 0 {
		bullets = append(bullets, "No major red flags detected from stated constraints.")
	}
	return AgentNote{Agent: "RiskAgent", Summary: "Constraints and risk checks", Bullets: bullets}
}

// alignmentAgent checks sector, stage and geography overlap. An investor
// field that is empty counts as aligned.
func alignmentAgent(inv model.Investor, pitch model.Pitch) (AgentNote, int) {
	checks := []struct {
		label    string
		investor string
		pitch    string
	}{
		{"sector", inv.Sectors, pitch.Sector},
		{"stage", inv.Stages, pitch.Stage},
		{"geography", inv.Geo, pitch.Geo},
	}

	var bullets []string
	aligned := 0
	for _, c := range checks {
		seeker := c.pitch
		if strings.TrimSpace(seeker) == "" {
			seeker = pitch.Summary
		}
		if strings.TrimSpace(c.investor) == "" {
			aligned++
			bullets = append(bullets, fmt.Sprintf("No %s preference stated.", c.label))
			continue
		}
		if shared := sharedTerms(seeker, c.investor); len(shared) > 0 {
			aligned++
			bullets = append(bullets, fmt.Sprintf("%s match on %s.", capitalize(c.label), strings.Join(shared, ", ")))
		} else {
			bullets = append(bullets, fmt.Sprintf("%s alignment is unclear (investor: %s).", capitalize(c.label), clause(c.investor)))
		}
	}
	return AgentNote{Agent: "AlignmentAgent", Summary: "Sector, stage and geography overlap", Bullets: bullets}, aligned
}

func fitAgent(hint int) AgentNote {
	return AgentNote{
		Agent:   "FitExplainer",
		Summary: "How to pitch this investor",
		Bullets: []string{
			fmt.Sprintf("Current match score suggests a positive interest vector (about %d%%).", hint),
			"Map traction to their check size and preferred stages.",
			"Tie your KPIs to their thesis keywords (use the retrieved snippets).",
		},
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
