package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks dealmatch/internal/service Generator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_match_sink.go -package=mocks dealmatch/internal/service MatchSink
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_match_service.go -package=mocks -mock_names=MatchService=MockMatchService dealmatch/internal/service MatchService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"dealmatch/internal/contextutil"
	"dealmatch/internal/model"
	"dealmatch/internal/ranking"
	"dealmatch/internal/recall"
)

const (
	// DefaultCandidateK is how many candidates each recall source returns.
	DefaultCandidateK = 20
	// DefaultTopN is how many matches are returned when the request leaves it unset.
	DefaultTopN = 5
	// MaxTopN bounds the requested result size.
	MaxTopN = 100
)

// Generator produces free text from a prompt.
// This interface is defined from the service layer's perspective (consumer-first).
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// MatchSink receives every ranked result set. Sinks run after ranking and
// their failures never fail the request.
type MatchSink interface {
	RecordMatches(ctx context.Context, pitch *model.Pitch, matches []model.Match) error
}

// Recaller gathers candidates for a query from every configured source.
type Recaller interface {
	Recall(ctx context.Context, query string, k int) ([]model.Candidate, error)
}

// MatchRequest represents a match request in the domain layer.
type MatchRequest struct {
	Pitch model.Pitch
	// TopN is the maximum number of matches. Zero means DefaultTopN.
	TopN int
	// Explain asks the Generator for a short explanation per match.
	Explain bool
}

// MatchResult is one ranked investor.
type MatchResult struct {
	Investor    model.Investor `json:"investor"`
	ScorePct    int            `json:"score_pct"`
	LexicalPct  *int           `json:"lexical_pct,omitempty"`
	VectorPct   *int           `json:"vector_pct,omitempty"`
	Distance    *float64       `json:"distance,omitempty"`
	Explanation string         `json:"explanation"`
}

// MatchResponse represents a match response in the domain layer.
type MatchResponse struct {
	PitchID string        `json:"pitch_id"`
	Matches []MatchResult `json:"matches"`
}

// MatchService ranks investors for a pitch.
type MatchService interface {
	// Match recalls, blends and ranks investors for req.Pitch.
	Match(ctx context.Context, req MatchRequest) (*MatchResponse, error)
}

// MatchConfig tunes a MatchService.
type MatchConfig struct {
	CandidateK int
	TopN       int
	Weights    ranking.Weights
}

// matchService implements MatchService.
type matchService struct {
	recaller  Recaller
	generator Generator
	sinks     []MatchSink
	cfg       MatchConfig
	now       func() time.Time
}

// NewMatchService creates a new MatchService. generator may be nil, in which
// case explanations are templated. Nil sinks are ignored.
func NewMatchService(recaller Recaller, generator Generator, cfg MatchConfig, sinks ...MatchSink) MatchService {
	if cfg.CandidateK <= 0 {
		cfg.CandidateK = DefaultCandidateK
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	if cfg.Weights == (ranking.Weights{}) {
		cfg.Weights = ranking.DefaultWeights
	}

	s := &matchService{recaller: recaller, generator: generator, cfg: cfg, now: time.Now}
	for _, sink := range sinks {
		if sink != nil {
			s.sinks = append(s.sinks, sink)
		}
	}
	return s
}

// Match processes a match request.
func (s *matchService) Match(ctx context.Context, req MatchRequest) (*MatchResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	// Business validation
	if strings.TrimSpace(req.Pitch.Summary) == "" {
		logger.WarnContext(ctx, "empty summary in match request")
		return nil, &ValidationError{Field: "summary", Message: "cannot be empty"}
	}
	if req.TopN < 0 || req.TopN > MaxTopN {
		return nil, &ValidationError{Field: "top_n", Message: fmt.Sprintf("must be between 0 and %d", MaxTopN)}
	}
	topN := req.TopN
	if topN == 0 {
		topN = s.cfg.TopN
	}

	pitch := req.Pitch
	if pitch.ID == "" {
		pitch.ID = uuid.New().String()
	}

	candidates, err := s.recaller.Recall(ctx, pitch.QueryText(), s.cfg.CandidateK)
	if err != nil {
		if !errors.Is(err, recall.ErrAllSourcesFailed) {
			return nil, ExternalError("failed to recall candidates", err)
		}
		logger.WarnContext(ctx, "no recall source available, returning empty result", "pitch_id", pitch.ID)
	}

	ranked := ranking.Rank(ranking.BlendAll(candidates, s.cfg.Weights), topN)

	resp := &MatchResponse{PitchID: pitch.ID, Matches: make([]MatchResult, len(ranked))}
	matches := make([]model.Match, len(ranked))
	createdAt := s.now().UTC()
	for i, sc := range ranked {
		result := MatchResult{
			Investor: sc.Investor,
			ScorePct: sc.Score,
			Distance: sc.Distance,
		}
		if v, ok := sc.Candidate.Score(model.SourceLexical); ok {
			result.LexicalPct = &v
		}
		if v, ok := sc.Candidate.Score(model.SourceVector); ok {
			result.VectorPct = &v
		}
		result.Explanation = s.explain(ctx, pitch, result, req.Explain)
		resp.Matches[i] = result

		matches[i] = model.Match{
			PitchID:      pitch.ID,
			InvestorName: sc.Investor.Name,
			ScorePct:     sc.Score,
			Distance:     sc.Distance,
			CreatedAt:    createdAt,
		}
	}

	for _, sink := range s.sinks {
		if err := sink.RecordMatches(ctx, &pitch, matches); err != nil {
			logger.ErrorContext(ctx, "failed to record matches", "pitch_id", pitch.ID, "error", err)
		}
	}

	logger.InfoContext(ctx, "match request processed successfully",
		"pitch_id", pitch.ID, "candidates", len(candidates), "matches", len(ranked))
	return resp, nil
}

// explain asks the generator when requested and available, else templates.
func (s *matchService) explain(ctx context.Context, pitch model.Pitch, r MatchResult, useGenerator bool) string {
	fallback := TemplateExplanation(r)
	if !useGenerator || s.generator == nil {
		return fallback
	}

	text, err := s.generator.Generate(ctx, explainPrompt(pitch, r))
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "explanation generation failed, using template",
			"investor", r.Investor.Name, "error", err)
		return fallback
	}
	return text
}

// TemplateExplanation renders "{name}: {pct}% match (lexical {l}%, vector {v}%)."
// leaving out sources that did not score the investor.
func TemplateExplanation(r MatchResult) string {
	var parts []string
	if r.LexicalPct != nil {
		parts = append(parts, fmt.Sprintf("lexical %d%%", *r.LexicalPct))
	}
	if r.VectorPct != nil {
		parts = append(parts, fmt.Sprintf("vector %d%%", *r.VectorPct))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s: %d%% match.", r.Investor.Name, r.ScorePct)
	}
	return fmt.Sprintf("%s: %d%% match (%s).", r.Investor.Name, r.ScorePct, strings.Join(parts, ", "))
}

func explainPrompt(pitch model.Pitch, r MatchResult) string {
	var b strings.Builder
	b.WriteString("In two sentences, explain why this investor fits this startup. Do not invent facts or numbers.\n\n")
	fmt.Fprintf(&b, "Startup: %s\n", pitch.QueryText())
	fmt.Fprintf(&b, "Investor: %s\n", r.Investor.ProfileText())
	fmt.Fprintf(&b, "Match score: %d%%\n", r.ScorePct)
	return b.String()
}
