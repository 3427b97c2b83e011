package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_investor_store.go -package=mocks dealmatch/internal/service InvestorStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_qa_store.go -package=mocks dealmatch/internal/service QAStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_investor_service.go -package=mocks -mock_names=InvestorService=MockInvestorService dealmatch/internal/service InvestorService

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dealmatch/internal/contextutil"
	"dealmatch/internal/model"
	"dealmatch/internal/qa"
	"dealmatch/internal/storage"
)

// InvestorStore loads investor records.
type InvestorStore interface {
	// GetByName returns storage.ErrNotFound when no investor has that name.
	GetByName(ctx context.Context, name string) (*model.Investor, error)
}

// QAStore keeps answered questions.
type QAStore interface {
	Save(ctx context.Context, resp *storage.QAResponse) error
}

// QARequest is a question about one investor.
type QARequest struct {
	InvestorName string
	Question     string
	// Mode is "profile", "fit" or empty to infer it from the question.
	Mode string
	// Pitch supplies the secondary passages in fit mode.
	Pitch model.Pitch
}

// AnalyzeRequest asks how a pitch lines up with one investor.
type AnalyzeRequest struct {
	InvestorName string
	Pitch        model.Pitch
}

// InvestorService answers questions about individual investors.
type InvestorService interface {
	// Get returns one investor. Unknown names yield ErrNotFound.
	Get(ctx context.Context, name string) (*model.Investor, error)
	// Ask composes a cited answer about the investor.
	Ask(ctx context.Context, req QARequest) (*qa.Answer, error)
	// Analyze runs the rule-based fit review for a pitch.
	Analyze(ctx context.Context, req AnalyzeRequest) (*qa.Analysis, error)
}

// investorService implements InvestorService.
type investorService struct {
	store    InvestorStore
	composer *qa.Composer
	analyzer *qa.Analyzer
	answers  QAStore
}

// NewInvestorService creates a new InvestorService. answers may be nil.
func NewInvestorService(store InvestorStore, composer *qa.Composer, analyzer *qa.Analyzer, answers QAStore) InvestorService {
	return &investorService{store: store, composer: composer, analyzer: analyzer, answers: answers}
}

// Get loads an investor by name.
func (s *investorService) Get(ctx context.Context, name string) (*model.Investor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "investor", Message: "cannot be empty"}
	}

	inv, err := s.store.GetByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("investor %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, WrapError(err, "failed to load investor")
	}
	return inv, nil
}

// Ask answers a question about one investor and stores the answer when a QA store is set.
func (s *investorService) Ask(ctx context.Context, req QARequest) (*qa.Answer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Question) == "" {
		logger.WarnContext(ctx, "empty question in qa request")
		return nil, &ValidationError{Field: "question", Message: "cannot be empty"}
	}
	switch qa.Mode(strings.ToLower(strings.TrimSpace(req.Mode))) {
	case "", qa.ModeProfile, qa.ModeFit:
	default:
		return nil, &ValidationError{Field: "mode", Message: "must be profile or fit"}
	}

	inv, err := s.Get(ctx, req.InvestorName)
	if err != nil {
		return nil, err
	}

	answer := s.composer.Ask(ctx, qa.Request{
		Investor:   *inv,
		Question:   req.Question,
		Mode:       req.Mode,
		SeekerText: req.Pitch.QueryText(),
	})

	if s.answers != nil {
		record := &storage.QAResponse{
			InvestorName: inv.Name,
			Question:     req.Question,
			Mode:         string(answer.Mode),
			Intent:       string(answer.Intent),
			Answer:       answer.Text,
			Citations:    answer.Citations,
		}
		if err := s.answers.Save(ctx, record); err != nil {
			logger.ErrorContext(ctx, "failed to store qa response", "investor", inv.Name, "error", err)
		}
	}

	logger.InfoContext(ctx, "qa request processed successfully",
		"investor", inv.Name, "mode", answer.Mode, "intent", answer.Intent, "citations", len(answer.Citations))
	return &answer, nil
}

// Analyze reviews a pitch against one investor.
func (s *investorService) Analyze(ctx context.Context, req AnalyzeRequest) (*qa.Analysis, error) {
	if strings.TrimSpace(req.Pitch.QueryText()) == "" {
		return nil, &ValidationError{Field: "pitch", Message: "cannot be empty"}
	}

	inv, err := s.Get(ctx, req.InvestorName)
	if err != nil {
		return nil, err
	}

	analysis := s.analyzer.Analyze(ctx, *inv, req.Pitch)
	return &analysis, nil
}
