package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"dealmatch/internal/contextutil"
	"dealmatch/internal/service"
)

// InvestorHandler serves the per-investor endpoints.
type InvestorHandler struct {
	investorService service.InvestorService
}

// NewInvestorHandler creates a new InvestorHandler.
func NewInvestorHandler(investorService service.InvestorService) *InvestorHandler {
	return &InvestorHandler{investorService: investorService}
}

// QARequest represents the HTTP request payload for investor QA.
//
// swagger:model QARequest
type QARequest struct {
	InvestorName string `json:"investor_name"`
	Question     string `json:"question"`
	// "profile", "fit" or empty to infer from the question.
	Mode  string        `json:"mode,omitempty"`
	Pitch *PitchRequest `json:"pitch,omitempty"`
}

// AnalyzeRequest represents the HTTP request payload for pitch analysis.
//
// swagger:model AnalyzeRequest
type AnalyzeRequest struct {
	InvestorName string       `json:"investor_name"`
	Pitch        PitchRequest `json:"pitch"`
}

// Get returns one investor record.
//
// swagger:route GET /api/v1/investors/{name} getInvestor
func (h *InvestorHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	inv, err := h.investorService.Get(ctx, name)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load investor")
		return
	}
	writeJSON(ctx, w, http.StatusOK, inv)
}

// Ask answers a question about one investor with cited passages.
//
// swagger:route POST /api/v1/investors/qa askInvestor
//
// responses:
//
//	'200':
//	  description: Answer with citations
//	'400':
//	  description: Empty question or unknown mode
//	'404':
//	  description: Unknown investor
func (h *InvestorHandler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req QARequest
	if !decodeJSON(w, r, &req) {
		return
	}

	svcReq := service.QARequest{
		InvestorName: req.InvestorName,
		Question:     req.Question,
		Mode:         req.Mode,
	}
	if req.Pitch != nil {
		svcReq.Pitch = req.Pitch.toModel()
	}

	answer, err := h.investorService.Ask(ctx, svcReq)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to answer question")
		return
	}

	logger.DebugContext(ctx, "qa answered", "investor", req.InvestorName, "method", answer.Method)
	writeJSON(ctx, w, http.StatusOK, answer)
}

// Analyze runs the rule-based fit review of a pitch against one investor.
//
// swagger:route POST /api/v1/investors/analyze analyzePitch
func (h *InvestorHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	analysis, err := h.investorService.Analyze(ctx, service.AnalyzeRequest{
		InvestorName: req.InvestorName,
		Pitch:        req.Pitch.toModel(),
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to analyze pitch")
		return
	}
	writeJSON(ctx, w, http.StatusOK, analysis)
}
