package handlers

import (
	"net/http"

	"dealmatch/internal/contextutil"
	"dealmatch/internal/model"
	"dealmatch/internal/service"
)

// MatchHandler handles HTTP requests for investor matching.
type MatchHandler struct {
	matchService service.MatchService
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(matchService service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// PitchRequest is the pitch part of a request body.
//
// swagger:model PitchRequest
type PitchRequest struct {
	Summary  string `json:"summary"`
	Sector   string `json:"sector,omitempty"`
	Stage    string `json:"stage,omitempty"`
	Geo      string `json:"geo,omitempty"`
	Traction string `json:"traction,omitempty"`
}

func (p PitchRequest) toModel() model.Pitch {
	return model.Pitch{
		Summary:  p.Summary,
		Sector:   p.Sector,
		Stage:    p.Stage,
		Geo:      p.Geo,
		Traction: p.Traction,
	}
}

// MatchRequest represents the HTTP request payload for matching.
//
// swagger:model MatchRequest
type MatchRequest struct {
	PitchRequest
	// Maximum number of matches, 1-100. Defaults to 5.
	TopN int `json:"top_n,omitempty"`
	// Ask the configured LLM for a one-line explanation per match.
	Explain bool `json:"explain,omitempty"`
}

// ServeHTTP handles HTTP requests for matching.
//
// swagger:route POST /api/v1/match matchInvestors
//
// # Rank investors for a pitch
//
// Recalls investors lexically and by vector similarity, blends the source
// scores and returns the top matches.
//
// responses:
//
//	'200':
//	  description: Ranked matches (possibly empty)
//	'400':
//	  description: Invalid pitch or top_n
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *MatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req MatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.matchService.Match(ctx, service.MatchRequest{
		Pitch:   req.toModel(),
		TopN:    req.TopN,
		Explain: req.Explain,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to match investors")
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}
