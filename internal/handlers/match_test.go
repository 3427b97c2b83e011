package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"dealmatch/internal/model"
	"dealmatch/internal/service"
	"dealmatch/internal/service/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewMatchHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMatchService := mocks.NewMockMatchService(ctrl)
	handler := NewMatchHandler(mockMatchService)

	if handler == nil {
		t.Fatal("NewMatchHandler() returned nil")
	}
	if handler.matchService != mockMatchService {
		t.Error("NewMatchHandler() matchService not set correctly")
	}
}

func TestMatchHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pitch := model.Pitch{Summary: "Payments API", Sector: "fintech", Stage: "seed"}

	tests := []struct {
		name          string
		method        string
		body          any
		mockSetup     func(*mocks.MockMatchService)
		wantStatus    int
		checkResponse func(*httptest.ResponseRecorder) bool
	}{
		{
			name:   "successful POST request",
			method: http.MethodPost,
			body: MatchRequest{
				PitchRequest: PitchRequest{Summary: "Payments API", Sector: "fintech", Stage: "seed"},
				TopN:         3,
			},
			mockSetup: func(m *mocks.MockMatchService) {
				m.EXPECT().
					Match(gomock.Any(), service.MatchRequest{Pitch: pitch, TopN: 3}).
					Return(&service.MatchResponse{
						PitchID: "p-1",
						Matches: []service.MatchResult{
							{Investor: model.Investor{Name: "Ledger Capital"}, ScorePct: 80, Explanation: "Ledger Capital: 80% match."},
						},
					}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(w *httptest.ResponseRecorder) bool {
				var resp service.MatchResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					return false
				}
				return resp.PitchID == "p-1" && len(resp.Matches) == 1 &&
					resp.Matches[0].Investor.Name == "Ledger Capital" && resp.Matches[0].ScorePct == 80
			},
		},
		{
			name:   "explain flag is forwarded",
			method: http.MethodPost,
			body:   map[string]any{"summary": "Payments API", "sector": "fintech", "stage": "seed", "explain": true},
			mockSetup: func(m *mocks.MockMatchService) {
				m.EXPECT().
					Match(gomock.Any(), service.MatchRequest{Pitch: pitch, Explain: true}).
					Return(&service.MatchResponse{Matches: []service.MatchResult{}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "method not allowed",
			method:     http.MethodGet,
			mockSetup:  func(m *mocks.MockMatchService) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "invalid JSON body",
			method:     http.MethodPost,
			body:       "invalid json",
			mockSetup:  func(m *mocks.MockMatchService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "validation error",
			method: http.MethodPost,
			body:   MatchRequest{},
			mockSetup: func(m *mocks.MockMatchService) {
				m.EXPECT().
					Match(gomock.Any(), gomock.Any()).
					Return(nil, &service.ValidationError{Field: "summary", Message: "cannot be empty"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "ErrExternalService",
			method: http.MethodPost,
			body:   MatchRequest{PitchRequest: PitchRequest{Summary: "x"}},
			mockSetup: func(m *mocks.MockMatchService) {
				m.EXPECT().
					Match(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("failed to explain: %w", service.ErrExternalService))
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:   "service error",
			method: http.MethodPost,
			body:   MatchRequest{PitchRequest: PitchRequest{Summary: "x"}},
			mockSetup: func(m *mocks.MockMatchService) {
				m.EXPECT().
					Match(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("service error"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMatchService := mocks.NewMockMatchService(ctrl)
			tt.mockSetup(mockMatchService)

			handler := NewMatchHandler(mockMatchService)

			req := httptest.NewRequest(tt.method, "/api/v1/match", bytes.NewBuffer(requestBody(t, tt.body)))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}

			if tt.checkResponse != nil && !tt.checkResponse(w) {
				t.Error("ServeHTTP() response validation failed")
			}
		})
	}
}

// requestBody marshals body, passing raw strings through unchanged.
func requestBody(t *testing.T, body any) []byte {
	t.Helper()
	switch b := body.(type) {
	case nil:
		return nil
	case string:
		return []byte(b)
	}
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	return data
}
