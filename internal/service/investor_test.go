package service_test

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"dealmatch/internal/embedding/mock"
	"dealmatch/internal/model"
	"dealmatch/internal/qa"
	"dealmatch/internal/retrieval"
	"dealmatch/internal/service"
	"dealmatch/internal/service/mocks"
	"dealmatch/internal/similarity"
	"dealmatch/internal/storage"
)

func ledgerCapital() *model.Investor {
	return &model.Investor{
		Name:    "Ledger Capital",
		Sectors: "fintech, payments",
		Stages:  "seed",
		Geo:     "US",
		Check:   model.MoneyRange{Min: model.Float(100000), Max: model.Float(500000), Currency: "USD"},
		Thesis:  "back early fintech infra",
	}
}

func newInvestorService(store service.InvestorStore, answers service.QAStore) service.InvestorService {
	emb := mock.NewEmbedder()
	retriever := retrieval.NewRetriever(emb)
	return service.NewInvestorService(store,
		qa.NewComposer(retriever),
		qa.NewAnalyzer(retriever, similarity.New(emb)),
		answers)
}

func TestInvestorService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockInvestorStore(ctrl)
	svc := newInvestorService(store, nil)

	tests := []struct {
		name      string
		input     string
		mockSetup func()
		wantErr   error
		wantName  string
	}{
		{
			name:  "found",
			input: "ledger capital",
			mockSetup: func() {
				store.EXPECT().GetByName(gomock.Any(), "ledger capital").Return(ledgerCapital(), nil)
			},
			wantName: "Ledger Capital",
		},
		{
			name:  "not found",
			input: "nobody",
			mockSetup: func() {
				store.EXPECT().GetByName(gomock.Any(), "nobody").Return(nil, storage.ErrNotFound)
			},
			wantErr: service.ErrNotFound,
		},
		{
			name:      "blank name",
			input:     " ",
			mockSetup: func() {},
			wantErr:   service.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			got, err := svc.Get(testContext(), tt.input)

			switch {
			case tt.wantErr == service.ErrInvalidInput:
				var validationErr *service.ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("Get() error = %v, want ValidationError", err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Get() error = %v, want %v", err, tt.wantErr)
				}
			default:
				if err != nil {
					t.Fatalf("Get() unexpected error: %v", err)
				}
				if got.Name != tt.wantName {
					t.Errorf("Get() name = %q, want %q", got.Name, tt.wantName)
				}
			}
		})
	}
}

func TestInvestorService_Get_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockInvestorStore(ctrl)
	store.EXPECT().GetByName(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk I/O error"))

	_, err := newInvestorService(store, nil).Get(testContext(), "x")
	if err == nil || errors.Is(err, service.ErrNotFound) {
		t.Fatalf("Get() error = %v, want wrapped store error", err)
	}
	if !strings.Contains(err.Error(), "disk I/O error") {
		t.Errorf("Get() error = %v, should wrap the cause", err)
	}
}

func TestInvestorService_Ask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockInvestorStore(ctrl)
	store.EXPECT().GetByName(gomock.Any(), "Ledger Capital").Return(ledgerCapital(), nil)

	answers := mocks.NewMockQAStore(ctrl)
	var saved *storage.QAResponse
	answers.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, resp *storage.QAResponse) error {
			saved = resp
			return nil
		})

	ans, err := newInvestorService(store, answers).Ask(testContext(), service.QARequest{
		InvestorName: "Ledger Capital",
		Question:     "What check size do you write?",
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if ans.Intent != qa.IntentCheck {
		t.Errorf("Ask() intent = %q, want check", ans.Intent)
	}
	if !strings.Contains(ans.Text, "100000 - 500000 USD") {
		t.Errorf("Ask() text = %q", ans.Text)
	}
	if len(ans.Citations) != qa.DefaultTarget {
		t.Errorf("Ask() returned %d citations, want %d", len(ans.Citations), qa.DefaultTarget)
	}

	if saved == nil {
		t.Fatal("Ask() did not store the answer")
	}
	if saved.Intent != "check" || saved.Mode != "profile" || saved.Answer != ans.Text {
		t.Errorf("stored answer = %+v", saved)
	}
}

func TestInvestorService_Ask_StoreFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockInvestorStore(ctrl)
	store.EXPECT().GetByName(gomock.Any(), gomock.Any()).Return(ledgerCapital(), nil)
	answers := mocks.NewMockQAStore(ctrl)
	answers.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("readonly database"))

	ans, err := newInvestorService(store, answers).Ask(testContext(), service.QARequest{
		InvestorName: "Ledger Capital",
		Question:     "How does my startup fit your thesis?",
		Pitch:        model.Pitch{Summary: "Seed fintech payments API for US merchants"},
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if ans.Mode != qa.ModeFit {
		t.Errorf("Ask() mode = %q, want fit", ans.Mode)
	}
}

func TestInvestorService_Ask_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockInvestorStore(ctrl)
	svc := newInvestorService(store, nil)

	tests := []struct {
		name  string
		req   service.QARequest
		field string
	}{
		{name: "empty question", req: service.QARequest{InvestorName: "x"}, field: "question"},
		{name: "unknown mode", req: service.QARequest{InvestorName: "x", Question: "q", Mode: "deep"}, field: "mode"},
		{name: "empty investor", req: service.QARequest{Question: "q"}, field: "investor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Ask(testContext(), tt.req)
			var validationErr *service.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Ask() error = %v, want ValidationError", err)
			}
			if validationErr.Field != tt.field {
				t.Errorf("ValidationError.Field = %q, want %q", validationErr.Field, tt.field)
			}
		})
	}
}

func TestInvestorService_Analyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockInvestorStore(ctrl)
	store.EXPECT().GetByName(gomock.Any(), "Ledger Capital").Return(ledgerCapital(), nil)
	svc := newInvestorService(store, nil)

	got, err := svc.Analyze(testContext(), service.AnalyzeRequest{
		InvestorName: "Ledger Capital",
		Pitch:        model.Pitch{Summary: "Payments API", Sector: "fintech", Stage: "seed", Geo: "US"},
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.Investor != "Ledger Capital" {
		t.Errorf("Analyze() investor = %q", got.Investor)
	}
	if got.ScoreHint < 0 || got.ScoreHint > 100 {
		t.Errorf("Analyze() score hint = %d", got.ScoreHint)
	}
	if len(got.Agents) != 4 {
		t.Errorf("Analyze() returned %d agent notes, want 4", len(got.Agents))
	}

	if _, err := svc.Analyze(testContext(), service.AnalyzeRequest{InvestorName: "Ledger Capital"}); err == nil {
		t.Error("Analyze() expected error for empty pitch")
	}
}
