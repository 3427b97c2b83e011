package lexical

import (
	"reflect"
	"testing"

	"dealmatch/internal/model"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "punctuation only", in: " -- / ,", want: nil},
		{name: "mixed separators", in: "AI/Robotics, Seed-stage", want: []string{"ai", "robotics", "seed", "stage"}},
		{name: "digits kept", in: "Series A 2024", want: []string{"series", "a", "2024"}},
		{name: "full width folds", in: "ＦｉｎＴｅｃｈ", want: []string{"fintech"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tokenize(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSharedTokens(t *testing.T) {
	if got := SharedTokens("robotics robotics fund", "AI robotics fund"); got != 2 {
		t.Errorf("SharedTokens() = %d, want 2", got)
	}
	if got := SharedTokens("", "AI robotics fund"); got != 0 {
		t.Errorf("SharedTokens() with empty query = %d, want 0", got)
	}
}

func testInvestor() model.Investor {
	return model.Investor{
		Name:        "Acme Ventures",
		Sectors:     "fintech, payments, ai, saas",
		Stages:      "pre-seed, seed, series a",
		Geo:         "US, Canada, UK",
		Thesis:      "back early fintech infra",
		Constraints: "no crypto",
	}
}

func TestScorer_Score(t *testing.T) {
	s := DefaultScorer()
	inv := testInvestor()

	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{name: "no overlap", query: "healthcare biotech", want: 0},
		{name: "sector capped at 3", query: "fintech payments ai saas", want: 3 + 1},
		{name: "stage capped at 2", query: "pre seed series a", want: 2},
		{name: "geo", query: "us", want: 1},
		{name: "thesis and constraints share one bucket", query: "infra crypto early", want: 2},
		{name: "everything", query: "fintech payments ai pre seed us uk infra crypto", want: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Score(tt.query, inv); got != tt.want {
				t.Errorf("Score(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestScorer_PercentBoundsAndRounding(t *testing.T) {
	s := DefaultScorer()
	inv := testInvestor()

	if s.MaxRaw() != 9 {
		t.Fatalf("MaxRaw() = %d, want 9", s.MaxRaw())
	}
	// 1 of 9 points rounds to 11.
	if got := s.Percent("canada", inv); got != 11 {
		t.Errorf("Percent(canada) = %d, want 11", got)
	}
	if got := s.Percent("fintech payments ai pre seed us uk infra crypto", inv); got != 100 {
		t.Errorf("Percent(full) = %d, want 100", got)
	}
	for _, q := range []string{"", "x", "fintech fintech fintech", "seed us"} {
		got := s.Percent(q, inv)
		if got < 0 || got > 100 {
			t.Errorf("Percent(%q) = %d, out of range", q, got)
		}
	}
}

func TestScorer_OrderIndependent(t *testing.T) {
	s := DefaultScorer()
	inv := testInvestor()
	a := s.Percent("seed fintech us", inv)
	b := s.Percent("us, fintech --- seed seed", inv)
	if a != b {
		t.Errorf("Percent differs by token order: %d vs %d", a, b)
	}
}

func TestScorer_ZeroCaps(t *testing.T) {
	s := NewScorer(DefaultBuckets(Caps{}))
	if got := s.Percent("fintech", testInvestor()); got != 0 {
		t.Errorf("Percent() with zero caps = %d, want 0", got)
	}
}

func TestScorer_PercentAll(t *testing.T) {
	s := DefaultScorer()
	other := model.Investor{Name: "Health Co", Sectors: "healthcare"}
	got := s.PercentAll("fintech healthcare", []model.Investor{testInvestor(), other})
	want := []int{22, 11}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PercentAll() = %v, want %v", got, want)
	}
}

func TestClampPct(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-5, 0}, {0, 0}, {42, 42}, {100, 100}, {250, 100},
	}
	for _, tt := range tests {
		if got := ClampPct(tt.in); got != tt.want {
			t.Errorf("ClampPct(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
