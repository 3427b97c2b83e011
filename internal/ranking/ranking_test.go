package ranking

import (
	"fmt"
	"reflect"
	"testing"

	"dealmatch/internal/model"
)

func scores(lex, vec *int) map[model.Source]int {
	m := map[model.Source]int{}
	if lex != nil {
		m[model.SourceLexical] = *lex
	}
	if vec != nil {
		m[model.SourceVector] = *vec
	}
	return m
}

func pct(v int) *int { return &v }

func TestBlend(t *testing.T) {
	tests := []struct {
		name     string
		lex, vec *int
		want     int
	}{
		{name: "neither", want: 0},
		{name: "vector only is not discounted", vec: pct(80), want: 80},
		{name: "lexical only is not discounted", lex: pct(80), want: 80},
		{name: "both weighted", lex: pct(50), vec: pct(100), want: 80},
		{name: "rounds to nearest", lex: pct(11), vec: pct(0), want: 4},
		{name: "both zero", lex: pct(0), vec: pct(0), want: 0},
		{name: "out of range clamps", lex: pct(300), vec: pct(300), want: 100},
		{name: "negative clamps", vec: pct(-20), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blend(scores(tt.lex, tt.vec)); got != tt.want {
				t.Errorf("Blend() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBlend_DeterministicAndBounded(t *testing.T) {
	for l := 0; l <= 100; l += 7 {
		for v := 0; v <= 100; v += 9 {
			s := scores(pct(l), pct(v))
			first := Blend(s)
			if first < 0 || first > 100 {
				t.Fatalf("Blend(%d,%d) = %d out of range", l, v, first)
			}
			for i := 0; i < 3; i++ {
				if again := Blend(s); again != first {
					t.Fatalf("Blend(%d,%d) not deterministic: %d vs %d", l, v, first, again)
				}
			}
		}
	}
}

func TestWeights_Custom(t *testing.T) {
	w := Weights{Lexical: 0.5, Vector: 0.5}
	if got := w.Blend(scores(pct(40), pct(60))); got != 50 {
		t.Errorf("Blend() = %d, want 50", got)
	}
}

func dist(v float64) *float64 { return &v }

func scored(name string, score int, distance *float64) Scored {
	return Scored{Candidate: model.Candidate{Investor: model.Investor{Name: name}, Distance: distance}, Score: score}
}

func names(s []Scored) []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.Investor.Name
	}
	return out
}

func TestRank_TruncateThenFilter(t *testing.T) {
	in := []Scored{
		scored("a", 90, nil),
		scored("b", 0, nil),
		scored("c", 80, nil),
		scored("d", 0, nil),
		scored("e", 70, nil),
	}
	got := Rank(in, 3)
	if want := []string{"a", "c", "e"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("Rank() = %v, want %v", names(got), want)
	}
}

func TestRank_ZeroInsideCutIsDropped(t *testing.T) {
	in := []Scored{scored("a", 90, nil), scored("b", 0, nil), scored("c", 0, nil)}
	got := Rank(in, 2)
	if want := []string{"a"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("Rank() = %v, want %v", names(got), want)
	}
}

func TestRank_TieBreaks(t *testing.T) {
	in := []Scored{
		scored("no-distance", 70, nil),
		scored("far", 70, dist(0.9)),
		scored("close", 70, dist(0.1)),
		scored("b-same", 70, dist(0.5)),
		scored("a-same", 70, dist(0.5)),
		scored("best", 95, nil),
	}
	got := Rank(in, 10)
	want := []string{"best", "close", "a-same", "b-same", "far", "no-distance"}
	if !reflect.DeepEqual(names(got), want) {
		t.Errorf("Rank() = %v, want %v", names(got), want)
	}
}

func TestRank_NonPositiveTopN(t *testing.T) {
	in := []Scored{scored("a", 10, nil), scored("b", 20, nil)}
	for _, n := range []int{0, -3} {
		t.Run(fmt.Sprintf("topN=%d", n), func(t *testing.T) {
			got := Rank(in, n)
			if got == nil || len(got) != 0 {
				t.Errorf("Rank() = %v, want empty non-nil", names(got))
			}
		})
	}
}

func TestRank_EmptyAndInputUntouched(t *testing.T) {
	if got := Rank(nil, 3); got == nil || len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty non-nil", got)
	}

	in := []Scored{scored("low", 10, nil), scored("high", 90, nil)}
	_ = Rank(in, 1)
	if in[0].Investor.Name != "low" {
		t.Error("Rank() reordered its input")
	}
}

func TestRank_Deterministic(t *testing.T) {
	in := []Scored{
		scored("x", 50, dist(0.3)), scored("y", 50, nil), scored("z", 60, dist(0.8)), scored("w", 50, dist(0.3)),
	}
	first := names(Rank(in, 4))
	for i := 0; i < 5; i++ {
		if got := names(Rank(in, 4)); !reflect.DeepEqual(got, first) {
			t.Fatalf("Rank() not deterministic: %v vs %v", got, first)
		}
	}
}

func TestBlendAll(t *testing.T) {
	cands := []model.Candidate{
		{Investor: model.Investor{Name: "both"}, Scores: scores(pct(50), pct(100))},
		{Investor: model.Investor{Name: "lex"}, Scores: scores(pct(80), nil)},
		{Investor: model.Investor{Name: "none"}},
	}
	got := BlendAll(cands, DefaultWeights)
	want := []int{80, 80, 0}
	for i, s := range got {
		if s.Score != want[i] {
			t.Errorf("BlendAll()[%d] = %d, want %d", i, s.Score, want[i])
		}
	}
}
