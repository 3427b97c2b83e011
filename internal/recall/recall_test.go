package recall

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealmatch/internal/embedding/mock"
	"dealmatch/internal/model"
	"dealmatch/internal/vectorstore"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeIndex struct {
	neighbors []vectorstore.Neighbor
	err       error
	gotK      int
}

func (f *fakeIndex) Nearest(ctx context.Context, collection string, vector []float32, k int) ([]vectorstore.Neighbor, error) {
	f.gotK = k
	return f.neighbors, f.err
}

type fakeScanner struct {
	rows     []model.Investor
	err      error
	gotLimit int
}

func (f *fakeScanner) Scan(ctx context.Context, limit int) ([]model.Investor, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if len(f.rows) > limit {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

type failingSource struct{ name model.Source }

func (f failingSource) Name() model.Source { return f.name }
func (f failingSource) Recall(ctx context.Context, query string, k int) ([]model.Candidate, error) {
	return nil, errors.New("store unreachable")
}

func ptr(v float64) *float64 { return &v }

func TestDistanceToPct(t *testing.T) {
	tests := []struct {
		name     string
		distance *float64
		want     int
	}{
		{name: "nil", distance: nil, want: 0},
		{name: "zero", distance: ptr(0), want: 100},
		{name: "half", distance: ptr(1), want: 50},
		{name: "max", distance: ptr(2), want: 0},
		{name: "below domain", distance: ptr(-0.3), want: 100},
		{name: "above domain", distance: ptr(3.7), want: 0},
		{name: "nan", distance: ptr(math.NaN()), want: 0},
		{name: "rounds", distance: ptr(0.25), want: 88},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DistanceToPct(tt.distance))
		})
	}
}

func TestDistanceToPct_Monotonic(t *testing.T) {
	prev := DistanceToPct(ptr(0))
	for d := 0.01; d <= 2.0; d += 0.01 {
		got := DistanceToPct(ptr(d))
		assert.LessOrEqual(t, got, prev, "distance %v", d)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
		prev = got
	}
}

func TestNeighborPct_PrefersCertainty(t *testing.T) {
	assert.Equal(t, 91, NeighborPct(ptr(1.0), ptr(0.91)))
	assert.Equal(t, 50, NeighborPct(ptr(1.0), nil))
	assert.Equal(t, 50, NeighborPct(ptr(1.0), ptr(math.NaN())))
	assert.Equal(t, 100, NeighborPct(nil, ptr(1.4)))
	assert.Equal(t, 0, NeighborPct(nil, nil))
}

func TestVectorSource_Recall(t *testing.T) {
	index := &fakeIndex{neighbors: []vectorstore.Neighbor{
		{Distance: ptr(0.2), Meta: model.Investor{Name: "Robo Fund", Sectors: "robotics"}.Payload()},
		{Distance: ptr(0.9), Meta: map[string]any{"sectors": "no name"}},
		{Distance: ptr(1.2), Meta: model.Investor{Name: "Health Seed"}.Payload()},
	}}
	src := NewVectorSource(mock.NewEmbedder(), index, "investors")

	got, err := src.Recall(context.Background(), "robotics", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 5, index.gotK)

	assert.Equal(t, "Robo Fund", got[0].Investor.Name)
	assert.Equal(t, "robotics", got[0].Investor.Sectors)
	assert.Equal(t, 90, got[0].Scores[model.SourceVector])
	require.NotNil(t, got[0].Distance)
	assert.InDelta(t, 0.2, *got[0].Distance, 1e-9)
	assert.Equal(t, 40, got[1].Scores[model.SourceVector])
}

func TestVectorSource_Errors(t *testing.T) {
	ctx := context.Background()

	offline := mock.NewEmbedder()
	offline.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("model unavailable")
	}
	_, err := NewVectorSource(offline, &fakeIndex{}, "c").Recall(ctx, "q", 3)
	assert.ErrorContains(t, err, "failed to embed query")

	_, err = NewVectorSource(mock.NewEmbedder(), &fakeIndex{err: errors.New("down")}, "c").Recall(ctx, "q", 3)
	assert.ErrorContains(t, err, "failed to query vector index")

	got, err := NewVectorSource(mock.NewEmbedder(), &fakeIndex{}, "c").Recall(ctx, "q", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLexicalSource_Recall(t *testing.T) {
	scanner := &fakeScanner{rows: []model.Investor{
		{Name: "Zeta", Sectors: "fintech"},
		{Name: "Alpha", Sectors: "fintech"},
		{Name: "Bio", Sectors: "biotech"},
		{Name: "Pay", Sectors: "fintech, payments"},
	}}
	src := NewLexicalSource(scanner, nil, WithScanLimit(50))

	got, err := src.Recall(context.Background(), "fintech payments", 10)
	require.NoError(t, err)
	assert.Equal(t, 50, scanner.gotLimit)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Pay", "Alpha", "Zeta"}, []string{got[0].Investor.Name, got[1].Investor.Name, got[2].Investor.Name})
	assert.Equal(t, 22, got[0].Scores[model.SourceLexical])
	assert.Nil(t, got[0].Distance)

	top, err := src.Recall(context.Background(), "fintech payments", 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Pay", top[0].Investor.Name)
}

func TestLexicalSource_ThresholdAndBound(t *testing.T) {
	scanner := &fakeScanner{rows: []model.Investor{
		{Name: "A", Sectors: "fintech"},
		{Name: "B", Sectors: "fintech, payments"},
		{Name: "C", Sectors: "fintech, payments"},
	}}

	got, err := NewLexicalSource(scanner, nil, WithThreshold(15)).Recall(context.Background(), "fintech payments", 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, DefaultScanLimit, scanner.gotLimit)

	bounded, err := NewLexicalSource(scanner, nil, WithScanLimit(1)).Recall(context.Background(), "fintech payments", 10)
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.Equal(t, "A", bounded[0].Investor.Name)
}

func TestRecaller_MergesSources(t *testing.T) {
	index := &fakeIndex{neighbors: []vectorstore.Neighbor{
		{Distance: ptr(0.4), Meta: model.Investor{Name: "Pay"}.Payload()},
		{Distance: ptr(0.6), Meta: model.Investor{Name: "Vector Only"}.Payload()},
	}}
	scanner := &fakeScanner{rows: []model.Investor{
		{Name: "Pay", Sectors: "fintech, payments"},
		{Name: "Lex Only", Sectors: "payments"},
	}}
	r := NewRecaller(
		NewVectorSource(mock.NewEmbedder(), index, "investors"),
		NewLexicalSource(scanner, nil),
		nil,
	)
	assert.Equal(t, []model.Source{model.SourceVector, model.SourceLexical}, r.Sources())

	got, err := r.Recall(context.Background(), "fintech payments", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Pay", got[0].Investor.Name)
	assert.Equal(t, 80, got[0].Scores[model.SourceVector])
	assert.Equal(t, 22, got[0].Scores[model.SourceLexical])
	require.NotNil(t, got[0].Distance)

	assert.Equal(t, "Vector Only", got[1].Investor.Name)
	_, hasLex := got[1].Score(model.SourceLexical)
	assert.False(t, hasLex)

	assert.Equal(t, "Lex Only", got[2].Investor.Name)
	_, hasVec := got[2].Score(model.SourceVector)
	assert.False(t, hasVec)
}

func TestRecaller_PartialFailure(t *testing.T) {
	scanner := &fakeScanner{rows: []model.Investor{{Name: "Pay", Sectors: "payments"}}}
	r := NewRecaller(failingSource{name: model.SourceVector}, NewLexicalSource(scanner, nil))

	got, err := r.Recall(context.Background(), "payments", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pay", got[0].Investor.Name)
}

func TestRecaller_AllFail(t *testing.T) {
	r := NewRecaller(failingSource{name: model.SourceVector}, NewLexicalSource(&fakeScanner{err: errors.New("db down")}, nil))

	got, err := r.Recall(context.Background(), "payments", 5)
	assert.ErrorIs(t, err, ErrAllSourcesFailed)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecaller_NoSources(t *testing.T) {
	got, err := NewRecaller().Recall(context.Background(), "payments", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
