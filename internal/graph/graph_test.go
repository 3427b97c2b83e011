package graph

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealmatch/internal/model"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type call struct {
	query  string
	params map[string]any
}

type fakeQuerier struct {
	calls  []call
	result *neo4j.EagerResult
	err    error
}

func (f *fakeQuerier) ExecuteQuery(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	f.calls = append(f.calls, call{query: query, params: params})
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &neo4j.EagerResult{}, nil
	}
	return f.result, nil
}

func TestTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"fintech, payments", []string{"fintech", "payments"}},
		{"AI; Robotics / ai", []string{"ai", "robotics"}},
		{" , ", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tags(tt.in))
		})
	}
}

func TestSyncer_SyncInvestor(t *testing.T) {
	q := &fakeQuerier{}
	s := NewSyncer(q)

	err := s.SyncInvestor(context.Background(), model.Investor{Name: "Ledger Capital", Sectors: "Fintech, payments"})
	require.NoError(t, err)
	require.Len(t, q.calls, 1)
	assert.True(t, strings.HasPrefix(q.calls[0].query, "MERGE (i:Investor {name: $name})"))
	assert.Equal(t, "Ledger Capital", q.calls[0].params["name"])
	assert.Equal(t, []string{"fintech", "payments"}, q.calls[0].params["sector_tags"])

	assert.Error(t, s.SyncInvestor(context.Background(), model.Investor{}))
	assert.Len(t, q.calls, 1, "blank names never reach the graph")
}

func TestSyncer_RecordMatches(t *testing.T) {
	q := &fakeQuerier{}
	s := NewSyncer(q)
	pitch := &model.Pitch{ID: "p1", Summary: "robotics", Stage: "seed"}

	err := s.RecordMatches(context.Background(), pitch, []model.Match{
		{InvestorName: "A", ScorePct: 80, Distance: model.Float(0.3)},
		{InvestorName: "B", ScorePct: 40},
	})
	require.NoError(t, err)
	require.Len(t, q.calls, 1)

	params := q.calls[0].params
	assert.Equal(t, "p1", params["pitch_id"])
	rows, ok := params["matches"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]any{"investor": "A", "score_pct": int64(80), "distance": 0.3}, rows[0])
	assert.Nil(t, rows[1]["distance"])
}

func TestSyncer_RecordMatches_Errors(t *testing.T) {
	s := NewSyncer(&fakeQuerier{})
	assert.Error(t, s.RecordMatches(context.Background(), &model.Pitch{}, nil))
	assert.Error(t, s.RecordMatches(context.Background(), nil, nil))

	failing := NewSyncer(&fakeQuerier{err: errors.New("connection refused")})
	err := failing.RecordMatches(context.Background(), &model.Pitch{ID: "p1"}, nil)
	assert.ErrorContains(t, err, "connection refused")
}

func TestSyncer_RelatedInvestors(t *testing.T) {
	q := &fakeQuerier{result: &neo4j.EagerResult{
		Keys: []string{"name", "shared"},
		Records: []*neo4j.Record{
			{Keys: []string{"name", "shared"}, Values: []any{"B", int64(2)}},
			{Keys: []string{"name", "shared"}, Values: []any{"C", int64(1)}},
		},
	}}
	s := NewSyncer(q)

	got, err := s.RelatedInvestors(context.Background(), "A", 0)
	require.NoError(t, err)
	assert.Equal(t, []Related{{Name: "B", Shared: 2}, {Name: "C", Shared: 1}}, got)
	assert.Equal(t, int64(5), q.calls[0].params["limit"])
}

func TestSyncer_EnsureConstraints_LogsFailures(t *testing.T) {
	q := &fakeQuerier{err: errors.New("unsupported")}
	NewSyncer(q).EnsureConstraints(context.Background())
	assert.Len(t, q.calls, 2)
}
