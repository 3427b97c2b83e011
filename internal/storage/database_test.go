package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pragma reads a single integer PRAGMA value.
func pragma(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	var v int
	require.NoError(t, db.QueryRow("PRAGMA "+name).Scan(&v))
	return v
}

func TestNew_ConnectionSettings(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "dealmatch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, 1, pragma(t, db, "foreign_keys"))
	assert.Equal(t, 5000, pragma(t, db, "busy_timeout"))
	assert.Equal(t, 25, db.Stats().MaxOpenConnections)
}

func TestNew_MissingDirectory(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "no", "such", "dir", "dealmatch.db"))
	if db != nil {
		_ = db.Close()
	}
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestMigrate_Schema(t *testing.T) {
	db := newTestDB(t)

	for _, obj := range []struct{ kind, name string }{
		{"table", "investors"},
		{"table", "pitches"},
		{"table", "matches"},
		{"table", "qa_responses"},
		{"index", "idx_matches_pitch"},
	} {
		var count int
		err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?`, obj.kind, obj.name).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "%s %s", obj.kind, obj.name)
	}
}

func TestMigrate_RerunKeepsRows(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec(`INSERT INTO investors (name, firm) VALUES ('Acme Ventures', 'Acme')`)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	var firm string
	require.NoError(t, db.QueryRow(`SELECT firm FROM investors WHERE name = 'Acme Ventures'`).Scan(&firm))
	assert.Equal(t, "Acme", firm)
}

func TestMigrate_InvestorNameIgnoresCase(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec(`INSERT INTO investors (name) VALUES ('Acme Ventures')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO investors (name) VALUES ('ACME VENTURES')`)
	assert.Error(t, err, "names differing only in case share a key")

	var checkMin sql.NullFloat64
	require.NoError(t, db.QueryRow(`SELECT check_min FROM investors WHERE name = 'acme ventures'`).Scan(&checkMin))
	assert.False(t, checkMin.Valid, "an unset check bound stays NULL")
}

func TestMigrate_MatchesFollowPitch(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec(`INSERT INTO pitches (id, summary) VALUES ('p1', 'robotics')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO matches (pitch_id, investor_name, score_pct) VALUES ('p1', 'Acme Ventures', 80)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO matches (pitch_id, investor_name, score_pct) VALUES ('missing', 'Acme Ventures', 80)`)
	assert.Error(t, err, "a match must reference a stored pitch")

	var distance sql.NullFloat64
	require.NoError(t, db.QueryRow(`SELECT distance FROM matches WHERE pitch_id = 'p1'`).Scan(&distance))
	assert.False(t, distance.Valid)

	_, err = db.Exec(`DELETE FROM pitches WHERE id = 'p1'`)
	require.NoError(t, err)
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM matches`).Scan(&count))
	assert.Zero(t, count)
}

func TestMigrate_QACitationsDefault(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec(`INSERT INTO qa_responses (id, investor_name, question, mode, intent, answer)
		VALUES ('q1', 'Acme Ventures', 'What is your thesis?', 'profile', 'thesis', 'AI first')`)
	require.NoError(t, err)

	var citations string
	require.NoError(t, db.QueryRow(`SELECT citations FROM qa_responses WHERE id = 'q1'`).Scan(&citations))
	assert.Equal(t, "[]", citations)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "sqlite datetime", in: "2026-01-02 03:04:05"},
		{name: "rfc3339", in: "2026-01-02T03:04:05Z"},
		{name: "garbage", in: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2026, got.Year())
			assert.Equal(t, 3, got.Hour())
		})
	}
}
