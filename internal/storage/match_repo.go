package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"dealmatch/internal/model"
)

// MatchRepo persists pitches and their ranked matches.
type MatchRepo struct {
	db *sql.DB
}

// NewMatchRepo creates a new MatchRepo.
func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// RecordMatches stores pitch and appends one row per match in a single transaction.
// A pitch without an ID is assigned a new UUID.
func (r *MatchRepo) RecordMatches(ctx context.Context, pitch *model.Pitch, matches []model.Match) error {
	if pitch.ID == "" {
		pitch.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO pitches (id, summary, sector, stage, geo, traction)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 summary = excluded.summary, sector = excluded.sector, stage = excluded.stage,
		 geo = excluded.geo, traction = excluded.traction`,
		pitch.ID, pitch.Summary, pitch.Sector, pitch.Stage, pitch.Geo, pitch.Traction,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pitch: %w", err)
	}

	for _, m := range matches {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO matches (pitch_id, investor_name, score_pct, distance) VALUES (?, ?, ?, ?)`,
			pitch.ID, m.InvestorName, m.ScorePct, nullFloat(m.Distance),
		)
		if err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPitch gets a pitch by ID.
// Returns nil and ErrNotFound if not found.
func (r *MatchRepo) GetPitch(ctx context.Context, id string) (*model.Pitch, error) {
	var p model.Pitch
	err := r.db.QueryRowContext(ctx,
		`SELECT id, summary, sector, stage, geo, traction FROM pitches WHERE id = ?`, id,
	).Scan(&p.ID, &p.Summary, &p.Sector, &p.Stage, &p.Geo, &p.Traction)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pitch: %w", err)
	}
	return &p, nil
}

// ListByPitch returns the matches stored for a pitch, best score first.
func (r *MatchRepo) ListByPitch(ctx context.Context, pitchID string) ([]model.Match, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT pitch_id, investor_name, score_pct, distance, created_at
		 FROM matches WHERE pitch_id = ? ORDER BY score_pct DESC, id`,
		pitchID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []model.Match
	for rows.Next() {
		var m model.Match
		var distance sql.NullFloat64
		var createdAt string
		if err := rows.Scan(&m.PitchID, &m.InvestorName, &m.ScorePct, &distance, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		m.Distance = floatPtr(distance)
		if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return out, nil
}
