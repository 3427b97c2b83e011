package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dealmatch/internal/model"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

const investorColumns = `name, firm, sectors, stages, geo, check_min, check_max, check_currency, thesis, constraints, profile`

// InvestorStore defines the interface for investor storage operations.
type InvestorStore interface {
	// Upsert inserts an investor or replaces the fields of the one with the same name.
	Upsert(ctx context.Context, inv model.Investor) error
	// GetByName gets an investor by case-insensitive name.
	// Returns nil and ErrNotFound if not found.
	GetByName(ctx context.Context, name string) (*model.Investor, error)
	// Scan returns at most limit investors ordered by name. limit <= 0 returns all.
	Scan(ctx context.Context, limit int) ([]model.Investor, error)
}

// InvestorRepo provides methods for investor operations.
// It implements the InvestorStore interface.
type InvestorRepo struct {
	db *sql.DB
}

var _ InvestorStore = (*InvestorRepo)(nil)

// NewInvestorRepo creates a new InvestorRepo.
func NewInvestorRepo(db *sql.DB) *InvestorRepo {
	return &InvestorRepo{db: db}
}

// Upsert inserts an investor or updates an existing one with the same name.
func (r *InvestorRepo) Upsert(ctx context.Context, inv model.Investor) error {
	name := strings.TrimSpace(inv.Name)
	if name == "" {
		return fmt.Errorf("investor name is required")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO investors (`+investorColumns+`, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (name) DO UPDATE SET
		 firm = excluded.firm, sectors = excluded.sectors, stages = excluded.stages, geo = excluded.geo,
		 check_min = excluded.check_min, check_max = excluded.check_max, check_currency = excluded.check_currency,
		 thesis = excluded.thesis, constraints = excluded.constraints, profile = excluded.profile,
		 updated_at = CURRENT_TIMESTAMP`,
		name, inv.Firm, inv.Sectors, inv.Stages, inv.Geo,
		nullFloat(inv.Check.Min), nullFloat(inv.Check.Max), inv.Check.Currency,
		inv.Thesis, inv.Constraints, inv.Profile,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert investor: %w", err)
	}
	return nil
}

// GetByName gets an investor by name, ignoring case.
// Returns nil and ErrNotFound if not found.
func (r *InvestorRepo) GetByName(ctx context.Context, name string) (*model.Investor, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+investorColumns+` FROM investors WHERE name = ?`,
		strings.TrimSpace(name),
	)
	inv, err := scanInvestor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query investor: %w", err)
	}
	return &inv, nil
}

// Scan returns a bounded page of investors ordered by name.
func (r *InvestorRepo) Scan(ctx context.Context, limit int) ([]model.Investor, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+investorColumns+` FROM investors ORDER BY name LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query investors: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []model.Investor
	for rows.Next() {
		inv, err := scanInvestor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investor: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate investors: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvestor(row rowScanner) (model.Investor, error) {
	var inv model.Investor
	var checkMin, checkMax sql.NullFloat64
	err := row.Scan(&inv.Name, &inv.Firm, &inv.Sectors, &inv.Stages, &inv.Geo,
		&checkMin, &checkMax, &inv.Check.Currency,
		&inv.Thesis, &inv.Constraints, &inv.Profile)
	if err != nil {
		return model.Investor{}, err
	}
	inv.Check.Min = floatPtr(checkMin)
	inv.Check.Max = floatPtr(checkMax)
	return inv, nil
}
