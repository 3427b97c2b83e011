package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// QARepo stores answered investor questions.
type QARepo struct {
	db *sql.DB
}

// NewQARepo creates a new QARepo.
func NewQARepo(db *sql.DB) *QARepo {
	return &QARepo{db: db}
}

// Save inserts resp, assigning a UUID when resp.ID is empty.
func (r *QARepo) Save(ctx context.Context, resp *QAResponse) error {
	if resp.ID == "" {
		resp.ID = uuid.New().String()
	}

	citations, err := json.Marshal(resp.Citations)
	if err != nil {
		return fmt.Errorf("failed to marshal citations: %w", err)
	}
	if resp.Citations == nil {
		citations = []byte("[]")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO qa_responses (id, investor_name, question, mode, intent, answer, citations)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		resp.ID, resp.InvestorName, resp.Question, resp.Mode, resp.Intent, resp.Answer, string(citations),
	)
	if err != nil {
		return fmt.Errorf("failed to insert qa response: %w", err)
	}
	return nil
}

// ListByInvestor returns up to limit stored answers for an investor, newest first.
func (r *QARepo) ListByInvestor(ctx context.Context, investorName string, limit int) ([]QAResponse, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, investor_name, question, mode, intent, answer, citations, created_at
		 FROM qa_responses WHERE investor_name = ? COLLATE NOCASE
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		investorName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query qa responses: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []QAResponse
	for rows.Next() {
		var resp QAResponse
		var citations, createdAt string
		if err := rows.Scan(&resp.ID, &resp.InvestorName, &resp.Question, &resp.Mode,
			&resp.Intent, &resp.Answer, &citations, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan qa response: %w", err)
		}
		if err := json.Unmarshal([]byte(citations), &resp.Citations); err != nil {
			return nil, fmt.Errorf("failed to decode citations: %w", err)
		}
		if resp.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate qa responses: %w", err)
	}
	return out, nil
}
