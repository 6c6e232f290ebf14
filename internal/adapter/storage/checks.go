package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ShamarKellman/power-tranz/internal/core/domain"
)

const checksSchema = `
	CREATE TABLE IF NOT EXISTS card_checks (
		id            UUID PRIMARY KEY,
		request_id    TEXT NOT NULL,
		masked_number TEXT NOT NULL,
		network_id    TEXT NOT NULL DEFAULT '',
		valid         BOOLEAN NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// CheckRepository keeps the history of card checks. Only masked
// numbers are ever written.
type CheckRepository struct {
	db *pgxpool.Pool
}

func NewCheckRepository(db *pgxpool.Pool) *CheckRepository {
	return &CheckRepository{db: db}
}

// Migrate creates the card_checks table when missing.
func (r *CheckRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, checksSchema); err != nil {
		return fmt.Errorf("failed to create card_checks: %w", err)
	}
	return nil
}

// Record stores one check
func (r *CheckRepository) Record(ctx context.Context, check domain.CardCheck) error {
	query := `
		INSERT INTO card_checks (id, request_id, masked_number, network_id, valid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		check.ID, check.RequestID, check.MaskedNumber, check.NetworkID, check.Valid, check.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record card check: %w", err)
	}
	return nil
}

// Recent fetches the latest checks, newest first
func (r *CheckRepository) Recent(ctx context.Context, limit int) ([]domain.CardCheck, error) {
	query := `
		SELECT id, request_id, masked_number, network_id, valid, created_at
		FROM card_checks
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list card checks: %w", err)
	}
	defer rows.Close()

	checks := make([]domain.CardCheck, 0, limit)
	for rows.Next() {
		var c domain.CardCheck
		if err := rows.Scan(&c.ID, &c.RequestID, &c.MaskedNumber, &c.NetworkID, &c.Valid, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card check: %w", err)
		}
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return checks, nil
}

// Prune deletes checks created before the cutoff.
func (r *CheckRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM card_checks WHERE created_at < $1", before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune card checks: %w", err)
	}
	return tag.RowsAffected(), nil
}
