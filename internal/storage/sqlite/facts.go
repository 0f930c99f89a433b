package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/commandecho/internal/core"
)

type FactsRepo struct {
	db *sql.DB
}

func NewFactsRepo(db *sql.DB) *FactsRepo {
	return &FactsRepo{db: db}
}

// UpsertFact is last-write-wins per key. Keys are normalized to lower
// case so "Name" and "name" address the same fact.
func (r *FactsRepo) UpsertFact(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO facts (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP`

	_, err := r.db.ExecContext(ctx, query, normalizeKey(key), value)
	if err != nil {
		return fmt.Errorf("failed to upsert fact: %w", err)
	}
	return nil
}

func (r *FactsRepo) GetFact(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM facts WHERE key = ?`, normalizeKey(key),
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", core.ErrFactNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query fact: %w", err)
	}
	return value, nil
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
