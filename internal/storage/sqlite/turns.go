package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/commandecho/internal/core"
)

// TurnsRepo is the durable conversation log. The bounded in-memory
// history the Dialogue Engine sees lives in the orchestrator; this
// table is the full record that survives restarts.
type TurnsRepo struct {
	db *sql.DB
}

func NewTurnsRepo(db *sql.DB) *TurnsRepo {
	return &TurnsRepo{db: db}
}

func (r *TurnsRepo) AddTurn(ctx context.Context, sessionID string, turn core.ConversationTurn) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO turns (session_id, role, content) VALUES (?, ?, ?)`,
		sessionID, turn.Role, turn.Text)
	if err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

func (r *TurnsRepo) RecentTurns(ctx context.Context, sessionID string, limit int) ([]core.ConversationTurn, error) {
	query := `
		SELECT role, content, created_at FROM turns
		WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.ConversationTurn
	for rows.Next() {
		var t core.ConversationTurn
		if err := rows.Scan(&t.Role, &t.Text, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query returned newest first; flip back to chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}
