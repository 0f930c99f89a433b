package core

import "context"

type FactsRepository interface {
	// UpsertFact stores key=value, overwriting any previous value
	// and bumping updated_at. Idempotent.
	UpsertFact(ctx context.Context, key, value string) error
	// GetFact returns ErrFactNotFound for unknown keys.
	GetFact(ctx context.Context, key string) (string, error)
}

type SnippetsRepository interface {
	// AddSnippet embeds the text and appends it. Returns an error
	// wrapping ErrEmbedding when the embedding service is down.
	AddSnippet(ctx context.Context, text string) (int64, error)
	// SearchSnippets returns up to k snippets ordered by descending
	// similarity, ties broken by newest created_at. k <= 0 and an
	// empty store both yield an empty result, not an error.
	SearchSnippets(ctx context.Context, query string, k int) ([]ScoredSnippet, error)
}

type TurnsRepository interface {
	AddTurn(ctx context.Context, sessionID string, turn ConversationTurn) error
	// RecentTurns returns the last limit turns in chronological order.
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]ConversationTurn, error)
}
