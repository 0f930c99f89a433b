package core

import (
	"errors"
	"time"
)

var (
	// ErrFactNotFound is returned by FactsRepository.GetFact for unknown keys.
	ErrFactNotFound = errors.New("fact not found")

	// ErrEmbedding wraps embedding-service failures. Callers degrade by
	// skipping memory persistence for the turn, never by aborting it.
	ErrEmbedding = errors.New("embedding unavailable")

	// ErrModelUnavailable wraps completion-service failures and timeouts.
	ErrModelUnavailable = errors.New("model unavailable")
)

// MemoryFact is a structured key/value memory entry. Keys are unique;
// the last write for a key wins.
type MemoryFact struct {
	Key       string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MemorySnippet is an append-only free-text memory unit with an
// embedding computed once at insertion time.
type MemorySnippet struct {
	ID        int64
	Text      string
	Embedding []float32
	CreatedAt time.Time
}

// ScoredSnippet pairs a snippet with its similarity to a query.
type ScoredSnippet struct {
	Snippet MemorySnippet
	Score   float32
}
