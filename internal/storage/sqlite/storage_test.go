package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/commandecho/internal/core"
)

// stubEmbedder maps known texts to fixed vectors so similarity ordering
// is deterministic.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func TestFactsRepo_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "echo.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewFactsRepo(db)

	require.NoError(t, repo.UpsertFact(ctx, "name", "John"))
	got, err := repo.GetFact(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, "John", got)

	require.NoError(t, repo.UpsertFact(ctx, "name", "Jane"))
	got, err = repo.GetFact(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got)
}

func TestFactsRepo_KeyNormalization(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "echo.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewFactsRepo(db)

	require.NoError(t, repo.UpsertFact(ctx, "Favorite Color", "blue"))
	got, err := repo.GetFact(ctx, "favorite color")
	require.NoError(t, err)
	assert.Equal(t, "blue", got)
}

func TestFactsRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "echo.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewFactsRepo(db)

	_, err = repo.GetFact(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrFactNotFound)
}

func TestSnippetsRepo_SearchEmptyStore(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "echo.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewSnippetsRepo(db, &stubEmbedder{})

	got, err := repo.SearchSnippets(ctx, "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSnippetsRepo_SearchNonPositiveK(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "echo.db"))
	require.NoError(t, err)
	defer db.Close()

	embedder := &stubEmbedder{vectors: map[string][]float32{}}
	repo := NewSnippetsRepo(db, embedder)

	_, err = repo.AddSnippet(ctx, "the user likes coffee")
	require.NoError(t, err)

	for _, k := range []int{0, -1} {
		got, err := repo.SearchSnippets(ctx, "coffee", k)
		require.NoError(t, err)
		assert.Empty(t, got, "k=%d", k)
	}
}

func TestSnippetsRepo_SearchOrdering(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "echo.db"))
	require.NoError(t, err)
	defer db.Close()

	embedder := &stubEmbedder{vectors: map[string][]float32{
		"query":          {1, 0, 0},
		"close match":    {1, 0.1, 0},
		"far match":      {0, 1, 0},
		"moderate match": {1, 1, 0},
	}}
	repo := NewSnippetsRepo(db, embedder)

	for _, text := range []string{"far match", "moderate match", "close match"} {
		_, err := repo.AddSnippet(ctx, text)
		require.NoError(t, err)
	}

	got, err := repo.SearchSnippets(ctx, "query", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "close match", got[0].Snippet.Text)
	assert.Equal(t, "moderate match", got[1].Snippet.Text)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestSnippetsRepo_TieBreakNewestFirst(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "echo.db"))
	require.NoError(t, err)
	defer db.Close()

	// Insert two snippets with identical embeddings but distinct
	// timestamps, bypassing AddSnippet to control created_at.
	blob, err := serializeVector([]float32{1, 0, 0})
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO snippets (text, embedding, created_at) VALUES (?, ?, ?)`,
		"older", blob, "2024-01-01 10:00:00")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO snippets (text, embedding, created_at) VALUES (?, ?, ?)`,
		"newer", blob, "2024-06-01 10:00:00")
	require.NoError(t, err)

	embedder := &stubEmbedder{vectors: map[string][]float32{"query": {1, 0, 0}}}
	repo := NewSnippetsRepo(db, embedder)

	got, err := repo.SearchSnippets(ctx, "query", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "newer", got[0].Snippet.Text)
	assert.Equal(t, "older", got[1].Snippet.Text)
}

func TestSnippetsRepo_AddSnippetEmbeddingFailure(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "echo.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewSnippetsRepo(db, &stubEmbedder{err: errors.New("connection refused")})

	_, err = repo.AddSnippet(ctx, "anything")
	assert.ErrorIs(t, err, core.ErrEmbedding)
}

func TestTurnsRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "echo.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewTurnsRepo(db)
	session := "test-session"

	for _, turn := range []core.ConversationTurn{
		{Role: core.RoleUser, Text: "hello"},
		{Role: core.RoleAssistant, Text: "hi there"},
		{Role: core.RoleUser, Text: "what time is it"},
	} {
		require.NoError(t, repo.AddTurn(ctx, session, turn))
	}

	got, err := repo.RecentTurns(ctx, session, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hi there", got[0].Text)
	assert.Equal(t, "what time is it", got[1].Text)
}
