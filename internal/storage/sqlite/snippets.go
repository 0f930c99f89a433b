package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/sandevgo/commandecho/internal/core"
	"github.com/sandevgo/commandecho/pkg/log"
)

type SnippetsRepo struct {
	db       *sql.DB
	embedder core.Embedder
}

func NewSnippetsRepo(db *sql.DB, embedder core.Embedder) *SnippetsRepo {
	return &SnippetsRepo{db: db, embedder: embedder}
}

// AddSnippet embeds the text and appends it. The embedding is computed
// exactly once, at insertion time; an embedding failure is surfaced
// (wrapping core.ErrEmbedding) so the caller can skip persistence for
// the turn instead of aborting it.
func (r *SnippetsRepo) AddSnippet(ctx context.Context, text string) (int64, error) {
	vec, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", core.ErrEmbedding, err)
	}

	blob, err := serializeVector(vec)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO snippets (text, embedding) VALUES (?, ?)`, text, blob)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snippet: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	log.FromCtx(ctx).Debug().Int64("id", id).Msg("snippet stored")
	return id, nil
}

// SearchSnippets scores every stored snippet against the query by
// cosine similarity and returns the top k. Ties go to the most recent
// snippet. k <= 0 and an empty store both yield an empty result.
func (r *SnippetsRepo) SearchSnippets(ctx context.Context, query string, k int) ([]core.ScoredSnippet, error) {
	if k <= 0 {
		return nil, nil
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEmbedding, err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, text, embedding, created_at FROM snippets`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snippets: %w", err)
	}
	defer rows.Close()

	var scored []core.ScoredSnippet
	for rows.Next() {
		var s core.MemorySnippet
		var blob []byte
		if err := rows.Scan(&s.ID, &s.Text, &blob, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snippet: %w", err)
		}
		if s.Embedding, err = deserializeVector(blob); err != nil {
			return nil, err
		}
		scored = append(scored, core.ScoredSnippet{
			Snippet: s,
			Score:   cosineSimilarity(queryVec, s.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		// Equal scores: newest first.
		return scored[i].Snippet.CreatedAt.After(scored[j].Snippet.CreatedAt)
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}
