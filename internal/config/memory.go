package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/commandecho/pkg/log"
)

type MemoryConfig struct {
	EmbedBaseURL string `env:"ECHO_EMBED_BASE_URL" envDefault:"http://127.0.0.1:8081"`

	// How many snippets to retrieve per chat turn.
	TopK int `env:"ECHO_MEMORY_TOP_K" envDefault:"3"`

	// Snippets scoring below the floor are discarded: a weakly related
	// memory misleads the model more than no memory at all.
	SimilarityFloor float32 `env:"ECHO_SIMILARITY_FLOOR" envDefault:"0.3"`
}

func NewMemoryConfig(ctx context.Context) *MemoryConfig {
	c := &MemoryConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse memory config")
	}
	return c
}
