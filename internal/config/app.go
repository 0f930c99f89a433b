package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/commandecho/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"ECHO_RUNTIME_PATH" envDefault:".commandecho"`

	// Transport flags
	EnableCLI   bool `env:"ECHO_ENABLE_CLI" envDefault:"true"`
	EnableVoice bool `env:"ECHO_ENABLE_VOICE" envDefault:"false"`

	// Bound on the in-memory conversation history (turns, FIFO eviction).
	HistoryBound int `env:"ECHO_HISTORY_BOUND" envDefault:"10"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse app config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return resolveRuntimePath(c.RuntimePath)
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.GetRuntimePath(), "commandecho.db")
}
