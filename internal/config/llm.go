package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/commandecho/pkg/log"
)

type LLMConfig struct {
	// Path to the local GGUF model served by the llama.cpp server.
	// Required: without a model there is nothing to serve.
	ModelPath string `env:"ECHO_MODEL_PATH,required"`

	BaseURL       string  `env:"ECHO_LLM_BASE_URL" envDefault:"http://127.0.0.1:8080"`
	ContextLength int     `env:"ECHO_CONTEXT_LENGTH" envDefault:"4096"`
	MaxTokens     int     `env:"ECHO_MAX_TOKENS" envDefault:"512"`
	Temperature   float32 `env:"ECHO_TEMPERATURE" envDefault:"0.7"`

	// Deterministic reply used when the completion service is down
	// or times out.
	FallbackReply string `env:"ECHO_FALLBACK_REPLY" envDefault:"I'm sorry, I can't think straight right now. Please try again in a moment."`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}
