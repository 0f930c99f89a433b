package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/commandecho/pkg/log"
)

type VoiceConfig struct {
	WakeWord        string  `env:"ECHO_WAKE_WORD" envDefault:"echo"`
	AlwaysListening bool    `env:"ECHO_ALWAYS_LISTENING" envDefault:"false"`
	SpeechRate      int     `env:"ECHO_SPEECH_RATE" envDefault:"200"`
	SpeechVolume    float32 `env:"ECHO_SPEECH_VOLUME" envDefault:"0.9"`

	// External speech-to-text command. It is expected to capture one
	// utterance and print the recognized text on stdout.
	STTCommand string `env:"ECHO_STT_COMMAND"`
}

func NewVoiceConfig(ctx context.Context) *VoiceConfig {
	c := &VoiceConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse voice config")
	}
	return c
}
