// Package voice is the hands-free transport: a listen/respond loop
// built on external speech-to-text and text-to-speech commands.
package voice

import (
	"context"
	"errors"
	"strings"

	"github.com/sandevgo/commandecho/internal/config"
	"github.com/sandevgo/commandecho/internal/core"
	"github.com/sandevgo/commandecho/internal/service/assistant"
	"github.com/sandevgo/commandecho/pkg/log"
)

// Listener captures one utterance from the microphone and returns the
// recognized text. An empty string with nil error means silence.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// Speaker renders a reply out loud.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

type Loop struct {
	cfg       *config.VoiceConfig
	assistant *assistant.Assistant
	listener  Listener
	speaker   Speaker
}

func NewLoop(a *assistant.Assistant, cfg *config.VoiceConfig, listener Listener, speaker Speaker) *Loop {
	return &Loop{
		cfg:       cfg,
		assistant: a,
		listener:  listener,
		speaker:   speaker,
	}
}

func (l *Loop) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("wake_word", l.cfg.WakeWord).Bool("always_listening", l.cfg.AlwaysListening).
		Msg("voice loop started")

	l.say(ctx, l.assistant.Greeting(ctx))

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		heard, err := l.listener.Listen(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			logger.Warn().Err(err).Msg("speech recognition failed")
			l.say(ctx, "Sorry, I didn't catch that.")
			continue
		}

		text, ok := l.extract(heard)
		if !ok {
			continue
		}

		reply := l.assistant.Handle(ctx, core.NewUtterance(text, core.SourceVoice))
		l.say(ctx, reply)
	}
}

// extract strips the wake word and decides whether the utterance was
// addressed to the assistant at all.
func (l *Loop) extract(heard string) (string, bool) {
	heard = strings.TrimSpace(heard)
	if heard == "" {
		return "", false
	}

	lower := strings.ToLower(heard)
	wake := strings.ToLower(l.cfg.WakeWord)

	if strings.HasPrefix(lower, wake) {
		rest := strings.TrimSpace(heard[len(wake):])
		rest = strings.TrimLeft(rest, ",.")
		return strings.TrimSpace(rest), rest != ""
	}

	if l.cfg.AlwaysListening {
		return heard, true
	}
	return "", false
}

// say speaks best-effort. A broken speaker must not kill the loop, the
// reply is already logged.
func (l *Loop) say(ctx context.Context, text string) {
	if text == "" {
		return
	}
	log.FromCtx(ctx).Debug().Str("reply", text).Msg("speaking")
	if err := l.speaker.Speak(ctx, text); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("speech output failed")
	}
}

func (l *Loop) Shutdown(ctx context.Context) error {
	// The loop stops on its own once the start context is cancelled:
	// the listener command is killed and Listen returns.
	return nil
}
