// Package dispatch maps recognized command intents to registered
// handler capabilities and normalizes their results into user-facing
// responses.
package dispatch

import (
	"context"
	"fmt"

	"github.com/sandevgo/commandecho/internal/core"
	"github.com/sandevgo/commandecho/pkg/log"
)

type Dispatcher struct {
	handlers map[string]core.Handler
}

func New() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]core.Handler),
	}
}

func (d *Dispatcher) Register(intent string, h core.Handler) {
	d.handlers[intent] = h
}

// Validate checks the router/dispatcher wiring at startup: every
// registered intent name must have exactly one bound handler. A
// mismatch is a configuration error and the process must not proceed
// to serve utterances.
func (d *Dispatcher) Validate(intentNames []string) error {
	for _, name := range intentNames {
		if _, ok := d.handlers[name]; !ok {
			return fmt.Errorf("configuration error: intent %q has no bound handler", name)
		}
	}
	return nil
}

// Dispatch invokes the handler for a command intent and formats the
// outcome. Handler failures come back as stable messages; raw internal
// errors never reach the user.
func (d *Dispatcher) Dispatch(ctx context.Context, intent core.Intent) string {
	if reason, ok := intent.Slots[core.SlotError]; ok {
		return fmt.Sprintf("I couldn't work out the parameters for that: %s.", reason)
	}

	h, ok := d.handlers[intent.Name]
	if !ok {
		// Validate runs at startup, so this indicates a programming
		// error rather than user input.
		log.FromCtx(ctx).Error().Str("intent", intent.Name).Msg("dispatch without handler")
		return "I don't know how to do that yet."
	}

	result := h.Invoke(ctx, intent.Slots)
	if !result.OK {
		log.FromCtx(ctx).Warn().
			Str("intent", intent.Name).
			Str("reason", result.Reason).
			Msg("command failed")
		return fmt.Sprintf("I couldn't do that: %s.", result.Reason)
	}
	return result.Message
}
