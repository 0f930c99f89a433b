package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/commandecho/internal/core"
	"github.com/sandevgo/commandecho/pkg/log"
)

// MemoryCommands exposes explicit remember/recall commands over the
// fact store. Unlike the dialogue fact extractor these are direct and
// always acknowledged.
type MemoryCommands struct {
	facts core.FactsRepository
}

func NewMemoryCommands(facts core.FactsRepository) *MemoryCommands {
	return &MemoryCommands{facts: facts}
}

func (m *MemoryCommands) RememberFact(ctx context.Context, slots core.Slots) core.HandlerResult {
	key, value := slots["key"], slots["value"]
	if key == "" || value == "" {
		return core.Failure("I need both a name and a value to remember")
	}

	if err := m.facts.UpsertFact(ctx, key, value); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("key", key).Msg("remember failed")
		return core.Failure("my memory is not available right now")
	}
	return core.Success(fmt.Sprintf("Got it. I'll remember that %s is %s.", key, value))
}

func (m *MemoryCommands) RecallFact(ctx context.Context, slots core.Slots) core.HandlerResult {
	key := slots["key"]
	if key == "" {
		return core.Failure("I need to know what to recall")
	}

	value, err := m.facts.GetFact(ctx, key)
	if errors.Is(err, core.ErrFactNotFound) {
		return core.Success(fmt.Sprintf("I don't have anything remembered for %s yet.", key))
	}
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("key", key).Msg("recall failed")
		return core.Failure("my memory is not available right now")
	}
	return core.Success(fmt.Sprintf("You told me %s is %s.", key, value))
}
