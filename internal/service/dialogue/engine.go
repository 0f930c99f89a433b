// Package dialogue generates memory-augmented conversational replies.
package dialogue

import (
	"context"
	"strings"

	"github.com/sandevgo/commandecho/internal/core"
	"github.com/sandevgo/commandecho/pkg/log"
)

type Config struct {
	TopK            int
	SimilarityFloor float32
	BudgetTokens    int
	MaxTokens       int
	Temperature     float32
	FallbackReply   string
}

type Engine struct {
	snippets  core.SnippetsRepository
	completer core.Completer
	prompt    *PromptBuilder
	cfg       Config
}

// Reply is one chat turn's outcome. Fallback marks a degraded reply
// produced without the model; the caller must not commit facts or
// history for such a turn.
type Reply struct {
	Text     string
	Facts    []core.MemoryFact
	Fallback bool
}

func NewEngine(snippets core.SnippetsRepository, completer core.Completer, cfg Config) *Engine {
	return &Engine{
		snippets:  snippets,
		completer: completer,
		prompt:    NewPromptBuilder(DefaultPreamble, cfg.BudgetTokens),
		cfg:       cfg,
	}
}

// Respond retrieves relevant memory, assembles a bounded prompt,
// invokes the model and extracts new facts from the utterance. Memory
// retrieval failures degrade to an unaugmented reply; model failures
// degrade to the configured fallback text.
func (e *Engine) Respond(ctx context.Context, utterance string, history []core.ConversationTurn) Reply {
	logger := log.FromCtx(ctx)

	snippets := e.retrieve(ctx, utterance)
	prompt := e.prompt.Build(utterance, snippets, history)

	text, err := e.completer.Complete(ctx, prompt, e.cfg.MaxTokens, e.cfg.Temperature)
	if err != nil {
		logger.Warn().Err(err).Msg("completion failed, using fallback reply")
		return Reply{Text: e.cfg.FallbackReply, Fallback: true}
	}

	return Reply{
		Text:  cleanResponse(text),
		Facts: extractFacts(utterance),
	}
}

// retrieve searches the snippet store and applies the similarity
// floor. A weakly related memory misleads the model more than no
// memory, so low scores are discarded outright. Any store error
// degrades to no augmentation.
func (e *Engine) retrieve(ctx context.Context, utterance string) []core.ScoredSnippet {
	scored, err := e.snippets.SearchSnippets(ctx, utterance, e.cfg.TopK)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("memory search failed, continuing without it")
		return nil
	}

	kept := scored[:0]
	for _, s := range scored {
		if s.Score >= e.cfg.SimilarityFloor {
			kept = append(kept, s)
		}
	}
	return kept
}

// cleanResponse strips role prefixes the model sometimes parrots back
// and trims a trailing sentence fragment cut off by the token limit.
func cleanResponse(text string) string {
	text = strings.TrimSpace(text)
	for _, prefix := range []string{"CommandEcho:", "Assistant:", "AI:"} {
		text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
	}

	if i := strings.LastIndex(text, "."); i > 0 && i < len(text)-1 {
		if tail := strings.TrimSpace(text[i+1:]); len(tail) > 0 && len(tail) < 10 {
			text = text[:i+1]
		}
	}
	return text
}
