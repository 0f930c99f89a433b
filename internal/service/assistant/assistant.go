// Package assistant is the top-level orchestrator: it classifies each
// utterance, branches to the command dispatcher or the dialogue engine,
// and owns the bounded per-session conversation history.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sandevgo/commandecho/internal/core"
	"github.com/sandevgo/commandecho/internal/service/dialogue"
	"github.com/sandevgo/commandecho/pkg/log"
)

type Classifier interface {
	Classify(u core.Utterance) core.Intent
}

type Commander interface {
	Dispatch(ctx context.Context, intent core.Intent) string
}

type Responder interface {
	Respond(ctx context.Context, utterance string, history []core.ConversationTurn) dialogue.Reply
}

type Assistant struct {
	router     Classifier
	dispatcher Commander
	engine     Responder
	facts      core.FactsRepository
	snippets   core.SnippetsRepository
	turns      core.TurnsRepository

	sessionID    string
	historyBound int

	// Guards history: a session processes utterances one at a time so
	// the turn sequence and the memory store observe a single order.
	mu      sync.Mutex
	history []core.ConversationTurn
}

func New(
	router Classifier,
	dispatcher Commander,
	engine Responder,
	facts core.FactsRepository,
	snippets core.SnippetsRepository,
	turns core.TurnsRepository,
	historyBound int,
) *Assistant {
	return &Assistant{
		router:       router,
		dispatcher:   dispatcher,
		engine:       engine,
		facts:        facts,
		snippets:     snippets,
		turns:        turns,
		sessionID:    uuid.NewString(),
		historyBound: historyBound,
	}
}

func (a *Assistant) SessionID() string {
	return a.sessionID
}

// Handle processes one utterance and returns the response text. No
// error originating from a single utterance ever escapes: failures
// surface as user-readable messages and the session continues.
func (a *Assistant) Handle(ctx context.Context, u core.Utterance) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	intent := a.router.Classify(u)

	if intent.Kind == core.IntentCommand {
		log.FromCtx(ctx).Debug().Str("intent", intent.Name).Msg("dispatching command")
		return a.dispatcher.Dispatch(ctx, intent)
	}

	reply := a.engine.Respond(ctx, u.Text, a.history)
	if reply.Fallback {
		// Degraded turn: no history, no facts, no snippet. The next
		// utterance starts from exactly the state this one found.
		return reply.Text
	}

	a.appendTurn(ctx, core.ConversationTurn{Role: core.RoleUser, Text: u.Text, CreatedAt: u.CreatedAt})
	a.appendTurn(ctx, core.ConversationTurn{Role: core.RoleAssistant, Text: reply.Text})
	a.commitFacts(ctx, reply.Facts)
	a.persistExchange(ctx, u.Text, reply.Text)

	return reply.Text
}

// Greeting personalizes the session opener with the stored name fact.
func (a *Assistant) Greeting(ctx context.Context) string {
	name, err := a.facts.GetFact(ctx, "name")
	if err != nil {
		if !errors.Is(err, core.ErrFactNotFound) {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to load name fact")
		}
		return "Hello! I'm CommandEcho, your personal assistant. How can I help you today?"
	}
	return fmt.Sprintf("Hello %s, CommandEcho is ready. How can I assist you today?", name)
}

// Reset clears the in-memory history and starts a fresh session.
func (a *Assistant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = nil
	a.sessionID = uuid.NewString()
}

// appendTurn adds to the bounded in-memory ring (oldest evicted first)
// and to the durable conversation log. Log failures are warnings: the
// in-memory session stays coherent either way.
func (a *Assistant) appendTurn(ctx context.Context, turn core.ConversationTurn) {
	a.history = append(a.history, turn)
	if len(a.history) > a.historyBound {
		a.history = a.history[len(a.history)-a.historyBound:]
	}

	if err := a.turns.AddTurn(ctx, a.sessionID, turn); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to persist turn")
	}
}

func (a *Assistant) commitFacts(ctx context.Context, facts []core.MemoryFact) {
	for _, f := range facts {
		if err := a.facts.UpsertFact(ctx, f.Key, f.Value); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("key", f.Key).Msg("failed to store fact")
			continue
		}
		log.FromCtx(ctx).Info().Str("key", f.Key).Msg("fact remembered")
	}
}

// persistExchange writes the turn pair as a searchable memory snippet.
// An embedding outage skips persistence for this turn only.
func (a *Assistant) persistExchange(ctx context.Context, utterance, response string) {
	text := fmt.Sprintf("User: %s\nAssistant: %s", utterance, response)
	if _, err := a.snippets.AddSnippet(ctx, text); err != nil {
		if errors.Is(err, core.ErrEmbedding) {
			log.FromCtx(ctx).Warn().Err(err).Msg("embedding unavailable, skipping memory for this turn")
			return
		}
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to store exchange snippet")
	}
}
