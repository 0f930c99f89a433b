package dialogue

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/commandecho/internal/core"
)

// DefaultPreamble is the system instruction block. It is never
// truncated under budget pressure.
const DefaultPreamble = "You are CommandEcho, a helpful offline assistant running on the " +
	"user's own machine. You can control the system, find files and " +
	"remember things about the user. Keep responses concise and friendly."

// PromptBuilder assembles the per-turn prompt under a fixed token
// budget. Truncation policy, in order: retrieved snippets go first
// (lowest score dropped first), then conversation history (oldest
// dropped first). The preamble and the current utterance always
// survive intact.
type PromptBuilder struct {
	preamble string
	budget   int
	count    func(string) int
}

func NewPromptBuilder(preamble string, budgetTokens int) *PromptBuilder {
	return &PromptBuilder{
		preamble: preamble,
		budget:   budgetTokens,
		count:    newTokenCounter(),
	}
}

// newTokenCounter prefers a real BPE count. The encoding files may be
// unavailable on a fully offline box, so fall back to the ~4 chars per
// token heuristic rather than failing startup.
func newTokenCounter() func(string) int {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return estimateTokens
	}
	return func(text string) int {
		return len(enc.Encode(text, nil, nil))
	}
}

func estimateTokens(text string) int {
	const charsPerToken = 4
	return len(text)/charsPerToken + 1
}

// Build expects snippets ordered best-score-first and history in
// chronological order.
func (b *PromptBuilder) Build(utterance string, snippets []core.ScoredSnippet, history []core.ConversationTurn) string {
	fixed := b.count(b.preamble) + b.count(utteranceBlock(utterance))

	remaining := b.budget - fixed
	for b.sectionCost(snippets, history) > remaining {
		if len(snippets) > 0 {
			// Lowest score sits at the tail.
			snippets = snippets[:len(snippets)-1]
			continue
		}
		if len(history) > 0 {
			history = history[1:]
			continue
		}
		break
	}

	var sb strings.Builder
	sb.WriteString(b.preamble)

	if len(snippets) > 0 {
		sb.WriteString("\n\nThings I remember about the user:\n")
		for _, s := range snippets {
			sb.WriteString("- ")
			sb.WriteString(s.Snippet.Text)
			sb.WriteByte('\n')
		}
	}

	if len(history) > 0 {
		sb.WriteString("\nRecent conversation:\n")
		for _, turn := range history {
			sb.WriteString(roleLabel(turn.Role))
			sb.WriteString(": ")
			sb.WriteString(turn.Text)
			sb.WriteByte('\n')
		}
	}

	sb.WriteString("\n")
	sb.WriteString(utteranceBlock(utterance))
	return sb.String()
}

func (b *PromptBuilder) sectionCost(snippets []core.ScoredSnippet, history []core.ConversationTurn) int {
	cost := 0
	for _, s := range snippets {
		cost += b.count(s.Snippet.Text) + 2
	}
	for _, turn := range history {
		cost += b.count(turn.Text) + 4
	}
	return cost
}

func utteranceBlock(utterance string) string {
	return "User: " + utterance + "\nAssistant:"
}

func roleLabel(role string) string {
	if role == core.RoleAssistant {
		return "Assistant"
	}
	return "User"
}
