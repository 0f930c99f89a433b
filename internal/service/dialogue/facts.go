package dialogue

import (
	"regexp"
	"strings"

	"github.com/sandevgo/commandecho/internal/core"
)

// factMatcher detects an explicit self-statement and turns it into a
// key/value fact. Same discipline as the intent router: an ordered
// list, first match wins, explicit slot capture. Extraction is
// deliberately NOT delegated to the language model, so nothing
// hallucinated ever reaches the memory store.
type factMatcher struct {
	pattern *regexp.Regexp
	extract func(match []string) (key, value string)
}

var factMatchers = []factMatcher{
	{
		pattern: regexp.MustCompile(`^(?:my name is|call me) ([a-z][a-z .'-]*)$`),
		extract: func(m []string) (string, string) { return "name", m[1] },
	},
	{
		pattern: regexp.MustCompile(`^my favou?rite ([a-z ]+?) is (.+)$`),
		extract: func(m []string) (string, string) { return "favorite " + m[1], m[2] },
	},
	{
		pattern: regexp.MustCompile(`^i live in (.+)$`),
		extract: func(m []string) (string, string) { return "location", m[1] },
	},
	{
		pattern: regexp.MustCompile(`^i work (?:as|at) (.+)$`),
		extract: func(m []string) (string, string) { return "work", m[1] },
	},
	{
		pattern: regexp.MustCompile(`^i (?:really )?(?:prefer|like|love) (.+)$`),
		extract: func(m []string) (string, string) { return "preference", m[1] },
	},
}

// extractFacts scans the user utterance for self-statements. Sentences
// are checked independently so "hi, my name is John" still yields the
// name fact. The first matching pattern per sentence wins.
func extractFacts(utterance string) []core.MemoryFact {
	var facts []core.MemoryFact
	seen := make(map[string]struct{})

	for _, sentence := range splitSentences(utterance) {
		for _, m := range factMatchers {
			match := m.pattern.FindStringSubmatch(sentence)
			if match == nil {
				continue
			}
			key, value := m.extract(match)
			if _, dup := seen[key]; dup {
				break
			}
			seen[key] = struct{}{}
			facts = append(facts, core.MemoryFact{
				Key:   key,
				Value: strings.TrimSpace(value),
			})
			break
		}
	}
	return facts
}

func splitSentences(text string) []string {
	parts := regexp.MustCompile(`[.,;!?]`).Split(strings.ToLower(text), -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
