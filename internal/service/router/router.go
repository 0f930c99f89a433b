// Package router classifies utterances into command intents with
// extracted slots, or free-form chat. Matching is an explicit ordered
// list of pattern records evaluated first-match-wins, so registration
// order is the tie-break: more specific patterns go first.
package router

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sandevgo/commandecho/internal/core"
)

// Matcher ties a compiled pattern to an intent name and a slot
// extractor over the regexp match groups.
type Matcher struct {
	Intent  string
	Pattern *regexp.Regexp
	Extract func(match []string) (core.Slots, error)
}

type Router struct {
	matchers []Matcher
}

func New(matchers []Matcher) *Router {
	return &Router{matchers: matchers}
}

func NewDefault() *Router {
	return New(defaultMatchers())
}

// Classify runs the matchers in registration order against the
// normalized utterance. A pattern that matches but whose required slot
// fails to parse still yields a Command intent, carrying the reserved
// error slot: a malformed parameter must surface as a parameter error,
// not fall through into conversation.
func (r *Router) Classify(u core.Utterance) core.Intent {
	text := normalize(u.Text)

	for _, m := range r.matchers {
		match := m.Pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		slots, err := m.Extract(match)
		if err != nil {
			return core.CommandIntent(m.Intent, u.Text, core.Slots{core.SlotError: err.Error()})
		}
		return core.CommandIntent(m.Intent, u.Text, slots)
	}

	return core.ChatIntent(u.Text)
}

// IntentNames lists every registered intent, in order, for the startup
// consistency check against the dispatcher.
func (r *Router) IntentNames() []string {
	names := make([]string, 0, len(r.matchers))
	seen := make(map[string]struct{}, len(r.matchers))
	for _, m := range r.matchers {
		if _, ok := seen[m.Intent]; ok {
			continue
		}
		seen[m.Intent] = struct{}{}
		names = append(names, m.Intent)
	}
	return names
}

// normalize lowercases and strips surrounding space and trailing
// punctuation. Wake-word stripping is the caller's job.
func normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.ReplaceAll(text, "’", "'")
	return strings.TrimRight(text, "?!. ")
}

// capture builds the common extractor: one slot per capture group, in
// order. Empty groups are skipped.
func capture(names ...string) func(match []string) (core.Slots, error) {
	return func(match []string) (core.Slots, error) {
		slots := core.Slots{}
		for i, name := range names {
			if i+1 < len(match) && match[i+1] != "" {
				slots[name] = strings.TrimSpace(match[i+1])
			}
		}
		return slots, nil
	}
}

// captureInt is capture for a single slot whose value must be an
// integer, e.g. a volume level.
func captureInt(name string) func(match []string) (core.Slots, error) {
	return func(match []string) (core.Slots, error) {
		value := strings.TrimSpace(match[1])
		if _, err := strconv.Atoi(value); err != nil {
			return nil, fmt.Errorf("%s must be a number, got %q", name, value)
		}
		return core.Slots{name: value}, nil
	}
}
