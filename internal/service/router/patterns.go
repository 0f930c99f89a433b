package router

import (
	"regexp"

	"github.com/sandevgo/commandecho/internal/core"
)

// Intent names shared with the dispatcher registration table.
const (
	IntentShiftVolume   = "shift_volume"
	IntentSetVolume     = "set_volume"
	IntentSetBrightness = "set_brightness"
	IntentSystemInfo    = "system_info"
	IntentFindFile      = "find_file"
	IntentCloseApp      = "close_app"
	IntentOpenApp       = "open_app"
	IntentRememberFact  = "remember_fact"
	IntentRecallFact    = "recall_fact"
)

// defaultMatchers is the built-in command set. Order matters:
// "turn the volume up" must win over the generic set_volume pattern,
// "remember that x is y" over the app patterns, and every specific
// phrase over the open/close catch-alls at the bottom.
func defaultMatchers() []Matcher {
	return []Matcher{
		{
			Intent:  IntentShiftVolume,
			Pattern: regexp.MustCompile(`^turn (?:the )?volume (up|down)$`),
			Extract: capture("direction"),
		},
		{
			Intent:  IntentSetVolume,
			Pattern: regexp.MustCompile(`^(?:set (?:the )?volume to|volume) ([^\s%]+)\s*(?:%|percent)?$`),
			Extract: captureInt("level"),
		},
		{
			Intent:  IntentSetBrightness,
			Pattern: regexp.MustCompile(`^(?:set (?:the )?brightness to|brightness) ([^\s%]+)\s*(?:%|percent)?$`),
			Extract: captureInt("level"),
		},
		{
			Intent:  IntentSystemInfo,
			Pattern: regexp.MustCompile(`^(?:what(?:'s| is) the (time|date)|what (time) is it|current (time)|(battery)(?: status| level)?|(storage)(?: space)?|system (?:info|status)|how is my pc|full system report)$`),
			Extract: systemTopic,
		},
		{
			Intent:  IntentFindFile,
			Pattern: regexp.MustCompile(`^(?:find file|find|search for|locate) (.+)$`),
			Extract: capture("name"),
		},
		{
			Intent:  IntentRememberFact,
			Pattern: regexp.MustCompile(`^remember that (.+?) is (.+)$`),
			Extract: capture("key", "value"),
		},
		{
			Intent:  IntentRecallFact,
			Pattern: regexp.MustCompile(`^(?:do you remember|what(?:'s| is) my) (.+)$`),
			Extract: capture("key"),
		},
		{
			Intent:  IntentCloseApp,
			Pattern: regexp.MustCompile(`^(?:close|quit) (.+)$`),
			Extract: capture("app"),
		},
		{
			Intent:  IntentOpenApp,
			Pattern: regexp.MustCompile(`^(?:open|launch|start) (.+)$`),
			Extract: capture("app"),
		},
	}
}

// systemTopic folds the alternation groups of the system_info pattern
// into a single topic slot, defaulting to a general status report.
func systemTopic(match []string) (core.Slots, error) {
	for _, group := range match[1:] {
		if group != "" {
			return core.Slots{"topic": group}, nil
		}
	}
	return core.Slots{"topic": "system"}, nil
}
