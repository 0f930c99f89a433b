package router

import (
	"regexp"
	"testing"

	"github.com/sandevgo/commandecho/internal/core"
)

func classify(text string) core.Intent {
	return NewDefault().Classify(core.NewUtterance(text, core.SourceText))
}

func TestClassify_Commands(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantIntent string
		wantSlots  core.Slots
	}{
		{
			name:       "set volume",
			text:       "set volume to 50",
			wantIntent: IntentSetVolume,
			wantSlots:  core.Slots{"level": "50"},
		},
		{
			name:       "set volume with filler",
			text:       "Set the volume to 80%",
			wantIntent: IntentSetVolume,
			wantSlots:  core.Slots{"level": "80"},
		},
		{
			name:       "short volume form",
			text:       "volume 25",
			wantIntent: IntentSetVolume,
			wantSlots:  core.Slots{"level": "25"},
		},
		{
			name:       "volume up",
			text:       "turn the volume up",
			wantIntent: IntentShiftVolume,
			wantSlots:  core.Slots{"direction": "up"},
		},
		{
			name:       "brightness",
			text:       "set brightness to 70",
			wantIntent: IntentSetBrightness,
			wantSlots:  core.Slots{"level": "70"},
		},
		{
			name:       "open app",
			text:       "open firefox",
			wantIntent: IntentOpenApp,
			wantSlots:  core.Slots{"app": "firefox"},
		},
		{
			name:       "launch app",
			text:       "Launch the calculator",
			wantIntent: IntentOpenApp,
			wantSlots:  core.Slots{"app": "the calculator"},
		},
		{
			name:       "close app",
			text:       "close spotify",
			wantIntent: IntentCloseApp,
			wantSlots:  core.Slots{"app": "spotify"},
		},
		{
			name:       "battery",
			text:       "battery status",
			wantIntent: IntentSystemInfo,
			wantSlots:  core.Slots{"topic": "battery"},
		},
		{
			name:       "time",
			text:       "what time is it?",
			wantIntent: IntentSystemInfo,
			wantSlots:  core.Slots{"topic": "time"},
		},
		{
			name:       "system status",
			text:       "how is my pc",
			wantIntent: IntentSystemInfo,
			wantSlots:  core.Slots{"topic": "system"},
		},
		{
			name:       "find file",
			text:       "find file report.pdf",
			wantIntent: IntentFindFile,
			wantSlots:  core.Slots{"name": "report.pdf"},
		},
		{
			name:       "remember fact",
			text:       "remember that my wifi password is hunter2",
			wantIntent: IntentRememberFact,
			wantSlots:  core.Slots{"key": "my wifi password", "value": "hunter2"},
		},
		{
			name:       "recall fact",
			text:       "do you remember my wifi password?",
			wantIntent: IntentRecallFact,
			wantSlots:  core.Slots{"key": "my wifi password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.text)
			if got.Kind != core.IntentCommand {
				t.Fatalf("Classify(%q).Kind = %v, want command", tt.text, got.Kind)
			}
			if got.Name != tt.wantIntent {
				t.Errorf("intent = %q, want %q", got.Name, tt.wantIntent)
			}
			if len(got.Slots) != len(tt.wantSlots) {
				t.Fatalf("slots = %v, want %v", got.Slots, tt.wantSlots)
			}
			for k, want := range tt.wantSlots {
				if got.Slots[k] != want {
					t.Errorf("slot %q = %q, want %q", k, got.Slots[k], want)
				}
			}
		})
	}
}

func TestClassify_Chat(t *testing.T) {
	for _, text := range []string{
		"what's the weather like",
		"tell me a joke",
		"how are you doing today",
		"why is the sky blue?",
	} {
		got := classify(text)
		if got.Kind != core.IntentChat {
			t.Errorf("Classify(%q) = %v, want chat", text, got)
		}
		if got.Text != text {
			t.Errorf("chat text = %q, want original %q", got.Text, text)
		}
	}
}

func TestClassify_SlotParseError(t *testing.T) {
	got := classify("set volume to eleven")
	if got.Kind != core.IntentCommand {
		t.Fatalf("slot failure must stay a command, got %v", got.Kind)
	}
	if got.Name != IntentSetVolume {
		t.Errorf("intent = %q, want %q", got.Name, IntentSetVolume)
	}
	if got.Slots[core.SlotError] == "" {
		t.Errorf("expected error slot, got %v", got.Slots)
	}
}

func TestClassify_RegistrationOrderWins(t *testing.T) {
	// Two overlapping patterns: the more specific one is registered
	// first and must win on input both would match.
	specific := Matcher{
		Intent:  "open_settings",
		Pattern: regexp.MustCompile(`^open settings$`),
		Extract: capture(),
	}
	general := Matcher{
		Intent:  "open_app",
		Pattern: regexp.MustCompile(`^open (.+)$`),
		Extract: capture("app"),
	}

	r := New([]Matcher{specific, general})
	u := core.NewUtterance("open settings", core.SourceText)

	if got := r.Classify(u); got.Name != "open_settings" {
		t.Errorf("first registered matcher should win, got %q", got.Name)
	}

	reversed := New([]Matcher{general, specific})
	if got := reversed.Classify(u); got.Name != "open_app" {
		t.Errorf("reversed registration should flip the winner, got %q", got.Name)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	got := classify("SET VOLUME TO 30")
	if got.Name != IntentSetVolume || got.Slots["level"] != "30" {
		t.Errorf("uppercase input should classify the same, got %v", got)
	}
}

func TestIntentNames_Deduplicated(t *testing.T) {
	names := NewDefault().IntentNames()
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate intent name %q", n)
		}
		seen[n] = true
	}
	for _, want := range []string{IntentSetVolume, IntentOpenApp, IntentSystemInfo, IntentRememberFact} {
		if !seen[want] {
			t.Errorf("missing intent %q in %v", want, names)
		}
	}
}
