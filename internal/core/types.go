package core

import "time"

const (
	EchoName    = "CommandEcho"
	EchoVersion = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Source tells where an utterance came from.
type Source string

const (
	SourceVoice Source = "voice"
	SourceText  Source = "text"
)

// Utterance is one piece of user input. Immutable once created.
type Utterance struct {
	Text      string
	Source    Source
	CreatedAt time.Time
}

func NewUtterance(text string, source Source) Utterance {
	return Utterance{
		Text:      text,
		Source:    source,
		CreatedAt: time.Now(),
	}
}

// IntentKind discriminates the two classification outcomes.
type IntentKind string

const (
	IntentCommand IntentKind = "command"
	IntentChat    IntentKind = "chat"
)

// Slots holds named parameters extracted from a command utterance.
// The reserved "error" key marks a pattern that matched but whose
// required parameter could not be parsed.
type Slots map[string]string

// SlotError is the reserved slot key for parameter parse failures.
const SlotError = "error"

// Intent is the classified purpose of an utterance: exactly one of a
// named command with slots, or free-form chat.
type Intent struct {
	Kind  IntentKind
	Name  string // command name, empty for chat
	Slots Slots  // nil for chat
	Text  string // original utterance text
}

func ChatIntent(text string) Intent {
	return Intent{Kind: IntentChat, Text: text}
}

func CommandIntent(name, text string, slots Slots) Intent {
	if slots == nil {
		slots = Slots{}
	}
	return Intent{Kind: IntentCommand, Name: name, Slots: slots, Text: text}
}

// HandlerResult is what a command handler produces.
type HandlerResult struct {
	OK      bool
	Message string // user-facing message on success
	Reason  string // short failure reason, never raw internal error text
}

func Success(message string) HandlerResult {
	return HandlerResult{OK: true, Message: message}
}

func Failure(reason string) HandlerResult {
	return HandlerResult{Reason: reason}
}

// ConversationTurn is one entry of the bounded per-session history.
type ConversationTurn struct {
	Role      string
	Text      string
	CreatedAt time.Time
}
