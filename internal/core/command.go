package core

import "context"

// Handler is the single capability interface every command family
// (system control, app launcher, file manager, memory commands)
// implements. Handlers are synchronous; retry policy is their own
// concern.
type Handler interface {
	Invoke(ctx context.Context, slots Slots) HandlerResult
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, slots Slots) HandlerResult

func (f HandlerFunc) Invoke(ctx context.Context, slots Slots) HandlerResult {
	return f(ctx, slots)
}
