// Package cli is the interactive text transport: a readline REPL that
// feeds typed utterances to the assistant.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/commandecho/internal/config"
	"github.com/sandevgo/commandecho/internal/core"
	"github.com/sandevgo/commandecho/internal/service/assistant"
	"github.com/sandevgo/commandecho/pkg/log"
)

type ReadLine struct {
	cfg       *config.AppConfig
	assistant *assistant.Assistant
	rl        *readline.Instance
}

func NewReadLine(a *assistant.Assistant, cfg *config.AppConfig) (*ReadLine, error) {
	runtimePath := cfg.GetRuntimePath()
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(runtimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:       cfg,
		assistant: a,
		rl:        rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("interactive chat started, type 'exit' to quit")

	fmt.Fprintf(r.rl.Stdout(), "%s\n", r.assistant.Greeting(ctx))

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == "reset" {
			r.assistant.Reset()
			fmt.Fprintln(r.rl.Stdout(), "Started a fresh conversation.")
			continue
		}
		if line == "" {
			continue
		}

		reply := r.assistant.Handle(ctx, core.NewUtterance(line, core.SourceText))
		fmt.Fprintf(r.rl.Stdout(), "%s\n", reply)
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
