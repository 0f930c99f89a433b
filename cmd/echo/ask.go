package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/commandecho/internal/core"
	"github.com/sandevgo/commandecho/pkg/log"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:           "ask [utterance]",
	Short:         "Process a single utterance and print the reply",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		_, a, closeDB := NewAssistant(ctx)
		defer func() {
			if err := closeDB(); err != nil {
				log.FromCtx(ctx).Warn().Err(err).Msg("failed to close database")
			}
		}()

		text := strings.Join(args, " ")
		reply := a.Handle(ctx, core.NewUtterance(text, core.SourceText))
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
