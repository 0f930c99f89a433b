package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/commandecho/internal/config"
	"github.com/sandevgo/commandecho/pkg/env"
	"github.com/sandevgo/commandecho/pkg/log"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Create the runtime directory and a starter .env",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		runtimePath := config.GetRuntimePath()
		if err := os.MkdirAll(runtimePath, 0755); err != nil {
			return fmt.Errorf("create runtime directory: %w", err)
		}

		envPath := filepath.Join(runtimePath, ".env")
		if _, err := os.Stat(envPath); err == nil {
			logger.Info().Str("path", envPath).Msg(".env already exists, leaving it alone")
			return nil
		}

		content, err := defaultEnv()
		if err != nil {
			return err
		}
		if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
			return fmt.Errorf("write .env: %w", err)
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Set ECHO_MODEL_PATH in the .env, then run 'echo start'.")
		return nil
	},
}

// defaultEnv renders a starter .env from the config defaults, plus a
// placeholder for the one required setting.
func defaultEnv() (string, error) {
	content := "# CommandEcho configuration\nECHO_MODEL_PATH=\n"

	for _, c := range []any{
		&config.AppConfig{RuntimePath: ".commandecho", HistoryBound: 10, EnableCLI: true},
		&config.LLMConfig{BaseURL: "http://127.0.0.1:8080", ContextLength: 4096, MaxTokens: 512, Temperature: 0.7},
		&config.MemoryConfig{EmbedBaseURL: "http://127.0.0.1:8081", TopK: 3, SimilarityFloor: 0.3},
		&config.VoiceConfig{WakeWord: "echo", SpeechRate: 200, SpeechVolume: 0.9},
	} {
		part, err := env.MarshalEnv(c)
		if err != nil {
			return "", err
		}
		content += part
	}
	return content, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
