package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/commandecho/internal/config"
	"github.com/sandevgo/commandecho/internal/core"
	"github.com/sandevgo/commandecho/internal/providers/embed"
	"github.com/sandevgo/commandecho/internal/providers/llm"
	"github.com/sandevgo/commandecho/internal/providers/tools"
	"github.com/sandevgo/commandecho/internal/service/assistant"
	"github.com/sandevgo/commandecho/internal/service/dialogue"
	"github.com/sandevgo/commandecho/internal/service/dispatch"
	"github.com/sandevgo/commandecho/internal/service/router"
	"github.com/sandevgo/commandecho/internal/storage/sqlite"
	"github.com/sandevgo/commandecho/internal/transport/cli"
	"github.com/sandevgo/commandecho/internal/transport/voice"
	"github.com/sandevgo/commandecho/pkg/log"
	"github.com/sandevgo/commandecho/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	appCfg, a, closeDB := NewAssistant(ctx)
	services = append(services, srv.NewCleanup(closeDB))

	transports, err := initTransports(ctx, appCfg, a)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

// NewAssistant wires configuration, storage, providers and the
// interpretation pipeline into a ready assistant. Any wiring failure
// is fatal: a half-assembled assistant must never serve a turn.
func NewAssistant(ctx context.Context) (*config.AppConfig, *assistant.Assistant, func() error) {
	logger := log.FromCtx(ctx)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}
	config.WarnUnknownKeys(ctx, environ())

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)
	memCfg := config.NewMemoryConfig(ctx)

	// 2. Storage
	db, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	factsRepo := sqlite.NewFactsRepo(db)
	turnsRepo := sqlite.NewTurnsRepo(db)

	// 3. Embedder and snippet store
	embedder := embed.NewClient(memCfg)
	snippetsRepo := sqlite.NewSnippetsRepo(db, embedder)

	// 4. Completion provider. A missing model file is a configuration
	// error: refuse to start rather than fall back on every turn.
	completer, err := llm.NewLocal(llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize completion provider")
	}

	// 5. Command interpretation
	intents := router.NewDefault()
	dispatcher, err := initDispatcher(factsRepo, intents.IntentNames())
	if err != nil {
		logger.Fatal().Err(err).Msg("command registration is incomplete")
	}

	// 6. Dialogue engine
	engine := dialogue.NewEngine(snippetsRepo, completer, dialogue.Config{
		TopK:            memCfg.TopK,
		SimilarityFloor: memCfg.SimilarityFloor,
		BudgetTokens:    llmCfg.ContextLength - llmCfg.MaxTokens,
		MaxTokens:       llmCfg.MaxTokens,
		Temperature:     llmCfg.Temperature,
		FallbackReply:   llmCfg.FallbackReply,
	})

	// 7. Orchestrator
	a := assistant.New(intents, dispatcher, engine, factsRepo, snippetsRepo, turnsRepo, appCfg.HistoryBound)

	return appCfg, a, db.Close
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, error) {
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
		return nil, err
	}
	return sqlite.NewDB(ctx, cfg.GetDatabasePath())
}

// initDispatcher binds every built-in intent to its handler and
// validates the table against the router, so a matcher without a
// handler is caught at startup, not on first use.
func initDispatcher(facts *sqlite.FactsRepo, intentNames []string) (*dispatch.Dispatcher, error) {
	system := tools.NewSystemControl()
	apps := tools.NewAppLauncher()
	files := tools.NewFileManager()
	memory := tools.NewMemoryCommands(facts)

	d := dispatch.New()
	d.Register(router.IntentSetVolume, core.HandlerFunc(system.SetVolume))
	d.Register(router.IntentShiftVolume, core.HandlerFunc(system.ShiftVolume))
	d.Register(router.IntentSetBrightness, core.HandlerFunc(system.SetBrightness))
	d.Register(router.IntentSystemInfo, core.HandlerFunc(system.SystemInfo))
	d.Register(router.IntentOpenApp, core.HandlerFunc(apps.OpenApp))
	d.Register(router.IntentCloseApp, core.HandlerFunc(apps.CloseApp))
	d.Register(router.IntentFindFile, core.HandlerFunc(files.FindFile))
	d.Register(router.IntentRememberFact, core.HandlerFunc(memory.RememberFact))
	d.Register(router.IntentRecallFact, core.HandlerFunc(memory.RecallFact))

	if err := d.Validate(intentNames); err != nil {
		return nil, err
	}
	return d, nil
}

func initTransports(ctx context.Context, cfg *config.AppConfig, a *assistant.Assistant) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(a, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	if cfg.EnableVoice {
		voiceCfg := config.NewVoiceConfig(ctx)
		listener, err := voice.NewCommandListener(voiceCfg)
		if err != nil {
			return nil, err
		}
		speaker := voice.NewCommandSpeaker(voiceCfg)
		services = append(services, voice.NewLoop(a, voiceCfg, listener, speaker))
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

// environ flattens os.Environ into a map for unknown-option warnings.
func environ() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				vars[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	return vars
}
