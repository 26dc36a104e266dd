package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/surfmath/internal/app"
	"github.com/abhisek/surfmath/internal/config"
	"github.com/abhisek/surfmath/internal/llm"
	"github.com/abhisek/surfmath/internal/problemgen"
	"github.com/abhisek/surfmath/internal/quiz"
	"github.com/abhisek/surfmath/internal/store"
)

// runApp opens the store, builds the quiz engine and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	eventRepo := e.store.EventRepo()
	provider, online := buildProvider(cmd.Context(), e.cfg, eventRepo, e.log)
	if !online && !e.cfg.Offline {
		fmt.Fprintln(os.Stderr, "LLM provider not configured; using the built-in surf stories.")
	}

	engine, err := quiz.NewEngine(e.cfg.Quiz, provider,
		quiz.WithEventRepo(eventRepo),
		quiz.WithLogger(e.log),
	)
	if err != nil {
		return err
	}

	// Only play defines --no-intro; the root command always shows the splash.
	noIntro, _ := cmd.Flags().GetBool("no-intro")

	return app.Run(app.Options{
		Engine:      engine,
		EventRepo:   eventRepo,
		Offline:     !online,
		Log:         e.log,
		SkipWelcome: noIntro,
	})
}

// buildProvider returns the guarded question provider and whether it is
// backed by an LLM. A provider that fails to initialize falls back to the
// built-in generator.
func buildProvider(ctx context.Context, cfg *config.Config, eventRepo store.EventRepo, log *zap.Logger) (*quiz.GuardedProvider, bool) {
	if cfg.LLMConfigured {
		p, err := llm.NewProvider(ctx, cfg.LLM, eventRepo, log)
		if err == nil {
			pcfg := problemgen.DefaultConfig()
			pcfg.Spot = cfg.Spot
			gen := problemgen.New(p, pcfg)
			log.Info("questions from llm",
				zap.String("provider", cfg.LLM.Provider),
				zap.String("spot", cfg.Spot),
			)
			return quiz.NewGuardedProvider(gen, gen, cfg.Quiz.MaxQuestionAttempts, log), true
		}
		log.Warn("llm provider unavailable", zap.Error(err))
		fmt.Fprintln(os.Stderr, "LLM provider not available:", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Info("questions from built-in generator", zap.Uint64("seed", seed))
	gen := problemgen.NewLocalGenerator(seed)
	return quiz.NewGuardedProvider(gen, problemgen.LocalExplainer{}, cfg.Quiz.MaxQuestionAttempts, log), false
}
