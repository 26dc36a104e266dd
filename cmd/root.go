package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/surfmath/internal/config"
	"github.com/abhisek/surfmath/internal/logging"
	"github.com/abhisek/surfmath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "surfmath",
	Short: "Surf-themed linear algebra quiz",
	Long: `Surf Math: solve 2x2 systems of linear equations dressed up as surf stories.

Questions come from an LLM when an API key is configured
(ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY)
and from the built-in generator otherwise.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String(config.FlagName("db"), "", "Path to SQLite database file (overrides SURFMATH_DB env var)")
	pf.Bool(config.FlagName("offline"), false, "Use the built-in question generator even when an API key is set")
	pf.String(config.FlagName("spot"), "", "Set every problem at this surf spot")
	pf.Uint64(config.FlagName("seed"), 0, "Seed for the built-in generator (0 = random)")
	pf.String(config.FlagName("llm.provider"), "", "LLM provider: anthropic, openai, gemini, openrouter or mock")
	pf.Int(config.FlagName("quiz.total_questions"), 0, "Questions per session")
	pf.String(config.FlagName("log.level"), "", "Log level: debug, info, warn, error or off")
	pf.String(config.FlagName("log.file"), "", `Log file path ("-" for stderr)`)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is what commands that touch the event log share.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
}

// loadConfig reads config with the command's flags bound over every other
// source. Only flags set on the command line take precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(config.Options{Flags: cmd.Flags()})
}

// openEnv loads config, builds the logger and opens the event log.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("opened event log", zap.String("path", dbPath))

	return &env{cfg: cfg, log: log, store: st}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("closing event log", zap.Error(err))
	}
	_ = e.log.Sync()
}
