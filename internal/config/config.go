// Package config loads settings from flags, the environment, an optional
// .env file and an optional config.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/surfmath/internal/llm"
	"github.com/abhisek/surfmath/internal/logging"
	"github.com/abhisek/surfmath/internal/quiz"
	"github.com/abhisek/surfmath/internal/store"
)

// EnvPrefix prefixes every environment variable, e.g. SURFMATH_QUIZ_TOTAL_QUESTIONS.
const EnvPrefix = "SURFMATH"

// Config is the full application configuration.
type Config struct {
	LLM  llm.Config     `mapstructure:"llm"`
	Quiz quiz.Config    `mapstructure:"quiz"`
	Log  logging.Config `mapstructure:"log"`

	// DB is the SQLite event log path. Empty means store.DefaultDBPath.
	DB string `mapstructure:"db"`

	// Offline forces the built-in generator even when an API key exists.
	Offline bool `mapstructure:"offline"`

	// Spot pins generated problems to a surf spot.
	Spot string `mapstructure:"spot"`

	// Seed seeds the offline generator. Zero picks a random seed.
	Seed uint64 `mapstructure:"seed"`

	// LLMConfigured is true when a provider was selected or discovered.
	LLMConfigured bool `mapstructure:"-"`
}

// Options controls where Load looks.
type Options struct {
	// Flags are bound over every other source. Flag names match keys
	// with dots and underscores replaced by dashes, e.g. --llm-provider.
	Flags *pflag.FlagSet

	// ConfigDirs are searched for config.yaml. Nil means DefaultConfigDirs.
	ConfigDirs []string

	// EnvFiles are loaded into the process environment without
	// overriding variables already set. Nil means ".env".
	EnvFiles []string
}

// DefaultConfigDirs returns $XDG_CONFIG_HOME/surfmath and ./config.
func DefaultConfigDirs() []string {
	dirs := []string{}
	if d, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(d, "surfmath"))
	}
	return append(dirs, "config")
}

func defaults() map[string]any {
	l := llm.DefaultConfig()
	q := quiz.DefaultConfig()
	return map[string]any{
		"llm.provider":               "",
		"llm.timeout":                l.Timeout,
		"llm.anthropic.api_key":      "",
		"llm.anthropic.model":        l.Anthropic.Model,
		"llm.openai.api_key":         "",
		"llm.openai.model":           l.OpenAI.Model,
		"llm.openai.base_url":        "",
		"llm.gemini.api_key":         "",
		"llm.gemini.model":           l.Gemini.Model,
		"llm.gemini.base_url":        "",
		"llm.openrouter.api_key":     "",
		"llm.openrouter.model":       l.OpenRouter.Model,
		"llm.openrouter.base_url":    "",
		"llm.retry.max_attempts":     l.Retry.MaxAttempts,
		"llm.retry.initial_wait":     l.Retry.InitialWait,
		"llm.retry.max_wait":         l.Retry.MaxWait,
		"llm.retry.multiplier":       l.Retry.Multiplier,
		"quiz.total_questions":       q.TotalQuestions,
		"quiz.correct_bonus":         q.CorrectBonus,
		"quiz.max_question_attempts": q.MaxQuestionAttempts,
		"log.level":                  "info",
		"log.file":                   "",
		"db":                         "",
		"offline":                    false,
		"spot":                       "",
		"seed":                       0,
	}
}

// FlagName maps a config key to its flag name.
func FlagName(key string) string {
	return strings.NewReplacer(".", "-", "_", "-").Replace(key)
}

// Load reads the configuration and validates it.
func Load(opts Options) (*Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	dirs := opts.ConfigDirs
	if dirs == nil {
		dirs = DefaultConfigDirs()
	}
	for _, d := range dirs {
		v.AddConfigPath(d)
	}

	for k, val := range defaults() {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for k := range defaults() {
			if f := opts.Flags.Lookup(FlagName(k)); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.LLM, cfg.LLMConfigured = llm.Discover(cfg.LLM)
	if cfg.Offline {
		cfg.LLMConfigured = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the quiz rules and, when a provider is configured, its
// credentials.
func (c *Config) Validate() error {
	if err := c.Quiz.Validate(); err != nil {
		return err
	}
	if c.LLMConfigured {
		if err := c.LLM.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DBPath resolves the event log path and creates its directory.
func (c *Config) DBPath() (string, error) {
	if c.DB != "" {
		return c.DB, store.EnsureDir(c.DB)
	}
	return store.DefaultDBPath()
}
