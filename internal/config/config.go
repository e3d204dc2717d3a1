package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MEDNSKTEST"

// UI modes.
const (
	UIAuto  = "auto"
	UIPlain = "plain"
	UITUI   = "tui"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration loaded from flags, environment
// variables and an optional config file.
type Config struct {
	BankDir        string `mapstructure:"bank_dir"`        // directory with <name>.txt banks
	ProgressDir    string `mapstructure:"progress_dir"`    // directory for <name>.progress.json
	QuestionsLimit int    `mapstructure:"questions_limit"` // questions per session
	ShuffleAnswers bool   `mapstructure:"shuffle_answers"` // randomize option order
	TrackProgress  bool   `mapstructure:"track_progress"`  // skip questions answered before
	UI             string `mapstructure:"ui"`              // auto, plain or tui
	DB             string `mapstructure:"db"`              // history database path, empty = default
	History        bool   `mapstructure:"history"`         // record finished sessions
	Verbose        bool   `mapstructure:"verbose"`         // debug logging
}

// keys lists every configuration key; each may be bound to a flag of the
// same name.
var keys = []string{
	"bank_dir",
	"progress_dir",
	"questions_limit",
	"shuffle_answers",
	"track_progress",
	"ui",
	"db",
	"history",
	"verbose",
}

// Load reads configuration by priority: flags that were set, MEDNSKTEST_*
// environment variables (also from a .env file), the config file, defaults.
// configFile overrides the config file lookup; flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	// Load .env file if it exists.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range keys {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	} else {
		v.SetConfigName("mednsktest")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := configHome(); dir != "" {
			v.AddConfigPath(filepath.Join(dir, "mednsktest"))
		}
		if err := v.ReadInConfig(); err != nil {
			var fileLookupErr viper.ConfigFileNotFoundError
			if !errors.As(err, &fileLookupErr) {
				return nil, fmt.Errorf("error loading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.QuestionsLimit < 1 {
		return fmt.Errorf("%w: questions_limit must be a positive integer, got %d", ErrInvalidConfig, c.QuestionsLimit)
	}
	if !slices.Contains([]string{UIAuto, UIPlain, UITUI}, c.UI) {
		return fmt.Errorf("%w: ui must be one of auto, plain, tui, got %q", ErrInvalidConfig, c.UI)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bank_dir", "banks")
	v.SetDefault("progress_dir", ".")
	v.SetDefault("questions_limit", 50)
	v.SetDefault("shuffle_answers", false)
	v.SetDefault("track_progress", false)
	v.SetDefault("ui", UIAuto)
	v.SetDefault("db", "")
	v.SetDefault("history", true)
	v.SetDefault("verbose", false)
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}
