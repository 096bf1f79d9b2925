package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "VOCABDRILL"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"dataset":         "dataset",
	"mode":            "mode",
	"phases":          "phases",
	"goal":            "goal",
	"sample":          "sample",
	"seed":            "seed",
	"reask-in-round":  "reask_in_round",
	"free-text-first": "free_text_first",
	"choices":         "choices",
	"db":              "db",
	"no-history":      "no_history",
	"plain":           "plain",
	"pause":           "pause",
	"log-file":        "log.file",
	"log-level":       "log.level",
}

// Options tell Load where to look beyond defaults and the environment.
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string

	// Dir is searched for config.yaml when File is empty.
	// Defaults to DefaultDir().
	Dir string

	// Flags are bound for every flag listed in flagKeys that the set defines.
	Flags *pflag.FlagSet
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset", "food")
	v.SetDefault("mode", "words")
	v.SetDefault("phases", 2)
	v.SetDefault("goal", "mastery")
	v.SetDefault("sample", 20)
	v.SetDefault("seed", 0)
	v.SetDefault("reask_in_round", false)
	v.SetDefault("free_text_first", false)
	v.SetDefault("choices", 4)
	v.SetDefault("db", "")
	v.SetDefault("no_history", false)
	v.SetDefault("plain", false)
	v.SetDefault("pause", "0s")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load builds and validates the configuration.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := readFile(v, opts); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(v *viper.Viper, opts Options) error {
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", opts.File, err)
		}
		return nil
	}

	dir := opts.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			// No home directory: run on defaults and environment.
			return nil
		}
		dir = d
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Validate checks field constraints and cross-field rules.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Goal == "coverage" && cfg.Mode != "sentences" {
		return errors.New("invalid config: goal coverage requires mode sentences")
	}
	return nil
}

// DefaultDir resolves the config directory:
// 1. $XDG_CONFIG_HOME/vocabdrill
// 2. ~/.config/vocabdrill
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "vocabdrill"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "vocabdrill"), nil
}
