// Package config loads drill settings from defaults, an optional YAML file,
// VOCABDRILL_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Dataset       string        `mapstructure:"dataset" validate:"required"`
	Mode          string        `mapstructure:"mode" validate:"oneof=words sentences"`
	Phases        int           `mapstructure:"phases" validate:"oneof=1 2"`
	Goal          string        `mapstructure:"goal" validate:"oneof=mastery coverage"`
	Sample        int           `mapstructure:"sample" validate:"gte=0"`
	Seed          uint64        `mapstructure:"seed"`
	ReaskInRound  bool          `mapstructure:"reask_in_round"`
	FreeTextFirst bool          `mapstructure:"free_text_first"`
	Choices       int           `mapstructure:"choices" validate:"gte=2,lte=4"`
	DBPath        string        `mapstructure:"db"`
	NoHistory     bool          `mapstructure:"no_history"`
	Plain         bool          `mapstructure:"plain"`
	Pause         time.Duration `mapstructure:"pause" validate:"gte=0"`
	Log           LogConfig     `mapstructure:"log"`
}

// LogConfig controls the diagnostic log. Stdout belongs to the terminal UI,
// so logs only go to a file.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}
