// Package config loads runtime settings from flags, environment, and an
// optional arena.yaml file, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	APIKey string `mapstructure:"api_key"`

	ProModel   string `mapstructure:"pro_model"`
	ConModel   string `mapstructure:"con_model"`
	JudgeModel string `mapstructure:"judge_model"`

	ProThinking   bool `mapstructure:"pro_thinking"`
	ConThinking   bool `mapstructure:"con_thinking"`
	JudgeThinking bool `mapstructure:"judge_thinking"`

	Preset string `mapstructure:"preset"`
	Rounds int    `mapstructure:"rounds"`

	ProStyle   string `mapstructure:"pro_style"`
	ConStyle   string `mapstructure:"con_style"`
	JudgeStyle string `mapstructure:"judge_style"`

	OutputDir string `mapstructure:"output_dir"`
	StylesDir string `mapstructure:"styles_dir"`
	Verbose   bool   `mapstructure:"verbose"`
}

// New builds a viper instance with defaults, environment bindings, and the
// optional config file wired up. Callers bind their flags onto it before
// calling Resolve.
func New() *viper.Viper {
	// ExperimentalBindStruct makes Unmarshal pick up AutomaticEnv variables
	// for keys without defaults, matching viper v1.21 default behavior
	// (v1.21 needs Go 1.23, newer than this toolchain).
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())

	v.SetDefault("preset", "standard")
	v.SetDefault("output_dir", "output")
	v.SetDefault("styles_dir", defaultStylesDir())

	v.SetEnvPrefix("ARENA")
	v.AutomaticEnv()
	// The conventional OpenRouter variable works without the prefix.
	v.BindEnv("api_key", "ARENA_API_KEY", "OPENROUTER_API_KEY")

	v.SetConfigName("arena")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := defaultStylesDir(); dir != "" {
		v.AddConfigPath(dir)
	}
	return v
}

// Resolve reads the optional config file and unmarshals the merged settings.
// A missing config file is not an error; a malformed one is.
func Resolve(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !asConfigFileNotFound(err, &notFound) {
			return nil, fmt.Errorf("config: reading arena.yaml: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &s, nil
}

func asConfigFileNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	if e, ok := err.(viper.ConfigFileNotFoundError); ok {
		*target = e
		return true
	}
	return false
}

// defaultStylesDir is where persisted styles and defaults live when the
// caller does not override it.
func defaultStylesDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".debatearena"
	}
	return filepath.Join(base, "debatearena")
}
