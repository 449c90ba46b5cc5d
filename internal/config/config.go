// Package config loads the highlighter's YAML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/johnhooks/highlighter/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when no path is given.
const DefaultPath = "highlighter.yaml"

// Config is the root configuration document.
type Config struct {
	Highlight HighlightConfig `yaml:"highlight"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// HighlightConfig controls how code blocks are tokenized and rendered.
type HighlightConfig struct {
	// Style is a chroma style name.
	Style            string `yaml:"style"`
	FallbackLanguage string `yaml:"fallback_language"`
	// SvelteEscape escapes characters that Svelte templates would
	// otherwise interpret inside the generated markup.
	SvelteEscape bool `yaml:"svelte_escape"`
	// TabWidth expands tabs to this many spaces. Zero keeps tabs.
	TabWidth int `yaml:"tab_width"`
}

// OutputConfig holds defaults for printed command output.
type OutputConfig struct {
	Format OutputFormat `yaml:"format"`
}

// LoggingConfig configures the process-wide slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Defaults returns a configuration with every field set to its default.
func Defaults() *Config {
	return &Config{
		Highlight: HighlightConfig{
			Style:            "github-dark",
			FallbackLanguage: "text",
			SvelteEscape:     true,
		},
		Output:  OutputConfig{Format: OutputFormatJSON},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

// Load reads the configuration at configPath. Keys missing from the file keep
// their defaults, and an empty path yields the defaults alone. Environment
// variables from .env files are loaded first and expanded in the YAML.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		slog.Debug("Environment files not loaded", "error", err)
	}

	cfg := Defaults()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, errors.NotFoundError("configuration file not found").
			WithContext("file", configPath).
			Build()
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("file", configPath).
			Build()
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
			WithContext("file", configPath).
			Fatal().
			UserAction().
			Build()
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes a configuration file holding the defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal default config").Build()
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("file", configPath).
			Build()
	}
	return nil
}
