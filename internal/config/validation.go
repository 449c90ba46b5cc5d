package config

import (
	"log/slog"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/johnhooks/highlighter/internal/foundation"
	"github.com/johnhooks/highlighter/internal/foundation/errors"
)

// normalize case-folds enumerations and fills blanks left by the YAML file.
func (c *Config) normalize() error {
	format, err := ParseOutputFormat(string(c.Output.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid output.format").UserAction().Build()
	}
	c.Output.Format = format

	if raw := string(c.Logging.Level); !logLevelNormalizer.IsValid(raw) && raw != "" {
		slog.Warn("Unknown logging.level, using info", "value", raw)
	}
	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))

	defaults := Defaults().Highlight
	if c.Highlight.Style == "" {
		c.Highlight.Style = defaults.Style
	}
	if c.Highlight.FallbackLanguage == "" {
		c.Highlight.FallbackLanguage = defaults.FallbackLanguage
	}
	return nil
}

// Validate checks the configuration for values that cannot be used.
func (c *Config) Validate() error {
	return c.Highlight.Validate()
}

var highlightValidators = foundation.NewValidatorChain(
	foundation.Field(func(h HighlightConfig) string { return h.Style },
		foundation.InSet("highlight.style", styles.Registry)),
	foundation.Field(func(h HighlightConfig) int { return h.TabWidth },
		foundation.NonNegative("highlight.tab_width")),
)

// Validate checks the style exists in chroma's registry and the tab width is sane.
func (h HighlightConfig) Validate() error {
	return highlightValidators.Validate(h).ToError()
}
