package config

import "github.com/johnhooks/highlighter/internal/foundation/normalization"

// OutputFormat selects how structured command output is printed.
type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatText OutputFormat = "text"
)

var outputFormatNormalizer = normalization.New("output format", map[string]OutputFormat{
	"json": OutputFormatJSON,
	"yaml": OutputFormatYAML,
	"yml":  OutputFormatYAML,
	"text": OutputFormatText,
}, OutputFormatJSON)

// ParseOutputFormat validates raw as an output format. An empty string yields json.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	return outputFormatNormalizer.NormalizeWithValidation(raw)
}
