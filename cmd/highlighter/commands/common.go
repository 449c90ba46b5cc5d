// Package commands implements the highlighter command line interface.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/johnhooks/highlighter/internal/config"
	"github.com/johnhooks/highlighter/internal/foundation/errors"
	"github.com/johnhooks/highlighter/internal/logfields"
	"github.com/johnhooks/highlighter/internal/version"
)

// Global carries process-wide state shared by every subcommand.
type Global struct {
	Out    io.Writer
	Err    io.Writer
	In     io.Reader
	Logger *slog.Logger
	Config *config.Config
}

// NewGlobal returns a Global wired to the standard streams.
func NewGlobal() *Global {
	return &Global{
		Out:    os.Stdout,
		Err:    os.Stderr,
		In:     os.Stdin,
		Logger: slog.Default(),
	}
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (defaults to ./highlighter.yaml when present)" env:"HIGHLIGHTER_CONFIG"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text or json), overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Meta      MetaCmd      `cmd:"" help:"Parse a code fence meta string and print the metadata"`
	Tokens    TokensCmd    `cmd:"" help:"Print the tokens of a code fence meta string"`
	Highlight HighlightCmd `cmd:"" help:"Highlight source code as HTML"`
	Render    RenderCmd    `cmd:"" help:"Render a Markdown file to HTML with highlighted code fences"`
	Lint      LintCmd      `cmd:"" help:"Check code fence metadata in Markdown files"`
	Init      InitCmd      `cmd:"" help:"Write a default configuration file"`
}

// New builds the kong parser for cli. ctx is bound for commands that block.
func New(ctx context.Context, cli *CLI, g *Global, opts ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name("highlighter"),
		kong.Description("Parse code fence metadata and render syntax highlighted HTML."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(g, cli),
		kong.BindTo(ctx, (*context.Context)(nil)),
	}
	return kong.New(cli, append(base, opts...)...)
}

// AfterApply runs after flag parsing; loads configuration and sets up logging once.
func (c *CLI) AfterApply(kctx *kong.Context, g *Global) error {
	cfg := config.Defaults()
	if kctx.Command() != "init" {
		loaded, err := config.Load(c.configPath())
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.LogFormat != "" {
		cfg.Logging.Format = config.NormalizeLogFormat(c.LogFormat)
	}

	g.Config = cfg
	g.Logger = cfg.Logging.NewLogger(g.Err, c.Verbose)
	slog.SetDefault(g.Logger)
	g.Logger.Debug("Starting", logfields.Command(kctx.Command()))
	return nil
}

// configPath resolves the configuration file: the flag wins, then
// ./highlighter.yaml if it exists, otherwise none.
func (c *CLI) configPath() string {
	if c.Config != "" {
		return c.Config
	}
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return config.DefaultPath
	}
	return ""
}

// writeStructured prints v as JSON or YAML.
func writeStructured(w io.Writer, format config.OutputFormat, v any) error {
	switch format {
	case config.OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to encode yaml").Build()
		}
		return enc.Close()
	case config.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to encode json").Build()
		}
		return nil
	default:
		return errors.ValidationError(fmt.Sprintf("unsupported output format %q", format)).Build()
	}
}

// writeOutput writes data to path, or to g.Out when path is empty.
func writeOutput(g *Global, path string, data []byte) error {
	if path == "" {
		_, err := g.Out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
			WithContext("file", path).
			Build()
	}
	return nil
}

// readInput reads path, or g.In when path is empty or "-".
func readInput(g *Global, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(g.In)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read stdin").Build()
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.NotFoundError("input file not found").WithContext("file", path).Build()
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read input").
			WithContext("file", path).
			Build()
	}
	return data, nil
}
