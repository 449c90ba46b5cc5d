package commands

import (
	"encoding/json"
	"fmt"

	"github.com/johnhooks/highlighter/internal/config"
	"github.com/johnhooks/highlighter/internal/foundation/errors"
	"github.com/johnhooks/highlighter/internal/meta"
)

// MetaCmd implements the 'meta' command.
type MetaCmd struct {
	Meta   string `arg:"" help:"Meta string, for example 'title=\"app.js\" {1-3} showLineNumbers'"`
	Lang   string `short:"l" help:"Language to report alongside the metadata"`
	Info   bool   `help:"Treat the argument as a full info string whose first word is the language"`
	Format string `short:"f" help:"Output format (json, yaml or text); defaults to output.format"`
}

// Run executes the meta command.
func (m *MetaCmd) Run(g *Global) error {
	format := g.Config.Output.Format
	if m.Format != "" {
		f, err := config.ParseOutputFormat(m.Format)
		if err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid --format").UserAction().Build()
		}
		format = f
	}

	md := meta.Parse(m.Meta)
	if m.Info {
		md = meta.ParseInfo(m.Meta)
	}
	if m.Lang != "" {
		md.Language = m.Lang
	}

	if format == config.OutputFormatText {
		_, err := fmt.Fprintln(g.Out, md.String())
		return err
	}
	return writeStructured(g.Out, format, md)
}

// TokensCmd implements the 'tokens' command.
type TokensCmd struct {
	Meta   string `arg:"" help:"Meta string to tokenize"`
	Format string `short:"f" default:"text" enum:"text,json" help:"Output format (text or json)"`
}

// Run executes the tokens command.
func (t *TokensCmd) Run(g *Global) error {
	tokens := meta.Lex(t.Meta)

	if t.Format == "json" {
		if tokens == nil {
			tokens = []meta.Token{}
		}
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(tokens)
	}

	for _, tok := range tokens {
		if _, err := fmt.Fprintln(g.Out, tok); err != nil {
			return err
		}
	}
	if tok, ok := meta.Unterminated(tokens); ok {
		g.Logger.Warn("Unterminated delimiter", "delimiter", tok.Text, "column", tok.Start+1)
	}
	return nil
}
