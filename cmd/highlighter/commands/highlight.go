package commands

import (
	"path/filepath"
	"time"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/johnhooks/highlighter/internal/highlight"
	"github.com/johnhooks/highlighter/internal/logfields"
)

// HighlightCmd implements the 'highlight' command.
type HighlightCmd struct {
	File   string `arg:"" optional:"" help:"Source file to highlight; reads stdin when omitted or '-'"`
	Lang   string `short:"l" help:"Language of the code; detected from the file name when omitted"`
	Meta   string `short:"m" help:"Code fence meta string, for example '{2-4} showLineNumbers'"`
	Output string `short:"o" help:"Write HTML to this file instead of stdout"`
}

// Run executes the highlight command.
func (c *HighlightCmd) Run(g *Global) error {
	code, err := readInput(g, c.File)
	if err != nil {
		return err
	}

	lang := c.Lang
	if lang == "" && c.File != "" && c.File != "-" {
		lang = detectLanguage(c.File)
	}

	h, err := highlight.New(g.Config.Highlight, highlight.WithLogger(g.Logger))
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := h.Highlight(string(code), lang, c.Meta)
	if err != nil {
		return err
	}
	g.Logger.Debug("Highlighted code",
		logfields.Language(lang),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))

	return writeOutput(g, c.Output, []byte(out+"\n"))
}

// detectLanguage returns the first chroma alias of the lexer matching the
// file name, or "" when none matches.
func detectLanguage(path string) string {
	l := lexers.Match(filepath.Base(path))
	if l == nil {
		return ""
	}
	if aliases := l.Config().Aliases; len(aliases) > 0 {
		return aliases[0]
	}
	return l.Config().Name
}
