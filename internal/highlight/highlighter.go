package highlight

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/johnhooks/highlighter/internal/config"
	"github.com/johnhooks/highlighter/internal/foundation/errors"
	"github.com/johnhooks/highlighter/internal/logfields"
	"github.com/johnhooks/highlighter/internal/meta"
	"github.com/johnhooks/highlighter/internal/metrics"
)

// Highlighter turns source code into annotated HTML. It is immutable after
// New returns and safe for concurrent use.
type Highlighter struct {
	cfg        config.HighlightConfig
	style      *chroma.Style
	background string
	foreground string
	recorder   metrics.Recorder
	logger     *slog.Logger
}

// New validates cfg and resolves its chroma style.
func New(cfg config.HighlightConfig, opts ...Option) (*Highlighter, error) {
	if cfg.FallbackLanguage == "" {
		cfg.FallbackLanguage = config.Defaults().Highlight.FallbackLanguage
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	style := styles.Get(cfg.Style)
	bg := style.Get(chroma.Background)

	h := &Highlighter{
		cfg:        cfg,
		style:      style,
		background: bg.Background.String(),
		foreground: bg.Colour.String(),
		recorder:   metrics.NoopRecorder{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger.Debug("Highlighter ready", logfields.Style(cfg.Style), logfields.Language(cfg.FallbackLanguage))
	return h, nil
}

// Config returns the configuration the highlighter was built with.
func (h *Highlighter) Config() config.HighlightConfig {
	return h.cfg
}

// Highlight parses metaString and renders code in lang. An empty lang uses
// the configured fallback language.
func (h *Highlighter) Highlight(code, lang, metaString string) (string, error) {
	md := meta.Parse(metaString)
	md.Language = lang
	return h.HighlightFence(code, md)
}

// HighlightFence renders code using already parsed metadata. md.Language
// selects the lexer.
func (h *Highlighter) HighlightFence(code string, md meta.Metadata) (string, error) {
	start := time.Now()

	lang := md.Language
	if lang == "" {
		lang = h.cfg.FallbackLanguage
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		h.logger.Debug("No lexer for language, using plain text", logfields.Language(lang))
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	code = h.prepare(code)
	iter, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "failed to tokenize code block").
			WithContext("language", lang).
			Build()
	}
	lines := splitLines(iter.Tokens(), strings.Count(code, "\n")+1)

	pre := h.renderPre(lines, lang, md)

	var buf bytes.Buffer
	if err := html.Render(&buf, pre); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "failed to render code block").
			WithContext("language", lang).
			Build()
	}

	out := buf.Bytes()
	if h.cfg.SvelteEscape {
		out = SvelteEscape(out)
	}

	h.recorder.IncFence(lang)
	h.recorder.ObserveHighlightedLines(len(md.HighlightedLines))
	h.recorder.ObserveHighlightDuration(lang, time.Since(start))

	return string(out), nil
}

// prepare normalizes line endings, drops the final newline and expands tabs.
func (h *Highlighter) prepare(code string) string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.TrimSuffix(code, "\n")
	if h.cfg.TabWidth > 0 {
		code = strings.ReplaceAll(code, "\t", strings.Repeat(" ", h.cfg.TabWidth))
	}
	return code
}

// splitLines groups tokens by source line and strips the newlines. Lexers may
// append a newline to their input, so the result is trimmed or padded to
// exactly n lines.
func splitLines(tokens []chroma.Token, n int) [][]chroma.Token {
	lines := make([][]chroma.Token, 0, n)
	for _, line := range chroma.SplitTokensIntoLines(tokens) {
		var kept []chroma.Token
		for _, tok := range line {
			tok.Value = strings.TrimSuffix(tok.Value, "\n")
			if tok.Value != "" {
				kept = append(kept, tok)
			}
		}
		lines = append(lines, kept)
	}
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, nil)
	}
	return lines
}

func (h *Highlighter) renderPre(lines [][]chroma.Token, lang string, md meta.Metadata) *html.Node {
	pre := element(atom.Pre,
		html.Attribute{Key: "class", Val: "chroma"},
		html.Attribute{Key: "style", Val: "background-color: " + h.background},
	)
	if md.HasTitle() {
		pre.Attr = append(pre.Attr, html.Attribute{Key: "data-code-title", Val: md.Title})
	}

	code := element(atom.Code, html.Attribute{Key: "data-language", Val: lang})
	if md.ShowLineNumbers {
		code.Attr = append(code.Attr, html.Attribute{Key: "data-line-numbers"})
	}
	pre.AppendChild(code)

	for i, tokens := range lines {
		if i > 0 {
			code.AppendChild(text("\n"))
		}
		code.AppendChild(h.renderLine(i+1, tokens, md))
	}
	return pre
}

func (h *Highlighter) renderLine(line int, tokens []chroma.Token, md meta.Metadata) *html.Node {
	span := element(atom.Span,
		html.Attribute{Key: "class", Val: "line"},
		html.Attribute{Key: "data-line-number", Val: strconv.Itoa(md.DisplayNumber(line))},
	)
	if md.IsHighlighted(line) {
		span.Attr = append(span.Attr, html.Attribute{Key: "data-highlighted"})
	}

	if len(tokens) == 0 {
		span.AppendChild(text("\n"))
		return span
	}
	for _, tok := range tokens {
		ts := element(atom.Span, html.Attribute{Key: "style", Val: h.css(tok.Type)})
		ts.AppendChild(text(tok.Value))
		span.AppendChild(ts)
	}
	return span
}

// css returns the inline declarations for a token type.
func (h *Highlighter) css(tt chroma.TokenType) string {
	entry := h.style.Get(tt)

	colour := h.foreground
	if entry.Colour.IsSet() {
		colour = entry.Colour.String()
	}
	decls := []string{"color: " + colour}
	if entry.Italic == chroma.Yes {
		decls = append(decls, "font-style: italic")
	}
	if entry.Bold == chroma.Yes {
		decls = append(decls, "font-weight: bold")
	}
	if entry.Underline == chroma.Yes {
		decls = append(decls, "text-decoration: underline")
	}
	return strings.Join(decls, "; ")
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// String describes the highlighter for debug logs.
func (h *Highlighter) String() string {
	return fmt.Sprintf("highlighter(style=%s, fallback=%s, svelte=%t)", h.cfg.Style, h.cfg.FallbackLanguage, h.cfg.SvelteEscape)
}
