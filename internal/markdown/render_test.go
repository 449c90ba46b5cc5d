package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"

	"github.com/johnhooks/highlighter/internal/config"
	"github.com/johnhooks/highlighter/internal/highlight"
)

func newHighlighter(t *testing.T) *highlight.Highlighter {
	t.Helper()
	h, err := highlight.New(config.Defaults().Highlight)
	require.NoError(t, err)
	return h
}

func TestRender(t *testing.T) {
	h := newHighlighter(t)
	body := []byte("# Hello\n\nSome *text*.\n\n```go {1} title=\"x.go\"\nfmt.Println(1)\n```\n")

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, body, h))
	out := buf.String()

	assert.Contains(t, out, "<h1>Hello</h1>")
	assert.Contains(t, out, "<em>text</em>")
	assert.Contains(t, out, `<pre class="chroma"`)
	assert.Contains(t, out, `data-code-title="x.go"`)
	assert.Contains(t, out, `<code data-language="go">`)
	assert.Contains(t, out, `data-highlighted=""`)
	assert.NotContains(t, out, "<pre><code")
}

func TestRender_PreservesFenceOrder(t *testing.T) {
	h := newHighlighter(t)

	var doc strings.Builder
	for i := range 20 {
		fmt.Fprintf(&doc, "```text showLineNumbers{%d}\nline\n```\n\n", i+100)
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []byte(doc.String()), h))
	out := buf.String()

	prev := -1
	for i := range 20 {
		idx := strings.Index(out, fmt.Sprintf(`data-line-number="%d"`, i+100))
		require.NotEqual(t, -1, idx, "fence %d missing", i)
		assert.Greater(t, idx, prev, "fence %d out of order", i)
		prev = idx
	}
}

func TestRender_UnlabeledFenceUsesFallback(t *testing.T) {
	h := newHighlighter(t)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []byte("```\nplain\n```\n"), h))
	assert.Contains(t, buf.String(), `data-language="text"`)
}

func TestExtension(t *testing.T) {
	h := newHighlighter(t)
	md := goldmark.New(goldmark.WithExtensions(NewExtension(h)))

	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte("```py showLineNumbers{5}\nprint(1)\n```\n"), &buf))

	out := buf.String()
	assert.Contains(t, out, `<code data-language="py" data-line-numbers="">`)
	assert.Contains(t, out, `data-line-number="5"`)
}
