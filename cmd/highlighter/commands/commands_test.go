package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnhooks/highlighter/internal/foundation/errors"
	"github.com/johnhooks/highlighter/internal/meta"
)

type cliRun struct {
	out    string
	stderr string
	err    error
}

func (r cliRun) exitCode() int {
	return errors.NewCLIErrorAdapter(false, slog.Default()).ExitCodeFor(r.err)
}

// runCLI executes args in a fresh temporary working directory.
func runCLI(t *testing.T, ctx context.Context, stdin string, args ...string) cliRun {
	t.Helper()

	var out, errOut bytes.Buffer
	cli := &CLI{}
	g := &Global{Out: &out, Err: &errOut, In: strings.NewReader(stdin), Logger: slog.Default()}

	parser, err := New(ctx, cli, g,
		kong.Writers(&out, &errOut),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }))
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err == nil {
		err = kctx.Run()
	}
	return cliRun{out: out.String(), stderr: errOut.String(), err: err}
}

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HIGHLIGHTER_CONFIG", "")
	return dir
}

func TestMetaCommand_JSON(t *testing.T) {
	inTempDir(t)
	run := runCLI(t, context.Background(), "", "meta", `title="app.js" {3,1-2} showLineNumbers{5}`)
	require.NoError(t, run.err)

	var md meta.Metadata
	require.NoError(t, json.Unmarshal([]byte(run.out), &md))
	assert.Equal(t, meta.Metadata{
		HighlightedLines: []int{3, 1, 2},
		LineNumberStart:  5,
		ShowLineNumbers:  true,
		Title:            "app.js",
	}, md)
}

func TestMetaCommand_Formats(t *testing.T) {
	inTempDir(t)

	run := runCLI(t, context.Background(), "", "meta", "--format", "yaml", "--lang", "go", `title="main.go"`)
	require.NoError(t, run.err)
	assert.Contains(t, run.out, "title: main.go\n")
	assert.Contains(t, run.out, "language: go\n")

	run = runCLI(t, context.Background(), "", "meta", "-f", "text", "{3,1,2} showLineNumbers")
	require.NoError(t, run.err)
	assert.Equal(t, "{1-3} showLineNumbers\n", run.out)

	run = runCLI(t, context.Background(), "", "meta", "--format", "xml", "{1}")
	require.Error(t, run.err)
	assert.Equal(t, 2, run.exitCode())
}

func TestMetaCommand_Info(t *testing.T) {
	inTempDir(t)
	run := runCLI(t, context.Background(), "", "meta", "--info", "svelte {2}")
	require.NoError(t, run.err)

	var md meta.Metadata
	require.NoError(t, json.Unmarshal([]byte(run.out), &md))
	assert.Equal(t, "svelte", md.Language)
	assert.Equal(t, []int{2}, md.HighlightedLines)
}

func TestMetaCommand_UsesConfiguredFormat(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "highlighter.yaml"), []byte("output:\n  format: yaml\n"), 0o600))

	run := runCLI(t, context.Background(), "", "meta", `title="x"`)
	require.NoError(t, run.err)
	assert.Contains(t, run.out, "title: x\n")
}

func TestConfigErrors(t *testing.T) {
	dir := inTempDir(t)

	run := runCLI(t, context.Background(), "", "--config", filepath.Join(dir, "missing.yaml"), "meta", "{1}")
	require.Error(t, run.err)
	assert.Equal(t, 2, run.exitCode())

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("highlight:\n  style: no-such-style\n"), 0o600))
	run = runCLI(t, context.Background(), "", "-c", bad, "meta", "{1}")
	require.Error(t, run.err)
	assert.True(t, errors.IsClassified(run.err))
}

func TestTokensCommand(t *testing.T) {
	inTempDir(t)

	run := runCLI(t, context.Background(), "", "tokens", `title="a"`)
	require.NoError(t, run.err)
	assert.Equal(t, strings.Join([]string{
		`keyword "title" [0,5)`,
		`symbol "=" [5,6)`,
		`symbol "\"" [6,7)`,
		`literal "a" [7,8)`,
		`symbol "\"" [8,9)`,
	}, "\n")+"\n", run.out)

	run = runCLI(t, context.Background(), "", "tokens", "--format", "json", "{1-2}")
	require.NoError(t, run.err)
	var tokens []map[string]any
	require.NoError(t, json.Unmarshal([]byte(run.out), &tokens))
	require.Len(t, tokens, 3)
	assert.Equal(t, "literal", tokens[1]["kind"])
	assert.Equal(t, "1-2", tokens[1]["text"])
}

func TestHighlightCommand(t *testing.T) {
	dir := inTempDir(t)

	run := runCLI(t, context.Background(), "let a = 1\nlet b = 2\n", "highlight", "--lang", "js", "--meta", "{2} showLineNumbers")
	require.NoError(t, run.err)
	assert.True(t, strings.HasPrefix(run.out, `<pre class="chroma"`))
	assert.Contains(t, run.out, `data-language="js"`)
	assert.Contains(t, run.out, `data-line-numbers=""`)
	assert.Equal(t, 1, strings.Count(run.out, `data-highlighted=""`))

	src := filepath.Join(dir, "main.go")
	out := filepath.Join(dir, "main.html")
	require.NoError(t, os.WriteFile(src, []byte("package main\n"), 0o644))
	run = runCLI(t, context.Background(), "", "highlight", src, "-o", out)
	require.NoError(t, run.err)
	assert.Empty(t, run.out)

	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), `data-language="go"`)

	run = runCLI(t, context.Background(), "", "highlight", filepath.Join(dir, "nope.go"))
	require.Error(t, run.err)
	assert.Equal(t, 2, run.exitCode())
}

const sampleDoc = "# Guide\n\n```js title=\"app.js\" {1}\nconst a = {}\n```\n"

func TestRenderCommand(t *testing.T) {
	dir := inTempDir(t)
	doc := filepath.Join(dir, "guide.md")
	require.NoError(t, os.WriteFile(doc, []byte(sampleDoc), 0o644))

	run := runCLI(t, context.Background(), "", "render", doc)
	require.NoError(t, run.err)
	assert.Contains(t, run.out, "<h1>Guide</h1>")
	assert.Contains(t, run.out, `data-code-title="app.js"`)
	assert.Contains(t, run.out, "&#123;")

	out := filepath.Join(dir, "guide.html")
	metricsFile := filepath.Join(dir, "metrics.prom")
	run = runCLI(t, context.Background(), "", "render", doc, "-o", out, "--metrics-file", metricsFile)
	require.NoError(t, run.err)

	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), `data-highlighted=""`)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `highlighter_fences_total{language="js"} 1`)
}

func TestRenderCommand_Frontmatter(t *testing.T) {
	dir := inTempDir(t)
	doc := filepath.Join(dir, "post.svx")
	require.NoError(t, os.WriteFile(doc, []byte("---\ntitle: Post\n---\n"+sampleDoc), 0o644))

	run := runCLI(t, context.Background(), "", "render", doc)
	require.NoError(t, run.err)
	assert.NotContains(t, run.out, "title: Post")
	assert.NotContains(t, run.out, "<hr>")
	assert.Contains(t, run.out, "<h1>Guide</h1>")

	require.NoError(t, os.WriteFile(doc, []byte("---\ntitle: Post\n"), 0o644))
	run = runCLI(t, context.Background(), "", "render", doc)
	require.Error(t, run.err)
	assert.Equal(t, 2, run.exitCode())
}

func TestRenderCommand_WatchStopsOnCancel(t *testing.T) {
	dir := inTempDir(t)
	doc := filepath.Join(dir, "guide.md")
	out := filepath.Join(dir, "guide.html")
	require.NoError(t, os.WriteFile(doc, []byte(sampleDoc), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	run := runCLI(t, ctx, "", "render", doc, "-o", out, "--watch", "--debounce", "10ms")
	require.NoError(t, run.err)
	assert.FileExists(t, out)
}

func TestRenderCommand_MissingFile(t *testing.T) {
	dir := inTempDir(t)
	run := runCLI(t, context.Background(), "", "render", filepath.Join(dir, "missing.md"))
	require.Error(t, run.err)
	assert.Equal(t, 2, run.exitCode())
}

func TestLintCommand(t *testing.T) {
	dir := inTempDir(t)
	docs := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(docs, 0o755))

	clean := filepath.Join(docs, "clean.md")
	require.NoError(t, os.WriteFile(clean, []byte("```go {1}\nx\n```\n"), 0o644))
	run := runCLI(t, context.Background(), "", "lint", docs)
	require.NoError(t, run.err)
	assert.Contains(t, run.out, "All code fence metadata passes linting!")

	warn := filepath.Join(docs, "warn.md")
	require.NoError(t, os.WriteFile(warn, []byte("```go {2-1}\nx\ny\n```\n"), 0o644))
	run = runCLI(t, context.Background(), "", "lint", docs)
	require.Error(t, run.err)
	assert.Equal(t, 1, run.exitCode())

	run = runCLI(t, context.Background(), "", "lint", "--quiet", docs)
	require.NoError(t, run.err)

	require.NoError(t, os.WriteFile(filepath.Join(docs, "broken.md"), []byte("```go title=\"x\ny\n```\n"), 0o644))
	run = runCLI(t, context.Background(), "", "lint", "--format", "json", docs)
	require.Error(t, run.err)
	assert.Equal(t, 2, run.exitCode())

	var out struct {
		ErrorCount   int `json:"error_count"`
		WarningCount int `json:"warning_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(run.out), &out))
	assert.Equal(t, 1, out.ErrorCount)
	assert.Equal(t, 1, out.WarningCount)
}

func TestLintCommand_Fix(t *testing.T) {
	dir := inTempDir(t)
	doc := filepath.Join(dir, "guide.md")
	src := "```go {3..1}\na\nb\nc\n```\n"
	require.NoError(t, os.WriteFile(doc, []byte(src), 0o644))

	run := runCLI(t, context.Background(), "", "lint", "--dry-run", doc)
	require.Error(t, run.err)
	assert.Equal(t, 2, run.exitCode())

	run = runCLI(t, context.Background(), "", "lint", "--fix", "--dry-run", doc)
	require.NoError(t, run.err)
	assert.Contains(t, run.out, "DRY RUN")
	assert.Contains(t, run.out, "Would fix 1 issue in 1 file")
	got, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, src, string(got))

	run = runCLI(t, context.Background(), "", "lint", "--fix", doc)
	require.NoError(t, run.err)
	assert.Contains(t, run.out, "Fixed 1 issue in 1 file")
	got, err = os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, "```go {1-3}\na\nb\nc\n```\n", string(got))

	run = runCLI(t, context.Background(), "", "lint", doc)
	assert.NoError(t, run.err)
}

func TestLintCommand_MissingPath(t *testing.T) {
	inTempDir(t)
	run := runCLI(t, context.Background(), "", "lint", "does-not-exist")
	require.Error(t, run.err)
	assert.Equal(t, 2, run.exitCode())
}

func TestInitCommand(t *testing.T) {
	dir := inTempDir(t)

	run := runCLI(t, context.Background(), "", "init")
	require.NoError(t, run.err)
	assert.Contains(t, run.out, "initialized successfully")
	assert.FileExists(t, filepath.Join(dir, "highlighter.yaml"))

	run = runCLI(t, context.Background(), "", "init")
	require.Error(t, run.err)
	assert.Equal(t, 2, run.exitCode())

	run = runCLI(t, context.Background(), "", "init", "--force")
	require.NoError(t, run.err)

	run = runCLI(t, context.Background(), "", "meta", "{1}")
	require.NoError(t, run.err)
}
