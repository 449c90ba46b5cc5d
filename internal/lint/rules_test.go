package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnhooks/highlighter/internal/markdown"
)

func docFrom(t *testing.T, src string) *Document {
	t.Helper()
	fences, err := markdown.ExtractCodeFences([]byte(src), markdown.Options{})
	require.NoError(t, err)
	return &Document{Path: "doc.md", Source: []byte(src), Fences: fences}
}

func checkDoc(t *testing.T, src string) []Issue {
	t.Helper()
	issues, err := (&CodeFenceMetadataRule{}).Check(docFrom(t, src))
	require.NoError(t, err)
	return issues
}

func messages(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Message)
	}
	return out
}

func TestCodeFenceMetadataRule_Messages(t *testing.T) {
	tests := []struct {
		name string
		info string
		want []string
	}{
		{name: "clean", info: `js {1-2} title="x.js" showLineNumbers{4}`, want: []string{}},
		{name: "no meta", info: "js", want: []string{}},
		{name: "unterminated quote", info: `js title="oops`, want: []string{"unterminated delimiter"}},
		{name: "unterminated brace", info: "js {1-2", want: []string{"unterminated delimiter"}},
		{name: "negative range", info: "js {-4..-1}", want: []string{"highlight range selects no lines"}},
		{name: "letters", info: "js {abc}", want: []string{"highlight range selects no lines"}},
		{name: "empty braces", info: "js {}", want: []string{"highlight range selects no lines"}},
		{name: "outside block", info: "js {5}", want: []string{"highlighted line outside code block"}},
		{name: "descending", info: "js {2-1}", want: []string{"descending range"}},
		{name: "dot range", info: "js {1..2}", want: []string{"non-canonical range"}},
		{name: "unsorted list", info: "js {3,1}", want: []string{"non-canonical range"}},
		{name: "invalid start", info: "js showLineNumbers{0}", want: []string{"invalid starting line number"}},
		{name: "word start", info: "js showLineNumbers{x}", want: []string{"invalid starting line number"}},
		{name: "detached group is a range", info: "js showLineNumbers {2}", want: []string{}},
		{name: "second group ignored", info: "js {1} {2}", want: []string{"additional highlight range ignored"}},
		{name: "highlight keyword", info: "js highlight{3-2}", want: []string{"descending range"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "```" + tt.info + "\na\nb\nc\n```\n"
			assert.Equal(t, tt.want, messages(checkDoc(t, src)))
		})
	}
}

func TestCodeFenceMetadataRule_IssueFields(t *testing.T) {
	src := "# Doc\n\n```js {5}\nlet a\n```\n"
	issues := checkDoc(t, src)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, "doc.md", issue.FilePath)
	assert.Equal(t, SeverityWarning, issue.Severity)
	assert.Equal(t, CodeFenceMetadataRuleName, issue.Rule)
	assert.Equal(t, 3, issue.Line)
	assert.Contains(t, issue.Explanation, "has 1 line but {5} selects 5")
	assert.False(t, issue.Fixable())
}

func TestCodeFenceMetadataRule_UnterminatedIsError(t *testing.T) {
	issues := checkDoc(t, "```svelte title='x\n<p/>\n```\n")
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Explanation, `"'" opened at column 14`)
	assert.Equal(t, `Add the missing "'"`, issues[0].Fix)
}

func TestCodeFenceMetadataRule_EditTargetsBraceContents(t *testing.T) {
	src := "intro\n\n```go title=\"m.go\" {3..1}\na\nb\nc\n```\n"
	issues := checkDoc(t, src)
	require.Len(t, issues, 1)

	issue := issues[0]
	require.True(t, issue.Fixable())
	assert.Equal(t, "descending range", issue.Message)
	assert.Equal(t, "3..1", src[issue.Edit.Start:issue.Edit.End])
	assert.Equal(t, "1-3", string(issue.Edit.Replacement))
}

func TestCodeFenceMetadataRule_SkipsFencesWithoutInfo(t *testing.T) {
	assert.Empty(t, checkDoc(t, "```\n{1}\n```\n"))
}

func TestCodeFenceMetadataRule_AppliesTo(t *testing.T) {
	rule := &CodeFenceMetadataRule{}
	assert.True(t, rule.AppliesTo("docs/guide.md"))
	assert.True(t, rule.AppliesTo("docs/GUIDE.MARKDOWN"))
	assert.True(t, rule.AppliesTo("src/routes/+page.svx"))
	assert.False(t, rule.AppliesTo("main.go"))
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, "ERROR", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.Label())
	assert.Equal(t, "UNKNOWN", Severity(42).String())
}
