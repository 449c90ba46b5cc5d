package lint

import (
	"fmt"

	"github.com/johnhooks/highlighter/internal/markdown"
	"github.com/johnhooks/highlighter/internal/meta"
)

// CodeFenceMetadataRuleName identifies CodeFenceMetadataRule in issues and metrics.
const CodeFenceMetadataRuleName = "code-fence-metadata"

// CodeFenceMetadataRule checks the meta string of every fenced code block for
// syntax the parser would silently ignore or misread.
type CodeFenceMetadataRule struct{}

// Name returns the rule identifier.
func (r *CodeFenceMetadataRule) Name() string {
	return CodeFenceMetadataRuleName
}

// AppliesTo returns true for Markdown documents.
func (r *CodeFenceMetadataRule) AppliesTo(filePath string) bool {
	return IsDocFile(filePath)
}

// Check inspects each fence's info string.
func (r *CodeFenceMetadataRule) Check(doc *Document) ([]Issue, error) {
	var issues []Issue
	for _, fence := range doc.Fences {
		if fence.Info == "" {
			continue
		}
		issues = append(issues, r.checkFence(doc.Path, fence)...)
	}
	return issues, nil
}

func (r *CodeFenceMetadataRule) checkFence(path string, fence markdown.CodeFence) []Issue {
	tokens := meta.Lex(fence.Info)

	var issues []Issue
	if tok, ok := meta.Unterminated(tokens); ok {
		issues = append(issues, r.issue(path, fence, SeverityError,
			"unterminated delimiter",
			fmt.Sprintf("The %q opened at column %d is never closed, so everything after it is ignored.\n\nInfo string: %s",
				tok.Text, tok.Start+1, fence.Info),
			fmt.Sprintf("Add the missing %q", closerFor(tok.Text))))
	}

	selected := false
	for _, g := range braceGroups(tokens) {
		if g.lineNumbers {
			if _, ok := meta.ParseStartLine(g.text); !ok {
				issues = append(issues, r.issue(path, fence, SeverityWarning,
					"invalid starting line number",
					fmt.Sprintf("showLineNumbers{%s} needs a positive integer; numbering starts at 1 instead.", g.text),
					"Use a value such as showLineNumbers{1}"))
			}
			continue
		}

		lines := meta.ExpandRange(g.text)
		if len(lines) == 0 {
			issues = append(issues, r.issue(path, fence, SeverityWarning,
				"highlight range selects no lines",
				fmt.Sprintf("{%s} expands to no line numbers. Line numbers start at 1 and ranges use \"a-b\" or \"a..b\".", g.text),
				"Fix or remove the brace group"))
			continue
		}

		if selected {
			issues = append(issues, r.issue(path, fence, SeverityWarning,
				"additional highlight range ignored",
				fmt.Sprintf("Only the first brace group that selects lines is used; {%s} has no effect.", g.text),
				"Merge the ranges into a single brace group"))
			continue
		}
		selected = true

		if outside := linesAfter(lines, fence.LineCount); len(outside) > 0 {
			issues = append(issues, r.issue(path, fence, SeverityWarning,
				"highlighted line outside code block",
				fmt.Sprintf("The code block has %d line%s but {%s} selects %s.",
					fence.LineCount, pluralize(fence.LineCount), g.text, meta.CompactRange(outside)),
				"Adjust the range to the lines of the block"))
		}

		canonical := meta.CompactRange(lines)
		if canonical == g.text {
			continue
		}
		message := "non-canonical range"
		if meta.HasDescendingPart(g.text) {
			message = "descending range"
		}
		issue := r.issue(path, fence, SeverityWarning, message,
			fmt.Sprintf("{%s} is equivalent to {%s}.", g.text, canonical),
			fmt.Sprintf("Rewrite as {%s} (fixable with --fix)", canonical))
		if fence.InfoStart >= 0 {
			issue.Edit = &markdown.Edit{
				Start:       fence.InfoStart + g.start,
				End:         fence.InfoStart + g.end,
				Replacement: []byte(canonical),
			}
		}
		issues = append(issues, issue)
	}
	return issues
}

func (r *CodeFenceMetadataRule) issue(path string, fence markdown.CodeFence, sev Severity, message, explanation, fix string) Issue {
	return Issue{
		FilePath:    path,
		Severity:    sev,
		Rule:        r.Name(),
		Message:     message,
		Explanation: explanation,
		Fix:         fix,
		Line:        fence.Line,
	}
}

// braceGroup is a closed {...} group in a meta string. start and end are the
// byte offsets of its contents.
type braceGroup struct {
	text        string
	start, end  int
	lineNumbers bool
}

// braceGroups returns the closed brace groups of tokens in order. A group
// directly attached to showLineNumbers sets the starting line number; every
// other group is a highlight range.
func braceGroups(tokens []meta.Token) []braceGroup {
	var groups []braceGroup
	for i := 0; i < len(tokens); i++ {
		if !tokens[i].IsSymbol("{") {
			continue
		}
		open := tokens[i]
		g := braceGroup{start: open.End, end: open.End}

		j := i + 1
		if j < len(tokens) && tokens[j].Kind == meta.KindLiteral {
			g.text = tokens[j].Text
			g.end = tokens[j].End
			j++
		}
		if j >= len(tokens) || !tokens[j].IsSymbol("}") {
			continue
		}

		if i > 0 {
			prev := tokens[i-1]
			kw, ok := prev.Keyword()
			g.lineNumbers = ok && kw == meta.KeywordShowLineNumbers && prev.End == open.Start
		}
		groups = append(groups, g)
		i = j
	}
	return groups
}

// linesAfter returns the lines greater than count.
func linesAfter(lines []int, count int) []int {
	var out []int
	for _, n := range lines {
		if n > count {
			out = append(out, n)
		}
	}
	return out
}

func closerFor(opener string) string {
	switch opener {
	case "{":
		return "}"
	case "(":
		return ")"
	default:
		return opener
	}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
