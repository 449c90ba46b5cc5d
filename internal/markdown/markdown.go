package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/johnhooks/highlighter/internal/meta"
)

// Options controls which fenced code blocks are reported.
type Options struct {
	// SkipUnlabeled drops fences without an info string.
	SkipUnlabeled bool
}

// CodeFence is a fenced code block found in a Markdown body.
type CodeFence struct {
	// Language is the first word of the info string.
	Language string
	// Info is the raw info string after the opening backticks.
	Info string
	// InfoStart is the byte offset of Info in the body, or -1 when the
	// fence has no info string. Token offsets from meta.Lex(Info) plus
	// InfoStart address the body directly.
	InfoStart int
	// Line is the 1-based line of the opening fence, or 0 when it cannot be
	// determined (an empty fence without info).
	Line int
	Code      string
	LineCount int
	Metadata  meta.Metadata
}

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte, _ Options) (gmast.Node, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))
	return root, nil
}

// ExtractCodeFences parses a Markdown body and returns its fenced code blocks
// in document order. Indented code blocks carry no info string and are not
// reported.
func ExtractCodeFences(body []byte, opts Options) ([]CodeFence, error) {
	root, err := ParseBody(body, opts)
	if err != nil {
		return nil, err
	}

	fences := make([]CodeFence, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		node, ok := n.(*gmast.FencedCodeBlock)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if opts.SkipUnlabeled && node.Info == nil {
			return gmast.WalkSkipChildren, nil
		}
		fences = append(fences, newCodeFence(node, body))
		return gmast.WalkSkipChildren, nil
	})
	return fences, nil
}

func newCodeFence(node *gmast.FencedCodeBlock, body []byte) CodeFence {
	fence := CodeFence{
		InfoStart: -1,
		Code:      codeOf(node, body),
		LineCount: node.Lines().Len(),
	}

	if node.Info != nil {
		seg := node.Info.Segment
		fence.Info = string(seg.Value(body))
		fence.InfoStart = seg.Start
		fence.Line = lineAt(body, seg.Start)
	} else if node.Lines().Len() > 0 {
		fence.Line = lineAt(body, node.Lines().At(0).Start) - 1
	}

	fence.Metadata = meta.ParseInfo(fence.Info)
	fence.Language = fence.Metadata.Language
	return fence
}

// codeOf concatenates the content lines of a fenced block.
func codeOf(node *gmast.FencedCodeBlock, body []byte) string {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(body))
	}
	return buf.String()
}

// lineAt returns the 1-based line containing offset.
func lineAt(body []byte, offset int) int {
	offset = min(offset, len(body))
	return bytes.Count(body[:offset], []byte("\n")) + 1
}
