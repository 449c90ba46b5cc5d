// Package frontmatter separates YAML frontmatter from a Markdown document.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a Markdown file split at the end of its frontmatter.
type Document struct {
	// Frontmatter is the raw YAML between the delimiters, nil when absent.
	Frontmatter []byte
	// Body is the Markdown after the closing delimiter.
	Body []byte
	// BodyOffset is the byte offset of Body in the original content.
	BodyOffset int
	// BodyLine is the number of lines preceding Body.
	BodyLine int
}

// HasFrontmatter reports whether the document opened with a frontmatter block.
func (d Document) HasFrontmatter() bool {
	return d.Frontmatter != nil
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a frontmatter delimiter the whole input
// is the body. Both LF and CRLF line endings are recognized.
func Split(content []byte) (Document, error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return Document{Body: content}, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return newDocument(content, []byte{}, start+len(open)), nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return Document{}, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return newDocument(content, content[start:end], start+idx+len(closeSeq)), nil
}

func newDocument(content, fm []byte, bodyStart int) Document {
	return Document{
		Frontmatter: fm,
		Body:        content[bodyStart:],
		BodyOffset:  bodyStart,
		BodyLine:    bytes.Count(content[:bodyStart], []byte("\n")),
	}
}

// Fields parses the frontmatter into a map. A document without frontmatter
// yields an empty map.
func (d Document) Fields() (map[string]any, error) {
	if len(d.Frontmatter) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(d.Frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
