package meta

import (
	"slices"
	"strconv"
	"strings"
)

// DefaultLineNumberStart is the number displayed for the first line of a
// code block when no starting number is given.
const DefaultLineNumberStart = 1

// Metadata describes how a code block should be rendered.
type Metadata struct {
	// HighlightedLines holds 1-based source line numbers to highlight.
	HighlightedLines []int `json:"highlightedLines" yaml:"highlighted_lines"`

	// LineNumberStart is the number displayed for the first line. Always >= 1.
	LineNumberStart int `json:"lineNumberStart" yaml:"line_number_start"`

	// ShowLineNumbers reports whether line numbers should be displayed.
	ShowLineNumbers bool `json:"showLineNumbers" yaml:"show_line_numbers"`

	// Title is the code block title; empty when absent.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Language is supplied by the caller; Parse never sets it.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// Defaults returns the Metadata of a code block without a meta string.
func Defaults() Metadata {
	return Metadata{
		HighlightedLines: []int{},
		LineNumberStart:  DefaultLineNumberStart,
	}
}

// IsHighlighted reports whether the 1-based source line is highlighted.
func (m Metadata) IsHighlighted(line int) bool {
	return slices.Contains(m.HighlightedLines, line)
}

// DisplayNumber returns the number shown next to the 1-based source line.
func (m Metadata) DisplayNumber(line int) int {
	start := m.LineNumberStart
	if start < 1 {
		start = DefaultLineNumberStart
	}
	return line + start - 1
}

// HasTitle reports whether a title was given.
func (m Metadata) HasTitle() bool {
	return m.Title != ""
}

// String returns a canonical meta string that parses back to m, apart from
// Language and the order of duplicate highlighted lines.
func (m Metadata) String() string {
	var parts []string
	if m.HasTitle() {
		quote := `"`
		if strings.Contains(m.Title, `"`) {
			quote = `'`
		}
		parts = append(parts, "title="+quote+m.Title+quote)
	}
	if len(m.HighlightedLines) > 0 {
		parts = append(parts, "{"+CompactRange(m.HighlightedLines)+"}")
	}
	if m.ShowLineNumbers {
		s := string(KeywordShowLineNumbers)
		if m.LineNumberStart > DefaultLineNumberStart {
			s += "{" + strconv.Itoa(m.LineNumberStart) + "}"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
