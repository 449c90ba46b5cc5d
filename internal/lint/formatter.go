package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, path string) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result, path string) error {
	ew := &errWriter{w: w}

	ew.printf("Linting code fences in: %s\n", path)
	ew.println(strings.Repeat("━", 60))
	ew.println()

	for _, issue := range result.Issues {
		f.formatIssue(ew, issue)
		ew.println()
	}

	ew.println(strings.Repeat("━", 60))
	ew.printf("Results:\n")
	ew.printf("  %d file%s scanned, %d code fence%s\n",
		result.FilesTotal, pluralize(result.FilesTotal), result.FencesTotal, pluralize(result.FencesTotal))

	if n := result.ErrorCount(); n > 0 {
		ew.printf("  %d error%s (metadata ignored)\n", n, pluralize(n))
	}
	if n := result.WarningCount(); n > 0 {
		ew.printf("  %d warning%s (should fix)\n", n, pluralize(n))
	}
	if n := result.FixableCount(); n > 0 {
		ew.printf("  %d fixable with --fix\n", n)
	}
	ew.println()

	switch {
	case result.HasErrors():
		ew.println("❌ Code fence metadata has errors.")
	case result.HasWarnings():
		ew.println("⚠️  Code fence metadata has warnings.")
	default:
		ew.println("✨ All code fence metadata passes linting!")
	}
	if result.FixableCount() > 0 {
		ew.println("   To auto-fix: highlighter lint --fix")
	}
	return ew.err
}

// formatIssue formats a single issue.
func (f *TextFormatter) formatIssue(ew *errWriter, issue Issue) {
	var icon string
	switch issue.Severity {
	case SeverityError:
		icon = "✗"
	case SeverityWarning:
		icon = "⚠"
	case SeverityInfo:
		icon = "ℹ"
	}

	location := issue.FilePath
	if issue.Line > 0 {
		location = fmt.Sprintf("%s:%d", issue.FilePath, issue.Line)
	}
	ew.printf("%s %s\n", icon, location)
	ew.printf("  %s: %s [%s]\n", issue.Severity, issue.Message, issue.Rule)

	if issue.Explanation != "" {
		for line := range strings.SplitSeq(strings.TrimSpace(issue.Explanation), "\n") {
			ew.printf("  %s\n", line)
		}
	}

	if issue.Fix != "" {
		ew.printf("  Fix: %s\n", issue.Fix)
	}
}

// errWriter remembers the first write error so formatting code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, args...)
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Path         string      `json:"path"`
	FilesTotal   int         `json:"files_total"`
	FencesTotal  int         `json:"fences_total"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	FixableCount int         `json:"fixable_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	FilePath    string `json:"file_path"`
	Severity    string `json:"severity"`
	Rule        string `json:"rule"`
	Message     string `json:"message"`
	Explanation string `json:"explanation,omitempty"`
	Fix         string `json:"fix,omitempty"`
	Line        int    `json:"line,omitempty"`
	Fixable     bool   `json:"fixable"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result, path string) error {
	output := JSONOutput{
		Path:         path,
		FilesTotal:   result.FilesTotal,
		FencesTotal:  result.FencesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		FixableCount: result.FixableCount(),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}

	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			FilePath:    issue.FilePath,
			Severity:    issue.Severity.String(),
			Rule:        issue.Rule,
			Message:     issue.Message,
			Explanation: issue.Explanation,
			Fix:         issue.Fix,
			Line:        issue.Line,
			Fixable:     issue.Fixable(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}
