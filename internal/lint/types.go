package lint

import (
	"path/filepath"
	"strings"

	"github.com/johnhooks/highlighter/internal/markdown"
)

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityInfo indicates informational messages.
	SeverityInfo Severity = iota
	// SeverityWarning indicates metadata that parses but probably does not do what the author meant.
	SeverityWarning
	// SeverityError indicates metadata the parser silently discards.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Label returns the lower-case name used for metric labels.
func (s Severity) Label() string {
	return strings.ToLower(s.String())
}

// Issue represents a single linting problem found in a file.
type Issue struct {
	FilePath    string   // Absolute or relative path to the file
	Severity    Severity // Issue severity level
	Rule        string   // Rule identifier (e.g., "code-fence-metadata")
	Message     string   // Brief description of the issue
	Explanation string   // Detailed explanation with context
	Fix         string   // Suggested fix
	Line        int      // Line number of the opening fence (0 if file-level issue)

	// Edit rewrites the offending text when the issue is fixable.
	Edit *markdown.Edit
}

// Fixable reports whether the fixer can resolve the issue.
func (i Issue) Fixable() bool {
	return i.Edit != nil
}

// Result contains all issues found during linting.
type Result struct {
	Issues      []Issue
	FilesTotal  int // Total files scanned
	FencesTotal int // Total fenced code blocks inspected
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	return r.WarningCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

// FixableCount returns the number of issues the fixer can resolve.
func (r *Result) FixableCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Fixable() {
			count++
		}
	}
	return count
}

func (r *Result) count(s Severity) int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			count++
		}
	}
	return count
}

// Document is a Markdown file prepared for the rules.
type Document struct {
	Path   string
	Source []byte
	Fences []markdown.CodeFence
}

// Rule defines a linting rule that can be applied to files.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Check validates a parsed document and returns any issues found.
	Check(doc *Document) ([]Issue, error)

	// AppliesTo returns true if this rule should be checked for the given file.
	AppliesTo(filePath string) bool
}

// Config contains configuration for the linter.
type Config struct {
	// Quiet suppresses warnings, only showing errors.
	Quiet bool

	// Format specifies output format (text, json).
	Format string

	// Fix enables automatic fixing of issues where possible.
	Fix bool

	// DryRun shows what would be fixed without applying changes.
	DryRun bool
}

// IsDocFile returns true if the file is a Markdown document.
func IsDocFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown" || ext == ".svx"
}
