package lint

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/johnhooks/highlighter/internal/frontmatter"
	"github.com/johnhooks/highlighter/internal/logfields"
	"github.com/johnhooks/highlighter/internal/markdown"
	"github.com/johnhooks/highlighter/internal/metrics"
)

// Linter performs linting operations on Markdown files.
type Linter struct {
	cfg      *Config
	rules    []Rule
	recorder metrics.Recorder
}

// NewLinter creates a new linter with the given configuration.
func NewLinter(cfg *Config) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}

	return &Linter{
		cfg: cfg,
		rules: []Rule{
			&CodeFenceMetadataRule{},
		},
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder reports every collected issue to r.
func (l *Linter) WithRecorder(r metrics.Recorder) *Linter {
	if r != nil {
		l.recorder = r
	}
	return l
}

// LintPath lints all Markdown files in the given path (file or directory).
func (l *Linter) LintPath(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Issues: []Issue{},
	}

	if info.IsDir() {
		err = l.lintDirectory(path, result)
	} else {
		result.FilesTotal = 1
		err = l.lintFile(path, result)
	}

	return result, err
}

// lintDirectory recursively lints all Markdown files in a directory.
func (l *Linter) lintDirectory(dirPath string, result *Result) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden directories and files
		if d.Name()[0] == '.' && path != dirPath {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if d.Name() == "node_modules" {
				return fs.SkipDir
			}
			return nil
		}

		if !IsDocFile(path) {
			return nil
		}

		result.FilesTotal++
		return l.lintFile(path, result)
	})
}

// LintFiles lints a specific list of files (useful for Git hooks).
func (l *Linter) LintFiles(files []string) (*Result, error) {
	result := &Result{
		Issues: []Issue{},
	}

	for _, file := range files {
		if !IsDocFile(file) {
			continue
		}
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}

		result.FilesTotal++
		if err := l.lintFile(file, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// lintFile applies all applicable rules to a single file.
func (l *Linter) lintFile(filePath string, result *Result) error {
	doc, err := LoadDocument(filePath)
	if err != nil {
		return err
	}
	result.FencesTotal += len(doc.Fences)
	slog.Debug("Linting file", logfields.File(filePath), logfields.Fences(len(doc.Fences)))

	for _, rule := range l.rules {
		if !rule.AppliesTo(filePath) {
			continue
		}

		issues, err := rule.Check(doc)
		if err != nil {
			return err
		}

		for _, issue := range issues {
			// Skip info and warnings in quiet mode
			if l.cfg.Quiet && issue.Severity != SeverityError {
				continue
			}
			slog.Debug("Lint issue",
				logfields.File(filePath),
				logfields.Line(issue.Line),
				logfields.Rule(issue.Rule),
				slog.String("message", issue.Message))
			l.recorder.IncLintIssue(issue.Rule, issue.Severity.Label())
			result.Issues = append(result.Issues, issue)
		}
	}

	return nil
}

// LoadDocument reads and parses a Markdown file. Fences are located in the
// body after any YAML frontmatter, with positions relative to the whole file.
func LoadDocument(filePath string) (*Document, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	split, err := frontmatter.Split(source)
	if err != nil {
		slog.Debug("Unterminated frontmatter, linting whole file", logfields.File(filePath), logfields.Error(err))
		split = frontmatter.Document{Body: source}
	}

	fences, err := markdown.ExtractCodeFences(split.Body, markdown.Options{})
	if err != nil {
		return nil, err
	}
	for i := range fences {
		if fences[i].InfoStart >= 0 {
			fences[i].InfoStart += split.BodyOffset
		}
		if fences[i].Line > 0 {
			fences[i].Line += split.BodyLine
		}
	}
	return &Document{Path: filePath, Source: source, Fences: fences}, nil
}
