package lint

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/johnhooks/highlighter/internal/markdown"
)

// Fixer rewrites fixable code fence metadata in place.
type Fixer struct {
	linter *Linter
	dryRun bool
}

// NewFixer creates a new fixer with the given linter. In dry-run mode files
// are left untouched and the result describes what would change.
func NewFixer(linter *Linter, dryRun bool) *Fixer {
	return &Fixer{
		linter: linter,
		dryRun: dryRun,
	}
}

// FixResult contains the results of a fix operation.
type FixResult struct {
	Files       []FileFix
	IssuesFixed int
	Errors      []error
	DryRun      bool
}

// FileFix records the edits applied to one file.
type FileFix struct {
	Path    string
	Changes []LineChange
}

// LineChange is a single rewritten line.
type LineChange struct {
	Line   int
	Before string
	After  string
}

// HasErrors returns true if any errors occurred during fixing.
func (fr *FixResult) HasErrors() bool {
	return len(fr.Errors) > 0
}

// HasChanges returns true if any file was (or would be) modified.
func (fr *FixResult) HasChanges() bool {
	return len(fr.Files) > 0
}

// Fix lints path and applies every fixable issue.
func (f *Fixer) Fix(path string) (*FixResult, error) {
	result, err := f.linter.LintPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to lint path: %w", err)
	}

	fixResult := &FixResult{DryRun: f.dryRun}

	var order []string
	edits := make(map[string][]markdown.Edit)
	for _, issue := range result.Issues {
		if !issue.Fixable() {
			continue
		}
		if _, seen := edits[issue.FilePath]; !seen {
			order = append(order, issue.FilePath)
		}
		edits[issue.FilePath] = append(edits[issue.FilePath], *issue.Edit)
	}

	for _, file := range order {
		fix, err := f.fixFile(file, edits[file])
		if err != nil {
			fixResult.Errors = append(fixResult.Errors, err)
			continue
		}
		fixResult.Files = append(fixResult.Files, fix)
		fixResult.IssuesFixed += len(edits[file])
	}

	return fixResult, nil
}

func (f *Fixer) fixFile(path string, edits []markdown.Edit) (FileFix, error) {
	fix := FileFix{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return fix, fmt.Errorf("%s: %w", path, err)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return fix, fmt.Errorf("%s: %w", path, err)
	}

	updated, err := markdown.ApplyEdits(source, edits)
	if err != nil {
		return fix, fmt.Errorf("%s: %w", path, err)
	}
	fix.Changes = changedLines(source, updated)

	if f.dryRun {
		return fix, nil
	}
	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return fix, fmt.Errorf("%s: %w", path, err)
	}
	return fix, nil
}

// changedLines pairs up lines that differ. Fixes never add or remove lines.
func changedLines(before, after []byte) []LineChange {
	a := bytes.Split(before, []byte("\n"))
	b := bytes.Split(after, []byte("\n"))

	var changes []LineChange
	for i := range min(len(a), len(b)) {
		if !bytes.Equal(a[i], b[i]) {
			changes = append(changes, LineChange{
				Line:   i + 1,
				Before: strings.TrimRight(string(a[i]), "\r"),
				After:  strings.TrimRight(string(b[i]), "\r"),
			})
		}
	}
	return changes
}

// Summary returns a human-readable summary of the fix operation.
func (fr *FixResult) Summary() string {
	var b strings.Builder

	verb := "Fixed"
	if fr.DryRun {
		verb = "Would fix"
	}
	fmt.Fprintf(&b, "%s %d issue%s in %d file%s\n",
		verb, fr.IssuesFixed, pluralize(fr.IssuesFixed), len(fr.Files), pluralize(len(fr.Files)))

	for _, file := range fr.Files {
		for _, c := range file.Changes {
			fmt.Fprintf(&b, "  • %s:%d\n", file.Path, c.Line)
			fmt.Fprintf(&b, "    - %s\n", c.Before)
			fmt.Fprintf(&b, "    + %s\n", c.After)
		}
	}

	if len(fr.Errors) > 0 {
		fmt.Fprintf(&b, "\nErrors encountered: %d\n", len(fr.Errors))
		for _, err := range fr.Errors {
			fmt.Fprintf(&b, "  • %v\n", err)
		}
	}

	return b.String()
}

// Paths returns the files touched by the fix in sorted order.
func (fr *FixResult) Paths() []string {
	paths := make([]string, 0, len(fr.Files))
	for _, f := range fr.Files {
		paths = append(paths, f.Path)
	}
	slices.Sort(paths)
	return paths
}
