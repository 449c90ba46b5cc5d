package commands

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/johnhooks/highlighter/internal/foundation/errors"
	"github.com/johnhooks/highlighter/internal/lint"
	"github.com/johnhooks/highlighter/internal/logfields"
	"github.com/johnhooks/highlighter/internal/metrics"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Path        string `arg:"" optional:"" default:"." help:"Path to lint (file or directory)"`
	Format      string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet       bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	Fix         bool   `help:"Rewrite fixable highlight ranges in place"`
	DryRun      bool   `help:"Show what would be fixed without applying changes (requires --fix)"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file"`
}

// Run executes the lint command.
func (l *LintCmd) Run(g *Global) error {
	if l.DryRun && !l.Fix {
		return errors.ValidationError("--dry-run requires --fix flag").Build()
	}
	if _, err := os.Stat(l.Path); os.IsNotExist(err) {
		return errors.NotFoundError(fmt.Sprintf("path does not exist: %s", l.Path)).Build()
	}

	cfg := &lint.Config{
		Quiet:  l.Quiet,
		Format: l.Format,
		Fix:    l.Fix,
		DryRun: l.DryRun,
	}

	linter := lint.NewLinter(cfg)
	var reg *prometheus.Registry
	if l.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		linter.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}

	var err error
	if l.Fix {
		err = l.runFixer(g, linter)
	} else {
		err = l.runLinter(g, linter)
	}

	if reg != nil {
		if werr := metrics.WriteTextfile(reg, l.MetricsFile); werr != nil {
			g.Logger.Warn("Failed to write metrics", logfields.File(l.MetricsFile), logfields.Error(werr))
		}
	}
	return err
}

func (l *LintCmd) runLinter(g *Global, linter *lint.Linter) error {
	result, err := linter.LintPath(l.Path)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "linting failed").
			WithContext("path", l.Path).
			Build()
	}
	g.Logger.Debug("Lint finished",
		logfields.Issues(len(result.Issues)),
		logfields.Fences(result.FencesTotal))

	if err := lint.NewFormatter(l.Format).Format(g.Out, result, l.Path); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "formatting output").Build()
	}

	// Determine exit code based on results
	switch {
	case result.HasErrors():
		return errors.LintError(fmt.Sprintf("%d code fence error%s found", result.ErrorCount(), plural(result.ErrorCount()))).Build()
	case result.HasWarnings() && !l.Quiet:
		return errors.LintError(fmt.Sprintf("%d code fence warning%s found", result.WarningCount(), plural(result.WarningCount()))).
			Warning().
			Build()
	}
	return nil
}

func (l *LintCmd) runFixer(g *Global, linter *lint.Linter) error {
	fixResult, err := lint.NewFixer(linter, l.DryRun).Fix(l.Path)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "fixing failed").
			WithContext("path", l.Path).
			Build()
	}

	if l.DryRun {
		_, _ = fmt.Fprintf(g.Out, "DRY RUN: No changes will be applied\n\n")
	}
	_, _ = fmt.Fprint(g.Out, fixResult.Summary())

	if fixResult.HasErrors() {
		return errors.FileSystemError(fmt.Sprintf("%d file%s could not be fixed", len(fixResult.Errors), plural(len(fixResult.Errors)))).Build()
	}
	if !l.DryRun && fixResult.HasChanges() {
		g.Logger.Info("Fixed code fence metadata", logfields.Issues(fixResult.IssuesFixed), "files", fixResult.Paths())
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
