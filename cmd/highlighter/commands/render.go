package commands

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/johnhooks/highlighter/internal/foundation/errors"
	"github.com/johnhooks/highlighter/internal/frontmatter"
	"github.com/johnhooks/highlighter/internal/highlight"
	"github.com/johnhooks/highlighter/internal/logfields"
	"github.com/johnhooks/highlighter/internal/markdown"
	"github.com/johnhooks/highlighter/internal/metrics"
	"github.com/johnhooks/highlighter/internal/watch"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File        string        `arg:"" help:"Markdown file to render"`
	Output      string        `short:"o" help:"Write HTML to this file instead of stdout"`
	Watch       bool          `short:"w" help:"Re-render whenever the file changes"`
	Debounce    time.Duration `default:"300ms" help:"Quiet period before re-rendering in watch mode"`
	MetricsFile string        `name:"metrics-file" help:"Write Prometheus metrics in text format to this file after each render"`
}

// Run executes the render command.
func (r *RenderCmd) Run(ctx context.Context, g *Global) error {
	var (
		reg      *prometheus.Registry
		recorder metrics.Recorder = metrics.NoopRecorder{}
	)
	if r.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
	}

	h, err := highlight.New(g.Config.Highlight,
		highlight.WithRecorder(recorder),
		highlight.WithLogger(g.Logger))
	if err != nil {
		return err
	}

	render := func(context.Context) error {
		return r.renderOnce(g, h, reg)
	}
	if err := render(ctx); err != nil {
		return err
	}
	if !r.Watch {
		return nil
	}

	w, err := watch.New([]string{r.File}, r.Debounce, render, g.Logger)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to start watcher").Build()
	}
	if err := w.Run(ctx); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "watch failed").
			WithContext("file", r.File).
			Build()
	}
	return nil
}

func (r *RenderCmd) renderOnce(g *Global, h *highlight.Highlighter, reg *prometheus.Registry) error {
	start := time.Now()
	body, err := readInput(g, r.File)
	if err != nil {
		return err
	}

	doc, err := frontmatter.Split(body)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid frontmatter").
			WithContext("file", r.File).
			UserAction().
			Build()
	}
	if doc.HasFrontmatter() {
		fields, err := doc.Fields()
		if err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid frontmatter yaml").
				WithContext("file", r.File).
				UserAction().
				Build()
		}
		g.Logger.Debug("Skipping frontmatter", logfields.File(r.File), slog.Int("fields", len(fields)))
	}

	var buf bytes.Buffer
	if err := markdown.Render(&buf, doc.Body, h); err != nil {
		return err
	}
	if err := writeOutput(g, r.Output, buf.Bytes()); err != nil {
		return err
	}

	if reg != nil {
		if err := metrics.WriteTextfile(reg, r.MetricsFile); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics").
				WithContext("file", r.MetricsFile).
				Build()
		}
	}

	g.Logger.Info("Rendered",
		logfields.File(r.File),
		slog.String("output", r.Output),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}
