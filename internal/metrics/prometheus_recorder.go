package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "highlighter"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	fences           *prom.CounterVec
	highlightSeconds *prom.HistogramVec
	highlightedLines prom.Histogram
	lintIssues       *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil registry gets a fresh private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		fences: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "fences_total",
			Help:      "Fenced code blocks highlighted, by language",
		}, []string{"language"}),
		highlightSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "highlight_duration_seconds",
			Help:      "Time spent highlighting a single code block",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"language"}),
		highlightedLines: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "highlighted_lines",
			Help:      "Number of emphasized lines per code block",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		lintIssues: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "lint_issues_total",
			Help:      "Lint issues reported, by rule and severity",
		}, []string{"rule", "severity"}),
	}
	reg.MustRegister(pr.fences, pr.highlightSeconds, pr.highlightedLines, pr.lintIssues)
	return pr
}

func (p *PrometheusRecorder) IncFence(language string) {
	if p == nil {
		return
	}
	p.fences.WithLabelValues(language).Inc()
}

func (p *PrometheusRecorder) ObserveHighlightDuration(language string, d time.Duration) {
	if p == nil {
		return
	}
	p.highlightSeconds.WithLabelValues(language).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveHighlightedLines(n int) {
	if p == nil {
		return
	}
	p.highlightedLines.Observe(float64(n))
}

func (p *PrometheusRecorder) IncLintIssue(rule, severity string) {
	if p == nil {
		return
	}
	p.lintIssues.WithLabelValues(rule, severity).Inc()
}

var _ Recorder = (*PrometheusRecorder)(nil)
