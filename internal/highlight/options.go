package highlight

import (
	"log/slog"

	"github.com/johnhooks/highlighter/internal/metrics"
)

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithRecorder reports per-block metrics to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(h *Highlighter) {
		if r != nil {
			h.recorder = r
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(h *Highlighter) {
		if l != nil {
			h.logger = l
		}
	}
}
