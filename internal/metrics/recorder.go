package metrics

import "time"

// Recorder defines observability hooks for fence highlighting and lint runs.
// Implementations must be safe for concurrent use.
type Recorder interface {
	IncFence(language string)
	ObserveHighlightDuration(language string, d time.Duration)
	ObserveHighlightedLines(n int)
	IncLintIssue(rule, severity string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncFence(string)                                {}
func (NoopRecorder) ObserveHighlightDuration(string, time.Duration) {}
func (NoopRecorder) ObserveHighlightedLines(int)                    {}
func (NoopRecorder) IncLintIssue(string, string)                    {}

var _ Recorder = NoopRecorder{}
