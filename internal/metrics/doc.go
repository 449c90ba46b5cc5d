// Package metrics provides optional observability for highlighting and linting.
//
// Components receive a Recorder and default to NoopRecorder, so call sites
// never need nil checks:
//
//	h, err := highlight.New(cfg.Highlight)                                // no metrics
//	h, err := highlight.New(cfg.Highlight, highlight.WithRecorder(rec))   // Prometheus
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// A CLI run has no scrape endpoint, so WriteTextfile dumps the registry in
// the text exposition format for node_exporter's textfile collector.
package metrics
