package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyFile       = "file"
	KeyLanguage   = "language"
	KeyLine       = "line"
	KeyRule       = "rule"
	KeyFences     = "fences"
	KeyStyle      = "style"
	KeyCommand    = "command"
	KeyIssues     = "issues"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Language(lang string) slog.Attr  { return slog.String(KeyLanguage, lang) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func Rule(name string) slog.Attr      { return slog.String(KeyRule, name) }
func Fences(n int) slog.Attr          { return slog.Int(KeyFences, n) }
func Style(name string) slog.Attr     { return slog.String(KeyStyle, name) }
func Command(name string) slog.Attr   { return slog.String(KeyCommand, name) }
func Issues(n int) slog.Attr          { return slog.Int(KeyIssues, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
