package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFormat     = "format"
	KeyField      = "field"
	KeyKind       = "kind"
	KeyCode       = "code"
	KeyProblems   = "problems"
	KeyDurationMS = "duration_ms"
	KeyCommand    = "command"
	KeyOutput     = "output"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Field(f string) slog.Attr        { return slog.String(KeyField, f) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Code(c string) slog.Attr         { return slog.String(KeyCode, c) }
func Problems(n int) slog.Attr        { return slog.Int(KeyProblems, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func Output(o string) slog.Attr       { return slog.String(KeyOutput, o) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
