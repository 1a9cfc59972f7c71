package logger

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
)

const redactedValue = "[REDACTED]"

// defaultRedactKeys are attribute keys whose values never reach the log sink.
var defaultRedactKeys = []string{"authorization", "api_key", "token", "secret", "smtp_password"}

// sourceHandler adds a source attribute for selected levels and masks
// sensitive attribute values before delegating to the wrapped handler.
type sourceHandler struct {
	next       slog.Handler
	withSource map[slog.Level]bool
	redactKeys map[string]bool
}

// NewSourceHandler wraps next. Source location is attached only for the given
// levels; the wrapped handler should be built with AddSource: false.
func NewSourceHandler(next slog.Handler, levels ...slog.Level) slog.Handler {
	withSource := make(map[slog.Level]bool, len(levels))
	for _, lvl := range levels {
		withSource[lvl] = true
	}
	redact := make(map[string]bool, len(defaultRedactKeys))
	for _, k := range defaultRedactKeys {
		redact[k] = true
	}
	return &sourceHandler{next: next, withSource: withSource, redactKeys: redact}
}

func (h *sourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redact(a))
		return true
	})

	if h.withSource[r.Level] {
		// skip runtime.Callers, Handle and the slog frame
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		f, _ := runtime.CallersFrames(pcs[:]).Next()
		out.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: f.Function,
			File:     f.File,
			Line:     f.Line,
		}))
	}

	return h.next.Handle(ctx, out)
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		masked = append(masked, h.redact(a))
	}
	return &sourceHandler{next: h.next.WithAttrs(masked), withSource: h.withSource, redactKeys: h.redactKeys}
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	return &sourceHandler{next: h.next.WithGroup(name), withSource: h.withSource, redactKeys: h.redactKeys}
}

func (h *sourceHandler) redact(a slog.Attr) slog.Attr {
	if h.redactKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, redactedValue)
	}
	return a
}
