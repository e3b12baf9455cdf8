package logging

import (
	"context"
	"log/slog"
)

// trailingAttrsHandler appends fixed attributes (run and session identifiers)
// after each record's own attributes so they sort last in console output.
type trailingAttrsHandler struct {
	base  slog.Handler
	attrs []slog.Attr
}

func newTrailingAttrsHandler(base slog.Handler, attrs ...slog.Attr) slog.Handler {
	if base == nil {
		return NoopHandler{}
	}
	return &trailingAttrsHandler{base: base, attrs: attrs}
}

func (h *trailingAttrsHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *trailingAttrsHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(h.attrs...)
	return h.base.Handle(ctx, record)
}

func (h *trailingAttrsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &trailingAttrsHandler{base: h.base.WithAttrs(attrs), attrs: h.attrs}
}

func (h *trailingAttrsHandler) WithGroup(name string) slog.Handler {
	return &trailingAttrsHandler{base: h.base.WithGroup(name), attrs: h.attrs}
}
