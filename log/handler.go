// Package log provides structured logging (slog) routed through the
// binding layer: records flow into a sink with the uniform call shape,
// so a bound member of an exposed class can serve as the log backend.
package log

import (
	"context"
	"log/slog"
	"runtime"
	"strconv"

	"github.com/embervm/bindsdk/call"
)

// Handler implements slog.Handler on top of a call.Func sink. Each
// record is delivered as three arguments: the level name, the message,
// and a flat attribute list.
type Handler struct {
	sink  call.Func
	opts  handlerConfig
	attrs []any
	group string
}

// HandlerOption configures the Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Level
	addSource bool
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to forward. Records below this
// level never reach the sink.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file:line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// NewHandler creates a Handler forwarding records to sink.
func NewHandler(sink call.Func, opts ...HandlerOption) *Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{sink: sink, opts: cfg}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// Handle forwards one record to the sink. The sink's error is the
// handler's error.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	attrs := make([]any, 0, len(h.attrs)+3*record.NumAttrs()+3)
	attrs = append(attrs, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		attrs = appendAttr(attrs, h.group, attr)
		return true
	})
	if h.opts.addSource && record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		attrs = append(attrs, "source", "string", frame.File+":"+strconv.Itoa(frame.Line))
	}

	_, err := h.sink(ctx, []any{record.Level.String(), record.Message, attrs})
	return err
}

// WithAttrs returns a Handler that includes the given attributes in
// every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := *h
	newHandler.attrs = append(append([]any(nil), h.attrs...), flattenAttrs(h.group, attrs)...)
	return &newHandler
}

// WithGroup returns a Handler that prefixes subsequent attribute keys
// with the group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	newHandler := *h
	if name != "" {
		newHandler.group = h.group + name + "."
	}
	return &newHandler
}

func flattenAttrs(group string, attrs []slog.Attr) []any {
	out := make([]any, 0, 3*len(attrs))
	for _, attr := range attrs {
		out = appendAttr(out, group, attr)
	}
	return out
}
