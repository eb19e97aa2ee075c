// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

type ctxKey string

const (
	slogFields      ctxKey = "slog_fields"
	logLevelDefault        = slog.LevelInfo

	debug = "debug"
	warn  = "warn"
	info  = "info"
	erro  = "error"

	formatText = "text"
)

type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the context behavior on derived handlers
func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the context behavior on derived handlers
func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	v, _ := parent.Value(slogFields).([]slog.Attr)
	// copy so sibling contexts never share a backing array
	attrs := make([]slog.Attr, 0, len(v)+1)
	attrs = append(attrs, v...)
	attrs = append(attrs, attr)
	return context.WithValue(parent, slogFields, attrs)
}

// ParseLevel maps the LOG_LEVEL values to a slog level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case debug:
		return slog.LevelDebug
	case warn:
		return slog.LevelWarn
	case erro:
		return slog.LevelError
	case info:
		return slog.LevelInfo
	default:
		return logLevelDefault
	}
}

// NewHandler builds the service handler writing to w
func NewHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if strings.ToLower(format) == formatText {
		return contextHandler{slog.NewTextHandler(w, opts)}
	}
	return contextHandler{slog.NewJSONHandler(w, opts)}
}

// InitStructureLogConfig sets the structured log behavior from LOG_LEVEL,
// LOG_ADD_SOURCE and LOG_FORMAT
func InitStructureLogConfig() {

	logOptions := &slog.HandlerOptions{
		Level:     ParseLevel(os.Getenv("LOG_LEVEL")),
		AddSource: os.Getenv("LOG_ADD_SOURCE") == "true",
	}
	format := os.Getenv("LOG_FORMAT")

	log.SetFlags(log.Llongfile)
	slog.SetDefault(slog.New(NewHandler(os.Stdout, format, logOptions)))

	slog.Info("log config",
		"level", logOptions.Level,
		"add_source", logOptions.AddSource,
		"format", format,
	)
}
