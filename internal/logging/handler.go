// Package logging provides the structured JSON slog.Handler the service
// runs under, grounded on the teacher's cloud.go GoogleCloudHandler: one
// JSON object per line with a Cloud-Logging-style "severity" field, so log
// output is directly ingestible by Google Cloud's log viewer without an
// agent-side parser.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"
)

// Handler writes one JSON object per record, mapping slog levels onto
// Google Cloud Logging's "severity" field.
type Handler struct {
	writer io.Writer
	level  slog.Level
	attrs  map[string]any
}

// New builds a Handler that writes to w at minOrAbove and above.
func New(w io.Writer, minOrAbove slog.Level) *Handler {
	return &Handler{writer: w, level: minOrAbove}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler, emitting one JSON line per record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	entry := map[string]any{
		"severity": severity(r.Level),
		"message":  r.Message,
		"time":     r.Time.Format(time.RFC3339Nano),
	}
	for k, v := range h.attrs {
		entry[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.writer).Encode(entry)
}

// WithAttrs implements slog.Handler by merging attrs into every future
// record this handler (or its children) emits.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make(map[string]any, len(h.attrs)+len(attrs))
	for k, v := range h.attrs {
		next.attrs[k] = v
	}
	for _, a := range attrs {
		next.attrs[a.Key] = a.Value.Any()
	}
	return &next
}

// WithGroup implements slog.Handler. Grouping is not represented in the
// flat JSON shape Cloud Logging expects, so this returns the handler
// unchanged, matching the teacher's handler.
func (h *Handler) WithGroup(_ string) slog.Handler {
	return h
}

func severity(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
