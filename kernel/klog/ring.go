package klog

import (
	"context"
	"log/slog"
)

// Sink receives one formatted record. Environment.Log matches this
// signature, so RingHandler can mirror slog output straight into the
// kernel's in-memory log ring (spec.md §3's Environment.logs) without
// klog importing the environment package back.
type Sink func(level slog.Level, message string)

// RingHandler adapts a Sink to the slog.Handler interface, formatting
// each record as "msg key=value key=value...".
type RingHandler struct {
	sink  Sink
	attrs []slog.Attr
}

// NewRingHandler returns a RingHandler that calls sink for every
// record it handles.
func NewRingHandler(sink Sink) *RingHandler {
	return &RingHandler{sink: sink}
}

// Enabled implements slog.Handler; the ring records everything the
// wrapped primary handler would also record.
func (h *RingHandler) Enabled(context.Context, slog.Level) bool { return true }

// Handle implements slog.Handler.
func (h *RingHandler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message
	for _, a := range h.attrs {
		msg += " " + a.Key + "=" + a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		msg += " " + a.Key + "=" + a.Value.String()
		return true
	})
	if h.sink != nil {
		h.sink(r.Level, msg)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *RingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RingHandler{sink: h.sink, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

// WithGroup implements slog.Handler; groups are flattened since the
// ring only keeps a single message string.
func (h *RingHandler) WithGroup(string) slog.Handler { return h }

// teeHandler fans every record out to a primary handler and a ring.
type teeHandler struct {
	primary slog.Handler
	ring    *RingHandler
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.primary.Enabled(ctx, level)
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	t.ring.Handle(ctx, r)
	return t.primary.Handle(ctx, r)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{primary: t.primary.WithAttrs(attrs), ring: t.ring.WithAttrs(attrs).(*RingHandler)}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{primary: t.primary.WithGroup(name), ring: t.ring}
}
