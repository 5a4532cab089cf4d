// Package testutil provides test helpers: a slog logger bound to the test
// and SQLite fixtures.
package testutil

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NewTestLogger returns a debug-level logger that writes to t.Log, so model
// and metastore logs only show up for failing tests or with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	logger, _ := NewRecordingLogger(t)
	return logger
}

// Recorder keeps the records a logger emitted, for asserting that a failure
// was logged rather than returned.
type Recorder struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewRecordingLogger returns a logger that writes to t.Log and records every
// record it handles.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	h := &recordingHandler{
		rec:  rec,
		next: slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	return slog.New(h), rec
}

// Messages returns the messages logged at level, in order. Attributes are
// appended as key=value.
func (r *Recorder) Messages(level slog.Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, rec := range r.records {
		if rec.Level != level {
			continue
		}
		var b strings.Builder
		b.WriteString(rec.Message)
		rec.Attrs(func(a slog.Attr) bool {
			fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
			return true
		})
		out = append(out, b.String())
	}
	return out
}

// Warnings is Messages(slog.LevelWarn).
func (r *Recorder) Warnings() []string { return r.Messages(slog.LevelWarn) }

type recordingHandler struct {
	rec   *Recorder
	next  slog.Handler
	attrs []slog.Attr
}

func (h *recordingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *recordingHandler) Handle(ctx context.Context, r slog.Record) error {
	stored := r.Clone()
	stored.AddAttrs(h.attrs...)
	h.rec.mu.Lock()
	h.rec.records = append(h.rec.records, stored)
	h.rec.mu.Unlock()
	return h.next.Handle(ctx, r)
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recordingHandler{
		rec:   h.rec,
		next:  h.next.WithAttrs(attrs),
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *recordingHandler) WithGroup(name string) slog.Handler {
	return &recordingHandler{rec: h.rec, next: h.next.WithGroup(name), attrs: h.attrs}
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
