// Package testutil provides shared helpers for unit and integration tests.
package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// LogEntry is one captured log line. Attrs holds the record's attributes
// flattened to [key1, value1, key2, value2, ...] pairs so assertions can use
// attrs.ExtractString.
type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   []any
}

// LogRecorder is a slog.Handler that captures records for assertions instead
// of writing them anywhere.
type LogRecorder struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	with    []any
}

func NewLogRecorder() *LogRecorder {
	return &LogRecorder{
		mu:      &sync.Mutex{},
		entries: &[]LogEntry{},
	}
}

// Logger returns a logger that writes into the recorder.
func (r *LogRecorder) Logger() *slog.Logger {
	return slog.New(r)
}

func (r *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *LogRecorder) Handle(_ context.Context, record slog.Record) error {
	entry := LogEntry{Level: record.Level, Message: record.Message}
	entry.Attrs = append(entry.Attrs, r.with...)
	record.Attrs(func(a slog.Attr) bool {
		entry.Attrs = append(entry.Attrs, a.Key, a.Value.Any())
		return true
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, entry)
	return nil
}

// WithAttrs returns a child handler sharing the same capture buffer.
func (r *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	with := append([]any{}, r.with...)
	for _, a := range attrs {
		with = append(with, a.Key, a.Value.Any())
	}
	return &LogRecorder{mu: r.mu, entries: r.entries, with: with}
}

func (r *LogRecorder) WithGroup(string) slog.Handler { return r }

// Entries returns a copy of everything captured so far.
func (r *LogRecorder) Entries() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LogEntry(nil), *r.entries...)
}

// Last returns the most recent entry, if any.
func (r *LogRecorder) Last() (LogEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(*r.entries) == 0 {
		return LogEntry{}, false
	}
	return (*r.entries)[len(*r.entries)-1], true
}
