// Package logbuf keeps recent log entries in memory so the back-office can
// inspect them without shell access to the server.
package logbuf

import (
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

const (
	defaultCapacity = 2000
	errorCapacity   = 200
)

// Entry is one captured log record
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// Buffer is a fixed-size ring of recent log entries with a separate, smaller
// ring for errors. Safe for concurrent use.
type Buffer struct {
	mu       sync.Mutex
	entries  []Entry
	errors   []Entry
	capacity int
	start    time.Time
}

func NewBuffer() *Buffer {
	return &Buffer{
		capacity: defaultCapacity,
		start:    time.Now(),
	}
}

// Append records an entry, evicting the oldest once full
func (b *Buffer) Append(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, e)
	if len(b.entries) > b.capacity {
		b.entries = b.entries[len(b.entries)-b.capacity:]
	}

	if e.Level == "error" {
		b.errors = append(b.errors, e)
		if len(b.errors) > errorCapacity {
			b.errors = b.errors[len(b.errors)-errorCapacity:]
		}
	}
}

// Recent returns up to limit newest entries, optionally filtered by level
func (b *Buffer) Recent(limit int, level string) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	src := b.entries
	if level != "" {
		filtered := make([]Entry, 0, len(src))
		for _, e := range src {
			if e.Level == level {
				filtered = append(filtered, e)
			}
		}
		src = filtered
	}
	return tail(src, limit)
}

// Errors returns up to limit newest error entries
func (b *Buffer) Errors(limit int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return tail(b.errors, limit)
}

// Stats summarizes the buffer for the admin dashboard
type Stats struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	TotalLogs     int     `json:"total_logs"`
	ErrorCount    int     `json:"error_count"`
}

func (b *Buffer) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		UptimeSeconds: time.Since(b.start).Seconds(),
		TotalLogs:     len(b.entries),
		ErrorCount:    len(b.errors),
	}
}

// Clear drops all captured entries
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
	b.errors = nil
}

func tail(entries []Entry, limit int) []Entry {
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	out := make([]Entry, limit)
	copy(out, entries[len(entries)-limit:])
	return out
}

// Core is a zapcore.Core that tees log records into a Buffer. Wire it with
// zapcore.NewTee next to the main console core.
type Core struct {
	zapcore.LevelEnabler
	buffer *Buffer
	fields []zapcore.Field
}

func NewCore(buffer *Buffer, enabler zapcore.LevelEnabler) *Core {
	return &Core{LevelEnabler: enabler, buffer: buffer}
}

func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := &Core{LevelEnabler: c.LevelEnabler, buffer: c.buffer}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

func (c *Core) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *Core) Write(entry zapcore.Entry, _ []zapcore.Field) error {
	c.buffer.Append(Entry{
		Timestamp: entry.Time,
		Level:     entry.Level.String(),
		Message:   entry.Message,
	})
	return nil
}

func (c *Core) Sync() error { return nil }
