package logger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/morler/codeassist/logger/contracts"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)     {}
func (nopLogger) Warning(string, ...any)  {}
func (nopLogger) Critical(string, ...any) {}

// Nop returns a logger that discards everything.
func Nop() contracts.ILogger { return nopLogger{} }

// Entry is one captured log line.
type Entry struct {
	Level   string
	Message string
}

// Recorder keeps every message in memory so tests can assert on them.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) record(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (r *Recorder) Info(format string, args ...any)     { r.record("info", format, args...) }
func (r *Recorder) Warning(format string, args ...any)  { r.record("warning", format, args...) }
func (r *Recorder) Critical(format string, args ...any) { r.record("critical", format, args...) }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Contains reports whether any entry at level contains substr.
func (r *Recorder) Contains(level, substr string) bool {
	for _, e := range r.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
