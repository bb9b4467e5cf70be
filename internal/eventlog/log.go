// Package eventlog holds the append-only record of everything the world
// bridge does. Entries are kept in call order for the life of the process.
package eventlog

import (
	"fmt"
	"log/slog"
)

// Sink receives every entry as it is appended. Sinks must not block.
type Sink interface {
	Event(seq int, entry string)
}

type Log struct {
	entries []string
	sinks   []Sink
}

func New(sinks ...Sink) *Log {
	return &Log{sinks: sinks}
}

// Attach adds a sink that sees entries appended from now on.
func (l *Log) Attach(s Sink) {
	l.sinks = append(l.sinks, s)
}

func (l *Log) Add(entry string) {
	l.entries = append(l.entries, entry)
	seq := len(l.entries)
	slog.Debug("world event", "seq", seq, "entry", entry)
	for _, s := range l.sinks {
		s.Event(seq, entry)
	}
}

func (l *Log) Addf(format string, args ...any) {
	l.Add(fmt.Sprintf(format, args...))
}

// Entries returns a copy of the log.
func (l *Log) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	return len(l.entries)
}

// Last returns the most recent entry, or "" when the log is empty.
func (l *Log) Last() string {
	if len(l.entries) == 0 {
		return ""
	}
	return l.entries[len(l.entries)-1]
}
