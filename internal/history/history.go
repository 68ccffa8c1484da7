// Package history keeps the append-only log of triggered notes that the
// scheduler hands to the generative model as context.
package history

import (
	"sync"

	"github.com/leandrodaf/piano/sdk/contracts"
)

// Log is an append-only ordered log of notes. Appends and queries may happen
// concurrently; a query never observes a partially appended note.
type Log struct {
	mu    sync.RWMutex
	notes []contracts.Note
}

// NewLog creates an empty note log.
func NewLog() *Log {
	return &Log{}
}

// Append records a note. Insertion order is preserved.
func (l *Log) Append(note contracts.Note) {
	l.mu.Lock()
	l.notes = append(l.notes, note)
	l.mu.Unlock()
}

// Since returns, in insertion order, every note with a clock position at or
// after start. The lookback window is open-ended above.
func (l *Log) Since(start contracts.Ticks) []contracts.Note {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var res []contracts.Note
	for _, n := range l.notes {
		if n.Position >= start {
			res = append(res, n)
		}
	}
	return res
}

// Len returns the number of notes recorded so far.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.notes)
}
