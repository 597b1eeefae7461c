package genlog

import (
	"context"
	"slices"
)

// MemoryLog keeps the entries of the current run in memory.
type MemoryLog struct {
	recorder
	entries []Entry
}

// NewMemoryLog returns an empty in-memory log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// Open implements Log. It drops the entries of a previous run.
func (l *MemoryLog) Open(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.start()
	l.entries = nil
	return nil
}

// Record implements Log.
func (l *MemoryLog) Record(_ context.Context, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.claim(e); err != nil {
		return err
	}
	l.entries = append(l.entries, e)
	return nil
}

// Close implements Log. The entries stay readable.
func (l *MemoryLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stop()
	return nil
}

// Entries returns a copy of the recorded entries in recording order.
func (l *MemoryLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}
