// Package genlog records the outcome of every model type processed by a
// generation run. A Log is opened once per run, receives exactly one
// Entry per discovered type and is closed when the run ends.
package genlog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrDuplicateRecord is returned when a type is recorded twice in one run.
	ErrDuplicateRecord = errors.New("genlog: type already recorded")
	// ErrClosed is returned when recording to a log that is not open.
	ErrClosed = errors.New("genlog: log is not open")
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Status -linecomment

// Status is the outcome of one model type.
type Status int

const (
	StatusGenerated Status = iota + 1 // generated
	StatusSkipped                     // skipped
	StatusFailed                      // failed
)

// ParseStatus parses the text form of a status.
func ParseStatus(s string) (Status, error) {
	for st := StatusGenerated; st <= StatusFailed; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("genlog: unknown status %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Entry is the record of one model type.
type Entry struct {
	RunID  string    `json:"run_id"`
	Type   string    `json:"type"`
	Status Status    `json:"status"`
	Reason string    `json:"reason,omitempty"`
	Time   time.Time `json:"time"`
}

// Log is an append-only generation log.
type Log interface {
	// Open starts a run. Records of a previous run do not count as
	// duplicates.
	Open(ctx context.Context) error
	// Record appends one entry. It is safe for concurrent use.
	Record(ctx context.Context, e Entry) error
	// Close ends the run and releases the log.
	Close() error
}

// recorder tracks the types recorded during one run. Sinks hold mu while
// claiming and writing, which serializes the appends.
type recorder struct {
	mu   sync.Mutex
	open bool
	seen map[string]struct{}
}

func (r *recorder) start() {
	r.open = true
	r.seen = make(map[string]struct{})
}

func (r *recorder) stop() {
	r.open = false
	r.seen = nil
}

func (r *recorder) claim(e Entry) error {
	if !r.open {
		return ErrClosed
	}
	if _, ok := r.seen[e.Type]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRecord, e.Type)
	}
	r.seen[e.Type] = struct{}{}
	return nil
}
