package gen

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/fvbommel/sortorder"

	"github.com/syssam/mapgen/compiler/genlog"
)

// Report summarizes one generation run.
type Report struct {
	RunID     string
	Entries   []genlog.Entry
	Generated int
	Skipped   int
	Failed    int
	// Errors holds the failure of every failed type.
	Errors []*GenerationError
	// LogErr holds the failures of recording to the generation log.
	LogErr error
	// TeardownErr holds the teardown failures. It never fails the run.
	TeardownErr error

	mu sync.Mutex
}

func newReport(runID string) *Report {
	return &Report{RunID: runID}
}

func (r *Report) add(e genlog.Entry, err *GenerationError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, e)
	switch e.Status {
	case genlog.StatusGenerated:
		r.Generated++
	case genlog.StatusSkipped:
		r.Skipped++
	case genlog.StatusFailed:
		r.Failed++
		r.Errors = append(r.Errors, err)
	}
}

func (r *Report) addLogErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LogErr = errors.Join(r.LogErr, err)
}

// finish orders entries and errors by type name.
func (r *Report) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	slices.SortFunc(r.Entries, func(a, b genlog.Entry) int {
		return compareNatural(a.Type, b.Type)
	})
	slices.SortFunc(r.Errors, func(a, b *GenerationError) int {
		return compareNatural(a.Type, b.Type)
	})
}

func compareNatural(a, b string) int {
	switch {
	case sortorder.NaturalLess(a, b):
		return -1
	case sortorder.NaturalLess(b, a):
		return 1
	}
	return strings.Compare(a, b)
}

// Total returns the number of recorded types.
func (r *Report) Total() int {
	return r.Generated + r.Skipped + r.Failed
}

// Entry returns the entry of a type.
func (r *Report) Entry(typ string) (genlog.Entry, bool) {
	for _, e := range r.Entries {
		if e.Type == typ {
			return e, true
		}
	}
	return genlog.Entry{}, false
}

// Err joins the errors of the failed types.
func (r *Report) Err() error {
	errs := make([]error, len(r.Errors))
	for i, err := range r.Errors {
		errs[i] = err
	}
	return errors.Join(errs...)
}
