package query

import "time"

// OrderQuery holds the conditions of order lookups.
type OrderQuery struct {
	CustomerIDEQ *int64
	StatusIN     []int
	CreatedAtGTE *time.Time
	NoteNL       bool
}
