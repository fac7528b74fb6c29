// Package slots holds concrete bookable time intervals and their store.
package slots

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusFree   Status = "free"
	StatusBooked Status = "booked"
)

type Slot struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	Start      time.Time
	End        time.Time
	Status     Status
}

// Candidate is a generated interval that has not been persisted yet.
type Candidate struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
