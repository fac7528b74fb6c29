// Package booking holds the reserve/cancel transaction: the only place in
// the system that mutates slot status or reservation status.
package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
)

type Reservation struct {
	ID         uuid.UUID
	CustomerID int64
	ResourceID uuid.UUID
	SlotID     uuid.UUID
	// ReservedAt is the slot's start time, denormalized for display.
	ReservedAt time.Time
	Status     Status
	CreatedAt  time.Time
	CanceledAt *time.Time
}

var (
	// ErrSlotUnavailable: the slot does not exist, belongs to another
	// resource, or is no longer free. Expected under contention; the
	// customer should pick another slot.
	ErrSlotUnavailable = errors.New("slot unavailable")

	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAlreadyCanceled travels between store and service only; Cancel
	// treats it as a no-op success so retried client requests are safe.
	ErrAlreadyCanceled = errors.New("reservation already canceled")

	// ErrNotAllowed: the actor is neither the reservation's customer nor
	// the resource owner.
	ErrNotAllowed = errors.New("actor may not act on this reservation")

	// ErrStorage wraps transient persistence failures. The service retries
	// the whole atomic effect once before surfacing it.
	ErrStorage = errors.New("storage unavailable")
)
