package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/courtbook/internal/db"
	"github.com/example/courtbook/internal/slots"
	"github.com/google/uuid"
)

// SlotStore is the slice of the slot store the transaction needs. The
// Transition implementation must be a single conditional update against
// the persistence layer, never a read-then-write pair.
type SlotStore interface {
	Get(ctx context.Context, id uuid.UUID) (slots.Slot, error)
	Transition(ctx context.Context, id uuid.UUID, from, to slots.Status) (bool, error)
}

// ReservationStore is append-only apart from the status transitions and
// the compensating Remove, all of which only the Service may call.
type ReservationStore interface {
	Insert(ctx context.Context, r Reservation) error
	Remove(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	Get(ctx context.Context, id uuid.UUID) (Reservation, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]Reservation, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID) ([]Reservation, error)
}

// OwnerLookup resolves a resource's owning account for cancel authorization.
type OwnerLookup interface {
	Owner(ctx context.Context, resourceID uuid.UUID) (int64, error)
}

type Service struct {
	Slots        SlotStore
	Reservations ReservationStore
	Owners       OwnerLookup

	// Timeout bounds each attempt of the atomic effect; zero means 5s.
	Timeout time.Duration
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	d := s.Timeout
	if d <= 0 {
		d = 5 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

// Reserve books the slot for the customer: it inserts an active reservation
// and flips the slot free->booked. At most one Reserve per slot ever
// succeeds. Transient storage faults are retried once; both attempts clean
// up after themselves.
func (s *Service) Reserve(ctx context.Context, customerID int64, resourceID, slotID uuid.UUID) (Reservation, error) {
	r, err := s.reserveOnce(ctx, customerID, resourceID, slotID)
	if errors.Is(err, ErrStorage) {
		r, err = s.reserveOnce(ctx, customerID, resourceID, slotID)
	}
	return r, err
}

func (s *Service) reserveOnce(ctx context.Context, customerID int64, resourceID, slotID uuid.UUID) (Reservation, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	sl, err := s.Slots.Get(ctx, slotID)
	if err != nil {
		if db.IsNotFound(err) {
			return Reservation{}, ErrSlotUnavailable
		}
		return Reservation{}, fmt.Errorf("%w: load slot: %v", ErrStorage, err)
	}
	if sl.ResourceID != resourceID || sl.Status != slots.StatusFree {
		return Reservation{}, ErrSlotUnavailable
	}

	r := Reservation{
		ID:         uuid.New(),
		CustomerID: customerID,
		ResourceID: resourceID,
		SlotID:     slotID,
		ReservedAt: sl.Start,
		Status:     StatusActive,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Reservations.Insert(ctx, r); err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			// another active reservation already holds this slot
			return Reservation{}, ErrSlotUnavailable
		}
		return Reservation{}, fmt.Errorf("%w: insert reservation: %v", ErrStorage, err)
	}

	ok, err := s.Slots.Transition(ctx, slotID, slots.StatusFree, slots.StatusBooked)
	if err != nil {
		s.compensateInsert(r.ID)
		return Reservation{}, fmt.Errorf("%w: book slot: %v", ErrStorage, err)
	}
	if !ok {
		// lost the race: the reservation must not survive pointing at a
		// slot someone else booked
		s.compensateInsert(r.ID)
		return Reservation{}, ErrSlotUnavailable
	}

	return r, nil
}

// compensateInsert undoes the reservation insert after a failed slot
// transition. It runs on a fresh context: the caller's may already be dead,
// and leaving an active reservation on an unbooked slot is the one state
// this package exists to prevent.
func (s *Service) compensateInsert(id uuid.UUID) {
	ctx, cancel := s.bound(context.Background())
	defer cancel()
	if err := s.Reservations.Remove(ctx, id); err != nil {
		log.Printf("booking: compensating remove of reservation %s failed: %v", id, err)
	}
}

// Cancel marks the reservation canceled and frees its slot. Canceling an
// already-canceled reservation is a no-op success. The actor must be the
// reservation's customer or the resource owner; identity itself is vouched
// for by the caller.
func (s *Service) Cancel(ctx context.Context, reservationID uuid.UUID, actorID int64) error {
	err := s.cancelOnce(ctx, reservationID, actorID)
	if errors.Is(err, ErrStorage) {
		err = s.cancelOnce(ctx, reservationID, actorID)
	}
	return err
}

func (s *Service) cancelOnce(ctx context.Context, reservationID uuid.UUID, actorID int64) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	r, err := s.Reservations.Get(ctx, reservationID)
	if err != nil {
		if db.IsNotFound(err) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("%w: load reservation: %v", ErrStorage, err)
	}
	if r.Status == StatusCanceled {
		return nil
	}

	if actorID != r.CustomerID {
		owner, err := s.Owners.Owner(ctx, r.ResourceID)
		if err != nil {
			if db.IsNotFound(err) {
				return ErrNotAllowed
			}
			return fmt.Errorf("%w: load owner: %v", ErrStorage, err)
		}
		if owner != actorID {
			return ErrNotAllowed
		}
	}

	if err := s.Reservations.SetStatus(ctx, reservationID, StatusCanceled); err != nil {
		if errors.Is(err, ErrAlreadyCanceled) {
			return nil
		}
		return fmt.Errorf("%w: cancel reservation: %v", ErrStorage, err)
	}

	// A false result means the slot was already free; tolerated as a no-op
	// on the slot side.
	if _, err := s.Slots.Transition(ctx, r.SlotID, slots.StatusBooked, slots.StatusFree); err != nil {
		s.revertCancel(reservationID)
		return fmt.Errorf("%w: free slot: %v", ErrStorage, err)
	}

	return nil
}

func (s *Service) revertCancel(id uuid.UUID) {
	ctx, cancel := s.bound(context.Background())
	defer cancel()
	if err := s.Reservations.SetStatus(ctx, id, StatusActive); err != nil {
		log.Printf("booking: reverting cancel of reservation %s failed: %v", id, err)
	}
}
