package booking

import (
	"context"
	"errors"

	"github.com/example/courtbook/internal/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store is the postgres ReservationStore. The partial unique index on
// (slot_id) WHERE status='active' backs the at-most-one-active invariant
// even if application-level checks are bypassed.
type Store struct{ db *db.DB }

func NewStore(d *db.DB) *Store { return &Store{db: d} }

func (s *Store) Insert(ctx context.Context, r Reservation) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO reservations (id, customer_id, resource_id, slot_id, status, reserved_at, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		r.ID, r.CustomerID, r.ResourceID, r.SlotID, r.Status, r.ReservedAt, r.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrSlotUnavailable
		}
		return err
	}
	return nil
}

// Remove exists solely as reserve compensation: it deletes a reservation
// that never became observable as successful.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx, `DELETE FROM reservations WHERE id=$1`, id)
	return err
}

func (s *Store) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	var n int64
	var err error
	switch status {
	case StatusCanceled:
		n, err = s.db.Exec(ctx, `
UPDATE reservations SET status='canceled', canceled_at=now()
WHERE id=$1 AND status='active'`, id)
	case StatusActive:
		n, err = s.db.Exec(ctx, `
UPDATE reservations SET status='active', canceled_at=NULL
WHERE id=$1 AND status='canceled'`, id)
	default:
		return errors.New("unknown reservation status")
	}
	if err != nil {
		return err
	}
	if n == 0 {
		if status == StatusCanceled {
			return ErrAlreadyCanceled
		}
		return db.ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (Reservation, error) {
	var r Reservation
	err := s.db.QueryRow(ctx, `
SELECT id, customer_id, resource_id, slot_id, status, reserved_at, created_at, canceled_at
FROM reservations WHERE id=$1`, id).
		Scan(&r.ID, &r.CustomerID, &r.ResourceID, &r.SlotID, &r.Status, &r.ReservedAt, &r.CreatedAt, &r.CanceledAt)
	if err != nil {
		return Reservation{}, db.WrapNotFound(err)
	}
	return r, nil
}

func (s *Store) ListByCustomer(ctx context.Context, customerID int64) ([]Reservation, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, customer_id, resource_id, slot_id, status, reserved_at, created_at, canceled_at
FROM reservations
WHERE customer_id=$1
ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	return scanReservations(rows)
}

func (s *Store) ListByResource(ctx context.Context, resourceID uuid.UUID) ([]Reservation, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, customer_id, resource_id, slot_id, status, reserved_at, created_at, canceled_at
FROM reservations
WHERE resource_id=$1
ORDER BY created_at DESC`, resourceID)
	if err != nil {
		return nil, err
	}
	return scanReservations(rows)
}

func scanReservations(rows db.Rows) ([]Reservation, error) {
	defer rows.Close()
	var out []Reservation
	for rows.Next() {
		var r Reservation
		if err := rows.Scan(&r.ID, &r.CustomerID, &r.ResourceID, &r.SlotID, &r.Status, &r.ReservedAt, &r.CreatedAt, &r.CanceledAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
