package slots

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/example/courtbook/internal/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// insertSQL re-probes for overlap inside the statement itself so concurrent
// generation runs cannot slip a conflicting row in between planning and
// inserting; the unique (resource_id, start_at) constraint is the backstop.
const insertSQL = `
INSERT INTO slots (id, resource_id, start_at, end_at, status)
SELECT $1, $2, $3, $4, 'free'
WHERE NOT EXISTS (
	SELECT 1 FROM slots
	WHERE resource_id = $2 AND start_at < $4 AND end_at > $3
)`

type Report struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

type Store struct{ db *db.DB }

func NewStore(d *db.DB) *Store { return &Store{db: d} }

// PersistCandidates inserts the candidates as free slots, skipping any that
// overlap what is already persisted. The batch phase is a single attempt;
// if it fails for a reason other than overlap, remaining candidates are
// retried one by one so a single bad candidate cannot sink the rest.
func (s *Store) PersistCandidates(ctx context.Context, resourceID uuid.UUID, cands []Candidate) (Report, error) {
	if len(cands) == 0 {
		return Report{}, nil
	}

	from, to := cands[0].Start, cands[0].End
	for _, c := range cands[1:] {
		if c.Start.Before(from) {
			from = c.Start
		}
		if c.End.After(to) {
			to = c.End
		}
	}

	existing, err := s.listWindow(ctx, resourceID, from, to)
	if err != nil {
		return Report{}, err
	}

	insert, skipped := Plan(existing, cands)
	rep := Report{Skipped: skipped}
	if len(insert) == 0 {
		return rep, nil
	}

	inserted, err := s.insertBatch(ctx, resourceID, insert)
	if err == nil {
		rep.Inserted = inserted
		rep.Skipped += len(insert) - inserted
		return rep, nil
	}
	log.Printf("slots: batch insert failed, falling back to per-candidate: %v", err)

	for _, c := range insert {
		n, err := s.db.Exec(ctx, insertSQL, uuid.New(), resourceID, c.Start, c.End)
		if err != nil {
			if isConstraint(err) {
				rep.Skipped++
				continue
			}
			log.Printf("slots: insert candidate %s failed: %v", c.Start.Format(time.RFC3339), err)
			rep.Skipped++
			continue
		}
		if n == 0 {
			rep.Skipped++
			continue
		}
		rep.Inserted++
	}
	return rep, nil
}

func (s *Store) insertBatch(ctx context.Context, resourceID uuid.UUID, cands []Candidate) (int, error) {
	b := &pgx.Batch{}
	for _, c := range cands {
		b.Queue(insertSQL, uuid.New(), resourceID, c.Start, c.End)
	}

	br := s.db.SendBatch(ctx, b)
	defer br.Close()

	inserted := 0
	for range cands {
		tag, err := br.Exec()
		if err != nil {
			return 0, err
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (s *Store) listWindow(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]Slot, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, resource_id, start_at, end_at, status
FROM slots
WHERE resource_id=$1 AND start_at < $3 AND end_at > $2
ORDER BY start_at`, resourceID, from, to)
	if err != nil {
		return nil, err
	}
	return scanSlots(rows)
}

// ListFree returns free slots with start in [from, to), ascending.
func (s *Store) ListFree(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]Slot, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, resource_id, start_at, end_at, status
FROM slots
WHERE resource_id=$1 AND status='free' AND start_at >= $2 AND start_at < $3
ORDER BY start_at`, resourceID, from, to)
	if err != nil {
		return nil, err
	}
	return scanSlots(rows)
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (Slot, error) {
	var sl Slot
	err := s.db.QueryRow(ctx, `
SELECT id, resource_id, start_at, end_at, status FROM slots WHERE id=$1`, id).
		Scan(&sl.ID, &sl.ResourceID, &sl.Start, &sl.End, &sl.Status)
	if err != nil {
		return Slot{}, db.WrapNotFound(err)
	}
	return sl, nil
}

// Transition flips the slot's status from one value to another as a single
// conditional update. It reports false, not an error, when the slot was not
// in the expected state; losing this race is ordinary behavior.
func (s *Store) Transition(ctx context.Context, id uuid.UUID, from, to Status) (bool, error) {
	n, err := s.db.Exec(ctx, `UPDATE slots SET status=$3 WHERE id=$1 AND status=$2`, id, from, to)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func scanSlots(rows db.Rows) ([]Slot, error) {
	defer rows.Close()
	var out []Slot
	for rows.Next() {
		var sl Slot
		if err := rows.Scan(&sl.ID, &sl.ResourceID, &sl.Start, &sl.End, &sl.Status); err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

func isConstraint(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 23505 unique_violation, 23514 check_violation
	return pgErr.Code == "23505" || pgErr.Code == "23514"
}
