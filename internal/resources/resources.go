// Package resources is the thin registry behind the facility-metadata
// boundary: enough to check that a resource exists, who owns it, and which
// time zone its availability is expressed in. Full facility CRUD lives
// outside this service.
package resources

import (
	"context"
	"fmt"
	"time"

	"github.com/example/courtbook/internal/db"
	"github.com/google/uuid"
)

type Resource struct {
	ID        uuid.UUID
	OwnerID   int64
	Name      string
	Timezone  string
	CreatedAt time.Time
}

// Location resolves the resource's IANA zone.
func (r Resource) Location() (*time.Location, error) {
	return time.LoadLocation(r.Timezone)
}

type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

func (r *Repo) Create(ctx context.Context, ownerID int64, name, timezone string) (Resource, error) {
	if name == "" {
		return Resource{}, fmt.Errorf("name required")
	}
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return Resource{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	res := Resource{ID: uuid.New(), OwnerID: ownerID, Name: name, Timezone: timezone}
	err := r.db.QueryRow(ctx, `
INSERT INTO resources(id, owner_id, name, timezone)
VALUES ($1,$2,$3,$4)
RETURNING created_at`,
		res.ID, res.OwnerID, res.Name, res.Timezone,
	).Scan(&res.CreatedAt)
	if err != nil {
		return Resource{}, db.WrapNotFound(err)
	}
	return res, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (Resource, error) {
	var res Resource
	err := r.db.QueryRow(ctx, `
SELECT id, owner_id, name, timezone, created_at FROM resources WHERE id=$1`, id).
		Scan(&res.ID, &res.OwnerID, &res.Name, &res.Timezone, &res.CreatedAt)
	if err != nil {
		return Resource{}, db.WrapNotFound(err)
	}
	return res, nil
}

// Owner reports the owning account for authorization at the boundary.
func (r *Repo) Owner(ctx context.Context, id uuid.UUID) (int64, error) {
	var owner int64
	err := r.db.QueryRow(ctx, `SELECT owner_id FROM resources WHERE id=$1`, id).Scan(&owner)
	if err != nil {
		return 0, db.WrapNotFound(err)
	}
	return owner, nil
}

func (r *Repo) List(ctx context.Context) ([]Resource, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, owner_id, name, timezone, created_at FROM resources ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resource
	for rows.Next() {
		var res Resource
		if err := rows.Scan(&res.ID, &res.OwnerID, &res.Name, &res.Timezone, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// ListTemplated returns resources with at least one enabled availability
// entry; the horizon keeper only needs to look at these.
func (r *Repo) ListTemplated(ctx context.Context) ([]Resource, error) {
	rows, err := r.db.Query(ctx, `
SELECT DISTINCT r.id, r.owner_id, r.name, r.timezone, r.created_at
FROM resources r
JOIN availability_templates t ON t.resource_id = r.id AND t.enabled
ORDER BY r.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resource
	for rows.Next() {
		var res Resource
		if err := rows.Scan(&res.ID, &res.OwnerID, &res.Name, &res.Timezone, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
