package availability

import (
	"context"
	"fmt"

	"github.com/example/courtbook/internal/db"
	"github.com/google/uuid"
)

type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

// Upsert stores all seven weekday rules for the resource. The template is
// configuration, not an entity: writing it again replaces it.
func (r *Repo) Upsert(ctx context.Context, resourceID uuid.UUID, tpl WeekTemplate) error {
	if err := tpl.Validate(); err != nil {
		return err
	}
	for d, rule := range tpl {
		_, err := r.db.Exec(ctx, `
INSERT INTO availability_templates (resource_id, weekday, enabled, open_time, close_time, updated_at)
VALUES ($1,$2,$3,$4,$5,now())
ON CONFLICT (resource_id, weekday)
DO UPDATE SET enabled=EXCLUDED.enabled, open_time=EXCLUDED.open_time, close_time=EXCLUDED.close_time, updated_at=now()`,
			resourceID, d, rule.Enabled, rule.Open.String(), rule.Close.String())
		if err != nil {
			return fmt.Errorf("upsert weekday %s: %w", Weekday(d), err)
		}
	}
	return nil
}

// Get loads the resource's template; weekdays with no stored row come back
// disabled.
func (r *Repo) Get(ctx context.Context, resourceID uuid.UUID) (WeekTemplate, error) {
	var tpl WeekTemplate

	rows, err := r.db.Query(ctx, `
SELECT weekday, enabled, open_time, close_time
FROM availability_templates
WHERE resource_id=$1
ORDER BY weekday`, resourceID)
	if err != nil {
		return tpl, err
	}
	defer rows.Close()

	for rows.Next() {
		var day int
		var enabled bool
		var openStr, closeStr string
		if err := rows.Scan(&day, &enabled, &openStr, &closeStr); err != nil {
			return tpl, err
		}
		if !Weekday(day).Valid() {
			return tpl, fmt.Errorf("stored weekday %d out of range", day)
		}
		open, err := ParseTimeOfDay(openStr)
		if err != nil {
			return tpl, err
		}
		closeAt, err := ParseTimeOfDay(closeStr)
		if err != nil {
			return tpl, err
		}
		tpl[day] = DayRule{Enabled: enabled, Open: open, Close: closeAt}
	}
	return tpl, rows.Err()
}
