package slots

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

func cand(startHour, startMin, endHour, endMin int) Candidate {
	return Candidate{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func asSlot(c Candidate, st Status) Slot {
	return Slot{ID: uuid.New(), ResourceID: uuid.New(), Start: c.Start, End: c.End, Status: st}
}

func TestPlanAllNewInserted(t *testing.T) {
	cands := []Candidate{cand(8, 0, 9, 0), cand(9, 0, 10, 0), cand(10, 0, 11, 0)}
	insert, skipped := Plan(nil, cands)
	assert.Equal(t, cands, insert)
	assert.Zero(t, skipped)
}

func TestPlanSecondRunAllSkipped(t *testing.T) {
	cands := []Candidate{cand(8, 0, 9, 0), cand(9, 0, 10, 0)}

	first, skipped := Plan(nil, cands)
	require.Len(t, first, 2)
	require.Zero(t, skipped)

	existing := make([]Slot, 0, len(first))
	for _, c := range first {
		existing = append(existing, asSlot(c, StatusFree))
	}

	insert, skipped := Plan(existing, cands)
	assert.Empty(t, insert)
	assert.Equal(t, 2, skipped)
}

func TestPlanSkipsOverlapAnyStatus(t *testing.T) {
	existing := []Slot{asSlot(cand(8, 30, 9, 30), StatusBooked)}

	insert, skipped := Plan(existing, []Candidate{
		cand(8, 0, 9, 0),   // overlaps tail of existing
		cand(9, 0, 10, 0),  // overlaps head of existing
		cand(10, 0, 11, 0), // clear
	})
	require.Len(t, insert, 1)
	assert.Equal(t, cand(10, 0, 11, 0), insert[0])
	assert.Equal(t, 2, skipped)
}

func TestPlanAdjacentIsNotOverlap(t *testing.T) {
	existing := []Slot{asSlot(cand(9, 0, 10, 0), StatusFree)}

	insert, skipped := Plan(existing, []Candidate{cand(8, 0, 9, 0), cand(10, 0, 11, 0)})
	assert.Len(t, insert, 2)
	assert.Zero(t, skipped)
}

func TestPlanDeConflictsCandidates(t *testing.T) {
	insert, skipped := Plan(nil, []Candidate{
		cand(8, 0, 9, 0),
		cand(8, 0, 9, 0),   // duplicate
		cand(8, 30, 9, 30), // overlaps first
	})
	require.Len(t, insert, 1)
	assert.Equal(t, 2, skipped)
}

func TestPlanSkipsZeroLength(t *testing.T) {
	insert, skipped := Plan(nil, []Candidate{cand(8, 0, 8, 0), cand(9, 0, 8, 0)})
	assert.Empty(t, insert)
	assert.Equal(t, 2, skipped)
}
