package availability

import (
	"testing"
	"time"

	"github.com/example/courtbook/internal/slots"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-08-24 is a Monday.
var monday = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

func mondayOnly(open, close TimeOfDay) WeekTemplate {
	var tpl WeekTemplate
	tpl[Monday] = DayRule{Enabled: true, Open: open, Close: close}
	return tpl
}

func TestExpandTruncatedFinalSlot(t *testing.T) {
	tpl := mondayOnly(TimeOfDay{8, 0}, TimeOfDay{8, 50})

	got := Expand(tpl, time.UTC, monday, 1, 30*time.Minute)
	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2026, 8, 24, 8, 30, 0, 0, time.UTC), got[0].End)
	assert.Equal(t, time.Date(2026, 8, 24, 8, 30, 0, 0, time.UTC), got[1].Start)
	// final chunk truncated to close, 20 minutes
	assert.Equal(t, time.Date(2026, 8, 24, 8, 50, 0, 0, time.UTC), got[1].End)
}

func TestExpandWindowShorterThanSlot(t *testing.T) {
	tpl := mondayOnly(TimeOfDay{8, 0}, TimeOfDay{8, 20})
	assert.Empty(t, Expand(tpl, time.UTC, monday, 1, 30*time.Minute))
}

func TestExpandDisabledDay(t *testing.T) {
	var tpl WeekTemplate
	tpl[Tuesday] = DayRule{Enabled: true, Open: TimeOfDay{9, 0}, Close: TimeOfDay{11, 0}}

	got := Expand(tpl, time.UTC, monday, 14, time.Hour)
	// two Tuesdays in 14 days, two slots each; nothing on any other weekday
	require.Len(t, got, 4)
	for _, c := range got {
		assert.Equal(t, Tuesday, WeekdayOf(c.Start.UTC()))
	}
}

func TestExpandDegenerateInputs(t *testing.T) {
	tpl := mondayOnly(TimeOfDay{8, 0}, TimeOfDay{17, 0})

	assert.Empty(t, Expand(tpl, time.UTC, monday, 0, time.Hour))
	assert.Empty(t, Expand(tpl, time.UTC, monday, -3, time.Hour))
	assert.Empty(t, Expand(tpl, time.UTC, monday, 7, 0))
	assert.Empty(t, Expand(tpl, time.UTC, monday, 7, -time.Minute))

	// close before open means no availability, not an error
	inverted := mondayOnly(TimeOfDay{17, 0}, TimeOfDay{8, 0})
	assert.Empty(t, Expand(inverted, time.UTC, monday, 7, time.Hour))

	same := mondayOnly(TimeOfDay{8, 0}, TimeOfDay{8, 0})
	assert.Empty(t, Expand(same, time.UTC, monday, 7, time.Hour))
}

func TestExpandSortedAndNonOverlapping(t *testing.T) {
	var tpl WeekTemplate
	for d := Monday; d <= Sunday; d++ {
		tpl[d] = DayRule{Enabled: true, Open: TimeOfDay{9, 0}, Close: TimeOfDay{17, 0}}
	}

	got := Expand(tpl, time.UTC, monday, 14, time.Hour)
	require.Len(t, got, 14*8)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Start.Before(got[i].Start), "ascending by start")
		assert.False(t, slots.Overlaps(got[i-1].Start, got[i-1].End, got[i].Start, got[i].End))
	}
}

func TestExpandLocalZoneComposition(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	tpl := mondayOnly(TimeOfDay{8, 0}, TimeOfDay{10, 0})

	got := Expand(tpl, loc, monday, 1, time.Hour)
	require.Len(t, got, 2)
	// 08:00 local is 06:00 UTC
	assert.Equal(t, time.Date(2026, 8, 24, 6, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.UTC, got[0].Start.Location())
}

func TestExpandStartsFromReferenceDate(t *testing.T) {
	// a reference instant mid-day still generates that whole day's window
	midday := time.Date(2026, 8, 24, 13, 45, 0, 0, time.UTC)
	tpl := mondayOnly(TimeOfDay{8, 0}, TimeOfDay{10, 0})

	got := Expand(tpl, time.UTC, midday, 1, time.Hour)
	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC), got[0].Start)
}

func TestExpandPure(t *testing.T) {
	tpl := mondayOnly(TimeOfDay{8, 0}, TimeOfDay{12, 0})
	a := Expand(tpl, time.UTC, monday, 7, time.Hour)
	b := Expand(tpl, time.UTC, monday, 7, time.Hour)
	assert.Equal(t, a, b)
}
