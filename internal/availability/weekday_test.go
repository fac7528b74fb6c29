package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayOf(t *testing.T) {
	cases := []struct {
		date string
		want Weekday
	}{
		{"2026-08-24", Monday},
		{"2026-08-25", Tuesday},
		{"2026-08-28", Friday},
		{"2026-08-29", Saturday},
		{"2026-08-30", Sunday},
	}
	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, WeekdayOf(d), tc.date)
	}
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Sunday", Sunday.String())
	assert.Equal(t, "invalid", Weekday(7).String())
	assert.False(t, Weekday(-1).Valid())
	assert.True(t, Wednesday.Valid())
}
