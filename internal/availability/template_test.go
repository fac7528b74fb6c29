package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 8, Minute: 30}, tod)
	assert.Equal(t, "08:30", tod.String())

	// seconds are tolerated and ignored
	tod, err = ParseTimeOfDay("17:05:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 17, Minute: 5}, tod)

	for _, bad := range []string{"", "8", "24:00", "12:60", "ab:cd", "-1:00"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimeOfDayBefore(t *testing.T) {
	assert.True(t, TimeOfDay{8, 0}.Before(TimeOfDay{8, 30}))
	assert.False(t, TimeOfDay{8, 30}.Before(TimeOfDay{8, 30}))
	assert.False(t, TimeOfDay{9, 0}.Before(TimeOfDay{8, 30}))
}

func TestWeekTemplateValidate(t *testing.T) {
	var tpl WeekTemplate
	// fully disabled week is valid
	require.NoError(t, tpl.Validate())

	tpl[Monday] = DayRule{Enabled: true, Open: TimeOfDay{8, 0}, Close: TimeOfDay{17, 0}}
	require.NoError(t, tpl.Validate())

	// disabled rules are not checked even with nonsense windows
	tpl[Tuesday] = DayRule{Enabled: false, Open: TimeOfDay{20, 0}, Close: TimeOfDay{8, 0}}
	require.NoError(t, tpl.Validate())

	tpl[Wednesday] = DayRule{Enabled: true, Open: TimeOfDay{17, 0}, Close: TimeOfDay{8, 0}}
	err := tpl.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTemplate)
	assert.Contains(t, err.Error(), "Wednesday")

	// open == close is empty, not a window
	tpl[Wednesday] = DayRule{Enabled: true, Open: TimeOfDay{8, 0}, Close: TimeOfDay{8, 0}}
	assert.ErrorIs(t, tpl.Validate(), ErrInvalidTemplate)
}
