package web

import (
	"testing"

	"github.com/example/courtbook/internal/availability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateFromPayload(t *testing.T) {
	tpl, err := templateFromPayload([]dayPayload{
		{Weekday: "monday", Enabled: true, Open: "08:00", Close: "17:00"},
		{Weekday: "Saturday", Enabled: true, Open: "10:00", Close: "14:00"},
	})
	require.NoError(t, err)

	assert.True(t, tpl[availability.Monday].Enabled)
	assert.Equal(t, availability.TimeOfDay{Hour: 8}, tpl[availability.Monday].Open)
	assert.True(t, tpl[availability.Saturday].Enabled)

	// days left out of the payload stay disabled
	assert.False(t, tpl[availability.Tuesday].Enabled)
	assert.False(t, tpl[availability.Sunday].Enabled)
}

func TestTemplateFromPayloadUnknownWeekday(t *testing.T) {
	_, err := templateFromPayload([]dayPayload{
		{Weekday: "funday", Enabled: true, Open: "08:00", Close: "17:00"},
	})
	assert.ErrorIs(t, err, availability.ErrInvalidTemplate)
}

func TestTemplateFromPayloadBadWindow(t *testing.T) {
	_, err := templateFromPayload([]dayPayload{
		{Weekday: "Monday", Enabled: true, Open: "17:00", Close: "08:00"},
	})
	assert.ErrorIs(t, err, availability.ErrInvalidTemplate)

	_, err = templateFromPayload([]dayPayload{
		{Weekday: "Monday", Enabled: true, Open: "8am", Close: "17:00"},
	})
	assert.Error(t, err)
}

func TestTemplateFromPayloadDisabledSkipsTimes(t *testing.T) {
	// disabled entries may omit the window entirely
	tpl, err := templateFromPayload([]dayPayload{
		{Weekday: "Wednesday", Enabled: false},
	})
	require.NoError(t, err)
	assert.False(t, tpl[availability.Wednesday].Enabled)
}

func TestParseWeekday(t *testing.T) {
	wd, err := parseWeekday("TUESDAY")
	require.NoError(t, err)
	assert.Equal(t, availability.Tuesday, wd)

	_, err = parseWeekday("")
	assert.Error(t, err)
}
