package availability

import (
	"time"

	"github.com/example/courtbook/internal/slots"
)

// Expand turns a weekly template into concrete candidate intervals for
// horizonDays days starting at now's calendar date in loc. It is a pure
// function: same inputs, same output, strictly ascending by start, no two
// intervals overlapping.
//
// The final chunk of a day's window is truncated to end exactly at close
// when slotLen does not divide the window; a window shorter than one slot
// produces nothing for that day. Degenerate inputs (disabled day, close not
// after open, non-positive slotLen or horizonDays) mean "no availability",
// never an error.
func Expand(tpl WeekTemplate, loc *time.Location, now time.Time, horizonDays int, slotLen time.Duration) []slots.Candidate {
	if horizonDays <= 0 || slotLen <= 0 {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	local := now.In(loc)
	var out []slots.Candidate

	for offset := 0; offset < horizonDays; offset++ {
		day := time.Date(local.Year(), local.Month(), local.Day()+offset, 0, 0, 0, 0, loc)
		rule := tpl[WeekdayOf(day)]
		if !rule.Enabled {
			continue
		}

		open := time.Date(day.Year(), day.Month(), day.Day(), rule.Open.Hour, rule.Open.Minute, 0, 0, loc)
		close := time.Date(day.Year(), day.Month(), day.Day(), rule.Close.Hour, rule.Close.Minute, 0, 0, loc)
		if !close.After(open) {
			continue
		}

		for start := open; start.Before(close); {
			end := start.Add(slotLen)
			if end.After(close) {
				if start.Equal(open) {
					// window shorter than one slot
					break
				}
				end = close
			}
			out = append(out, slots.Candidate{Start: start.UTC(), End: end.UTC()})
			start = end
		}
	}
	return out
}
