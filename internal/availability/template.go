package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidTemplate = errors.New("invalid availability template")

// TimeOfDay is a wall-clock time within a day, minute granularity.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	// accept "HH:MM" and "HH:MM:SS"
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) Before(o TimeOfDay) bool { return t.Minutes() < o.Minutes() }

// DayRule is one weekday's open/close window.
type DayRule struct {
	Enabled bool
	Open    TimeOfDay
	Close   TimeOfDay
}

// WeekTemplate holds exactly one rule per weekday, indexed by Weekday.
// The zero value is a fully disabled week.
type WeekTemplate [7]DayRule

func (t WeekTemplate) Validate() error {
	for d, rule := range t {
		if !rule.Enabled {
			continue
		}
		if !rule.Open.Before(rule.Close) {
			return fmt.Errorf("%w: %s open %s not before close %s",
				ErrInvalidTemplate, Weekday(d), rule.Open, rule.Close)
		}
	}
	return nil
}
