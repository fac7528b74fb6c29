package availability

import "time"

// Weekday is Monday-first (0..6), decoupled from time.Weekday's
// Sunday-first numbering. Stored values use this enumeration.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return "invalid"
	}
	return weekdayNames[w]
}

func (w Weekday) Valid() bool { return w >= Monday && w <= Sunday }

// WeekdayOf maps a calendar date to the Monday-first enumeration.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}
