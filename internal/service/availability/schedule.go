package availability

import "time"

// DateLayout is the calendar date format clients send. Dates are otherwise opaque.
const DateLayout = "2006-01-02"

// Schedule is the ordered list of bookable slot labels, optionally overridden per weekday.
type Schedule struct {
	Default  []string
	Weekdays map[time.Weekday][]string
}

func NewSchedule(defaults []string, weekdays map[time.Weekday][]string) Schedule {
	return Schedule{Default: defaults, Weekdays: weekdays}
}

// For returns the slots in effect on date. Dates that do not parse fall back to Default.
func (s Schedule) For(date string) []string {
	if len(s.Weekdays) > 0 {
		if d, err := time.Parse(DateLayout, date); err == nil {
			if slots, ok := s.Weekdays[d.Weekday()]; ok {
				return slots
			}
		}
	}
	return s.Default
}

// Contains reports whether label is a slot on date.
func (s Schedule) Contains(date, label string) bool {
	for _, slot := range s.For(date) {
		if slot == label {
			return true
		}
	}
	return false
}
