package weekly

import (
	"fmt"
	"time"
)

// ColorClass is the display class of a day label.
type ColorClass int

const (
	Weekend ColorClass = iota
	WeekdayA
	WeekdayB
)

func (c ColorClass) String() string {
	switch c {
	case Weekend:
		return "weekend"
	case WeekdayA:
		return "weekday_a"
	case WeekdayB:
		return "weekday_b"
	default:
		return fmt.Sprintf("ColorClass(%d)", int(c))
	}
}

func (c ColorClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ColorState alternates the class of consecutive weekdays so that rides on
// the same day share a class and the next weekday switches. It carries over
// week boundaries.
type ColorState struct {
	last    time.Weekday
	hasLast bool
	toggle  bool
}

// Classify returns the class for day and records day as the last one seen.
// Weekends are always Weekend and reset the toggle.
func (s *ColorState) Classify(day time.Weekday) ColorClass {
	defer func() {
		s.last = day
		s.hasLast = true
	}()

	if day == time.Saturday || day == time.Sunday {
		s.toggle = false
		return Weekend
	}

	if !s.hasLast {
		s.toggle = true
		return WeekdayA
	}
	if day != s.last {
		s.toggle = !s.toggle
	}
	if s.toggle {
		return WeekdayA
	}
	return WeekdayB
}
