package weekly

import (
	"fmt"
	"time"
)

// Weeks run Monday 00:00:00 to Sunday 23:59:59 and are numbered the ISO 8601
// way: week 1 is the week holding the year's first Thursday, so the first
// days of January may belong to the previous year's last week.

// WeekID identifies an ISO week.
type WeekID struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// WeekOf returns the ISO week containing t.
func WeekOf(t time.Time) WeekID {
	year, week := t.ISOWeek()
	return WeekID{Year: year, Week: week}
}

func (w WeekID) String() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Week)
}

// Monday returns the first day of the week, at midnight UTC.
func (w WeekID) Monday() time.Time {
	// January 4th is always in week 1
	jan4 := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	return WeekStart(jan4).AddDate(0, 0, 7*(w.Week-1))
}

// Sunday returns the last day of the week, at midnight UTC.
func (w WeekID) Sunday() time.Time {
	return WeekEnd(w.Monday())
}

// WeekStart returns midnight of the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	// weekday 0 = Sunday, 1 = Monday, ..., 6 = Saturday
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Treat Sunday as day 7
	}
	year, month, day := t.Date()
	return time.Date(year, month, day-(weekday-1), 0, 0, 0, 0, t.Location())
}

// WeekEnd returns midnight of the Sunday of the week containing t.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// FormatDate formats t as 02.01.2006.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatHoursMinutes formats whole seconds as H:MM, hours unpadded.
func FormatHoursMinutes(seconds int64) string {
	hours := seconds / 3600
	mins := seconds/60 - hours*60
	return fmt.Sprintf("%d:%02d", hours, mins)
}

// FormatClock formats whole seconds as HH:MM.
func FormatClock(seconds int64) string {
	hours := seconds / 3600
	mins := seconds/60 - hours*60
	return fmt.Sprintf("%02d:%02d", hours, mins)
}
