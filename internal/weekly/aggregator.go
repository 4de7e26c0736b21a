package weekly

import (
	"fmt"
	"time"

	"github.com/samuli/bike-logs/internal/session"
)

// Totals are running sums over a set of rides.
type Totals struct {
	DistanceMeters float64 `json:"distance_meters"`
	TimerSeconds   int64   `json:"timer_seconds"`
	Rides          int     `json:"rides"`
}

func (t *Totals) add(rec session.Record) {
	t.DistanceMeters += rec.DistanceMeters
	t.TimerSeconds += int64(rec.TimerSeconds)
	t.Rides++
}

func (t Totals) Kilometers() float64 {
	return t.DistanceMeters / 1000
}

// Time formats the timer total as H:MM.
func (t Totals) Time() string {
	return FormatHoursMinutes(t.TimerSeconds)
}

// DayEntry is one ride line of a week block.
type DayEntry struct {
	Timestamp      time.Time    `json:"timestamp"`
	Weekday        time.Weekday `json:"-"`
	Class          ColorClass   `json:"class"`
	DistanceMeters float64      `json:"distance_meters"`
	TimerSeconds   int64        `json:"timer_seconds"`
	AvgSpeed       float64      `json:"avg_speed"`
	Ascent         float64      `json:"ascent"`
	Descent        float64      `json:"descent"`
	Temperature    float64      `json:"temperature"`
}

// Name is the short weekday name, e.g. "Mon".
func (d DayEntry) Name() string {
	return d.Weekday.String()[:3]
}

// SpeedKmh converts the average speed with the same factor as distance.
func (d DayEntry) SpeedKmh() float64 {
	return d.AvgSpeed / 1000
}

// Details is the line without the weekday name.
func (d DayEntry) Details() string {
	return fmt.Sprintf("%5s km %5s %4.1f km/h %4.0f↗ %4.0f↘ %4.0f℃",
		fmt.Sprintf("%.1f", d.DistanceMeters/1000),
		FormatClock(d.TimerSeconds),
		d.SpeedKmh(),
		d.Ascent,
		d.Descent,
		d.Temperature,
	)
}

func (d DayEntry) String() string {
	return d.Name() + " " + d.Details()
}

// WeekSummary is emitted once per ISO week that had rides.
type WeekSummary struct {
	Week WeekID `json:"week"`
	// Start and End are the Monday and Sunday of Week.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// LastTimestamp is the timestamp of the week's last ride.
	LastTimestamp time.Time  `json:"last_timestamp"`
	Totals        Totals     `json:"totals"`
	Days          []DayEntry `json:"days"`
}

// Title is the bare "Week N" part of the header.
func (w WeekSummary) Title() string {
	return fmt.Sprintf("Week %d", w.Week.Week)
}

// Details is the header without the title, e.g. "(1.-07.02.2021) 30 km 1:30 2 rides".
func (w WeekSummary) Details() string {
	return fmt.Sprintf("(%d.-%s) %.0f km %s %d rides",
		w.Start.Day(),
		FormatDate(w.End),
		w.Totals.Kilometers(),
		w.Totals.Time(),
		w.Totals.Rides,
	)
}

func (w WeekSummary) Header() string {
	return w.Title() + " " + w.Details()
}

// Lines returns the plain day lines in arrival order.
func (w WeekSummary) Lines() []string {
	lines := make([]string, 0, len(w.Days))
	for _, d := range w.Days {
		lines = append(lines, d.String())
	}
	return lines
}

type weekAccumulator struct {
	id     WeekID
	last   time.Time
	totals Totals
	days   []DayEntry
}

func (acc *weekAccumulator) summary() WeekSummary {
	id := WeekOf(acc.last)
	return WeekSummary{
		Week:          id,
		Start:         id.Monday(),
		End:           id.Sunday(),
		LastTimestamp: acc.last,
		Totals:        acc.totals,
		Days:          acc.days,
	}
}

// Aggregator folds an ascending stream of accepted records into week
// summaries and a period total. Records are assumed to arrive in timestamp
// order; nothing is reordered.
type Aggregator struct {
	open   bool
	week   weekAccumulator
	period Totals
	colors ColorState
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Feed adds rec. When rec starts a new ISO week the finished previous week
// is returned with ok set.
func (a *Aggregator) Feed(rec session.Record) (done WeekSummary, ok bool) {
	id := WeekOf(rec.Timestamp)

	if a.open && id != a.week.id {
		done, ok = a.week.summary(), true
		a.week = weekAccumulator{}
	}
	a.open = true
	a.week.id = id
	a.week.last = rec.Timestamp

	a.week.totals.add(rec)
	a.period.add(rec)

	weekday := rec.Timestamp.Weekday()
	a.week.days = append(a.week.days, DayEntry{
		Timestamp:      rec.Timestamp,
		Weekday:        weekday,
		Class:          a.colors.Classify(weekday),
		DistanceMeters: rec.DistanceMeters,
		TimerSeconds:   int64(rec.TimerSeconds),
		AvgSpeed:       rec.AvgSpeed,
		Ascent:         rec.TotalAscent,
		Descent:        rec.TotalDescent,
		Temperature:    rec.AvgTemperature,
	})

	return done, ok
}

// Finish flushes the open week, if any. Later calls return nothing until
// more records are fed.
func (a *Aggregator) Finish() (WeekSummary, bool) {
	if !a.open || a.week.totals.Rides == 0 {
		return WeekSummary{}, false
	}
	done := a.week.summary()
	a.open = false
	a.week = weekAccumulator{}
	return done, true
}

// Totals returns the running period total.
func (a *Aggregator) Totals() Totals {
	return a.period
}
