package weekly

import (
	"errors"
	"fmt"
	"time"

	"github.com/samuli/bike-logs/internal/session"
)

// DateLayout is the layout of configured period dates.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate    = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvertedWindow = errors.New("invalid date period: from > until")
)

// Sentinel bounds used when a side of the window is not given.
var (
	farPast   = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	farFuture = time.Date(2100, time.January, 1, 23, 59, 59, 0, time.UTC)
)

// Window is an inclusive date-time range.
type Window struct {
	Start    time.Time
	End      time.Time
	StartSet bool
	EndSet   bool
}

// ParseWindow builds a window from optional YYYY-MM-DD dates. An empty string
// leaves that side open. The start date begins at 00:00:00 and the end date
// ends at 23:59:59.
func ParseWindow(from, until string) (Window, error) {
	w := Window{Start: farPast, End: farFuture}

	if from != "" {
		d, err := time.Parse(DateLayout, from)
		if err != nil {
			return Window{}, fmt.Errorf("%w: from %q", ErrInvalidDate, from)
		}
		w.Start = d
		w.StartSet = true
	}
	if until != "" {
		d, err := time.Parse(DateLayout, until)
		if err != nil {
			return Window{}, fmt.Errorf("%w: until %q", ErrInvalidDate, until)
		}
		w.End = d.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		w.EndSet = true
	}

	if w.Start.After(w.End) {
		return Window{}, ErrInvertedWindow
	}
	return w, nil
}

// Contains reports whether Start <= t <= End.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Label describes the explicitly given bounds, e.g. "01.01.2021 > 31.01.2021".
// It is empty when neither bound was given.
func (w Window) Label() string {
	switch {
	case w.StartSet && w.EndSet:
		return FormatDate(w.Start) + " > " + FormatDate(w.End)
	case w.StartSet:
		return FormatDate(w.Start) + " >"
	case w.EndSet:
		return "> " + FormatDate(w.End)
	default:
		return ""
	}
}

// Filter accepts records inside a window. In since mode the first accepted
// record becomes the effective start of the reported period; filtering
// itself always uses the window.
type Filter struct {
	window Window
	since  bool
	first  time.Time
	seen   bool
}

func NewFilter(w Window, since bool) *Filter {
	return &Filter{window: w, since: since}
}

// Accept reports whether rec falls inside the window.
func (f *Filter) Accept(rec session.Record) bool {
	if !f.window.Contains(rec.Timestamp) {
		return false
	}
	if !f.seen {
		f.first = rec.Timestamp
		f.seen = true
	}
	return true
}

func (f *Filter) Window() Window {
	return f.window
}

func (f *Filter) Since() bool {
	return f.since
}

// Seen reports whether any record has been accepted.
func (f *Filter) Seen() bool {
	return f.seen
}

// EffectiveStart is the start of the reported period: the first accepted
// record in since mode, the requested start otherwise. ok is false when
// there is nothing to report as a start.
func (f *Filter) EffectiveStart() (start time.Time, ok bool) {
	if f.since {
		return f.first, f.seen
	}
	return f.window.Start, f.window.StartSet
}

// PeriodLabel is the label of the reported period, empty for an unbounded
// range or a since run that saw no records.
func (f *Filter) PeriodLabel() string {
	if !f.since {
		return f.window.Label()
	}
	if !f.seen {
		return ""
	}
	return FormatDate(f.first) + " >"
}
