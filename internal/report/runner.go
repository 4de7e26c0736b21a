package report

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/samuli/bike-logs/internal/session"
	"github.com/samuli/bike-logs/internal/weekly"
)

// Period is what a run reports after the last week.
type Period struct {
	Label  string        `json:"label,omitempty"`
	Since  bool          `json:"since"`
	Seen   bool          `json:"seen"`
	Totals weekly.Totals `json:"totals"`
}

// NoData is true for a since run that accepted nothing.
func (p Period) NoData() bool {
	return p.Since && !p.Seen
}

// Sink receives a run's output in order.
type Sink interface {
	Skipped(err *session.DecodeError)
	Week(w weekly.WeekSummary)
	Total(p Period) error
}

// Run walks the archive once, feeding every record the filter accepts into
// a fresh aggregator. Weeks go to the sink as they complete, then the total.
func Run(archive *session.Archive, filter *weekly.Filter, sink Sink) (Period, error) {
	agg := weekly.NewAggregator()

	onRecord := func(rec session.Record) error {
		if !filter.Accept(rec) {
			log.Tracef("outside window: %s", rec.Path)
			return nil
		}
		if done, ok := agg.Feed(rec); ok {
			sink.Week(done)
		}
		return nil
	}
	onSkip := func(err *session.DecodeError) {
		log.Debugf("skipping %s: %v", err.Path, err.Err)
		sink.Skipped(err)
	}

	if err := archive.Walk(onRecord, onSkip); err != nil {
		return Period{}, fmt.Errorf("walk %s: %w", archive.Dir(), err)
	}
	if done, ok := agg.Finish(); ok {
		sink.Week(done)
	}

	period := Period{
		Label:  filter.PeriodLabel(),
		Since:  filter.Since(),
		Seen:   filter.Seen(),
		Totals: agg.Totals(),
	}
	if err := sink.Total(period); err != nil {
		return period, err
	}
	return period, nil
}

// Tee fans a run out to several sinks.
type Tee []Sink

func (t Tee) Skipped(err *session.DecodeError) {
	for _, s := range t {
		s.Skipped(err)
	}
}

func (t Tee) Week(w weekly.WeekSummary) {
	for _, s := range t {
		s.Week(w)
	}
}

func (t Tee) Total(p Period) error {
	for _, s := range t {
		if err := s.Total(p); err != nil {
			return err
		}
	}
	return nil
}

// Collector keeps everything it is given, for views that need the whole run.
type Collector struct {
	Weeks  []weekly.WeekSummary
	Skips  []*session.DecodeError
	Period Period
	Done   bool
}

func (c *Collector) Skipped(err *session.DecodeError) {
	c.Skips = append(c.Skips, err)
}

func (c *Collector) Week(w weekly.WeekSummary) {
	c.Weeks = append(c.Weeks, w)
}

func (c *Collector) Total(p Period) error {
	c.Period = p
	c.Done = true
	return nil
}

// LogSkips reports undecodable files through the logger instead of stdout.
type LogSkips struct{}

func (LogSkips) Skipped(err *session.DecodeError) {
	log.Warnf("Error parsing %s", err)
}

func (LogSkips) Week(weekly.WeekSummary) {}

func (LogSkips) Total(Period) error { return nil }
