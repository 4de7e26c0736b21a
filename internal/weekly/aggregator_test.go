package weekly_test

import (
	"sort"
	"testing"
	"time"

	"github.com/samuli/bike-logs/internal/session"
	"github.com/samuli/bike-logs/internal/weekly"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ride(ts string, meters, seconds float64) session.Record {
	rec := at(ts)
	rec.DistanceMeters = meters
	rec.TimerSeconds = seconds
	return rec
}

// feedAll runs recs through a fresh aggregator and returns every emitted week,
// the terminal flush included.
func feedAll(recs ...session.Record) ([]weekly.WeekSummary, weekly.Totals) {
	agg := weekly.NewAggregator()
	var weeks []weekly.WeekSummary
	for _, rec := range recs {
		if w, ok := agg.Feed(rec); ok {
			weeks = append(weeks, w)
		}
	}
	if w, ok := agg.Finish(); ok {
		weeks = append(weeks, w)
	}
	return weeks, agg.Totals()
}

func TestAggregator_TwoWeeks(t *testing.T) {
	agg := weekly.NewAggregator()

	_, ok := agg.Feed(ride("2021-02-01 18:00:00", 10000, 3600))
	assert.False(t, ok)
	_, ok = agg.Feed(ride("2021-02-02 18:00:00", 20000, 1800))
	assert.False(t, ok)

	first, ok := agg.Feed(ride("2021-02-08 18:00:00", 15000, 5400))
	require.True(t, ok)
	assert.Equal(t, weekly.WeekID{Year: 2021, Week: 5}, first.Week)
	assert.Equal(t, date(2021, time.February, 1), first.Start)
	assert.Equal(t, date(2021, time.February, 7), first.End)
	assert.Equal(t, time.Date(2021, 2, 2, 18, 0, 0, 0, time.UTC), first.LastTimestamp)
	assert.Equal(t, weekly.Totals{DistanceMeters: 30000, TimerSeconds: 5400, Rides: 2}, first.Totals)
	assert.Equal(t, "Week 5 (1.-07.02.2021) 30 km 1:30 2 rides", first.Header())
	require.Len(t, first.Days, 2)
	assert.Equal(t, time.Monday, first.Days[0].Weekday)
	assert.Equal(t, time.Tuesday, first.Days[1].Weekday)

	second, ok := agg.Finish()
	require.True(t, ok)
	assert.Equal(t, weekly.WeekID{Year: 2021, Week: 6}, second.Week)
	assert.Equal(t, "Week 6 (8.-14.02.2021) 15 km 1:30 1 rides", second.Header())
	require.Len(t, second.Days, 1)

	total := agg.Totals()
	assert.Equal(t, weekly.Totals{DistanceMeters: 45000, TimerSeconds: 10800, Rides: 3}, total)
	assert.Equal(t, 45.0, total.Kilometers())
	assert.Equal(t, "3:00", total.Time())

	_, ok = agg.Finish()
	assert.False(t, ok, "second finish must not emit")
}

func TestAggregator_Empty(t *testing.T) {
	weeks, total := feedAll()
	assert.Empty(t, weeks)
	assert.Equal(t, weekly.Totals{}, total)
}

func TestAggregator_SingleWeekOnlyFlushedAtFinish(t *testing.T) {
	agg := weekly.NewAggregator()
	for _, ts := range []string{"2021-03-01 08:00:00", "2021-03-03 08:00:00", "2021-03-07 08:00:00"} {
		_, ok := agg.Feed(ride(ts, 1000, 60))
		assert.False(t, ok)
	}
	w, ok := agg.Finish()
	require.True(t, ok)
	assert.Equal(t, 3, w.Totals.Rides)
	assert.Equal(t, "Week 9 (1.-07.03.2021) 3 km 0:03 3 rides", w.Header())
}

func TestAggregator_TruncatesTimer(t *testing.T) {
	weeks, total := feedAll(
		ride("2021-03-01 08:00:00", 0, 59.9),
		ride("2021-03-02 08:00:00", 0, 0.99),
	)
	require.Len(t, weeks, 1)
	assert.Equal(t, int64(59), weeks[0].Totals.TimerSeconds)
	assert.Equal(t, int64(59), total.TimerSeconds)
	assert.Equal(t, int64(59), weeks[0].Days[0].TimerSeconds)
}

func TestAggregator_YearBoundary(t *testing.T) {
	// Sunday 3.1.2021 is in 2020-W53, Monday 4.1.2021 opens 2021-W01. Week 53
	// of 2020 and week 1 of 2021 must never merge with anything else.
	weeks, _ := feedAll(
		ride("2020-12-28 10:00:00", 1000, 60),
		ride("2021-01-03 10:00:00", 2000, 60),
		ride("2021-01-04 10:00:00", 4000, 60),
	)
	require.Len(t, weeks, 2)
	assert.Equal(t, weekly.WeekID{Year: 2020, Week: 53}, weeks[0].Week)
	assert.Equal(t, "Week 53 (28.-03.01.2021) 3 km 0:02 2 rides", weeks[0].Header())
	assert.Equal(t, weekly.WeekID{Year: 2021, Week: 1}, weeks[1].Week)
	assert.Equal(t, "Week 1 (4.-10.01.2021) 4 km 0:01 1 rides", weeks[1].Header())
}

func TestAggregator_SameWeekNumberDifferentYear(t *testing.T) {
	weeks, _ := feedAll(
		ride("2020-02-03 10:00:00", 1000, 60),
		ride("2021-02-01 10:00:00", 1000, 60),
	)
	require.Len(t, weeks, 2)
	assert.Equal(t, 6, weeks[0].Week.Week)
	assert.Equal(t, 5, weeks[1].Week.Week)
}

func TestAggregator_DayEntries(t *testing.T) {
	rec := ride("2021-02-01 18:00:00", 25130, 3725)
	rec.AvgSpeed = 24290
	rec.TotalAscent = 120
	rec.TotalDescent = 118.4
	rec.AvgTemperature = 18

	weeks, _ := feedAll(
		rec,
		ride("2021-02-01 19:00:00", 10000, 3600),
		ride("2021-02-02 18:00:00", 5000, 600),
		ride("2021-02-06 18:00:00", 5000, 600),
	)
	require.Len(t, weeks, 1)
	days := weeks[0].Days
	require.Len(t, days, 4)

	assert.Equal(t, "Mon", days[0].Name())
	assert.Equal(t, "Mon  25.1 km 01:02 24.3 km/h  120↗  118↘   18℃", days[0].String())
	assert.Equal(t, "Mon  10.0 km 01:00  0.0 km/h    0↗    0↘    0℃", days[1].String())

	classes := []weekly.ColorClass{days[0].Class, days[1].Class, days[2].Class, days[3].Class}
	assert.Equal(t, []weekly.ColorClass{weekly.WeekdayA, weekly.WeekdayA, weekly.WeekdayB, weekly.Weekend}, classes)

	assert.Equal(t, []string{
		days[0].String(), days[1].String(), days[2].String(), days[3].String(),
	}, weeks[0].Lines())
}

func TestAggregator_ColorsContinueAcrossWeeks(t *testing.T) {
	weeks, _ := feedAll(
		ride("2021-02-04 18:00:00", 1, 1), // Thu A
		ride("2021-02-05 18:00:00", 1, 1), // Fri B
		ride("2021-02-08 18:00:00", 1, 1), // Mon A
		ride("2021-02-09 18:00:00", 1, 1), // Tue B
	)
	require.Len(t, weeks, 2)
	assert.Equal(t, weekly.WeekdayB, weeks[0].Days[1].Class)
	assert.Equal(t, weekly.WeekdayA, weeks[1].Days[0].Class)
	assert.Equal(t, weekly.WeekdayB, weeks[1].Days[1].Class)
}

func TestAggregator_RandomRidesAddUp(t *testing.T) {
	faker := gofakeit.New(42)
	from := time.Date(2019, 11, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)

	recs := make([]session.Record, 300)
	for i := range recs {
		ts := faker.DateRange(from, until).UTC()
		recs[i] = session.Record{
			StartTime:      ts,
			Timestamp:      ts,
			DistanceMeters: faker.Float64Range(0, 150000),
			TimerSeconds:   faker.Float64Range(0, 6*3600),
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Timestamp.Before(recs[j].Timestamp) })

	wantPerWeek := make(map[weekly.WeekID]weekly.Totals)
	for _, rec := range recs {
		id := weekly.WeekOf(rec.Timestamp)
		tot := wantPerWeek[id]
		tot.DistanceMeters += rec.DistanceMeters
		tot.TimerSeconds += int64(rec.TimerSeconds)
		tot.Rides++
		wantPerWeek[id] = tot
	}

	weeks, total := feedAll(recs...)
	require.Len(t, weeks, len(wantPerWeek))

	var sum weekly.Totals
	seen := make(map[weekly.WeekID]bool)
	for _, w := range weeks {
		assert.False(t, seen[w.Week], "week %s emitted twice", w.Week)
		seen[w.Week] = true

		want := wantPerWeek[w.Week]
		assert.InDelta(t, want.DistanceMeters, w.Totals.DistanceMeters, 1e-6)
		assert.Equal(t, want.TimerSeconds, w.Totals.TimerSeconds)
		assert.Equal(t, want.Rides, w.Totals.Rides)
		assert.Len(t, w.Days, w.Totals.Rides)
		for _, d := range w.Days {
			assert.Equal(t, w.Week, weekly.WeekOf(d.Timestamp))
		}

		sum.DistanceMeters += w.Totals.DistanceMeters
		sum.TimerSeconds += w.Totals.TimerSeconds
		sum.Rides += w.Totals.Rides
	}

	assert.InDelta(t, total.DistanceMeters, sum.DistanceMeters, 1e-3)
	assert.Equal(t, total.TimerSeconds, sum.TimerSeconds)
	assert.Equal(t, len(recs), total.Rides)
	assert.Equal(t, total.Rides, sum.Rides)
}
