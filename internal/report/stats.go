package report

import (
	"fmt"
	"io"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/samuli/bike-logs/internal/weekly"
)

// Stats describe weekly distance over the reported weeks. Weeks without
// rides are not part of the sample.
type Stats struct {
	Weeks int `json:"weeks"`
	// MeanKm and StdDevKm are per reported week.
	MeanKm   float64 `json:"mean_km"`
	StdDevKm float64 `json:"stddev_km"`
	// TrendKm is the fitted change in weekly distance per calendar week.
	TrendKm float64 `json:"trend_km_per_week"`
}

const week = 7 * 24 * time.Hour

func ComputeStats(weeks []weekly.WeekSummary) Stats {
	s := Stats{Weeks: len(weeks)}
	if len(weeks) == 0 {
		return s
	}

	xs := make([]float64, len(weeks))
	ys := make([]float64, len(weeks))
	first := weeks[0].Start
	for i, wk := range weeks {
		xs[i] = float64(wk.Start.Sub(first) / week)
		ys[i] = wk.Totals.Kilometers()
	}

	s.MeanKm = stat.Mean(ys, nil)
	if len(weeks) < 2 {
		return s
	}
	s.StdDevKm = stat.StdDev(ys, nil)
	_, s.TrendKm = stat.LinearRegression(xs, ys, nil, false)
	return s
}

func PrintStats(w io.Writer, s Stats) {
	fmt.Fprintln(w)
	if s.Weeks == 0 {
		fmt.Fprintln(w, "No weeks to describe")
		return
	}
	fmt.Fprintf(w, "Weeks:   %d\n", s.Weeks)
	fmt.Fprintf(w, "Mean:    %.1f km/week\n", s.MeanKm)
	fmt.Fprintf(w, "Std dev: %.1f km\n", s.StdDevKm)
	fmt.Fprintf(w, "Trend:   %+.2f km/week per week\n", s.TrendKm)
}
