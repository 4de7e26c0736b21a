package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/samuli/bike-logs/internal/weekly"
)

const histogramWidth = 30

// PrintHistogram prints one bar per reported week, scaled to the longest week.
func PrintHistogram(w io.Writer, weeks []weekly.WeekSummary) {
	maxKm := 0.0
	for _, wk := range weeks {
		if km := wk.Totals.Kilometers(); km > maxKm {
			maxKm = km
		}
	}

	if len(weeks) == 0 || maxKm == 0 {
		fmt.Fprintln(w, "No distance to chart")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Weekly Breakdown:")
	fmt.Fprintln(w)

	total := 0.0
	for _, wk := range weeks {
		km := wk.Totals.Kilometers()
		total += km
		if km > 0 {
			bar := strings.Repeat("▪", int(km/maxKm*histogramWidth)+1)
			fmt.Fprintf(w, "  %s  %s  %6.1f km %s\n", wk.Week, weekly.FormatDate(wk.End), km, bar)
		} else {
			fmt.Fprintf(w, "  %s  %s  %6.1f km\n", wk.Week, weekly.FormatDate(wk.End), km)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Max: %.1f km/week\n", maxKm)
	fmt.Fprintf(w, "  Average: %.1f km over %d weeks\n", total/float64(len(weeks)), len(weeks))
}
