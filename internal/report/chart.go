package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"

	"github.com/samuli/bike-logs/internal/weekly"
)

// NewWeeklyChart builds a bar chart of distance and rides per reported week.
func NewWeeklyChart(weeks []weekly.WeekSummary, title string) *charts.Bar {
	labels := make([]string, 0, len(weeks))
	distance := make([]opts.BarData, 0, len(weeks))
	rides := make([]opts.BarData, 0, len(weeks))
	for _, wk := range weeks {
		labels = append(labels, wk.Week.String())
		distance = append(distance, opts.BarData{Value: fmt.Sprintf("%.1f", wk.Totals.Kilometers())})
		rides = append(rides, opts.BarData{Value: wk.Totals.Rides})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Weekly rides",
			Width:     "1000px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Weekly rides",
			Subtitle: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("km", distance).
		AddSeries("rides", rides)
	return bar
}

// RenderChart writes the weekly chart as a standalone HTML page.
func RenderChart(path string, weeks []weekly.WeekSummary, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := NewWeeklyChart(weeks, title).Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	log.Infof("chart written to %s", path)
	return nil
}
