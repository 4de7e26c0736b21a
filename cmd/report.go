package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samuli/bike-logs/internal/report"
	"github.com/samuli/bike-logs/internal/session"
	"github.com/samuli/bike-logs/internal/weekly"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print rides grouped by week for a date range",
	Long: `Print every ride between --from and --until, grouped into ISO weeks
(Monday to Sunday), followed by the total for the period.

Both dates are YYYY-MM-DD and optional. The end date is inclusive.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		from, _ := cmd.Flags().GetString("from")
		until, _ := cmd.Flags().GetString("until")
		return runReport(cmd, from, until, false)
	},
}

var sinceCmd = &cobra.Command{
	Use:   "since [YYYY-MM-DD]",
	Short: "Print rides grouped by week since a date",
	Long: `Print every ride since the given date, or all rides when no date is
given. The total is labeled with the date of the first ride found.
Prints "No data" when there are no rides.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from := ""
		if len(args) == 1 {
			from = args[0]
		}
		return runReport(cmd, from, "", true)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sinceCmd)

	reportCmd.Flags().String("from", "", "First day of the period (YYYY-MM-DD)")
	reportCmd.Flags().String("until", "", "Last day of the period (YYYY-MM-DD)")

	for _, c := range []*cobra.Command{reportCmd, sinceCmd} {
		c.Flags().String("dir", "", "Directory with session JSON files")
		c.Flags().Bool("summary", false, "Print only the total")
		c.Flags().Bool("json", false, "Output in JSON format")
		c.Flags().Bool("histo", false, "Print a weekly distance breakdown")
		c.Flags().Bool("stats", false, "Print weekly distance statistics")
		c.Flags().String("chart", "", "Write an HTML chart of weekly distance to this file")
		c.Flags().Bool("no-color", false, "Disable colors")
		c.MarkFlagsMutuallyExclusive("json", "histo")
		c.MarkFlagsMutuallyExclusive("json", "stats")
	}
}

func runReport(cmd *cobra.Command, from, until string, since bool) error {
	window, err := weekly.ParseWindow(from, until)
	if err != nil {
		return err
	}

	dir, err := dataDir(cmd)
	if err != nil {
		return err
	}
	archive, err := session.OpenArchive(dir)
	if err != nil {
		return err
	}

	summary, _ := cmd.Flags().GetBool("summary")
	outputJSON, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	histo, _ := cmd.Flags().GetBool("histo")
	stats, _ := cmd.Flags().GetBool("stats")
	chartPath, _ := cmd.Flags().GetString("chart")

	collector := &report.Collector{}
	sinks := report.Tee{collector}
	if outputJSON {
		sinks = append(sinks, report.LogSkips{}, report.NewJSON(os.Stdout))
	} else {
		styles := report.NewStyles(os.Stdout, cfg.Colors)
		if noColor {
			styles = report.PlainStyles()
		}
		sinks = append(sinks, report.NewConsole(os.Stdout, styles, summary))
	}

	period, err := report.Run(archive, weekly.NewFilter(window, since), sinks)
	if err != nil {
		return err
	}

	if histo {
		report.PrintHistogram(os.Stdout, collector.Weeks)
	}
	if stats {
		report.PrintStats(os.Stdout, report.ComputeStats(collector.Weeks))
	}
	if chartPath != "" {
		if err := report.RenderChart(chartPath, collector.Weeks, report.TotalLine(period)); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
	}
	return nil
}
