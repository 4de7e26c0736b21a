package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/samuli/bike-logs/internal/session"
	"github.com/samuli/bike-logs/internal/store"
	"github.com/samuli/bike-logs/internal/weekly"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions into a SQLite database",
	Long: `Store every session between --from and --until in a SQLite database,
then print the weekly totals read back from it.

Sessions are keyed by file name, so exporting again updates existing rows.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("dir", "", "Directory with session JSON files")
	exportCmd.Flags().String("db", "", "SQLite database file (default from config)")
	exportCmd.Flags().String("from", "", "First day of the period (YYYY-MM-DD)")
	exportCmd.Flags().String("until", "", "Last day of the period (YYYY-MM-DD)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	from, _ := cmd.Flags().GetString("from")
	until, _ := cmd.Flags().GetString("until")
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

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.Export.DBPath
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	filter := weekly.NewFilter(window, false)
	exported := 0
	err = archive.Walk(func(rec session.Record) error {
		if !filter.Accept(rec) {
			return nil
		}
		exported++
		return db.UpsertSession(ctx, rec)
	}, func(err *session.DecodeError) {
		log.Warnf("Error parsing %s", err)
	})
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", dir, err)
	}
	log.Infof("exported %d sessions to %s", exported, dbPath)

	totals, err := db.WeeklyTotals(ctx)
	if err != nil {
		return err
	}
	for _, wt := range totals {
		fmt.Printf("%s  %6.1f km %6s %3d rides\n",
			wt.Week, wt.Totals.Kilometers(), wt.Totals.Time(), wt.Totals.Rides)
	}
	return nil
}
