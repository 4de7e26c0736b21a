package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/samuli/bike-logs/internal/config"
	"github.com/samuli/bike-logs/internal/logging"
)

// cfg is loaded before any subcommand runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "bikelogs",
	Short: "Weekly reports from exported cycling sessions",
	Long: `Bikelogs reads a directory of session JSON files, one ride per file,
and prints the rides grouped into ISO weeks with weekly and period totals.

It can also convert FIT activity files into session JSON and export the
sessions into a SQLite database.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "TOML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file, rotated")
}

func setup(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(path, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	cfg = loaded

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if file, _ := cmd.Flags().GetString("log-file"); file != "" {
		cfg.LogFile = file
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogFile,
		LogToStderr:   cfg.LogToStderr,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
	})
	log.Debugf("config %s loaded, data dir %q", path, cfg.DataDir)
	return nil
}

// dataDir picks the --dir flag over the configured data directory.
func dataDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = cfg.DataDir
	}
	if dir == "" {
		return "", fmt.Errorf("no data directory: use --dir or set data_dir in %s", config.DefaultPath)
	}
	return dir, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
