package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samuli/bike-logs/internal/fitconv"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert FIT activity files into session JSON files",
	Long: `Decode every .fit file in --in and write its session messages as
<name>.json into --out, the format the report commands read.

Files that already have an output file are skipped. A file that fails to
convert is reported and the rest are still converted.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("in", "", "Directory with FIT files (default from config)")
	convertCmd.Flags().String("out", "", "Directory for session JSON files (default from config)")
}

func runConvert(cmd *cobra.Command, _ []string) error {
	in, _ := cmd.Flags().GetString("in")
	if in == "" {
		in = cfg.Convert.FitDir
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = cfg.Convert.JSONDir
	}

	res, err := fitconv.ConvertDir(in, out)
	fmt.Printf("Converted %d, already converted %d, failed %d\n",
		len(res.Converted), len(res.Existing), len(res.Failed))
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", in, err)
	}
	return nil
}
