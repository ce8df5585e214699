package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rfarell/spe1-case1/lib/table"
)

var extractOut string

var extractCmd = &cobra.Command{
	Use:   "extract <case>",
	Short: "Decode a case's summary files into a columnar table",
	Long: `Extract reads a case's specification and data files (SMSPEC and
UNSMRY) and writes the assembled time series as a table with one row per
report step and one column per recorded vector. The case may be named by
either summary file, its deck, or the bare path without extension. The
output format follows the destination extension: .parquet, .csv, or
.csv.zst.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(args[0], extractOut)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractOut, "output", "o", "",
		"destination table file (default <case>.parquet)")
}

func runExtract(arg, out string) error {
	specPath, dataPath := casePaths(arg)
	if out == "" {
		out = caseBase(arg) + ".parquet"
	}

	t, err := table.Read(specPath, dataPath)
	if err != nil {
		return err
	}
	log.Debugf("%s: columns %v", specPath, t.Columns())

	if err := table.Write(t, out); err != nil {
		return err
	}
	fmt.Printf("wrote %d report steps x %d columns to %s\n",
		len(t.Rows), len(t.Columns()), out)
	return nil
}
