package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rfarell/spe1-case1/lib/sumio"
)

var vectorsCmd = &cobra.Command{
	Use:   "vectors <case>",
	Short: "List the vectors a case's specification file records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVectors(args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(vectorsCmd)
}

func runVectors(arg string, w io.Writer) error {
	specPath, _ := casePaths(arg)
	ix, err := sumio.ReadSpec(specPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%d vectors on a %dx%dx%d grid, %s units, start %s\n",
		ix.Width(), ix.Dims[0], ix.Dims[1], ix.Dims[2], ix.UnitSystem,
		ix.Start.Format("2006-01-02"))
	for _, v := range ix.Vectors {
		fmt.Fprintf(w, "  %-20s %-12s %s\n", v.ColumnName(), v.Unit, v.Kind())
	}
	return nil
}
