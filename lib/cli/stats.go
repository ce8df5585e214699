package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rfarell/spe1-case1/lib/table"
)

var statsVectors []string

var statsCmd = &cobra.Command{
	Use:   "stats <case>",
	Short: "Print per-vector statistics over a case's time series",
	Long: `Stats assembles the case's full time series and prints, for every
recorded vector, its first and last value and the minimum, maximum, mean,
and standard deviation over all report steps.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(args[0], statsVectors, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringSliceVar(&statsVectors, "vectors", nil,
		"restrict the report to the named columns")
}

func runStats(arg string, only []string, w io.Writer) error {
	specPath, dataPath := casePaths(arg)
	t, err := table.Read(specPath, dataPath)
	if err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		return fmt.Errorf("%s holds no report steps, so there is nothing "+
			"to summarise", dataPath)
	}

	names := t.Spec.Columns()
	if len(only) > 0 {
		names = only
	}

	fmt.Fprintf(w, "%-20s %12s %12s %12s %12s %12s %12s\n",
		"vector", "first", "last", "min", "max", "mean", "std")
	for _, name := range names {
		xs, ok := t.Column(name)
		if !ok {
			return fmt.Errorf("'%s' is not a column of this case: the "+
				"recorded columns are %v", name, t.Spec.Columns())
		}
		fmt.Fprintf(w, "%-20s %12.6g %12.6g %12.6g %12.6g %12.6g %12.6g\n",
			name, xs[0], xs[len(xs)-1], floats.Min(xs), floats.Max(xs),
			stat.Mean(xs, nil), stat.StdDev(xs, nil))
	}
	return nil
}
