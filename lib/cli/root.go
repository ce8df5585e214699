/*package cli implements the spe1 command line tool.

The subcommands cover the pipeline end to end: patch rewrites a deck's
summary section to request a known monitoring set, run hands the deck to the
simulator, and extract, vectors, and stats read the summary files the
simulator wrote back. Each subcommand is a thin wrapper over lib/deck,
lib/sim, lib/sumio, and lib/table; everything here is argument handling and
output formatting.
*/
package cli

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rfarell/spe1-case1/lib/config"
)

var (
	// cfgFile is the --config override. Empty means "search the working
	// directory for spe1.yaml".
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "spe1",
	Short: "Patch, run, and read back Eclipse-style simulation cases.",
	Long: `spe1 drives a reservoir simulation case from deck to table: it
rewrites the deck's summary section to request a known monitoring set,
invokes the simulator, and decodes the binary summary files the simulator
writes into columnar tables.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	// Errors are reported once, by main.
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"run configuration file (default ./"+config.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"increase logging verbosity")
}
