package cli

import (
	"github.com/spf13/cobra"

	"github.com/rfarell/spe1-case1/lib/sim"
)

var (
	flowBin   string
	useDocker bool
	image     string
)

var runCmd = &cobra.Command{
	Use:   "run <deck.DATA> <outdir>",
	Short: "Run the simulator on a deck",
	Long: `Run hands the deck to the simulator and streams its log output.
A flow binary on PATH is preferred; without one the containerised release
is pulled and run with the deck's directory mounted read-only. The summary
files land in the output directory, ready for extract.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := sim.Options{Flow: flowBin, Docker: useDocker, Image: image}
		return sim.Run(cmd.Context(), args[0], args[1], opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&flowBin, "flow", "",
		"path of a local simulator binary (default: search PATH)")
	runCmd.Flags().BoolVar(&useDocker, "docker", false,
		"force the containerised simulator")
	runCmd.Flags().StringVar(&image, "image", sim.DefaultImage,
		"container image to run")
}
