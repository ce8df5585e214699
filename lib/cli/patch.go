package cli

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rfarell/spe1-case1/lib/config"
	"github.com/rfarell/spe1-case1/lib/deck"
	"github.com/rfarell/spe1-case1/lib/summary"
)

var patchCmd = &cobra.Command{
	Use:   "patch <in.DATA> <out.DATA>",
	Short: "Rewrite a deck's summary section to request the monitoring set",
	Long: `Patch parses a deck, replaces its SUMMARY section with one
requesting the configured monitoring set, and writes the result to a new
file. The set is expanded against the deck itself: well vectors cover the
wells the SCHEDULE section declares, and block vectors default to the grid's
corner cells. The input deck is not touched.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPatch(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(patchCmd)
}

func runPatch(inPath, outPath string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	d, err := deck.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	dims, err := d.Dimensions()
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	wells := d.Wells()
	log.Debugf("%s: %dx%dx%d grid, wells %v",
		inPath, dims[0], dims[1], dims[2], wells)

	spec, err := summary.Build(dims, wells, cfg.Requests())
	if err != nil {
		return err
	}
	patched, err := deck.Patch(d, spec)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	if err := os.WriteFile(outPath, patched.Bytes(), 0644); err != nil {
		return err
	}
	fmt.Printf("patched %s with %d summary requests -> %s\n",
		inPath, len(spec), outPath)
	return nil
}
