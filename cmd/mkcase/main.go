// mkcase generates a synthetic summary file pair (SMSPEC and UNSMRY) for a
// case that was never simulated. The recorded vectors are the standard
// monitoring set over a configurable grid and well count, and the values
// follow simple exponential decline curves with mild multiplicative noise,
// so decoded tables look like a waterflooded reservoir rather than random
// bytes. Useful for exercising extract and stats without a simulator.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/rfarell/spe1-case1/lib/summary"
	"github.com/rfarell/spe1-case1/lib/sumio"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	steps  int
	nWells int
	dims   []int
	seed   int64
)

var rootCmd = &cobra.Command{
	Use:   "mkcase <case>",
	Short: "Generate a synthetic summary file pair.",
	Long: `mkcase writes <case>.SMSPEC and <case>.UNSMRY describing the
standard monitoring set recorded over monthly report steps, with values
drawn from decline curves. The pair decodes with the same tools as real
simulator output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(dims) != 3 {
			return fmt.Errorf("--dims needs exactly 3 values, got %d",
				len(dims))
		}
		return mkcase(args[0], [3]int{dims[0], dims[1], dims[2]},
			nWells, steps, seed)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().IntVar(&steps, "steps", 24, "number of report steps")
	rootCmd.Flags().IntVar(&nWells, "wells", 2, "number of wells")
	rootCmd.Flags().IntSliceVar(&dims, "dims", []int{10, 10, 3},
		"grid dimensions nx,ny,nz")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "noise seed")
}

func mkcase(base string, dims [3]int, nWells, steps int, seed int64) error {
	if steps < 1 {
		return fmt.Errorf("--steps must be at least 1, got %d", steps)
	}
	spec, err := catalogue(dims, nWells)
	if err != nil {
		return err
	}
	if err := writeSpec(base+".SMSPEC", spec, dims); err != nil {
		return err
	}
	if err := writeData(base+".UNSMRY", spec, steps, seed); err != nil {
		return err
	}
	fmt.Printf("wrote %s.SMSPEC and %s.UNSMRY: %d vectors, %d steps\n",
		base, base, len(spec), steps)
	return nil
}

// catalogue expands the standard monitoring set over the synthetic case's
// grid and wells, prefixed with the TIME vector simulators record first.
// Request directives are left out: they never appear in a specification
// file as recorded vectors.
func catalogue(dims [3]int, nWells int) (summary.Spec, error) {
	names := make([]string, nWells)
	for i := range names {
		names[i] = fmt.Sprintf("W%d", i+1)
	}

	req := summary.DefaultRequests()
	req.Directives = nil
	spec, err := summary.Build(dims, names, req)
	if err != nil {
		return nil, err
	}

	out := summary.Spec{{Mnemonic: "TIME", Unit: "DAYS"}}
	for i := range spec {
		spec[i].Unit = summary.MetricUnit(spec[i].Mnemonic)
		out = append(out, spec[i])
	}
	return out, nil
}

func writeSpec(path string, spec summary.Spec, dims [3]int) error {
	n := len(spec)
	keywords := make(sumio.CharValues, n)
	wgnames := make(sumio.CharValues, n)
	nums := make(sumio.IntValues, n)
	units := make(sumio.CharValues, n)
	for i, v := range spec {
		keywords[i] = v.Mnemonic
		units[i] = v.Unit
		wgnames[i] = sumio.WGPlaceholder
		switch v.Qual.Kind {
		case summary.QualWell, summary.QualGroup:
			wgnames[i] = v.Qual.Name
		case summary.QualCell:
			nums[i] = int32(v.Qual.I + (v.Qual.J-1)*dims[0] +
				(v.Qual.K-1)*dims[0]*dims[1])
		case summary.QualNum:
			nums[i] = int32(v.Qual.I)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := sumio.NewWriter(f)
	recs := []struct {
		name string
		data sumio.Values
	}{
		{"INTEHEAD", sumio.IntValues{int32(sumio.MetricUnits), 100}},
		{"DIMENS", sumio.IntValues{int32(n),
			int32(dims[0]), int32(dims[1]), int32(dims[2]), 0, 0}},
		{"KEYWORDS", keywords},
		{"WGNAMES", wgnames},
		{"NUMS", nums},
		{"UNITS", units},
		{"STARTDAT", sumio.IntValues{1, 1, 2015, 0, 0, 0}},
	}
	for _, rec := range recs {
		if err := w.WriteRecord(rec.name, rec.data); err != nil {
			return err
		}
	}
	return nil
}

// monthDays drives the report step schedule, repeating after a year.
var monthDays = []float64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func writeData(path string, spec summary.Spec, steps int, seed int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := sumio.NewWriter(f)
	rng := rand.New(rand.NewSource(seed))
	elapsed := 0.0
	for s := 1; s <= steps; s++ {
		elapsed += monthDays[(s-1)%len(monthDays)]

		params := make(sumio.RealValues, len(spec))
		for i, v := range spec {
			params[i] = float32(value(v, elapsed, rng))
		}

		if err := w.WriteRecord("SEQHDR",
			sumio.IntValues{int32(s)}); err != nil {
			return err
		}
		if err := w.WriteRecord("STEPTIME",
			sumio.DoubleValues{elapsed}); err != nil {
			return err
		}
		if err := w.WriteRecord("PARAMS", params); err != nil {
			return err
		}
	}
	return nil
}

// Decline curve scales. Rates fall as exp(-t/declineTau) from their initial
// value while the water cut and gas saturation rise toward their plateaus,
// roughly following a gas-injection case in metric units.
const (
	declineTau = 1500.0
	oilRate    = 2000.0
	gasRate    = 300000.0
	waterRate  = 200.0
	gasInjRate = 28000.0
)

func value(v summary.Vector, t float64, rng *rand.Rand) float64 {
	noise := 1 + 0.01*(rng.Float64()-0.5)
	d := math.Exp(-t / declineTau)

	if v.Mnemonic == "TIME" {
		return t
	}
	// The leading letter only selects field, well, or block scope. The
	// suffix picks the curve.
	switch v.Mnemonic[1:] {
	case "OPR":
		return oilRate * d * noise
	case "GPR":
		return gasRate * d * noise
	case "WPR":
		return waterRate * (1 - d) * noise
	case "OPT":
		return oilRate * declineTau * (1 - d)
	case "GPT":
		return gasRate * declineTau * (1 - d)
	case "WPT":
		return waterRate * (t - declineTau*(1-d))
	case "GOR":
		return gasRate / oilRate * (1 + t/declineTau) * noise
	case "WCT":
		wpr := waterRate * (1 - d)
		return wpr / (wpr + oilRate*d)
	case "BHP":
		return (250 + 80*d) * noise
	case "THP":
		return (80 + 40*d) * noise
	case "PR":
		return (300 + 30*d) * noise
	case "WSAT":
		return 0.12 + 0.02*(1-d)
	case "GSAT":
		return 0.45 * (1 - d)
	case "GIR":
		return gasInjRate * noise
	case "GIT":
		return gasInjRate * t
	case "WIR", "WIT":
		return 0
	}
	return noise
}
