package summary

// MetricUnit returns the METRIC-system unit string for a mnemonic, or ""
// when the quantity is dimensionless or unknown. The simulator writes these
// strings into the UNITS array of the specification file; we only need them
// when synthesizing specification files in tests and when labelling columns.
func MetricUnit(mnemonic string) string {
	if u, ok := miscUnits[mnemonic]; ok {
		return u
	}
	k := KindOf(mnemonic)
	if k == Misc {
		return ""
	}
	// Strip the family letter. Block saturations spell the phase before
	// SAT, so match on the whole remainder rather than a fixed suffix.
	rest := mnemonic[1:]
	if u, ok := quantityUnits[rest]; ok {
		return u
	}
	return ""
}

var miscUnits = map[string]string{
	"TIME":     "DAYS",
	"DAY":      "",
	"MONTH":    "",
	"YEAR":     "",
	"YEARS":    "YEARS",
	"ELAPSED":  "SECONDS",
	"TCPU":     "SECONDS",
	"TCPUTS":   "SECONDS",
	"TCPUDAY":  "SECONDS/DAY",
	"TIMESTEP": "DAYS",
	"NEWTON":   "",
	"NLINEARS": "",
	"MLINEARS": "",
	"MSUMLINS": "",
	"MSUMNEWT": "",
}

var quantityUnits = map[string]string{
	// Pressures.
	"PR":  "BARSA",
	"BHP": "BARSA",
	"THP": "BARSA",
	// Production rates.
	"OPR": "SM3/DAY",
	"GPR": "SM3/DAY",
	"WPR": "SM3/DAY",
	"LPR": "SM3/DAY",
	"VPR": "RM3/DAY",
	// Production totals.
	"OPT": "SM3",
	"GPT": "SM3",
	"WPT": "SM3",
	"LPT": "SM3",
	// Injection rates and totals.
	"OIR": "SM3/DAY",
	"GIR": "SM3/DAY",
	"WIR": "SM3/DAY",
	"OIT": "SM3",
	"GIT": "SM3",
	"WIT": "SM3",
	// Ratios and fractions.
	"GOR": "SM3/SM3",
	"OGR": "SM3/SM3",
	"WCT": "",
	"GLR": "SM3/SM3",
	"WGR": "SM3/SM3",
	// Saturations and in-place volumes.
	"OSAT": "",
	"WSAT": "",
	"GSAT": "",
	"OIP":  "SM3",
	"GIP":  "SM3",
	"WIP":  "SM3",
}
