package summary

import "fmt"

// Requests configures the monitoring set that Build expands into a Spec.
// Empty slices fall back to the defaults below, so the zero Requests value
// reproduces the standard monitoring set for a deck.
type Requests struct {
	// Block mnemonics are requested for every cell in Cells. If Cells is
	// empty, the two corner cells (1,1,1) and (nx,ny,nz) are used.
	Block []string
	Cells [][3]int
	// Field mnemonics take no qualifier.
	Field []string
	// Well mnemonics are requested for every well passed to Build.
	Well []string
	// Directives are simulator request keywords that expand to vectors on
	// the simulator side (PERFORMA) or control report layout (RUNSUM,
	// SEPARATE, RPTONLY). They are carried as unqualified vectors.
	Directives []string
}

// DefaultRequests returns the standard monitoring set: corner-cell pressure
// and saturations, field rates and totals for all three phases, and per-well
// pressures, rates, totals, and injection figures.
func DefaultRequests() Requests {
	return Requests{
		Block: []string{"BPR", "BWSAT", "BGSAT"},
		Field: []string{
			"FOPR", "FGPR", "FWPR",
			"FOPT", "FGPT", "FWPT",
			"FGOR", "FWCT",
		},
		Well: []string{
			"WBHP", "WTHP",
			"WOPR", "WGPR", "WWPR",
			"WOPT", "WGPT", "WWPT",
			"WGIR", "WWIR", "WGIT", "WWIT",
		},
		Directives: []string{"PERFORMA", "RUNSUM", "SEPARATE", "RPTONLY"},
	}
}

func (r Requests) withDefaults(dims [3]int) Requests {
	def := DefaultRequests()
	if len(r.Block) == 0 && len(r.Field) == 0 &&
		len(r.Well) == 0 && len(r.Directives) == 0 {
		r = def
	}
	if len(r.Cells) == 0 && len(r.Block) > 0 {
		r.Cells = [][3]int{{1, 1, 1}, {dims[0], dims[1], dims[2]}}
	}
	return r
}

// Build expands a Requests into the ordered, duplicate-free Spec that the
// deck's SUMMARY section should request. dims are the grid dimensions
// (nx, ny, nz) and wells the declared well names, both as read out of the
// deck. Block vectors come first, one mnemonic at a time across all cells,
// then field vectors, then well vectors one mnemonic at a time across all
// wells, then directives. Duplicate (mnemonic, qualifier) pairs keep their
// first occurrence.
func Build(dims [3]int, wells []string, req Requests) (Spec, error) {
	req = req.withDefaults(dims)

	var spec Spec
	seen := map[Vector]bool{}
	add := func(v Vector) {
		if !seen[v] {
			seen[v] = true
			spec = append(spec, v)
		}
	}

	if len(req.Block) > 0 {
		if dims[0] <= 0 || dims[1] <= 0 || dims[2] <= 0 {
			return nil, fmt.Errorf("block vectors were requested, but the "+
				"grid dimensions are %dx%dx%d: the deck must declare a "+
				"positive DIMENS before block vectors can be attached to "+
				"cells", dims[0], dims[1], dims[2])
		}
		for _, c := range req.Cells {
			for d := 0; d < 3; d++ {
				if c[d] < 1 || c[d] > dims[d] {
					return nil, fmt.Errorf("cell (%d,%d,%d) is outside the "+
						"%dx%dx%d grid", c[0], c[1], c[2],
						dims[0], dims[1], dims[2])
				}
			}
		}
	}

	for _, m := range req.Block {
		m, err := NormalizeMnemonic(m)
		if err != nil {
			return nil, err
		}
		if KindOf(m) != Block {
			return nil, fmt.Errorf("'%s' is not a block mnemonic: block "+
				"mnemonics start with B", m)
		}
		for _, c := range req.Cells {
			add(Vector{Mnemonic: m, Qual: CellQual(c[0], c[1], c[2])})
		}
	}

	for _, m := range req.Field {
		m, err := NormalizeMnemonic(m)
		if err != nil {
			return nil, err
		}
		if KindOf(m) != Field {
			return nil, fmt.Errorf("'%s' is not a field mnemonic: field "+
				"mnemonics start with F", m)
		}
		add(Vector{Mnemonic: m})
	}

	for _, m := range req.Well {
		m, err := NormalizeMnemonic(m)
		if err != nil {
			return nil, err
		}
		if KindOf(m) != Well {
			return nil, fmt.Errorf("'%s' is not a well mnemonic: well "+
				"mnemonics start with W", m)
		}
		for _, w := range wells {
			add(Vector{Mnemonic: m, Qual: WellQual(w)})
		}
	}

	for _, m := range req.Directives {
		m, err := NormalizeMnemonic(m)
		if err != nil {
			return nil, err
		}
		add(Vector{Mnemonic: m})
	}

	if len(spec) == 0 {
		return nil, fmt.Errorf("the request set expands to zero summary " +
			"vectors: requesting at least one vector is required for the " +
			"simulator to write summary files")
	}

	return spec, nil
}
