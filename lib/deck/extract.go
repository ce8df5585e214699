package deck

import (
	"fmt"

	"github.com/rfarell/spe1-case1/lib/summary"
)

// Dimensions returns the grid dimensions (nx, ny, nz) declared by the
// RUNSPEC section's DIMENS keyword.
func (d *Deck) Dimensions() ([3]int, error) {
	sec := d.Section("RUNSPEC")
	if sec == nil {
		return [3]int{}, fmt.Errorf("the deck has no RUNSPEC section, so " +
			"its grid dimensions cannot be read")
	}
	kw := sec.Keyword("DIMENS")
	if kw == nil || len(kw.Records) == 0 {
		return [3]int{}, fmt.Errorf("the deck's RUNSPEC section does not " +
			"declare DIMENS, so its grid dimensions cannot be read")
	}
	dims, err := kw.Records[0].Ints()
	if err != nil {
		return [3]int{}, fmt.Errorf("the deck's DIMENS keyword is "+
			"malformed: %s", err.Error())
	}
	if len(dims) != 3 {
		return [3]int{}, fmt.Errorf("the deck's DIMENS keyword declares "+
			"%d dimensions instead of 3", len(dims))
	}
	return [3]int{dims[0], dims[1], dims[2]}, nil
}

// Wells returns the names of the wells the SCHEDULE section declares with
// WELSPECS, in declaration order with duplicates removed. A deck with no
// schedule or no well declarations yields an empty slice.
func (d *Deck) Wells() []string {
	sec := d.Section("SCHEDULE")
	if sec == nil {
		return nil
	}
	var wells []string
	seen := map[string]bool{}
	for _, kw := range sec.Keywords {
		if kw.Name != "WELSPECS" {
			continue
		}
		for _, rec := range kw.Records {
			if rec.Empty() {
				continue
			}
			name := rec.Items[0].Text
			if !seen[name] {
				seen[name] = true
				wells = append(wells, name)
			}
		}
	}
	return wells
}

// Title returns the deck's title, or "" if the RUNSPEC section declares
// none.
func (d *Deck) Title() string {
	sec := d.Section("RUNSPEC")
	if sec == nil {
		return ""
	}
	kw := sec.Keyword("TITLE")
	if kw == nil || len(kw.Records) == 0 || len(kw.Records[0].Items) == 0 {
		return ""
	}
	return kw.Records[0].Items[0].Text
}

// SummaryVectors reconstructs the vector catalogue the deck's SUMMARY
// section requests. Well and group keywords with an empty record, the
// deck's way of saying "all of them", expand over the deck's declared
// wells. Region keywords carry one qualified vector per listed region
// number, or a single unqualified vector when no numbers are listed.
// Duplicate requests keep their first occurrence, mirroring the builder
// in lib/summary.
func (d *Deck) SummaryVectors() (summary.Spec, error) {
	sec := d.Section("SUMMARY")
	if sec == nil {
		return nil, fmt.Errorf("the deck has no SUMMARY section")
	}
	wells := d.Wells()

	var spec summary.Spec
	seen := map[summary.Vector]bool{}
	add := func(v summary.Vector) {
		if !seen[v] {
			seen[v] = true
			spec = append(spec, v)
		}
	}

	for _, kw := range sec.Keywords {
		switch summary.KindOf(kw.Name) {
		case summary.Block, summary.Connection:
			for _, rec := range kw.Records {
				cell, err := rec.Ints()
				if err != nil {
					return nil, fmt.Errorf("the summary request %s on "+
						"line %d names a malformed cell: %s",
						kw.Name, kw.Line, err.Error())
				}
				if len(cell) != 3 {
					return nil, fmt.Errorf("the summary request %s on "+
						"line %d names a cell with %d coordinates "+
						"instead of 3", kw.Name, kw.Line, len(cell))
				}
				add(summary.Vector{
					Mnemonic: kw.Name,
					Qual:     summary.CellQual(cell[0], cell[1], cell[2]),
				})
			}
		case summary.Well:
			names := qualifierNames(kw, wells)
			for _, n := range names {
				add(summary.Vector{
					Mnemonic: kw.Name, Qual: summary.WellQual(n)})
			}
		case summary.Group:
			names := qualifierNames(kw, nil)
			for _, n := range names {
				add(summary.Vector{
					Mnemonic: kw.Name, Qual: summary.GroupQual(n)})
			}
		case summary.Region:
			qualified := false
			for _, rec := range kw.Records {
				nums, err := rec.Ints()
				if err != nil {
					return nil, fmt.Errorf("the summary request %s on "+
						"line %d names a malformed region number: %s",
						kw.Name, kw.Line, err.Error())
				}
				for _, n := range nums {
					qualified = true
					add(summary.Vector{
						Mnemonic: kw.Name, Qual: summary.NumQual(n)})
				}
			}
			if !qualified {
				add(summary.Vector{Mnemonic: kw.Name})
			}
		default:
			add(summary.Vector{Mnemonic: kw.Name})
		}
	}
	return spec, nil
}

// qualifierNames flattens a well or group keyword's records into the list
// of names it targets. An empty request falls back to fallback, the deck's
// full well list.
func qualifierNames(kw *Keyword, fallback []string) []string {
	var names []string
	for _, rec := range kw.Records {
		for _, it := range rec.Items {
			names = append(names, it.Text)
		}
	}
	if len(names) == 0 {
		return fallback
	}
	return names
}
