package deck

import (
	"fmt"
	"strconv"

	"github.com/rfarell/spe1-case1/lib/summary"
)

// Banner is the comment line the patcher writes above the summary section
// it generates. Parsing discards it, and Patch always writes it back, so
// patching an already-patched deck reproduces the section byte for byte.
const Banner = "=== summary requests generated by spe1 patch ==="

// Patch returns a copy of d whose SUMMARY section is replaced wholesale by
// one requesting exactly the vectors in spec. If d has no SUMMARY section,
// the new one is inserted before SCHEDULE, or appended when there is no
// SCHEDULE either. d itself is not modified.
//
// Patch refuses decks whose sections are already out of canonical order:
// the simulator would reject them, and patching must not paper over that.
func Patch(d *Deck, spec summary.Spec) (*Deck, error) {
	if len(spec) == 0 {
		return nil, fmt.Errorf("refusing to patch with an empty vector " +
			"catalogue: the simulator needs at least one summary request " +
			"to produce summary files")
	}
	if err := CheckOrder(d); err != nil {
		return nil, err
	}

	sec := buildSummarySection(spec)
	out := &Deck{}
	replaced := false
	for _, s := range d.Sections {
		switch {
		case s.Name == "SUMMARY":
			out.Sections = append(out.Sections, sec)
			replaced = true
		case s.Name == "SCHEDULE" && !replaced:
			out.Sections = append(out.Sections, sec, s)
			replaced = true
		default:
			out.Sections = append(out.Sections, s)
		}
	}
	if !replaced {
		out.Sections = append(out.Sections, sec)
	}
	return out, nil
}

// CheckOrder verifies that the deck's sections appear in canonical order
// with no repeats. The returned error is a *SectionOrderError naming the
// offending section.
func CheckOrder(d *Deck) error {
	last, lastName := -1, ""
	for _, s := range d.Sections {
		r := sectionRank(s.Name)
		if r < 0 {
			return fmt.Errorf("'%s' is not a section tag: sections must "+
				"be one of %v", s.Name, SectionOrder)
		}
		if r <= last {
			return &SectionOrderError{Section: s.Name, After: lastName}
		}
		last, lastName = r, s.Name
	}
	return nil
}

// buildSummarySection renders a vector catalogue as deck keywords. Vectors
// are grouped into runs of the same mnemonic. Block and connection runs
// become one keyword with a record per cell, well and group runs become one
// keyword naming their targets in a single record, region runs one keyword
// listing their region numbers, and everything else becomes a bare flag
// keyword per vector.
func buildSummarySection(spec summary.Spec) *Section {
	sec := &Section{Name: "SUMMARY", Banner: []string{Banner}}
	for i := 0; i < len(spec); {
		j := i
		for j < len(spec) && spec[j].Mnemonic == spec[i].Mnemonic {
			j++
		}
		run := spec[i:j]
		i = j

		switch run[0].Kind() {
		case summary.Block, summary.Connection:
			kw := &Keyword{Name: run[0].Mnemonic, Shape: List}
			for _, v := range run {
				kw.Records = append(kw.Records, cellRecord(v.Qual))
			}
			sec.Keywords = append(sec.Keywords, kw)
		case summary.Well, summary.Group:
			kw := &Keyword{Name: run[0].Mnemonic, Shape: Records}
			rec := Record{}
			for _, v := range run {
				if name := v.Qual.Name; name != "" {
					rec.Items = append(rec.Items,
						Item{Text: name, Quoted: true})
				}
			}
			kw.Records = []Record{rec}
			sec.Keywords = append(sec.Keywords, kw)
		case summary.Region:
			kw := &Keyword{Name: run[0].Mnemonic, Shape: Records}
			rec := Record{}
			for _, v := range run {
				if v.Qual.Kind == summary.QualNum {
					rec.Items = append(rec.Items,
						Item{Text: strconv.Itoa(v.Qual.I)})
				}
			}
			kw.Records = []Record{rec}
			sec.Keywords = append(sec.Keywords, kw)
		default:
			for _, v := range run {
				sec.Keywords = append(sec.Keywords,
					&Keyword{Name: v.Mnemonic, Shape: Flag})
			}
		}
	}
	return sec
}

func cellRecord(q summary.Qualifier) Record {
	return Record{Items: []Item{
		{Text: strconv.Itoa(q.I)},
		{Text: strconv.Itoa(q.J)},
		{Text: strconv.Itoa(q.K)},
	}}
}
