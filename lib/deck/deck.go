/*package deck provides a round-trippable in-memory model of Eclipse-style
simulation decks: ordered sections, each holding ordered keyword records. The
model is deliberately shallow. Items keep their original spelling so that
serializing a parsed deck reproduces its semantic content exactly, and typed
access (ints, floats, repeat counts) is provided by methods that interpret an
item on demand. Only the handful of keywords the pipeline actually inspects
(DIMENS, WELSPECS, the summary requests) get semantic treatment; every other
keyword is carried through untouched.

Decks are treated as immutable once parsed. Patch builds a new Deck rather
than splicing sections in place, which keeps the idempotence and round-trip
guarantees easy to state and test.
*/
package deck

import (
	"strconv"
	"strings"
)

// SectionOrder lists the section tags a deck may contain, in canonical
// order. Not every deck carries every section, but the sections it does
// carry must appear in this relative order.
var SectionOrder = []string{
	"RUNSPEC", "GRID", "EDIT", "PROPS",
	"REGIONS", "SOLUTION", "SUMMARY", "SCHEDULE",
}

// sectionRank returns the canonical position of a section tag, or -1 if the
// name is not a section tag.
func sectionRank(name string) int {
	for i := range SectionOrder {
		if SectionOrder[i] == name {
			return i
		}
	}
	return -1
}

// IsSectionTag returns true if name is one of the reserved section tags.
func IsSectionTag(name string) bool { return sectionRank(name) >= 0 }

// Shape describes how a keyword's data is laid out in the deck text.
type Shape int

const (
	// Flag keywords are a bare keyword line with no data.
	Flag Shape = iota
	// Title keywords are followed by a single raw text line with no
	// terminator.
	Title
	// Records keywords carry a fixed number of slash-terminated records
	// and no closing slash.
	Records
	// List keywords carry any number of slash-terminated records followed
	// by a lone slash that closes the list.
	List
)

func (s Shape) String() string {
	switch s {
	case Flag:
		return "flag"
	case Title:
		return "title"
	case Records:
		return "records"
	case List:
		return "list"
	}
	return "unknown"
}

// Item is one data token within a keyword record. Text holds the token
// without quotes; Quoted remembers whether the deck spelled it as a quoted
// string, so serialization can reproduce the original form.
type Item struct {
	Text   string
	Quoted bool
}

// Render returns the deck spelling of the item.
func (it Item) Render() string {
	if it.Quoted {
		return "'" + it.Text + "'"
	}
	return it.Text
}

// Repeat interprets the item as an Eclipse repeat token, "n*" or "n*value".
// It returns the count, the repeated value ("" for a defaulted repeat), and
// whether the item is a repeat token at all.
func (it Item) Repeat() (n int, value string, ok bool) {
	if it.Quoted {
		return 0, "", false
	}
	i := strings.IndexByte(it.Text, '*')
	if i < 0 {
		return 0, "", false
	}
	if i == 0 {
		n = 1
	} else {
		m, err := strconv.Atoi(it.Text[:i])
		if err != nil || m < 1 {
			return 0, "", false
		}
		n = m
	}
	return n, it.Text[i+1:], true
}

// IsDefault returns true if the item defaults one or more positions
// ("1*", "3*", or a bare "*").
func (it Item) IsDefault() bool {
	n, value, ok := it.Repeat()
	return ok && n > 0 && value == ""
}

// Int returns the item's integer value. The second return is false for
// quoted, defaulted, or non-integer items.
func (it Item) Int() (int, bool) {
	if it.Quoted || strings.IndexByte(it.Text, '*') >= 0 {
		return 0, false
	}
	n, err := strconv.Atoi(it.Text)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float returns the item's numeric value. Fortran-style exponents
// ("1.0D-3") are accepted. The second return is false for quoted,
// defaulted, or non-numeric items.
func (it Item) Float() (float64, bool) {
	if it.Quoted || strings.IndexByte(it.Text, '*') >= 0 {
		return 0, false
	}
	s := strings.ReplaceAll(strings.ReplaceAll(it.Text, "D", "E"), "d", "e")
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return x, true
}

// Record is one slash-terminated group of items within a keyword.
type Record struct {
	Items []Item
}

// Empty returns true for a record with no items, which is how a lone slash
// parses.
func (r Record) Empty() bool { return len(r.Items) == 0 }

// Ints expands the record into a flat integer slice. Repeat tokens are
// expanded ("3*10" becomes three tens); defaulted items and non-integer
// items are an error.
func (r Record) Ints() ([]int, error) {
	var out []int
	for _, it := range r.Items {
		if n, value, ok := it.Repeat(); ok {
			if value == "" {
				return nil, itemError(it, "a defaulted item cannot be "+
					"expanded to integers")
			}
			x, err := strconv.Atoi(value)
			if err != nil {
				return nil, itemError(it, "the repeated value is not an "+
					"integer")
			}
			for j := 0; j < n; j++ {
				out = append(out, x)
			}
			continue
		}
		x, ok := it.Int()
		if !ok {
			return nil, itemError(it, "the item is not an integer")
		}
		out = append(out, x)
	}
	return out, nil
}

// Strings returns the unquoted text of every item in the record.
func (r Record) Strings() []string {
	out := make([]string, len(r.Items))
	for i := range r.Items {
		out[i] = r.Items[i].Text
	}
	return out
}

// Keyword is one named statement in a deck section.
type Keyword struct {
	Name string
	// Shape controls how Records is rendered and how the statement was
	// delimited in the source text.
	Shape   Shape
	Records []Record
	// Comment is the trailing "--" comment of the keyword's own line, the
	// only comment parsing preserves. Comments on data lines are dropped.
	Comment string
	// Line is the 1-based source line of the keyword name, or 0 for
	// keywords built programmatically.
	Line int
}

// Section is a named region of the deck holding an ordered keyword list.
type Section struct {
	Name     string
	Keywords []*Keyword
	// Banner lines are rendered as comments immediately before the section
	// tag. Parsing discards comments, so banners only survive on sections
	// built programmatically (the patcher uses this to mark its output).
	Banner []string
}

// Keyword returns the first keyword in the section with the given name, or
// nil if the section has none.
func (s *Section) Keyword(name string) *Keyword {
	for _, kw := range s.Keywords {
		if kw.Name == name {
			return kw
		}
	}
	return nil
}

// Deck is a whole input file: an ordered list of sections.
type Deck struct {
	Sections []*Section
}

// Section returns the deck's section with the given tag, or nil if the deck
// doesn't contain it.
func (d *Deck) Section(name string) *Section {
	for _, s := range d.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}
