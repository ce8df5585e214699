/*package summary describes summary vectors: the named observation channels
(field, well, group, and block quantities) that the simulator records at every
report step. A Vector pairs a mnemonic with the qualifier that disambiguates
it, and a Spec is an ordered catalogue of vectors. The order of a Spec is
significant: it fixes the column order of every data row written against it,
so the same Spec type is used both when requesting vectors in a deck and when
reconstructing what an SMSPEC file says was actually recorded.
*/
package summary

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a mnemonic by the entity it observes. The first letter of
// an Eclipse-style mnemonic carries the classification: FOPR is a field
// vector, WBHP a well vector, BPR a block vector, and so on. Anything that
// doesn't match a known family (TIME, ELAPSED, the solver diagnostics that
// PERFORMA expands to, ...) is Misc and takes no qualifier.
type Kind int

const (
	Misc Kind = iota
	Field
	Well
	Group
	Block
	Connection
	Region
)

// directives are the request keywords that expand or lay out the report on
// the simulator side rather than naming an observation channel themselves.
// They are listed explicitly because two of them would otherwise classify by
// their first letter: RUNSUM and RPTONLY spell like region vectors.
var directives = map[string]bool{
	"PERFORMA": true,
	"RUNSUM":   true,
	"SEPARATE": true,
	"RPTONLY":  true,
	"EXCEL":    true,
	"NARROW":   true,
	"MONITOR":  true,
}

// IsDirective returns true if the mnemonic is a request directive rather
// than an observation channel.
func IsDirective(mnemonic string) bool { return directives[mnemonic] }

// KindOf returns the Kind of a mnemonic.
func KindOf(mnemonic string) Kind {
	if mnemonic == "" || directives[mnemonic] {
		return Misc
	}
	switch mnemonic[0] {
	case 'F':
		return Field
	case 'W':
		return Well
	case 'G':
		return Group
	case 'B':
		return Block
	case 'C':
		return Connection
	case 'R':
		return Region
	}
	return Misc
}

func (k Kind) String() string {
	switch k {
	case Field:
		return "field"
	case Well:
		return "well"
	case Group:
		return "group"
	case Block:
		return "block"
	case Connection:
		return "connection"
	case Region:
		return "region"
	}
	return "misc"
}

// QualKind says which variant of Qualifier is in use.
type QualKind int

const (
	QualNone QualKind = iota
	QualWell
	QualGroup
	QualCell
	QualNum
)

// Qualifier identifies the well, group, grid cell, or region a vector is
// attached to. Field and miscellaneous vectors carry the zero Qualifier.
// Qualifier is a comparable value type so that (Mnemonic, Qualifier) pairs
// can be used directly as map keys when deduplicating.
type Qualifier struct {
	Kind QualKind
	// Name is the well or group name for QualWell and QualGroup.
	Name string
	// I, J, K are the 1-based cell coordinates for QualCell. QualNum
	// qualifiers (region numbers) use I alone.
	I, J, K int
}

// WellQual returns a Qualifier naming a well.
func WellQual(name string) Qualifier {
	return Qualifier{Kind: QualWell, Name: name}
}

// GroupQual returns a Qualifier naming a group.
func GroupQual(name string) Qualifier {
	return Qualifier{Kind: QualGroup, Name: name}
}

// CellQual returns a Qualifier naming a 1-based grid cell.
func CellQual(i, j, k int) Qualifier {
	return Qualifier{Kind: QualCell, I: i, J: j, K: k}
}

// NumQual returns a Qualifier carrying a bare number, the form region
// vectors use.
func NumQual(n int) Qualifier {
	return Qualifier{Kind: QualNum, I: n}
}

// String renders the qualifier the way it is spelled in column names: the
// well/group name, "i,j,k" for cells, the number for regions, or "" when
// there is none.
func (q Qualifier) String() string {
	switch q.Kind {
	case QualWell, QualGroup:
		return q.Name
	case QualCell:
		return fmt.Sprintf("%d,%d,%d", q.I, q.J, q.K)
	case QualNum:
		return strconv.Itoa(q.I)
	}
	return ""
}

// Vector is one observation channel: a mnemonic, the qualifier that
// disambiguates it, and the physical unit it is recorded in. Unit is empty
// on the request side of the pipeline (the deck does not carry units); it is
// filled in when a Vector is rebuilt from a specification file.
type Vector struct {
	Mnemonic string
	Qual     Qualifier
	Unit     string
}

// ColumnName returns the name used for this vector's column in the output
// table: MNEMONIC, or MNEMONIC:QUALIFIER when a qualifier is present.
func (v Vector) ColumnName() string {
	q := v.Qual.String()
	if q == "" {
		return v.Mnemonic
	}
	return v.Mnemonic + ":" + q
}

func (v Vector) String() string { return v.ColumnName() }

// Kind returns the classification of the vector's mnemonic.
func (v Vector) Kind() Kind { return KindOf(v.Mnemonic) }

// Spec is an ordered catalogue of summary vectors. Its length defines the
// width of every data row recorded against it, and its order fixes the
// positional meaning of each value in those rows.
type Spec []Vector

// Columns returns the column names of all vectors in order.
func (s Spec) Columns() []string {
	cols := make([]string, len(s))
	for i := range s {
		cols[i] = s[i].ColumnName()
	}
	return cols
}

// Find returns the position of the vector with the given mnemonic and
// qualifier, or -1 if the Spec doesn't contain it.
func (s Spec) Find(mnemonic string, q Qualifier) int {
	for i := range s {
		if s[i].Mnemonic == mnemonic && s[i].Qual == q {
			return i
		}
	}
	return -1
}

// FindColumn returns the position of the vector rendered under the given
// column name, or -1 if the Spec doesn't contain it.
func (s Spec) FindColumn(name string) int {
	for i := range s {
		if s[i].ColumnName() == name {
			return i
		}
	}
	return -1
}

// validMnemonic reports whether a string can be used as a vector mnemonic:
// 1 to 8 characters, uppercase letters and digits, starting with a letter.
func validMnemonic(m string) bool {
	if len(m) == 0 || len(m) > 8 {
		return false
	}
	if m[0] < 'A' || m[0] > 'Z' {
		return false
	}
	for i := 1; i < len(m); i++ {
		c := m[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// NormalizeMnemonic upper-cases and trims a user-supplied mnemonic and
// returns an error if the result isn't a legal mnemonic.
func NormalizeMnemonic(m string) (string, error) {
	m = strings.ToUpper(strings.TrimSpace(m))
	if !validMnemonic(m) {
		return "", fmt.Errorf(
			"'%s' is not a valid summary mnemonic: mnemonics are 1-8 "+
				"uppercase letters and digits and start with a letter", m)
	}
	return m, nil
}
