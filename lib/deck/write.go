package deck

import "strings"

// String renders the deck in canonical form: section tags and keyword names
// at column zero, one keyword per statement, record items separated by
// single spaces with their terminating slash on the same line, a lone slash
// closing List keywords, and a blank line between statements. Parsing the
// result reproduces the deck exactly, banners excepted.
func (d *Deck) String() string {
	b := &strings.Builder{}
	for _, s := range d.Sections {
		for _, line := range s.Banner {
			b.WriteString("-- ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteString(s.Name)
		b.WriteString("\n\n")
		for _, kw := range s.Keywords {
			writeKeyword(b, kw)
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Bytes returns the canonical rendering as a byte slice.
func (d *Deck) Bytes() []byte { return []byte(d.String()) }

func writeKeyword(b *strings.Builder, kw *Keyword) {
	b.WriteString(kw.Name)
	if kw.Comment != "" {
		b.WriteString("  -- ")
		b.WriteString(kw.Comment)
	}
	b.WriteByte('\n')
	switch kw.Shape {
	case Flag:
	case Title:
		if len(kw.Records) > 0 && len(kw.Records[0].Items) > 0 {
			b.WriteString(kw.Records[0].Items[0].Text)
			b.WriteByte('\n')
		}
	default:
		for _, rec := range kw.Records {
			writeRecord(b, rec)
		}
		if kw.Shape == List {
			b.WriteString("/\n")
		}
	}
}

func writeRecord(b *strings.Builder, rec Record) {
	if rec.Empty() {
		b.WriteString("/\n")
		return
	}
	parts := make([]string, len(rec.Items))
	for i := range rec.Items {
		parts[i] = rec.Items[i].Render()
	}
	b.WriteString("  ")
	b.WriteString(strings.Join(parts, " "))
	b.WriteString(" /\n")
}
