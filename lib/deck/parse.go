package deck

import (
	"strings"
)

/*
The parser is line-oriented. Comments and blank lines vanish first, then
each surviving line is tokenized into items plus an optional terminating
slash. Everything after the first unquoted slash on a line is ignored, which
is also how the simulator treats deck text. A record accumulates items
across lines until the line carrying its slash; a lone slash therefore
parses as an empty record, which is what closes List keywords.

Keyword shapes come from the registry, or from mnemonic-family rules inside
the summary section. A keyword the registry doesn't know is parsed by
inference: records are read until a lone slash closes them, the next
registered keyword or section tag begins, or the file ends. Inference is
only a fallback; the decks this pipeline handles parse entirely from the
registry and the family rules.
*/

// Parse reads deck text into a Deck. The returned error is a *ParseError
// describing the first malformed construct found.
func Parse(data []byte) (*Deck, error) {
	p := &parser{lines: splitLines(string(data))}
	d := &Deck{}
	var cur *Section

	for {
		ln, ok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		if len(ln.items) == 0 {
			if ln.slash {
				return nil, parseErr("", ln.no, "a record terminator "+
					"'/' appears outside any keyword record")
			}
			return nil, parseErr("", ln.no, "the line holds no keyword: "+
				"only separators were found")
		}
		first := ln.items[0]
		if !first.Quoted && IsSectionTag(first.Text) {
			if len(ln.items) > 1 || ln.slash {
				return nil, parseErr("", ln.no, "the section tag %s must "+
					"be alone on its line", first.Text)
			}
			if d.Section(first.Text) != nil {
				return nil, parseErr("", ln.no, "the deck declares the "+
					"section %s twice, but each section tag may appear at "+
					"most once", first.Text)
			}
			cur = &Section{Name: first.Text}
			d.Sections = append(d.Sections, cur)
			continue
		}

		if cur == nil {
			return nil, parseErr("", ln.no, "'%s' appears before any "+
				"section tag: a deck must open with one of %s",
				first.Render(), strings.Join(SectionOrder, ", "))
		}
		kws, err := p.keyword(cur.Name, ln)
		if err != nil {
			return nil, err
		}
		cur.Keywords = append(cur.Keywords, kws...)
	}

	if len(d.Sections) == 0 {
		return nil, parseErr("", 1, "the deck is empty: no section tags "+
			"were found")
	}
	return d, nil
}

// contentLine is one non-blank source line with its trailing comment split
// off.
type contentLine struct {
	no    int
	items []Item
	// slash is true if the line carries an unquoted '/', which terminates
	// the current record.
	slash bool
	// comment is the text of the line's trailing "--" comment, if any.
	comment string
}

func (ln contentLine) lone() bool { return len(ln.items) == 0 && ln.slash }

type parser struct {
	lines []string
	pos   int
	// One line of pushback, used by peeks at record boundaries.
	haveBack    bool
	backRaw     string
	backComment string
	backNo      int
}

// rawNext returns the next non-blank line, whitespace-trimmed and with its
// trailing comment split off, without tokenizing it. Title text is read this
// way.
func (p *parser) rawNext() (raw, comment string, no int, ok bool) {
	if p.haveBack {
		p.haveBack = false
		return p.backRaw, p.backComment, p.backNo, true
	}
	for p.pos < len(p.lines) {
		content, comment := splitComment(p.lines[p.pos])
		p.pos++
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		return content, comment, p.pos, true
	}
	return "", "", 0, false
}

func (p *parser) pushBack(raw, comment string, no int) {
	p.haveBack, p.backRaw, p.backComment, p.backNo = true, raw, comment, no
}

func (p *parser) next() (contentLine, bool, error) {
	raw, comment, no, ok := p.rawNext()
	if !ok {
		return contentLine{}, false, nil
	}
	items, slash, err := tokenizeLine(raw, no)
	if err != nil {
		return contentLine{}, false, err
	}
	return contentLine{
		no: no, items: items, slash: slash, comment: comment,
	}, true, nil
}

func (p *parser) peek() (contentLine, bool, error) {
	raw, comment, no, ok := p.rawNext()
	if !ok {
		return contentLine{}, false, nil
	}
	p.pushBack(raw, comment, no)
	items, slash, err := tokenizeLine(raw, no)
	if err != nil {
		return contentLine{}, false, err
	}
	return contentLine{no: no, items: items, slash: slash}, true, nil
}

// keyword parses one keyword statement starting at ln. It can return more
// than one keyword: flag mnemonics may share a line, a form some generators
// use in summary sections, and each one becomes its own Keyword.
func (p *parser) keyword(section string, ln contentLine) ([]*Keyword, error) {
	first := ln.items[0]
	if first.Quoted {
		return nil, parseErr("", ln.no, "expected a keyword, found the "+
			"quoted string '%s'", first.Text)
	}
	name := first.Text
	if !keywordLike(name) {
		return nil, parseErr("", ln.no, "'%s' is not a valid keyword "+
			"name: keywords are 1-8 uppercase letters and digits", name)
	}

	info, known := lookupShape(section, name)
	var kw *Keyword
	var extra []*Keyword
	var err error
	switch {
	case known && info.shape == Flag:
		kw = &Keyword{Name: name, Shape: Flag, Line: ln.no}
		for _, it := range ln.items[1:] {
			sub, ok := lookupShape(section, it.Text)
			if it.Quoted || !ok || sub.shape != Flag {
				return nil, parseErr(name, ln.no, "the keyword takes no "+
					"data items, but '%s' follows it on the same line",
					it.Render())
			}
			extra = append(extra,
				&Keyword{Name: it.Text, Shape: Flag, Line: ln.no})
		}
	case known && info.shape == Title:
		kw, err = p.title(name, ln)
	case known && info.shape == Records:
		kw, err = p.fixedRecords(name, ln, info.count)
	case known && info.shape == List:
		kw, err = p.list(name, ln)
	default:
		kw, err = p.infer(name, ln)
	}
	if err != nil {
		return nil, err
	}
	kw.Comment = ln.comment

	if validate, ok := validators[name]; ok && len(kw.Records) > 0 {
		if verr := validate(kw); verr != nil {
			return nil, parseErr(name, kw.Line, "%s", verr.Error())
		}
	}
	return append([]*Keyword{kw}, extra...), nil
}

func (p *parser) title(name string, ln contentLine) (*Keyword, error) {
	if len(ln.items) > 1 || ln.slash {
		return nil, parseErr(name, ln.no, "the title text belongs on the "+
			"line after the keyword")
	}
	raw, _, _, ok := p.rawNext()
	if !ok {
		return nil, parseErr(name, ln.no, "the deck ends before the "+
			"title text line")
	}
	return &Keyword{
		Name: name, Shape: Title, Line: ln.no,
		Records: []Record{{Items: []Item{{Text: raw}}}},
	}, nil
}

// record accumulates items until the line carrying the record's slash. seed
// and seedDone carry items already read from the keyword's own line.
func (p *parser) record(kwName string, kwLine int, seed []Item,
	seedDone bool) (Record, error) {
	items := append([]Item{}, seed...)
	if seedDone {
		return Record{Items: items}, nil
	}
	for {
		ln, ok, err := p.next()
		if err != nil {
			return Record{}, err
		}
		if !ok {
			return Record{}, parseErr(kwName, kwLine, "the deck ends "+
				"inside a record that was never terminated with '/'")
		}
		if len(ln.items) > 0 {
			f := ln.items[0]
			if !f.Quoted && IsSectionTag(f.Text) {
				return Record{}, parseErr(kwName, ln.no, "the section tag "+
					"%s begins inside a record that was never terminated "+
					"with '/'", f.Text)
			}
		}
		items = append(items, ln.items...)
		if ln.slash {
			return Record{Items: items}, nil
		}
	}
}

func (p *parser) fixedRecords(name string, ln contentLine,
	count int) (*Keyword, error) {
	if count < 1 {
		count = 1
	}
	kw := &Keyword{Name: name, Shape: Records, Line: ln.no}
	seed, seedDone := ln.items[1:], ln.slash
	for i := 0; i < count; i++ {
		rec, err := p.record(name, kw.Line, seed, seedDone)
		if err != nil {
			return nil, err
		}
		seed, seedDone = nil, false
		kw.Records = append(kw.Records, rec)
	}
	return kw, nil
}

func (p *parser) list(name string, ln contentLine) (*Keyword, error) {
	kw := &Keyword{Name: name, Shape: List, Line: ln.no}
	if len(ln.items) > 1 || ln.slash {
		rec, err := p.record(name, kw.Line, ln.items[1:], ln.slash)
		if err != nil {
			return nil, err
		}
		if rec.Empty() {
			return kw, nil
		}
		kw.Records = append(kw.Records, rec)
	}
	for {
		nx, ok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, parseErr(name, kw.Line, "the deck ends before the "+
				"record list was closed with a lone '/'")
		}
		if len(nx.items) > 0 && !nx.items[0].Quoted &&
			(IsSectionTag(nx.items[0].Text) || isRegistered(nx.items[0].Text)) {
			return nil, parseErr(name, nx.no, "the record list was never "+
				"closed with a lone '/' before '%s' begins",
				nx.items[0].Text)
		}
		rec, err := p.record(name, kw.Line, nil, false)
		if err != nil {
			return nil, err
		}
		if rec.Empty() {
			return kw, nil
		}
		kw.Records = append(kw.Records, rec)
	}
}

// infer parses a keyword the registry doesn't know. Records are read until
// a lone slash closes them (List), or the next registered keyword, section
// tag, or end of file ends them (Records, or Flag when no records were
// read).
func (p *parser) infer(name string, ln contentLine) (*Keyword, error) {
	kw := &Keyword{Name: name, Line: ln.no}
	seed, seedDone := ln.items[1:], ln.slash
	for {
		if len(seed) == 0 && !seedDone {
			nx, ok, err := p.peek()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			if len(nx.items) > 0 && !nx.items[0].Quoted &&
				(IsSectionTag(nx.items[0].Text) ||
					isRegistered(nx.items[0].Text)) {
				break
			}
			if nx.lone() {
				p.next()
				kw.Shape = List
				return kw, nil
			}
		}
		rec, err := p.record(name, kw.Line, seed, seedDone)
		if err != nil {
			return nil, err
		}
		seed, seedDone = nil, false
		if rec.Empty() {
			kw.Shape = List
			return kw, nil
		}
		kw.Records = append(kw.Records, rec)
	}
	if len(kw.Records) == 0 {
		kw.Shape = Flag
	} else {
		kw.Shape = Records
	}
	return kw, nil
}

func isRegistered(name string) bool {
	_, ok := registry[name]
	return ok
}

func keywordLike(s string) bool {
	if len(s) == 0 || len(s) > 8 {
		return false
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

// splitComment splits a line at its trailing "--" comment, leaving quoted
// text alone. The returned comment has the marker and surrounding space
// removed.
func splitComment(s string) (content, comment string) {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\'':
			inQuote = !inQuote
		case !inQuote && s[i] == '-' && i+1 < len(s) && s[i+1] == '-':
			return s[:i], strings.TrimSpace(s[i+2:])
		}
	}
	return s, ""
}

// tokenizeLine splits a comment-stripped line into items. It stops at the
// first unquoted '/': the simulator ignores the rest of the line, so we do
// too.
func tokenizeLine(s string, no int) ([]Item, bool, error) {
	var items []Item
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == ',':
			i++
		case c == '/':
			return items, true, nil
		case c == '\'':
			j := strings.IndexByte(s[i+1:], '\'')
			if j < 0 {
				return nil, false, parseErr("", no, "the quoted string "+
					"%s is never closed", s[i:])
			}
			items = append(items, Item{Text: s[i+1 : i+1+j], Quoted: true})
			i += j + 2
		default:
			j := i + 1
			for j < len(s) {
				c := s[j]
				if c == ' ' || c == '\t' || c == ',' ||
					c == '/' || c == '\'' {
					break
				}
				j++
			}
			items = append(items, Item{Text: s[i:j]})
			i = j
		}
	}
	return items, false, nil
}
