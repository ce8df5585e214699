package deck

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed deck. Line is the 1-based source line the
// problem was detected on, and Keyword names the statement being parsed at
// the time, if any.
type ParseError struct {
	Keyword string
	Line    int
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Keyword == "" {
		return fmt.Sprintf("Line %d of the deck: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("Line %d of the deck, keyword %s: %s",
		e.Line, e.Keyword, e.Reason)
}

func parseErr(keyword string, line int, format string, args ...interface{}) error {
	return &ParseError{
		Keyword: keyword, Line: line,
		Reason: fmt.Sprintf(format, args...),
	}
}

// SectionOrderError reports a deck whose sections violate the canonical
// section ordering. Section is the tag that is out of place and After the
// tag it incorrectly follows.
type SectionOrderError struct {
	Section string
	After   string
}

func (e *SectionOrderError) Error() string {
	return fmt.Sprintf("The deck's sections are out of order: '%s' appears "+
		"after '%s', but the canonical order is %s.",
		e.Section, e.After, strings.Join(SectionOrder, ", "))
}

func itemError(it Item, reason string) error {
	return fmt.Errorf("the token '%s' cannot be used here: %s",
		it.Render(), reason)
}
