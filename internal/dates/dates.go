// Package dates parses due dates typed on the command line.
//
// Explicit dates are tried first (ISO 8601 and US month/day/year), then
// English phrases such as "tomorrow", "next friday" or "in 3 days",
// resolved against a reference time in its location.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// ErrUnrecognizedDate is returned when the text is not a date.
var ErrUnrecognizedDate = errors.New("unrecognized date")

var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
}

// Parser resolves date text relative to a reference time.
type Parser struct {
	natural *when.Parser
}

// NewParser returns a parser for English phrases with US date order.
func NewParser() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	return &Parser{natural: w}
}

var defaultParser = NewParser()

// Parse resolves text relative to now using the default parser.
func Parse(text string, now time.Time) (time.Time, error) {
	return defaultParser.Parse(text, now)
}

// Parse resolves text relative to now. The whole text must be a date; a
// phrase that merely contains one is rejected.
func (p *Parser) Parse(text string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrUnrecognizedDate)
	}

	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, now.Location()); err == nil {
			return parsed, nil
		}
	}

	result, err := p.natural.Parse(trimmed, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrUnrecognizedDate, text, err)
	}
	if result == nil || !covers(trimmed, result.Index, result.Text) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognizedDate, text)
	}
	return result.Time, nil
}

func covers(text string, index int, match string) bool {
	end := index + len(match)
	if index < 0 || end > len(text) {
		return false
	}
	return strings.TrimSpace(text[:index]) == "" && strings.TrimSpace(text[end:]) == ""
}
