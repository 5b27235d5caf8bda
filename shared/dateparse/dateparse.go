// Package dateparse extracts future dates and clock times from free text.
//
// Purely numeric dates are read day-first ("25/12/2028", "25-12-28") before the
// natural-language parser sees them, so the locale order never depends on the
// configured languages. Natural-language input ("tomorrow", "el viernes",
// "next monday at 5pm") is resolved relative to the injected clock with a
// preference for future instants.
package dateparse

import (
	"errors"
	"strings"
	"time"

	"nutrisur/shared/clock"

	"github.com/markusmobius/go-dateparser"
)

// ErrNotFound is returned when the text holds no date or only a past one.
var ErrNotFound = errors.New("no future date found")

var defaultLanguages = []string{"en", "es"}

var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2006-1-2",
	"2/1/06",
	"2-1-06",
}

var clockLayouts = []string{
	"15:04",
	"15.04",
	"15h04",
	"15h",
	"3:04pm",
	"3:04 pm",
	"3pm",
	"3 pm",
	"15",
}

var clockPrefixes = []string{"at ", "a las ", "a la ", "las ", "la "}

type Parser struct {
	clock     clock.Clock
	languages []string
}

func New(clk clock.Clock, languages ...string) *Parser {
	if len(languages) == 0 {
		languages = defaultLanguages
	}

	return &Parser{
		clock:     clk,
		languages: languages,
	}
}

// Parse returns the first future instant described by text. When text carries
// no clock time, defaultHour and defaultMinute are used.
func (p *Parser) Parse(text string, defaultHour, defaultMinute int) (time.Time, error) {
	text = normalize(text)
	if text == "" {
		return time.Time{}, ErrNotFound
	}

	now := p.clock.Now()
	loc := p.clock.Location()

	result, ok := parseLayouts(text, loc, defaultHour, defaultMinute)
	if !ok {
		result, ok = p.parseNatural(text, now, loc, defaultHour, defaultMinute)
	}

	if !ok || result.Before(now) {
		return time.Time{}, ErrNotFound
	}

	return result, nil
}

// ParseClock extracts an hour and minute from text. It performs no past check.
func (p *Parser) ParseClock(text string) (hour, minute int, err error) {
	text = normalize(text)

	for _, prefix := range clockPrefixes {
		text = strings.TrimPrefix(text, prefix)
	}

	text = strings.TrimSuffix(strings.TrimSuffix(text, " hs"), " h")

	if text == "" {
		return 0, 0, ErrNotFound
	}

	for _, layout := range clockLayouts {
		parsed, err := time.Parse(layout, text)
		if err == nil {
			return parsed.Hour(), parsed.Minute(), nil
		}
	}

	now := p.clock.Now()

	date, err := dateparser.Parse(p.config(now, p.clock.Location()), text)
	if err != nil || date.Time.IsZero() || !date.Period.IsTime() {
		return 0, 0, ErrNotFound
	}

	return date.Time.Hour(), date.Time.Minute(), nil
}

func (p *Parser) parseNatural(text string, now time.Time, loc *time.Location, defaultHour, defaultMinute int) (time.Time, bool) {
	date, err := dateparser.Parse(p.config(now, loc), text)
	if err != nil || date.Time.IsZero() {
		return time.Time{}, false
	}

	result := date.Time.In(loc)
	if !date.Period.IsTime() {
		result = atClock(result, loc, defaultHour, defaultMinute)
	}

	return result, true
}

func (p *Parser) config(now time.Time, loc *time.Location) *dateparser.Configuration {
	return &dateparser.Configuration{
		Languages:           p.languages,
		CurrentTime:         now,
		DefaultTimezone:     loc,
		PreferredDateSource: dateparser.Future,
		ReturnTimeAsPeriod:  true,
	}
}

func parseLayouts(text string, loc *time.Location, defaultHour, defaultMinute int) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout+" 15:04", text, loc); err == nil {
			return parsed, true
		}

		if parsed, err := time.ParseInLocation(layout, text, loc); err == nil {
			return atClock(parsed, loc, defaultHour, defaultMinute), true
		}
	}

	return time.Time{}, false
}

func atClock(day time.Time, loc *time.Location, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
}

func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
