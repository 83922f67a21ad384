package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var dateParser = newDateParser()

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// absoluteLayouts are tried on each word before natural-language parsing
var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// wordPunctuation is stripped from words before matching absoluteLayouts
const wordPunctuation = ",.;:!?()\"'"

// lastUnitRegex matches "last week", "past month" and friends, which the
// natural-language rules don't cover
var lastUnitRegex = regexp.MustCompile(`(?i)\b(?:last|past)\s+(day|week|month|year)\b`)

// ParseSince turns a date expression like "yesterday", "monday", "last week"
// or "2024-01-15" into the start of that day relative to base.
// Results are never after base: a weekday means the most recent one.
// ok is false when nothing in text reads as a date.
func ParseSince(text string, base time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, wordPunctuation)
		for _, layout := range absoluteLayouts {
			if t, err := time.ParseInLocation(layout, word, base.Location()); err == nil {
				return t, true
			}
		}
	}

	if m := lastUnitRegex.FindStringSubmatch(text); m != nil {
		return startOfDay(lastUnit(strings.ToLower(m[1]), base), base.Location()), true
	}

	r, err := dateParser.Parse(text, base)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	return pastDay(r.Time, base), true
}

func lastUnit(unit string, base time.Time) time.Time {
	switch unit {
	case "day":
		return base.AddDate(0, 0, -1)
	case "week":
		return base.AddDate(0, 0, -7)
	case "month":
		return base.AddDate(0, -1, 0)
	default:
		return base.AddDate(-1, 0, 0)
	}
}

// pastDay truncates t to midnight and moves days after base back into the
// past: a week back for the coming days (weekday names), otherwise a year.
func pastDay(t, base time.Time) time.Time {
	day := startOfDay(t, base.Location())
	if !day.After(base) {
		return day
	}
	if day.Sub(base) <= 7*24*time.Hour {
		return day.AddDate(0, 0, -7)
	}
	return day.AddDate(-1, 0, 0)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
