// Package dates turns the free-text "Date Posted" / "Age" cells found in job
// tables into YYYY-MM-DD.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// futureSlack is how far past the reference a year-less date may land before
// it is assumed to belong to the previous year.
const futureSlack = 30 * 24 * time.Hour

// Normalizer evaluates expressions against a fixed reference instant.
type Normalizer struct {
	ref time.Time
}

// New returns a Normalizer anchored at ref (its calendar date in ref's location).
func New(ref time.Time) Normalizer {
	y, m, d := ref.Date()
	return Normalizer{ref: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Reference returns the anchor date.
func (n Normalizer) Reference() time.Time { return n.ref }

// Normalize returns the ISO date for text, or false when nothing parses.
func Normalize(text string) (string, bool) {
	return New(time.Now()).Normalize(text)
}

var (
	reShort   = regexp.MustCompile(`^(\d+)\s*(d|w|mo|m|y|yr|yrs|h|hr|hrs)\+?$`)
	reVerbose = regexp.MustCompile(`^(\d+)\s+(minute|min|hour|hr|day|week|month|year)s?\s+ago$`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// Normalize tries relative expressions first, then the fixed layouts.
func (n Normalizer) Normalize(text string) (string, bool) {
	collapsed := strings.TrimSpace(reSpaces.ReplaceAllString(text, " "))
	if collapsed == "" {
		return "", false
	}
	if t, ok := n.relative(strings.ToLower(collapsed)); ok {
		return t.Format(isoLayout), true
	}
	if t, ok := n.absolute(collapsed); ok {
		return t.Format(isoLayout), true
	}
	return "", false
}

func (n Normalizer) relative(s string) (time.Time, bool) {
	switch s {
	case "today", "now", "just now", "just posted":
		return n.ref, true
	case "yesterday":
		return n.ref.AddDate(0, 0, -1), true
	case "last week":
		return n.ref.AddDate(0, 0, -7), true
	case "last month":
		return n.ref.AddDate(0, -1, 0), true
	case "last year":
		return n.ref.AddDate(-1, 0, 0), true
	}

	if m := reShort.FindStringSubmatch(s); m != nil {
		v, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		switch m[2] {
		case "d":
			return n.ref.AddDate(0, 0, -v), true
		case "w":
			return n.ref.AddDate(0, 0, -7*v), true
		case "mo":
			return n.ref.AddDate(0, -v, 0), true
		case "m":
			// "0m" is minutes ago, anything else is months
			if v == 0 {
				return n.ref, true
			}
			return n.ref.AddDate(0, -v, 0), true
		case "y", "yr", "yrs":
			return n.ref.AddDate(-v, 0, 0), true
		case "h", "hr", "hrs":
			return n.ref, true
		}
	}

	if m := reVerbose.FindStringSubmatch(s); m != nil {
		v, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		switch m[2] {
		case "minute", "min", "hour", "hr":
			return n.ref, true
		case "day":
			return n.ref.AddDate(0, 0, -v), true
		case "week":
			return n.ref.AddDate(0, 0, -7*v), true
		case "month":
			return n.ref.AddDate(0, -v, 0), true
		case "year":
			return n.ref.AddDate(-v, 0, 0), true
		}
	}
	return time.Time{}, false
}

type layout struct {
	value    string
	withYear bool
}

// layouts in priority order; time.Parse matches month names case-insensitively.
var layouts = []layout{
	{"Jan 2", false},
	{"Jan 2, 2006", true},
	{"Jan 2 2006", true},
	{"January 2", false},
	{"January 2, 2006", true},
	{"January 2 2006", true},
	{"1/2", false},
	{"1/2/06", true},
	{"1/2/2006", true},
	{"2006-01-02", true},
	{"2-Jan-2006", true},
	{"2 Jan 2006", true},
}

func (n Normalizer) absolute(s string) (time.Time, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	s = strings.Replace(s, "Sept ", "Sep ", 1)
	for _, l := range layouts {
		t, err := time.Parse(l.value, s)
		if err != nil {
			continue
		}
		if l.withYear {
			return t, true
		}
		return n.withReferenceYear(t)
	}
	return time.Time{}, false
}

// withReferenceYear places a year-less date in the reference year, or the
// year before when that would land too far in the future. Feb 29 outside a
// leap year is rejected rather than rolled into March.
func (n Normalizer) withReferenceYear(t time.Time) (time.Time, bool) {
	year := n.ref.Year()
	if time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Sub(n.ref) > futureSlack {
		year--
	}
	d := time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if d.Month() != t.Month() || d.Day() != t.Day() {
		return time.Time{}, false
	}
	return d, true
}
