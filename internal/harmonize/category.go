package harmonize

import (
	"regexp"
	"strings"
	"unicode"

	"jobhunt-readme/internal/scrape/util"
)

// DefaultGenericCategories are whole category names that say nothing about
// the kind of job.
var DefaultGenericCategories = []string{
	"daily list", "jobs", "job list", "listings", "positions", "all jobs", "all positions",
	"other", "view all", "new", "latest", "open roles", "openings", "table of contents",
}

// DefaultGenericPatterns make a category generic when contained in it.
var DefaultGenericPatterns = []string{"daily", "list", "new grad", "intern"}

var DefaultSeasons = []string{"spring", "summer", "fall", "autumn", "winter"}

var reYear = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// CleanCategory drops emoji and other symbols, keeping letters, digits,
// spaces and punctuation, and collapses whitespace.
func CleanCategory(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || unicode.IsPunct(r) {
			b.WriteRune(r)
		}
	}
	return util.CleanText(b.String())
}

type genericRules struct {
	exact    map[string]bool
	patterns []string
	seasons  []string
}

func newGenericRules(exact, patterns, seasons []string) genericRules {
	if len(exact) == 0 {
		exact = DefaultGenericCategories
	}
	if len(patterns) == 0 {
		patterns = DefaultGenericPatterns
	}
	if len(seasons) == 0 {
		seasons = DefaultSeasons
	}
	g := genericRules{exact: make(map[string]bool, len(exact))}
	for _, e := range exact {
		g.exact[strings.ToLower(strings.TrimSpace(e))] = true
	}
	for _, p := range patterns {
		g.patterns = append(g.patterns, strings.ToLower(p))
	}
	for _, s := range seasons {
		g.seasons = append(g.seasons, strings.ToLower(s))
	}
	return g
}

// isGeneric: exact match, a generic substring, a four-digit year or a season.
// Matching "intern" here only decides whether the category is replaced; the
// posting's internship flag comes from its role.
func (g genericRules) isGeneric(category string) bool {
	c := strings.ToLower(strings.TrimSpace(category))
	if g.exact[c] {
		return true
	}
	for _, p := range g.patterns {
		if strings.Contains(c, p) {
			return true
		}
	}
	if reYear.MatchString(c) {
		return true
	}
	for _, s := range g.seasons {
		if strings.Contains(c, s) {
			return true
		}
	}
	return false
}
