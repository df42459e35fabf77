package parse

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"jobhunt-readme/internal/scrape/util"
)

const defaultCategory = "Other"

var (
	reHTMLHeading = regexp.MustCompile(`(?is)<h[1-6]\b[^>]*>(.*?)</h[1-6]\s*>`)
	reMDHeading   = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*\r?$`)
	reAnchorLink  = regexp.MustCompile(`\[([^\[\]]*)\]\(#[^)]*\)`)
	reYear        = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

type heading struct {
	pos  int
	text string
}

// scanHeadings collects HTML and Markdown headings across the whole
// document, ordered by byte offset.
func scanHeadings(text string) []heading {
	var hs []heading
	for _, m := range reHTMLHeading.FindAllStringSubmatchIndex(text, -1) {
		hs = append(hs, heading{pos: m[0], text: text[m[2]:m[3]]})
	}
	for _, m := range reMDHeading.FindAllStringSubmatchIndex(text, -1) {
		hs = append(hs, heading{pos: m[0], text: text[m[2]:m[3]]})
	}
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].pos < hs[j].pos })
	return hs
}

// markdownHeading reports whether line is an ATX heading and returns its text.
func markdownHeading(line string) (string, bool) {
	m := reMDHeading.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// headingCategory cleans a raw heading and shortens it. ok is false for
// headings of inactive/closed sections, which never become a category.
func (p *Parser) headingCategory(raw string) (string, bool) {
	text := reAnchorLink.ReplaceAllString(raw, "$1")
	text = util.StripEmphasis(cleanText(text))
	if strings.Contains(strings.ToLower(text), p.inactive) {
		return "", false
	}
	return p.shortenCategory(text), true
}

// shortenCategory strips filler tokens and keeps at most maxWords words.
// Symbols such as a leading emoji are kept but do not count as words. If
// stripping leaves no words, the untouched heading is shortened instead.
func (p *Parser) shortenCategory(h string) string {
	h = util.CleanText(h)
	if h == "" {
		return defaultCategory
	}
	s := h
	for _, re := range p.filler {
		s = re.ReplaceAllString(s, " ")
	}
	words := p.capWords(s)
	if words == nil {
		words = p.capWords(h)
	}
	if words == nil {
		words = strings.Fields(h)
	}
	return strings.Join(words, " ")
}

// capWords keeps the first maxWords words and the symbols among them, dropping
// tokens made only of punctuation such as a dangling "-". It returns nil
// when s has no word with a letter or digit.
func (p *Parser) capWords(s string) []string {
	var out []string
	n := 0
	for _, w := range strings.Fields(s) {
		if n == p.maxWords {
			break
		}
		switch {
		case !strings.ContainsFunc(w, func(r rune) bool { return !unicode.IsPunct(r) }):
			continue
		case !strings.ContainsFunc(w, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }):
			out = append(out, w)
		default:
			out = append(out, w)
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return out
}

// compileFiller builds one case-insensitive whole-phrase pattern per token,
// longest first so "New Grad Positions" wins over "Positions".
func compileFiller(tokens []string, keepYears bool) []*regexp.Regexp {
	sorted := append([]string(nil), tokens...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	var out []*regexp.Regexp
	for _, t := range sorted {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(t)+`\b`))
	}
	if !keepYears {
		out = append(out, reYear)
	}
	return out
}
