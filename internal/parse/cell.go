package parse

import (
	"html"
	"regexp"
	"strings"

	"jobhunt-readme/internal/scrape/util"
)

var (
	reMDImage = regexp.MustCompile(`!\[([^\]]*)\]\((?:[^()]|\([^()]*\))*\)`)
	reMDLink  = regexp.MustCompile(`\[([^\[\]]*)\]\(\s*<?((?:[^()\s<>]|\([^()\s<>]*\))+)>?(?:\s+"[^"]*")?\s*\)`)
	reAnchor  = regexp.MustCompile(`(?is)<a\b[^>]*?\bhref\s*=\s*["']([^"']*)["'][^>]*>(.*?)</a\s*>`)
	reBreak   = regexp.MustCompile(`(?i)<\s*/?\s*br\s*/?\s*>`)
	reTag     = regexp.MustCompile(`(?s)<[^>]*>`)
	reFiller  = regexp.MustCompile(`^[\s\-–—:|=_.]*$`)
)

// cleanCell turns raw cell markup into display text with link markers:
// Markdown links and HTML anchors become text[[LINK:url]], remaining tags
// are dropped, entities decoded and whitespace collapsed.
func cleanCell(raw string) string {
	s := reMDImage.ReplaceAllString(raw, "$1")
	s = reMDLink.ReplaceAllStringFunc(s, func(m string) string {
		sub := reMDLink.FindStringSubmatch(m)
		return linkMarker(sub[1], sub[2])
	})
	s = reAnchor.ReplaceAllStringFunc(s, func(m string) string {
		sub := reAnchor.FindStringSubmatch(m)
		text := reTag.ReplaceAllString(sub[2], " ")
		return linkMarker(text, sub[1])
	})
	s = reBreak.ReplaceAllString(s, " ")
	s = reTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return util.CleanText(s)
}

// cleanText is cleanCell without the markers, for headers and headings.
func cleanText(raw string) string {
	return StripLinks(cleanCell(raw))
}

func isFillerRow(cells []string) bool {
	for _, c := range cells {
		if !reFiller.MatchString(c) {
			return false
		}
	}
	return true
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// fitRow pads short rows with empty cells and truncates long ones.
func fitRow(cells []string, n int) []string {
	out := make([]string, n)
	copy(out, cells)
	return out
}
