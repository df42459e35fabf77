package parse

import (
	"regexp"
	"strings"

	"jobhunt-readme/internal/scrape/util"
)

// Cells carry their hyperlinks inline as text[[LINK:url]] so HTML and
// Markdown tables look the same to the extractor.
const (
	markerOpen  = "[[LINK:"
	markerClose = "]]"
)

var reMarker = regexp.MustCompile(`\[\[LINK:([^\]]*)\]\]`)

func linkMarker(text, url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return text
	}
	return text + markerOpen + url + markerClose
}

// ExtractLinks returns every URL embedded in cell, in order.
func ExtractLinks(cell string) []string {
	var out []string
	for _, m := range reMarker.FindAllStringSubmatch(cell, -1) {
		if u := strings.TrimSpace(m[1]); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// StripLinks removes the link markers, leaving the display text.
func StripLinks(cell string) string {
	return util.CleanText(reMarker.ReplaceAllString(cell, " "))
}
