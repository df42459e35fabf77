package parse

import (
	"regexp"
	"strings"

	"jobhunt-readme/internal/domain"
)

var (
	reHTMLTableOpen = regexp.MustCompile(`(?i)<table[\s>]`)
	reMDSeparator   = regexp.MustCompile(`\|\s*:?-+:?\s*\|`)
)

// DetectFormat reports which table dialects text contains.
func DetectFormat(text string) domain.Format {
	hasHTML := reHTMLTableOpen.MatchString(text)
	hasMD := hasMarkdownTable(text)
	switch {
	case hasHTML && hasMD:
		return domain.FormatMixed
	case hasHTML:
		return domain.FormatHTML
	case hasMD:
		return domain.FormatMarkdown
	default:
		return domain.FormatUnknown
	}
}

// hasMarkdownTable needs a separator line plus another row with >= 2 pipes.
func hasMarkdownTable(text string) bool {
	sep, row := false, false
	for _, line := range strings.Split(text, "\n") {
		switch {
		case reMDSeparator.MatchString(line) && isSeparatorRow(splitRow(line)):
			sep = true
		case isTableLine(line):
			row = true
		}
		if sep && row {
			return true
		}
	}
	return false
}
