package parse

import (
	"regexp"
	"strings"

	"jobhunt-readme/internal/domain"
)

var reSeparatorCell = regexp.MustCompile(`^:?-+:?$`)

const escapedPipe = "\x00"

// parseMarkdown walks the document line by line. A header row becomes a
// table once a separator row follows it; the table runs until the first
// line that is not a table row.
func (p *Parser) parseMarkdown(text string) []domain.ParsedTable {
	var (
		out      []domain.ParsedTable
		category = defaultCategory
		header   []string
		rows     [][]string
		started  bool
	)
	flush := func() {
		if started && len(header) > 0 && len(rows) > 0 {
			out = append(out, domain.ParsedTable{
				Headers:  header,
				Rows:     rows,
				Format:   domain.FormatMarkdown,
				Category: category,
			})
		}
		header, rows, started = nil, nil, false
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")

		if h, ok := markdownHeading(line); ok {
			flush()
			if c, ok := p.headingCategory(h); ok {
				category = c
			}
			continue
		}

		if !isTableLine(line) {
			if started {
				flush()
			}
			header = nil
			continue
		}

		cells := splitRow(line)
		if isSeparatorRow(cells) {
			if header != nil {
				started = true
			}
			continue
		}

		if !started {
			if header == nil {
				for _, c := range cells {
					header = append(header, cleanText(c))
				}
			}
			continue
		}

		row := make([]string, 0, len(cells))
		for _, c := range cells {
			row = append(row, cleanCell(c))
		}
		if allEmpty(row) {
			continue
		}
		rows = append(rows, fitRow(row, len(header)))
	}
	flush()
	return out
}

// isTableLine reports whether line has at least two unescaped pipes.
func isTableLine(line string) bool {
	return strings.Count(strings.ReplaceAll(line, `\|`, ""), "|") >= 2
}

// splitRow drops the outer pipes and splits on the rest; `\|` stays a
// literal pipe inside its cell.
func splitRow(line string) []string {
	s := strings.TrimSpace(strings.ReplaceAll(line, `\|`, escapedPipe))
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")
	parts := strings.Split(s, "|")
	for i, c := range parts {
		parts[i] = strings.TrimSpace(strings.ReplaceAll(c, escapedPipe, "|"))
	}
	return parts
}

// isSeparatorRow: every cell is empty or dashes with optional alignment colons.
func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		c = strings.ReplaceAll(strings.TrimSpace(c), " ", "")
		if c != "" && !reSeparatorCell.MatchString(c) {
			return false
		}
	}
	return true
}
