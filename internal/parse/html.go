package parse

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"jobhunt-readme/internal/domain"
)

var reTableBlock = regexp.MustCompile(`(?is)<table\b[^>]*>.*?</table\s*>`)

func (p *Parser) parseHTML(text string) []domain.ParsedTable {
	blocks := reTableBlock.FindAllStringIndex(text, -1)
	if len(blocks) == 0 {
		return nil
	}

	// Only headings of active sections are candidates.
	var headings []heading
	for _, h := range scanHeadings(text) {
		if c, ok := p.headingCategory(h.text); ok {
			headings = append(headings, heading{pos: h.pos, text: c})
		}
	}

	var out []domain.ParsedTable
	for _, b := range blocks {
		t, ok := parseHTMLTable(text[b[0]:b[1]])
		if !ok {
			continue
		}
		t.Category = categoryBefore(headings, b[0])
		out = append(out, t)
	}
	return out
}

// categoryBefore returns the nearest heading strictly before pos.
func categoryBefore(headings []heading, pos int) string {
	cat := defaultCategory
	for _, h := range headings {
		if h.pos >= pos {
			break
		}
		cat = h.text
	}
	return cat
}

func parseHTMLTable(block string) (domain.ParsedTable, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(block))
	if err != nil {
		log.Debug().Err(err).Str("component", "parse").Msg("unreadable html table")
		return domain.ParsedTable{}, false
	}

	trs := doc.Find("tr")
	if trs.Length() == 0 {
		return domain.ParsedTable{}, false
	}

	// <th> row if there is one, else the first row.
	headerIdx := 0
	trs.EachWithBreak(func(i int, tr *goquery.Selection) bool {
		if tr.ChildrenFiltered("th").Length() > 0 {
			headerIdx = i
			return false
		}
		return true
	})

	var headers []string
	for _, c := range rowCells(trs.Eq(headerIdx)) {
		headers = append(headers, StripLinks(c))
	}
	if len(headers) == 0 || allEmpty(headers) {
		return domain.ParsedTable{}, false
	}

	t := domain.ParsedTable{Headers: headers, Format: domain.FormatHTML}
	trs.Each(func(i int, tr *goquery.Selection) {
		if i <= headerIdx {
			return
		}
		cells := rowCells(tr)
		if len(cells) == 0 || isFillerRow(cells) {
			return
		}
		t.Rows = append(t.Rows, fitRow(cells, len(headers)))
	})
	return t, true
}

func rowCells(tr *goquery.Selection) []string {
	var cells []string
	tr.ChildrenFiltered("td, th").Each(func(_ int, td *goquery.Selection) {
		inner, err := td.Html()
		if err != nil {
			inner = td.Text()
		}
		cells = append(cells, cleanCell(inner))
	})
	return cells
}
