// Package parse finds job tables in README documents. It understands HTML
// <table> blocks and Markdown pipe tables, and tags every table with a
// category taken from the nearest heading above it.
package parse

import (
	"regexp"
	"strings"

	"jobhunt-readme/internal/domain"
)

// DefaultFillerTokens are stripped from headings before they become a
// category. Years are handled separately (see Options.KeepYears).
var DefaultFillerTokens = []string{
	"New Grad Positions", "New Grad Roles", "New Graduate",
	"Positions", "Position", "Jobs", "Roles", "Openings", "Listings", "Opportunities",
	"Entry Level", "Entry-Level", "Full Time", "Full-Time",
}

type Options struct {
	FillerTokens   []string
	KeepYears      bool
	InactiveMarker string // headings containing it (any case) are ignored
	MaxWords       int
}

// Parser is safe for concurrent use; it holds only compiled patterns.
type Parser struct {
	filler   []*regexp.Regexp
	inactive string
	maxWords int
}

func New(opts Options) *Parser {
	if len(opts.FillerTokens) == 0 {
		opts.FillerTokens = DefaultFillerTokens
	}
	if strings.TrimSpace(opts.InactiveMarker) == "" {
		opts.InactiveMarker = "inactive"
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = 3
	}
	return &Parser{
		filler:   compileFiller(opts.FillerTokens, opts.KeepYears),
		inactive: strings.ToLower(strings.TrimSpace(opts.InactiveMarker)),
		maxWords: opts.MaxWords,
	}
}

// ParseTables detects the format of text and extracts its tables.
func (p *Parser) ParseTables(text string) []domain.ParsedTable {
	return p.ParseTablesAs(text, DetectFormat(text))
}

// ParseTablesAs extracts tables assuming format. Mixed documents use their
// HTML tables and only fall back to Markdown when there are none.
func (p *Parser) ParseTablesAs(text string, format domain.Format) []domain.ParsedTable {
	switch format {
	case domain.FormatHTML:
		return p.parseHTML(text)
	case domain.FormatMarkdown:
		return p.parseMarkdown(text)
	case domain.FormatMixed:
		if tables := p.parseHTML(text); len(tables) > 0 {
			return tables
		}
		return p.parseMarkdown(text)
	default:
		return nil
	}
}
