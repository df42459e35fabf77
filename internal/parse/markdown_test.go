package parse

import (
	"testing"
)

const newGradReadme = `# Jobs Board

## Software Engineer New Grad 2025

| Company | Role | Location | Application |
|---|---|---|---|
| Acme | SWE | Remote | [Apply](https://acme.com/careers/42) |
| ↳ | SRE | NYC | [Apply](https://jobs.lever.co/acme/7) |

Some closing prose.
`

func TestParseMarkdownScenario(t *testing.T) {
	tables := New(Options{}).ParseTables(newGradReadme)
	if len(tables) != 1 {
		t.Fatalf("want 1 table, got %d", len(tables))
	}
	tb := tables[0]
	if tb.Category != "Software Engineer New" {
		t.Fatalf("want category %q, got %q", "Software Engineer New", tb.Category)
	}
	if len(tb.Headers) != 4 || tb.Headers[3] != "Application" {
		t.Fatalf("unexpected headers: %#v", tb.Headers)
	}
	if len(tb.Rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(tb.Rows))
	}
	if tb.Rows[0][3] != "Apply[[LINK:https://acme.com/careers/42]]" {
		t.Fatalf("unexpected link cell: %q", tb.Rows[0][3])
	}
	if tb.Rows[1][0] != "↳" {
		t.Fatalf("unexpected ditto cell: %q", tb.Rows[1][0])
	}
}

func TestParseMarkdownRowWidth(t *testing.T) {
	doc := "| A | B | C |\n| :-- | --- | --: |\n| 1 |\n| 1 | 2 | 3 | 4 | 5 |\n|  |  |  |\n| x | y | z |\n"
	tables := New(Options{}).ParseTables(doc)
	if len(tables) != 1 {
		t.Fatalf("want 1 table, got %d", len(tables))
	}
	for i, row := range tables[0].Rows {
		if len(row) != len(tables[0].Headers) {
			t.Fatalf("row %d has %d cells, want %d", i, len(row), len(tables[0].Headers))
		}
	}
	if len(tables[0].Rows) != 3 {
		t.Fatalf("want 3 rows (empty row dropped), got %d", len(tables[0].Rows))
	}
	if tables[0].Category != "Other" {
		t.Fatalf("want default category, got %q", tables[0].Category)
	}
}

func TestParseMarkdownInactiveAndMultipleTables(t *testing.T) {
	doc := `## [Data Science](#data-science) Roles
| Company | Role |
|---|---|
| A | DS |

## Inactive Listings
| Company | Role |
|---|---|
| B | Old |
| C | Older |`
	tables := New(Options{}).ParseTables(doc)
	if len(tables) != 2 {
		t.Fatalf("want 2 tables, got %d", len(tables))
	}
	if tables[0].Category != "Data Science" {
		t.Fatalf("want Data Science, got %q", tables[0].Category)
	}
	// the inactive heading never becomes a category
	if tables[1].Category != "Data Science" {
		t.Fatalf("want inactive heading skipped, got %q", tables[1].Category)
	}
	if len(tables[1].Rows) != 2 {
		t.Fatalf("in-flight table at EOF must be emitted with 2 rows, got %d", len(tables[1].Rows))
	}
}

func TestParseMarkdownEscapedPipe(t *testing.T) {
	doc := "| Company | Notes |\n|---|---|\n| Acme | a \\| b |\n"
	tables := New(Options{}).ParseTables(doc)
	if len(tables) != 1 || tables[0].Rows[0][1] != "a | b" {
		t.Fatalf("unexpected tables: %#v", tables)
	}
}

func TestParseMarkdownParenthesizedURL(t *testing.T) {
	doc := "| Company | Role | Apply |\n|---|---|---|\n| Acme | SWE | [Apply](https://acme.com/jobs/a_(b)) |\n"
	tables := New(Options{}).ParseTables(doc)
	if len(tables) != 1 || len(tables[0].Rows) != 1 {
		t.Fatalf("unexpected tables: %#v", tables)
	}
	cell := tables[0].Rows[0][2]
	if cell != "Apply[[LINK:https://acme.com/jobs/a_(b)]]" {
		t.Fatalf("unexpected link cell: %q", cell)
	}
	if links := ExtractLinks(cell); len(links) != 1 || links[0] != "https://acme.com/jobs/a_(b)" {
		t.Fatalf("unexpected links: %#v", links)
	}
}

func TestShortenCategory(t *testing.T) {
	p := New(Options{})
	cases := map[string]string{
		"Software Engineer New Grad 2025":         "Software Engineer New",
		"2025 Quant Positions":                    "Quant",
		"Product Management Jobs - 2026":          "Product Management",
		"Positions 2025":                          "Positions 2025",
		"Hardware Engineering Full-Time Roles":    "Hardware Engineering",
		"💻 Software Engineering Internship Roles": "💻 Software Engineering Internship",
		"🎓 Positions":                             "🎓 Positions",
		"":                                        "Other",
	}
	for in, want := range cases {
		if got := p.shortenCategory(in); got != want {
			t.Errorf("shortenCategory(%q): want %q, got %q", in, want, got)
		}
	}
}
