package parse

import (
	"testing"

	"jobhunt-readme/internal/domain"
)

const simplifyStyle = `# Summer Internships

## 💻 Software Engineering Internship Roles

<table>
<thead>
<tr><th>Company</th><th>Role</th><th>Location</th><th>Application</th><th>Age</th></tr>
</thead>
<tbody>
<tr>
<td><strong><a href="https://stripe.com">Stripe</a></strong></td>
<td>Software Engineer Intern</td>
<td>SF</br>NYC</td>
<td><div align="center"><a href="https://stripe.com/jobs/listing/123"><img src="apply.png" alt="Apply"></a> <a href="https://simplify.jobs/p/abc"><img src="simplify.png" alt="Simplify"></a></div></td>
<td>2d</td>
</tr>
<tr><td>---</td><td>---</td><td></td><td></td><td></td></tr>
<tr><td>↳</td><td>Data Intern</td><td>Remote</td><td><a href="https://jobs.lever.co/stripe/9">Apply</a></td><td>5d</td></tr>
</tbody>
</table>

<h2>Inactive roles</h2>
<table><tr><td>Company</td><td>Role</td></tr><tr><td>Old Co</td><td>Gone</td></tr></table>
`

func TestParseHTMLTables(t *testing.T) {
	p := New(Options{})
	if f := DetectFormat(simplifyStyle); f != domain.FormatHTML {
		t.Fatalf("want html, got %s", f)
	}
	tables := p.ParseTables(simplifyStyle)
	if len(tables) != 2 {
		t.Fatalf("want 2 tables, got %d", len(tables))
	}

	tb := tables[0]
	if tb.Format != domain.FormatHTML {
		t.Fatalf("want html format tag, got %s", tb.Format)
	}
	if tb.Category != "💻 Software Engineering Internship" {
		t.Fatalf("unexpected category %q", tb.Category)
	}
	if len(tb.Headers) != 5 || tb.Headers[0] != "Company" || tb.Headers[4] != "Age" {
		t.Fatalf("unexpected headers %#v", tb.Headers)
	}
	if len(tb.Rows) != 2 {
		t.Fatalf("want 2 rows (filler dropped), got %d", len(tb.Rows))
	}
	if got := tb.Rows[0][0]; got != "Stripe[[LINK:https://stripe.com]]" {
		t.Fatalf("unexpected company cell %q", got)
	}
	if got := tb.Rows[0][2]; got != "SF NYC" {
		t.Fatalf("unexpected location cell %q", got)
	}
	links := ExtractLinks(tb.Rows[0][3])
	if len(links) != 2 || links[1] != "https://simplify.jobs/p/abc" {
		t.Fatalf("unexpected links %#v", links)
	}

	// no <th>: the first row is the header; inactive heading is skipped
	old := tables[1]
	if old.Headers[0] != "Company" || len(old.Rows) != 1 {
		t.Fatalf("unexpected second table %#v", old)
	}
	if old.Category != "💻 Software Engineering Internship" {
		t.Fatalf("inactive heading must not be a category, got %q", old.Category)
	}
}

func TestParseMixedPrefersHTML(t *testing.T) {
	doc := "## Roles A\n<table><tr><th>Company</th></tr><tr><td>X</td></tr></table>\n\n| Company | Role |\n|---|---|\n| Y | Z |\n"
	tables := New(Options{}).ParseTables(doc)
	if len(tables) != 1 || tables[0].Format != domain.FormatHTML {
		t.Fatalf("want the single html table, got %#v", tables)
	}

	// no parsable HTML table -> Markdown fallback
	doc = "<table></table>\n| Company | Role |\n|---|---|\n| Y | Z |\n"
	tables = New(Options{}).ParseTablesAs(doc, domain.FormatMixed)
	if len(tables) != 1 || tables[0].Format != domain.FormatMarkdown {
		t.Fatalf("want markdown fallback, got %#v", tables)
	}
}

func TestParseUnknown(t *testing.T) {
	if got := New(Options{}).ParseTables("nothing tabular here"); got != nil {
		t.Fatalf("want nil, got %#v", got)
	}
}
