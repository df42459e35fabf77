package parse

import (
	"testing"

	"jobhunt-readme/internal/domain"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.Format
	}{
		{"html", "<TABLE class=x><tr><td>a</td></tr></table>", domain.FormatHTML},
		{"markdown", "| a | b |\n|---|:---:|\n| 1 | 2 |\n", domain.FormatMarkdown},
		{"mixed", "<table><tr><td>a</td></tr></table>\n| a | b |\n| --- | --- |\n", domain.FormatMixed},
		{"unknown", "just some prose | with one pipe", domain.FormatUnknown},
		{"separator only", "|---|---|\n", domain.FormatUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectFormat(tc.text)
			if got != tc.want {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
			if again := DetectFormat(tc.text); again != got {
				t.Fatalf("not idempotent: %s then %s", got, again)
			}
		})
	}
}

func TestLinkMarkers(t *testing.T) {
	cell := "Apply[[LINK:https://a.com/1]] or [[LINK:https://jobs.lever.co/x]]"
	links := ExtractLinks(cell)
	if len(links) != 2 || links[0] != "https://a.com/1" || links[1] != "https://jobs.lever.co/x" {
		t.Fatalf("unexpected links: %#v", links)
	}
	if got := StripLinks(cell); got != "Apply or" {
		t.Fatalf("want %q, got %q", "Apply or", got)
	}
	if got := ExtractLinks("plain"); got != nil {
		t.Fatalf("want no links, got %#v", got)
	}
}

func TestCleanCell(t *testing.T) {
	cases := map[string]string{
		"[Apply](https://acme.com/careers/42)":                                     "Apply[[LINK:https://acme.com/careers/42]]",
		"[![Apply](https://i.imgur.com/btn.png)](https://x.io/j?a=1&amp;b=2)":      "Apply[[LINK:https://x.io/j?a=1&b=2]]",
		`<a href="https://jobs.lever.co/acme/1"><img src="b.png" alt="Apply"></a>`: "[[LINK:https://jobs.lever.co/acme/1]]",
		"[Wiki](https://en.wikipedia.org/wiki/Go_(language)) (remote)":             "Wiki[[LINK:https://en.wikipedia.org/wiki/Go_(language)]] (remote)",
		"NYC<br>SF</br>Remote":             "NYC SF Remote",
		"AT&amp;T &nbsp; &quot;Labs&quot;": `AT&T "Labs"`,
		"  <b>Acme</b>   Corp ":            "Acme Corp",
	}
	for in, want := range cases {
		if got := cleanCell(in); got != want {
			t.Errorf("cleanCell(%q): want %q, got %q", in, want, got)
		}
	}
}
