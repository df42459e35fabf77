package links

import (
	"testing"

	"jobhunt-readme/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		url  string
		kind domain.LinkKind
		name string
	}{
		{"https://jobs.lever.co/acme/123", domain.LinkAggregator, "Lever"},
		{"https://acme.com/careers/123", domain.LinkCompany, ""},
		{"https://boards.greenhouse.io/acme/jobs/42", domain.LinkAggregator, "Greenhouse"},
		{"https://ACME.wd5.MyWorkdayJobs.com/en-US/External/job/1", domain.LinkAggregator, "Workday"},
		{"https://www.linkedin.com/jobs/view/999", domain.LinkAggregator, "LinkedIn"},
		{"https://simplify.jobs/p/abc", domain.LinkAggregator, "Simplify"},
		{"", domain.LinkCompany, ""},
	}
	for _, tc := range cases {
		t.Run(tc.url, func(t *testing.T) {
			got := Classify(tc.url)
			if got.Kind != tc.kind || got.Name != tc.name {
				t.Fatalf("want %v/%q, got %v/%q", tc.kind, tc.name, got.Kind, got.Name)
			}
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	c := New(Table{Aggregators: []Aggregator{
		{Domain: "example.com", Name: "First"},
		{Domain: "jobs.example.com", Name: "Second"},
	}})
	if got := c.Classify("https://jobs.example.com/1"); got.Name != "First" {
		t.Fatalf("want First, got %q", got.Name)
	}
}

func TestIsCompanyHomepage(t *testing.T) {
	cases := map[string]bool{
		"https://acme.com/":              true,
		"https://acme.com":               true,
		"https://acme.com/about":         true,
		"https://acme.com/about/":        true,
		"https://acme.com/careers/123":   false,
		"https://acme.com/careers":       false,
		"https://acme.com/?gh_jid=4412":  false,
		"https://acme.com/team/platform": false,
		"https://acme.com/blog":          false,
		"not a url":                      false,
		"https://acme.com/company?job=7": false,
		"https://acme.com/en-us/":        true,
	}
	for in, want := range cases {
		if got := IsCompanyHomepage(in); got != want {
			t.Errorf("IsCompanyHomepage(%q): want %v, got %v", in, want, got)
		}
	}
}

func TestExtractCompanyHomepage(t *testing.T) {
	got, ok := ExtractCompanyHomepage("https://Careers.Acme.com/jobs/1?x=2")
	if !ok || got != "https://careers.acme.com" {
		t.Fatalf("want https://careers.acme.com, got %q (ok=%v)", got, ok)
	}
	if _, ok := ExtractCompanyHomepage("/relative/path"); ok {
		t.Fatal("relative URL must not produce a homepage")
	}
}
