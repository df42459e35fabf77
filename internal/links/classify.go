package links

import (
	"net/url"
	"strings"

	"jobhunt-readme/internal/domain"
)

// Table is the static data a Classifier works from.
type Table struct {
	Aggregators     []Aggregator
	HomepagePaths   []string
	JobPathSegments []string
	JobQueryParams  []string
}

// Classifier is stateless; its tables are read-only after New.
type Classifier struct {
	aggregators []Aggregator
	homepage    map[string]bool
	jobSegments []string
	jobParams   []string
}

// New builds a Classifier, falling back to the defaults for empty lists.
func New(t Table) Classifier {
	if len(t.Aggregators) == 0 {
		t.Aggregators = DefaultAggregators
	}
	if len(t.HomepagePaths) == 0 {
		t.HomepagePaths = DefaultHomepagePaths
	}
	if len(t.JobPathSegments) == 0 {
		t.JobPathSegments = DefaultJobPathSegments
	}
	if len(t.JobQueryParams) == 0 {
		t.JobQueryParams = DefaultJobQueryParams
	}

	c := Classifier{homepage: make(map[string]bool, len(t.HomepagePaths))}
	for _, a := range t.Aggregators {
		d := strings.ToLower(strings.TrimSpace(a.Domain))
		if d == "" {
			continue
		}
		c.aggregators = append(c.aggregators, Aggregator{Domain: d, Name: a.Name})
	}
	for _, p := range t.HomepagePaths {
		c.homepage[strings.TrimRight(strings.ToLower(p), "/")] = true
	}
	for _, s := range t.JobPathSegments {
		c.jobSegments = append(c.jobSegments, strings.ToLower(s))
	}
	for _, q := range t.JobQueryParams {
		c.jobParams = append(c.jobParams, strings.ToLower(q))
	}
	return c
}

var std = New(Table{})

// Default returns the Classifier built from the default tables.
func Default() Classifier { return std }

func Classify(raw string) domain.LinkClassification { return std.Classify(raw) }
func IsCompanyHomepage(raw string) bool             { return std.IsCompanyHomepage(raw) }

// Classify returns Aggregator(name) for the first known domain contained in
// the URL, else Company.
func (c Classifier) Classify(raw string) domain.LinkClassification {
	lu := strings.ToLower(strings.TrimSpace(raw))
	if lu == "" {
		return domain.LinkClassification{Kind: domain.LinkCompany}
	}
	for _, a := range c.aggregators {
		if strings.Contains(lu, a.Domain) {
			return domain.LinkClassification{Kind: domain.LinkAggregator, Name: a.Name}
		}
	}
	return domain.LinkClassification{Kind: domain.LinkCompany}
}

// IsCompanyHomepage reports whether raw points at a company's site rather
// than a posting: root or allow-listed path, at most one path segment, and
// no job-looking path segment or query parameter.
func (c Classifier) IsCompanyHomepage(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}

	path := strings.ToLower(u.Path)
	padded := path
	if !strings.HasSuffix(padded, "/") {
		padded += "/"
	}
	for _, seg := range c.jobSegments {
		if strings.Contains(padded, seg) {
			return false
		}
	}
	query := strings.ToLower(u.RawQuery)
	for _, p := range c.jobParams {
		if strings.Contains(query, p) {
			return false
		}
	}

	segments := 0
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments++
		}
	}
	if segments > 1 {
		return false
	}

	trimmed := strings.TrimRight(path, "/")
	return trimmed == "" || c.homepage[trimmed]
}

// ExtractCompanyHomepage rebuilds scheme://host from raw.
func ExtractCompanyHomepage(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host), true
}
