// Package extract turns parsed tables into job postings.
package extract

import (
	"strings"

	"github.com/rs/zerolog/log"

	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/links"
	"jobhunt-readme/internal/parse"
	"jobhunt-readme/internal/scrape/util"
)

var DefaultDittoMarkers = []string{"↳", `"`, "〃", "''", "ditto"}

var DefaultFAANG = []string{
	"meta", "facebook", "apple", "amazon", "aws", "amazon web services", "netflix",
	"google", "alphabet", "google deepmind", "microsoft", "nvidia",
}

type Options struct {
	Aliases        Aliases
	DittoMarkers   []string
	FAANG          []string
	CountryRules   []util.CountryRule
	DefaultCountry string
	Links          *links.Classifier
}

// Extractor holds only read-only tables; ExtractJobs keeps its state local.
type Extractor struct {
	aliases        Aliases
	ditto          map[string]bool
	faang          map[string]bool
	countryRules   []util.CountryRule
	defaultCountry string
	links          links.Classifier
}

func New(opts Options) *Extractor {
	if len(opts.DittoMarkers) == 0 {
		opts.DittoMarkers = DefaultDittoMarkers
	}
	if len(opts.FAANG) == 0 {
		opts.FAANG = DefaultFAANG
	}
	if opts.DefaultCountry == "" {
		opts.DefaultCountry = "USA"
	}
	e := &Extractor{
		aliases:        opts.Aliases.withDefaults(),
		ditto:          make(map[string]bool, len(opts.DittoMarkers)),
		faang:          make(map[string]bool, len(opts.FAANG)),
		countryRules:   opts.CountryRules,
		defaultCountry: opts.DefaultCountry,
		links:          links.Default(),
	}
	if opts.Links != nil {
		e.links = *opts.Links
	}
	for _, d := range opts.DittoMarkers {
		e.ditto[strings.ToLower(strings.TrimSpace(d))] = true
	}
	for _, f := range opts.FAANG {
		e.faang[strings.ToLower(strings.TrimSpace(f))] = true
	}
	return e
}

// ExtractJobs maps every job table and returns the postings in document
// order. The first posting for an identity key wins.
func (e *Extractor) ExtractJobs(tables []domain.ParsedTable) []domain.JobPosting {
	var out []domain.JobPosting
	seen := make(map[string]bool)

	for ti, t := range tables {
		m := e.aliases.Map(t.Headers)
		if !m.JobRelated() {
			log.Debug().Str("component", "extract").Int("table", ti).
				Strs("headers", t.Headers).Msg("skipped: no company or role column")
			continue
		}

		var prevCompany string
		var prevFAANG bool
		dropped := 0
		for _, row := range t.Rows {
			j, ok := e.jobFromRow(t, m, row, &prevCompany, &prevFAANG)
			if !ok {
				dropped++
				continue
			}
			key := util.CanonicalizeURL(j.IdentityKey())
			if seen[key] {
				dropped++
				continue
			}
			seen[key] = true
			out = append(out, j)
		}
		if dropped > 0 {
			log.Debug().Str("component", "extract").Int("table", ti).Int("dropped", dropped).
				Msg("rows without a usable link or duplicated")
		}
	}
	return out
}

func (e *Extractor) jobFromRow(t domain.ParsedTable, m domain.ColumnMapping, row []string, prevCompany *string, prevFAANG *bool) (domain.JobPosting, bool) {
	companyCell := cell(row, m.Company)
	company := util.StripEmphasis(parse.StripLinks(companyCell))

	var isFAANG bool
	if e.isDitto(company) {
		company, isFAANG = *prevCompany, *prevFAANG
	} else {
		isFAANG = e.faang[strings.ToLower(company)]
		*prevCompany, *prevFAANG = company, isFAANG
	}

	role := util.StripEmphasis(parse.StripLinks(cell(row, m.Role)))
	if company == "" && role == "" {
		return domain.JobPosting{}, false
	}

	j := domain.JobPosting{
		Company:      company,
		Role:         role,
		Location:     util.NormalizeLocation(parse.StripLinks(cell(row, m.Location))),
		Category:     t.Category,
		DatePosted:   parse.StripLinks(cell(row, m.Date)),
		Notes:        parse.StripLinks(cell(row, m.Notes)),
		IsFAANG:      isFAANG,
		IsInternship: strings.Contains(strings.ToLower(role), "intern"),
	}
	j.Country = util.InferCountry(j.Location, e.countryRules, e.defaultCountry)

	for _, u := range e.applicationLinks(row, m) {
		c := e.links.Classify(u)
		switch {
		case c.IsAggregator() && j.AggregatorLink == "":
			j.AggregatorLink, j.AggregatorName = u, c.Name
		case !c.IsAggregator() && j.CompanyLink == "":
			j.CompanyLink = u
		}
	}
	if j.IdentityKey() == "" {
		return domain.JobPosting{}, false
	}

	// A hyperlinked company name is its website, never an application link.
	for _, u := range parse.ExtractLinks(companyCell) {
		if util.IsHTTPURL(u) && !e.links.Classify(u).IsAggregator() && e.links.IsCompanyHomepage(u) {
			j.CompanyWebsite = u
			break
		}
	}
	return j, true
}

// applicationLinks returns the usable URLs of the first link-bearing cell
// group that has any: the link column, then the role cell, then every other
// non-company cell.
func (e *Extractor) applicationLinks(row []string, m domain.ColumnMapping) []string {
	var rest []int
	for i := range row {
		if i != m.Link && i != m.Role && i != m.Company {
			rest = append(rest, i)
		}
	}
	for _, group := range [][]int{{m.Link}, {m.Role}, rest} {
		var out []string
		for _, i := range group {
			for _, u := range parse.ExtractLinks(cell(row, i)) {
				if util.IsHTTPURL(u) {
					out = append(out, u)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func (e *Extractor) isDitto(company string) bool {
	c := strings.ToLower(strings.TrimSpace(company))
	if c == "" || e.ditto[c] {
		return true
	}
	return strings.HasPrefix(c, "↳")
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
