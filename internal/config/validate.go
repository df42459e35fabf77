package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg plus findings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}
	checkRules := func(name string, rules []Rule) []Rule {
		var kept []Rule
		for i, r := range rules {
			r.Tag = strings.TrimSpace(r.Tag)
			r.Any = trimList(r.Any)
			if r.Tag == "" {
				res.addErr("%s[%d].tag is required", name, i)
				continue
			}
			if len(r.Any) == 0 {
				res.addErr("%s[%d].any must have at least 1 term", name, i)
				continue
			}
			kept = append(kept, r)
		}
		return kept
	}

	// Normalize heuristic tables
	out.Parser.FillerTokens = trimList(out.Parser.FillerTokens)
	a := &out.Extract.Aliases
	a.Company, a.Role, a.Location = trimList(a.Company), trimList(a.Role), trimList(a.Location)
	a.Link, a.Date, a.Notes = trimList(a.Link), trimList(a.Date), trimList(a.Notes)
	out.Extract.DittoMarkers = trimList(out.Extract.DittoMarkers)
	out.Extract.FAANG = trimList(out.Extract.FAANG)
	out.Extract.CountryRules = checkRules("extract.country_rules", out.Extract.CountryRules)
	out.Links.HomepagePaths = trimList(out.Links.HomepagePaths)
	out.Links.JobPathSegments = trimList(out.Links.JobPathSegments)
	out.Links.JobQueryParams = trimList(out.Links.JobQueryParams)
	out.Harmonize.CategoryRules = checkRules("harmonize.category_rules", out.Harmonize.CategoryRules)
	out.Harmonize.GenericCategories = trimList(out.Harmonize.GenericCategories)
	out.Harmonize.GenericPatterns = trimList(out.Harmonize.GenericPatterns)
	out.Harmonize.Seasons = trimList(out.Harmonize.Seasons)

	var aggs []Aggregator
	for i, ag := range out.Links.Aggregators {
		ag.Domain = strings.ToLower(strings.TrimSpace(ag.Domain))
		ag.Name = strings.TrimSpace(ag.Name)
		if ag.Domain == "" || ag.Name == "" {
			res.addErr("links.aggregators[%d] needs both domain and name", i)
			continue
		}
		aggs = append(aggs, ag)
	}
	out.Links.Aggregators = aggs

	// ---- Sources ----

	seenURL := map[string]bool{}
	var sources []Source
	for i, s := range out.Sources {
		s.Name = strings.TrimSpace(s.Name)
		s.URL = strings.TrimSpace(s.URL)
		u, err := url.Parse(s.URL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			res.addErr("sources[%d].url must be an absolute http(s) URL: %q", i, s.URL)
			continue
		}
		if s.Name == "" {
			s.Name = strings.Trim(u.Path, "/")
			if s.Name == "" {
				s.Name = u.Host
			}
		}
		key := strings.ToLower(s.URL)
		if seenURL[key] {
			res.addWarn("duplicate source url %q ignored", s.URL)
			continue
		}
		seenURL[key] = true
		sources = append(sources, s)
	}
	out.Sources = sources
	enabled := 0
	for _, s := range out.Sources {
		if !s.Disabled {
			enabled++
		}
	}
	if enabled == 0 {
		res.addWarn("no enabled sources; sync will do nothing.")
	}

	// ---- Fetch ----

	if out.Fetch.TimeoutSeconds < 0 {
		res.addErr("fetch.timeout_seconds must be >= 0")
	} else if out.Fetch.TimeoutSeconds == 0 {
		out.Fetch.TimeoutSeconds = 20
	}
	if out.Fetch.Workers < 0 {
		res.addErr("fetch.workers must be >= 0")
	} else if out.Fetch.Workers == 0 {
		out.Fetch.Workers = 4
	}
	if out.Fetch.RequestsPerSecond < 0 {
		res.addErr("fetch.requests_per_second must be >= 0")
	} else if out.Fetch.RequestsPerSecond > 10 {
		res.addWarn("fetch.requests_per_second is very high (%.1f) and may cause rate limits.", out.Fetch.RequestsPerSecond)
	}
	if out.Fetch.MaxBytes < 0 {
		res.addErr("fetch.max_bytes must be >= 0")
	}

	// ---- App / parser ----

	if strings.TrimSpace(out.App.DBFile) == "" {
		out.App.DBFile = "jobs.db"
	}
	if out.App.RetentionDays < 0 {
		res.addErr("app.retention_days must be >= 0")
	}
	if out.Parser.MaxCategoryWords < 0 {
		res.addErr("parser.max_category_words must be >= 0")
	}

	// ---- Harmonize / classifier ----

	if out.Harmonize.MinConfidence < 0 || out.Harmonize.MinConfidence > 1 {
		res.addErr("harmonize.min_confidence must be within 0..1")
	}
	if out.Harmonize.TimeoutSeconds < 0 {
		res.addErr("harmonize.timeout_seconds must be >= 0")
	}
	if out.Classifier.Enabled {
		if strings.TrimSpace(out.Classifier.Model) == "" {
			res.addErr("classifier.model is required when classifier.enabled=true")
		}
		if strings.TrimSpace(out.Classifier.APIKeyEnv) == "" {
			res.addWarn("classifier.api_key_env is empty; requests will be sent without a key.")
		} else if out.APIKey() == "" {
			res.addWarn("classifier enabled but $%s is not set; keyword inference will be used.", out.Classifier.APIKeyEnv)
		}
	}

	return out, res
}
