package pipeline

import (
	"time"

	"jobhunt-readme/internal/config"
	"jobhunt-readme/internal/extract"
	"jobhunt-readme/internal/harmonize"
	"jobhunt-readme/internal/links"
	"jobhunt-readme/internal/parse"
	"jobhunt-readme/internal/scrape/util"
	"jobhunt-readme/internal/source"
)

// Config lists are passed through as-is; each package substitutes its
// own defaults for empty ones.

func LinksTable(cfg config.Config) links.Table {
	t := links.Table{
		HomepagePaths:   cfg.Links.HomepagePaths,
		JobPathSegments: cfg.Links.JobPathSegments,
		JobQueryParams:  cfg.Links.JobQueryParams,
	}
	for _, a := range cfg.Links.Aggregators {
		t.Aggregators = append(t.Aggregators, links.Aggregator{Domain: a.Domain, Name: a.Name})
	}
	return t
}

func ParserOptions(cfg config.Config) parse.Options {
	return parse.Options{
		FillerTokens:   cfg.Parser.FillerTokens,
		KeepYears:      cfg.Parser.KeepYears,
		InactiveMarker: cfg.Parser.InactiveMarker,
		MaxWords:       cfg.Parser.MaxCategoryWords,
	}
}

func ExtractOptions(cfg config.Config, lc *links.Classifier) extract.Options {
	a := cfg.Extract.Aliases
	opts := extract.Options{
		Aliases: extract.Aliases{
			Company:  a.Company,
			Role:     a.Role,
			Location: a.Location,
			Link:     a.Link,
			Date:     a.Date,
			Notes:    a.Notes,
		},
		DittoMarkers:   cfg.Extract.DittoMarkers,
		FAANG:          cfg.Extract.FAANG,
		DefaultCountry: cfg.Extract.DefaultCountry,
		Links:          lc,
	}
	for _, r := range cfg.Extract.CountryRules {
		opts.CountryRules = append(opts.CountryRules, util.CountryRule{Country: r.Tag, Any: r.Any})
	}
	return opts
}

func HarmonizeOptions(cfg config.Config, lc *links.Classifier, cc harmonize.ContentClassifier) harmonize.Options {
	opts := harmonize.Options{
		Classifier:        cc,
		Timeout:           time.Duration(cfg.Harmonize.TimeoutSeconds) * time.Second,
		MinConfidence:     cfg.Harmonize.MinConfidence,
		Links:             lc,
		GenericCategories: cfg.Harmonize.GenericCategories,
		GenericPatterns:   cfg.Harmonize.GenericPatterns,
		Seasons:           cfg.Harmonize.Seasons,
	}
	for _, r := range cfg.Harmonize.CategoryRules {
		opts.CategoryRules = append(opts.CategoryRules, harmonize.CategoryRule{Category: r.Tag, Any: r.Any})
	}
	return opts
}

func FetchOptions(cfg config.Config) source.Options {
	return source.Options{
		Timeout:   time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		UserAgent: cfg.Fetch.UserAgent,
		MaxBytes:  cfg.Fetch.MaxBytes,
		Limiter:   util.NewHostLimiter(cfg.Fetch.RequestsPerSecond, cfg.Fetch.Burst),
	}
}

func Sources(cfg config.Config) []source.Source {
	var out []source.Source
	for _, s := range cfg.Sources {
		if s.Disabled {
			continue
		}
		out = append(out, source.Source{Name: s.Name, URL: s.URL, Title: s.Title, Description: s.Description})
	}
	return out
}
