package harmonize

import (
	"regexp"
	"strings"

	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/links"
)

const fallbackCategory = "Other"

// CategoryRule assigns Category to pages whose title mentions any keyword.
type CategoryRule struct {
	Category string
	Any      []string
}

var DefaultCategoryRules = []CategoryRule{
	{Category: "Software Engineering", Any: []string{"software", "swe", "developer", "backend", "frontend", "full stack", "fullstack", "web"}},
	{Category: "Data Science", Any: []string{"data science", "data scientist", "machine learning", "ml", "ai", "artificial intelligence"}},
	{Category: "Data Engineering", Any: []string{"data engineering", "data engineer", "analytics engineer", "etl"}},
	{Category: "Quantitative Finance", Any: []string{"quant", "quantitative", "trading", "trader"}},
	{Category: "Product Management", Any: []string{"product management", "product manager", "pm", "apm"}},
	{Category: "Hardware Engineering", Any: []string{"hardware", "embedded", "firmware", "asic", "fpga"}},
	{Category: "Cybersecurity", Any: []string{"security", "cybersecurity", "infosec"}},
	{Category: "DevOps", Any: []string{"devops", "sre", "site reliability", "infrastructure", "cloud"}},
	{Category: "Design", Any: []string{"design", "designer", "ux", "ui"}},
}

type compiledRule struct {
	category string
	words    []*regexp.Regexp
}

func compileRules(rules []CategoryRule) []compiledRule {
	if len(rules) == 0 {
		rules = DefaultCategoryRules
	}
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		cr := compiledRule{category: r.Category}
		for _, kw := range r.Any {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			cr.words = append(cr.words, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
		}
		out = append(out, cr)
	}
	return out
}

// bestRule returns the rule with the most keyword hits in text; ties go to
// the earlier rule.
func bestRule(rules []compiledRule, text string) (string, int) {
	best, hits := "", 0
	for _, r := range rules {
		n := 0
		for _, re := range r.words {
			if re.MatchString(text) {
				n++
			}
		}
		if n > hits {
			best, hits = r.category, n
		}
	}
	return best, hits
}

// inferFromKeywords is the deterministic page classifier. The title decides;
// the description is only consulted when the title has no hit, at a lower
// confidence.
func inferFromKeywords(rules []compiledRule, lc links.Classifier, page domain.Page) domain.ContentMetadata {
	meta := domain.ContentMetadata{Category: fallbackCategory, Confidence: 0.2}

	if cat, hits := bestRule(rules, page.Title); hits > 0 {
		meta.Category = cat
		meta.Confidence = min(0.5+0.15*float64(hits), 0.9)
	} else if cat, hits := bestRule(rules, page.Description); hits > 0 {
		meta.Category = cat
		meta.Confidence = 0.4
	}

	if c := lc.Classify(page.URL); strings.TrimSpace(page.URL) != "" && c.IsAggregator() {
		meta.IsAggregatorSource = true
		meta.AggregatorName = c.Name
	}
	return meta
}
