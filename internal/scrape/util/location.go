package util

import "strings"

// CountryRule maps location keywords to a country name.
type CountryRule struct {
	Country string
	Any     []string
}

// DefaultCountryRules cover the non-US locations that show up most in
// new-grad and internship lists. Keywords are matched against the
// lowercased location padded with spaces, so " uk " only hits the word.
var DefaultCountryRules = []CountryRule{
	{Country: "Canada", Any: []string{"canada", "toronto", "vancouver", "montreal", "ottawa", "waterloo", ", on ", ", bc ", ", qc "}},
	{Country: "UK", Any: []string{" uk ", "united kingdom", "london", "england", "scotland", "cambridge, uk"}},
	{Country: "India", Any: []string{"india", "bangalore", "bengaluru", "hyderabad", "pune", "gurgaon", "noida"}},
	{Country: "Germany", Any: []string{"germany", "berlin", "munich"}},
	{Country: "Ireland", Any: []string{"ireland", "dublin"}},
	{Country: "Singapore", Any: []string{"singapore"}},
}

// InferCountry returns the first rule whose keyword appears in loc, or def.
func InferCountry(loc string, rules []CountryRule, def string) string {
	if len(rules) == 0 {
		rules = DefaultCountryRules
	}
	l := " " + strings.ToLower(CleanText(loc)) + " "
	for _, r := range rules {
		for _, kw := range r.Any {
			kw = strings.ToLower(kw)
			if kw != "" && strings.Contains(l, kw) {
				return r.Country
			}
		}
	}
	return def
}
