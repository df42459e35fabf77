package domain

import "strings"

// JobPosting is one listing extracted from a README table.
type JobPosting struct {
	Company        string `json:"company"`
	Role           string `json:"role"`
	Location       string `json:"location"`
	Country        string `json:"country"`
	Category       string `json:"category"`
	CompanyWebsite string `json:"companyWebsite,omitempty"`
	CompanyLink    string `json:"companyLink,omitempty"`    // application link on the employer's own domain
	AggregatorLink string `json:"aggregatorLink,omitempty"` // application link through a third-party board
	AggregatorName string `json:"aggregatorName,omitempty"`
	DatePosted     string `json:"datePosted,omitempty"` // YYYY-MM-DD, or the raw text when it could not be parsed
	Notes          string `json:"notes,omitempty"`
	IsFAANG        bool   `json:"isFAANG"`
	IsInternship   bool   `json:"isInternship"`
}

// IdentityKey is the dedup/upsert key: the company link if present, else the
// aggregator link. Empty means the posting cannot be tracked.
func (j JobPosting) IdentityKey() string {
	if k := strings.TrimSpace(j.CompanyLink); k != "" {
		return k
	}
	return strings.TrimSpace(j.AggregatorLink)
}
