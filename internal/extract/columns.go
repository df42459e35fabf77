package extract

import (
	"strings"

	"jobhunt-readme/internal/domain"
)

// Aliases are the lowercase header fragments that identify each field.
type Aliases struct {
	Company  []string
	Role     []string
	Location []string
	Link     []string
	Date     []string
	Notes    []string
}

var DefaultAliases = Aliases{
	Company:  []string{"company", "employer", "organization", "organisation"},
	Role:     []string{"role", "position", "title", "job"},
	Location: []string{"location", "city", "office", "where"},
	Link:     []string{"apply", "link", "application", "url"},
	Date:     []string{"date", "posted", "added", "age"},
	Notes:    []string{"notes", "sponsorship", "notes/benefits", "visa", "comments"},
}

func (a Aliases) withDefaults() Aliases {
	pick := func(v, def []string) []string {
		if len(v) == 0 {
			return def
		}
		return v
	}
	return Aliases{
		Company:  pick(a.Company, DefaultAliases.Company),
		Role:     pick(a.Role, DefaultAliases.Role),
		Location: pick(a.Location, DefaultAliases.Location),
		Link:     pick(a.Link, DefaultAliases.Link),
		Date:     pick(a.Date, DefaultAliases.Date),
		Notes:    pick(a.Notes, DefaultAliases.Notes),
	}
}

// MapColumns maps headers with the default aliases.
func MapColumns(headers []string) domain.ColumnMapping {
	return DefaultAliases.Map(headers)
}

// Map assigns each field the first unclaimed header containing one of its
// aliases. Fields are resolved in order company, role, location, link,
// date, notes, so an earlier field keeps a header both could match.
func (a Aliases) Map(headers []string) domain.ColumnMapping {
	a = a.withDefaults()
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}
	claimed := make([]bool, len(headers))

	find := func(aliases []string) int {
		for i, h := range lower {
			if claimed[i] || h == "" {
				continue
			}
			for _, al := range aliases {
				if strings.Contains(h, strings.ToLower(al)) {
					claimed[i] = true
					return i
				}
			}
		}
		return -1
	}

	m := domain.ColumnMapping{}
	m.Company = find(a.Company)
	m.Role = find(a.Role)
	m.Location = find(a.Location)
	m.Link = find(a.Link)
	m.Date = find(a.Date)
	m.Notes = find(a.Notes)
	return m
}
