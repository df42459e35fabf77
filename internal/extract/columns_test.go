package extract

import (
	"testing"

	"jobhunt-readme/internal/domain"
)

func TestMapColumns(t *testing.T) {
	cases := []struct {
		name    string
		headers []string
		want    domain.ColumnMapping
	}{
		{
			name:    "simplify",
			headers: []string{"Company", "Role", "Location", "Application/Link", "Date Posted"},
			want:    domain.ColumnMapping{Company: 0, Role: 1, Location: 2, Link: 3, Date: 4, Notes: -1},
		},
		{
			name:    "aliases",
			headers: []string{"Employer", "Job Title", "City", "Apply", "Age", "Notes/Benefits"},
			want:    domain.ColumnMapping{Company: 0, Role: 1, Location: 2, Link: 3, Date: 4, Notes: 5},
		},
		{
			name:    "claimed header is not reassigned",
			headers: []string{"Position Title", "Posted"},
			want:    domain.ColumnMapping{Company: -1, Role: 0, Location: -1, Link: -1, Date: 1, Notes: -1},
		},
		{
			name:    "posting date is a date",
			headers: []string{"Company", "Role", "Location", "Posting Date", "Apply"},
			want:    domain.ColumnMapping{Company: 0, Role: 1, Location: 2, Link: 4, Date: 3, Notes: -1},
		},
		{
			name:    "not a job table",
			headers: []string{"Name", "Stars", "Language"},
			want:    domain.ColumnMapping{Company: -1, Role: -1, Location: -1, Link: -1, Date: -1, Notes: -1},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapColumns(tc.headers)
			if got != tc.want {
				t.Fatalf("want %+v, got %+v", tc.want, got)
			}
		})
	}
	if MapColumns([]string{"Name", "Stars"}).JobRelated() {
		t.Fatal("a table without company/role must not be job related")
	}
}
