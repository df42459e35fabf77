package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/scrape/util"
)

var ErrNoIdentity = errors.New("store: posting has no identity key")

// UpsertPosting inserts j keyed by its canonical identity, or refreshes
// last_seen and any fields that were empty on the stored row. added
// reports whether a new row was created.
func UpsertPosting(ctx context.Context, db *sql.DB, j domain.JobPosting, sourceURL string, now time.Time) (added bool, err error) {
	key := util.CanonicalizeURL(j.IdentityKey())
	if key == "" {
		return false, ErrNoIdentity
	}
	ts := now.UTC().Format(time.RFC3339)

	res, err := db.ExecContext(ctx, `
INSERT INTO job_postings (
  identity_key, company, role, location, country, category,
  company_website, company_link, aggregator_link, aggregator_name,
  date_posted, notes, is_faang, is_internship, source_url, first_seen, last_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(identity_key) DO NOTHING;`,
		key, j.Company, j.Role, j.Location, j.Country, j.Category,
		j.CompanyWebsite, j.CompanyLink, j.AggregatorLink, j.AggregatorName,
		j.DatePosted, j.Notes, boolInt(j.IsFAANG), boolInt(j.IsInternship),
		strings.TrimSpace(sourceURL), ts, ts,
	)
	if err != nil {
		return false, fmt.Errorf("insert posting: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return true, nil
	}

	if _, err := db.ExecContext(ctx, `
UPDATE job_postings SET
  last_seen = ?,
  company_website = CASE WHEN company_website = '' THEN ? ELSE company_website END,
  aggregator_name = CASE WHEN aggregator_name = '' THEN ? ELSE aggregator_name END,
  date_posted = CASE WHEN date_posted = '' THEN ? ELSE date_posted END
WHERE identity_key = ?;`,
		ts, j.CompanyWebsite, j.AggregatorName, j.DatePosted, key,
	); err != nil {
		return false, fmt.Errorf("touch posting: %w", err)
	}
	return false, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
