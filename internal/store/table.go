package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobhunt-readme/internal/domain"
)

// StoredPosting is a persisted posting plus bookkeeping columns.
type StoredPosting struct {
	domain.JobPosting
	ID          int64  `json:"id"`
	IdentityKey string `json:"identityKey"`
	SourceURL   string `json:"sourceUrl"`
	FirstSeen   string `json:"firstSeen"`
	LastSeen    string `json:"lastSeen"`
}

type ListOpts struct {
	Category  string // exact match when non-empty
	SourceURL string
	Limit     int
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS job_postings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  identity_key TEXT NOT NULL,
  company TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  company_website TEXT NOT NULL DEFAULT '',
  company_link TEXT NOT NULL DEFAULT '',
  aggregator_link TEXT NOT NULL DEFAULT '',
  aggregator_name TEXT NOT NULL DEFAULT '',
  date_posted TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  is_faang INTEGER NOT NULL DEFAULT 0,
  is_internship INTEGER NOT NULL DEFAULT 0,
  source_url TEXT NOT NULL DEFAULT '',
  first_seen TEXT NOT NULL,
  last_seen TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS company_websites (
  company TEXT PRIMARY KEY,
  website TEXT NOT NULL,
  fetched_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_job_postings_identity
ON job_postings(identity_key);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_job_postings_category
ON job_postings(category);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// ListPostings returns postings newest-first by last_seen.
func ListPostings(ctx context.Context, db *sql.DB, opts ListOpts) ([]StoredPosting, error) {
	if opts.Limit <= 0 || opts.Limit > 5000 {
		opts.Limit = 500
	}

	rows, err := db.QueryContext(ctx, `
SELECT id, identity_key, company, role, location, country, category,
       company_website, company_link, aggregator_link, aggregator_name,
       date_posted, notes, is_faang, is_internship, source_url, first_seen, last_seen
FROM job_postings
WHERE (? = '' OR category = ?)
  AND (? = '' OR source_url = ?)
ORDER BY last_seen DESC, id DESC
LIMIT ?;
`, opts.Category, opts.Category, opts.SourceURL, opts.SourceURL, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	defer rows.Close()

	var out []StoredPosting
	for rows.Next() {
		var p StoredPosting
		if err := rows.Scan(
			&p.ID,
			&p.IdentityKey,
			&p.Company,
			&p.Role,
			&p.Location,
			&p.Country,
			&p.Category,
			&p.CompanyWebsite,
			&p.CompanyLink,
			&p.AggregatorLink,
			&p.AggregatorName,
			&p.DatePosted,
			&p.Notes,
			&p.IsFAANG,
			&p.IsInternship,
			&p.SourceURL,
			&p.FirstSeen,
			&p.LastSeen,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CleanupStale removes postings not seen since before cutoff.
func CleanupStale(ctx context.Context, db *sql.DB, cutoff time.Time) (deleted int64, err error) {
	res, err := db.ExecContext(ctx, `
DELETE FROM job_postings
WHERE last_seen < ?;
`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("cleanup stale postings: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
