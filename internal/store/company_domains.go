package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// GetCompanyWebsite returns the cached website or "" if missing.
func GetCompanyWebsite(ctx context.Context, db *sql.DB, company string) (string, error) {
	company = normalizeCompanyKey(company)
	if company == "" {
		return "", nil
	}

	var website string
	err := db.QueryRowContext(ctx,
		`SELECT website FROM company_websites WHERE company = ? LIMIT 1;`,
		company,
	).Scan(&website)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(website), nil
}

func UpsertCompanyWebsite(ctx context.Context, db *sql.DB, company, website string) error {
	company = normalizeCompanyKey(company)
	website = strings.ToLower(strings.TrimRight(strings.TrimSpace(website), "/"))

	if company == "" || website == "" {
		return nil
	}

	_, err := db.ExecContext(ctx, `
INSERT INTO company_websites(company, website, fetched_at)
VALUES(?,?,?)
ON CONFLICT(company) DO UPDATE SET
  website = excluded.website,
  fetched_at = excluded.fetched_at;
`, company, website, time.Now().UTC().Format(time.RFC3339))

	return err
}

func normalizeCompanyKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
