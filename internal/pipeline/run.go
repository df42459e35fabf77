package pipeline

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"jobhunt-readme/internal/config"
	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/source"
	"jobhunt-readme/internal/store"
)

type Fetcher interface {
	Fetch(ctx context.Context, src source.Source) (domain.Document, error)
}

// Stats summarises one source in a run.
type Stats struct {
	Source     string   `json:"source"`
	Tables     int      `json:"tables"`
	Extracted  int      `json:"extracted"`
	Harmonized int      `json:"harmonized"`
	Added      int      `json:"added"`
	Category   string   `json:"category"`
	Err        string   `json:"error,omitempty"`
	Advisories []string `json:"advisories,omitempty"`
}

// RunOnce fetches and processes every enabled source concurrently, then
// persists the results sequentially. Per-source failures are recorded in
// Stats and never abort the run. onNew may be nil.
func RunOnce(ctx context.Context, db *sql.DB, cfg config.Config, f Fetcher, p *Processor, onNew func(domain.JobPosting)) ([]Stats, error) {
	sources := Sources(cfg)
	outputs := make([]*Output, len(sources))
	stats := make([]Stats, len(sources))

	timeout := time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second + time.Duration(cfg.Harmonize.TimeoutSeconds)*time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	g, gctx := errgroup.WithContext(ctx)
	workers := cfg.Fetch.Workers
	if workers <= 0 {
		workers = 4
	}
	g.SetLimit(workers)

	for i, src := range sources {
		stats[i].Source = src.Name
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(gctx, timeout)
			defer cancel()

			log.Debug().Str("component", "pipeline").Str("source", src.Name).Msg("running")
			doc, err := f.Fetch(sctx, src)
			if err != nil {
				log.Warn().Str("component", "pipeline").Str("source", src.Name).Err(err).Msg("fetch failed")
				stats[i].Err = err.Error()
				return nil // best-effort: don't cancel siblings
			}
			out := p.Process(sctx, doc)
			outputs[i] = &out
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	now := time.Now()
	websites := make(map[string]string) // run-local company -> website
	for i, out := range outputs {
		if out == nil {
			continue
		}
		st := &stats[i]
		st.Tables = out.Tables
		st.Extracted = out.Extracted
		st.Harmonized = len(out.Jobs)
		st.Category = out.InferredCategory
		st.Advisories = out.Errors

		for _, j := range out.Jobs {
			j = backfillWebsite(ctx, db, websites, j)
			added, err := store.UpsertPosting(ctx, db, j, out.Document.URL, now)
			if err != nil {
				log.Warn().Str("component", "store").Str("source", st.Source).Err(err).
					Str("company", j.Company).Str("role", j.Role).Msg("upsert failed")
				continue
			}
			if !added {
				continue
			}
			st.Added++
			if onNew != nil {
				onNew(j)
			}
		}
		log.Info().Str("component", "pipeline").Str("source", st.Source).
			Int("tables", st.Tables).Int("extracted", st.Extracted).
			Int("harmonized", st.Harmonized).Int("added", st.Added).
			Str("category", st.Category).Msg("source synced")
	}

	if cfg.App.RetentionDays > 0 {
		cutoff := now.AddDate(0, 0, -cfg.App.RetentionDays)
		if n, err := store.CleanupStale(ctx, db, cutoff); err != nil {
			log.Warn().Str("component", "store").Err(err).Msg("cleanup failed")
		} else if n > 0 {
			log.Info().Str("component", "store").Int64("deleted", n).Msg("stale postings removed")
		}
	}
	return stats, nil
}

// backfillWebsite fills CompanyWebsite from the cache, or records it
// there when the posting already carries one.
func backfillWebsite(ctx context.Context, db *sql.DB, cache map[string]string, j domain.JobPosting) domain.JobPosting {
	if j.Company == "" {
		return j
	}
	if j.CompanyWebsite != "" {
		if cache[j.Company] != j.CompanyWebsite {
			if err := store.UpsertCompanyWebsite(ctx, db, j.Company, j.CompanyWebsite); err != nil {
				log.Debug().Str("component", "store").Err(err).Str("company", j.Company).Msg("website cache write failed")
			}
			cache[j.Company] = j.CompanyWebsite
		}
		return j
	}

	site, ok := cache[j.Company]
	if !ok {
		found, err := store.GetCompanyWebsite(ctx, db, j.Company)
		if err != nil {
			log.Debug().Str("component", "store").Err(err).Str("company", j.Company).Msg("website lookup failed")
		}
		site = found
		cache[j.Company] = site // cache even if empty
	}
	j.CompanyWebsite = site
	return j
}
