package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"jobhunt-readme/internal/config"
	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/pipeline"
	"jobhunt-readme/internal/source"
	"jobhunt-readme/internal/store"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		dataDir     string
		cfgPath     string
		sourcesPath string
		filePath    string
		title       string
		pageURL     string
		description string
		list        bool
		category    string
		limit       int
		check       bool
		serve       string
		verbose     bool
	)

	// Engine data dir: use env if provided, else local folder.
	defaultDataDir := os.Getenv("JOBHUNT_DATA_DIR")
	if defaultDataDir == "" {
		defaultDataDir = "."
	}

	flag.StringVar(&dataDir, "data-dir", defaultDataDir, "Directory holding config.yml, sources.yml and the database")
	flag.StringVar(&cfgPath, "config", "", "Config file (default <data-dir>/config.yml, created on first run)")
	flag.StringVar(&sourcesPath, "sources", "", "Optional sources overlay (default <data-dir>/sources.yml)")
	flag.StringVar(&filePath, "file", "", "Process a local README ('-' for stdin) and print JSON instead of syncing")
	flag.StringVar(&title, "title", "", "Page title for -file")
	flag.StringVar(&pageURL, "url", "", "Page URL for -file")
	flag.StringVar(&description, "desc", "", "Page description for -file")
	flag.BoolVar(&list, "list", false, "Print stored postings as JSON")
	flag.StringVar(&category, "category", "", "Category filter for -list")
	flag.IntVar(&limit, "limit", 200, "Row limit for -list")
	flag.BoolVar(&check, "check", false, "Validate config and print findings")
	flag.StringVar(&serve, "serve", "", "Serve the local HTTP API on this address (e.g. 127.0.0.1:38471)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create data dir")
	}
	if cfgPath == "" {
		p, err := config.EnsureUserConfig(dataDir, "")
		if err != nil {
			log.Fatal().Err(err).Msg("config bootstrap failed")
		}
		cfgPath = p
	}
	if sourcesPath == "" {
		sourcesPath = filepath.Join(dataDir, "sources.yml")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfgPath).Msg("config load failed")
	}
	if err := config.OverlaySources(&cfg, sourcesPath); err != nil {
		log.Fatal().Err(err).Str("path", sourcesPath).Msg("sources overlay failed")
	}
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = dataDir
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Warn().Str("component", "config").Msg(w)
	}
	if check {
		writeJSON(os.Stdout, res)
		if !res.OK() {
			os.Exit(1)
		}
		return
	}
	if !res.OK() {
		for _, e := range res.Errors {
			log.Error().Str("component", "config").Msg(e)
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := pipeline.FromConfig(cfg, newClassifier(cfg))

	if filePath != "" {
		doc, err := readDocument(filePath, title, pageURL, description)
		if err != nil {
			log.Fatal().Err(err).Msg("read input")
		}
		out := proc.Process(ctx, doc)
		writeJSON(os.Stdout, fileResult{
			Category:   out.InferredCategory,
			Metadata:   out.Metadata,
			Tables:     out.Tables,
			Extracted:  out.Extracted,
			Advisories: out.Errors,
			Jobs:       nonNil(out.Jobs),
		})
		return
	}

	unlock, err := acquireLock(cfg.App.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("lock data dir")
	}
	defer unlock()

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	if serve != "" {
		if err := runServer(ctx, serve, db.Pool, cfg, cfgPath); err != nil {
			log.Fatal().Err(err).Msg("server")
		}
		return
	}

	if list {
		rows, err := store.ListPostings(ctx, db.Pool, store.ListOpts{Category: category, Limit: limit})
		if err != nil {
			log.Fatal().Err(err).Msg("list postings")
		}
		writeJSON(os.Stdout, nonNil(rows))
		return
	}

	fetcher := source.New(pipeline.FetchOptions(cfg))
	start := time.Now()
	stats, err := pipeline.RunOnce(ctx, db.Pool, cfg, fetcher, proc, func(j domain.JobPosting) {
		log.Debug().Str("component", "sync").Str("company", j.Company).Str("role", j.Role).
			Str("category", j.Category).Msg("new posting")
	})
	if err != nil {
		log.Error().Err(err).Msg("sync interrupted")
	}
	added := 0
	for _, s := range stats {
		added += s.Added
	}
	log.Info().Str("component", "sync").Int("sources", len(stats)).Int("added", added).
		Dur("took", time.Since(start)).Msg("done")
	writeJSON(os.Stdout, stats)
}
