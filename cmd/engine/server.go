package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"jobhunt-readme/internal/config"
	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/events"
	"jobhunt-readme/internal/httpapi"
	"jobhunt-readme/internal/pipeline"
	"jobhunt-readme/internal/source"
)

// runServer blocks until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, addr string, db *sql.DB, cfg config.Config, cfgPath string) error {
	var cfgVal, status atomic.Value
	cfgVal.Store(cfg)
	status.Store(httpapi.SyncStatus{})

	d := httpapi.Deps{
		DB:          db,
		Hub:         events.NewHub(),
		CfgVal:      &cfgVal,
		SyncStatus:  &status,
		UserCfgPath: cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(cfgPath) },
		RunSync: func(ctx context.Context, db *sql.DB, cfg config.Config, onNew func(domain.JobPosting)) ([]pipeline.Stats, error) {
			proc := pipeline.FromConfig(cfg, newClassifier(cfg))
			return pipeline.RunOnce(ctx, db, cfg, source.New(pipeline.FetchOptions(cfg)), proc, onNew)
		},
		NewProcessor: func(cfg config.Config) *pipeline.Processor {
			return pipeline.FromConfig(cfg, newClassifier(cfg))
		},
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           httpapi.Handler(d),
		ReadHeaderTimeout: 5 * time.Second,
		// SSE streams end with ctx instead of holding Shutdown open
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	log.Info().Str("component", "httpapi").Str("addr", "http://"+ln.Addr().String()).
		Str("db", cfg.DBPath()).Msg("listening")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
