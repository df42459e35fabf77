package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"jobhunt-readme/internal/config"
	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/events"
	"jobhunt-readme/internal/pipeline"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal     *atomic.Value // stores config.Config
	SyncStatus *atomic.Value // stores httpapi.SyncStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Sync entrypoint (inject for testability)
	RunSync func(ctx context.Context, db *sql.DB, cfg config.Config, onNew func(domain.JobPosting)) ([]pipeline.Stats, error)

	// NewProcessor builds a processor for the current config.
	NewProcessor func(cfg config.Config) *pipeline.Processor
}
