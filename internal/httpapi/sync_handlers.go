package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"jobhunt-readme/internal/config"
	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/events"
	"jobhunt-readme/internal/pipeline"
)

const syncTimeout = 10 * time.Minute

type SyncHandler struct {
	DB         *sql.DB
	CfgVal     *atomic.Value // config.Config
	SyncStatus *atomic.Value // httpapi.SyncStatus
	Hub        *events.Hub
	RunSync    func(ctx context.Context, db *sql.DB, cfg config.Config, onNew func(domain.JobPosting)) ([]pipeline.Stats, error)

	running *atomic.Bool
}

func (h SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.SyncStatus.Load().(SyncStatus)
	writeJSON(w, st)
}

func (h SyncHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !h.running.CompareAndSwap(false, true) {
		WriteError(w, r, http.StatusConflict, CodeSyncRunning, "sync already running")
		return
	}

	st := h.SyncStatus.Load().(SyncStatus)
	h.SyncStatus.Store(SyncStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})
	reqID := RequestIDFrom(r.Context())
	h.Hub.Emit(reqID, events.TypeSyncStarted, nil)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		cfg := h.CfgVal.Load().(config.Config)
		stats, err := h.RunSync(ctx, h.DB, cfg, func(j domain.JobPosting) {
			h.Hub.Emit(reqID, events.TypePostingAdded, j)
		})

		added := 0
		for _, s := range stats {
			added += s.Added
		}
		now := time.Now().Format(time.RFC3339)
		next := h.SyncStatus.Load().(SyncStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastAdded = added
		next.Sources = stats
		if err != nil {
			log.Warn().Str("component", "httpapi").Str("request_id", reqID).Err(err).Msg("sync failed")
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.SyncStatus.Store(next)
		h.running.Store(false)
		h.Hub.Emit(reqID, events.TypeSyncFinished, map[string]any{"added": added, "error": next.LastError})
	}()

	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true})
}
