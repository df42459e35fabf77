package httpapi

import (
	"net/http"
	"sync/atomic"

	"jobhunt-readme/internal/events"
)

type HealthHandler struct {
	Hub        *events.Hub
	SyncStatus *atomic.Value
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	st, _ := h.SyncStatus.Load().(SyncStatus)
	writeJSON(w, map[string]any{
		"ok":          true,
		"syncing":     st.Running,
		"subscribers": h.Hub.Len(),
	})
}
