// Package httpapi is the local HTTP surface: stored postings, on-demand
// processing, sync trigger/status, config and SSE progress events.
package httpapi

import (
	"net/http"
	"sync/atomic"
)

// NewMux returns the raw mux; Handler wraps it with middleware.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{Hub: d.Hub, SyncStatus: d.SyncStatus}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Postings
	ph := PostingsHandler{DB: d.DB}
	mux.HandleFunc("/postings", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.List,
	}))

	// Process without persisting
	prh := ProcessHandler{CfgVal: d.CfgVal, NewProcessor: d.NewProcessor}
	mux.HandleFunc("/process", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: prh.Process,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Hub:         d.Hub,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Sync
	sh := SyncHandler{
		DB:         d.DB,
		CfgVal:     d.CfgVal,
		SyncStatus: d.SyncStatus,
		Hub:        d.Hub,
		RunSync:    d.RunSync,
		running:    new(atomic.Bool),
	}
	mux.HandleFunc("/sync/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Status,
	}))
	mux.HandleFunc("/sync/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Run,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	dh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Checkpoint,
	}))

	return mux
}

// Handler is NewMux behind the standard middleware chain.
func Handler(d Deps) http.Handler {
	return Chain(NewMux(d), RequestID, AccessLog, Recover, Cors)
}
