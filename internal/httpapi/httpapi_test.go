package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"jobhunt-readme/internal/config"
	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/events"
	"jobhunt-readme/internal/pipeline"
	"jobhunt-readme/internal/store"
)

type fixture struct {
	srv *httptest.Server
	hub *events.Hub
	db  *sql.DB
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "jobs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfgPath := filepath.Join(dir, "config.yml")
	cfg := config.Default()
	if err := config.SaveAtomic(cfgPath, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	var cfgVal, status atomic.Value
	cfgVal.Store(cfg)
	status.Store(SyncStatus{})

	hub := events.NewHub()
	d := Deps{
		DB:          db.Pool,
		Hub:         hub,
		CfgVal:      &cfgVal,
		SyncStatus:  &status,
		UserCfgPath: cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(cfgPath) },
		RunSync: func(ctx context.Context, db *sql.DB, _ config.Config, onNew func(domain.JobPosting)) ([]pipeline.Stats, error) {
			j := domain.JobPosting{Company: "Acme", Role: "SWE", Category: "Software Engineering", CompanyLink: "https://acme.com/jobs/1"}
			if _, err := store.UpsertPosting(ctx, db, j, "https://github.com/acme/jobs", time.Now()); err != nil {
				return nil, err
			}
			onNew(j)
			return []pipeline.Stats{{Source: "acme", Added: 1}}, nil
		},
		NewProcessor: func(c config.Config) *pipeline.Processor { return pipeline.FromConfig(c, nil) },
	}
	srv := httptest.NewServer(Handler(d))
	t.Cleanup(srv.Close)
	return fixture{srv: srv, hub: hub, db: db.Pool}
}

func decode(t *testing.T, res *http.Response, v any) {
	t.Helper()
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestSyncRunAndList(t *testing.T) {
	f := newFixture(t)
	sub := f.hub.Subscribe()

	res, err := http.Post(f.srv.URL+"/sync/run", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusAccepted {
		t.Fatalf("want 202, got %d", res.StatusCode)
	}
	if res.Header.Get("X-Request-ID") == "" {
		t.Fatal("want request id header")
	}

	deadline := time.After(5 * time.Second)
	var seen []string
wait:
	for {
		select {
		case msg := <-sub:
			var e events.Event
			_ = json.Unmarshal([]byte(msg), &e)
			seen = append(seen, e.Type)
			if e.Type == events.TypeSyncFinished {
				break wait
			}
		case <-deadline:
			t.Fatalf("sync never finished; events=%v", seen)
		}
	}
	if strings.Join(seen, ",") != "sync_started,posting_added,sync_finished" {
		t.Fatalf("unexpected event order %v", seen)
	}

	var st SyncStatus
	res, _ = http.Get(f.srv.URL + "/sync/status")
	decode(t, res, &st)
	if st.Running || st.LastAdded != 1 || st.LastOkAt == "" || len(st.Sources) != 1 {
		t.Fatalf("unexpected status %+v", st)
	}

	var rows []store.StoredPosting
	res, _ = http.Get(f.srv.URL + "/postings?category=Software+Engineering")
	decode(t, res, &rows)
	if len(rows) != 1 || rows[0].Company != "Acme" {
		t.Fatalf("unexpected postings %+v", rows)
	}

	res, _ = http.Get(f.srv.URL + "/postings?limit=zero")
	var bad APIError
	decode(t, res, &bad)
	if res.StatusCode != http.StatusBadRequest || bad.Error.Code != CodeInvalidLimit {
		t.Fatalf("want 400 invalid_limit, got %d %+v", res.StatusCode, bad)
	}
}

func TestProcessEndpoint(t *testing.T) {
	f := newFixture(t)
	body := "## Data Science Roles\n| Company | Role | Link |\n|---|---|---|\n| Acme | DS | [Apply](https://acme.com/careers/9) |\n"
	res, err := http.Post(f.srv.URL+"/process?title=Data+Jobs&url=https://github.com/x/y", "text/markdown", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	var out processResponse
	decode(t, res, &out)
	if out.Tables != 1 || len(out.Jobs) != 1 || out.Jobs[0].Category != "Data Science" {
		t.Fatalf("unexpected response %+v", out)
	}

	// nothing persisted
	var n int
	if err := f.db.QueryRow(`SELECT COUNT(*) FROM job_postings;`).Scan(&n); err != nil || n != 0 {
		t.Fatalf("want empty store, got %d err=%v", n, err)
	}
}

func TestConfigPutValidation(t *testing.T) {
	f := newFixture(t)

	var cfg config.Config
	res, _ := http.Get(f.srv.URL + "/config")
	decode(t, res, &cfg)

	cfg.Harmonize.MinConfidence = 2
	b, _ := json.Marshal(cfg)
	req, _ := http.NewRequest(http.MethodPut, f.srv.URL+"/config", strings.NewReader(string(b)))
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", res.StatusCode)
	}
	var vr config.Validation
	decode(t, res, &vr)
	if vr.OK() {
		t.Fatal("want validation errors")
	}

	cfg.Harmonize.MinConfidence = 0.7
	b, _ = json.Marshal(cfg)
	req, _ = http.NewRequest(http.MethodPut, f.srv.URL+"/config", strings.NewReader(string(b)))
	res, err = http.DefaultClient.Do(req)
	if err != nil || res.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %v err=%v", res.StatusCode, err)
	}
	var saved config.Config
	decode(t, res, &saved)
	if saved.Harmonize.MinConfidence != 0.7 {
		t.Fatalf("want saved min confidence 0.7, got %v", saved.Harmonize.MinConfidence)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t)
	res, err := http.Post(f.srv.URL+"/postings", "text/plain", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	var e APIError
	decode(t, res, &e)
	if res.StatusCode != http.StatusMethodNotAllowed || e.Error.Code != CodeMethodNotAllowed || e.Error.RequestID == "" {
		t.Fatalf("unexpected error response %d %+v", res.StatusCode, e)
	}
}

func TestSyncRunConflict(t *testing.T) {
	var running atomic.Bool
	running.Store(true)
	h := SyncHandler{running: &running}

	rec := httptest.NewRecorder()
	h.Run(rec, httptest.NewRequest(http.MethodPost, "/sync/run", nil))

	var e APIError
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusConflict || e.Error.Code != CodeSyncRunning {
		t.Fatalf("want 409 sync_running, got %d %+v", rec.Code, e)
	}
}
