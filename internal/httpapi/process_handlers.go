package httpapi

import (
	"io"
	"net/http"
	"sync/atomic"

	"jobhunt-readme/internal/config"
	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/pipeline"
)

const maxProcessBody = 8 << 20

type ProcessHandler struct {
	CfgVal       *atomic.Value // config.Config
	NewProcessor func(cfg config.Config) *pipeline.Processor
}

type processResponse struct {
	Category   string                 `json:"category"`
	Metadata   domain.ContentMetadata `json:"metadata"`
	Tables     int                    `json:"tables"`
	Extracted  int                    `json:"extracted"`
	Advisories []string               `json:"advisories,omitempty"`
	Jobs       []domain.JobPosting    `json:"jobs"`
}

// Process serves POST /process?title=&url=&desc= with the README as body.
// Nothing is persisted.
func (h ProcessHandler) Process(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxProcessBody+1))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeReadFailed, err.Error())
		return
	}
	if len(body) > maxProcessBody {
		WriteError(w, r, http.StatusRequestEntityTooLarge, CodeTooLarge, "document exceeds 8MB")
		return
	}

	q := r.URL.Query()
	doc := domain.Document{
		Name:        "http",
		Title:       q.Get("title"),
		URL:         q.Get("url"),
		Description: q.Get("desc"),
		Text:        string(body),
	}
	cfg := h.CfgVal.Load().(config.Config)
	out := h.NewProcessor(cfg).Process(r.Context(), doc)

	jobs := out.Jobs
	if jobs == nil {
		jobs = []domain.JobPosting{}
	}
	writeJSON(w, processResponse{
		Category:   out.InferredCategory,
		Metadata:   out.Metadata,
		Tables:     out.Tables,
		Extracted:  out.Extracted,
		Advisories: out.Errors,
		Jobs:       jobs,
	})
}
