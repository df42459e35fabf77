package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"

	"jobhunt-readme/internal/classify"
	"jobhunt-readme/internal/config"
	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/harmonize"
)

type fileResult struct {
	Category   string                 `json:"category"`
	Metadata   domain.ContentMetadata `json:"metadata"`
	Tables     int                    `json:"tables"`
	Extracted  int                    `json:"extracted"`
	Advisories []string               `json:"advisories,omitempty"`
	Jobs       []domain.JobPosting    `json:"jobs"`
}

func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// nonNil keeps empty results as [] rather than null.
func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

func readDocument(path, title, pageURL, description string) (domain.Document, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.Document{}, err
	}
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return domain.Document{
		Name:        path,
		Title:       title,
		URL:         pageURL,
		Description: description,
		Text:        string(b),
	}, nil
}

// newClassifier returns nil (keyword inference only) unless the LLM
// classifier is enabled and has a key.
func newClassifier(cfg config.Config) harmonize.ContentClassifier {
	if !cfg.Classifier.Enabled {
		return nil
	}
	key := cfg.APIKey()
	if key == "" && cfg.Classifier.BaseURL == "" {
		return nil
	}
	log.Debug().Str("component", "classify").Str("model", cfg.Classifier.Model).Msg("llm classifier enabled")
	return classify.NewOpenAI(key, cfg.Classifier.BaseURL, cfg.Classifier.Model)
}

var errLocked = errors.New("another sync is already running")

// acquireLock takes an exclusive lock on the data dir so two syncs never
// write the same database.
func acquireLock(dataDir string) (func(), error) {
	fl := flock.New(filepath.Join(dataDir, ".engine.lock"))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, errLocked
	}
	return func() { _ = fl.Unlock() }, nil
}
