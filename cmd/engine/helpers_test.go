package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jobhunt-readme/internal/config"
	"jobhunt-readme/internal/domain"
)

func TestAcquireLock(t *testing.T) {
	dir := t.TempDir()
	unlock, err := acquireLock(dir)
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}
	if _, err := acquireLock(dir); !errors.Is(err, errLocked) {
		t.Fatalf("want errLocked, got %v", err)
	}
	unlock()

	unlock, err = acquireLock(dir)
	if err != nil {
		t.Fatalf("relock after unlock: %v", err)
	}
	unlock()
}

func TestReadDocument(t *testing.T) {
	p := filepath.Join(t.TempDir(), "Data-Jobs.md")
	if err := os.WriteFile(p, []byte("| a | b |"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := readDocument(p, "", "https://github.com/x/y", "")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if doc.Title != "Data-Jobs" || doc.Text != "| a | b |" || doc.URL != "https://github.com/x/y" {
		t.Fatalf("unexpected doc %+v", doc)
	}
}

func TestWriteJSONEmptyJobs(t *testing.T) {
	var buf bytes.Buffer
	writeJSON(&buf, fileResult{Jobs: nonNil[domain.JobPosting](nil), Category: "Other"})
	if !strings.Contains(buf.String(), `"jobs": []`) {
		t.Fatalf("want empty jobs array, got %s", buf.String())
	}
}

func TestNewClassifierDisabled(t *testing.T) {
	cfg := config.Default()
	if newClassifier(cfg) != nil {
		t.Fatal("disabled classifier must be nil")
	}
	cfg.Classifier.Enabled = true
	cfg.Classifier.APIKeyEnv = "JOBHUNT_TEST_UNSET_KEY"
	t.Setenv("JOBHUNT_TEST_UNSET_KEY", "")
	if newClassifier(cfg) != nil {
		t.Fatal("classifier without key or base url must be nil")
	}
	cfg.Classifier.BaseURL = "http://127.0.0.1:11434/v1"
	if newClassifier(cfg) == nil {
		t.Fatal("local base url should enable the classifier")
	}
}
