package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobhunt-readme/internal/scrape/util"
)

func TestRawURL(t *testing.T) {
	cases := map[string]string{
		"https://github.com/SimplifyJobs/New-Grad-Positions":          "https://raw.githubusercontent.com/SimplifyJobs/New-Grad-Positions/HEAD/README.md",
		"https://github.com/owner/repo.git":                           "https://raw.githubusercontent.com/owner/repo/HEAD/README.md",
		"https://github.com/owner/repo/blob/dev/docs/JOBS.md":         "https://raw.githubusercontent.com/owner/repo/dev/docs/JOBS.md",
		"https://raw.githubusercontent.com/owner/repo/main/README.md": "https://raw.githubusercontent.com/owner/repo/main/README.md",
		"https://example.com/jobs.md":                                 "https://example.com/jobs.md",
		"https://github.com/owner":                                    "https://github.com/owner",
	}
	for in, want := range cases {
		if got := RawURL(in); got != want {
			t.Errorf("RawURL(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/readme.md":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("# 2025 New Grad Roles\n\n| Company | Role |\n|---|---|\n| Café | SWE |\n"))
		case "/latin1.md":
			w.Header().Set("Content-Type", "text/plain; charset=iso-8859-1")
			_, _ = w.Write([]byte("# Caf\xe9 Jobs\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := New(Options{Timeout: 5 * time.Second, UserAgent: "test-agent", Limiter: util.NewHostLimiter(100, 10)})
	ctx := context.Background()

	doc, err := f.Fetch(ctx, Source{Name: "t", URL: srv.URL + "/readme.md", Description: "d"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if doc.Title != "2025 New Grad Roles" {
		t.Fatalf("want title from H1, got %q", doc.Title)
	}
	if doc.URL != srv.URL+"/readme.md" || doc.Description != "d" || doc.Name != "t" {
		t.Fatalf("unexpected doc %+v", doc)
	}
	if gotUA != "test-agent" {
		t.Fatalf("want user agent test-agent, got %q", gotUA)
	}

	doc, err = f.Fetch(ctx, Source{Name: "l", URL: srv.URL + "/latin1.md", Title: "Explicit"})
	if err != nil {
		t.Fatalf("fetch latin1: %v", err)
	}
	if doc.Title != "Explicit" || doc.Text != "# Café Jobs\n" {
		t.Fatalf("unexpected latin1 doc %+v", doc)
	}

	if _, err := f.Fetch(ctx, Source{Name: "missing", URL: srv.URL + "/nope"}); !errors.Is(err, ErrStatus) {
		t.Fatalf("want ErrStatus, got %v", err)
	}
	if _, err := f.Fetch(ctx, Source{Name: "bad", URL: "not a url"}); err == nil {
		t.Fatal("want error for invalid url")
	}
}

func TestDocumentTitle(t *testing.T) {
	cases := []struct {
		name, text, want string
	}{
		{"html h1", `<h1 align="center">Summer <b>Internships</b></h1>`, "Summer Internships"},
		{"h1 across lines", "<div>\n<h1>\n  Jobs &amp; Internships\n</h1>\n</div>", "Jobs & Internships"},
		{"empty h1 skipped", `<h1><img src="logo.png"></h1>` + "\n<h1>New Grad</h1>", "New Grad"},
		{"markdown before html", "# **2026 Roles**\n<h1>Other</h1>", "2026 Roles"},
		{"no heading", "no heading here", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := documentTitle(tc.text); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}
