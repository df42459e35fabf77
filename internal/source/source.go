// Package source fetches README documents for configured sources.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"

	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/scrape/util"
)

var ErrStatus = errors.New("source: unexpected status")

const defaultMaxBytes = 8 << 20

// Source is one README to sync.
type Source struct {
	Name        string
	URL         string // repo page or direct raw URL
	Title       string // optional; derived from the document when empty
	Description string
}

type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Limiter   *util.HostLimiter
	Client    *http.Client // overrides Timeout when set
}

type Fetcher struct {
	hc       *http.Client
	lim      *util.HostLimiter
	ua       string
	maxBytes int64
}

func New(opts Options) *Fetcher {
	hc := opts.Client
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = "JobHunt-README/1.0 (+local)"
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	lim := opts.Limiter
	if lim == nil {
		lim = util.NewHostLimiter(2, 1)
	}
	return &Fetcher{hc: hc, lim: lim, ua: ua, maxBytes: maxBytes}
}

// Fetch downloads src and returns it decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, src Source) (domain.Document, error) {
	fetchURL := RawURL(src.URL)
	if !util.IsHTTPURL(fetchURL) {
		return domain.Document{}, fmt.Errorf("source %s: invalid url %q", src.Name, src.URL)
	}
	if err := f.lim.WaitURL(ctx, fetchURL); err != nil {
		return domain.Document{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return domain.Document{}, fmt.Errorf("source %s: build request: %w", src.Name, err)
	}
	req.Header.Set("User-Agent", f.ua)

	res, err := f.hc.Do(req)
	if err != nil {
		return domain.Document{}, fmt.Errorf("source %s: get: %w", src.Name, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return domain.Document{}, fmt.Errorf("%w %d for %s", ErrStatus, res.StatusCode, fetchURL)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, f.maxBytes))
	if err != nil {
		return domain.Document{}, fmt.Errorf("source %s: read body: %w", src.Name, err)
	}
	text, err := decode(data, res.Header.Get("Content-Type"))
	if err != nil {
		return domain.Document{}, fmt.Errorf("source %s: decode: %w", src.Name, err)
	}

	log.Debug().Str("component", "source").Str("source", src.Name).
		Str("url", fetchURL).Int("bytes", len(data)).Msg("fetched")

	title := strings.TrimSpace(src.Title)
	if title == "" {
		title = documentTitle(text)
	}
	if title == "" {
		title = repoName(src.URL)
	}
	return domain.Document{
		Name:        src.Name,
		Title:       title,
		URL:         strings.TrimSpace(src.URL),
		Description: strings.TrimSpace(src.Description),
		Text:        text,
	}, nil
}

// decode converts data to UTF-8. The sniffer only looks at the first
// 1KB, so valid UTF-8 wins over an uncertain guess.
func decode(data []byte, contentType string) (string, error) {
	enc, _, certain := charset.DetermineEncoding(data, contentType)
	if !certain && utf8.Valid(data) {
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if utf8.Valid(data) {
			return string(data), nil
		}
		return "", err
	}
	return string(out), nil
}

// RawURL maps a github.com repo (or blob) URL to its raw README URL.
// Anything else is returned unchanged.
func RawURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || !strings.EqualFold(strings.TrimPrefix(u.Host, "www."), "github.com") {
		return raw
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return raw
	}
	owner, repo := parts[0], strings.TrimSuffix(parts[1], ".git")

	// github.com/owner/repo/blob/<ref>/<path>
	if len(parts) >= 5 && parts[2] == "blob" {
		return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s", owner, repo, strings.Join(parts[3:], "/"))
	}
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/HEAD/README.md", owner, repo)
}

// documentTitle returns the first Markdown H1 or HTML <h1> text.
func documentTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "# ") {
			return util.StripEmphasis(util.CleanText(strings.TrimPrefix(t, "# ")))
		}
		if strings.Contains(strings.ToLower(t), "<h1") {
			break
		}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return ""
	}
	var title string
	doc.Find("h1").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		title = util.CleanText(h.Text())
		return title == ""
	})
	return title
}
