// Package harmonize cleans extracted postings: dates become ISO, links are
// moved to the field that matches what they point at, and generic or empty
// categories are replaced by the page-level category.
package harmonize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"jobhunt-readme/internal/dates"
	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/links"
)

// ContentClassifier infers page-level metadata, typically with an LLM. It
// may be slow or fail; the Harmonizer bounds and survives both.
type ContentClassifier interface {
	ClassifyContent(ctx context.Context, page domain.Page) (domain.ContentMetadata, error)
}

type Options struct {
	Classifier    ContentClassifier // nil runs deterministic-only
	Timeout       time.Duration
	MinConfidence float64
	Reference     time.Time // date anchor; zero means now
	Links         *links.Classifier

	CategoryRules     []CategoryRule
	GenericCategories []string
	GenericPatterns   []string
	Seasons           []string
}

type Harmonizer struct {
	classifier    ContentClassifier
	timeout       time.Duration
	minConfidence float64
	reference     time.Time
	links         links.Classifier
	rules         []compiledRule
	generic       genericRules
}

func New(opts Options) *Harmonizer {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	h := &Harmonizer{
		classifier:    opts.Classifier,
		timeout:       opts.Timeout,
		minConfidence: opts.MinConfidence,
		reference:     opts.Reference,
		links:         links.Default(),
		rules:         compileRules(opts.CategoryRules),
		generic:       newGenericRules(opts.GenericCategories, opts.GenericPatterns, opts.Seasons),
	}
	if opts.Links != nil {
		h.links = *opts.Links
	}
	return h
}

type Result struct {
	Jobs             []domain.JobPosting
	InferredCategory string
	Metadata         domain.ContentMetadata
	Errors           []string // advisory only
}

// Harmonize never fails: classifier problems end up in Result.Errors and
// the keyword fallback is used instead.
func (h *Harmonizer) Harmonize(ctx context.Context, jobs []domain.JobPosting, page domain.Page) Result {
	meta, errs := h.contentMetadata(ctx, page)
	res := Result{
		InferredCategory: meta.Category,
		Metadata:         meta,
		Errors:           errs,
	}

	ref := h.reference
	if ref.IsZero() {
		ref = time.Now()
	}
	dn := dates.New(ref)

	res.Jobs = make([]domain.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		out, ok := h.harmonizeJob(j, meta, dn)
		if !ok {
			log.Debug().Str("component", "harmonize").Str("company", j.Company).Str("role", j.Role).
				Msg("dropped: no application link left after relocation")
			continue
		}
		res.Jobs = append(res.Jobs, out)
	}
	return res
}

func (h *Harmonizer) contentMetadata(ctx context.Context, page domain.Page) (domain.ContentMetadata, []string) {
	fallback := inferFromKeywords(h.rules, h.links, page)
	if h.classifier == nil {
		return fallback, nil
	}

	meta, err := h.classifyBounded(ctx, page)
	if err != nil {
		log.Warn().Err(err).Str("component", "harmonize").Str("page", page.URL).Msg("content classifier failed, using keyword fallback")
		return fallback, []string{fmt.Sprintf("content classifier: %v", err)}
	}

	meta.Category = CleanCategory(meta.Category)
	meta.Confidence = min(max(meta.Confidence, 0), 1)
	if meta.Category == "" {
		return fallback, []string{"content classifier: empty category"}
	}
	if meta.Confidence < h.minConfidence {
		return fallback, []string{fmt.Sprintf("content classifier: confidence %.2f below %.2f", meta.Confidence, h.minConfidence)}
	}
	if !meta.IsAggregatorSource && fallback.IsAggregatorSource {
		meta.IsAggregatorSource, meta.AggregatorName = true, fallback.AggregatorName
	}
	return meta, nil
}

// classifyBounded returns within the timeout even if the classifier ignores
// its context.
func (h *Harmonizer) classifyBounded(ctx context.Context, page domain.Page) (domain.ContentMetadata, error) {
	cctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	type result struct {
		meta domain.ContentMetadata
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		m, err := h.classifier.ClassifyContent(cctx, page)
		ch <- result{m, err}
	}()

	select {
	case r := <-ch:
		return r.meta, r.err
	case <-cctx.Done():
		return domain.ContentMetadata{}, cctx.Err()
	}
}

func (h *Harmonizer) harmonizeJob(j domain.JobPosting, meta domain.ContentMetadata, dn dates.Normalizer) (domain.JobPosting, bool) {
	if d := strings.TrimSpace(j.DatePosted); d != "" {
		if iso, ok := dn.Normalize(d); ok {
			j.DatePosted = iso
		}
	}

	if j.CompanyLink != "" {
		if c := h.links.Classify(j.CompanyLink); c.IsAggregator() {
			if j.AggregatorLink == "" {
				j.AggregatorLink, j.AggregatorName = j.CompanyLink, c.Name
			}
			j.CompanyLink = ""
		} else if h.links.IsCompanyHomepage(j.CompanyLink) {
			if j.CompanyWebsite == "" {
				j.CompanyWebsite = j.CompanyLink
			}
			j.CompanyLink = ""
		}
	}
	if j.CompanyWebsite == "" && j.CompanyLink != "" {
		if home, ok := links.ExtractCompanyHomepage(j.CompanyLink); ok {
			j.CompanyWebsite = home
		}
	}
	if j.AggregatorLink != "" && j.AggregatorName == "" {
		if c := h.links.Classify(j.AggregatorLink); c.IsAggregator() {
			j.AggregatorName = c.Name
		}
	}
	if meta.IsAggregatorSource && j.AggregatorName == "" {
		j.AggregatorName = meta.AggregatorName
	}

	j.Category = h.category(j.Category, meta.Category)
	return j, j.IdentityKey() != ""
}

func (h *Harmonizer) category(own, inferred string) string {
	if inferred == "" {
		inferred = fallbackCategory
	}
	c := CleanCategory(own)
	if c == "" || strings.EqualFold(c, fallbackCategory) || h.generic.isGeneric(c) {
		return inferred
	}
	return c
}
