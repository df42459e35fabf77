// Package pipeline runs documents through parse, extract and harmonize,
// and syncs configured sources into the store.
package pipeline

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"jobhunt-readme/internal/config"
	"jobhunt-readme/internal/domain"
	"jobhunt-readme/internal/extract"
	"jobhunt-readme/internal/harmonize"
	"jobhunt-readme/internal/links"
	"jobhunt-readme/internal/parse"
)

const maxSampleHeaders = 12

type Processor struct {
	parser     *parse.Parser
	extractor  *extract.Extractor
	harmonizer *harmonize.Harmonizer
}

// Output is the result of processing one document.
type Output struct {
	Document  domain.Document
	Tables    int
	Extracted int
	harmonize.Result
}

func NewProcessor(p *parse.Parser, e *extract.Extractor, h *harmonize.Harmonizer) *Processor {
	return &Processor{parser: p, extractor: e, harmonizer: h}
}

// FromConfig wires a Processor from cfg. cc may be nil.
func FromConfig(cfg config.Config, cc harmonize.ContentClassifier) *Processor {
	lc := links.New(LinksTable(cfg))
	return NewProcessor(
		parse.New(ParserOptions(cfg)),
		extract.New(ExtractOptions(cfg, &lc)),
		harmonize.New(HarmonizeOptions(cfg, &lc, cc)),
	)
}

// Process is parse -> extract -> harmonize over one document.
func (p *Processor) Process(ctx context.Context, doc domain.Document) Output {
	tables := p.parser.ParseTables(doc.Text)
	jobs := p.extractor.ExtractJobs(tables)

	page := domain.Page{
		Title:         doc.Title,
		URL:           doc.URL,
		Description:   doc.Description,
		SampleHeaders: sampleHeaders(tables),
	}
	res := p.harmonizer.Harmonize(ctx, jobs, page)
	for _, e := range res.Errors {
		log.Debug().Str("component", "pipeline").Str("source", doc.Name).Msg(e)
	}

	return Output{
		Document:  doc,
		Tables:    len(tables),
		Extracted: len(jobs),
		Result:    res,
	}
}

// sampleHeaders collects distinct header cells across tables.
func sampleHeaders(tables []domain.ParsedTable) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tables {
		for _, h := range t.Headers {
			key := strings.ToLower(strings.TrimSpace(h))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, strings.TrimSpace(h))
			if len(out) == maxSampleHeaders {
				return out
			}
		}
	}
	return out
}
