package domain

// LinkKind tags a LinkClassification.
type LinkKind int

const (
	LinkCompany LinkKind = iota
	LinkAggregator
)

// LinkClassification is either Company or Aggregator(Name).
type LinkClassification struct {
	Kind LinkKind
	Name string // aggregator name; empty for company links
}

func (c LinkClassification) IsAggregator() bool { return c.Kind == LinkAggregator }

// Page describes the source document being harmonized.
type Page struct {
	Title         string
	URL           string
	Description   string
	SampleHeaders []string
}

// ContentMetadata is the page-level category inference.
type ContentMetadata struct {
	Category           string  `json:"category"`
	IsAggregatorSource bool    `json:"isAggregatorSource"`
	AggregatorName     string  `json:"aggregatorName,omitempty"`
	Confidence         float64 `json:"confidence"`
}

// Document is one fetched source ready for the pipeline.
type Document struct {
	Name        string // config name of the source, used in logs
	Title       string
	URL         string // human-facing page URL
	Description string
	Text        string
}
