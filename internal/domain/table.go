package domain

// Format is the markup dialect of a document or table.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatMixed    Format = "mixed"
	FormatUnknown  Format = "unknown"
)

// ParsedTable is one table block. Every row has exactly len(Headers) cells.
type ParsedTable struct {
	Headers  []string
	Rows     [][]string
	Format   Format
	Category string // from the nearest preceding heading, "Other" if none
}

// ColumnMapping holds zero-based column indices; -1 means unmapped.
type ColumnMapping struct {
	Company  int
	Role     int
	Location int
	Link     int
	Date     int
	Notes    int
}

// JobRelated reports whether the table has a company or role column.
func (m ColumnMapping) JobRelated() bool {
	return m.Company >= 0 || m.Role >= 0
}
