// Package rowsource abstracts the tabular documents the bulk importer
// consumes: an ordered sequence of records mapping column labels to cell
// values.
package rowsource

// Record is one row, keyed by the column labels of the header row.
type Record map[string]string

// Source yields every record of one tabular document.
type Source interface {
	Read() ([]Record, error)
}

// Slice is an in-memory Source, used by tests and programmatic imports.
type Slice []Record

func (s Slice) Read() ([]Record, error) {
	return s, nil
}
