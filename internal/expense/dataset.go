package expense

import "strings"

// Dataset is an ordered collection of records plus the set of columns the
// source sheet actually carried. Order is the source insertion order; it is
// not semantically meaningful but is preserved so top-N style views are
// stable before explicit sorting.
type Dataset struct {
	Columns []string
	Records []Record
}

// NewDataset builds a dataset from column names and records. Column names
// are normalized immediately so every later stage can rely on the canonical
// form.
func NewDataset(columns []string, records []Record) *Dataset {
	normalized := make([]string, 0, len(columns))
	for _, c := range columns {
		normalized = append(normalized, NormalizeColumn(c))
	}
	return &Dataset{Columns: normalized, Records: records}
}

// NormalizeColumn canonicalizes a source column name: surrounding whitespace
// trimmed, interior spaces replaced with underscores, lowercased.
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

// HasColumn reports whether the source sheet carried the given canonical
// column. Stages must not synthesize values for columns the source lacked.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. The cleaner works on a clone so callers keep
// their raw dataset untouched.
func (d *Dataset) Clone() *Dataset {
	columns := make([]string, len(d.Columns))
	copy(columns, d.Columns)
	records := make([]Record, len(d.Records))
	copy(records, d.Records)
	for i := range records {
		if records[i].Date != nil {
			date := *records[i].Date
			records[i].Date = &date
		}
	}
	return &Dataset{Columns: columns, Records: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}
