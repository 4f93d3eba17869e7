package source

// Record is a header-keyed view of one spreadsheet row. Immutable once read.
type Record struct {
	header map[string]int
	values []string
}

// NewRecord builds a Record from a header row and a value row. Rows shorter
// than the header are allowed; missing cells read as empty.
func NewRecord(header []string, values []string) Record {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return Record{header: idx, values: values}
}

// Field returns the cell under the named column, or "" when the column is
// absent or the row is too short. Mirrors the empty-string coercion the
// submissions API expects for missing values.
func (r Record) Field(name string) string {
	i, ok := r.header[name]
	if !ok || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// Columns reports how many named columns the record knows about.
func (r Record) Columns() int {
	return len(r.header)
}
