package models

// Table is a flat relational table: a header row plus data rows. Cells are
// strings for text columns, int64 for coerced numeric columns, and nil for a
// numeric value that failed coercion. A zero Table has no columns defined;
// downstream code must tolerate that.
type Table struct {
	Headers []string
	Rows    [][]any
}

// NewTable creates a table with the given column headers and no rows.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AppendRow adds one row. The caller is responsible for matching the column
// count; the normalizer always builds rows from its own header list.
func (t *Table) AppendRow(cells ...any) {
	t.Rows = append(t.Rows, cells)
}

// RowCount returns the number of data rows (headers excluded).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}

	return -1
}

// Column returns all values of the named column, or nil if absent.
func (t *Table) Column(name string) []any {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}

	values := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}

	return values
}

// AddColumn appends a column with the same value in every row. On a table
// with no columns defined, the header is still added so that a later publish
// carries the column.
func (t *Table) AddColumn(name string, value any) {
	t.Headers = append(t.Headers, name)

	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], value)
	}
}

// Values returns the table as a header row followed by data rows, the shape
// the spreadsheet API consumes.
func (t *Table) Values() [][]any {
	out := make([][]any, 0, len(t.Rows)+1)

	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}

	out = append(out, header)
	out = append(out, t.Rows...)

	return out
}
