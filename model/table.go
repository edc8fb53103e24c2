package model

import "strings"

// Row holds the flattened fields of a single record: its own attributes
// plus any merged metadata key/value pairs. Fields absent from the record
// are simply absent from the map.
type Row map[string]string

// Get returns the value of a field, or the empty string if the row does
// not carry it.
func (r Row) Get(field string) string {
	return r[field]
}

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table represents rows column-aligned over the union of all fields seen
// across an entire export. Columns holds the display order; a row missing
// a column reads as an empty cell.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns.
func (t *Table) ColCount() int {
	return len(t.Columns)
}

// HasColumn reports whether the table carries a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Cell returns the value at the given row index and column name, or the
// empty string if the row index is out of bounds or the row lacks the
// column.
func (t *Table) Cell(row int, column string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][column]
}

// Column returns all values of one column in row order, with empty strings
// for rows that lack it.
func (t *Table) Column(name string) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[name]
	}
	return out
}

// AppendRow adds a row to the end of the table. The caller is responsible
// for keeping Columns consistent with the row's fields.
func (t *Table) AppendRow(row Row) {
	t.Rows = append(t.Rows, row)
}

// ToCSV converts the table to CSV format, header row first.
func (t *Table) ToCSV() string {
	var sb strings.Builder
	writeCSVRecord(&sb, t.Columns)
	for _, row := range t.Rows {
		fields := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			fields[j] = row[col]
		}
		writeCSVRecord(&sb, fields)
	}
	return sb.String()
}

func writeCSVRecord(sb *strings.Builder, fields []string) {
	for j, text := range fields {
		// Escape quotes and wrap in quotes if necessary
		if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
			text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
		}
		sb.WriteString(text)
		if j < len(fields)-1 {
			sb.WriteString(",")
		}
	}
	sb.WriteString("\n")
}

// ToMarkdown converts the table to markdown format.
func (t *Table) ToMarkdown() string {
	if len(t.Columns) == 0 {
		return ""
	}

	var sb strings.Builder

	// Header row
	for j, col := range t.Columns {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(col, "\n", " "))
		sb.WriteString(" ")
		if j == len(t.Columns)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Separator
	for j := range t.Columns {
		sb.WriteString("|---")
		if j == len(t.Columns)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Data rows
	for _, row := range t.Rows {
		for j, col := range t.Columns {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(row[col], "\n", " "))
			sb.WriteString(" ")
			if j == len(t.Columns)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
