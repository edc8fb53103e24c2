// Package trend provides the downstream tabular transforms a consumer
// applies to a flattened export before charting or exporting one record
// type over time: filtering, projection, date truncation, ascending sort,
// and duplicate-date removal. Each transform returns a new table and
// leaves its input untouched.
package trend

import (
	"sort"

	"github.com/tsawler/hktab/model"
)

// dateLen is the length of the date prefix of an export timestamp
// ("2023-01-02 08:00:00 -0500" -> "2023-01-02").
const dateLen = 10

// FilterType returns the rows whose type field equals typ. Column order is
// preserved.
func FilterType(t *model.Table, typ string) *model.Table {
	out := model.NewTable(t.Columns...)
	for _, row := range t.Rows {
		if row["type"] == typ {
			out.AppendRow(row.Clone())
		}
	}
	return out
}

// Select projects the table onto the given columns, in the given order.
// Row fields outside the selection are dropped.
func Select(t *model.Table, columns ...string) *model.Table {
	out := model.NewTable(columns...)
	for _, row := range t.Rows {
		projected := make(model.Row, len(columns))
		for _, col := range columns {
			if v, ok := row[col]; ok {
				projected[col] = v
			}
		}
		out.AppendRow(projected)
	}
	return out
}

// DateOnly truncates every value of the named column to its first ten
// bytes, slicing a date-only prefix off an ISO-8601-like timestamp. Values
// already shorter than ten bytes pass through unchanged.
func DateOnly(t *model.Table, column string) *model.Table {
	out := model.NewTable(t.Columns...)
	for _, row := range t.Rows {
		clone := row.Clone()
		if v, ok := clone[column]; ok && len(v) > dateLen {
			clone[column] = v[:dateLen]
		}
		out.AppendRow(clone)
	}
	return out
}

// SortAscending returns the rows sorted ascending by the named column's
// raw string value. The sort is stable, so rows with equal values keep
// their relative order.
func SortAscending(t *model.Table, column string) *model.Table {
	out := model.NewTable(t.Columns...)
	out.Rows = make([]model.Row, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = row.Clone()
	}
	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i][column] < out.Rows[j][column]
	})
	return out
}

// DedupFirst drops every row whose value in the named column duplicates an
// earlier row's, keeping the first occurrence.
func DedupFirst(t *model.Table, column string) *model.Table {
	out := model.NewTable(t.Columns...)
	seen := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		v := row[column]
		if seen[v] {
			continue
		}
		seen[v] = true
		out.AppendRow(row.Clone())
	}
	return out
}

// Point is one (date, value) observation for a plotting or spreadsheet
// consumer.
type Point struct {
	Date  string
	Value string
}

// Points extracts (date, value) pairs from the table in row order.
func Points(t *model.Table, dateColumn, valueColumn string) []Point {
	points := make([]Point, len(t.Rows))
	for i, row := range t.Rows {
		points[i] = Point{Date: row[dateColumn], Value: row[valueColumn]}
	}
	return points
}

// Series runs the whole downstream pipeline for one record type: filter by
// type, project (type, dateColumn, value), truncate the date column, sort
// ascending by it, and drop duplicate dates keeping the first occurrence.
func Series(t *model.Table, typ, dateColumn string) *model.Table {
	out := FilterType(t, typ)
	out = Select(out, "type", dateColumn, "value")
	out = DateOnly(out, dateColumn)
	out = SortAscending(out, dateColumn)
	return DedupFirst(out, dateColumn)
}
