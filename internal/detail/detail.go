// Package detail projects a selected row of the filtered view into a
// key/value detail view.
package detail

import (
	"github.com/lehigh-university-libraries/hbw/internal/corpus"
	"github.com/lehigh-university-libraries/hbw/internal/search"
)

// Field is one row of a detail view. Href is set when the value should be
// rendered as a hyperlink to itself.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Href  string `json:"href,omitempty"`
}

// View is an ordered, single-record detail view
type View []Field

// Resolve maps a row index of the (possibly sorted) view to the record it
// shows. ok is false when row is out of range.
func Resolve(rs corpus.RecordSet, view search.View, row int) (*corpus.Record, bool) {
	if row < 0 || row >= len(view) {
		return nil, false
	}
	pos := view[row]
	if pos < 0 || pos >= len(rs) {
		return nil, false
	}
	return &rs[pos], true
}

// Full shows every column of the record at the selected row, including
// source columns not displayed in the summary table.
func Full(rs corpus.RecordSet, view search.View, row int) (View, bool) {
	rec, ok := Resolve(rs, view, row)
	if !ok {
		return nil, false
	}

	fields := rec.Fields()
	out := make(View, 0, len(fields))
	for _, f := range fields {
		df := Field{Name: f.Name, Value: f.Value}
		if isAuthority(f.Name) && f.Value != "" {
			df.Href = f.Value
		}
		out = append(out, df)
	}
	return out, true
}

// Restricted shows the first selected row limited to columns followed by
// authorities. Present authority values link to themselves; absent values
// are empty and carry no link.
func Restricted(rs corpus.RecordSet, view search.View, rows []int, columns, authorities []string) (View, bool) {
	if len(rows) == 0 {
		return nil, false
	}
	rec, ok := Resolve(rs, view, rows[0])
	if !ok {
		return nil, false
	}

	out := make(View, 0, len(columns)+len(authorities))
	for _, col := range columns {
		v, _ := rec.Value(col)
		out = append(out, Field{Name: col, Value: v})
	}
	for _, col := range authorities {
		v, present := rec.Value(col)
		f := Field{Name: col, Value: v}
		if present {
			f.Href = v
		}
		out = append(out, f)
	}
	return out, true
}

func isAuthority(column string) bool {
	for _, c := range corpus.AuthorityColumns {
		if c == column {
			return true
		}
	}
	return false
}
