package search

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/hbw/internal/corpus"
)

// Criteria are the user-controlled filter parameters
type Criteria struct {
	Begin  int    `json:"begin" yaml:"begin"`
	End    int    `json:"end" yaml:"end"`
	Search string `json:"search" yaml:"search"`
}

// InvalidCriteriaError reports a date range that ends before it begins.
// Filtering still runs; such a range simply matches no dated records.
type InvalidCriteriaError struct {
	Begin int
	End   int
}

func (e *InvalidCriteriaError) Error() string {
	return fmt.Sprintf("invalid date range: begin %d is after end %d", e.Begin, e.End)
}

// DefaultCriteria spans every dated record with an empty search
func DefaultCriteria(rs corpus.RecordSet) Criteria {
	lo, hi, _ := rs.DateBounds()
	return Criteria{Begin: lo, End: hi}
}

// Terms splits the raw search text on whitespace
func (c Criteria) Terms() []string {
	return strings.Fields(c.Search)
}

// Validate reports a reversed date range
func (c Criteria) Validate() error {
	if c.Begin > c.End {
		return &InvalidCriteriaError{Begin: c.Begin, End: c.End}
	}
	return nil
}

// View is a filtered (and possibly re-ordered) selection of a RecordSet,
// stored as positions into it
type View []int

// Records materializes the view
func (v View) Records(rs corpus.RecordSet) []corpus.Record {
	out := make([]corpus.Record, 0, len(v))
	for _, pos := range v {
		out = append(out, rs[pos])
	}
	return out
}

// Filter returns the records matching both the date range and the search
// terms, in RecordSet order. It is recomputed on every call.
func Filter(rs corpus.RecordSet, c Criteria) View {
	terms := c.Terms()
	for i := range terms {
		terms[i] = strings.ToLower(terms[i])
	}

	view := make(View, 0, len(rs))
	for i := range rs {
		if !InDateRange(&rs[i], c.Begin, c.End) {
			continue
		}
		if !MatchesAny(&rs[i], terms) {
			continue
		}
		view = append(view, i)
	}
	return view
}

// InDateRange treats undated records as always in range
func InDateRange(r *corpus.Record, begin, end int) bool {
	if r.Date == nil {
		return true
	}
	return *r.Date >= begin && *r.Date <= end
}

// MatchesAny reports whether any field contains any of the lowercased terms
// as a literal substring. No terms matches everything.
func MatchesAny(r *corpus.Record, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	for _, text := range SearchableText(r) {
		text = strings.ToLower(text)
		for _, term := range terms {
			if strings.Contains(text, term) {
				return true
			}
		}
	}
	return false
}

// SearchableText is the textual form of every present field of a record
func SearchableText(r *corpus.Record) []string {
	fields := r.Fields()
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Value != "" {
			out = append(out, f.Value)
		}
	}
	return out
}
