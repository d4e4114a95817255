package search

import (
	"sort"

	"github.com/lehigh-university-libraries/hbw/internal/corpus"
)

// Sort returns a copy of the view ordered by column. Dates compare
// numerically, everything else in natural order; absent values always go
// last. The sort is stable so ties keep RecordSet order.
func (v View) Sort(rs corpus.RecordSet, column string, descending bool) View {
	sorted := make(View, len(v))
	copy(sorted, v)
	if column == "" {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &rs[sorted[i]], &rs[sorted[j]]
		av, aok := a.Value(column)
		bv, bok := b.Value(column)
		if !aok || !bok {
			return aok && !bok
		}

		var less, greater bool
		if column == corpus.ColDate {
			less, greater = *a.Date < *b.Date, *a.Date > *b.Date
		} else {
			less, greater = corpus.NaturalLess(av, bv), corpus.NaturalLess(bv, av)
		}
		if descending {
			return greater
		}
		return less
	})
	return sorted
}

// Stats summarizes a view for the table caption
type Stats struct {
	Displayed    int `json:"displayed"`
	WithKeywords int `json:"with_keywords"`
	WithSummary  int `json:"with_summary"`
}

// Summarize counts titles, and titles with keywords and summaries
func Summarize(rs corpus.RecordSet, v View) Stats {
	s := Stats{Displayed: len(v)}
	for _, pos := range v {
		if rs[pos].Keywords != "" {
			s.WithKeywords++
		}
		if rs[pos].Summary != "" {
			s.WithSummary++
		}
	}
	return s
}
