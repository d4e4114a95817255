// Package session holds the per-user browsing state: active filter, sort
// and selection. The RecordSet itself is shared and never stored here.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/hbw/internal/corpus"
	"github.com/lehigh-university-libraries/hbw/internal/search"
)

// Session is the state of one browsing session
type Session struct {
	ID         string          `json:"id"`
	Criteria   search.Criteria `json:"criteria"`
	SortColumn string          `json:"sort_column,omitempty"`
	SortDesc   bool            `json:"sort_desc,omitempty"`
	Selected   []int           `json:"selected,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	LastSeen   time.Time       `json:"last_seen"`
}

// New starts a session whose date range spans the whole corpus
func New(rs corpus.RecordSet) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Criteria:  search.DefaultCriteria(rs),
		CreatedAt: now,
		LastSeen:  now,
	}
}

// SetDateRange updates the date filter. A reversed range is kept (it
// matches only undated records) and reported as an InvalidCriteriaError.
func (s *Session) SetDateRange(begin, end int) error {
	if s.Criteria.Begin != begin || s.Criteria.End != end {
		s.Selected = nil
	}
	s.Criteria.Begin = begin
	s.Criteria.End = end
	return s.Criteria.Validate()
}

// SetSearchText replaces the free-text search
func (s *Session) SetSearchText(text string) {
	if s.Criteria.Search != text {
		s.Selected = nil
	}
	s.Criteria.Search = text
}

// SetSort orders the view by column; an empty column restores corpus order
func (s *Session) SetSort(column string, descending bool) {
	if s.SortColumn != column || s.SortDesc != descending {
		s.Selected = nil
	}
	s.SortColumn = column
	s.SortDesc = descending
}

// SelectRow selects a single row of the current view
func (s *Session) SelectRow(row int) {
	s.Selected = []int{row}
}

// ClearSelection drops the current selection
func (s *Session) ClearSelection() {
	s.Selected = nil
}

// View recomputes the filtered, sorted view
func (s *Session) View(rs corpus.RecordSet) search.View {
	return search.Filter(rs, s.Criteria).Sort(rs, s.SortColumn, s.SortDesc)
}

// Clone returns an independent copy
func (s *Session) Clone() *Session {
	c := *s
	c.Selected = append([]int(nil), s.Selected...)
	return &c
}
