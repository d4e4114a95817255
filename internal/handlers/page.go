package handlers

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lehigh-university-libraries/hbw/internal/detail"
	"github.com/lehigh-university-libraries/hbw/internal/search"
	"github.com/lehigh-university-libraries/hbw/internal/session"
)

//go:embed templates/page.html
var templates embed.FS

func parsePage() (*template.Template, error) {
	return template.ParseFS(templates, "templates/page.html")
}

type header struct {
	Name  string
	Href  string
	Arrow string
}

type tableRow struct {
	Href     string
	Cells    []string
	Selected bool
}

type pageData struct {
	HasStylesheet bool
	About         template.HTML
	Criteria      search.Criteria
	Filename      string
	Notice        string
	Stats         search.Stats
	Headers       []header
	Rows          []tableRow
	Detail        detail.View
}

func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := h.sessionID(w, r)

	var notice string
	s, ok := h.sessions.Update(id, func(s *session.Session) {
		notice = h.applyQuery(s, r.URL.Query())
	})
	if !ok {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return
	}

	view := s.View(h.records)

	data := pageData{
		HasStylesheet: h.stylesheet != nil,
		About:         h.about,
		Criteria:      s.Criteria,
		Filename:      h.formatter.Filename(s.Criteria),
		Notice:        notice,
		Stats:         search.Summarize(h.records, view),
		Headers:       h.headers(s),
		Rows:          make([]tableRow, 0, len(view)),
	}

	selected := -1
	if len(s.Selected) > 0 {
		selected = s.Selected[0]
	}
	for i, pos := range view {
		rec := &h.records[pos]
		cells := make([]string, len(h.cfg.DefaultColumns))
		for j, col := range h.cfg.DefaultColumns {
			cells[j], _ = rec.Value(col)
		}
		data.Rows = append(data.Rows, tableRow{
			Href:     "/?select=" + strconv.Itoa(i),
			Cells:    cells,
			Selected: i == selected,
		})
	}

	if dv, ok := detail.Restricted(h.records, view, s.Selected, h.cfg.DefaultColumns, h.cfg.Authorities); ok {
		data.Detail = dv
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(w, data); err != nil {
		slog.Error("Unable to render page", "err", err)
	}
}

// applyQuery turns the query string into session operations. It returns a
// notice for the user when a parameter could not be applied as given.
func (h *Handler) applyQuery(s *session.Session, q url.Values) string {
	if q.Has("clear") {
		fresh := session.New(h.records)
		s.Criteria = fresh.Criteria
		s.SetSort("", false)
		s.ClearSelection()
	}

	var notice string
	if q.Has("begin") || q.Has("end") {
		begin, errBegin := parseYear(q.Get("begin"), s.Criteria.Begin)
		end, errEnd := parseYear(q.Get("end"), s.Criteria.End)
		if errBegin != nil || errEnd != nil {
			notice = "Dates must be whole years."
		}
		if err := s.SetDateRange(begin, end); err != nil {
			var ice *search.InvalidCriteriaError
			if errors.As(err, &ice) {
				slog.Warn("Reversed date range", "session_id", s.ID, "begin", ice.Begin, "end", ice.End)
				notice = "Start date is after end date; only undated titles match."
			}
		}
	}

	if q.Has("search") {
		s.SetSearchText(q.Get("search"))
	}

	if q.Has("sort") {
		col := q.Get("sort")
		if h.isDisplayColumn(col) || col == "" {
			s.SetSort(col, q.Get("desc") == "1")
		}
	}

	if q.Has("select") {
		if row, err := strconv.Atoi(q.Get("select")); err == nil {
			s.SelectRow(row)
		} else {
			s.ClearSelection()
		}
	}

	return notice
}

// parseYear accepts whole numbers, including the "1920.0" form number
// inputs can send; an empty value keeps fallback
func parseYear(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return fallback, errors.New("not a whole year")
	}
	return int(f), nil
}

func (h *Handler) isDisplayColumn(col string) bool {
	for _, c := range h.cfg.DefaultColumns {
		if c == col {
			return true
		}
	}
	return false
}

// headers link each column to its sort; clicking the active column flips
// the direction
func (h *Handler) headers(s *session.Session) []header {
	out := make([]header, 0, len(h.cfg.DefaultColumns))
	for _, col := range h.cfg.DefaultColumns {
		q := url.Values{"sort": {col}}
		hd := header{Name: col}
		if s.SortColumn == col {
			if s.SortDesc {
				hd.Arrow = " ▼"
			} else {
				hd.Arrow = " ▲"
				q.Set("desc", "1")
			}
		}
		hd.Href = "/?" + q.Encode()
		out = append(out, hd)
	}
	return out
}
