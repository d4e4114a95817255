package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/hbw/internal/corpus"
	"github.com/lehigh-university-libraries/hbw/internal/detail"
	"github.com/lehigh-university-libraries/hbw/internal/search"
)

type recordsResponse struct {
	Criteria   search.Criteria `json:"criteria"`
	SortColumn string          `json:"sort_column,omitempty"`
	SortDesc   bool            `json:"sort_desc,omitempty"`
	Stats      search.Stats    `json:"stats"`
	Records    []corpus.Record `json:"records"`
}

// HandleDownload sends the session's current view as a CSV attachment
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	dl, err := h.formatter.Export(h.records, s.View(h.records), s.Criteria)
	if err != nil {
		h.writeError(w, "Unable to export: "+err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("Exporting filtered view", "session_id", s.ID, "filename", dl.Filename, "bytes", len(dl.Data))

	w.Header().Set("Content-Type", dl.MIMEType+"; charset=utf-8")
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": dl.Filename})
	if disposition == "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", disposition)
	if _, err := w.Write(dl.Data); err != nil {
		slog.Error("Unable to write export", "err", err)
	}
}

// HandleRecords returns the session's filtered view as JSON
func (h *Handler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	view := s.View(h.records)
	h.writeJSON(w, recordsResponse{
		Criteria:   s.Criteria,
		SortColumn: s.SortColumn,
		SortDesc:   s.SortDesc,
		Stats:      search.Summarize(h.records, view),
		Records:    view.Records(h.records),
	})
}

// HandleRecordDetail returns every field of one row of the session's view
func (h *Handler) HandleRecordDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	row, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/records/"))
	if err != nil {
		h.writeError(w, "Invalid row", http.StatusBadRequest)
		return
	}

	s, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	dv, ok := detail.Full(h.records, s.View(h.records), row)
	if !ok {
		h.writeError(w, "Row not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, dv)
}

// Routes registers every handler on a new mux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/records", h.HandleRecords)
	mux.HandleFunc("/api/records/", h.HandleRecordDetail)
	mux.HandleFunc("/download", h.HandleDownload)
	mux.HandleFunc("/static/", h.HandleStatic)
	mux.HandleFunc("/", h.HandlePage)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	return mux
}
