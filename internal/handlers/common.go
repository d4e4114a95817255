package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/hbw/internal/config"
	"github.com/lehigh-university-libraries/hbw/internal/corpus"
	"github.com/lehigh-university-libraries/hbw/internal/export"
	"github.com/lehigh-university-libraries/hbw/internal/session"
)

const sessionCookie = "hbw_session"

type Handler struct {
	records    corpus.RecordSet
	sessions   *session.Store
	cfg        config.Config
	formatter  *export.Formatter
	page       *template.Template
	about      template.HTML
	stylesheet []byte
	staticDir  string
}

// New wires the handlers around a loaded RecordSet. A stylesheet that
// cannot be read is logged and the page is served unstyled.
func New(records corpus.RecordSet, cfg config.Config) (*Handler, error) {
	page, err := parsePage()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	about, err := renderAbout()
	if err != nil {
		return nil, fmt.Errorf("failed to render about text: %w", err)
	}

	formatter := export.NewFormatter(cfg.ExportColumns())
	formatter.Prefix = cfg.ExportPrefix

	h := &Handler{
		records:   records,
		sessions:  session.NewStore(),
		cfg:       cfg,
		formatter: formatter,
		page:      page,
		about:     about,
		staticDir: "static",
	}

	h.stylesheet, err = LoadStylesheet(cfg.StylesheetPath)
	if err != nil {
		var rle *ResourceLoadError
		if !errors.As(err, &rle) {
			return nil, err
		}
		slog.Error("Stylesheet unavailable, serving unstyled pages", "path", rle.Path, "err", rle.Err)
	}

	return h, nil
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers

// sessionID returns the caller's session, creating one (and its cookie)
// when the request carries none or an unknown one
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, ok := h.sessions.Get(c.Value); ok {
			return c.Value
		}
	}

	s := session.New(h.records)
	h.sessions.Set(s)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	slog.Debug("Started session", "session_id", s.ID, "begin", s.Criteria.Begin, "end", s.Criteria.End)
	return s.ID
}

// PruneSessions drops web sessions idle for longer than the configured max
// age
func (h *Handler) PruneSessions() int {
	removed := h.sessions.Prune(h.cfg.SessionMaxAge)
	if removed > 0 {
		slog.Info("Pruned idle sessions", "removed", removed, "remaining", h.sessions.Len())
	}
	return removed
}

func (h *Handler) getSessionOrError(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, exists := h.sessions.Get(h.sessionID(w, r))
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}
