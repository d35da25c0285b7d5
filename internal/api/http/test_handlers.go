package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/tienganhkids/megatest/internal/megatest"
	"github.com/tienganhkids/megatest/internal/provider"
	"github.com/tienganhkids/megatest/internal/rbac"
	"github.com/tienganhkids/megatest/internal/session"
)

// errorPanel is the teacher-facing view of a failed validation: the first
// few diagnostics plus a count of the rest.
type errorPanel struct {
	Errors []string `json:"errors"`
	More   int      `json:"more,omitempty"`
}

const panelSize = 5

func newErrorPanel(errs []string) errorPanel {
	p := errorPanel{Errors: errs}
	if len(errs) > panelSize {
		p.Errors = errs[:panelSize]
		p.More = len(errs) - panelSize
	}
	return p
}

// POST /tests/generate {"level":"A2","topic":"...","title":"...","vocabulary":[...],"grammar":[...]}
// Generates content, validates it, and publishes the filtered test. Invalid
// content is rejected with 422 and the error panel.
func GenerateTestHandler(p provider.ContentProvider, bp megatest.Blueprint, store session.Store, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Level      string   `json:"level"`
			Topic      string   `json:"topic"`
			Title      string   `json:"title"`
			Vocabulary []string `json:"vocabulary"`
			Grammar    []string `json:"grammar"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		level := megatest.Level(req.Level)
		if !level.Valid() {
			http.Error(w, "level must be A1, A2 or B1", http.StatusBadRequest)
			return
		}

		raw, err := p.GenerateTest(r.Context(), provider.Request{
			Level:      level,
			Topic:      req.Topic,
			Vocabulary: req.Vocabulary,
			Grammar:    req.Grammar,
		})
		if err != nil {
			log.WithError(err).Error("generation failed")
			http.Error(w, "generation failed", http.StatusBadGateway)
			return
		}

		res := megatest.ValidateTestWith(raw, bp)
		if !res.Valid {
			log.WithFields(logrus.Fields{
				"level":  level,
				"errors": len(res.Errors),
			}).Warn("generated test rejected")
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"valid":      false,
				"errors":     res.Errors,
				"errorPanel": newErrorPanel(res.Errors),
			})
			return
		}

		t := session.Test{
			ID:        "test-" + strconv.FormatInt(time.Now().UnixNano(), 36),
			Title:     req.Title,
			Level:     level,
			CreatedBy: rbac.SubjectFromContext(r.Context()),
			Content:   *res.Filtered,
		}
		if t.Title == "" {
			t.Title = "Mega Test " + string(level)
		}
		if err := store.PutTest(t); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

// POST /tests/validate validates a raw document without storing anything.
func ValidateTestHandler(bp megatest.Blueprint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		res := megatest.ValidateTestWith(raw, bp)
		status := http.StatusOK
		if !res.Valid {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, res)
	}
}

// POST /tests uploads pre-authored content. It passes through the same
// validation gate as generated content.
func UploadTestHandler(bp megatest.Blueprint, store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID      string          `json:"id"`
			Title   string          `json:"title"`
			Content json.RawMessage `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if len(req.Content) == 0 {
			http.Error(w, "content required", http.StatusBadRequest)
			return
		}
		res := megatest.ValidateTestWith(req.Content, bp)
		if !res.Valid {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"valid":      false,
				"errors":     res.Errors,
				"errorPanel": newErrorPanel(res.Errors),
			})
			return
		}
		t := session.Test{
			ID:        req.ID,
			Title:     req.Title,
			Level:     res.Filtered.Level,
			CreatedBy: rbac.SubjectFromContext(r.Context()),
			Content:   *res.Filtered,
		}
		if t.ID == "" {
			t.ID = "test-" + strconv.FormatInt(time.Now().UnixNano(), 36)
		}
		if err := store.PutTest(t); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

// GET /tests/{testID} serves the learner-safe test. Roles with
// test:view-full may request ?full=1 to include answer keys.
func GetTestHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "testID")
		full := r.URL.Query().Get("full") == "1"
		if full {
			if !rbac.Has(rbac.RoleFromContext(r.Context()), "test:view-full") {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			t, err := store.GetTestFull(r.Context(), id)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, t)
			return
		}
		t, err := store.GetTest(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

// GET /tests?level=A2&limit=50&offset=0
func ListTestsHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListTests(r.Context(), session.ListOpts{
			Level:  r.URL.Query().Get("level"),
			Limit:  parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrTestNotFound), errors.Is(err, session.ErrAttemptNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrSubmitted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
