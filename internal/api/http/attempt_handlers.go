package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tienganhkids/megatest/internal/rbac"
	"github.com/tienganhkids/megatest/internal/session"
)

// POST /attempts {"test_id":"..."} starts an attempt for the caller.
func CreateAttemptHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TestID string `json:"test_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.TestID == "" {
			http.Error(w, "test_id required", http.StatusBadRequest)
			return
		}
		a, err := store.NewAttempt(req.TestID, rbac.SubjectFromContext(r.Context()))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// POST /attempts/{attemptID}/responses merges partial answers into the attempt.
func SaveResponsesHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		var resp map[string]any
		if err := json.NewDecoder(r.Body).Decode(&resp); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		a, err := store.SaveResponses(id, resp)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// POST /attempts/{attemptID}/submit grades the attempt. Submitting twice
// returns the recorded result.
func SubmitAttemptHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		a, err := store.Submit(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// GET /attempts/{attemptID}. Learners only see their own attempts.
func GetAttemptHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		a, err := store.GetAttempt(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		role := rbac.RoleFromContext(r.Context())
		if !rbac.Has(role, "attempt:view-all") && a.UserID != rbac.SubjectFromContext(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// GET /attempts?test_id=...&user_id=...&status=...&limit=50&offset=0
// Roles without attempt:view-all are scoped to their own attempts.
func ListAttemptsHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := rbac.RoleFromContext(r.Context())
		sub := rbac.SubjectFromContext(r.Context())
		if role == "" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
		if !rbac.Has(role, "attempt:view-all") {
			userID = sub
		}

		list, err := store.ListAttempts(r.Context(), session.AttemptListOpts{
			TestID: strings.TrimSpace(r.URL.Query().Get("test_id")),
			UserID: userID,
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
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
