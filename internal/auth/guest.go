package auth

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	authmw "github.com/tienganhkids/megatest/internal/auth/middleware"
	"github.com/tienganhkids/megatest/internal/config"
)

// GuestLoginHandler lets a learner practice without an account. The guest
// identity is pinned to the browser with a cookie so attempt history survives
// reloads.
func GuestLoginHandler(a *authmw.AuthService, db *sql.DB, cfg config.Config) http.HandlerFunc {
	type out struct {
		AccessToken string `json:"access_token"`
		Username    string `json:"username"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !cfg.EnableGuestAuth {
			http.Error(w, "guest auth disabled", http.StatusForbidden)
			return
		}

		// Reuse an existing guest from the cookie when possible.
		if c, err := r.Cookie("mt_guest_id"); err == nil && c.Value != "" {
			var username, role string
			err := db.QueryRow(`SELECT username, role FROM users WHERE id=$1`, c.Value).Scan(&username, &role)
			if err == nil && role == "student" && strings.HasPrefix(c.Value, "guest|") {
				tok, _ := a.IssueJWT(c.Value, role)
				setGuestCookie(w, c.Value)
				_ = json.NewEncoder(w).Encode(out{AccessToken: tok, Username: username})
				return
			}
		}

		sfx := strconv.FormatInt(time.Now().UnixNano(), 36)
		userID := "guest|" + sfx
		username := "guest-" + sfx[len(sfx)-6:]

		_, _ = db.Exec(`INSERT INTO users (id, username, password_hash, role, created_at)
		                VALUES ($1,$2,'',$3,$4)`, userID, username, "student", time.Now().Unix())

		tok, err := a.IssueJWT(userID, "student")
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		setGuestCookie(w, userID)
		_ = json.NewEncoder(w).Encode(out{AccessToken: tok, Username: username})
	}
}

func setGuestCookie(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "mt_guest_id",
		Value:    userID,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}
