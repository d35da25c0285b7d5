package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	api "github.com/tienganhkids/megatest/internal/api/http"
	"github.com/tienganhkids/megatest/internal/auth"
	authmw "github.com/tienganhkids/megatest/internal/auth/middleware"
	"github.com/tienganhkids/megatest/internal/config"
	"github.com/tienganhkids/megatest/internal/db"
	"github.com/tienganhkids/megatest/internal/grading"
	"github.com/tienganhkids/megatest/internal/megatest"
	"github.com/tienganhkids/megatest/internal/provider"
	"github.com/tienganhkids/megatest/internal/rbac"
	"github.com/tienganhkids/megatest/internal/session"
	"github.com/tienganhkids/megatest/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("db open failed")
	}
	ensureAdmin(dbh, cfg, log)

	store := session.NewSQLStore(dbh, grading.NewGrader())

	// --- Blob store (generation transcripts) ---
	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.WithError(err).Fatal("blob store")
	}

	// --- Generation backend ---
	bp, ok := megatest.BlueprintByName(cfg.GenBlueprint)
	if !ok {
		log.WithField("blueprint", cfg.GenBlueprint).Fatal("unknown blueprint")
	}
	gen := provider.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.GenModels, bp, bs, log)

	// --- Auth (local JWT for offline/dev) ---
	secret := getenvOr("AUTH_HMAC_SECRET", "supersecret-dev-key")
	authSvc := authmw.NewAuthService(secret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", authmw.LoginHandler(authSvc, dbh))
	}
	if cfg.EnableGuestAuth {
		r.Post("/auth/guest", auth.GuestLoginHandler(authSvc, dbh, cfg))
	}

	// Protected API (JWT -> role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))
		pr.Use(authmw.AttachRoleFromDB(dbh, cfg.Mode == config.ModeOffline))

		// Teacher flow: generate, validate, upload
		pr.With(rbac.Require("test:generate")).
			Post("/tests/generate", api.GenerateTestHandler(gen, bp, store, log))
		pr.With(rbac.Require("test:validate")).
			Post("/tests/validate", api.ValidateTestHandler(bp))
		pr.With(rbac.Require("test:create")).
			Post("/tests", api.UploadTestHandler(bp, store))

		// Student/Teacher: browse and fetch tests
		pr.With(rbac.Require("test:view")).
			Get("/tests", api.ListTestsHandler(store))
		pr.With(rbac.Require("test:view")).
			Get("/tests/{testID}", api.GetTestHandler(store))

		// Student flow
		pr.With(rbac.Require("attempt:create")).
			Post("/attempts", api.CreateAttemptHandler(store))
		pr.With(rbac.Require("attempt:save")).
			Post("/attempts/{attemptID}/responses", api.SaveResponsesHandler(store))
		pr.With(rbac.Require("attempt:submit")).
			Post("/attempts/{attemptID}/submit", api.SubmitAttemptHandler(store))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/attempts/{attemptID}", api.GetAttemptHandler(store))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/attempts", api.ListAttemptsHandler(store))

		// Users (teacher/admin)
		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))

		// Generation transcripts (teacher review)
		pr.With(rbac.Require("transcript:view")).Route("/transcripts", func(tr chi.Router) {
			api.MountTranscripts(tr, bs)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.WithFields(logrus.Fields{
		"addr":      cfg.HTTPAddr,
		"mode":      cfg.Mode,
		"db":        cfg.DBDriver,
		"blueprint": bp.Name,
	}).Info("listening")
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

// ensureAdmin seeds the configured admin account so a fresh install is
// reachable. Skipped when no bcrypt hash is configured.
func ensureAdmin(dbh *sql.DB, cfg config.Config, log *logrus.Logger) {
	if cfg.AdminUser == "" || cfg.AdminPassHash == "" {
		return
	}
	_, err := dbh.Exec(`INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES ($1,$1,$2,'admin',$3)
		ON CONFLICT (id) DO NOTHING`,
		cfg.AdminUser, cfg.AdminPassHash, time.Now().Unix())
	if err != nil {
		log.WithError(err).Warn("seed admin user")
	}
}

func getenvOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
