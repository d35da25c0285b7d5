package config

import (
	"os"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode      Mode
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	BlobBasePath string // transcript archive root

	EnableLocalAuth bool
	EnableGuestAuth bool

	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	// Generation backend (any OpenAI-compatible endpoint).
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GenModels     []string // fallback order, first is default
	GenBlueprint  string   // mega50|mega50-legacy

	LogLevel string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:            mode,
		HTTPAddr:        addr,
		PublicURL:       os.Getenv("PUBLIC_URL"),
		DBDriver:        envOr("DB_DRIVER", "sqlite"),
		DBDSN:           envOr("DB_DSN", ""),
		BlobBasePath:    envOr("BLOB_BASE_PATH", "./data"),
		EnableLocalAuth: envBool("ENABLE_LOCAL_AUTH", true),
		EnableGuestAuth: envBool("ENABLE_GUEST_AUTH", mode == ModeOffline),
		AdminUser:       envOr("ADMIN_USER", "admin"),
		AdminPassHash:   os.Getenv("ADMIN_PASS_HASH"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://hoctienganh.example.com"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		GenModels:     csvOr("GEN_MODELS", ""),
		GenBlueprint:  envOr("GEN_BLUEPRINT", "mega50"),

		LogLevel: envOr("LOG_LEVEL", "info"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
