package main

import (
	"fmt"
	"os"

	"github.com/romansashin/as-app/internal/storage"
)

type Config struct {
	Port        string
	DBType      string // "sqlite" or "postgres"
	DBPath      string // sqlite file path
	DatabaseURL string // postgres connection string
	DefaultUser string // identity fallback when the auth proxy is absent
	ContentPath string
	StaticDir   string // empty disables SPA serving
	FrontendURL string // CORS origin
}

func loadConfig() Config {
	cfg := Config{
		Port:        getenv("PORT", "4000"),
		DBType:      getenv("DB_TYPE", "sqlite"),
		DBPath:      getenv("DATABASE_PATH", "./data/as-app.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DefaultUser: os.Getenv("DEFAULT_USER"),
		ContentPath: getenv("CONTENT_PATH", "./data/content.json"),
		StaticDir:   os.Getenv("STATIC_DIR"),
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),
	}
	return cfg
}

func openRepository(cfg Config) (storage.Repository, error) {
	switch cfg.DBType {
	case "sqlite":
		return storage.NewSQLiteRepository(cfg.DBPath)
	case "postgres":
		return storage.NewPostgresRepository(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown DB_TYPE %q", cfg.DBType)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
