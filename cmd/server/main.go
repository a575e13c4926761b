package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/romansashin/as-app/internal/content"
	"github.com/romansashin/as-app/internal/httpapi"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg := loadConfig()

	repo, err := openRepository(cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer repo.Close()

	store := content.NewStore(cfg.ContentPath)

	if cfg.DefaultUser != "" {
		log.Printf("Warning: auth proxy fallback enabled, unauthenticated requests become %q", cfg.DefaultUser)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(httpapi.CORS(cfg.FrontendURL))
	r.Use(httpapi.ExtractUser(cfg.DefaultUser))

	r.Get("/health", httpapi.Health())
	r.Post("/auth/logout", httpapi.Logout())
	r.Get("/api/me", httpapi.GetMe())
	r.Get("/api/content", httpapi.GetContent(store))
	r.Get("/api/progress", httpapi.GetProgress(repo))
	r.Post("/api/progress", httpapi.PostProgress(repo))

	if cfg.StaticDir != "" {
		r.NotFound(httpapi.SPA(cfg.StaticDir))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	log.Println("server stopped")
}
