// Package main is the entry point for the herbal catalog API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"

	"github.com/ayush-assistant/herbcatalog/internal/config"
	"github.com/ayush-assistant/herbcatalog/internal/csvimport"
	"github.com/ayush-assistant/herbcatalog/internal/handler"
	"github.com/ayush-assistant/herbcatalog/internal/middleware"
	"github.com/ayush-assistant/herbcatalog/internal/repo"
	"github.com/ayush-assistant/herbcatalog/internal/service"
	"github.com/ayush-assistant/herbcatalog/migrations"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the ping below does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		if err := migrate(ctx, pool); err != nil {
			return err
		}
	}

	// --- Services ---------------------------------------------------------
	herbRepo := repo.NewHerbRepo(pool)
	schema := csvimport.NewSchema(cfg.ImportImageURLColumn)

	catalogSvc := service.NewCatalogService(herbRepo, logger)
	authSvc := service.NewAuthService(service.AuthConfig{
		Secret:   []byte(cfg.JWTSecret),
		TTL:      cfg.SessionTTL,
		Accounts: cfg.AdminAccounts,
		Admins:   cfg.AdminEmails,
	})

	server := handler.NewServer(handler.Deps{
		Herbs:          service.NewHerbService(herbRepo),
		Catalog:        catalogSvc,
		Imports:        service.NewImportService(herbRepo, schema, cfg.ImportBatchSize, logger),
		Exports:        service.NewExportService(herbRepo, schema),
		Chat:           service.NewChatService(catalogSvc, logger),
		Auth:           authSvc,
		Logger:         logger,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Mount("/", server.Handler())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// The HTTP server and the catalog watcher share one lifetime: a signal or
	// a fatal error in either stops both.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return catalogSvc.Watch(gctx, repo.NewChangeFeed(pool))
	})

	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// migrate applies pending goose migrations through a database/sql handle
// that borrows connections from pool.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("migrations applied", "count", len(results))
	return nil
}
