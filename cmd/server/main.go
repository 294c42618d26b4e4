package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	handler "github.com/biovote/registry/internal/adapters/handler/http"
	repo "github.com/biovote/registry/internal/adapters/repository/postgres"
	"github.com/biovote/registry/internal/core/services"
	"github.com/biovote/registry/internal/platform/config"
	"github.com/biovote/registry/internal/platform/metrics"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()
	cfg := config.FromEnv()

	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, admin tokens will not survive restarts securely")
	}
	if cfg.AdminPassword == "" {
		slog.Error("ADMIN_PASSWORD is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	voterRepo := repo.NewVoterRepository(db)

	registrySvc := services.NewRegistryService(voterRepo, m)
	ballotSvc := services.NewBallotService(voterRepo, m)
	authSvc := services.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, []byte(cfg.JWTSecret))
	adminSvc := services.NewAdminService(voterRepo, authSvc, m)
	exportSvc := services.NewExportService(voterRepo)

	voterHandler := handler.NewVoterHandler(registrySvc, exportSvc)
	ballotHandler := handler.NewBallotHandler(ballotSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	router := handler.NewHandler(voterHandler, ballotHandler, adminHandler, authHandler, authSvc)
	server := &stdhttp.Server{Addr: cfg.Addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
