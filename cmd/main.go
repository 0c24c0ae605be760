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
	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/cache"
	"github.com/padelhub/padel-web/config"
	"github.com/padelhub/padel-web/handlers"
	"github.com/padelhub/padel-web/live"
	"github.com/padelhub/padel-web/repositories"
	api "github.com/padelhub/padel-web/routes"
	"github.com/padelhub/padel-web/services"
	"github.com/padelhub/padel-web/session"
	"github.com/padelhub/padel-web/storage"
)

const shutdownTimeout = 15 * time.Second

// @title						Padel Tournament Web API
// @version					1.0
// @description				Browser-facing API of the padel tournament manager.
// @BasePath					/api
// @securityDefinitions.apikey	SessionCookie
// @in							header
// @name						padel_token
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("api", cfg.APIBaseURL))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var viewCache cache.ViewCache
	if cfg.RedisAddr != "" {
		viewCache, err = cache.NewRedisViewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.PublicCacheTTL)
		if err != nil {
			logger.Error("failed to connect to redis", slog.String("addr", cfg.RedisAddr), slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("public view cache backed by redis", slog.String("addr", cfg.RedisAddr))
	} else {
		viewCache = cache.NewMemoryViewCache(cfg.PublicCacheTTL)
		logger.Info("public view cache kept in memory")
	}
	defer func() {
		if err := viewCache.Close(); err != nil {
			logger.Error("failed to close view cache", slog.Any("error", err))
		}
	}()

	var uploader storage.FileUploader
	if cfg.StorageEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 settings incomplete, receipt uploads disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run(ctx)
	logger.Info("WebSocket Hub started")

	client := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, logger)
	userRepo := repositories.NewAPIUserRepository(client)
	tournamentRepo := repositories.NewAPITournamentRepository(client)
	teamRepo := repositories.NewAPITeamRepository(client)
	groupRepo := repositories.NewAPIGroupRepository(client)
	matchRepo := repositories.NewAPIMatchRepository(client)
	standingRepo := repositories.NewAPIStandingRepository(client)
	adminRepo := repositories.NewAPIAdminRepository(client)

	authService := services.NewAuthService(userRepo, cfg.RedirectDelay, logger)
	tournamentService := services.NewTournamentService(tournamentRepo, groupRepo, matchRepo, hub, viewCache, logger)
	teamService := services.NewTeamService(teamRepo, viewCache, logger)
	boardService := services.NewBoardService(tournamentRepo, matchRepo, teamRepo, groupRepo, hub, viewCache, logger)
	resultService := services.NewResultService(tournamentRepo, matchRepo, hub, viewCache, cfg.RedirectDelay, logger)
	standingsService := services.NewStandingsService(standingRepo, groupRepo, matchRepo, teamRepo, hub, viewCache, logger)
	publicService := services.NewPublicService(tournamentRepo, matchRepo, teamRepo, groupRepo, standingRepo, viewCache, logger)
	adminService := services.NewAdminService(adminRepo, uploader, logger)

	sessions := session.NewManager(cfg.CookieSecure, cfg.CookieDomain)

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, sessions),
		Tournament: handlers.NewTournamentHandler(tournamentService, sessions),
		Team:       handlers.NewTeamHandler(teamService, sessions),
		Board:      handlers.NewBoardHandler(boardService, sessions),
		Result:     handlers.NewResultHandler(resultService, sessions),
		Standings:  handlers.NewStandingsHandler(standingsService, sessions),
		Public:     handlers.NewPublicHandler(publicService, sessions),
		Admin:      handlers.NewAdminHandler(adminService, sessions),
		WebSocket:  handlers.NewWebSocketHandler(hub, cfg.CORSAllowedOrigins, logger),
	}, sessions, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			cancel()
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		// Websocket connections are hijacked; the hub closes them.
		cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
