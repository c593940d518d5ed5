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
	_ "github.com/lib/pq"

	"github.com/gspevents/event-admin/config"
	"github.com/gspevents/event-admin/db"
	"github.com/gspevents/event-admin/handlers"
	"github.com/gspevents/event-admin/live"
	"github.com/gspevents/event-admin/notify"
	"github.com/gspevents/event-admin/repositories"
	api "github.com/gspevents/event-admin/routes"
	"github.com/gspevents/event-admin/services"
	"github.com/gspevents/event-admin/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	// Photo uploads stay disabled when R2 is not configured.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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
		logger.Warn("R2 storage not configured, photo uploads disabled")
	}

	// Schedule announcements stay disabled when Discord is not configured.
	var poster services.AnnouncementPoster
	if cfg.DiscordConfigured() {
		discord, err := notify.NewDiscordNotifier(cfg.DiscordToken, cfg.DiscordChannelID)
		if err != nil {
			logger.Error("failed to initialize Discord notifier", slog.Any("error", err))
			os.Exit(1)
		}
		defer discord.Close()
		poster = discord
		logger.Info("Discord notifier initialized")
	} else {
		logger.Warn("Discord not configured, schedule announcements disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("console hub started")

	adminUserRepo := repositories.NewPostgresAdminUserRepository(dbConn)
	hostRepo := repositories.NewPostgresHostRepository(dbConn)
	venueRepo := repositories.NewPostgresVenueRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)

	authService := services.NewAuthService(adminUserRepo, cfg.JWTSecretKey)
	hostService := services.NewHostService(hostRepo)
	venueService := services.NewVenueService(venueRepo)
	teamService := services.NewTeamService(teamRepo, scoreRepo, cfg.SeasonStart, cfg.SeasonEnd)
	eventService := services.NewEventService(eventRepo, venueRepo, hostRepo, hub, logger)
	reportService := services.NewReportService(venueRepo, eventRepo)
	scheduleService := services.NewScheduleService(venueRepo, hub, poster, logger)

	authHandler := handlers.NewAuthHandler(authService)
	hostHandler := handlers.NewHostHandler(hostService)
	venueHandler := handlers.NewVenueHandler(venueService)
	teamHandler := handlers.NewTeamHandler(teamService)
	eventHandler := handlers.NewEventHandler(eventService)
	reportHandler := handlers.NewReportHandler(reportService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	uploadHandler := handlers.NewUploadHandler(uploader)
	webSocketHandler := handlers.NewWebSocketHandler(hub)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		cfg.AllowedOrigins,
		authHandler,
		hostHandler,
		venueHandler,
		teamHandler,
		eventHandler,
		reportHandler,
		scheduleHandler,
		uploadHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
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
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
