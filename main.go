package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gottatrackem/backend/adapters"
	"github.com/gottatrackem/backend/config"
	"github.com/gottatrackem/backend/database"
	"github.com/gottatrackem/backend/database/repositories"
	"github.com/gottatrackem/backend/handlers"
	"github.com/gottatrackem/backend/logger"
	"github.com/gottatrackem/backend/middleware"
	"github.com/gottatrackem/backend/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Initialize logger first
	customHandler := logger.NewHandler("GottaTrackEm")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Gotta Track 'Em backend",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("type", "sys"))

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.SetDefault(slog.New(customHandler.WithLevel(cfg.Log.Level)))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The store is optional: without it the server still serves the
	// catalog, pricing and scan surfaces, and /test reports the state.
	var db *database.DB
	if cfg.StoreConfigured() {
		slog.Info("Connecting to document store...")
		db, err = database.New(ctx, cfg.DB)
		if err != nil {
			slog.Error("Failed to create store client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := db.EnsureIndexes(ctx); err != nil {
			slog.Warn("Failed to ensure store indexes",
				slog.String("type", "db"),
				slog.String("error", err.Error()))
		}
	} else {
		slog.Warn("Document store not configured, collection endpoints disabled",
			slog.String("type", "db"))
	}

	catalog := adapters.NewCatalogAdapter(cfg.Adapters)
	pricing := adapters.NewPricingAdapter(cfg.Adapters)
	ocr := adapters.NewOCRAdapter()
	matcher := adapters.NewImageMatchAdapter()

	var spaces *services.SpacesService
	if cfg.SpacesConfigured() {
		spaces, err = services.NewSpacesService(cfg.Spaces)
		if err != nil {
			slog.Error("Failed to initialize scan archive", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var (
		collectionService *services.CollectionService
		shareService      *services.ShareService
	)
	if db != nil {
		collectionService = services.NewCollectionService(
			repositories.NewUserCardRepository(db),
			repositories.NewActivityRepository(db),
		)
		shareService = services.NewShareService(repositories.NewShareRepository(db))
	}
	scanService := services.NewScanService(ocr, matcher, spaces)

	app := fiber.New(fiber.Config{
		AppName:      "Gotta Track 'Em API",
		ServerHeader: "GottaTrackEm",
		BodyLimit:    10 << 20,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Requested-With",
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggingMiddleware())

	webApp := handlers.NewWebApp(cfg, db, catalog, pricing, scanService, collectionService, shareService)
	webApp.RegisterRoutes(app)

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	go func() {
		slog.Info("HTTP server listening", slog.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			slog.Error("Server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	slog.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", slog.String("error", err.Error()))
	}
	db.Close(shutdownCtx)
	slog.Info("Goodbye")
}
