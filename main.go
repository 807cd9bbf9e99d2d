// munui/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"munui/boards"
	"munui/config"
	"munui/database"
	"munui/handlers"
	"munui/models"
	"munui/utils"
)

type Application struct {
	db          *database.DatabaseService
	rateLimiter *models.RateLimiter
	logger      *slog.Logger
	publicDir   string
}

// Methods to satisfy the handlers.App interface
func (a *Application) DB() *database.DatabaseService    { return a.db }
func (a *Application) RateLimiter() *models.RateLimiter { return a.rateLimiter }
func (a *Application) Logger() *slog.Logger             { return a.logger }
func (a *Application) PublicDir() string                { return a.publicDir }

func main() {
	initOnly := flag.Bool("init-db", false, "initialize the database schema and exit")
	runBackup := flag.Bool("backup", false, "back up the database and exit")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("MUNUI_CONFIG"))
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AdminKeyHash == "" && cfg.AdminKey == "changeme" {
		logger.Warn("Admin key is the default value; set MUNUI_ADMIN_KEY before exposing this server")
	}

	rateLimitEvery, err := time.ParseDuration(cfg.RateEvery)
	if err != nil {
		logger.Warn("Invalid rate_every duration, using default", "value", cfg.RateEvery, "default", config.DefaultRateLimitEvery)
		rateLimitEvery, _ = time.ParseDuration(config.DefaultRateLimitEvery)
	}
	rateLimitPrune, err := time.ParseDuration(cfg.RatePrune)
	if err != nil {
		logger.Warn("Invalid rate_prune duration, using default", "value", cfg.RatePrune, "default", config.DefaultRateLimitPrune)
		rateLimitPrune, _ = time.ParseDuration(config.DefaultRateLimitPrune)
	}
	rateLimitExpire, err := time.ParseDuration(cfg.RateExpire)
	if err != nil {
		logger.Warn("Invalid rate_expire duration, using default", "value", cfg.RateExpire, "default", config.DefaultRateLimitExpire)
		rateLimitExpire, _ = time.ParseDuration(config.DefaultRateLimitExpire)
	}

	adminKey := utils.NewAdminKey(cfg.AdminKey, cfg.AdminKeyHash)
	dbService, err := database.InitDB(cfg.DBPath, adminKey, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbService.DB.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if *initOnly {
		logger.Info("Database initialized, exiting", "path", cfg.DBPath)
		return
	}
	if *runBackup {
		backupPath, err := dbService.Backup(cfg.BackupDir)
		if err != nil {
			logger.Error("Database backup failed", "error", err)
			os.Exit(1)
		}
		logger.Info("Database backup complete", "path", backupPath)
		return
	}

	app := &Application{
		db:          dbService,
		rateLimiter: models.NewRateLimiter(rateLimitEvery, cfg.RateBurst, rateLimitPrune, rateLimitExpire),
		logger:      logger,
		publicDir:   cfg.PublicDir,
	}

	mux := handlers.SetupRouter(app)

	// --- Graceful Shutdown ---
	server := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	boardSlugs := make([]string, 0, len(boards.List()))
	for _, b := range boards.List() {
		boardSlugs = append(boardSlugs, b.Slug)
	}
	logger.Info("munui server started successfully",
		"version", config.AppVersion,
		"address", cfg.Addr,
		"boards", boardSlugs,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("Server exiting")
}
