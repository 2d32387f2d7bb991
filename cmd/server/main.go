// Package main initializes and starts the Receipts and Insights web front
// end, setting up configuration, logging, the optional auth journal, the
// auth API client, handlers and the session gate.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/receipts/internal/client/api"
	"github.com/atinyakov/receipts/internal/config"
	"github.com/atinyakov/receipts/internal/db"
	"github.com/atinyakov/receipts/internal/logger"
	"github.com/atinyakov/receipts/internal/middleware"
	"github.com/atinyakov/receipts/internal/models"
	"github.com/atinyakov/receipts/internal/repository"
	"github.com/atinyakov/receipts/internal/server/handler/http"
	"github.com/atinyakov/receipts/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, .env, config file and environment configuration.
	options := config.Parse()
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(cmp.Or(options.LogLevel, logger.LevelFor(options.Env))); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// The journal only persists events when a database is configured.
	var events service.EventRepository
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer postgresDB.Close()

		eventRepo := repository.NewPostgresEventRepository(postgresDB)
		db.NewEventCleaner(eventRepo,
			time.Hour,       // interval
			30*24*time.Hour, // retention: 30 days
			zapLogger,
		).Start(context.Background())
		events = eventRepo
	} else {
		zapLogger.Info("no database configured, auth journal is log only")
	}
	journal := service.NewJournalService(events, zapLogger)

	// Remote auth API used by the logout action.
	authAPI := api.New(options.Routes, api.WithLogger(zapLogger))
	if options.LogoutURL() == "" {
		zapLogger.Warn("logout endpoint is not configured, remote logout will be skipped")
	}

	pageHandler := &http.PageHandler{Logger: zapLogger}
	sessionHandler := &http.SessionHandler{
		AuthAPI: authAPI,
		Journal: journal,
		Logger:  zapLogger,
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(pageHandler, sessionHandler, zapLogger, middleware.GateConfig{
		Routes:  models.DefaultRoutes(),
		Journal: journal,
	})

	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", addr),
		zap.String("env", options.Env),
		zap.String("api", options.APIBaseURL),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
