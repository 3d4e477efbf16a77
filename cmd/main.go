package main

//
//  @title           oilpulse API
//  @version         1.0
//  @description     SPIMEX oil trading-results ingestion & query service.
//  @termsOfService  https://github.com/akarpov/oilpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/akarpov/oilpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        snapshots
//  @tag.description Endpoints for querying ingested trading snapshots
//
//  @tag.name        products
//  @tag.description Product catalog endpoints
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akarpov/oilpulse/config"
	_ "github.com/akarpov/oilpulse/docs" // swagger docs
	"github.com/akarpov/oilpulse/internal/app"
	"github.com/akarpov/oilpulse/internal/ingestion"
	"github.com/akarpov/oilpulse/internal/logger"
	"github.com/akarpov/oilpulse/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the oilpulse application.
//
// Modes (selected via --mode flag):
//   - ingest: Fetches daily trading-result spreadsheets for a range of dates
//     anchored at today and upserts one snapshot per (instrument, date).
//   - api:    Starts the REST API to expose the ingested snapshots.
//
// Flags:
//   - --mode:      Execution mode ("ingest" or "api"). Default: "ingest".
//   - --days:      How many days beyond today to attempt. Default: 5.
//   - --direction: "past" or "future" relative to today. Default: "past".
//   - --port:      Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "ingest", "Mode: ingest or api")
	days := flag.Int("days", 5, "How many days beyond today to attempt (days+1 dates total)")
	direction := flag.String("direction", "past", "Walk direction from today: past or future")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "ingest":
		// Ingestion mode: download reports and persist snapshots
		logger.L().Info().Msg("running ingestion")

		dir := ingestion.Direction(*direction)
		if dir != ingestion.Past && dir != ingestion.Future {
			logger.L().Fatal().Str("direction", *direction).Msg("direction must be past or future")
		}

		policy, err := ingestion.RowErrorPolicyFromString(config.AppConfig.Ingest.RowErrors)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("invalid row error policy")
		}

		// Direct DB connection for ingestion
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		fetcher := ingestion.NewReportFetcher(config.AppConfig.Source.BaseURL, config.AppConfig.Source.DownloadDir)
		repo := storage.NewSnapshotRepository(db)
		pipeline := ingestion.NewPipeline(fetcher, repo, policy, time.Now)

		results := pipeline.Run(ctx, *days, dir)
		for _, res := range results {
			if res.State == ingestion.StateFailed {
				// Per-date failures are already logged; a non-zero exit
				// makes cron notice the run was incomplete.
				logger.L().Fatal().Msg("ingestion finished with failed dates")
			}
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
