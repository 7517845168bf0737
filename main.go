package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/diegohideky/poker-shark/internal/config"
	"github.com/diegohideky/poker-shark/internal/database"
	server "github.com/diegohideky/poker-shark/internal/http"
	"github.com/diegohideky/poker-shark/internal/league"
	"github.com/diegohideky/poker-shark/internal/metrics"
	"github.com/diegohideky/poker-shark/internal/money"
	"github.com/diegohideky/poker-shark/internal/notifier/slack"
	"github.com/diegohideky/poker-shark/internal/processor"
	"github.com/diegohideky/poker-shark/internal/pubsub"
	"github.com/diegohideky/poker-shark/internal/ranking"
	"github.com/diegohideky/poker-shark/internal/sheets"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	loc, err := time.LoadLocation(cfg.Ranking.Timezone)
	if err != nil {
		log.Fatalf("Invalid RANKING_TIMEZONE %q: %s", cfg.Ranking.Timezone, err)
	}

	leagueStore := league.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	formatter := money.NewFormatter(cfg.Currency.Symbol, cfg.Currency.Locale)
	coins := ranking.NewCoinConverter(cfg.Ranking.CoinMultiplier)
	rankingSvc := ranking.NewService(leagueStore, coins, loc)

	// The legacy spreadsheet source is optional; without a spreadsheet id the
	// /ranking/legacy route reports unavailable.
	var legacy *sheets.Source
	if cfg.Sheets.SpreadsheetID != "" {
		sheetsClient, err := sheets.NewClient(context.Background(), cfg.Sheets.SpreadsheetID, cfg.Sheets.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize sheets client: %s", err)
		}
		legacy = sheets.NewSource(sheetsClient, coins, sheets.Ranges{
			Current:     cfg.Sheets.CurrentRange,
			Previous:    cfg.Sheets.PreviousRange,
			Pot:         cfg.Sheets.PotRange,
			AltCurrent:  cfg.Sheets.AltCurrentRange,
			AltPrevious: cfg.Sheets.AltPreviousRange,
		}, metricsSvc)
	}

	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, formatter, metricsSvc)
	pubsub := pubsub.New(cfg.ProjectID)
	defaultUnit, err := ranking.ParseUnit(cfg.Ranking.DefaultUnit)
	if err != nil {
		log.Fatalf("Invalid RANKING_DEFAULT_UNIT %q: %s", cfg.Ranking.DefaultUnit, err)
	}
	processor := processor.New(leagueStore, rankingSvc, notifier, metricsSvc, pubsub, defaultUnit)

	s := server.NewServer(
		leagueStore,
		rankingSvc,
		legacy,
		formatter,
		metricsSvc,
		metricsHandler,
		cfg,
		notifier,
		processor,
		pubsub,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
