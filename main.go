package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/movienight/ranker/auth"
	"github.com/movienight/ranker/cliparse"
	"github.com/movienight/ranker/db"
	"github.com/movienight/ranker/notify"
	"github.com/movienight/ranker/router"
)

func main() {
	var err error

	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Bootstrap the configured admin
	if cfg.AdminExternalID != "" {
		if _, err := auth.EnsureVoter(dbConn, cfg.AdminExternalID, ""); err != nil {
			slog.Error("admin bootstrap failed", "error", err)
			os.Exit(1)
		}
		if err := auth.PromoteAdmin(dbConn, cfg.AdminExternalID); err != nil {
			slog.Error("admin promotion failed", "error", err)
			os.Exit(1)
		}
		slog.Info("admin bootstrapped", "external_id", cfg.AdminExternalID)
	}

	// Pick the delivery backend
	var notifier notify.Notifier
	if cfg.BotToken != "" {
		notifier = notify.NewTelegram(cfg.BotToken)
		slog.Info("delivery: telegram")
	} else {
		notifier = notify.Log{}
		slog.Info("delivery: log only (no BOT_TOKEN)")
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, notifier)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
