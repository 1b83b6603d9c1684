package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/frontoffice-ledger/internal/api"
	"github.com/frontoffice-ledger/internal/config"
	"github.com/frontoffice-ledger/internal/logger"
	"github.com/frontoffice-ledger/internal/platform/messaging/producers"
	"github.com/frontoffice-ledger/internal/platform/remote"
	"github.com/frontoffice-ledger/internal/session"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("ledgerd")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize the remote ledger store client
	client := remote.NewClient(log, &cfg.Remote)
	rowStore := remote.NewRowStore(client)
	statsStore := remote.NewStatsStore(client)

	// Initialize Kafka producer for row-saved audit events (optional)
	var events producers.MessagePublisher
	if cfg.Kafka.Enabled {
		producer, err := producers.NewRowSavedProducer(appCtx, log, &cfg.Kafka)
		if err != nil {
			log.Error("Failed to initialize Kafka producer", "error", err)
			os.Exit(1)
		}
		events = producer
	}

	// Initialize the editing session and its collaborators
	saver := session.NewSaver(log, rowStore, events)
	reconciler := session.NewReconciler(log, rowStore, statsStore, &cfg.Reconcile)
	sess := session.NewSession(log, rowStore, saver, reconciler)

	// Open the most recent ledger day before accepting requests
	view := sess.Load(appCtx)
	log.Info("ledger session loaded", "date", view.Date, "dates", len(view.Dates), "rows", len(view.Rows))

	// Initialize REST server
	server := api.NewServer(log, cfg, sess, reconciler)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if events != nil {
		if err = events.Close(); err != nil {
			log.Error("Error closing Kafka producer", "error", err)
		}
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
