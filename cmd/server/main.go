/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the budget projection server: opens the SQLite
  store, optionally imports a seed budget document, wires the HTTP router,
  and runs until interrupted.

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: budget.db)
           Use ":memory:" for an in-memory database
  -seed    Optional budget document (JSON) imported at startup,
           replacing whatever the database holds
  -v       Debug-level logging

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database
  4. Exit

EXAMPLES:
  # Run with a file database
  ./server -db="./data/budget.db"

  # Import a budget document on startup
  ./server -seed=orcamento.json

SEE ALSO:
  - api/server.go: router configuration
  - factory/budget.go: seed document format
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verde/budget-engine/api"
	"github.com/verde/budget-engine/factory"
	"github.com/verde/budget-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "budget.db", "SQLite database path")
	seedPath := flag.String("seed", "", "budget document (JSON) imported at startup")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	// Optional seed import
	if *seedPath != "" {
		raw, err := os.ReadFile(*seedPath)
		if err != nil {
			log.WithError(err).Fatal("failed to read seed document")
		}
		budget, err := factory.ParseBudget(raw)
		if err != nil {
			log.WithError(err).Fatal("invalid seed document")
		}
		if err := store.ReplaceBudget(context.Background(), budget); err != nil {
			log.WithError(err).Fatal("failed to import seed document")
		}
		log.WithFields(logrus.Fields{
			"expenses":     len(budget.Expenses),
			"installments": len(budget.Installments),
		}).Info("seed budget imported")
	}

	// Router and server
	handler := api.NewHandler(store, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
