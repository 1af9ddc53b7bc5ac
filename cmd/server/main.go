/*
main.go - HTTP server entry point

PURPOSE:
  Starts the clinic scheduling API. Wires the in-memory engine, the
  SQLite-backed booking event log, and the chi router, then serves with
  graceful shutdown.

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite event log path (default: clinic.db)
           Use ":memory:" for an in-process audit trail

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the event log
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Event log implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bpc/clinic-engine/api"
	"github.com/bpc/clinic-engine/clinic"
	"github.com/bpc/clinic-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "clinic.db", "SQLite event log path")
	flag.Parse()

	// Initialize event log
	events, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize event log: %v", err)
	}
	defer events.Close()

	// Initialize engine and handler
	engine := clinic.NewEngine(clinic.NewRegistry(), clinic.NewTimetable())
	handler := api.NewHandler(engine, events)

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Clinic scheduling API on http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
