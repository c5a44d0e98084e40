package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/feedback-notes/auth"
	"github.com/danielhkuo/feedback-notes/cliparse"
	"github.com/danielhkuo/feedback-notes/db"
	"github.com/danielhkuo/feedback-notes/middleware"
	"github.com/danielhkuo/feedback-notes/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// gen-secret prints a fresh SESSION_SECRET and exits
	if len(os.Args) > 1 && os.Args[1] == "gen-secret" {
		secret, err := auth.GenerateSecret(32)
		if err != nil {
			slog.Error("failed to generate secret", "error", err)
			os.Exit(1)
		}
		fmt.Println(secret)
		return
	}

	// A missing .env is fine; real environment variables still apply
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	mux := router.NewRouter(dbConn, cfg)

	server := &http.Server{
		Handler:           middleware.SecurityHeaders(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "error", err)
		os.Exit(1)
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	slog.Info("Listening", "port", cfg.Port)
	if err := serve(server, ln, ctrlc); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// serve runs server on ln until stop fires, then waits up to
// shutdownTimeout for in-flight requests before returning.
func serve(server *http.Server, ln net.Listener, stop <-chan os.Signal) error {
	shutdown := make(chan error, 1)
	go func() {
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(ctx)
		if err != nil {
			server.Close()
		}
		shutdown <- err
	}()

	// Serve returns as soon as Shutdown begins; the drain finishes later
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdown; err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
