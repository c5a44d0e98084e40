// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/feedback-notes/cliparse"
	"github.com/danielhkuo/feedback-notes/handlers"
	"github.com/danielhkuo/feedback-notes/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	feedbackHandler := handlers.NewFeedbackHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("GET /{$}", middleware.WithLogging(userHandler.RedirectRoot))
	mux.HandleFunc("GET /register", middleware.WithLogging(userHandler.ShowRegister))
	mux.HandleFunc("POST /register", middleware.WithLogging(userHandler.Register))
	mux.HandleFunc("GET /login", middleware.WithLogging(userHandler.ShowLogin))
	mux.HandleFunc("POST /login", middleware.WithLogging(userHandler.Login))
	mux.HandleFunc("POST /logout", middleware.WithLogging(userHandler.Logout))
	mux.HandleFunc("GET /users/{username}", middleware.WithLogging(middleware.NoCache(userHandler.ShowUser)))
	mux.HandleFunc("POST /users/{username}/delete", middleware.WithLogging(userHandler.DeleteUser))

	// Feedback
	mux.HandleFunc("GET /users/{username}/feedback/add", middleware.WithLogging(middleware.NoCache(feedbackHandler.ShowAdd)))
	mux.HandleFunc("POST /users/{username}/feedback/add", middleware.WithLogging(feedbackHandler.Add))
	mux.HandleFunc("GET /feedback/{id}/update", middleware.WithLogging(middleware.NoCache(feedbackHandler.ShowEdit)))
	mux.HandleFunc("POST /feedback/{id}/update", middleware.WithLogging(feedbackHandler.Edit))
	mux.HandleFunc("POST /feedback/{id}/delete", middleware.WithLogging(feedbackHandler.Delete))

	return mux
}
