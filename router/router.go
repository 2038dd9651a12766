// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/1withyin/teen-poll/cliparse"
	"github.com/1withyin/teen-poll/handlers"
	"github.com/1withyin/teen-poll/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Survey definition lookups (read-only)
	mux.HandleFunc("GET /api/categories", middleware.WithLogging(catalogHandler.ListCategories))
	mux.HandleFunc("GET /api/categories/{id}/blocks", middleware.WithLogging(catalogHandler.ListBlocks))
	mux.HandleFunc("GET /api/blocks/{code}/questions", middleware.WithLogging(catalogHandler.ListQuestions))
	mux.HandleFunc("GET /api/questions/{code}/options", middleware.WithLogging(catalogHandler.ListOptions))

	// Participants
	mux.HandleFunc("POST /api/users", middleware.WithLogging(userHandler.Create))
	mux.HandleFunc("GET /api/users", middleware.WithLogging(userHandler.List))

	// Vote recording
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(votingHandler.Vote))
	mux.HandleFunc("POST /api/checkbox_vote", middleware.WithLogging(votingHandler.CheckboxVote))
	mux.HandleFunc("POST /api/other", middleware.WithLogging(votingHandler.Other))

	// Results
	mux.HandleFunc("GET /api/results/{code}", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("teen-poll API v1"))
	})

	return mux
}
