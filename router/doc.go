// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Teen Poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Survey definition (read-only):

	GET /api/categories                - All categories
	GET /api/categories/{id}/blocks    - Blocks of a category
	GET /api/blocks/{code}/questions   - Questions of a block ("1_2")
	GET /api/questions/{code}/options  - Options of a question

Participants:

	POST /api/users - Register (idempotent per uuid)
	GET  /api/users - Debugging list

Vote recording:

	POST /api/vote          - Single-choice vote
	POST /api/checkbox_vote - Weighted multi-select vote
	POST /api/other         - Free-text answer

Results:

	GET /api/results/{code} - On-demand tally for a question

# Handler Initialization

The router creates handler instances with dependency injection:

	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
