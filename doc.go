// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Teen Poll API server.

Teen Poll is a survey service: participants register with a
client-generated uuid and an accepted birth year, answer single-choice
and multi-select questions, and tallies are computed on demand from
the append-only response tables.

# Starting the Server

The server requires a database URL via environment variable, .env
file, or CLI flag:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 8000 -d "postgres://..." -t postgres

A sqlite backend is available for local development:

	go run main.go -d teenpoll.db -t sqlite

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string or sqlite path

Optional settings:

  - PORT (-p): server port (default: 8000)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - BIRTH_YEAR_MIN / BIRTH_YEAR_MAX: accepted participant birth-year
    window (default: 2007-2012)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (catalog, users, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON and validation helpers
  - models: Request/response types
  - db: Connection opening and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
