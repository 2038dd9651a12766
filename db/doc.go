// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported backends:

  - postgres: production deployments (github.com/lib/pq)
  - sqlite: local development and tests (modernc.org/sqlite, with
    foreign key enforcement switched on)

# Schema Creation

CreateSchema initializes all required tables for the backend:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes.

# Tables

Survey definition (immutable at request time, loaded out of band):

  - categories: survey categories with display text and ordering
  - blocks: ordered question groupings per category
  - questions: question definitions with check_box flag and max_select
  - options: selectable answers keyed by (question_code, option_select)

Responses (append-only):

  - users: participants, one row per client-generated uuid
  - responses: single-choice answers
  - checkbox_responses: multi-select answers, one row per selected
    option with a fractional weight
  - other_responses: free-text answers

Every response row carries a denormalized snapshot of the question and
category text taken at write time; the snapshot is never updated when
definitions change.

# Relationships

	categories 1──* blocks
	categories 1──* questions
	questions  1──* options (via question_code)
	users      1──* responses / checkbox_responses / other_responses

Response tables reference users(user_uuid) with ON DELETE CASCADE.
*/
package db
