// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Teen Poll API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - CatalogHandler: survey definition lookups (categories, blocks,
    questions, options)
  - UserHandler: participant registration
  - VotingHandler: single-choice, checkbox, and free-text recording
  - ResultsHandler: on-demand per-question tallies

Handlers are created via constructor functions that accept *sql.DB and
Config:

	votingHandler := handlers.NewVotingHandler(db, cfg)

# Recording Flow

A participant registers once, then votes:

	POST /api/users         → Create (birth-year window, idempotent)
	POST /api/vote          → Vote (one row per call, no dedup)
	POST /api/checkbox_vote → CheckboxVote (one weighted row per selection)
	POST /api/other         → Other (one free-text row)

All writes are pure appends. Every inserted row carries a denormalized
snapshot of the question and category text resolved at write time.

# Checkbox Weighting

A checkbox submission selecting k options splits one vote evenly:
weight = 1/k per inserted row, computed from the submitted list before
any validation. Unknown option keys are skipped without failing the
submission; the "OTHER" sentinel is stored directly with the supplied
free text. All rows of one submission share a transaction.

# Result Aggregation

The tally for a question is computed on demand in tally.go:

	results, err := ComputeResults(db, questionCode)

Single-choice counts and checkbox weight sums merge per option key;
standalone free-text answers count whole unless checkbox OTHER rows
already represent them. See ComputeResults for the exact merge rules.

# Error Taxonomy

  - 400: malformed body, failed validation, out-of-range birth year,
    unknown user_uuid on a vote
  - 404: unknown question or option code
  - 500: storage failures (logged, transaction rolled back)
*/
package handlers
