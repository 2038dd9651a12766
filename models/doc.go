// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, validated at the boundary with
validator struct tags:

  - CreateUserRequest: user_uuid, year_of_birth
  - VoteRequest: question_code, option_select, user_uuid
  - CheckboxVoteRequest: question_code, option_selects, user_uuid, other_text
  - OtherRequest: question_code, user_uuid, other_text

# Response Types

Types for JSON responses:

  - MessageResponse: message, user_uuid
  - ResultsResponse: question_code, results
  - OptionCount: option_select, count (fractional)
  - UsersResponse: users
  - ErrorResponse: error, message

# Domain Types

One struct per table:

  - Category: survey category with display text and ordering
  - Block: ordered question grouping within a category
  - Question: question definition, check_box flag, max_select
  - Option: selectable answer with per-question option_select key
  - User: participant identified by a client-generated uuid

Response rows (responses, checkbox_responses, other_responses) are
written and aggregated with raw SQL in the handlers and have no
dedicated structs; every row carries a denormalized snapshot of the
question and category text taken at write time.

# Constants

The free-text sentinel:

	OptionOther = "OTHER"
*/
package models
