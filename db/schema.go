// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open opens a database handle for the configured backend.
// databaseType is "postgres" or "sqlite".
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	switch databaseType {
	case "postgres":
		return sql.Open("postgres", databaseURL)
	case "sqlite":
		return sql.Open("sqlite", sqliteDSN(databaseURL))
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}
}

// sqliteDSN forces foreign key enforcement onto the DSN. sqlite ships
// with foreign keys off per connection, and the response tables rely
// on the users(user_uuid) reference; a pragma in the DSN applies to
// every connection the pool opens.
func sqliteDSN(databaseURL string) string {
	dsn := databaseURL
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, databaseType string) error {
	ddl := schemaPostgres
	if databaseType == "sqlite" {
		ddl = schemaSQLite
	}
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schemaPostgres = `
-- Survey definition tables (loaded out of band, immutable at request time)

CREATE TABLE IF NOT EXISTS categories (
    id SERIAL PRIMARY KEY,
    category_name VARCHAR(100) NOT NULL,
    category_text TEXT,
    day_of_week TEXT,
    day_of_week_text TEXT,
    description TEXT,
    category_text_long TEXT,
    version VARCHAR(20),
    uuid TEXT UNIQUE,
    sort_order INTEGER DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS blocks (
    id SERIAL PRIMARY KEY,
    category_id INTEGER REFERENCES categories(id),
    block_number INTEGER,
    block_code VARCHAR(50),
    block_text TEXT,
    version VARCHAR(20),
    uuid TEXT UNIQUE,
    category_name VARCHAR(100),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS questions (
    id SERIAL PRIMARY KEY,
    category_id INTEGER REFERENCES categories(id),
    question_code VARCHAR(50),
    question_number INTEGER,
    question_text TEXT,
    check_box BOOLEAN DEFAULT FALSE,
    max_select INTEGER DEFAULT 1,
    block_number INTEGER,
    block_text TEXT,
    is_start_question BOOLEAN DEFAULT FALSE,
    parent_question_id INTEGER,
    color_code VARCHAR(20),
    version VARCHAR(20),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS options (
    id SERIAL PRIMARY KEY,
    category_id INTEGER REFERENCES categories(id),
    question_code VARCHAR(50),
    question_number INTEGER,
    question_text TEXT,
    check_box BOOLEAN DEFAULT FALSE,
    block_number INTEGER,
    block_text TEXT,
    option_select VARCHAR(50),
    option_code VARCHAR(50),
    option_text TEXT,
    response_message TEXT,
    companion_advice TEXT,
    tone_tag VARCHAR(50),
    next_question_id INTEGER,
    version VARCHAR(20),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Response tables (append-only)

CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    user_uuid TEXT UNIQUE NOT NULL,
    year_of_birth INTEGER NOT NULL CHECK (year_of_birth >= 1900 AND year_of_birth <= 2024),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS responses (
    id SERIAL PRIMARY KEY,
    user_uuid TEXT NOT NULL REFERENCES users(user_uuid) ON DELETE CASCADE,
    question_code VARCHAR(50) NOT NULL,
    question_text TEXT NOT NULL,
    question_number INTEGER,
    category_id INTEGER,
    category_name VARCHAR(100) NOT NULL,
    category_text TEXT,
    option_id INTEGER,
    option_select VARCHAR(10) NOT NULL,
    option_code VARCHAR(50) NOT NULL,
    option_text TEXT NOT NULL,
    block_number INTEGER,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS checkbox_responses (
    id SERIAL PRIMARY KEY,
    user_uuid TEXT NOT NULL REFERENCES users(user_uuid) ON DELETE CASCADE,
    question_code VARCHAR(50) NOT NULL,
    question_text TEXT NOT NULL,
    question_number INTEGER,
    category_id INTEGER,
    category_name VARCHAR(100) NOT NULL,
    category_text TEXT,
    option_id INTEGER,
    option_select VARCHAR(10) NOT NULL,
    option_code VARCHAR(50) NOT NULL,
    option_text TEXT NOT NULL,
    block_number INTEGER,
    weight REAL DEFAULT 1.0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (user_uuid, question_code, option_select, created_at)
);

CREATE TABLE IF NOT EXISTS other_responses (
    id SERIAL PRIMARY KEY,
    user_uuid TEXT NOT NULL REFERENCES users(user_uuid) ON DELETE CASCADE,
    question_code VARCHAR(50) NOT NULL,
    question_text TEXT NOT NULL,
    question_number INTEGER,
    category_id INTEGER,
    category_name VARCHAR(100) NOT NULL,
    category_text TEXT,
    block_number INTEGER,
    other_text TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_blocks_category ON blocks(category_id);
CREATE INDEX IF NOT EXISTS idx_questions_code ON questions(question_code);
CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category_id);
CREATE INDEX IF NOT EXISTS idx_options_question ON options(question_code);
CREATE INDEX IF NOT EXISTS idx_users_uuid ON users(user_uuid);
CREATE INDEX IF NOT EXISTS idx_responses_user ON responses(user_uuid);
CREATE INDEX IF NOT EXISTS idx_responses_question ON responses(question_code);
CREATE INDEX IF NOT EXISTS idx_checkbox_responses_user ON checkbox_responses(user_uuid);
CREATE INDEX IF NOT EXISTS idx_checkbox_responses_question ON checkbox_responses(question_code);
CREATE INDEX IF NOT EXISTS idx_other_responses_user ON other_responses(user_uuid);
CREATE INDEX IF NOT EXISTS idx_other_responses_question ON other_responses(question_code);
`

// Same tables for sqlite. Differences are kept to the DDL: rowid keys
// instead of SERIAL, and no VARCHAR length enforcement (sqlite treats
// them as TEXT). Query SQL elsewhere sticks to the shared dialect.
const schemaSQLite = `
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY,
    category_name TEXT NOT NULL,
    category_text TEXT,
    day_of_week TEXT,
    day_of_week_text TEXT,
    description TEXT,
    category_text_long TEXT,
    version TEXT,
    uuid TEXT UNIQUE,
    sort_order INTEGER DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS blocks (
    id INTEGER PRIMARY KEY,
    category_id INTEGER REFERENCES categories(id),
    block_number INTEGER,
    block_code TEXT,
    block_text TEXT,
    version TEXT,
    uuid TEXT UNIQUE,
    category_name TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY,
    category_id INTEGER REFERENCES categories(id),
    question_code TEXT,
    question_number INTEGER,
    question_text TEXT,
    check_box BOOLEAN DEFAULT FALSE,
    max_select INTEGER DEFAULT 1,
    block_number INTEGER,
    block_text TEXT,
    is_start_question BOOLEAN DEFAULT FALSE,
    parent_question_id INTEGER,
    color_code TEXT,
    version TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS options (
    id INTEGER PRIMARY KEY,
    category_id INTEGER REFERENCES categories(id),
    question_code TEXT,
    question_number INTEGER,
    question_text TEXT,
    check_box BOOLEAN DEFAULT FALSE,
    block_number INTEGER,
    block_text TEXT,
    option_select TEXT,
    option_code TEXT,
    option_text TEXT,
    response_message TEXT,
    companion_advice TEXT,
    tone_tag TEXT,
    next_question_id INTEGER,
    version TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY,
    user_uuid TEXT UNIQUE NOT NULL,
    year_of_birth INTEGER NOT NULL CHECK (year_of_birth >= 1900 AND year_of_birth <= 2024),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS responses (
    id INTEGER PRIMARY KEY,
    user_uuid TEXT NOT NULL REFERENCES users(user_uuid) ON DELETE CASCADE,
    question_code TEXT NOT NULL,
    question_text TEXT NOT NULL,
    question_number INTEGER,
    category_id INTEGER,
    category_name TEXT NOT NULL,
    category_text TEXT,
    option_id INTEGER,
    option_select TEXT NOT NULL,
    option_code TEXT NOT NULL,
    option_text TEXT NOT NULL,
    block_number INTEGER,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS checkbox_responses (
    id INTEGER PRIMARY KEY,
    user_uuid TEXT NOT NULL REFERENCES users(user_uuid) ON DELETE CASCADE,
    question_code TEXT NOT NULL,
    question_text TEXT NOT NULL,
    question_number INTEGER,
    category_id INTEGER,
    category_name TEXT NOT NULL,
    category_text TEXT,
    option_id INTEGER,
    option_select TEXT NOT NULL,
    option_code TEXT NOT NULL,
    option_text TEXT NOT NULL,
    block_number INTEGER,
    weight REAL DEFAULT 1.0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (user_uuid, question_code, option_select, created_at)
);

CREATE TABLE IF NOT EXISTS other_responses (
    id INTEGER PRIMARY KEY,
    user_uuid TEXT NOT NULL REFERENCES users(user_uuid) ON DELETE CASCADE,
    question_code TEXT NOT NULL,
    question_text TEXT NOT NULL,
    question_number INTEGER,
    category_id INTEGER,
    category_name TEXT NOT NULL,
    category_text TEXT,
    block_number INTEGER,
    other_text TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_blocks_category ON blocks(category_id);
CREATE INDEX IF NOT EXISTS idx_questions_code ON questions(question_code);
CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category_id);
CREATE INDEX IF NOT EXISTS idx_options_question ON options(question_code);
CREATE INDEX IF NOT EXISTS idx_users_uuid ON users(user_uuid);
CREATE INDEX IF NOT EXISTS idx_responses_user ON responses(user_uuid);
CREATE INDEX IF NOT EXISTS idx_responses_question ON responses(question_code);
CREATE INDEX IF NOT EXISTS idx_checkbox_responses_user ON checkbox_responses(user_uuid);
CREATE INDEX IF NOT EXISTS idx_checkbox_responses_question ON checkbox_responses(question_code);
CREATE INDEX IF NOT EXISTS idx_other_responses_user ON other_responses(user_uuid);
CREATE INDEX IF NOT EXISTS idx_other_responses_question ON other_responses(question_code);
`
