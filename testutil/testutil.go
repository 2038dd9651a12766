// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/1withyin/teen-poll/cliparse"
	"github.com/1withyin/teen-poll/db"
)

// TestDBURL is the shared in-memory sqlite database used by tests.
// cache=shared keeps the database alive across the pool's connections;
// the busy timeout serializes concurrent writers instead of failing.
const TestDBURL = "file:teenpoll_test?mode=memory&cache=shared&_pragma=busy_timeout(10000)"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Clean up tables before each test
	_, err = conn.Exec(`
		DROP TABLE IF EXISTS other_responses;
		DROP TABLE IF EXISTS checkbox_responses;
		DROP TABLE IF EXISTS responses;
		DROP TABLE IF EXISTS users;
		DROP TABLE IF EXISTS options;
		DROP TABLE IF EXISTS questions;
		DROP TABLE IF EXISTS blocks;
		DROP TABLE IF EXISTS categories;
	`)
	if err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseURL:  TestDBURL,
		DatabaseType: "sqlite",
		MinBirthYear: 2007,
		MaxBirthYear: 2012,
	}
}

// CreateTestCategory inserts a category with an explicit id
func CreateTestCategory(t *testing.T, conn *sql.DB, id int, name string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO categories (id, category_name, category_text, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, name, name+" questions", id, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
}

// CreateTestQuestion inserts a question with an explicit id
func CreateTestQuestion(t *testing.T, conn *sql.DB, id, categoryID int, code string, number int, checkBox bool) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO questions (id, category_id, question_code, question_number, question_text,
		                       check_box, max_select, block_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, categoryID, code, number, "Question "+code, checkBox, maxSelect(checkBox), 1, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
}

func maxSelect(checkBox bool) int {
	if checkBox {
		return 3
	}
	return 1
}

// AddTestOption inserts an option for a question
func AddTestOption(t *testing.T, conn *sql.DB, categoryID int, questionCode, optionSelect, optionText string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO options (category_id, question_code, question_number, option_select,
		                     option_code, option_text, block_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, categoryID, questionCode, 1, optionSelect, questionCode+optionSelect, optionText, 1, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}
}

// CreateTestUser registers a participant and returns its uuid
func CreateTestUser(t *testing.T, conn *sql.DB) string {
	t.Helper()

	userUUID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO users (user_uuid, year_of_birth, created_at)
		VALUES ($1, $2, $3)
	`, userUUID, 2008, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userUUID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
