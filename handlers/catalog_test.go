// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/1withyin/teen-poll/models"
	"github.com/1withyin/teen-poll/testutil"
)

// seedSurvey loads a small survey definition: one category with a
// single-choice question Q1 (options A, B, C) and a checkbox question
// Q2 (options A, B).
func seedSurvey(t *testing.T, conn *sql.DB) {
	t.Helper()

	testutil.CreateTestCategory(t, conn, 1, "Music")
	testutil.CreateTestQuestion(t, conn, 1, 1, "Q1", 1, false)
	testutil.AddTestOption(t, conn, 1, "Q1", "A", "Pop")
	testutil.AddTestOption(t, conn, 1, "Q1", "B", "Rock")
	testutil.AddTestOption(t, conn, 1, "Q1", "C", "Jazz")
	testutil.CreateTestQuestion(t, conn, 2, 1, "Q2", 2, true)
	testutil.AddTestOption(t, conn, 1, "Q2", "A", "Guitar")
	testutil.AddTestOption(t, conn, 1, "Q2", "B", "Drums")
}

func TestListCategories(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCatalogHandler(conn, cfg)

	testutil.CreateTestCategory(t, conn, 2, "School")
	testutil.CreateTestCategory(t, conn, 1, "Music")

	req := testutil.MakeRequest("GET", "/api/categories", nil, nil)
	w := httptest.NewRecorder()
	handler.ListCategories(w, req)

	testutil.AssertStatus(t, w, 200)

	var categories []models.Category
	testutil.AssertJSON(t, w, &categories)

	if len(categories) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(categories))
	}
	// Ordered by id regardless of insertion order
	if categories[0].CategoryName != "Music" || categories[1].CategoryName != "School" {
		t.Errorf("Expected [Music School], got [%s %s]",
			categories[0].CategoryName, categories[1].CategoryName)
	}
}

func TestListCategories_Empty(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewCatalogHandler(conn, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/api/categories", nil, nil)
	w := httptest.NewRecorder()
	handler.ListCategories(w, req)

	testutil.AssertStatus(t, w, 200)

	var categories []models.Category
	testutil.AssertJSON(t, w, &categories)
	if len(categories) != 0 {
		t.Errorf("Expected empty list, got %d categories", len(categories))
	}
}

func TestListBlocks(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewCatalogHandler(conn, testutil.GetTestConfig())

	testutil.CreateTestCategory(t, conn, 1, "Music")
	for i, text := range []string{"first", "second"} {
		_, err := conn.Exec(`
			INSERT INTO blocks (category_id, block_number, block_code, block_text, category_name)
			VALUES ($1, $2, $3, $4, $5)
		`, 1, 2-i, "1_2", text, "Music")
		if err != nil {
			t.Fatalf("Failed to insert block: %v", err)
		}
	}

	req := testutil.MakeRequest("GET", "/api/categories/1/blocks", nil, nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	handler.ListBlocks(w, req)

	testutil.AssertStatus(t, w, 200)

	var blocks []models.Block
	testutil.AssertJSON(t, w, &blocks)
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	// Ordered by block_number
	if blocks[0].BlockNumber != 1 || blocks[1].BlockNumber != 2 {
		t.Errorf("Blocks not ordered by block_number: %d, %d",
			blocks[0].BlockNumber, blocks[1].BlockNumber)
	}
}

func TestListBlocks_BadCategoryID(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewCatalogHandler(conn, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/api/categories/abc/blocks", nil, nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()
	handler.ListBlocks(w, req)

	testutil.AssertStatus(t, w, 400)
}

func TestListQuestions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewCatalogHandler(conn, testutil.GetTestConfig())
	seedSurvey(t, conn)

	tests := []struct {
		name           string
		blockCode      string
		expectedStatus int
		expectedCount  int
	}{
		{"existing block", "1_1", 200, 2},
		{"empty block", "1_9", 200, 0},
		{"malformed code", "bad", 400, 0},
		{"non-numeric parts", "a_b", 400, 0},
		{"too many parts", "1_2_3", 400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/api/blocks/"+tt.blockCode+"/questions", nil, nil)
			req.SetPathValue("code", tt.blockCode)
			w := httptest.NewRecorder()
			handler.ListQuestions(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != 200 {
				return
			}

			var questions []models.Question
			testutil.AssertJSON(t, w, &questions)
			if len(questions) != tt.expectedCount {
				t.Errorf("Expected %d questions, got %d", tt.expectedCount, len(questions))
			}
		})
	}
}

func TestListQuestions_Ordering(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewCatalogHandler(conn, testutil.GetTestConfig())
	seedSurvey(t, conn)

	req := testutil.MakeRequest("GET", "/api/blocks/1_1/questions", nil, nil)
	req.SetPathValue("code", "1_1")
	w := httptest.NewRecorder()
	handler.ListQuestions(w, req)

	var questions []models.Question
	testutil.AssertJSON(t, w, &questions)

	if len(questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(questions))
	}
	if questions[0].QuestionCode != "Q1" || questions[1].QuestionCode != "Q2" {
		t.Errorf("Questions not ordered by question_number: %s, %s",
			questions[0].QuestionCode, questions[1].QuestionCode)
	}
	if questions[0].CheckBox || !questions[1].CheckBox {
		t.Error("check_box flags did not survive the round trip")
	}
}

func TestListOptions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewCatalogHandler(conn, testutil.GetTestConfig())
	seedSurvey(t, conn)

	req := testutil.MakeRequest("GET", "/api/questions/Q1/options", nil, nil)
	req.SetPathValue("code", "Q1")
	w := httptest.NewRecorder()
	handler.ListOptions(w, req)

	testutil.AssertStatus(t, w, 200)

	var options []models.Option
	testutil.AssertJSON(t, w, &options)

	if len(options) != 3 {
		t.Fatalf("Expected 3 options, got %d", len(options))
	}
	// Ordered by option_select
	for i, expected := range []string{"A", "B", "C"} {
		if options[i].OptionSelect != expected {
			t.Errorf("Expected option %d to be %s, got %s", i, expected, options[i].OptionSelect)
		}
	}
	if options[0].OptionText != "Pop" || options[0].OptionCode != "Q1A" {
		t.Errorf("Unexpected first option: %+v", options[0])
	}
}

func TestListOptions_UnknownQuestion(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewCatalogHandler(conn, testutil.GetTestConfig())
	seedSurvey(t, conn)

	req := testutil.MakeRequest("GET", "/api/questions/NOPE/options", nil, nil)
	req.SetPathValue("code", "NOPE")
	w := httptest.NewRecorder()
	handler.ListOptions(w, req)

	// Unknown question codes yield an empty list, not a 404
	testutil.AssertStatus(t, w, 200)

	var options []models.Option
	testutil.AssertJSON(t, w, &options)
	if len(options) != 0 {
		t.Errorf("Expected empty list, got %d options", len(options))
	}
}
