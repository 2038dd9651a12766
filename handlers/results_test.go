// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/1withyin/teen-poll/models"
	"github.com/1withyin/teen-poll/testutil"
)

// castVote records a single-choice response through the handler
func castVote(t *testing.T, conn *sql.DB, questionCode, optionSelect, userUUID string) {
	t.Helper()

	handler := NewVotingHandler(conn, testutil.GetTestConfig())
	req := testutil.MakeRequest("POST", "/api/vote", models.VoteRequest{
		QuestionCode: questionCode,
		OptionSelect: optionSelect,
		UserUUID:     userUUID,
	}, nil)
	w := httptest.NewRecorder()
	handler.Vote(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)
}

func castCheckboxVote(t *testing.T, conn *sql.DB, questionCode string, selects []string, otherText, userUUID string) {
	t.Helper()

	handler := NewVotingHandler(conn, testutil.GetTestConfig())
	req := testutil.MakeRequest("POST", "/api/checkbox_vote", models.CheckboxVoteRequest{
		QuestionCode:  questionCode,
		OptionSelects: selects,
		UserUUID:      userUUID,
		OtherText:     otherText,
	}, nil)
	w := httptest.NewRecorder()
	handler.CheckboxVote(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)
}

func castOther(t *testing.T, conn *sql.DB, questionCode, otherText, userUUID string) {
	t.Helper()

	handler := NewVotingHandler(conn, testutil.GetTestConfig())
	req := testutil.MakeRequest("POST", "/api/other", models.OtherRequest{
		QuestionCode: questionCode,
		UserUUID:     userUUID,
		OtherText:    otherText,
	}, nil)
	w := httptest.NewRecorder()
	handler.Other(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)
}

func getResults(t *testing.T, conn *sql.DB, questionCode string) models.ResultsResponse {
	t.Helper()

	handler := NewResultsHandler(conn, testutil.GetTestConfig())
	req := testutil.MakeRequest("GET", "/api/results/"+questionCode, nil, nil)
	req.SetPathValue("code", questionCode)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func assertCounts(t *testing.T, results []models.OptionCount, expected map[string]float64) {
	t.Helper()

	if len(results) != len(expected) {
		t.Fatalf("Expected %d entries, got %d: %+v", len(expected), len(results), results)
	}
	prev := ""
	for _, entry := range results {
		if entry.OptionSelect < prev {
			t.Errorf("Results not sorted: %s after %s", entry.OptionSelect, prev)
		}
		prev = entry.OptionSelect

		want, ok := expected[entry.OptionSelect]
		if !ok {
			t.Errorf("Unexpected entry %s", entry.OptionSelect)
			continue
		}
		if math.Abs(entry.Count-want) > 1e-9 {
			t.Errorf("Option %s: expected count %f, got %f", entry.OptionSelect, want, entry.Count)
		}
	}
}

func TestGetResults_SingleChoice(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	seedSurvey(t, conn)
	for i := 0; i < 3; i++ {
		castVote(t, conn, "Q1", "A", testutil.CreateTestUser(t, conn))
	}
	for i := 0; i < 2; i++ {
		castVote(t, conn, "Q1", "B", testutil.CreateTestUser(t, conn))
	}

	resp := getResults(t, conn, "Q1")
	if resp.QuestionCode != "Q1" {
		t.Errorf("Expected question_code Q1, got %s", resp.QuestionCode)
	}
	assertCounts(t, resp.Results, map[string]float64{"A": 3, "B": 2})
}

func TestGetResults_CheckboxWeights(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	seedSurvey(t, conn)
	castCheckboxVote(t, conn, "Q2", []string{"A", "B"}, "", testutil.CreateTestUser(t, conn))
	castCheckboxVote(t, conn, "Q2", []string{"A"}, "", testutil.CreateTestUser(t, conn))

	resp := getResults(t, conn, "Q2")
	assertCounts(t, resp.Results, map[string]float64{"A": 1.5, "B": 0.5})
}

func TestGetResults_MixedTables(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	seedSurvey(t, conn)
	// The same option key across both response tables merges into one
	// entry: a whole vote plus a half vote
	castVote(t, conn, "Q2", "A", testutil.CreateTestUser(t, conn))
	castCheckboxVote(t, conn, "Q2", []string{"A", "B"}, "", testutil.CreateTestUser(t, conn))

	resp := getResults(t, conn, "Q2")
	assertCounts(t, resp.Results, map[string]float64{"A": 1.5, "B": 0.5})
}

func TestGetResults_FreeTextOnlyOther(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	seedSurvey(t, conn)
	castVote(t, conn, "Q1", "A", testutil.CreateTestUser(t, conn))
	castOther(t, conn, "Q1", "K-pop", testutil.CreateTestUser(t, conn))
	castOther(t, conn, "Q1", "Ska", testutil.CreateTestUser(t, conn))

	// With no OTHER key in the merged tables, the free-text count
	// appears whole
	resp := getResults(t, conn, "Q1")
	assertCounts(t, resp.Results, map[string]float64{"A": 1, "OTHER": 2})
}

func TestGetResults_CheckboxOtherSuppressesFreeTextCount(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	seedSurvey(t, conn)
	user := testutil.CreateTestUser(t, conn)
	castCheckboxVote(t, conn, "Q2", []string{"A", models.OptionOther}, "Accordion", user)
	castCheckboxVote(t, conn, "Q2", []string{models.OptionOther}, "Theremin", testutil.CreateTestUser(t, conn))
	// The companion free-text detail row must not add on top of the
	// weighted OTHER entries
	castOther(t, conn, "Q2", "Accordion", user)

	resp := getResults(t, conn, "Q2")
	assertCounts(t, resp.Results, map[string]float64{"A": 0.5, "OTHER": 1.5})
}

func TestGetResults_SingleChoiceOtherSuppressesFreeText(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	seedSurvey(t, conn)
	testutil.AddTestOption(t, conn, 1, "Q1", models.OptionOther, "Something else")
	castVote(t, conn, "Q1", models.OptionOther, testutil.CreateTestUser(t, conn))
	castOther(t, conn, "Q1", "Chiptune", testutil.CreateTestUser(t, conn))

	// The whole-vote OTHER already owns the key, so the free-text
	// count is dropped rather than doubled
	resp := getResults(t, conn, "Q1")
	assertCounts(t, resp.Results, map[string]float64{"OTHER": 1})
}

func TestGetResults_Empty(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	seedSurvey(t, conn)

	resp := getResults(t, conn, "Q1")
	if len(resp.Results) != 0 {
		t.Errorf("Expected empty results, got %+v", resp.Results)
	}
}

func TestGetResults_UnknownQuestion(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	seedSurvey(t, conn)

	handler := NewResultsHandler(conn, testutil.GetTestConfig())
	req := testutil.MakeRequest("GET", "/api/results/NOPE", nil, nil)
	req.SetPathValue("code", "NOPE")
	w := httptest.NewRecorder()
	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetResults_RepeatVotesCount(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	seedSurvey(t, conn)
	user := testutil.CreateTestUser(t, conn)
	castVote(t, conn, "Q1", "C", user)
	castVote(t, conn, "Q1", "C", user)

	resp := getResults(t, conn, "Q1")
	assertCounts(t, resp.Results, map[string]float64{"C": 2})
}
