// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/1withyin/teen-poll/cliparse"
	"github.com/1withyin/teen-poll/middleware"
	"github.com/1withyin/teen-poll/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /api/results/{code}
// Tallies are computed on demand; nothing is cached between requests.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	questionCode := r.PathValue("code")
	if questionCode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question code is required")
		return
	}

	results, err := ComputeResults(h.db, questionCode)
	if err == ErrQuestionNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to compute results", "error", err, "question_code", questionCode)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error fetching results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		QuestionCode: questionCode,
		Results:      results,
	})
}
