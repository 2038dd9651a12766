// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/1withyin/teen-poll/cliparse"
	"github.com/1withyin/teen-poll/middleware"
	"github.com/1withyin/teen-poll/models"
)

// CatalogHandler serves the static survey definition: categories,
// blocks, questions, and options. These tables are loaded out of band
// and never written by the API.
type CatalogHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCatalogHandler(db *sql.DB, cfg cliparse.Config) *CatalogHandler {
	return &CatalogHandler{db: db, cfg: cfg}
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, category_name, category_text, day_of_week, day_of_week_text,
		       description, category_text_long, version, uuid, sort_order, created_at
		FROM categories
		ORDER BY id
	`)
	if err != nil {
		slog.Error("failed to query categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(
			&c.ID, &c.CategoryName, &c.CategoryText, &c.DayOfWeek, &c.DayOfWeekText,
			&c.Description, &c.CategoryTextLong, &c.Version, &c.UUID, &c.SortOrder, &c.CreatedAt,
		); err != nil {
			slog.Error("failed to scan category", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}
		categories = append(categories, c)
	}

	middleware.JSONResponse(w, http.StatusOK, categories)
}

// ListBlocks handles GET /api/categories/{id}/blocks
func (h *CatalogHandler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category id must be an integer")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, category_id, block_number, block_code, block_text,
		       version, uuid, category_name, created_at
		FROM blocks
		WHERE category_id = $1
		ORDER BY block_number
	`, categoryID)
	if err != nil {
		slog.Error("failed to query blocks", "error", err, "category_id", categoryID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch blocks")
		return
	}
	defer rows.Close()

	blocks := []models.Block{}
	for rows.Next() {
		var b models.Block
		if err := rows.Scan(
			&b.ID, &b.CategoryID, &b.BlockNumber, &b.BlockCode, &b.BlockText,
			&b.Version, &b.UUID, &b.CategoryName, &b.CreatedAt,
		); err != nil {
			slog.Error("failed to scan block", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch blocks")
			return
		}
		blocks = append(blocks, b)
	}

	middleware.JSONResponse(w, http.StatusOK, blocks)
}

// ListQuestions handles GET /api/blocks/{code}/questions
// Block codes are "category_block" pairs, e.g. "1_2" for category 1,
// block 2.
func (h *CatalogHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	categoryID, blockNumber, err := parseBlockCode(r.PathValue("code"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"Invalid block code format. Expected category_block (e.g. 1_1)")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, category_id, question_code, question_number, question_text,
		       check_box, max_select, block_number, block_text, is_start_question,
		       parent_question_id, color_code, version, created_at
		FROM questions
		WHERE category_id = $1 AND block_number = $2
		ORDER BY question_number
	`, categoryID, blockNumber)
	if err != nil {
		slog.Error("failed to query questions", "error", err,
			"category_id", categoryID, "block_number", blockNumber)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch questions")
		return
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(
			&q.ID, &q.CategoryID, &q.QuestionCode, &q.QuestionNumber, &q.QuestionText,
			&q.CheckBox, &q.MaxSelect, &q.BlockNumber, &q.BlockText, &q.IsStartQuestion,
			&q.ParentQuestionID, &q.ColorCode, &q.Version, &q.CreatedAt,
		); err != nil {
			slog.Error("failed to scan question", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch questions")
			return
		}
		questions = append(questions, q)
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// ListOptions handles GET /api/questions/{code}/options
func (h *CatalogHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	questionCode := r.PathValue("code")
	if questionCode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question code is required")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, category_id, question_code, question_number, question_text,
		       check_box, block_number, block_text, option_select, option_code,
		       option_text, response_message, companion_advice, tone_tag,
		       next_question_id, version, created_at
		FROM options
		WHERE question_code = $1
		ORDER BY option_select
	`, questionCode)
	if err != nil {
		slog.Error("failed to query options", "error", err, "question_code", questionCode)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch options")
		return
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var o models.Option
		if err := rows.Scan(
			&o.ID, &o.CategoryID, &o.QuestionCode, &o.QuestionNumber, &o.QuestionText,
			&o.CheckBox, &o.BlockNumber, &o.BlockText, &o.OptionSelect, &o.OptionCode,
			&o.OptionText, &o.ResponseMessage, &o.CompanionAdvice, &o.ToneTag,
			&o.NextQuestionID, &o.Version, &o.CreatedAt,
		); err != nil {
			slog.Error("failed to scan option", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch options")
			return
		}
		options = append(options, o)
	}

	middleware.JSONResponse(w, http.StatusOK, options)
}

func parseBlockCode(code string) (categoryID, blockNumber int, err error) {
	parts := strings.Split(code, "_")
	if len(parts) != 2 {
		return 0, 0, strconv.ErrSyntax
	}
	categoryID, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	blockNumber, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return categoryID, blockNumber, nil
}
