// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/1withyin/teen-poll/cliparse"
	"github.com/1withyin/teen-poll/middleware"
	"github.com/1withyin/teen-poll/models"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrOptionNotFound   = errors.New("option not found")
)

// questionMeta is the snapshot of question and category fields copied
// onto every response row at write time. It is a copy, not a view:
// later edits to the definition tables do not touch recorded rows.
type questionMeta struct {
	QuestionText   string
	QuestionNumber int
	CategoryName   string
	CategoryID     int
	BlockNumber    int
}

type optionMeta struct {
	OptionText string
	OptionCode string
}

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// lookupQuestion resolves a question code to its denormalization
// snapshot. Returns ErrQuestionNotFound if the code is unknown.
func lookupQuestion(db *sql.DB, questionCode string) (*questionMeta, error) {
	var meta questionMeta
	err := db.QueryRow(`
		SELECT q.question_text, q.question_number, c.category_name, c.id, q.block_number
		FROM questions q
		JOIN categories c ON q.category_id = c.id
		WHERE q.question_code = $1
	`, questionCode).Scan(
		&meta.QuestionText, &meta.QuestionNumber,
		&meta.CategoryName, &meta.CategoryID, &meta.BlockNumber,
	)
	if err == sql.ErrNoRows {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// lookupOption resolves (question_code, option_select) to the option's
// display fields. Returns ErrOptionNotFound if the key is unknown.
func lookupOption(db *sql.DB, questionCode, optionSelect string) (*optionMeta, error) {
	var opt optionMeta
	err := db.QueryRow(`
		SELECT option_text, option_code
		FROM options
		WHERE question_code = $1 AND option_select = $2
	`, questionCode, optionSelect).Scan(&opt.OptionText, &opt.OptionCode)
	if err == sql.ErrNoRows {
		return nil, ErrOptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &opt, nil
}

// isForeignKeyViolation matches the driver error text for a rejected
// reference. pq says "violates foreign key constraint", sqlite says
// "FOREIGN KEY constraint failed".
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// Vote handles POST /api/vote
// Appends one single-choice response row. Repeat votes by the same
// user are accepted and accumulate; there is no upsert.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := lookupQuestion(h.db, req.QuestionCode)
	if err == ErrQuestionNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err, "question_code", req.QuestionCode)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	option, err := lookupOption(h.db, req.QuestionCode, req.OptionSelect)
	if err == ErrOptionNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Option not found")
		return
	}
	if err != nil {
		slog.Error("failed to query option", "error", err,
			"question_code", req.QuestionCode, "option_select", req.OptionSelect)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO responses (
			question_code, option_select, option_code, option_text, user_uuid,
			question_text, question_number, category_name, category_id, block_number, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, req.QuestionCode, req.OptionSelect, option.OptionCode, option.OptionText,
		req.UserUUID, question.QuestionText, question.QuestionNumber,
		question.CategoryName, question.CategoryID, question.BlockNumber, time.Now())

	if err != nil {
		if isForeignKeyViolation(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown user_uuid")
			return
		}
		slog.Error("failed to insert response", "error", err, "question_code", req.QuestionCode)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Vote recording failed")
		return
	}

	slog.Info("vote recorded", "question_code", req.QuestionCode, "option_select", req.OptionSelect)

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Message: "Vote recorded successfully",
	})
}

// CheckboxVote handles POST /api/checkbox_vote
// Splits one vote evenly across the submitted selections and inserts
// one weighted row per selection, all inside a single transaction.
func (h *VotingHandler) CheckboxVote(w http.ResponseWriter, r *http.Request) {
	var req models.CheckboxVoteRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := lookupQuestion(h.db, req.QuestionCode)
	if err == ErrQuestionNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err, "question_code", req.QuestionCode)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// The weight reflects the submitted selection count, not the count
	// that survives option validation. Skipped entries keep the weight
	// of the remaining rows unchanged.
	weight := 1.0 / float64(len(req.OptionSelects))

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	inserted := 0
	for _, optionSelect := range req.OptionSelects {
		var optionCode, optionText string

		if optionSelect == models.OptionOther {
			// Free-text selection: no options row to resolve, the
			// caller-supplied text stands in for the option text
			optionCode = models.OptionOther
			optionText = req.OtherText
			if optionText == "" {
				optionText = models.OptionOther
			}
		} else {
			option, err := lookupOption(h.db, req.QuestionCode, optionSelect)
			if err == ErrOptionNotFound {
				// Leniency policy: unknown keys are dropped, the rest
				// of the submission still counts
				slog.Warn("skipping unknown option in checkbox vote",
					"question_code", req.QuestionCode, "option_select", optionSelect)
				continue
			}
			if err != nil {
				slog.Error("failed to query option", "error", err,
					"question_code", req.QuestionCode, "option_select", optionSelect)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
				return
			}
			optionCode = option.OptionCode
			optionText = option.OptionText
		}

		_, err = tx.Exec(`
			INSERT INTO checkbox_responses (
				question_code, option_select, option_code, option_text, user_uuid,
				question_text, question_number, category_name, category_id, block_number, weight, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, req.QuestionCode, optionSelect, optionCode, optionText,
			req.UserUUID, question.QuestionText, question.QuestionNumber,
			question.CategoryName, question.CategoryID, question.BlockNumber, weight, time.Now())

		if err != nil {
			if isForeignKeyViolation(err) {
				middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown user_uuid")
				return
			}
			slog.Error("failed to insert checkbox response", "error", err,
				"question_code", req.QuestionCode, "option_select", optionSelect)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Checkbox vote recording failed")
			return
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit checkbox vote", "error", err, "question_code", req.QuestionCode)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Checkbox vote recording failed")
		return
	}

	slog.Info("checkbox vote recorded", "question_code", req.QuestionCode,
		"submitted", len(req.OptionSelects), "inserted", inserted)

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Message: "Checkbox vote recorded successfully",
	})
}

// Other handles POST /api/other
// Appends one free-text response row.
func (h *VotingHandler) Other(w http.ResponseWriter, r *http.Request) {
	var req models.OtherRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := lookupQuestion(h.db, req.QuestionCode)
	if err == ErrQuestionNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err, "question_code", req.QuestionCode)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO other_responses (
			question_code, user_uuid, other_text, question_text, question_number,
			category_name, category_id, block_number, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, req.QuestionCode, req.UserUUID, req.OtherText,
		question.QuestionText, question.QuestionNumber,
		question.CategoryName, question.CategoryID, question.BlockNumber, time.Now())

	if err != nil {
		if isForeignKeyViolation(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown user_uuid")
			return
		}
		slog.Error("failed to insert other response", "error", err, "question_code", req.QuestionCode)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Other response recording failed")
		return
	}

	slog.Info("other response recorded", "question_code", req.QuestionCode)

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Message: "Other response recorded successfully",
	})
}
