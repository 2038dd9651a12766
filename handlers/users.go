// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/1withyin/teen-poll/cliparse"
	"github.com/1withyin/teen-poll/middleware"
	"github.com/1withyin/teen-poll/models"
)

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// Create handles POST /api/users
// Registers a participant before any vote is accepted. Re-posting an
// existing uuid is a no-op, not an error, so the frontend can retry
// freely.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.YearOfBirth < h.cfg.MinBirthYear || req.YearOfBirth > h.cfg.MaxBirthYear {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Invalid year of birth. Must be between %d-%d.",
				h.cfg.MinBirthYear, h.cfg.MaxBirthYear))
		return
	}

	// Normalize the uuid so case variants of the same identifier hit
	// the same users row
	id, err := uuid.Parse(req.UserUUID)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_uuid must be a valid UUID")
		return
	}
	userUUID := id.String()

	_, err = h.db.Exec(`
		INSERT INTO users (user_uuid, year_of_birth, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_uuid) DO NOTHING
	`, userUUID, req.YearOfBirth, time.Now())

	if err != nil {
		slog.Error("failed to insert user", "error", err, "user_uuid", userUUID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "User creation failed")
		return
	}

	slog.Info("user registered", "user_uuid", userUUID)

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Message:  "User created successfully",
		UserUUID: userUUID,
	})
}

// List handles GET /api/users (debugging aid)
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT user_uuid, year_of_birth, created_at FROM users
	`)
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UserUUID, &u.YearOfBirth, &u.CreatedAt); err != nil {
			slog.Error("failed to scan user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch users")
			return
		}
		users = append(users, u)
	}

	middleware.JSONResponse(w, http.StatusOK, models.UsersResponse{Users: users})
}
