// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/danielhkuo/gift-draw/auth"
	"github.com/danielhkuo/gift-draw/cliparse"
	"github.com/danielhkuo/gift-draw/draw"
	"github.com/danielhkuo/gift-draw/middleware"
	"github.com/danielhkuo/gift-draw/models"
	"github.com/danielhkuo/gift-draw/notify"
)

type DrawHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	notifier notify.Notifier
}

func NewDrawHandler(db *sql.DB, cfg cliparse.Config, notifier notify.Notifier) *DrawHandler {
	return &DrawHandler{db: db, cfg: cfg, notifier: notifier}
}

// isPositiveAmount reports whether s is a finite positive number.
// ParseFloat alone would admit "NaN" and "Inf", which Postgres NUMERIC
// accepts and which break amount comparisons downstream.
func isPositiveAmount(s string) bool {
	amount, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount > 0
}

// ValidateDraw handles GET /groups/:id/draw/validate
// Read-only dry run; calling it any number of times changes nothing.
func (h *DrawHandler) ValidateDraw(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group_id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(groupID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	validation, err := validateDraw(r.Context(), h.db, groupID)
	if errors.Is(err, ErrGroupNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to validate draw", "group_id", groupID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, validation)
}

// ExecuteDraw handles POST /groups/:id/draw
// The draw happens exactly once per group; repeated calls get 409 and
// the stored result is never regenerated.
func (h *DrawHandler) ExecuteDraw(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group_id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(groupID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.ExecuteDrawRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.FinalBudget != "" && !isPositiveAmount(req.FinalBudget) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "final_budget must be a positive number")
		return
	}

	result, err := executeDraw(r.Context(), h.db, groupID, req.FinalBudget)
	if err != nil {
		h.writeDrawError(w, groupID, err)
		return
	}

	slog.Info("draw executed",
		"group_id", groupID,
		"assignments", result.Assignments,
		"completed_at", result.CompletedAt,
	)

	// The draw is committed; notification failure is logged, never
	// surfaced to the organizer.
	ev := notify.NewEvent(groupID, result.ParticipantIDs, result.CompletedAt)
	if err := h.notifier.DrawCompleted(r.Context(), ev); err != nil {
		slog.Error("failed to publish draw-completed event",
			"group_id", groupID, "event_id", ev.EventID, "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ExecuteDrawResponse{
		AssignmentCount: result.Assignments,
		DrawCompletedAt: result.CompletedAt,
		FinalBudget:     result.FinalBudget,
	})
}

// writeDrawError maps executeDraw failures onto HTTP statuses.
func (h *DrawHandler) writeDrawError(w http.ResponseWriter, groupID string, err error) {
	var completed *AlreadyCompletedError
	var infeasible *draw.InfeasibleError
	var invalidRule *draw.InvalidRuleError
	var exhausted *draw.ExhaustedError

	switch {
	case errors.Is(err, ErrGroupNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")

	case errors.As(err, &completed):
		middleware.ErrorResponse(w, http.StatusConflict, completed.Error())

	case errors.As(err, &infeasible):
		middleware.ErrorResponse(w, http.StatusConflict, infeasible.Error())

	case errors.As(err, &invalidRule):
		middleware.ErrorResponse(w, http.StatusConflict, invalidRule.Error())

	case errors.As(err, &exhausted):
		// Validation passed but generation ran out of attempts. Rare
		// enough to want the full context in the log.
		slog.Error("draw generation exhausted",
			"group_id", groupID,
			"participants", exhausted.Participants,
			"rules", exhausted.Rules,
			"attempts", exhausted.Attempts,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate assignments")

	default:
		slog.Error("failed to execute draw", "group_id", groupID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to execute draw")
	}
}
