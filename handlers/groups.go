// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/gift-draw/auth"
	"github.com/danielhkuo/gift-draw/cliparse"
	"github.com/danielhkuo/gift-draw/draw"
	"github.com/danielhkuo/gift-draw/middleware"
	"github.com/danielhkuo/gift-draw/models"
)

type GroupHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewGroupHandler(db *sql.DB, cfg cliparse.Config) *GroupHandler {
	return &GroupHandler{db: db, cfg: cfg}
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}

// lockGroup takes the group row lock inside tx and returns the status.
// Every roster mutation goes through this before writing: it serializes
// against executeDraw's own FOR UPDATE, so a mutation racing a draw
// waits for the draw to commit and then sees status drawn.
func lockGroup(tx *sql.Tx, groupID string) (string, error) {
	var status string
	err := tx.QueryRow(`
		SELECT status FROM santa_group
		WHERE id = $1
		FOR UPDATE
	`, groupID).Scan(&status)
	return status, err
}

// CreateGroup handles POST /groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGroupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.OrganizerName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "organizer_name is required")
		return
	}

	// Generate group ID
	groupID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate group ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create group")
		return
	}

	// Admin key and share slug are both derived from the group ID
	adminKey := auth.GenerateAdminKey(groupID, h.cfg.AdminKeySalt)
	shareSlug := auth.GenerateShareSlug(groupID, h.cfg.GroupSlugSalt)

	_, err = h.db.Exec(`
		INSERT INTO santa_group (id, name, organizer_name, status, share_slug, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, groupID, req.Name, req.OrganizerName, models.StatusOpen, shareSlug, time.Now())

	if err != nil {
		slog.Error("failed to insert group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create group")
		return
	}

	slog.Info("group created", "group_id", groupID, "organizer", req.OrganizerName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateGroupResponse{
		GroupID:   groupID,
		AdminKey:  adminKey,
		ShareSlug: shareSlug,
	})
}

// GetGroupAdmin handles GET /groups/:id/admin
// Returns the full organizer view: group, participants, exclusion rules,
// and anonymized budget suggestions.
func (h *GroupHandler) GetGroupAdmin(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(groupID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var group models.Group
	var finalBudget sql.NullString
	var drawnAt sql.NullTime
	err := h.db.QueryRow(`
		SELECT id, name, organizer_name, status, share_slug, final_budget, drawn_at, created_at
		FROM santa_group
		WHERE id = $1
	`, groupID).Scan(
		&group.ID, &group.Name, &group.OrganizerName, &group.Status,
		&group.ShareSlug, &finalBudget, &drawnAt, &group.CreatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to query group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if finalBudget.Valid {
		group.FinalBudget = &finalBudget.String
	}
	if drawnAt.Valid {
		group.DrawnAt = &drawnAt.Time
	}

	// Participants
	rows, err := h.db.Query(`
		SELECT id, group_id, name, wishlist, created_at
		FROM participant
		WHERE group_id = $1
		ORDER BY created_at, id
	`, groupID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.GroupID, &p.Name, &p.Wishlist, &p.CreatedAt); err != nil {
			slog.Error("failed to scan participant", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		participants = append(participants, p)
	}

	// Exclusion rules
	ruleRows, err := h.db.Query(`
		SELECT group_id, participant_a, participant_b, created_at
		FROM exclusion_rule
		WHERE group_id = $1
		ORDER BY created_at
	`, groupID)
	if err != nil {
		slog.Error("failed to query exclusion rules", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer ruleRows.Close()

	rules := []models.ExclusionRule{}
	for ruleRows.Next() {
		var rule models.ExclusionRule
		if err := ruleRows.Scan(&rule.GroupID, &rule.ParticipantA, &rule.ParticipantB, &rule.CreatedAt); err != nil {
			slog.Error("failed to scan exclusion rule", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		rules = append(rules, rule)
	}

	// Budget suggestions, anonymized: amounts only, never who suggested
	sugRows, err := h.db.Query(`
		SELECT amount, created_at
		FROM budget_suggestion
		WHERE group_id = $1
		ORDER BY amount
	`, groupID)
	if err != nil {
		slog.Error("failed to query budget suggestions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer sugRows.Close()

	suggestions := []models.BudgetSuggestion{}
	for sugRows.Next() {
		var s models.BudgetSuggestion
		if err := sugRows.Scan(&s.Amount, &s.CreatedAt); err != nil {
			slog.Error("failed to scan budget suggestion", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		suggestions = append(suggestions, s)
	}

	middleware.JSONResponse(w, http.StatusOK, models.GroupAdminResponse{
		Group:             group,
		Participants:      participants,
		ExclusionRules:    rules,
		BudgetSuggestions: suggestions,
	})
}

// AddParticipant handles POST /groups/:id/participants
func (h *GroupHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
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

	var req models.AddParticipantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	participantID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate participant ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add participant")
		return
	}

	token, err := auth.GenerateParticipantToken()
	if err != nil {
		slog.Error("failed to generate participant token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add participant")
		return
	}

	// Check and insert under the group row lock so additions serialize
	// behind an in-flight draw and observe its status flip
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	status, err := lockGroup(tx, groupID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to lock group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot modify a group after the draw")
		return
	}

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM participant WHERE group_id = $1", groupID).Scan(&count); err != nil {
		slog.Error("failed to count participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if count >= draw.MaxParticipants {
		middleware.ErrorResponse(w, http.StatusConflict, "Group is at the participant limit")
		return
	}

	_, err = tx.Exec(`
		INSERT INTO participant (id, group_id, name, token, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, participantID, groupID, strings.TrimSpace(req.Name), token, time.Now())

	if isUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "A participant with that name already exists")
		return
	}
	if err != nil {
		slog.Error("failed to insert participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add participant")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add participant")
		return
	}

	slog.Info("participant added", "group_id", groupID, "participant_id", participantID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddParticipantResponse{
		ParticipantID:    participantID,
		ParticipantToken: token,
	})
}

// RemoveParticipant handles DELETE /groups/:id/participants/:pid
// Exclusion rules referencing the participant go with them.
func (h *GroupHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	participantID := r.PathValue("pid")
	if groupID == "" || participantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group_id and participant_id are required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(groupID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	status, err := lockGroup(tx, groupID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to lock group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot modify a group after the draw")
		return
	}

	res, err := tx.Exec(`
		DELETE FROM participant
		WHERE id = $1 AND group_id = $2
	`, participantID, groupID)
	if err != nil {
		slog.Error("failed to delete participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove participant")
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit removal", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove participant")
		return
	}

	slog.Info("participant removed", "group_id", groupID, "participant_id", participantID)

	w.WriteHeader(http.StatusNoContent)
}

// AddExclusion handles POST /groups/:id/exclusions
// The rule is symmetric and stored once in canonical order.
func (h *GroupHandler) AddExclusion(w http.ResponseWriter, r *http.Request) {
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

	var req models.ExclusionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ParticipantA == "" || req.ParticipantB == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant_a and participant_b are required")
		return
	}
	if req.ParticipantA == req.ParticipantB {
		middleware.ErrorResponse(w, http.StatusBadRequest, "cannot exclude a participant from themselves")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	status, err := lockGroup(tx, groupID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to lock group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot modify a group after the draw")
		return
	}

	// Both participants must belong to this group
	var members int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM participant
		WHERE group_id = $1 AND id IN ($2, $3)
	`, groupID, req.ParticipantA, req.ParticipantB).Scan(&members)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if members != 2 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found in group")
		return
	}

	a, b := req.ParticipantA, req.ParticipantB
	if b < a {
		a, b = b, a
	}

	// Re-adding an existing rule is a no-op
	_, err = tx.Exec(`
		INSERT INTO exclusion_rule (group_id, participant_a, participant_b, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
	`, groupID, a, b, time.Now())
	if err != nil {
		slog.Error("failed to insert exclusion rule", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add exclusion rule")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit exclusion rule", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add exclusion rule")
		return
	}

	slog.Info("exclusion rule added", "group_id", groupID, "participant_a", a, "participant_b", b)

	middleware.JSONResponse(w, http.StatusCreated, models.ExclusionRule{
		GroupID:      groupID,
		ParticipantA: a,
		ParticipantB: b,
	})
}

// RemoveExclusion handles DELETE /groups/:id/exclusions
func (h *GroupHandler) RemoveExclusion(w http.ResponseWriter, r *http.Request) {
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

	var req models.ExclusionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	status, err := lockGroup(tx, groupID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to lock group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot modify a group after the draw")
		return
	}

	a, b := req.ParticipantA, req.ParticipantB
	if b < a {
		a, b = b, a
	}

	res, err := tx.Exec(`
		DELETE FROM exclusion_rule
		WHERE group_id = $1 AND participant_a = $2 AND participant_b = $3
	`, groupID, a, b)
	if err != nil {
		slog.Error("failed to delete exclusion rule", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove exclusion rule")
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Exclusion rule not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit removal", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove exclusion rule")
		return
	}

	slog.Info("exclusion rule removed", "group_id", groupID, "participant_a", a, "participant_b", b)

	w.WriteHeader(http.StatusNoContent)
}
