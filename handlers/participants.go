// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/gift-draw/cliparse"
	"github.com/danielhkuo/gift-draw/middleware"
	"github.com/danielhkuo/gift-draw/models"
)

// ParticipantHandler serves the share-slug surface: what participants
// see. Nothing here ever exposes the assignment set or another
// participant's recipient.
type ParticipantHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewParticipantHandler(db *sql.DB, cfg cliparse.Config) *ParticipantHandler {
	return &ParticipantHandler{db: db, cfg: cfg}
}

// groupBySlug resolves a share slug to group ID and status. Returns
// sql.ErrNoRows when the slug matches nothing.
func (h *ParticipantHandler) groupBySlug(slug string) (groupID, status string, err error) {
	err = h.db.QueryRow(`
		SELECT id, status FROM santa_group WHERE share_slug = $1
	`, slug).Scan(&groupID, &status)
	return groupID, status, err
}

// participantByToken resolves the X-Participant-Token header to a
// participant within the given group.
func (h *ParticipantHandler) participantByToken(groupID, token string) (*models.Participant, error) {
	var p models.Participant
	err := h.db.QueryRow(`
		SELECT id, group_id, name, wishlist, created_at
		FROM participant
		WHERE token = $1 AND group_id = $2
	`, token, groupID).Scan(&p.ID, &p.GroupID, &p.Name, &p.Wishlist, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetGroup handles GET /groups/:slug
// Public view: enough for a participant landing page, nothing more.
func (h *ParticipantHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "share slug is required")
		return
	}

	var resp models.GroupPublicResponse
	var drawnAt sql.NullTime
	err := h.db.QueryRow(`
		SELECT g.name, g.status, g.drawn_at, COUNT(p.id)
		FROM santa_group g
		LEFT JOIN participant p ON g.id = p.group_id
		WHERE g.share_slug = $1
		GROUP BY g.name, g.status, g.drawn_at
	`, slug).Scan(&resp.Name, &resp.Status, &drawnAt, &resp.ParticipantCount)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to query group by slug", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if drawnAt.Valid {
		resp.DrawnAt = &drawnAt.Time
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetMyAssignment handles GET /groups/:slug/my-assignment
// Reveals only the caller's own recipient, and only after the draw.
func (h *ParticipantHandler) GetMyAssignment(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	token := r.Header.Get("X-Participant-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "participant token is required")
		return
	}

	groupID, status, err := h.groupBySlug(slug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to query group by slug", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	p, err := h.participantByToken(groupID, token)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid participant token")
		return
	}
	if err != nil {
		slog.Error("failed to query participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusDrawn {
		middleware.ErrorResponse(w, http.StatusConflict, "Draw has not happened yet")
		return
	}

	var resp models.MyAssignmentResponse
	var budget sql.NullString
	err = h.db.QueryRow(`
		SELECT rp.name, rp.wishlist, g.final_budget
		FROM assignment a
		JOIN participant rp ON a.recipient_id = rp.id
		JOIN santa_group g ON a.group_id = g.id
		WHERE a.group_id = $1 AND a.giver_id = $2
	`, groupID, p.ID).Scan(&resp.RecipientName, &resp.RecipientWishlist, &budget)

	if err == sql.ErrNoRows {
		// Drawn group with a participant but no assignment row should
		// not happen; treat it as a server fault, not a 404.
		slog.Error("drawn group missing assignment", "group_id", groupID, "giver_id", p.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Assignment missing")
		return
	}
	if err != nil {
		slog.Error("failed to query assignment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if budget.Valid {
		resp.FinalBudget = budget.String
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// UpdateWishlist handles PUT /groups/:slug/wishlist
// Wishlists stay editable after the draw so recipients see fresh ideas.
func (h *ParticipantHandler) UpdateWishlist(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	token := r.Header.Get("X-Participant-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "participant token is required")
		return
	}

	groupID, _, err := h.groupBySlug(slug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to query group by slug", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	p, err := h.participantByToken(groupID, token)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid participant token")
		return
	}
	if err != nil {
		slog.Error("failed to query participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.UpdateWishlistRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	_, err = h.db.Exec(`
		UPDATE participant SET wishlist = $1 WHERE id = $2
	`, req.Wishlist, p.ID)
	if err != nil {
		slog.Error("failed to update wishlist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}

	slog.Info("wishlist updated", "group_id", groupID, "participant_id", p.ID)

	w.WriteHeader(http.StatusNoContent)
}

// SuggestBudget handles POST /groups/:slug/budget-suggestions
// One suggestion per participant; a second replaces the first. The
// organizer sees amounts only, so suggesting stops once the draw locks
// the budget.
func (h *ParticipantHandler) SuggestBudget(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	token := r.Header.Get("X-Participant-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "participant token is required")
		return
	}

	groupID, status, err := h.groupBySlug(slug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to query group by slug", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	p, err := h.participantByToken(groupID, token)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid participant token")
		return
	}
	if err != nil {
		slog.Error("failed to query participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Budget is final after the draw")
		return
	}

	var req models.SuggestBudgetRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !isPositiveAmount(req.Amount) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "amount must be a positive number")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO budget_suggestion (group_id, participant_id, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, participant_id)
		DO UPDATE SET amount = EXCLUDED.amount, created_at = NOW()
	`, groupID, p.ID, req.Amount)
	if err != nil {
		slog.Error("failed to upsert budget suggestion", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save suggestion")
		return
	}

	slog.Info("budget suggested", "group_id", groupID, "participant_id", p.ID)

	w.WriteHeader(http.StatusCreated)
}
