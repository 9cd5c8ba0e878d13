// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/gift-draw/draw"
	"github.com/danielhkuo/gift-draw/models"
)

// drawTimeout bounds a single ValidateDraw or ExecuteDraw call,
// including all database work and assignment generation.
const drawTimeout = 5 * time.Second

// ErrGroupNotFound is returned when the group ID matches no row.
var ErrGroupNotFound = errors.New("group not found")

// AlreadyCompletedError rejects a second ExecuteDraw on a drawn group.
// The first draw's result stands; callers map this to 409.
type AlreadyCompletedError struct {
	GroupID string
	DrawnAt time.Time
}

func (e *AlreadyCompletedError) Error() string {
	return fmt.Sprintf("draw for group %s already completed at %s", e.GroupID, e.DrawnAt.Format(time.RFC3339))
}

// queryer is satisfied by both *sql.DB and *sql.Tx so roster loading
// can run inside or outside the draw transaction.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// drawResult is what ExecuteDraw hands back after commit.
type drawResult struct {
	ParticipantIDs []string
	Assignments    int
	CompletedAt    time.Time
	FinalBudget    string
}

// loadParticipantIDs returns the group's participant IDs in creation order.
func loadParticipantIDs(ctx context.Context, q queryer, groupID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id FROM participant
		WHERE group_id = $1
		ORDER BY created_at, id
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// loadExclusionPairs returns the group's exclusion rules as canonical
// (a, b) participant ID pairs.
func loadExclusionPairs(ctx context.Context, q queryer, groupID string) ([][2]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT participant_a, participant_b FROM exclusion_rule
		WHERE group_id = $1
		ORDER BY participant_a, participant_b
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exclusion rules: %w", err)
	}
	defer rows.Close()

	var pairs [][2]string
	for rows.Next() {
		var a, b string
		if err := rows.Scan(&a, &b); err != nil {
			return nil, fmt.Errorf("failed to scan exclusion rule: %w", err)
		}
		pairs = append(pairs, [2]string{a, b})
	}
	return pairs, rows.Err()
}

// validateDraw builds the structured dry-run verdict for a group. It
// never mutates state, so repeated calls on an unchanged group return
// the same result. A completed draw surfaces as a warning rather than
// an error: polling validation after the draw stays a 200.
func validateDraw(ctx context.Context, db *sql.DB, groupID string) (*models.DrawValidation, error) {
	ctx, cancel := context.WithTimeout(ctx, drawTimeout)
	defer cancel()

	var status string
	err := db.QueryRowContext(ctx, "SELECT status FROM santa_group WHERE id = $1", groupID).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query group: %w", err)
	}

	ids, err := loadParticipantIDs(ctx, db, groupID)
	if err != nil {
		return nil, err
	}
	pairs, err := loadExclusionPairs(ctx, db, groupID)
	if err != nil {
		return nil, err
	}

	v := &models.DrawValidation{
		ParticipantCount:   len(ids),
		ExclusionRuleCount: len(pairs),
		Errors:             []string{},
		Warnings:           []string{},
	}

	ex, err := draw.BuildExclusions(pairs)
	if err != nil {
		// The API layer rejects self-pairs on insert, so a stored one
		// means the row was written outside the API.
		v.Errors = append(v.Errors, err.Error())
		return v, nil
	}

	if err := draw.Feasible(ids, ex); err != nil {
		v.Errors = append(v.Errors, err.Error())
		return v, nil
	}

	// Feasibility certifies a complete assignment exists but not a
	// 2-cycle-free one; a dry-run generation closes that gap.
	if _, err := draw.Generate(ids, ex, draw.NewRand()); err != nil {
		v.Errors = append(v.Errors, err.Error())
		return v, nil
	}

	v.IsValid = true
	if status == models.StatusDrawn {
		v.Warnings = append(v.Warnings, "draw already completed; group is read-only")
	} else {
		v.CanDraw = true
	}

	return v, nil
}

// executeDraw runs the draw for a group exactly once. The group row is
// locked FOR UPDATE for the whole transaction, so concurrent calls
// serialize: the first commits, the rest see status drawn and fail with
// *AlreadyCompletedError. On any failure before commit the transaction
// rolls back and the group is untouched.
func executeDraw(ctx context.Context, db *sql.DB, groupID, finalBudget string) (*drawResult, error) {
	ctx, cancel := context.WithTimeout(ctx, drawTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	var drawnAt sql.NullTime
	err = tx.QueryRowContext(ctx, `
		SELECT status, drawn_at FROM santa_group
		WHERE id = $1
		FOR UPDATE
	`, groupID).Scan(&status, &drawnAt)
	if err == sql.ErrNoRows {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock group: %w", err)
	}

	if status == models.StatusDrawn {
		return nil, &AlreadyCompletedError{GroupID: groupID, DrawnAt: drawnAt.Time}
	}

	ids, err := loadParticipantIDs(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}
	pairs, err := loadExclusionPairs(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}

	ex, err := draw.BuildExclusions(pairs)
	if err != nil {
		return nil, err
	}

	assignment, err := draw.Generate(ids, ex, draw.NewRand())
	if err != nil {
		return nil, err
	}

	// Empty budget stores as NULL rather than a zero numeric.
	var budget interface{}
	if finalBudget != "" {
		budget = finalBudget
	}

	completedAt := time.Now()
	for giver, recipient := range assignment {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO assignment (group_id, giver_id, recipient_id, created_at)
			VALUES ($1, $2, $3, $4)
		`, groupID, giver, recipient, completedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE santa_group
		SET status = $1, drawn_at = $2, final_budget = $3
		WHERE id = $4
	`, models.StatusDrawn, completedAt, budget, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark group drawn: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit draw: %w", err)
	}

	return &drawResult{
		ParticipantIDs: ids,
		Assignments:    len(assignment),
		CompletedAt:    completedAt,
		FinalBudget:    finalBudget,
	}, nil
}
