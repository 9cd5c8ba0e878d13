// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Gift Draw API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - GroupHandler: Group lifecycle, participants, exclusion rules
  - DrawHandler: Draw validation and execution
  - ParticipantHandler: Public group view, assignments, wishlists, budgets

Handlers are created via constructor functions that accept *sql.DB and Config:

	groupHandler := handlers.NewGroupHandler(db, cfg)

# Group Lifecycle

Groups have two states: open → drawn (terminal)

	POST /groups                        → CreateGroup (returns admin_key)
	POST /groups/{id}/participants      → AddParticipant (open only)
	POST /groups/{id}/exclusions        → AddExclusion (open only)
	GET  /groups/{id}/draw/validate     → ValidateDraw (read-only dry run)
	POST /groups/{id}/draw              → ExecuteDraw (exactly once)

Organizer operations require the X-Admin-Key header.

# Participant Flow

Participants interact via the share slug:

	GET  /groups/{slug}                     → GetGroup (public info)
	GET  /groups/{slug}/my-assignment       → GetMyAssignment (drawn only)
	PUT  /groups/{slug}/wishlist            → UpdateWishlist
	POST /groups/{slug}/budget-suggestions  → SuggestBudget (open only)

Participant operations require the X-Participant-Token header. A
participant only ever sees their own recipient; the full assignment set
has no endpoint.

# Draw Orchestration

ValidateDraw and ExecuteDraw are implemented in orchestrator.go on top
of the draw package. ExecuteDraw locks the group row FOR UPDATE, loads
the roster, generates the assignment, and commits assignments plus the
status flip in one transaction. Concurrent executes serialize on the
row lock: one wins, the rest get 409.
*/
package handlers
