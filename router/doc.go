// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Gift Draw API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, notifier)

# Endpoints

Health:

	GET /health

Group management (organizer, requires X-Admin-Key):

	POST   /groups                        - Create group
	GET    /groups/{id}/admin             - Get group details
	POST   /groups/{id}/participants      - Add participant
	DELETE /groups/{id}/participants/{pid} - Remove participant
	POST   /groups/{id}/exclusions        - Add exclusion rule
	DELETE /groups/{id}/exclusions        - Remove exclusion rule
	GET    /groups/{id}/draw/validate     - Validate draw (dry run)
	POST   /groups/{id}/draw              - Execute draw

Participant (public, uses share slug and X-Participant-Token):

	GET  /groups/{slug}                    - Public group info
	GET  /groups/{slug}/my-assignment      - Own recipient (drawn only)
	PUT  /groups/{slug}/wishlist           - Update own wishlist
	POST /groups/{slug}/budget-suggestions - Suggest a budget amount

# Handler Initialization

The router creates handler instances with dependency injection:

	groupHandler := handlers.NewGroupHandler(db, cfg)
	drawHandler := handlers.NewDrawHandler(db, cfg, notifier)
	participantHandler := handlers.NewParticipantHandler(db, cfg)

All handlers receive the database connection and configuration; the
draw handler additionally takes the notifier for draw-completed events.
*/
package router
