// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/gift-draw/cliparse"
	"github.com/danielhkuo/gift-draw/handlers"
	"github.com/danielhkuo/gift-draw/middleware"
	"github.com/danielhkuo/gift-draw/notify"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, notifier notify.Notifier) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	groupHandler := handlers.NewGroupHandler(db, cfg)
	drawHandler := handlers.NewDrawHandler(db, cfg, notifier)
	participantHandler := handlers.NewParticipantHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Group management (organizer operations)
	mux.HandleFunc("POST /groups", middleware.WithLogging(groupHandler.CreateGroup))
	mux.HandleFunc("GET /groups/{id}/admin", middleware.WithLogging(groupHandler.GetGroupAdmin))
	mux.HandleFunc("POST /groups/{id}/participants", middleware.WithLogging(groupHandler.AddParticipant))
	mux.HandleFunc("DELETE /groups/{id}/participants/{pid}", middleware.WithLogging(groupHandler.RemoveParticipant))
	mux.HandleFunc("POST /groups/{id}/exclusions", middleware.WithLogging(groupHandler.AddExclusion))
	mux.HandleFunc("DELETE /groups/{id}/exclusions", middleware.WithLogging(groupHandler.RemoveExclusion))

	// Draw operations (organizer)
	mux.HandleFunc("GET /groups/{id}/draw/validate", middleware.WithLogging(drawHandler.ValidateDraw))
	mux.HandleFunc("POST /groups/{id}/draw", middleware.WithLogging(drawHandler.ExecuteDraw))

	// Participant operations (public, via share slug)
	mux.HandleFunc("GET /groups/{slug}", middleware.WithLogging(participantHandler.GetGroup))
	mux.HandleFunc("GET /groups/{slug}/my-assignment", middleware.WithLogging(participantHandler.GetMyAssignment))
	mux.HandleFunc("PUT /groups/{slug}/wishlist", middleware.WithLogging(participantHandler.UpdateWishlist))
	mux.HandleFunc("POST /groups/{slug}/budget-suggestions", middleware.WithLogging(participantHandler.SuggestBudget))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("gift-draw API v1"))
	})

	return mux
}
