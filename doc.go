// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Gift Draw API server.

Gift Draw is a Secret Santa service: an organizer creates a group, adds
participants and exclusion rules (couples, roommates), and executes a
single random draw that assigns every participant a recipient with no
self-gifting, no mutual pairs, and no excluded pairing. Each participant
sees only their own recipient.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3319 -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - GROUP_SLUG_SALT (--slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - REDIS_URL (-r): Redis URL for draw-completed events

# Architecture

The server uses a handler-based architecture with dependency injection:

  - draw: Assignment feasibility and generation algorithms
  - handlers: HTTP request handlers (groups, draw, participants)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Token generation and validation
  - notify: Draw-completed event publishing
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
