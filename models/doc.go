// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the
Gift Draw API.

# Domain Types

Core entities that map to database tables:

  - Group: a gift exchange with an open → drawn lifecycle
  - Participant: a member of a group, identified by a personal token
  - ExclusionRule: a bidirectional forbidden pair, stored canonically
  - Assignment: one giver → recipient edge of a committed draw
  - BudgetSuggestion: an amount suggested by a participant pre-draw

# Status Lifecycle

Groups move through exactly one transition:

	open → drawn

While open, participants and exclusion rules are mutable and the draw
has not happened. Drawn is terminal: assignments and the final budget
are immutable and no re-draw is possible.

# Request/Response Types

Each API endpoint has corresponding request/response structs with JSON
tags. Participant tokens are never serialized (json:"-") and the full
assignment set is never exposed; MyAssignmentResponse carries a single
recipient.
*/
package models
