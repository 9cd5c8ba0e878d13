// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation for the Gift Draw API.

# Schema

Five tables back the service:

  - santa_group: exchange lifecycle (open → drawn), share slug,
    immutable final budget once drawn
  - participant: group members with personal lookup tokens
  - exclusion_rule: canonical bidirectional forbidden pairs
  - assignment: the committed draw, constrained to a bijection by
    PRIMARY KEY (group_id, giver_id) and UNIQUE (group_id, recipient_id)
  - budget_suggestion: pre-draw amount suggestions, one per participant

# Usage

Call CreateSchema once at startup:

	if err := db.CreateSchema(dbConn); err != nil {
		// handle error
	}

All statements use IF NOT EXISTS, so repeated calls are safe.
*/
package db
