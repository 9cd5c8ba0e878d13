// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Groups
CREATE TABLE IF NOT EXISTS santa_group (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    organizer_name TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'drawn')),
    share_slug TEXT NOT NULL UNIQUE,
    final_budget NUMERIC,
    drawn_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_santa_group_share_slug ON santa_group(share_slug);
CREATE INDEX IF NOT EXISTS idx_santa_group_status ON santa_group(status);

-- Participants
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL REFERENCES santa_group(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    token TEXT NOT NULL UNIQUE,
    wishlist TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (group_id, name)
);

CREATE INDEX IF NOT EXISTS idx_participant_group_id ON participant(group_id);
CREATE INDEX IF NOT EXISTS idx_participant_token ON participant(token);

-- Exclusion rules, stored canonically (participant_a < participant_b)
CREATE TABLE IF NOT EXISTS exclusion_rule (
    group_id TEXT NOT NULL REFERENCES santa_group(id) ON DELETE CASCADE,
    participant_a TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    participant_b TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    PRIMARY KEY (group_id, participant_a, participant_b),
    CHECK (participant_a < participant_b)
);

CREATE INDEX IF NOT EXISTS idx_exclusion_rule_group_id ON exclusion_rule(group_id);

-- Assignments: each participant appears exactly once as giver and once
-- as recipient within a group
CREATE TABLE IF NOT EXISTS assignment (
    group_id TEXT NOT NULL REFERENCES santa_group(id) ON DELETE CASCADE,
    giver_id TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    recipient_id TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    PRIMARY KEY (group_id, giver_id),
    UNIQUE (group_id, recipient_id),
    CHECK (giver_id <> recipient_id)
);

-- Budget suggestions, one per participant, collected before the draw
CREATE TABLE IF NOT EXISTS budget_suggestion (
    group_id TEXT NOT NULL REFERENCES santa_group(id) ON DELETE CASCADE,
    participant_id TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    amount NUMERIC NOT NULL CHECK (amount > 0),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    PRIMARY KEY (group_id, participant_id)
);

CREATE INDEX IF NOT EXISTS idx_budget_suggestion_group_id ON budget_suggestion(group_id);
`
