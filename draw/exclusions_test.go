// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"errors"
	"testing"
)

func TestBuildExclusionsRejectsSelfPair(t *testing.T) {
	_, err := BuildExclusions([][2]string{{"alice", "alice"}})
	if err == nil {
		t.Fatal("Expected error for self-pair, got nil")
	}

	var ruleErr *InvalidRuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("Expected *InvalidRuleError, got %T: %v", err, err)
	}
	if ruleErr.Participant != "alice" {
		t.Errorf("Expected participant alice in error, got %q", ruleErr.Participant)
	}
}

func TestBuildExclusionsDeduplicates(t *testing.T) {
	ex, err := BuildExclusions([][2]string{
		{"alice", "bob"},
		{"bob", "alice"}, // same edge, reversed
		{"alice", "bob"}, // exact duplicate
		{"bob", "carol"},
	})
	if err != nil {
		t.Fatalf("BuildExclusions failed: %v", err)
	}

	if ex.Len() != 2 {
		t.Errorf("Expected 2 canonical edges, got %d", ex.Len())
	}
}

func TestExclusionsForbiddenIsBidirectional(t *testing.T) {
	ex, err := BuildExclusions([][2]string{{"alice", "bob"}})
	if err != nil {
		t.Fatalf("BuildExclusions failed: %v", err)
	}

	if !ex.Forbidden("alice", "bob") {
		t.Error("Expected alice → bob to be forbidden")
	}
	if !ex.Forbidden("bob", "alice") {
		t.Error("Expected bob → alice to be forbidden")
	}
	if ex.Forbidden("alice", "carol") {
		t.Error("Expected alice → carol to be allowed")
	}
}

func TestBuildExclusionsEmpty(t *testing.T) {
	ex, err := BuildExclusions(nil)
	if err != nil {
		t.Fatalf("BuildExclusions failed: %v", err)
	}
	if ex.Len() != 0 {
		t.Errorf("Expected 0 edges, got %d", ex.Len())
	}
	if ex.Forbidden("a", "b") {
		t.Error("Empty exclusion set should forbid nothing")
	}
}
