// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"fmt"
)

// InfeasibleReason classifies why no valid assignment can exist for the
// current participants and exclusion rules.
type InfeasibleReason string

const (
	ReasonTooFewParticipants   InfeasibleReason = "too_few_participants"
	ReasonInsufficientCapacity InfeasibleReason = "insufficient_capacity"
	ReasonNoTwoCycleFree       InfeasibleReason = "no_two_cycle_free"
)

// InvalidRuleError reports a malformed exclusion rule: a participant
// paired against themselves. It is rejected at graph construction and
// never reaches feasibility validation.
type InvalidRuleError struct {
	Participant string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid exclusion rule: participant %s paired with themselves", e.Participant)
}

// InfeasibleError is the recoverable "cannot draw yet" verdict. The
// caller is expected to surface Reason and Detail to the organizer
// (e.g. "remove an exclusion rule") rather than retry.
type InfeasibleError struct {
	Reason InfeasibleReason
	Detail string
}

func (e *InfeasibleError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("draw infeasible: %s", e.Reason)
	}
	return fmt.Sprintf("draw infeasible: %s (%s)", e.Reason, e.Detail)
}

// ExhaustedError reports that the generator spent its whole attempt
// budget without finding a 2-cycle-free assignment. For a
// feasibility-certified instance this is either an adversarial rule
// configuration or a bug, so it carries full context for diagnosis.
type ExhaustedError struct {
	Participants int
	Rules        int
	Attempts     int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("draw generation exhausted after %d attempts (%d participants, %d rules)",
		e.Attempts, e.Participants, e.Rules)
}
