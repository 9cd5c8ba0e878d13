// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package draw implements the Secret Santa draw engine.

The engine is pure: it consumes a participant id set and an exclusion
set, and produces either a feasibility verdict or one complete
assignment. It performs no I/O and keeps no state; persistence and the
exactly-once guarantee belong to the orchestrator in the handlers
package.

# Model

An assignment is a permutation of the participant set with three extra
constraints:

  - no fixed points (nobody gifts themselves)
  - no 2-cycles (no pair gifting each other)
  - no forbidden edge used (exclusion rules are bidirectional)

# Feasibility

Feasible models the allowed-assignment relation as a bipartite graph
(givers on the left, recipients on the right) and runs augmenting-path
maximum matching. A perfect matching is a necessary condition for a
valid assignment; anything less is reported as insufficient capacity
with the blocked participant named when one exists.

# Generation

Generate computes a perfect matching with randomized visitation order,
then inspects the cycle decomposition of the resulting permutation.
Any 2-cycle is spliced into another cycle when the two replacement
edges are allowed; if a 2-cycle cannot be repaired the whole
permutation is discarded and resampled. The total attempt budget is a
small constant, so generation is bounded-time; exhausting it surfaces
ExhaustedError rather than hanging.

# Randomness

NewRand seeds math/rand from crypto/rand so that neither participants
nor the organizer can predict or bias the draw. Tests inject a
deterministic source.
*/
package draw
