// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import "fmt"

// MinParticipants is the smallest group that admits a valid assignment
// (3 participants is the smallest set with a fixed-point-free,
// 2-cycle-free permutation).
const MinParticipants = 3

// MaxParticipants is the product cap on group size. The algorithms are
// polynomial so this is a product decision, not an engine limit.
const MaxParticipants = 30

// Feasible reports whether any assignment exists that is a permutation
// of ids with no fixed points, no 2-cycles, and no forbidden edge.
// It returns nil when feasible and an *InfeasibleError otherwise.
//
// A perfect matching on the allowed-assignment bipartite graph is the
// necessary condition checked here. The residual case where every
// perfect matching decomposes into 2-cycles is caught empirically by
// Generate's bounded search, keeping this check polynomial.
func Feasible(ids []string, ex *Exclusions) error {
	if len(ids) < MinParticipants {
		return &InfeasibleError{
			Reason: ReasonTooFewParticipants,
			Detail: fmt.Sprintf("have %d participants, need at least %d", len(ids), MinParticipants),
		}
	}

	adj := allowedGraph(ids, ex)

	// Name the blocked participant when the failure is local; it makes
	// the organizer-facing message actionable.
	for i, targets := range adj {
		if len(targets) == 0 {
			return &InfeasibleError{
				Reason: ReasonInsufficientCapacity,
				Detail: fmt.Sprintf("participant %s has no allowed recipient", ids[i]),
			}
		}
	}

	order := make([]int, len(ids))
	for i := range order {
		order[i] = i
	}

	_, size := maximumMatching(adj, order)
	if size < len(ids) {
		return &InfeasibleError{
			Reason: ReasonInsufficientCapacity,
			Detail: "exclusion rules leave no complete assignment",
		}
	}

	return nil
}

// allowedGraph builds the giver → recipient adjacency over participant
// indices: an edge i → j exists iff i != j and (ids[i], ids[j]) is not
// excluded.
func allowedGraph(ids []string, ex *Exclusions) [][]int {
	n := len(ids)
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		targets := make([]int, 0, n-1)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if ex.Forbidden(ids[i], ids[j]) {
				continue
			}
			targets = append(targets, j)
		}
		adj[i] = targets
	}
	return adj
}

// maximumMatching runs augmenting-path bipartite matching (Kuhn's
// algorithm) over the giver → recipient graph. Givers are processed in
// the given order; randomizing the order and the adjacency lists yields
// a randomized perfect matching without changing the maximum size.
//
// matchTo[g] is the recipient matched to giver g, or -1.
func maximumMatching(adj [][]int, order []int) (matchTo []int, size int) {
	n := len(adj)
	matchTo = make([]int, n)
	matchFrom := make([]int, n) // recipient -> giver
	for i := 0; i < n; i++ {
		matchTo[i] = -1
		matchFrom[i] = -1
	}

	var augment func(g int, seen []bool) bool
	augment = func(g int, seen []bool) bool {
		for _, r := range adj[g] {
			if seen[r] {
				continue
			}
			seen[r] = true
			if matchFrom[r] == -1 || augment(matchFrom[r], seen) {
				matchTo[g] = r
				matchFrom[r] = g
				return true
			}
		}
		return false
	}

	for _, g := range order {
		if augment(g, make([]bool, n)) {
			size++
		}
	}

	return matchTo, size
}
