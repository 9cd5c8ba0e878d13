// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"math/rand"
)

const (
	// maxAttempts bounds full resampling. Feasible instances with
	// N <= 30 converge almost immediately; the budget exists so
	// adversarial rule sets fail loudly instead of spinning.
	maxAttempts = 48

	// repairTriesPerTwoCycle bounds the local search that splices a
	// 2-cycle into another cycle before the permutation is discarded.
	repairTriesPerTwoCycle = 8
)

// Generate produces one assignment (giver id → recipient id) that is a
// permutation of ids with no fixed points, no 2-cycles, and no
// forbidden edge, drawn close to uniformly from the feasible set.
//
// Feasibility is re-checked up front, so Generate is safe to call
// without a prior Feasible call. On a certified instance the only
// failure mode is *ExhaustedError.
func Generate(ids []string, ex *Exclusions, rng *rand.Rand) (map[string]string, error) {
	if err := Feasible(ids, ex); err != nil {
		return nil, err
	}

	n := len(ids)
	adj := allowedGraph(ids, ex)

	allowed := func(g, r int) bool {
		return g != r && !ex.Forbidden(ids[g], ids[r])
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		for i := range adj {
			rng.Shuffle(len(adj[i]), func(a, b int) {
				adj[i][a], adj[i][b] = adj[i][b], adj[i][a]
			})
		}

		perm, size := maximumMatching(adj, rng.Perm(n))
		if size < n {
			// Maximum matching size is order-independent, and
			// Feasible certified a perfect matching above.
			return nil, &InfeasibleError{
				Reason: ReasonInsufficientCapacity,
				Detail: "exclusion rules leave no complete assignment",
			}
		}

		if repairTwoCycles(perm, allowed, rng) {
			out := make(map[string]string, n)
			for g, r := range perm {
				out[ids[g]] = ids[r]
			}
			return out, nil
		}
	}

	return nil, &ExhaustedError{
		Participants: n,
		Rules:        ex.Len(),
		Attempts:     maxAttempts,
	}
}

// repairTwoCycles removes every 2-cycle from perm by splicing it into
// another cycle: for a 2-cycle p ↔ q and some pair r → s elsewhere,
// reassign p → s and r → q. The merged cycle has length >= 4, no new
// fixed point or 2-cycle can appear, and untouched cycles stay intact,
// so each repair strictly reduces the 2-cycle count.
//
// Returns false when some 2-cycle survives its repair budget; the
// caller then discards the whole permutation.
func repairTwoCycles(perm []int, allowed func(g, r int) bool, rng *rand.Rand) bool {
	n := len(perm)
	for {
		p := findTwoCycle(perm)
		if p == -1 {
			return true
		}
		q := perm[p]

		repaired := false
		for try := 0; try < repairTriesPerTwoCycle; try++ {
			r := rng.Intn(n)
			if r == p || r == q {
				continue
			}
			s := perm[r]
			if allowed(p, s) && allowed(r, q) {
				perm[p], perm[r] = s, q
				repaired = true
				break
			}
		}
		if !repaired {
			return false
		}
	}
}

// findTwoCycle returns an index belonging to a 2-cycle, or -1.
func findTwoCycle(perm []int) int {
	for p, q := range perm {
		if p != q && perm[q] == p {
			return p
		}
	}
	return -1
}
