// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

// edge is a canonical forbidden pair, ordered so that a < b.
type edge struct {
	a, b string
}

func canonical(a, b string) edge {
	if a < b {
		return edge{a, b}
	}
	return edge{b, a}
}

// Exclusions is the canonical, deduplicated set of forbidden pairs over
// participant ids. A pair forbids both assignment directions.
type Exclusions struct {
	edges map[edge]struct{}
}

// BuildExclusions normalizes raw exclusion pairs: duplicates (in either
// order) collapse to a single edge, and a self-pair is rejected with
// InvalidRuleError.
func BuildExclusions(pairs [][2]string) (*Exclusions, error) {
	ex := &Exclusions{edges: make(map[edge]struct{}, len(pairs))}
	for _, p := range pairs {
		if p[0] == p[1] {
			return nil, &InvalidRuleError{Participant: p[0]}
		}
		ex.edges[canonical(p[0], p[1])] = struct{}{}
	}
	return ex, nil
}

// Forbidden reports whether assigning a → b (or b → a) is excluded.
func (x *Exclusions) Forbidden(a, b string) bool {
	_, ok := x.edges[canonical(a, b)]
	return ok
}

// Len returns the number of canonical exclusion edges.
func (x *Exclusions) Len() int {
	return len(x.edges)
}
