// handicap.go — the Handicap Calculator.
// A player's handicap index summarises their skill relative to par, computed
// USGA-style from the best differentials in their score history. The club
// keeps the raw average: any federation-specific multiplier (like the WHS 0.96
// factor) belongs to an outer policy layer, not this engine.
package scoring

import (
	"sort"
	"time"
)

// maxHandicapRounds caps how many of a player's best differentials feed the
// handicap average. Eight mirrors the WHS "best 8 of 20" selection.
const maxHandicapRounds = 8

// HandicapRound is one round of a player's score history as the calculator
// sees it: the raw stroke count plus the par of the course it was played on.
// CoursePar is a pointer because older imported rounds may reference courses
// whose par was never recorded — those rounds are excluded from the
// computation, never treated as par zero.
type HandicapRound struct {
	RawScore  int
	CoursePar *int
	PlayedAt  time.Time
}

// ComputeHandicap derives a handicap index from the player's full score
// history. The index is the mean of the lowest differentials
// (raw score − course par), using at most maxHandicapRounds rounds, or every
// eligible round when fewer exist.
//
// The returned index is nil when the history contains no round with a
// resolvable par — a player with no usable history has no handicap, which is
// different from a handicap of zero. excluded reports how many rounds were
// skipped for missing par data so callers can log the gap.
//
// The input slice is never mutated; calling this repeatedly over the same
// history always returns the same index.
func ComputeHandicap(history []HandicapRound) (index *float64, excluded int) {
	// Collect the differential for every round whose par is known.
	diffs := make([]int, 0, len(history))
	for _, round := range history {
		if round.CoursePar == nil {
			excluded++
			continue
		}
		diffs = append(diffs, round.RawScore-*round.CoursePar)
	}

	if len(diffs) == 0 {
		return nil, excluded
	}

	// Best differentials are the lowest ones — sort ascending and take the
	// head of the slice, capped at maxHandicapRounds.
	sort.Ints(diffs)
	n := len(diffs)
	if n > maxHandicapRounds {
		n = maxHandicapRounds
	}

	sum := 0
	for _, d := range diffs[:n] {
		sum += d
	}

	avg := float64(sum) / float64(n)
	return &avg, excluded
}
