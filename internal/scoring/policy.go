// Package scoring is the analytics engine at the heart of the score tracker.
// Everything in this package is a pure computation: the functions take
// already-fetched, in-memory data (raw scores, season scores, leaderboard rows)
// and return derived results (points, handicaps, rankings, achievement progress).
// No function here touches the database or the network — fetching inputs and
// persisting outputs is the job of the handlers layer. Keeping the engine pure
// makes every computation trivially testable and safe to run concurrently:
// two page loads computing the same leaderboard share no mutable state at all.
package scoring

// PointsPolicy abstracts how a round placement is converted into base points.
// The club treats the point curve as configuration, not code: committees tweak
// it between seasons, so the evaluator takes the policy as an injected strategy
// instead of hardcoding a table. Swapping the policy never touches the ranking
// or achievement logic.
type PointsPolicy interface {
	// BasePoints returns the base points for a score that finished at the given
	// placement (1 = best raw score) in a field of fieldSize players. The raw
	// score and course par are provided as well so a par-relative policy can be
	// plugged in without changing the evaluator.
	BasePoints(placement, fieldSize, rawScore, coursePar int) int

	// Bonus returns the bonus awarded to the best raw score(s) of a game.
	Bonus() int
}

// tablePolicy is the club's standard policy: a fixed placement → points table,
// with every finisher past the table earning the participation floor.
type tablePolicy struct {
	table []int // table[0] = points for 1st place, table[1] for 2nd, etc.
	floor int   // points for showing up and finishing outside the table
	bonus int   // bonus for the best raw score(s) of the game
}

// DefaultPolicy returns the point curve the club has used since the 2023
// season: 10/8/6/5/4/3 for the top six placements, 2 participation points for
// everyone else, and a 3-point bonus for the round's best score.
func DefaultPolicy() PointsPolicy {
	return &tablePolicy{
		table: []int{10, 8, 6, 5, 4, 3},
		floor: 2,
		bonus: 3,
	}
}

// BasePoints looks the placement up in the table, falling back to the
// participation floor for placements beyond it. Placement is 1-based;
// anything below 1 is treated as off-table.
func (p *tablePolicy) BasePoints(placement, fieldSize, rawScore, coursePar int) int {
	if placement >= 1 && placement <= len(p.table) {
		return p.table[placement-1]
	}
	return p.floor
}

// Bonus returns the flat best-score bonus.
func (p *tablePolicy) Bonus() int {
	return p.bonus
}
