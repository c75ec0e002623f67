// evaluator.go — the Score Evaluator.
// Given one player's raw stroke score and the full field of raw scores for the
// same game, it assigns base points (by placement within the field) and bonus
// points (for the best raw score of the game). The evaluation is a pure
// function of its inputs, so re-running it over an unchanged field always
// produces the same assignment — the handlers rely on that to re-evaluate a
// whole game every time a new score arrives.
package scoring

import (
	"errors"
	"sort"
)

// ErrNoScores is returned when evaluation is requested against an empty field.
// A game with no submitted scores has no placements to compute, so the
// evaluator refuses rather than silently handing back zero points.
var ErrNoScores = errors.New("scoring: no scores submitted for game")

// Evaluation is the result of evaluating one raw score within a game.
type Evaluation struct {
	Points      int // Base points from the placement table
	BonusPoints int // Bonus for the best raw score of the game; 0 otherwise
}

// Evaluate computes the points and bonus for rawScore given the complete set
// of raw scores submitted for the game (field must include rawScore itself).
//
// Placement follows standard competition placement: a score's placement is
// 1 + the number of strictly better (lower) scores in the field, so tied
// scores share a placement. The bonus goes to every score tied for the
// field's minimum — "best score of the round" is shared on a tie.
func Evaluate(rawScore, coursePar int, field []int, policy PointsPolicy) (Evaluation, error) {
	if len(field) == 0 {
		return Evaluation{}, ErrNoScores
	}

	// Sort a copy of the field ascending (lower strokes = better).
	// Copying keeps the caller's slice untouched — the evaluator must never
	// mutate its inputs.
	sorted := make([]int, len(field))
	copy(sorted, field)
	sort.Ints(sorted)

	// Placement = 1 + count of scores strictly better than ours.
	// sort.SearchInts finds the first index at which rawScore could be
	// inserted, which equals the number of strictly smaller values.
	placement := sort.SearchInts(sorted, rawScore) + 1

	eval := Evaluation{
		Points: policy.BasePoints(placement, len(field), rawScore, coursePar),
	}

	// sorted[0] is the best raw score in the game. Everyone who matched it
	// shares the bonus.
	if rawScore == sorted[0] {
		eval.BonusPoints = policy.Bonus()
	}

	return eval, nil
}
