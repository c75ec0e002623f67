package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateEmptyFieldErrors(t *testing.T) {
	// An empty field has no placements — the evaluator must refuse, not
	// silently hand back zero points.
	_, err := Evaluate(85, 72, nil, DefaultPolicy())
	require.ErrorIs(t, err, ErrNoScores)
}

func TestEvaluatePlacementPoints(t *testing.T) {
	policy := DefaultPolicy()
	field := []int{72, 75, 78, 81, 84, 88, 91, 95}

	cases := []struct {
		raw        int
		wantPoints int
		wantBonus  int
	}{
		{72, 10, 3}, // 1st place, best score of the game
		{75, 8, 0},  // 2nd place
		{78, 6, 0},
		{81, 5, 0},
		{84, 4, 0},
		{88, 3, 0},  // last table placement
		{91, 2, 0},  // past the table — participation floor
		{95, 2, 0},
	}
	for _, tc := range cases {
		eval, err := Evaluate(tc.raw, 72, field, policy)
		require.NoError(t, err)
		assert.Equal(t, tc.wantPoints, eval.Points, "points for raw score %d", tc.raw)
		assert.Equal(t, tc.wantBonus, eval.BonusPoints, "bonus for raw score %d", tc.raw)
	}
}

func TestEvaluateBonusSharedOnTie(t *testing.T) {
	// Three players tied for the lowest raw score: all three get the bonus,
	// and nobody else does. The total bonus awards must equal the tie count.
	policy := DefaultPolicy()
	field := []int{74, 74, 74, 80, 85}

	bonusWinners := 0
	for _, raw := range field {
		eval, err := Evaluate(raw, 72, field, policy)
		require.NoError(t, err)
		if eval.BonusPoints > 0 {
			bonusWinners++
			assert.Equal(t, policy.Bonus(), eval.BonusPoints)
		}
	}
	assert.Equal(t, 3, bonusWinners)
}

func TestEvaluateTiedScoresSharePlacement(t *testing.T) {
	// Standard competition placement: the two 74s are both 1st, the 80 is 3rd
	// (placement 2 is skipped because two players are ahead of it).
	policy := DefaultPolicy()
	field := []int{74, 74, 80}

	first, err := Evaluate(74, 72, field, policy)
	require.NoError(t, err)
	third, err := Evaluate(80, 72, field, policy)
	require.NoError(t, err)

	assert.Equal(t, 10, first.Points)
	assert.Equal(t, 6, third.Points) // table slot for 3rd, not 2nd
}

func TestEvaluateIdempotent(t *testing.T) {
	// Re-running evaluation over an unchanged field must produce identical
	// assignments — the submission flow re-evaluates whole games on every
	// new score and relies on this.
	policy := DefaultPolicy()
	field := []int{77, 73, 90, 84}

	for _, raw := range field {
		a, err := Evaluate(raw, 71, field, policy)
		require.NoError(t, err)
		b, err := Evaluate(raw, 71, field, policy)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestEvaluateDoesNotMutateField(t *testing.T) {
	policy := DefaultPolicy()
	field := []int{90, 72, 85}

	_, err := Evaluate(85, 72, field, policy)
	require.NoError(t, err)
	assert.Equal(t, []int{90, 72, 85}, field)
}
