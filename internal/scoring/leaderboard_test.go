package scoring

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seasonScore builds one scored round for the given player.
func seasonScore(player uuid.UUID, name string, raw, points, bonus int) SeasonScore {
	return SeasonScore{
		PlayerID:    player,
		PlayerName:  name,
		RawScore:    raw,
		Points:      points,
		BonusPoints: bonus,
	}
}

func TestRankEmptyInput(t *testing.T) {
	rows := Rank(nil)
	require.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRankAggregatesPerPlayer(t *testing.T) {
	alice := uuid.New()
	scores := []SeasonScore{
		seasonScore(alice, "Alice", 72, 10, 3),
		seasonScore(alice, "Alice", 78, 6, 0),
	}

	rows := Rank(scores)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 2, rows[0].GamesPlayed)
	assert.Equal(t, 19, rows[0].TotalPoints) // 10+3 + 6+0
	assert.InDelta(t, 75.0, rows[0].AvgScore, 1e-9)
	assert.Equal(t, "Alice", rows[0].PlayerName)
}

func TestRankTieBrokenByAvgScore(t *testing.T) {
	// Both players total 95 points; the one averaging 72.5 strokes ranks above
	// the one averaging 74.2 despite equal points.
	a, b := uuid.New(), uuid.New()
	scores := []SeasonScore{
		seasonScore(a, "A", 72, 50, 0),
		seasonScore(a, "A", 73, 45, 0), // total 95, avg 72.5
		seasonScore(b, "B", 74, 20, 0),
		seasonScore(b, "B", 74, 20, 0),
		seasonScore(b, "B", 74, 20, 0),
		seasonScore(b, "B", 74, 20, 0),
		seasonScore(b, "B", 75, 15, 0), // total 95, avg 74.2
	}

	rows := Rank(scores)
	require.Len(t, rows, 2)
	assert.Equal(t, 95, rows[0].TotalPoints)
	assert.Equal(t, 95, rows[1].TotalPoints)
	assert.InDelta(t, 72.5, rows[0].AvgScore, 1e-9)
	assert.InDelta(t, 74.2, rows[1].AvgScore, 1e-9)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 2, rows[1].Rank)
}

func TestRankSharedRankSkips(t *testing.T) {
	// Standard competition ranking: two players tied on (points, avg) share
	// rank 2 and the next distinct player gets rank 4, not 3.
	leader, tied1, tied2, trailer := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	scores := []SeasonScore{
		seasonScore(leader, "Leader", 70, 100, 0),
		seasonScore(tied1, "Tied1", 80, 50, 0),
		seasonScore(tied2, "Tied2", 80, 50, 0),
		seasonScore(trailer, "Trailer", 85, 10, 0),
	}

	rows := Rank(scores)
	require.Len(t, rows, 4)
	assert.Equal(t, []int{1, 2, 2, 4}, []int{rows[0].Rank, rows[1].Rank, rows[2].Rank, rows[3].Rank})
}

func TestRankDeterministicUnderFullTie(t *testing.T) {
	// Players tied on both points and average still come out in the same
	// output order on every call: the tertiary tie-break is the player UUID
	// string, which doesn't depend on input order or map iteration.
	players := make([]uuid.UUID, 6)
	for i := range players {
		players[i] = uuid.New()
	}

	var scores []SeasonScore
	for _, p := range players {
		scores = append(scores, seasonScore(p, "P", 80, 40, 0))
	}

	baseline := Rank(scores)
	require.Len(t, baseline, 6)
	for _, row := range baseline {
		assert.Equal(t, 1, row.Rank) // all six share rank 1
	}

	// Shuffle the input repeatedly; the output order must never change.
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		rng.Shuffle(len(scores), func(i, j int) {
			scores[i], scores[j] = scores[j], scores[i]
		})
		rows := Rank(scores)
		require.Len(t, rows, len(baseline))
		for i := range rows {
			assert.Equal(t, baseline[i].PlayerID, rows[i].PlayerID, "trial %d position %d", trial, i)
		}
	}
}

func TestRankRecomputesFromScratch(t *testing.T) {
	// Calling Rank twice with the same input yields equal results — there is
	// no hidden state between calls.
	a := uuid.New()
	scores := []SeasonScore{seasonScore(a, "A", 77, 8, 0)}

	first := Rank(scores)
	second := Rank(scores)
	assert.Equal(t, first, second)
}
