package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playerScore builds one history entry; offset orders the rounds in time.
func playerScore(offset int, bonus int) PlayerScore {
	return PlayerScore{
		RawScore:    80,
		Points:      5,
		BonusPoints: bonus,
		SubmittedAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset),
	}
}

func TestTrackProgressGamesPlayedAndWins(t *testing.T) {
	in := ProgressInput{
		AllScores: []PlayerScore{
			playerScore(0, 3),
			playerScore(1, 0),
			playerScore(2, 3),
		},
	}

	progress := TrackProgress(in)

	assert.Equal(t, 3, progress["first_round"].Current)
	assert.Equal(t, 1, progress["first_round"].Target)
	assert.Equal(t, 3, progress["regular"].Current)
	assert.Equal(t, 10, progress["regular"].Target)
	assert.Equal(t, 3, progress["veteran"].Current)
	assert.Equal(t, 50, progress["veteran"].Target)

	// Two bonus-earning rounds = two all-time wins
	assert.Equal(t, 2, progress["first_win"].Current)
	assert.Equal(t, 1, progress["first_win"].Target)
}

func TestTrackProgressBestStreak(t *testing.T) {
	// Chronological history [bonus, bonus, none, bonus]: the best run is the
	// two consecutive bonus rounds — the trailing single bonus doesn't beat
	// it, and the non-bonus round resets the running streak.
	in := ProgressInput{
		AllScores: []PlayerScore{
			playerScore(0, 3),
			playerScore(1, 3),
			playerScore(2, 0),
			playerScore(3, 3),
		},
	}

	progress := TrackProgress(in)
	assert.Equal(t, 2, progress["hot_streak_3"].Current)
	assert.Equal(t, 3, progress["hot_streak_3"].Target)
	assert.Equal(t, 2, progress["hot_streak_5"].Current)
	assert.Equal(t, 5, progress["hot_streak_5"].Target)
}

func TestTrackProgressStreakTracksBestEverNotCurrent(t *testing.T) {
	// Four straight wins early, then two losses: best-ever streak stays 4.
	in := ProgressInput{
		AllScores: []PlayerScore{
			playerScore(0, 3), playerScore(1, 3), playerScore(2, 3), playerScore(3, 3),
			playerScore(4, 0), playerScore(5, 0),
		},
	}

	progress := TrackProgress(in)
	assert.Equal(t, 4, progress["hot_streak_5"].Current)
}

func TestTrackProgressStreakOrdersBySubmissionTime(t *testing.T) {
	// The input arrives out of chronological order; the tracker must order by
	// SubmittedAt before walking the streak. Chronologically this is
	// [bonus, bonus, bonus, none] — a streak of 3.
	in := ProgressInput{
		AllScores: []PlayerScore{
			playerScore(3, 0),
			playerScore(0, 3),
			playerScore(2, 3),
			playerScore(1, 3),
		},
	}

	progress := TrackProgress(in)
	assert.Equal(t, 3, progress["hot_streak_3"].Current)
}

func TestTrackProgressSeasonRules(t *testing.T) {
	in := ProgressInput{
		AllScores: []PlayerScore{playerScore(0, 3)},
		SeasonScores: []PlayerScore{
			{RawScore: 78, Points: 10, BonusPoints: 3},
			{RawScore: 82, Points: 6, BonusPoints: 0},
		},
		SeasonLeaderboard: []Row{
			{GamesPlayed: 12},
			{GamesPlayed: 9},
		},
		SeasonRank: 2,
		HasSeason:  true,
	}

	progress := TrackProgress(in)

	// Season points = (10+3) + (6+0)
	assert.Equal(t, 19, progress["point_collector"].Current)
	assert.Equal(t, 100, progress["point_collector"].Target)

	// One season win (the bonus-earning round)
	assert.Equal(t, 1, progress["domination"].Current)
	assert.Equal(t, 5, progress["domination"].Target)

	// Rank 2 satisfies runner-up and top-three but not champion
	assert.Equal(t, 0, progress["season_champion"].Current)
	assert.Equal(t, 1, progress["season_runner_up"].Current)
	assert.Equal(t, 1, progress["season_top_three"].Current)
	assert.Equal(t, 1, progress["season_top_three"].Target)
}

func TestTrackProgressAttendanceDynamicTarget(t *testing.T) {
	// The season's most active player has 12 rounds; our player has 9.
	// The attendance target follows the leader, not a fixed catalog number.
	seasonScores := make([]PlayerScore, 9)
	for i := range seasonScores {
		seasonScores[i] = playerScore(i, 0)
	}

	in := ProgressInput{
		SeasonScores: seasonScores,
		SeasonLeaderboard: []Row{
			{GamesPlayed: 12},
			{GamesPlayed: 9},
			{GamesPlayed: 4},
		},
		HasSeason: true,
	}

	progress := TrackProgress(in)
	assert.Equal(t, 9, progress["perfect_attendance"].Current)
	assert.Equal(t, 12, progress["perfect_attendance"].Target)
}

func TestTrackProgressNoSeasonDegradesGracefully(t *testing.T) {
	// Without a season in view, season-scoped rules report zero progress and
	// the attendance target collapses to zero — never an error.
	in := ProgressInput{
		AllScores: []PlayerScore{playerScore(0, 3), playerScore(1, 3)},
	}

	progress := TrackProgress(in)

	assert.Equal(t, 0, progress["point_collector"].Current)
	assert.Equal(t, 0, progress["domination"].Current)
	assert.Equal(t, Progress{Current: 0, Target: 0, Label: "Perfect Attendance"}, progress["perfect_attendance"])
	assert.Equal(t, 0, progress["season_champion"].Current)

	// All-time rules are unaffected by the missing season
	assert.Equal(t, 2, progress["first_round"].Current)
	assert.Equal(t, 2, progress["hot_streak_3"].Current)
}

func TestTrackProgressHiddenAndEarnedExcluded(t *testing.T) {
	in := ProgressInput{
		AllScores: []PlayerScore{playerScore(0, 0)},
		Earned:    map[string]bool{"first_round": true},
	}

	progress := TrackProgress(in)

	// Hidden achievements expose no progress signal at all
	assert.NotContains(t, progress, "perfect_score")
	assert.NotContains(t, progress, "early_bird")
	assert.NotContains(t, progress, "consistent_scorer")

	// Already-earned keys are filtered out
	assert.NotContains(t, progress, "first_round")

	// Everything else trackable is present
	assert.Contains(t, progress, "regular")
	assert.Contains(t, progress, "first_win")
}

func TestTrackProgressDeterministicAndNonMutating(t *testing.T) {
	scores := []PlayerScore{playerScore(2, 3), playerScore(0, 0), playerScore(1, 3)}
	original := make([]PlayerScore, len(scores))
	copy(original, scores)

	in := ProgressInput{AllScores: scores}
	first := TrackProgress(in)
	second := TrackProgress(in)

	assert.Equal(t, first, second)
	assert.Equal(t, original, scores) // streak detection sorts a copy, not the input
}

func TestCatalogReturnsCopy(t *testing.T) {
	first := Catalog()
	require.NotEmpty(t, first)
	first[0].Key = "tampered"

	second := Catalog()
	assert.NotEqual(t, "tampered", second[0].Key)
}
