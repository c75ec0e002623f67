package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwayclub/clubscores/internal/models"
)

func TestToHandicapRounds(t *testing.T) {
	// A course with a real par maps through as a resolvable round; a bare
	// course stub (par zero) maps to a nil par so the calculator excludes it.
	withPar := models.RoundScore{
		RawScore:    80,
		SubmittedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Game:        models.Game{Course: models.Course{Par: 72}},
	}
	withoutPar := models.RoundScore{
		RawScore: 91,
		Game:     models.Game{Course: models.Course{}},
	}

	rounds := toHandicapRounds([]models.RoundScore{withPar, withoutPar})
	require.Len(t, rounds, 2)

	require.NotNil(t, rounds[0].CoursePar)
	assert.Equal(t, 72, *rounds[0].CoursePar)
	assert.Equal(t, 80, rounds[0].RawScore)
	assert.Equal(t, withPar.SubmittedAt, rounds[0].PlayedAt)

	assert.Nil(t, rounds[1].CoursePar)
	assert.Equal(t, 91, rounds[1].RawScore)
}

func TestToSeasonScoresCarriesPlayerName(t *testing.T) {
	playerID := uuid.New()
	scores := []models.RoundScore{{
		PlayerID:    playerID,
		Player:      models.Player{DisplayName: "Alice"},
		RawScore:    75,
		Points:      8,
		BonusPoints: 3,
	}}

	mapped := toSeasonScores(scores)
	require.Len(t, mapped, 1)
	assert.Equal(t, playerID, mapped[0].PlayerID)
	assert.Equal(t, "Alice", mapped[0].PlayerName)
	assert.Equal(t, 75, mapped[0].RawScore)
	assert.Equal(t, 8, mapped[0].Points)
	assert.Equal(t, 3, mapped[0].BonusPoints)
}

func TestToPlayerScoresPreservesSubmissionTime(t *testing.T) {
	submitted := time.Date(2026, 6, 12, 9, 30, 0, 0, time.UTC)
	scores := []models.RoundScore{{
		RawScore:    82,
		Points:      4,
		BonusPoints: 0,
		SubmittedAt: submitted,
	}}

	mapped := toPlayerScores(scores)
	require.Len(t, mapped, 1)
	assert.Equal(t, submitted, mapped[0].SubmittedAt)
	assert.Equal(t, 82, mapped[0].RawScore)
}

func TestParseOptionalDate(t *testing.T) {
	// nil and empty are "not provided", not errors
	d, err := parseOptionalDate(nil)
	require.NoError(t, err)
	assert.Nil(t, d)

	empty := ""
	d, err = parseOptionalDate(&empty)
	require.NoError(t, err)
	assert.Nil(t, d)

	valid := "2026-08-25"
	d, err = parseOptionalDate(&valid)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), *d)

	bad := "25/08/2026"
	_, err = parseOptionalDate(&bad)
	assert.Error(t, err)
}

func TestFormatOptionalDate(t *testing.T) {
	assert.Nil(t, formatOptionalDate(nil))

	ts := time.Date(2026, 8, 25, 15, 4, 5, 0, time.UTC)
	s := formatOptionalDate(&ts)
	require.NotNil(t, s)
	assert.Equal(t, "2026-08-25", *s)
}
