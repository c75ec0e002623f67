// glue.go — shared helpers for the handlers layer.
// The scoring engine works on plain in-memory values, not GORM models, so every
// handler converts what it fetched into the engine's input shapes before calling
// in. Those conversions live here so the handlers stay readable and the mapping
// is tested in one place.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fairwayclub/clubscores/internal/models"
	"github.com/fairwayclub/clubscores/internal/scoring"
)

// currentPlayerID reads the authenticated player's UUID out of the request
// context (set by middleware.Auth) and parses it. The bool is false when the
// value is missing or malformed — which means Auth didn't run or is broken,
// so callers respond 401.
func currentPlayerID(c *fiber.Ctx) (uuid.UUID, bool) {
	idStr, _ := c.Locals("playerID").(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// toSeasonScores maps persisted round scores into the ranker's input shape.
// Each score must have its Player preloaded so the leaderboard rows carry
// display names.
func toSeasonScores(scores []models.RoundScore) []scoring.SeasonScore {
	out := make([]scoring.SeasonScore, 0, len(scores))
	for _, s := range scores {
		out = append(out, scoring.SeasonScore{
			PlayerID:    s.PlayerID,
			PlayerName:  s.Player.DisplayName,
			RawScore:    s.RawScore,
			Points:      s.Points,
			BonusPoints: s.BonusPoints,
		})
	}
	return out
}

// toPlayerScores maps one player's round scores into the achievement tracker's
// input shape.
func toPlayerScores(scores []models.RoundScore) []scoring.PlayerScore {
	out := make([]scoring.PlayerScore, 0, len(scores))
	for _, s := range scores {
		out = append(out, scoring.PlayerScore{
			RawScore:    s.RawScore,
			Points:      s.Points,
			BonusPoints: s.BonusPoints,
			SubmittedAt: s.SubmittedAt,
		})
	}
	return out
}

// toHandicapRounds maps round scores (with games and courses preloaded) into
// the handicap calculator's input shape. A game whose course has a zero par is
// treated as unresolvable — imported legacy rounds sometimes reference bare
// course stubs — so the round is passed through with a nil par and the
// calculator excludes it.
func toHandicapRounds(scores []models.RoundScore) []scoring.HandicapRound {
	out := make([]scoring.HandicapRound, 0, len(scores))
	for _, s := range scores {
		round := scoring.HandicapRound{
			RawScore: s.RawScore,
			PlayedAt: s.SubmittedAt,
		}
		if s.Game.Course.Par > 0 {
			par := s.Game.Course.Par
			round.CoursePar = &par
		}
		out = append(out, round)
	}
	return out
}

// formatOptionalDate converts a *time.Time to a *string in "2006-01-02" format.
// Returns nil if the input is nil (preserving the nullable property in the JSON
// response).
func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02")
	return &s
}

// parseOptionalDate parses an optional date string ("YYYY-MM-DD") into a
// *time.Time. Returns nil if the input string pointer is nil or empty.
// Returns an error if the string is non-empty but not a valid date.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
