// achievements.go — the /api/v1/players/me/achievements route.
// The handler assembles everything the progress tracker needs — the player's
// all-time history, their season-scoped scores, the current season standings
// and their rank in them — and returns the tracker's progress mapping. With no
// ?season parameter the season-scoped achievements simply report zero progress;
// that's a valid view (a brand-new season, or a player browsing between
// seasons), not an error.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fairwayclub/clubscores/internal/models"
	"github.com/fairwayclub/clubscores/internal/scoring"
)

// GetAchievements returns a handler for GET /api/v1/players/me/achievements.
// Optional query param: ?season=<uuid> scopes the season-based achievements
// (points, wins, attendance, rank) to that season.
func GetAchievements(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID, ok := currentPlayerID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid player ID",
			})
		}

		// --- All-time history (drives games-played, wins and streaks) ---
		var allScores []models.RoundScore
		if err := db.Where("player_id = ?", playerID).Find(&allScores).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch score history",
			})
		}

		// --- Already-earned achievements are filtered out of the output ---
		var earnedRows []models.EarnedAchievement
		if err := db.Where("player_id = ?", playerID).Find(&earnedRows).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch earned achievements",
			})
		}
		earned := make(map[string]bool, len(earnedRows))
		for _, row := range earnedRows {
			earned[row.Key] = true
		}

		in := scoring.ProgressInput{
			AllScores: toPlayerScores(allScores),
			Earned:    earned,
		}

		// --- Optional season scope ---
		if seasonParam := c.Query("season"); seasonParam != "" {
			seasonID, err := uuid.Parse(seasonParam)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid season ID",
				})
			}

			seasonScores, err := fetchSeasonScores(db, seasonID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to fetch season scores",
				})
			}

			// One fetch serves three inputs: the full season set becomes the
			// leaderboard (attendance target + rank), and the player's own
			// subset becomes their season history.
			rows := scoring.Rank(toSeasonScores(seasonScores))

			var mine []models.RoundScore
			for _, s := range seasonScores {
				if s.PlayerID == playerID {
					mine = append(mine, s)
				}
			}

			rank := 0
			for _, row := range rows {
				if row.PlayerID == playerID {
					rank = row.Rank
					break
				}
			}

			in.SeasonScores = toPlayerScores(mine)
			in.SeasonLeaderboard = rows
			in.SeasonRank = rank
			in.HasSeason = true
		}

		return c.JSON(scoring.TrackProgress(in))
	}
}
