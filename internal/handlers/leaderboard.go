// leaderboard.go — the /api/v1/seasons/:id/leaderboard route.
// The standings are derived state: every request fetches the season's full set
// of scored rounds and hands them to the ranker. Nothing is cached, so the
// response can never be stale — a freshly submitted score is in the standings
// on the very next request.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fairwayclub/clubscores/internal/models"
	"github.com/fairwayclub/clubscores/internal/scoring"
)

// fetchSeasonScores loads every round score belonging to the season's games,
// with players preloaded for display names. Shared by the leaderboard and
// achievements handlers.
func fetchSeasonScores(db *gorm.DB, seasonID uuid.UUID) ([]models.RoundScore, error) {
	var scores []models.RoundScore
	err := db.Preload("Player").
		Joins("JOIN games ON games.id = round_scores.game_id").
		Where("games.season_id = ?", seasonID).
		Find(&scores).Error
	return scores, err
}

// GetLeaderboard returns a handler for GET /api/v1/seasons/:id/leaderboard.
// Responds with the season standings in final order: total points descending,
// average score as the tie-break, shared ranks for exact ties.
func GetLeaderboard(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seasonID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid season ID",
			})
		}

		// The season must exist — an empty leaderboard for a real season is
		// fine, but a leaderboard for a nonexistent season is a client error.
		var season models.Season
		if err := db.First(&season, "id = ?", seasonID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "season not found",
			})
		}

		scores, err := fetchSeasonScores(db, seasonID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch season scores",
			})
		}

		// Rank recomputes the standings from scratch on every call.
		rows := scoring.Rank(toSeasonScores(scores))
		return c.JSON(rows)
	}
}
