// admin.go — the /api/v1/admin routes.
//
// These endpoints drive the Recalculation Batch Runner over the whole club:
// every player's handicap, or every game's points and bonuses. Both walks are
// strictly sequential and never abort on a bad record — the admin gets back
// "N succeeded, M failed" plus one error entry per failing player or game, and
// every item is attempted regardless of what happened before it. A corrupted
// legacy round should cost the club one error line, not the whole pass.
package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fairwayclub/clubscores/internal/models"
	"github.com/fairwayclub/clubscores/internal/scoring"
)

// RecalculateHandicaps returns a handler for POST /api/v1/admin/recalc/handicaps.
// Requires the "admin" role. For every player: fetch their full score history,
// compute the handicap index, and persist it to the profile. Players with no
// eligible rounds get their handicap cleared to NULL — "no handicap yet" and
// "handicap of zero" are different statements.
func RecalculateHandicaps(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var players []models.Player
		if err := db.Order("created_at ASC").Find(&players).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch players",
			})
		}

		// Build one batch item per player. Each closure performs the whole
		// read-compute-write cycle for its player so a failure is isolated to
		// that item.
		items := make([]scoring.BatchItem, 0, len(players))
		for _, player := range players {
			player := player // capture a fresh copy per iteration
			items = append(items, scoring.BatchItem{
				Key: fmt.Sprintf("player %s (%s)", player.ID, player.DisplayName),
				Run: func() error {
					// The history needs each round's course par, two joins away:
					// score → game → course.
					var history []models.RoundScore
					if err := db.Preload("Game.Course").
						Where("player_id = ?", player.ID).
						Find(&history).Error; err != nil {
						return err
					}

					index, excluded := scoring.ComputeHandicap(toHandicapRounds(history))
					if excluded > 0 {
						// Rounds without resolvable par are excluded, not failed —
						// but the gap must be visible in the logs.
						log.Printf("handicap recalc: player %s: %d round(s) excluded (no course par)", player.ID, excluded)
					}

					// Updates the profile in place; NULL when no eligible rounds.
					// RowsAffected of zero means the player row vanished mid-batch,
					// which is a real failure — not something to skip silently.
					res := db.Model(&models.Player{}).
						Where("id = ?", player.ID).
						Update("handicap", index)
					if res.Error != nil {
						return res.Error
					}
					if res.RowsAffected == 0 {
						return errors.New("player profile not found")
					}
					return nil
				},
			})
		}

		result := scoring.RunBatch(items, func(completed, total int) {
			log.Printf("handicap recalc: %d/%d", completed, total)
		}, nil)

		return c.JSON(result)
	}
}

// RecalculateBonuses returns a handler for POST /api/v1/admin/recalc/bonuses.
// Requires the "admin" role. For every game: rebuild the field of raw scores
// and re-evaluate every score's points and bonus under the current policy.
// This is the pass to run after the point table changes between seasons.
func RecalculateBonuses(db *gorm.DB, policy scoring.PointsPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var games []models.Game
		if err := db.Preload("Course").Order("scheduled_date ASC").Find(&games).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch games",
			})
		}

		items := make([]scoring.BatchItem, 0, len(games))
		for _, game := range games {
			game := game
			items = append(items, scoring.BatchItem{
				Key: fmt.Sprintf("game %s", game.ID),
				Run: func() error {
					// Games with no submitted scores have nothing to
					// re-evaluate; counting them as successes keeps the totals
					// honest without tripping the evaluator's empty-field error.
					var count int64
					if err := db.Model(&models.RoundScore{}).
						Where("game_id = ?", game.ID).
						Count(&count).Error; err != nil {
						return err
					}
					if count == 0 {
						return nil
					}

					// Each game re-evaluates in its own transaction so one bad
					// game rolls back alone.
					return db.Transaction(func(tx *gorm.DB) error {
						return reevaluateGame(tx, game.ID, game.Course.Par, policy)
					})
				},
			})
		}

		result := scoring.RunBatch(items, func(completed, total int) {
			log.Printf("bonus recalc: %d/%d", completed, total)
		}, nil)

		return c.JSON(result)
	}
}
