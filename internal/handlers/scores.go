// scores.go — the /api/v1/games/:id/scores routes.
//
// This is where raw stroke scores enter the system and where the Score
// Evaluator gets applied. Placements within a game shift whenever a new score
// arrives (the 73 that led the field at noon may be second-best by evening), so
// submitting a score re-evaluates EVERY score in that game inside one
// transaction. The evaluator is a pure function, so re-running it over the
// grown field is exactly the recalculation the spec of the club rules demands:
// the best raw score always holds the bonus, ties share it, and an unchanged
// field always re-evaluates to identical points.
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fairwayclub/clubscores/internal/models"
	"github.com/fairwayclub/clubscores/internal/scoring"
)

// ScoreResponse is the API shape for one submitted score.
type ScoreResponse struct {
	ID          string `json:"id"`
	GameID      string `json:"game_id"`
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	RawScore    int    `json:"raw_score"`
	Points      int    `json:"points"`
	BonusPoints int    `json:"bonus_points"`
	SubmittedAt string `json:"submitted_at"`
}

// SubmitScoreRequest is the JSON body we expect on POST /api/v1/games/:id/scores.
type SubmitScoreRequest struct {
	RawScore int `json:"raw_score"` // Required: total strokes for the round
}

func scoreToResponse(s models.RoundScore) ScoreResponse {
	return ScoreResponse{
		ID:          s.ID.String(),
		GameID:      s.GameID.String(),
		PlayerID:    s.PlayerID.String(),
		PlayerName:  s.Player.DisplayName,
		RawScore:    s.RawScore,
		Points:      s.Points,
		BonusPoints: s.BonusPoints,
		SubmittedAt: s.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

// reevaluateGame recomputes points and bonus for every score in one game and
// writes the changed rows. It is used both by score submission (inside the
// submission transaction) and by the admin bonus-recalculation batch.
//
// The field is rebuilt from all scores each time, so the computation is
// idempotent: running it twice over an unchanged game writes nothing new the
// second time.
func reevaluateGame(tx *gorm.DB, gameID uuid.UUID, coursePar int, policy scoring.PointsPolicy) error {
	var scores []models.RoundScore
	if err := tx.Where("game_id = ?", gameID).Find(&scores).Error; err != nil {
		return err
	}

	// The full field of raw scores is the evaluator's reference frame
	field := make([]int, 0, len(scores))
	for _, s := range scores {
		field = append(field, s.RawScore)
	}

	for i := range scores {
		eval, err := scoring.Evaluate(scores[i].RawScore, coursePar, field, policy)
		if err != nil {
			// Only possible with an empty field, which can't happen here once a
			// score exists — but an evaluator error must never be swallowed.
			return err
		}

		// Skip the UPDATE when nothing changed; most re-evaluations only move
		// a handful of rows.
		if scores[i].Points == eval.Points && scores[i].BonusPoints == eval.BonusPoints {
			continue
		}
		if err := tx.Model(&scores[i]).Updates(map[string]interface{}{
			"points":       eval.Points,
			"bonus_points": eval.BonusPoints,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetGameScores returns a handler for GET /api/v1/games/:id/scores.
// Lists every submitted score for the game, best raw score first.
func GetGameScores(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game ID",
			})
		}

		var scores []models.RoundScore
		if err := db.Preload("Player").
			Where("game_id = ?", gameID).
			Order("raw_score ASC").
			Find(&scores).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch scores",
			})
		}

		response := make([]ScoreResponse, 0, len(scores))
		for _, s := range scores {
			response = append(response, scoreToResponse(s))
		}
		return c.JSON(response)
	}
}

// SubmitScore returns a handler for POST /api/v1/games/:id/scores.
// The authenticated player submits their own raw score for the game. The
// handler inserts the score and re-evaluates the whole game's points and
// bonuses in a single transaction, so the leaderboard never observes a
// half-updated game.
func SubmitScore(db *gorm.DB, policy scoring.PointsPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID, ok := currentPlayerID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid player ID",
			})
		}

		gameID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game ID",
			})
		}

		var req SubmitScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		// 18 strokes is a hole-in-one on every hole of an 18-hole course — the
		// theoretical floor. Anything outside this range is a typo, not golf.
		if req.RawScore < 18 || req.RawScore > 200 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "raw_score must be between 18 and 200",
			})
		}

		// The game must exist; preload the course (for par) and season
		// (for the active check).
		var game models.Game
		if err := db.Preload("Course").Preload("Season").First(&game, "id = ?", gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "game not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "database error",
			})
		}
		if !game.Season.Active {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "season is not accepting score submissions",
			})
		}

		// Only season members can post scores into the season's games
		var membership models.SeasonPlayer
		if err := db.Where("season_id = ? AND player_id = ?", game.SeasonID, playerID).
			First(&membership).Error; err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "join the season before submitting scores",
			})
		}

		// --- Insert + re-evaluate in one transaction ---
		// If the re-evaluation fails for any reason the insert is rolled back,
		// so a score can never exist without evaluated points.
		score := models.RoundScore{
			GameID:   gameID,
			PlayerID: playerID,
			RawScore: req.RawScore,
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			// The unique index on (game_id, player_id) rejects a second
			// submission from the same player here.
			if err := tx.Create(&score).Error; err != nil {
				return err
			}
			return reevaluateGame(tx, gameID, game.Course.Par, policy)
		})
		if txErr != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "score already submitted for this game",
			})
		}

		// Re-read the score so the response carries the points the
		// re-evaluation just assigned, plus the player's display name.
		var saved models.RoundScore
		if err := db.Preload("Player").First(&saved, "id = ?", score.ID).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load submitted score",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(scoreToResponse(saved))
	}
}
