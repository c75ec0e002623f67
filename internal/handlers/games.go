// games.go — the /api/v1/seasons/:id/games routes.
// A game is one scheduled round at a course within a season. Scheduling games
// is an admin action; listing them is open to every member so the app can show
// the season calendar.
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fairwayclub/clubscores/internal/models"
)

// GameResponse is the API shape for one game.
type GameResponse struct {
	ID            string  `json:"id"`
	SeasonID      string  `json:"season_id"`
	Name          *string `json:"name"` // Optional display name; null if not set
	CourseName    string  `json:"course_name"`
	CoursePar     int     `json:"course_par"`
	ScheduledDate string  `json:"scheduled_date"` // "YYYY-MM-DD"
	ScoreCount    int64   `json:"score_count"`    // How many scores have been submitted so far
}

// CreateGameRequest is the JSON body we expect on POST /api/v1/seasons/:id/games.
type CreateGameRequest struct {
	CourseID      string  `json:"course_id"`      // Required: which course the game is played at
	Name          *string `json:"name"`           // Optional display name
	ScheduledDate string  `json:"scheduled_date"` // Required: "YYYY-MM-DD"
}

func gameToResponse(db *gorm.DB, game models.Game) GameResponse {
	var scoreCount int64
	db.Model(&models.RoundScore{}).Where("game_id = ?", game.ID).Count(&scoreCount)

	return GameResponse{
		ID:            game.ID.String(),
		SeasonID:      game.SeasonID.String(),
		Name:          game.Name,
		CourseName:    game.Course.Name,
		CoursePar:     game.Course.Par,
		ScheduledDate: game.ScheduledDate.UTC().Format("2006-01-02"),
		ScoreCount:    scoreCount,
	}
}

// GetGames returns a handler for GET /api/v1/seasons/:id/games.
// Lists the season's games in calendar order, with their course preloaded so the
// response can include the course name and par without extra queries per game.
func GetGames(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seasonID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid season ID",
			})
		}

		// Preload("Course") tells GORM to automatically fetch the related Course
		// record for each game's CourseID foreign key. This avoids N+1 queries.
		var games []models.Game
		if err := db.Preload("Course").
			Where("season_id = ?", seasonID).
			Order("scheduled_date ASC").
			Find(&games).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch games",
			})
		}

		response := make([]GameResponse, 0, len(games))
		for _, game := range games {
			response = append(response, gameToResponse(db, game))
		}
		return c.JSON(response)
	}
}

// CreateGame returns a handler for POST /api/v1/seasons/:id/games.
// Requires the "admin" role (enforced by RequireRole middleware on the route).
// The season must exist and be active; the course must exist because its par
// feeds every handicap computed from this game's scores.
func CreateGame(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seasonID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid season ID",
			})
		}

		var req CreateGameRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		courseID, err := uuid.Parse(req.CourseID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid course ID",
			})
		}

		scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "scheduled_date must be in YYYY-MM-DD format",
			})
		}

		// The season must exist and be accepting play
		var season models.Season
		if err := db.First(&season, "id = ?", seasonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "season not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "database error",
			})
		}
		if !season.Active {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "season is not active",
			})
		}

		// The course must exist — games inherit its par
		var course models.Course
		if err := db.First(&course, "id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "course not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "database error",
			})
		}

		game := models.Game{
			SeasonID:      seasonID,
			CourseID:      courseID,
			Name:          req.Name,
			ScheduledDate: scheduledDate,
		}
		if err := db.Create(&game).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create game",
			})
		}

		// Attach the course we already fetched so the response has its name/par
		game.Course = course
		return c.Status(fiber.StatusCreated).JSON(gameToResponse(db, game))
	}
}
