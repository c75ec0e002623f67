// seasons.go — the /api/v1/seasons routes.
//
// A "season" is the club's competition period: games are scheduled inside it,
// members join it with a short code, and the leaderboard and rank-based
// achievements are always scoped to one season.
//
// Each exported function follows the "handler factory" pattern: it takes a
// *gorm.DB and returns a fiber.Handler (a function that handles a single HTTP
// request). This lets us inject the database without using global variables.
//
// --- Permission model ---
//   - All authenticated members can list seasons and join an active one.
//   - Only the global "admin" role can create seasons (enforced with
//     middleware.RequireRole on the route).
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fairwayclub/clubscores/internal/models"
)

// SeasonResponse is what we send back to the mobile app.
// We use a dedicated response struct (instead of the raw GORM model) so we control
// exactly what fields are serialised to JSON and can add computed fields like
// MemberCount.
type SeasonResponse struct {
	ID          string  `json:"id"`           // The season's UUID as a string
	Name        string  `json:"name"`         // Season display name
	Code        string  `json:"code"`         // Join code members type into the app
	Active      bool    `json:"active"`       // Whether joins and submissions are accepted
	StartDate   *string `json:"start_date"`   // ISO 8601 date string or null
	EndDate     *string `json:"end_date"`     // ISO 8601 date string or null
	MemberCount int64   `json:"member_count"` // How many players have joined this season
	GameCount   int64   `json:"game_count"`   // How many games are scheduled in this season
	CreatedAt   string  `json:"created_at"`   // ISO 8601 timestamp string
}

// CreateSeasonRequest is the JSON body we expect on POST /api/v1/seasons.
type CreateSeasonRequest struct {
	Name      string  `json:"name"`       // Required: the season's name
	Code      string  `json:"code"`       // Required: unique join code (e.g. "SUM26")
	StartDate *string `json:"start_date"` // Optional: "YYYY-MM-DD"
	EndDate   *string `json:"end_date"`   // Optional: "YYYY-MM-DD"
}

// seasonToResponse builds the API shape for one season, counting its members
// and games with two cheap COUNT queries.
func seasonToResponse(db *gorm.DB, season models.Season) SeasonResponse {
	var memberCount, gameCount int64
	db.Model(&models.SeasonPlayer{}).Where("season_id = ?", season.ID).Count(&memberCount)
	db.Model(&models.Game{}).Where("season_id = ?", season.ID).Count(&gameCount)

	return SeasonResponse{
		ID:          season.ID.String(),
		Name:        season.Name,
		Code:        season.Code,
		Active:      season.Active,
		StartDate:   formatOptionalDate(season.StartDate),
		EndDate:     formatOptionalDate(season.EndDate),
		MemberCount: memberCount,
		GameCount:   gameCount,
		// Format the timestamp as ISO 8601 for easy parsing in TypeScript
		CreatedAt: season.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetSeasons returns a handler for GET /api/v1/seasons.
// Every authenticated member sees every season — seasons are club-wide, there is
// nothing private about their existence. Optional query param: ?active=true to
// list only seasons currently accepting joins and submissions.
func GetSeasons(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var seasons []models.Season
		query := db.Order("created_at DESC")

		// Optional filter: ?active=true
		if c.Query("active") == "true" {
			query = query.Where("active = ?", true)
		}

		if err := query.Find(&seasons).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch seasons",
			})
		}

		response := make([]SeasonResponse, 0, len(seasons))
		for _, season := range seasons {
			response = append(response, seasonToResponse(db, season))
		}

		return c.JSON(response)
	}
}

// CreateSeason returns a handler for POST /api/v1/seasons.
// Requires the "admin" role (enforced by RequireRole middleware on the route).
func CreateSeason(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Parse the JSON request body into our request struct.
		// c.BodyParser reads the body and unmarshals JSON fields that match struct tags.
		var req CreateSeasonRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		// Validate required fields
		if req.Name == "" || req.Code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name and code are required",
			})
		}

		// Parse optional date fields
		startDate, err := parseOptionalDate(req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "start_date must be in YYYY-MM-DD format",
			})
		}
		endDate, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "end_date must be in YYYY-MM-DD format",
			})
		}

		season := models.Season{
			Name:      req.Name,
			Code:      req.Code,
			StartDate: startDate,
			EndDate:   endDate,
			Active:    true, // New seasons accept joins immediately
		}

		// db.Create runs an INSERT and populates season.ID with the new UUID.
		// The unique index on code surfaces duplicates as an error here.
		if err := db.Create(&season).Error; err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "failed to create season (is the code already in use?)",
			})
		}

		// Return the newly created season with HTTP 201 Created
		return c.Status(fiber.StatusCreated).JSON(seasonToResponse(db, season))
	}
}

// JoinSeason returns a handler for POST /api/v1/seasons/:id/join.
// Adds the authenticated player to the season's membership list. Joining an
// inactive season is rejected — the Active flag is exactly the "are joins and
// submissions accepted" switch.
func JoinSeason(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID, ok := currentPlayerID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid player ID",
			})
		}

		seasonID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid season ID",
			})
		}

		// The season must exist and be active
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
				"error": "season is not accepting new members",
			})
		}

		// The unique index on (season_id, player_id) makes a double-join fail
		// at the database rather than silently inserting a duplicate row.
		membership := models.SeasonPlayer{
			SeasonID: seasonID,
			PlayerID: playerID,
		}
		if err := db.Create(&membership).Error; err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "already a member of this season",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"season_id": seasonID.String(),
			"player_id": playerID.String(),
			"joined_at": membership.JoinedAt.UTC().Format(time.RFC3339),
		})
	}
}
