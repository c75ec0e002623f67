// players.go — the /api/v1/players/me routes.
// Profile reads and edits for the authenticated player. The handicap shown
// here is whatever the last recalculation persisted — it is computed by the
// scoring engine, never edited by hand.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fairwayclub/clubscores/internal/models"
)

// PlayerResponse is the API shape for a player profile.
type PlayerResponse struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email"`
	AvatarURL   *string  `json:"avatar_url"`
	Bio         *string  `json:"bio"`
	Role        string   `json:"role"`
	Handicap    *float64 `json:"handicap"` // null until the first successful computation
	CreatedAt   string   `json:"created_at"`
}

// UpdatePlayerRequest is the JSON body we expect on PATCH /api/v1/players/me.
// Only presentation fields are editable — identity comes from Clerk, the
// handicap from the scoring engine.
type UpdatePlayerRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	Bio         *string `json:"bio"`
}

func playerToResponse(p models.Player) PlayerResponse {
	return PlayerResponse{
		ID:          p.ID.String(),
		DisplayName: p.DisplayName,
		Email:       p.Email,
		AvatarURL:   p.AvatarURL,
		Bio:         p.Bio,
		Role:        string(p.Role),
		Handicap:    p.Handicap,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetMe returns a handler for GET /api/v1/players/me.
func GetMe(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID, ok := currentPlayerID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid player ID",
			})
		}

		var player models.Player
		if err := db.First(&player, "id = ?", playerID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "player not found",
			})
		}

		return c.JSON(playerToResponse(player))
	}
}

// UpdateMe returns a handler for PATCH /api/v1/players/me.
// Applies only the fields present in the request body, leaving the rest alone.
func UpdateMe(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID, ok := currentPlayerID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid player ID",
			})
		}

		var req UpdatePlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		var player models.Player
		if err := db.First(&player, "id = ?", playerID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "player not found",
			})
		}

		// Build a partial update from the fields that were actually sent.
		// Pointer fields distinguish "not sent" (nil) from "sent as empty".
		updates := map[string]interface{}{}
		if req.DisplayName != nil && *req.DisplayName != "" {
			updates["display_name"] = *req.DisplayName
		}
		if req.AvatarURL != nil {
			updates["avatar_url"] = *req.AvatarURL
		}
		if req.Bio != nil {
			updates["bio"] = *req.Bio
		}

		if len(updates) > 0 {
			if err := db.Model(&player).Updates(updates).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to update profile",
				})
			}
		}

		// Re-read so the response reflects exactly what was stored
		db.First(&player, "id = ?", playerID)
		return c.JSON(playerToResponse(player))
	}
}
