// courses.go — the /api/v1/courses routes.
// Courses carry the par that every par-relative computation (handicap
// differentials in particular) depends on, so they're admin-managed reference
// data rather than something members edit.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fairwayclub/clubscores/internal/models"
)

// CourseResponse is the API shape for one course.
type CourseResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	State     string `json:"state"`
	Par       int    `json:"par"`
	HoleCount int    `json:"hole_count"`
	CreatedAt string `json:"created_at"`
}

// CreateCourseRequest is the JSON body we expect on POST /api/v1/courses.
type CreateCourseRequest struct {
	Name      string `json:"name"`       // Required
	City      string `json:"city"`       // Optional
	State     string `json:"state"`      // Optional
	Par       int    `json:"par"`        // Required: whole-course par (e.g. 72)
	HoleCount int    `json:"hole_count"` // Optional: defaults to 18
}

func courseToResponse(course models.Course) CourseResponse {
	return CourseResponse{
		ID:        course.ID.String(),
		Name:      course.Name,
		City:      course.City,
		State:     course.State,
		Par:       course.Par,
		HoleCount: course.HoleCount,
		CreatedAt: course.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetCourses returns a handler for GET /api/v1/courses.
// All authenticated members can browse the course list.
func GetCourses(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var courses []models.Course
		if err := db.Order("name ASC").Find(&courses).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch courses",
			})
		}

		response := make([]CourseResponse, 0, len(courses))
		for _, course := range courses {
			response = append(response, courseToResponse(course))
		}
		return c.JSON(response)
	}
}

// CreateCourse returns a handler for POST /api/v1/courses.
// Requires the "admin" role (enforced by RequireRole middleware on the route).
func CreateCourse(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateCourseRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}
		// Par must be a plausible whole-course value — a zero or negative par
		// would poison every handicap differential computed from this course.
		if req.Par < 27 || req.Par > 90 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "par must be between 27 and 90",
			})
		}

		holeCount := req.HoleCount
		if holeCount == 0 {
			holeCount = 18
		}

		course := models.Course{
			Name:      req.Name,
			City:      req.City,
			State:     req.State,
			Par:       req.Par,
			HoleCount: holeCount,
		}
		if err := db.Create(&course).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create course",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(courseToResponse(course))
	}
}
