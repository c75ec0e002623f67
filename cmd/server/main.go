// cmd/server/main.go
// This is the entry point for the Club Scores API server.
// In Go, the "main" package and its "main()" function is where the program starts
// executing. The "cmd/server" directory follows a common Go convention: the cmd/
// folder holds executable binaries, and internal/ holds reusable packages that are
// not meant to be imported by other projects.
package main

import (
	"log"

	// fiber is a fast HTTP web framework inspired by Express.js
	"github.com/gofiber/fiber/v2"
	// cors handles Cross-Origin Resource Sharing — allows the mobile app to talk to
	// the API even though they're running on different origins (hosts/ports)
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout
	"github.com/gofiber/fiber/v2/middleware/logger"

	// Internal packages — our own code, imported by module path
	"github.com/fairwayclub/clubscores/internal/config"
	"github.com/fairwayclub/clubscores/internal/database"
	"github.com/fairwayclub/clubscores/internal/handlers"
	"github.com/fairwayclub/clubscores/internal/middleware"
	"github.com/fairwayclub/clubscores/internal/scoring"
)

func main() {
	// Load configuration from environment variables (and optionally a .env file).
	// cfg is a pointer (*Config) containing all runtime settings like port, database URL, etc.
	cfg := config.Load()

	// Connect to the PostgreSQL database.
	// We store the returned *gorm.DB — it's used by middleware and handlers to run queries.
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run any pending SQL migration files (in the migrations/ directory).
	// Migrations are SQL scripts that create or alter tables. Running them on startup
	// ensures the database schema is always in sync when the server starts.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// The point policy is injected once here and threaded into every handler that
	// evaluates scores. Swapping the club's point curve means changing this one
	// line — the evaluator, ranker and achievement tracker are untouched.
	policy := scoring.DefaultPolicy()

	// Create a new Fiber app (our HTTP server).
	app := fiber.New(fiber.Config{
		AppName: "Club Scores API",
	})

	// --- Global middleware ---
	// These run on every request before any route handler.
	// logger.New() logs each HTTP request: method, path, status code, and duration.
	app.Use(logger.New())
	// cors.New() allows requests from any origin (needed for the mobile app in development).
	// In production, lock this down to your specific domain.
	app.Use(cors.New())

	// --- Public routes (no auth required) ---
	// GET /health is a liveness check used by load balancers to verify the server is running.
	app.Get("/health", handlers.HealthCheck)

	// --- Authenticated API routes ---
	// All routes under /api/v1 require a valid Clerk JWT.
	// middleware.Auth(cfg, db) validates the token AND syncs the player to our database.
	//
	// Route group pattern: app.Group(prefix, middlewares...) applies the middleware
	// to every route registered on the returned group — we don't have to repeat it per route.
	api := app.Group("/api/v1", middleware.Auth(cfg, db))

	// Season routes
	api.Get("/seasons", handlers.GetSeasons(db))
	api.Post("/seasons", middleware.RequireRole("admin"), handlers.CreateSeason(db))
	api.Post("/seasons/:id/join", handlers.JoinSeason(db))
	api.Get("/seasons/:id/games", handlers.GetGames(db))
	api.Post("/seasons/:id/games", middleware.RequireRole("admin"), handlers.CreateGame(db))
	// The leaderboard is recomputed from the season's full score set on every request
	api.Get("/seasons/:id/leaderboard", handlers.GetLeaderboard(db))

	// Course routes
	api.Get("/courses", handlers.GetCourses(db))
	api.Post("/courses", middleware.RequireRole("admin"), handlers.CreateCourse(db))

	// Score routes — submission runs the score evaluator over the whole game
	api.Get("/games/:id/scores", handlers.GetGameScores(db))
	api.Post("/games/:id/scores", handlers.SubmitScore(db, policy))

	// Player profile + achievement progress
	api.Get("/players/me", handlers.GetMe(db))
	api.Patch("/players/me", handlers.UpdateMe(db))
	api.Get("/players/me/achievements", handlers.GetAchievements(db))

	// Admin recalculation batches — sequential, partial-failure-tolerant passes
	// over every player (handicaps) or every game (points and bonuses)
	admin := api.Group("/admin", middleware.RequireRole("admin"))
	admin.Post("/recalc/handicaps", handlers.RecalculateHandicaps(db))
	admin.Post("/recalc/bonuses", handlers.RecalculateBonuses(db, policy))

	// Start listening for HTTP connections on the configured port.
	// ":" + cfg.Port produces a string like ":8080" — listen on all network interfaces.
	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
