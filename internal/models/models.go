// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go
// values. The struct field tags (the backtick strings like `gorm:"..."`) tell GORM
// how to handle each field: its column type, constraints, default values, and
// relationships.
//
// The data model represents a club golf score tracker where:
//   - Players join Seasons (the club's competition periods) with a join code
//   - Seasons contain Games played at Courses
//   - Games collect one RoundScore per player (raw strokes + awarded points)
//   - EarnedAchievements record which catalog achievements a player has unlocked
//
// Everything derived — leaderboards, handicaps, achievement progress — is computed
// fresh by the internal/scoring engine from these rows; none of it is cached here.
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// Using UUIDs instead of auto-incrementing integers makes IDs safe to generate
	// client-side and avoids leaking record counts to end users.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string
// type plus constants. This gives us type safety while keeping the values
// human-readable in the database.

// PlayerRole represents a player's permission level across the platform.
type PlayerRole string

const (
	PlayerRoleAdmin  PlayerRole = "admin"  // Full access: manage seasons, courses, games, recalculations
	PlayerRoleMember PlayerRole = "member" // Regular player: can join seasons and submit scores
)

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name
// (snake_cased and pluralized) as the table name by default: Player -> players,
// Season -> seasons, etc.

// Player represents a registered club member.
// Players are created automatically the first time a Clerk-authenticated user hits
// the API. The ClerkID links our internal record to Clerk's identity system.
type Player struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"` // UUID primary key; the DB generates it automatically
	ClerkID     *string    `gorm:"uniqueIndex:idx_players_clerk_id"`               // Clerk's user ID (e.g. "user_2abc123"); pointer = nullable for legacy rows
	DisplayName string     `gorm:"not null"`                                       // The name shown in the app; populated from the Clerk JWT "name" claim
	Email       string     `gorm:"uniqueIndex;not null"`                           // Unique email; populated from the Clerk JWT "email" claim
	AvatarURL   *string    // Optional profile picture URL; pointer means it can be NULL in the DB
	Bio         *string    // Optional short bio shown on the profile screen
	Role        PlayerRole `gorm:"type:player_role;not null;default:'member'"` // Synced from Clerk publicMetadata via the JWT "role" claim
	Handicap    *float64   `gorm:"type:decimal(4,1)"`                          // Computed handicap index; NULL until the first computation succeeds
	CreatedAt   time.Time  // GORM automatically sets this on create
	UpdatedAt   time.Time  // GORM automatically updates this on every save
}

// Season is a named, time-bounded competition period grouping games and
// participants. The Active flag controls whether new joins and score submissions
// are accepted — that policy lives in the handlers; the scoring engine only ever
// reads season identity and scope.
type Season struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string     `gorm:"not null"`             // e.g. "Summer 2026"
	Code      string     `gorm:"uniqueIndex;not null"` // Short join code members type into the app (e.g. "SUM26")
	StartDate *time.Time // Optional season start; pointer = nullable
	EndDate   *time.Time // Optional season end; pointer = nullable
	Active    bool       `gorm:"not null;default:true"` // Inactive seasons reject new joins and submissions
	CreatedAt time.Time
	UpdatedAt time.Time
	Games     []Game         `gorm:"foreignKey:SeasonID"` // Scheduled rounds that make up this season
	Players   []SeasonPlayer `gorm:"foreignKey:SeasonID"` // Membership list for this season
}

// SeasonPlayer links a Player to a Season they've joined.
// The unique index (idx_season_player) ensures a player joins a season only once.
type SeasonPlayer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SeasonID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_season_player"` // Combined unique index with PlayerID
	Season   Season    `gorm:"foreignKey:SeasonID"`
	PlayerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_season_player"`
	Player   Player    `gorm:"foreignKey:PlayerID"`
	JoinedAt time.Time `gorm:"autoCreateTime"` // Set automatically by GORM on insert
}

// Course represents a golf course where games are played.
// Par is the whole-course par — the scoring engine uses it for handicap
// differentials (raw score minus par), so every round played here inherits
// this value through its game.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	City      string    `gorm:"not null;default:''"` // Defaults to empty string; can be filled in later
	State     string    `gorm:"not null;default:''"` // Defaults to empty string; can be filled in later
	Par       int       `gorm:"not null;default:72"` // Whole-course par; feeds handicap differentials
	HoleCount int       `gorm:"not null;default:18"` // Most courses have 18 holes; some have 9
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Game is one scheduled round at a course within a season.
// Games are owned by their season and are immutable once created except through
// administrative edits.
type Game struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SeasonID      uuid.UUID `gorm:"type:uuid;not null"`
	Season        Season    `gorm:"foreignKey:SeasonID"`
	CourseID      uuid.UUID `gorm:"type:uuid;not null"`
	Course        Course    `gorm:"foreignKey:CourseID"` // GORM relationship: preloads the Course struct when queried
	Name          *string   // Optional display name (e.g. "Round 4 — Captain's Day")
	ScheduledDate time.Time `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Scores        []RoundScore `gorm:"foreignKey:GameID"` // One score per participating player
}

// RoundScore is the record of one player's result in one game.
// RawScore is what the player submits; Points and BonusPoints are written by the
// scoring engine when the score is submitted and rewritten only by an
// administrator-triggered recalculation pass. The unique index (idx_game_player)
// ensures one score per player per game.
type RoundScore struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GameID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_player"` // Combined unique index with PlayerID
	Game        Game      `gorm:"foreignKey:GameID"`
	PlayerID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_player"`
	Player      Player    `gorm:"foreignKey:PlayerID"`
	RawScore    int       `gorm:"not null"`           // Strokes taken; lower is better
	Points      int       `gorm:"not null;default:0"` // Base points from the placement table; never negative
	BonusPoints int       `gorm:"not null;default:0"` // Best-score bonus; never negative
	SubmittedAt time.Time `gorm:"autoCreateTime"`     // Set automatically by GORM on insert; orders streak detection
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`     // Updated automatically by GORM on every save
}

// EarnedAchievement records that a player has unlocked one catalog achievement.
// The Key column matches a key in the scoring package's static catalog — the
// catalog itself is compiled into the binary, only the unlocks are persisted.
// The unique index (idx_player_achievement) prevents double-granting.
type EarnedAchievement struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlayerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_player_achievement"` // Combined unique index with Key
	Player   Player    `gorm:"foreignKey:PlayerID"`
	Key      string    `gorm:"not null;uniqueIndex:idx_player_achievement"` // Catalog key, e.g. "hot_streak_3"
	EarnedAt time.Time `gorm:"autoCreateTime"`
}
