// achievements.go — the Achievement Progress Tracker.
// The achievement catalog is a static list compiled into the binary; what the
// tracker computes is each player's numeric progress toward every achievement
// they could still earn. Hidden achievements (surprise unlocks like a perfect
// round) expose no progress signal at all — whether and how they unlock is an
// external collaborator's concern, the tracker simply never reports them.
package scoring

import (
	"sort"
	"time"
)

// ProgressRule identifies which computation drives an achievement's progress.
type ProgressRule string

const (
	RuleGamesPlayed  ProgressRule = "games_played"  // All-time rounds submitted
	RuleFirstWin     ProgressRule = "first_win"     // All-time bonus-earning rounds
	RuleSeasonPoints ProgressRule = "season_points" // Points + bonus summed over the season
	RuleStreak       ProgressRule = "streak"        // Best run of consecutive bonus-earning rounds
	RuleSeasonWins   ProgressRule = "season_wins"   // Bonus-earning rounds within the season
	RuleAttendance   ProgressRule = "attendance"    // Season rounds vs. the season's most active player
	RuleSeasonRank   ProgressRule = "season_rank"   // Current season rank at or above a position
	RuleHidden       ProgressRule = "hidden"        // No progress signal; unlocked elsewhere
)

// Definition is one catalog entry. Target is the fixed threshold for every
// rule except attendance, whose target is dynamic (see TrackProgress).
type Definition struct {
	Key      string
	Name     string
	Category string
	Tier     string
	Rule     ProgressRule
	Target   int
}

// catalog is the club's achievement list. Order matters only for display;
// the tracker keys its output by achievement Key.
var catalog = []Definition{
	{Key: "first_round", Name: "Breaking Ground", Category: "participation", Tier: "bronze", Rule: RuleGamesPlayed, Target: 1},
	{Key: "regular", Name: "Club Regular", Category: "participation", Tier: "silver", Rule: RuleGamesPlayed, Target: 10},
	{Key: "veteran", Name: "Course Veteran", Category: "participation", Tier: "gold", Rule: RuleGamesPlayed, Target: 50},
	{Key: "first_win", Name: "Taste of Victory", Category: "winning", Tier: "bronze", Rule: RuleFirstWin, Target: 1},
	{Key: "point_collector", Name: "Point Collector", Category: "points", Tier: "silver", Rule: RuleSeasonPoints, Target: 100},
	{Key: "point_machine", Name: "Point Machine", Category: "points", Tier: "gold", Rule: RuleSeasonPoints, Target: 250},
	{Key: "hot_streak_3", Name: "Hot Streak", Category: "winning", Tier: "silver", Rule: RuleStreak, Target: 3},
	{Key: "hot_streak_5", Name: "On Fire", Category: "winning", Tier: "gold", Rule: RuleStreak, Target: 5},
	{Key: "domination", Name: "Domination", Category: "winning", Tier: "gold", Rule: RuleSeasonWins, Target: 5},
	{Key: "perfect_attendance", Name: "Perfect Attendance", Category: "participation", Tier: "silver", Rule: RuleAttendance},
	{Key: "season_champion", Name: "Season Champion", Category: "season", Tier: "gold", Rule: RuleSeasonRank, Target: 1},
	{Key: "season_runner_up", Name: "Runner-Up", Category: "season", Tier: "silver", Rule: RuleSeasonRank, Target: 2},
	{Key: "season_top_three", Name: "Podium Finish", Category: "season", Tier: "bronze", Rule: RuleSeasonRank, Target: 3},
	{Key: "perfect_score", Name: "Perfect Round", Category: "special", Tier: "gold", Rule: RuleHidden},
	{Key: "early_bird", Name: "Early Bird", Category: "special", Tier: "bronze", Rule: RuleHidden},
	{Key: "consistent_scorer", Name: "Mr. Consistent", Category: "special", Tier: "silver", Rule: RuleHidden},
}

// Catalog returns the full achievement catalog, hidden entries included.
// Callers get a copy so nobody can reorder or rewrite the shared list.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// PlayerScore is one of a player's scored rounds as the tracker sees it.
type PlayerScore struct {
	RawScore    int
	Points      int
	BonusPoints int
	SubmittedAt time.Time
}

// Progress is the player's standing against one achievement: Current out of
// Target, plus the catalog display label.
type Progress struct {
	Current int    `json:"current"`
	Target  int    `json:"target"`
	Label   string `json:"label"`
}

// ProgressInput bundles everything the tracker needs. AllScores is the
// player's complete history across seasons; the season-scoped fields may be
// empty/zero when no season is in view — season rules then report zero
// progress instead of failing.
type ProgressInput struct {
	AllScores         []PlayerScore
	SeasonScores      []PlayerScore
	SeasonLeaderboard []Row
	SeasonRank        int  // 1-based rank in the season standings; 0 = unranked
	HasSeason         bool // false when no season context was supplied
	Earned            map[string]bool
}

// TrackProgress computes progress toward every unearned, trackable achievement
// and returns it keyed by achievement Key. Hidden definitions and keys present
// in in.Earned never appear in the output. The computation reads its inputs
// without modifying them, and identical inputs always produce an identical
// mapping.
func TrackProgress(in ProgressInput) map[string]Progress {
	// Aggregate the season-independent counters once up front.
	allGames := len(in.AllScores)
	allWins := countWins(in.AllScores)

	seasonPoints := 0
	for _, s := range in.SeasonScores {
		seasonPoints += s.Points + s.BonusPoints
	}
	seasonWins := countWins(in.SeasonScores)

	// The attendance target is whatever the season's most active player has
	// managed so far — it moves as the season progresses, so it is recomputed
	// from the leaderboard on every call.
	attendanceTarget := 0
	for _, row := range in.SeasonLeaderboard {
		if row.GamesPlayed > attendanceTarget {
			attendanceTarget = row.GamesPlayed
		}
	}

	streak := bestStreak(in.AllScores)

	out := make(map[string]Progress)
	for _, def := range catalog {
		if def.Rule == RuleHidden || in.Earned[def.Key] {
			continue
		}

		p := Progress{Target: def.Target, Label: def.Name}
		switch def.Rule {
		case RuleGamesPlayed:
			p.Current = allGames
		case RuleFirstWin:
			p.Current = allWins
		case RuleSeasonPoints:
			if in.HasSeason {
				p.Current = seasonPoints
			}
		case RuleStreak:
			p.Current = streak
		case RuleSeasonWins:
			if in.HasSeason {
				p.Current = seasonWins
			}
		case RuleAttendance:
			// Dynamic target; both sides collapse to zero without a season.
			if in.HasSeason {
				p.Current = len(in.SeasonScores)
				p.Target = attendanceTarget
			}
		case RuleSeasonRank:
			// Binary progress: you either currently hold a qualifying rank
			// or you don't. Rank 0 means unranked, which never qualifies.
			p.Target = 1
			if in.HasSeason && in.SeasonRank > 0 && in.SeasonRank <= def.Target {
				p.Current = 1
			}
		}
		out[def.Key] = p
	}

	return out
}

// countWins counts the rounds that carried a best-score bonus — the club's
// definition of "winning" a round.
func countWins(scores []PlayerScore) int {
	wins := 0
	for _, s := range scores {
		if s.BonusPoints > 0 {
			wins++
		}
	}
	return wins
}

// bestStreak finds the longest run of consecutive bonus-earning rounds in the
// player's history, ordered by submission time. A round without a bonus resets
// the running streak; the best-ever streak is what counts, not the current
// one. The input is copied before sorting so the caller's slice keeps its
// order.
func bestStreak(scores []PlayerScore) int {
	ordered := make([]PlayerScore, len(scores))
	copy(ordered, scores)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].SubmittedAt.Before(ordered[j].SubmittedAt)
	})

	best, run := 0, 0
	for _, s := range ordered {
		if s.BonusPoints > 0 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}
