// leaderboard.go — the Leaderboard Ranker.
// Turns the complete set of scored rounds for one season into ordered
// standings. The ranking is always recomputed from scratch: there is no cached
// leaderboard state anywhere in the system, so a stale standings bug simply
// cannot exist. At club volumes (one season's rounds, not a global event
// stream) the recomputation cost is negligible.
package scoring

import (
	"sort"

	"github.com/google/uuid"
)

// SeasonScore is one scored round as the ranker sees it — already filtered to
// a single season by the caller.
type SeasonScore struct {
	PlayerID    uuid.UUID
	PlayerName  string
	RawScore    int // Strokes taken; lower is better
	Points      int // Base points awarded by the evaluator
	BonusPoints int // Best-score bonus awarded by the evaluator
}

// Row is one player's aggregated standing in the season leaderboard.
// Rows are derived values — they are never persisted.
type Row struct {
	PlayerID    uuid.UUID `json:"player_id"`
	PlayerName  string    `json:"player_name"`
	Rank        int       `json:"rank"`
	GamesPlayed int       `json:"games_played"`
	TotalPoints int       `json:"total_points"`
	AvgScore    float64   `json:"avg_score"`
}

// Rank aggregates the season's scored rounds per player and returns the
// standings in final order. Players with zero rounds never appear (there is
// nothing to average), and an empty input produces an empty leaderboard, not
// an error.
//
// Ordering is a strict total order:
//  1. TotalPoints descending — more points ranks higher.
//  2. AvgScore ascending — on equal points, fewer strokes ranks higher.
//  3. PlayerID string ascending — a stable tie-break so the output order is
//     deterministic even for players tied on both points and average.
//
// Rank numbers use standard competition ranking: players tied on
// (TotalPoints, AvgScore) share a rank, and the next distinct pair skips the
// shared positions — two players tied at rank 2 are followed by rank 4, the
// same way golf posts "T2" finishes.
func Rank(scores []SeasonScore) []Row {
	// Group the rounds by player, accumulating count, points and stroke sum.
	type totals struct {
		name       string
		games      int
		points     int
		strokesSum int
	}
	byPlayer := make(map[uuid.UUID]*totals)
	for _, s := range scores {
		t, ok := byPlayer[s.PlayerID]
		if !ok {
			t = &totals{name: s.PlayerName}
			byPlayer[s.PlayerID] = t
		}
		t.games++
		t.points += s.Points + s.BonusPoints
		t.strokesSum += s.RawScore
	}

	rows := make([]Row, 0, len(byPlayer))
	for id, t := range byPlayer {
		rows = append(rows, Row{
			PlayerID:    id,
			PlayerName:  t.name,
			GamesPlayed: t.games,
			TotalPoints: t.points,
			AvgScore:    float64(t.strokesSum) / float64(t.games),
		})
	}

	// Sort by the three-level key. Map iteration order is random in Go, so
	// the tertiary PlayerID comparison is what makes repeated calls over the
	// same data come out identical.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		if rows[i].AvgScore != rows[j].AvgScore {
			return rows[i].AvgScore < rows[j].AvgScore
		}
		return rows[i].PlayerID.String() < rows[j].PlayerID.String()
	})

	// Assign standard competition ranks. A row only starts a new rank when
	// its (points, avg) pair differs from the previous row; the new rank is
	// the row's 1-based position, which is what produces the skip after a tie.
	for i := range rows {
		if i > 0 && rows[i].TotalPoints == rows[i-1].TotalPoints && rows[i].AvgScore == rows[i-1].AvgScore {
			rows[i].Rank = rows[i-1].Rank
			continue
		}
		rows[i].Rank = i + 1
	}

	return rows
}
