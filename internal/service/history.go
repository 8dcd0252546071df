package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"portalgambit/backend/internal/docstore"
	"portalgambit/backend/internal/models"
)

const (
	openingLength     = 3
	openingSampleSize = 1000
)

// HistoryService archives finished games and derives statistics from them.
type HistoryService struct {
	store    docstore.Store
	profiles *ProfileService
	now      func() time.Time
}

func NewHistoryService(store docstore.Store, profiles *ProfileService) *HistoryService {
	return &HistoryService{store: store, profiles: profiles, now: time.Now}
}

// ArchiveGame stores the game and then applies the rating change to both
// players. Profile updates are best effort: their failures are logged and do
// not undo the archive.
func (s *HistoryService) ArchiveGame(ctx context.Context, g models.GameHistory) (models.GameHistory, error) {
	g.ApplyDefaults(s.now().UTC())
	g.StartTime = g.StartTime.UTC().Truncate(time.Millisecond)
	g.EndTime = g.EndTime.UTC().Truncate(time.Millisecond)
	if err := g.Validate(); err != nil {
		return models.GameHistory{}, fmt.Errorf("%w: %v", ErrInvalidGame, err)
	}

	err := s.store.Create(ctx, GameHistoryCollection, g.GameID, g.ToDocument())
	if errors.Is(err, docstore.ErrAlreadyExists) {
		return models.GameHistory{}, ErrGameExists
	}
	if err != nil {
		return models.GameHistory{}, err
	}

	white, black := g.Result.Outcomes()
	s.applyRating(ctx, g.GameID, g.WhitePlayerID, g.RatingChange.White, white)
	s.applyRating(ctx, g.GameID, g.BlackPlayerID, g.RatingChange.Black, black)
	return g, nil
}

func (s *HistoryService) applyRating(ctx context.Context, gameID, uid string, delta int, outcome models.Outcome) {
	if s.profiles == nil {
		return
	}
	rating, err := s.profiles.ApplyRatingChange(ctx, uid, delta, outcome)
	if err != nil {
		log.Printf("game %s: rating update for %s failed: %v", gameID, uid, err)
		return
	}
	log.Printf("game %s: %s rated %d (%+d, %s)", gameID, uid, rating, delta, outcome)
}

func (s *HistoryService) GetGame(ctx context.Context, gameID string) (models.GameHistory, error) {
	doc, err := s.store.Get(ctx, GameHistoryCollection, gameID)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.GameHistory{}, ErrGameNotFound
	}
	if err != nil {
		return models.GameHistory{}, err
	}
	return models.GameHistoryFromDocument(doc)
}

// GetUserGames returns the most recent games uid played with either color.
func (s *HistoryService) GetUserGames(ctx context.Context, uid string, limit int) ([]models.GameHistory, error) {
	limit = clampLimit(limit, 50)
	return s.recentGames(ctx, limit,
		[]docstore.Filter{docstore.Where("white_player_id", docstore.OpEqual, uid)},
		[]docstore.Filter{docstore.Where("black_player_id", docstore.OpEqual, uid)},
	)
}

// GetGamesBetweenPlayers returns the most recent games between a and b with
// either color assignment.
func (s *HistoryService) GetGamesBetweenPlayers(ctx context.Context, a, b string, limit int) ([]models.GameHistory, error) {
	limit = clampLimit(limit, 10)
	return s.recentGames(ctx, limit,
		[]docstore.Filter{
			docstore.Where("white_player_id", docstore.OpEqual, a),
			docstore.Where("black_player_id", docstore.OpEqual, b),
		},
		[]docstore.Filter{
			docstore.Where("white_player_id", docstore.OpEqual, b),
			docstore.Where("black_player_id", docstore.OpEqual, a),
		},
	)
}

// recentGames runs one query per filter set, merges the results by game id
// and keeps the limit most recent by end time.
func (s *HistoryService) recentGames(ctx context.Context, limit int, filterSets ...[]docstore.Filter) ([]models.GameHistory, error) {
	var docs []docstore.Document
	for _, filters := range filterSets {
		res, err := s.store.Query(ctx, GameHistoryCollection, docstore.Query{
			Filters: filters,
			OrderBy: []docstore.Order{{Field: "end_time", Direction: docstore.Descending}},
			Limit:   limit,
		})
		if err != nil {
			return nil, err
		}
		docs = append(docs, res...)
	}

	games := dedupeGames(decodeAll(docs, models.GameHistoryFromDocument))
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].EndTime.After(games[j].EndTime)
	})
	if len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}

func dedupeGames(games []models.GameHistory) []models.GameHistory {
	seen := make(map[string]bool, len(games))
	out := games[:0]
	for _, g := range games {
		if seen[g.GameID] {
			continue
		}
		seen[g.GameID] = true
		out = append(out, g)
	}
	return out
}

// GetUserStats tallies uid's games that ended within the last days days.
// Abandoned games count toward the totals but not toward wins, losses or
// draws.
func (s *HistoryService) GetUserStats(ctx context.Context, uid string, days int) (models.UserGameStats, error) {
	since := s.now().UTC().Add(-time.Duration(clampDays(days)) * 24 * time.Hour)

	var docs []docstore.Document
	for _, field := range []string{"white_player_id", "black_player_id"} {
		res, err := s.store.Query(ctx, GameHistoryCollection, docstore.Query{
			Filters: []docstore.Filter{
				docstore.Where(field, docstore.OpEqual, uid),
				docstore.Where("end_time", docstore.OpGreaterOrEqual, since),
			},
		})
		if err != nil {
			return models.UserGameStats{}, err
		}
		docs = append(docs, res...)
	}

	var stats models.UserGameStats
	var totalDuration time.Duration
	for _, g := range dedupeGames(decodeAll(docs, models.GameHistoryFromDocument)) {
		stats.TotalGames++
		isWhite := g.WhitePlayerID == uid
		if isWhite {
			stats.WhiteGames++
		} else {
			stats.BlackGames++
		}
		stats.RatingChange += g.RatingChange.For(isWhite)

		switch g.Result {
		case models.ResultWhiteWin, models.ResultBlackWin:
			if (g.Result == models.ResultWhiteWin) == isWhite {
				stats.Wins++
			} else {
				stats.Losses++
			}
		case models.ResultDraw:
			stats.Draws++
		}

		stats.TotalMoves += len(g.Moves)
		totalDuration += g.Duration()
	}
	if stats.TotalGames > 0 {
		stats.AverageGameLength = totalDuration.Seconds() / float64(stats.TotalGames)
	}
	return stats, nil
}

// GetPopularOpenings groups the most recent games by their first three moves.
// Results are ordered by count, most played first.
func (s *HistoryService) GetPopularOpenings(ctx context.Context, limit int) ([]models.OpeningStats, error) {
	docs, err := s.store.Query(ctx, GameHistoryCollection, docstore.Query{
		OrderBy: []docstore.Order{{Field: "end_time", Direction: docstore.Descending}},
		Limit:   openingSampleSize,
	})
	if err != nil {
		return nil, err
	}
	return popularOpenings(decodeAll(docs, models.GameHistoryFromDocument), clampLimit(limit, 10)), nil
}

func popularOpenings(games []models.GameHistory, limit int) []models.OpeningStats {
	index := make(map[string]int)
	var out []models.OpeningStats
	for _, g := range games {
		if len(g.Moves) < openingLength {
			continue
		}
		key := strings.Join(g.Moves[:openingLength], " ")
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, models.OpeningStats{Moves: key})
		}
		out[i].Count++
		if g.Result.Decisive() {
			out[i].Wins++
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Moves < out[j].Moves
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []models.OpeningStats{}
	}
	return out
}

const maxDays = 3650

func clampDays(days int) int {
	if days <= 0 {
		return 30
	}
	if days > maxDays {
		return maxDays
	}
	return days
}
