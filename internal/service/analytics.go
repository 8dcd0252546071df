package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"portalgambit/backend/internal/docstore"
	"portalgambit/backend/internal/logging"
	"portalgambit/backend/internal/models"
)

const (
	globalStatsKey    = "global_stats"
	globalStatsTTL    = time.Hour
	globalSampleSize  = 10000
	popularEntryLimit = 5
	dateLayout        = "2006-01-02"
)

// AnalyticsService records per-game analytics and serves cached aggregates.
type AnalyticsService struct {
	store docstore.Store
	now   func() time.Time
}

func NewAnalyticsService(store docstore.Store) *AnalyticsService {
	return &AnalyticsService{store: store, now: time.Now}
}

// RecordGameAnalytics stores the derived analytics record for a game,
// replacing any earlier record for the same game.
func (s *AnalyticsService) RecordGameAnalytics(ctx context.Context, in models.GameAnalyticsInput) (models.GameAnalytics, error) {
	if err := in.Validate(); err != nil {
		return models.GameAnalytics{}, fmt.Errorf("%w: %v", ErrInvalidGame, err)
	}
	a := models.NewGameAnalytics(in, s.now().UTC().Truncate(time.Millisecond))
	if err := s.store.Set(ctx, AnalyticsCollection, models.AnalyticsID(in.GameID), a.ToDocument()); err != nil {
		return models.GameAnalytics{}, err
	}
	return a, nil
}

// DailyStatsKey is the cache document id for the UTC day containing date.
func DailyStatsKey(date time.Time) string {
	return "daily_stats_" + date.UTC().Format(dateLayout)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetDailyStats returns the aggregate for the UTC day containing date. Once
// computed, the aggregate is cached and served as is.
func (s *AnalyticsService) GetDailyStats(ctx context.Context, date time.Time) (models.DailyStats, error) {
	key := DailyStatsKey(date)
	doc, err := s.store.Get(ctx, AnalyticsCacheCollection, key)
	switch {
	case err == nil:
		stats, derr := models.DailyStatsFromDocument(doc)
		if derr == nil {
			logging.Debugf("daily stats cache hit %s", key)
			return stats, nil
		}
		log.Printf("recomputing malformed cache entry %s: %v", key, derr)
	case !errors.Is(err, docstore.ErrNotFound):
		return models.DailyStats{}, err
	}
	return s.RefreshDailyStats(ctx, date)
}

// RefreshDailyStats recomputes the aggregate for the day and overwrites the
// cache entry.
func (s *AnalyticsService) RefreshDailyStats(ctx context.Context, date time.Time) (models.DailyStats, error) {
	day := startOfDay(date)
	records, err := s.queryAnalytics(ctx, docstore.Query{
		Filters: []docstore.Filter{
			docstore.Where("timestamp", docstore.OpGreaterOrEqual, day),
			docstore.Where("timestamp", docstore.OpLess, day.Add(24*time.Hour)),
		},
	})
	if err != nil {
		return models.DailyStats{}, err
	}

	stats := dailyStats(records)
	if err := s.store.Set(ctx, AnalyticsCacheCollection, DailyStatsKey(day), stats.ToDocument()); err != nil {
		return models.DailyStats{}, err
	}
	return stats, nil
}

func dailyStats(records []models.GameAnalytics) models.DailyStats {
	stats := models.DailyStats{
		TotalGames:   len(records),
		GameTypes:    map[string]int{},
		TimeControls: map[string]int{},
	}
	var totalDuration float64
	var totalMoves int
	for _, r := range records {
		totalDuration += r.Duration
		totalMoves += r.TotalMoves
		switch r.Result {
		case models.ResultWhiteWin:
			stats.WhiteWins++
		case models.ResultBlackWin:
			stats.BlackWins++
		case models.ResultDraw:
			stats.Draws++
		default:
			stats.Abandoned++
		}
		stats.GameTypes[r.GameType]++
		stats.TimeControls[r.TimeControl.String()]++
	}
	if stats.TotalGames > 0 {
		stats.AverageDuration = totalDuration / float64(stats.TotalGames)
		stats.AverageMoves = float64(totalMoves) / float64(stats.TotalGames)
	}
	return stats
}

// GetPlayerPerformance summarizes uid's analytics records from the last days
// days, oldest first.
func (s *AnalyticsService) GetPlayerPerformance(ctx context.Context, uid string, days int) (models.PlayerPerformance, error) {
	since := s.now().UTC().Add(-time.Duration(clampDays(days)) * 24 * time.Hour)

	var records []models.GameAnalytics
	seen := make(map[string]bool)
	for _, field := range []string{"white_player_id", "black_player_id"} {
		res, err := s.queryAnalytics(ctx, docstore.Query{
			Filters: []docstore.Filter{
				docstore.Where(field, docstore.OpEqual, uid),
				docstore.Where("timestamp", docstore.OpGreaterOrEqual, since),
			},
		})
		if err != nil {
			return models.PlayerPerformance{}, err
		}
		for _, r := range res {
			if r.GameID != "" && seen[r.GameID] {
				continue
			}
			seen[r.GameID] = true
			records = append(records, r)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return playerPerformance(uid, records), nil
}

func playerPerformance(uid string, records []models.GameAnalytics) models.PlayerPerformance {
	perf := models.PlayerPerformance{
		RatingProgression: []models.RatingPoint{},
		PerformanceByColor: map[string]models.ColorPerformance{
			"white": {},
			"black": {},
		},
	}
	if len(records) == 0 {
		return perf
	}

	timeControls := newCounter()
	gameTypes := newCounter()
	var totalDuration float64
	var totalMoves, totalWins int
	for _, r := range records {
		isWhite := r.WhitePlayerID == uid
		color := "black"
		if isWhite {
			color = "white"
		}
		perf.RatingProgression = append(perf.RatingProgression, models.RatingPoint{
			Timestamp:    r.Timestamp,
			RatingChange: r.RatingChange.For(isWhite),
		})

		cp := perf.PerformanceByColor[color]
		cp.Games++
		if (isWhite && r.Result == models.ResultWhiteWin) || (!isWhite && r.Result == models.ResultBlackWin) {
			cp.Wins++
			totalWins++
		}
		perf.PerformanceByColor[color] = cp

		timeControls.add(r.TimeControl.String())
		gameTypes.add(r.GameType)
		totalDuration += r.Duration
		totalMoves += r.TotalMoves
	}

	n := float64(len(records))
	perf.AverageGameDuration = totalDuration / n
	perf.AverageMovesPerGame = float64(totalMoves) / n
	perf.WinRate = float64(totalWins) / n
	tc := timeControls.top(1)[0].key
	gt := gameTypes.top(1)[0].key
	perf.PreferredTimeControl = &tc
	perf.PreferredGameType = &gt
	return perf
}

// GetGlobalStats serves the cached summary while it is younger than an hour
// and recomputes it otherwise.
func (s *AnalyticsService) GetGlobalStats(ctx context.Context) (models.GlobalStats, error) {
	doc, err := s.store.Get(ctx, AnalyticsCacheCollection, globalStatsKey)
	switch {
	case err == nil:
		cached, derr := models.GlobalStatsFromDocument(doc)
		if derr != nil {
			log.Printf("recomputing malformed cache entry %s: %v", globalStatsKey, derr)
			break
		}
		if s.now().Sub(cached.LastUpdated) < globalStatsTTL {
			return cached, nil
		}
	case !errors.Is(err, docstore.ErrNotFound):
		return models.GlobalStats{}, err
	}
	return s.RefreshGlobalStats(ctx)
}

// RefreshGlobalStats recomputes the summary over the most recent records and
// caches it. An empty sample is returned but not cached.
func (s *AnalyticsService) RefreshGlobalStats(ctx context.Context) (models.GlobalStats, error) {
	records, err := s.queryAnalytics(ctx, docstore.Query{
		OrderBy: []docstore.Order{{Field: "timestamp", Direction: docstore.Descending}},
		Limit:   globalSampleSize,
	})
	if err != nil {
		return models.GlobalStats{}, err
	}

	stats := globalStats(records, s.now().UTC().Truncate(time.Millisecond))
	if stats.TotalGames == 0 {
		return stats, nil
	}
	if err := s.store.Set(ctx, AnalyticsCacheCollection, globalStatsKey, stats.ToDocument()); err != nil {
		return models.GlobalStats{}, err
	}
	return stats, nil
}

func globalStats(records []models.GameAnalytics, now time.Time) models.GlobalStats {
	stats := models.GlobalStats{
		TotalGames:          len(records),
		PopularTimeControls: map[string]int{},
		PopularGameTypes:    map[string]int{},
		LastUpdated:         now,
	}
	if len(records) == 0 {
		return stats
	}

	timeControls := newCounter()
	gameTypes := newCounter()
	var whiteWins, totalMoves int
	var totalDuration float64
	for _, r := range records {
		if r.Result == models.ResultWhiteWin {
			whiteWins++
		}
		totalDuration += r.Duration
		totalMoves += r.TotalMoves
		timeControls.add(r.TimeControl.String())
		gameTypes.add(r.GameType)
	}

	n := float64(len(records))
	stats.WhiteWinRate = float64(whiteWins) / n
	stats.AverageGameDuration = totalDuration / n
	stats.AverageMovesPerGame = float64(totalMoves) / n
	for _, e := range timeControls.top(popularEntryLimit) {
		stats.PopularTimeControls[e.key] = e.count
	}
	for _, e := range gameTypes.top(popularEntryLimit) {
		stats.PopularGameTypes[e.key] = e.count
	}
	return stats
}

func (s *AnalyticsService) queryAnalytics(ctx context.Context, q docstore.Query) ([]models.GameAnalytics, error) {
	docs, err := s.store.Query(ctx, AnalyticsCollection, q)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, models.GameAnalyticsFromDocument), nil
}

type counterEntry struct {
	key   string
	count int
}

// counter is a histogram that remembers first-seen order, which breaks ties
// in top.
type counter struct {
	index   map[string]int
	entries []counterEntry
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(key string) {
	i, ok := c.index[key]
	if !ok {
		i = len(c.entries)
		c.index[key] = i
		c.entries = append(c.entries, counterEntry{key: key})
	}
	c.entries[i].count++
}

func (c *counter) top(n int) []counterEntry {
	out := append([]counterEntry(nil), c.entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
