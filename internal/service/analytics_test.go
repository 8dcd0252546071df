package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"portalgambit/backend/internal/docstore"
	"portalgambit/backend/internal/models"
)

func analyticsInput(id, white, black string, result models.GameResult, moves int) models.GameAnalyticsInput {
	return models.GameAnalyticsInput{
		GameID:        id,
		WhitePlayerID: white,
		BlackPlayerID: black,
		StartTime:     epoch.Add(-5 * time.Minute),
		EndTime:       epoch,
		Result:        result,
		Moves:         make([]string, moves),
		RatingChange:  models.RatingChange{White: 10, Black: -10},
		TimeControl:   models.TimeControl{Initial: 300, Increment: 2},
	}
}

func TestRecordGameAnalytics(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	s := NewAnalyticsService(store)
	s.now = newClock(epoch).Now

	a, err := s.RecordGameAnalytics(ctx, analyticsInput("g1", "w", "b", models.ResultDraw, 20))
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if a.Duration != 300 || a.TotalMoves != 20 || a.GameType != models.DefaultGameType || !a.Timestamp.Equal(epoch) {
		t.Fatalf("unexpected record: %+v", a)
	}
	if _, err := store.Get(ctx, AnalyticsCollection, "game_g1"); err != nil {
		t.Fatalf("record not stored under game_g1: %v", err)
	}

	bad := analyticsInput("", "w", "b", models.ResultDraw, 1)
	if _, err := s.RecordGameAnalytics(ctx, bad); !errors.Is(err, ErrInvalidGame) {
		t.Fatalf("expected ErrInvalidGame, got %v", err)
	}
}

func TestDailyStatsServedFromCache(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	s := NewAnalyticsService(store)
	s.now = newClock(epoch).Now

	_, _ = s.RecordGameAnalytics(ctx, analyticsInput("g1", "a", "b", models.ResultWhiteWin, 10))
	_, _ = s.RecordGameAnalytics(ctx, analyticsInput("g2", "a", "b", models.ResultAbandoned, 30))

	first, err := s.GetDailyStats(ctx, epoch)
	if err != nil {
		t.Fatalf("daily stats: %v", err)
	}
	if first.TotalGames != 2 || first.WhiteWins != 1 || first.Abandoned != 1 || first.AverageMoves != 20 {
		t.Fatalf("unexpected stats: %+v", first)
	}
	if first.TimeControls["300/2"] != 2 || first.GameTypes[models.DefaultGameType] != 2 {
		t.Fatalf("unexpected breakdown: %+v", first)
	}
	if store.count(AnalyticsCollection) != 1 {
		t.Fatalf("expected one analytics query, got %d", store.count(AnalyticsCollection))
	}

	_, _ = s.RecordGameAnalytics(ctx, analyticsInput("g3", "a", "b", models.ResultDraw, 10))
	second, err := s.GetDailyStats(ctx, epoch.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("daily stats: %v", err)
	}
	if second.TotalGames != 2 {
		t.Fatalf("cached entry should be served as is, got %+v", second)
	}
	if store.count(AnalyticsCollection) != 1 {
		t.Fatalf("cache hit should not query analytics, got %d queries", store.count(AnalyticsCollection))
	}

	refreshed, err := s.RefreshDailyStats(ctx, epoch)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.TotalGames != 3 {
		t.Fatalf("refresh should recompute, got %+v", refreshed)
	}
}

func TestDailyStatsEmptyDay(t *testing.T) {
	s := NewAnalyticsService(docstore.NewMemoryStore())
	stats, err := s.GetDailyStats(context.Background(), epoch.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("daily stats: %v", err)
	}
	if stats.TotalGames != 0 || stats.AverageDuration != 0 || stats.GameTypes == nil {
		t.Fatalf("unexpected empty-day stats: %+v", stats)
	}
}

func TestGlobalStatsCacheExpires(t *testing.T) {
	ctx := context.Background()
	clk := newClock(epoch)
	store := newCountingStore()
	s := NewAnalyticsService(store)
	s.now = clk.Now

	_, _ = s.RecordGameAnalytics(ctx, analyticsInput("g1", "a", "b", models.ResultWhiteWin, 10))

	first, err := s.GetGlobalStats(ctx)
	if err != nil {
		t.Fatalf("global stats: %v", err)
	}
	if first.TotalGames != 1 || first.WhiteWinRate != 1 || !first.LastUpdated.Equal(epoch) {
		t.Fatalf("unexpected stats: %+v", first)
	}

	_, _ = s.RecordGameAnalytics(ctx, analyticsInput("g2", "a", "b", models.ResultBlackWin, 10))
	clk.Advance(30 * time.Minute)
	cached, _ := s.GetGlobalStats(ctx)
	if cached.TotalGames != 1 || store.count(AnalyticsCollection) != 1 {
		t.Fatalf("fresh cache should be served, got %+v after %d queries", cached, store.count(AnalyticsCollection))
	}

	clk.Advance(31 * time.Minute)
	fresh, err := s.GetGlobalStats(ctx)
	if err != nil {
		t.Fatalf("global stats: %v", err)
	}
	if fresh.TotalGames != 2 || fresh.WhiteWinRate != 0.5 {
		t.Fatalf("stale cache should be recomputed, got %+v", fresh)
	}
	if !fresh.LastUpdated.Equal(epoch.Add(61 * time.Minute)) {
		t.Fatalf("last_updated not advanced: %v", fresh.LastUpdated)
	}
}

func TestGlobalStatsKeepsTopFive(t *testing.T) {
	ctx := context.Background()
	s := NewAnalyticsService(docstore.NewMemoryStore())
	s.now = newClock(epoch).Now

	for i := 0; i < 7; i++ {
		for j := 0; j <= i; j++ {
			in := analyticsInput(fmt.Sprintf("g%d_%d", i, j), "a", "b", models.ResultDraw, 5)
			in.TimeControl = models.TimeControl{Initial: 60 * (i + 1)}
			_, _ = s.RecordGameAnalytics(ctx, in)
		}
	}
	stats, err := s.RefreshGlobalStats(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(stats.PopularTimeControls) != 5 {
		t.Fatalf("expected 5 popular time controls, got %v", stats.PopularTimeControls)
	}
	if stats.PopularTimeControls["420/0"] != 7 || stats.PopularTimeControls["60/0"] != 0 {
		t.Fatalf("unexpected top entries: %v", stats.PopularTimeControls)
	}
}

func TestGlobalStatsEmptyIsNotCached(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	s := NewAnalyticsService(store)

	stats, err := s.GetGlobalStats(ctx)
	if err != nil {
		t.Fatalf("global stats: %v", err)
	}
	if stats.TotalGames != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
	if store.Len(AnalyticsCacheCollection) != 0 {
		t.Fatalf("empty stats should not be cached")
	}
}

func TestPlayerPerformance(t *testing.T) {
	ctx := context.Background()
	clk := newClock(epoch)
	s := NewAnalyticsService(docstore.NewMemoryStore())
	s.now = clk.Now

	_, _ = s.RecordGameAnalytics(ctx, analyticsInput("g1", "u", "o", models.ResultWhiteWin, 10))
	clk.Advance(time.Minute)
	_, _ = s.RecordGameAnalytics(ctx, analyticsInput("g2", "o", "u", models.ResultWhiteWin, 30))
	clk.Advance(time.Minute)
	blitz := analyticsInput("g3", "o", "u", models.ResultBlackWin, 20)
	blitz.TimeControl = models.TimeControl{Initial: 180}
	_, _ = s.RecordGameAnalytics(ctx, blitz)

	perf, err := s.GetPlayerPerformance(ctx, "u", 30)
	if err != nil {
		t.Fatalf("performance: %v", err)
	}
	if len(perf.RatingProgression) != 3 {
		t.Fatalf("expected 3 rating points, got %+v", perf.RatingProgression)
	}
	wantChanges := []int{10, -10, -10}
	for i, p := range perf.RatingProgression {
		if p.RatingChange != wantChanges[i] {
			t.Fatalf("point %d: expected %d, got %d", i, wantChanges[i], p.RatingChange)
		}
		if i > 0 && p.Timestamp.Before(perf.RatingProgression[i-1].Timestamp) {
			t.Fatalf("progression not in time order")
		}
	}
	white, black := perf.PerformanceByColor["white"], perf.PerformanceByColor["black"]
	if white.Games != 1 || white.Wins != 1 || black.Games != 2 || black.Wins != 1 {
		t.Fatalf("unexpected color split: %+v", perf.PerformanceByColor)
	}
	if perf.AverageMovesPerGame != 20 || perf.WinRate != 2.0/3.0 {
		t.Fatalf("unexpected averages: %+v", perf)
	}
	if perf.PreferredTimeControl == nil || *perf.PreferredTimeControl != "300/2" {
		t.Fatalf("unexpected preferred time control: %v", perf.PreferredTimeControl)
	}

	empty, _ := s.GetPlayerPerformance(ctx, "nobody", 30)
	if empty.PreferredGameType != nil || len(empty.RatingProgression) != 0 {
		t.Fatalf("expected empty performance, got %+v", empty)
	}
}
