package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"portalgambit/backend/internal/docstore"
	"portalgambit/backend/internal/models"
)

func newHistoryService() (*HistoryService, *ProfileService) {
	store := docstore.NewMemoryStore()
	profiles := NewProfileService(store)
	h := NewHistoryService(store, profiles)
	h.now = newClock(epoch).Now
	return h, profiles
}

func game(id, white, black string, result models.GameResult, end time.Time, moves ...string) models.GameHistory {
	return models.GameHistory{
		GameID:        id,
		WhitePlayerID: white,
		BlackPlayerID: black,
		StartTime:     end.Add(-10 * time.Minute),
		EndTime:       end,
		Result:        result,
		Moves:         moves,
		WhiteRating:   1200,
		BlackRating:   1200,
		RatingChange:  models.RatingChange{White: 8, Black: -8},
		TimeControl:   models.TimeControl{Initial: 600, Increment: 5},
	}
}

func TestArchiveAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	h, _ := newHistoryService()

	winner := "w"
	g := game("g1", "w", "b", models.ResultWhiteWin, epoch, "e4", "e5", "Nf3")
	g.WinnerID = &winner

	archived, err := h.ArchiveGame(ctx, g)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if archived.GameType != models.DefaultGameType || archived.InitialPosition != models.DefaultInitialPosition {
		t.Fatalf("defaults not applied: %+v", archived)
	}
	got, err := h.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, archived) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, archived)
	}

	if _, err := h.ArchiveGame(ctx, g); !errors.Is(err, ErrGameExists) {
		t.Fatalf("expected ErrGameExists, got %v", err)
	}
	if _, err := h.GetGame(ctx, "nope"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestArchiveRejectsInvalidGame(t *testing.T) {
	h, _ := newHistoryService()
	g := game("g1", "w", "b", models.ResultDraw, epoch)
	g.StartTime = epoch.Add(time.Minute)
	if _, err := h.ArchiveGame(context.Background(), g); !errors.Is(err, ErrInvalidGame) {
		t.Fatalf("expected ErrInvalidGame, got %v", err)
	}
}

func TestArchiveUpdatesRatings(t *testing.T) {
	ctx := context.Background()
	h, profiles := newHistoryService()
	mustCreateProfile(t, profiles, "A", "alice", 1200)
	mustCreateProfile(t, profiles, "B", "bobby", 1200)

	if _, err := h.ArchiveGame(ctx, game("g1", "A", "B", models.ResultWhiteWin, epoch)); err != nil {
		t.Fatalf("archive: %v", err)
	}
	a, _ := profiles.Get(ctx, "A")
	b, _ := profiles.Get(ctx, "B")
	if a.Rating != 1208 || a.Wins != 1 || a.GamesPlayed != 1 {
		t.Fatalf("unexpected white profile: %+v", a)
	}
	if b.Rating != 1192 || b.Losses != 1 || b.GamesPlayed != 1 {
		t.Fatalf("unexpected black profile: %+v", b)
	}
}

func TestArchiveAbandonedCountsAsDraw(t *testing.T) {
	ctx := context.Background()
	h, profiles := newHistoryService()
	mustCreateProfile(t, profiles, "A", "alice", 1200)
	mustCreateProfile(t, profiles, "B", "bobby", 1200)

	if _, err := h.ArchiveGame(ctx, game("g1", "A", "B", models.ResultAbandoned, epoch)); err != nil {
		t.Fatalf("archive: %v", err)
	}
	a, _ := profiles.Get(ctx, "A")
	b, _ := profiles.Get(ctx, "B")
	if a.Draws != 1 || b.Draws != 1 || a.Rating != 1208 || b.Rating != 1192 {
		t.Fatalf("unexpected profiles: %+v / %+v", a, b)
	}
}

func TestArchiveSucceedsWithoutProfiles(t *testing.T) {
	h, _ := newHistoryService()
	if _, err := h.ArchiveGame(context.Background(), game("g1", "x", "y", models.ResultDraw, epoch)); err != nil {
		t.Fatalf("archive must not depend on profiles: %v", err)
	}
}

func TestUserGamesMergesBothColors(t *testing.T) {
	ctx := context.Background()
	h, _ := newHistoryService()
	for i := 0; i < 6; i++ {
		white, black := "u", "o"
		if i%2 == 1 {
			white, black = black, white
		}
		g := game(fmt.Sprintf("g%d", i), white, black, models.ResultDraw, epoch.Add(time.Duration(i)*time.Hour))
		if _, err := h.ArchiveGame(ctx, g); err != nil {
			t.Fatalf("archive: %v", err)
		}
	}
	_, _ = h.ArchiveGame(ctx, game("other", "x", "y", models.ResultDraw, epoch))

	games, err := h.GetUserGames(ctx, "u", 4)
	if err != nil {
		t.Fatalf("user games: %v", err)
	}
	want := []string{"g5", "g4", "g3", "g2"}
	if len(games) != len(want) {
		t.Fatalf("expected %d games, got %d", len(want), len(games))
	}
	for i, id := range want {
		if games[i].GameID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, games[i].GameID)
		}
	}

	between, _ := h.GetGamesBetweenPlayers(ctx, "o", "u", 10)
	if len(between) != 6 {
		t.Fatalf("expected 6 games between players, got %d", len(between))
	}
}

func TestUserStatsInvariants(t *testing.T) {
	ctx := context.Background()
	h, _ := newHistoryService()
	results := []models.GameResult{models.ResultWhiteWin, models.ResultBlackWin, models.ResultDraw, models.ResultAbandoned, models.ResultWhiteWin}
	for i, r := range results {
		white, black := "u", "o"
		if i%2 == 1 {
			white, black = black, white
		}
		g := game(fmt.Sprintf("g%d", i), white, black, r, epoch.Add(-time.Duration(i)*time.Hour), "e4", "e5")
		_, _ = h.ArchiveGame(ctx, g)
	}
	old := game("ancient", "u", "o", models.ResultWhiteWin, epoch.Add(-90*24*time.Hour))
	_, _ = h.ArchiveGame(ctx, old)

	stats, err := h.GetUserStats(ctx, "u", 30)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalGames != 5 {
		t.Fatalf("expected 5 games in window, got %d", stats.TotalGames)
	}
	if stats.Wins+stats.Losses+stats.Draws > stats.TotalGames {
		t.Fatalf("outcomes exceed total: %+v", stats)
	}
	if stats.WhiteGames+stats.BlackGames != stats.TotalGames {
		t.Fatalf("colors do not add up: %+v", stats)
	}
	// g0 white win as white, g1 black win as black, g2 draw, g3 abandoned, g4 white win as white.
	if stats.Wins != 3 || stats.Losses != 0 || stats.Draws != 1 {
		t.Fatalf("unexpected tally: %+v", stats)
	}
	if stats.TotalMoves != 10 || stats.AverageGameLength != 600 {
		t.Fatalf("unexpected moves/length: %+v", stats)
	}
	// white +8 three times, black -8 twice
	if stats.RatingChange != 8 {
		t.Fatalf("unexpected rating change %d", stats.RatingChange)
	}
}

func TestPopularOpeningsOrdering(t *testing.T) {
	ctx := context.Background()
	h, _ := newHistoryService()
	archive := func(id string, r models.GameResult, moves ...string) {
		if _, err := h.ArchiveGame(ctx, game(id, "a", "b", r, epoch, moves...)); err != nil {
			t.Fatalf("archive: %v", err)
		}
	}
	archive("g1", models.ResultBlackWin, "d4", "d5", "c4")
	archive("g2", models.ResultWhiteWin, "e4", "e5", "Nf3", "Nc6")
	archive("g3", models.ResultDraw, "e4", "e5", "Nf3")
	archive("g4", models.ResultAbandoned, "e4", "e5", "Nf3", "Nc6", "Bb5")
	archive("g5", models.ResultWhiteWin, "e4")

	openings, err := h.GetPopularOpenings(ctx, 10)
	if err != nil {
		t.Fatalf("openings: %v", err)
	}
	if len(openings) != 2 {
		t.Fatalf("expected 2 openings, got %+v", openings)
	}
	if openings[0].Moves != "e4 e5 Nf3" || openings[0].Count != 3 || openings[0].Wins != 1 {
		t.Fatalf("unexpected top opening: %+v", openings[0])
	}
	if openings[1].Moves != "d4 d5 c4" || openings[1].Count != 1 || openings[1].Wins != 1 {
		t.Fatalf("unexpected second opening: %+v", openings[1])
	}
	for i := 1; i < len(openings); i++ {
		if openings[i].Count > openings[i-1].Count {
			t.Fatalf("not sorted by count: %+v", openings)
		}
	}
}
