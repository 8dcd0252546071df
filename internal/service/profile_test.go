package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"portalgambit/backend/internal/docstore"
	"portalgambit/backend/internal/models"
)

func TestCreateProfileFillsDefaults(t *testing.T) {
	ctx := context.Background()
	s := NewProfileService(docstore.NewMemoryStore())
	s.now = newClock(epoch).Now

	p, err := s.Create(ctx, models.UserProfile{UID: "u1", Username: "alice", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Rating != models.DefaultRating || !p.CreatedAt.Equal(epoch) || p.Achievements == nil {
		t.Fatalf("defaults not applied: %+v", p)
	}

	got, err := s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "alice" || got.Rating != 1200 || got.GamesPlayed != 0 {
		t.Fatalf("unexpected stored profile: %+v", got)
	}

	if _, err := s.Create(ctx, models.UserProfile{UID: "u1", Username: "other"}); !errors.Is(err, ErrProfileExists) {
		t.Fatalf("expected ErrProfileExists, got %v", err)
	}
	if _, err := s.Create(ctx, models.UserProfile{UID: "u2", Username: "ab"}); !errors.Is(err, ErrInvalidUpdate) {
		t.Fatalf("expected short username to fail, got %v", err)
	}
}

func TestGetMissingProfile(t *testing.T) {
	s := NewProfileService(docstore.NewMemoryStore())
	if _, err := s.Get(context.Background(), "nobody"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestUpdateProfileStampsLastActive(t *testing.T) {
	ctx := context.Background()
	clk := newClock(epoch)
	s := NewProfileService(docstore.NewMemoryStore())
	s.now = clk.Now
	mustCreateProfile(t, s, "u1", "alice", 0)

	clk.Advance(time.Hour)
	name := "Alice A."
	if err := s.Update(ctx, "u1", ProfileUpdate{DisplayName: &name, Preferences: map[string]any{"theme": "dark"}}); err != nil {
		t.Fatalf("update: %v", err)
	}
	p, _ := s.Get(ctx, "u1")
	if p.DisplayName == nil || *p.DisplayName != name {
		t.Fatalf("display name not updated: %+v", p)
	}
	if p.Preferences["theme"] != "dark" {
		t.Fatalf("preferences not updated: %+v", p.Preferences)
	}
	if !p.LastActive.Equal(epoch.Add(time.Hour)) {
		t.Fatalf("last_active not stamped: %v", p.LastActive)
	}

	if err := s.Update(ctx, "ghost", ProfileUpdate{}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestUpdateRatingCountsOutcome(t *testing.T) {
	ctx := context.Background()
	s := NewProfileService(docstore.NewMemoryStore())
	mustCreateProfile(t, s, "u1", "alice", 0)

	for _, o := range []models.Outcome{models.OutcomeWin, models.OutcomeLoss, models.OutcomeDraw, models.OutcomeWin} {
		if err := s.UpdateRating(ctx, "u1", 1300, o); err != nil {
			t.Fatalf("update rating: %v", err)
		}
	}
	p, _ := s.Get(ctx, "u1")
	if p.Rating != 1300 || p.GamesPlayed != 4 || p.Wins != 2 || p.Losses != 1 || p.Draws != 1 {
		t.Fatalf("unexpected counters: %+v", p)
	}
}

func TestAddAchievementIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewProfileService(docstore.NewMemoryStore())
	mustCreateProfile(t, s, "u1", "alice", 0)

	for i := 0; i < 2; i++ {
		if err := s.AddAchievement(ctx, "u1", "first_win"); err != nil {
			t.Fatalf("add achievement: %v", err)
		}
	}
	p, _ := s.Get(ctx, "u1")
	if len(p.Achievements) != 1 || p.Achievements[0] != "first_win" {
		t.Fatalf("expected exactly one achievement, got %v", p.Achievements)
	}
}

func TestSearchAndLeaderboard(t *testing.T) {
	ctx := context.Background()
	s := NewProfileService(docstore.NewMemoryStore())
	mustCreateProfile(t, s, "1", "magnus", 2800)
	mustCreateProfile(t, s, "2", "magpie", 1500)
	mustCreateProfile(t, s, "3", "hikaru", 2750)
	mustCreateProfile(t, s, "4", "mag", 900)

	found, err := s.SearchByUsernamePrefix(ctx, "mag", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 3 || found[0].Username != "mag" || found[1].Username != "magnus" || found[2].Username != "magpie" {
		t.Fatalf("unexpected search result: %+v", found)
	}

	top, err := s.Leaderboard(ctx, 2)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(top) != 2 || top[0].UID != "1" || top[1].UID != "3" {
		t.Fatalf("unexpected leaderboard: %+v", top)
	}
}

func TestProfileStorageFailureIsTyped(t *testing.T) {
	s := NewProfileService(brokenStore{})
	_, err := s.Get(context.Background(), "u1")
	if !errors.Is(err, docstore.ErrStorage) || errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected a storage error distinct from not found, got %v", err)
	}
}
