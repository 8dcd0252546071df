package models

import (
	"fmt"
	"time"

	"portalgambit/backend/internal/docstore"
)

// DefaultRating is assigned to new profiles that do not carry one.
const DefaultRating = 1200

// UserProfile represents a player in the system. The uid comes from the
// external identity provider and is also the document id.
type UserProfile struct {
	UID          string         `json:"uid"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	DisplayName  *string        `json:"display_name"`
	AvatarURL    *string        `json:"avatar_url"`
	Rating       int            `json:"rating"`
	GamesPlayed  int            `json:"games_played"`
	Wins         int            `json:"wins"`
	Losses       int            `json:"losses"`
	Draws        int            `json:"draws"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActive   time.Time      `json:"last_active"`
	Friends      []string       `json:"friends"`
	Achievements []string       `json:"achievements"`
	Preferences  map[string]any `json:"preferences"`
}

// Outcome is a single player's result in a finished game.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// ToDocument converts the profile into its stored form.
func (p UserProfile) ToDocument() docstore.Document {
	return docstore.Document{
		"uid":          p.UID,
		"username":     p.Username,
		"email":        p.Email,
		"display_name": optString(p.DisplayName),
		"avatar_url":   optString(p.AvatarURL),
		"rating":       p.Rating,
		"games_played": p.GamesPlayed,
		"wins":         p.Wins,
		"losses":       p.Losses,
		"draws":        p.Draws,
		"created_at":   p.CreatedAt,
		"last_active":  p.LastActive,
		"friends":      nonNil(p.Friends),
		"achievements": nonNil(p.Achievements),
		"preferences":  nonNilMap(p.Preferences),
	}
}

// UserProfileFromDocument decodes a stored profile.
func UserProfileFromDocument(doc docstore.Document) (UserProfile, error) {
	r := doc.Fields()
	p := UserProfile{
		UID:          r.String("uid"),
		Username:     r.String("username"),
		Email:        r.OptString("email"),
		DisplayName:  ptrString(r.OptString("display_name")),
		AvatarURL:    ptrString(r.OptString("avatar_url")),
		Rating:       r.OptInt("rating", DefaultRating),
		GamesPlayed:  r.OptInt("games_played", 0),
		Wins:         r.OptInt("wins", 0),
		Losses:       r.OptInt("losses", 0),
		Draws:        r.OptInt("draws", 0),
		CreatedAt:    r.OptTime("created_at"),
		LastActive:   r.OptTime("last_active"),
		Friends:      r.Strings("friends"),
		Achievements: r.Strings("achievements"),
		Preferences:  r.Map("preferences"),
	}
	if err := r.Err(); err != nil {
		return UserProfile{}, fmt.Errorf("user profile: %w", err)
	}
	return p, nil
}
