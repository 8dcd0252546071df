package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"portalgambit/backend/internal/docstore"
	"portalgambit/backend/internal/models"
)

// prefixSentinel is the highest BMP private-use code point; appended to a
// prefix it bounds a lexical range query.
const prefixSentinel = "\uf8ff"

// ProfileService owns user profile documents.
type ProfileService struct {
	store docstore.Store
	now   func() time.Time
}

func NewProfileService(store docstore.Store) *ProfileService {
	return &ProfileService{store: store, now: time.Now}
}

// ProfileUpdate lists the profile fields a user may change directly.
type ProfileUpdate struct {
	Username    *string        `json:"username"`
	DisplayName *string        `json:"display_name"`
	AvatarURL   *string        `json:"avatar_url"`
	Preferences map[string]any `json:"preferences"`
}

// Create stores a new profile. Unset defaults are filled in.
func (s *ProfileService) Create(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	if err := validateUsername(p.Username); err != nil {
		return models.UserProfile{}, err
	}
	now := s.now().UTC()
	if p.Rating == 0 {
		p.Rating = models.DefaultRating
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.LastActive.IsZero() {
		p.LastActive = now
	}
	if p.Friends == nil {
		p.Friends = []string{}
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.Preferences == nil {
		p.Preferences = map[string]any{}
	}

	err := s.store.Create(ctx, ProfilesCollection, p.UID, p.ToDocument())
	if errors.Is(err, docstore.ErrAlreadyExists) {
		return models.UserProfile{}, ErrProfileExists
	}
	if err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}

func (s *ProfileService) Get(ctx context.Context, uid string) (models.UserProfile, error) {
	return getProfile(ctx, s.store, uid)
}

func getProfile(ctx context.Context, tx docstore.Tx, uid string) (models.UserProfile, error) {
	doc, err := tx.Get(ctx, ProfilesCollection, uid)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.UserProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return models.UserProfile{}, err
	}
	return models.UserProfileFromDocument(doc)
}

// Update merges the given fields and stamps last_active.
func (s *ProfileService) Update(ctx context.Context, uid string, upd ProfileUpdate) error {
	fields := docstore.Document{"last_active": s.now().UTC()}
	if upd.Username != nil {
		if err := validateUsername(*upd.Username); err != nil {
			return err
		}
		fields["username"] = *upd.Username
	}
	if upd.DisplayName != nil {
		fields["display_name"] = *upd.DisplayName
	}
	if upd.AvatarURL != nil {
		fields["avatar_url"] = *upd.AvatarURL
	}
	if upd.Preferences != nil {
		fields["preferences"] = upd.Preferences
	}
	return s.update(ctx, uid, fields)
}

// UpdateRating sets the rating and bumps games_played plus exactly one of
// wins, losses or draws.
func (s *ProfileService) UpdateRating(ctx context.Context, uid string, rating int, outcome models.Outcome) error {
	return s.update(ctx, uid, ratingFields(rating, outcome))
}

// ApplyRatingChange reads the current rating and applies delta and outcome
// in one transaction. It returns the new rating.
func (s *ProfileService) ApplyRatingChange(ctx context.Context, uid string, delta int, outcome models.Outcome) (int, error) {
	var rating int
	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		p, err := getProfile(ctx, tx, uid)
		if err != nil {
			return err
		}
		rating = p.Rating + delta
		return tx.Update(ctx, ProfilesCollection, uid, ratingFields(rating, outcome))
	})
	return rating, err
}

func ratingFields(rating int, outcome models.Outcome) docstore.Document {
	fields := docstore.Document{
		"rating":       rating,
		"games_played": docstore.Increment(1),
	}
	switch outcome {
	case models.OutcomeWin:
		fields["wins"] = docstore.Increment(1)
	case models.OutcomeLoss:
		fields["losses"] = docstore.Increment(1)
	default:
		fields["draws"] = docstore.Increment(1)
	}
	return fields
}

// AddAchievement appends the id unless the profile already has it.
func (s *ProfileService) AddAchievement(ctx context.Context, uid, achievementID string) error {
	if achievementID == "" {
		return fmt.Errorf("%w: achievement id is empty", ErrInvalidUpdate)
	}
	return s.update(ctx, uid, docstore.Document{"achievements": docstore.ArrayUnion(achievementID)})
}

// SearchByUsernamePrefix returns profiles whose username starts with prefix,
// ordered by username.
func (s *ProfileService) SearchByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]models.UserProfile, error) {
	docs, err := s.store.Query(ctx, ProfilesCollection, docstore.Query{
		Filters: []docstore.Filter{
			docstore.Where("username", docstore.OpGreaterOrEqual, prefix),
			docstore.Where("username", docstore.OpLessOrEqual, prefix+prefixSentinel),
		},
		OrderBy: []docstore.Order{{Field: "username", Direction: docstore.Ascending}},
		Limit:   clampLimit(limit, 10),
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, models.UserProfileFromDocument), nil
}

// Leaderboard returns the highest rated profiles.
func (s *ProfileService) Leaderboard(ctx context.Context, limit int) ([]models.UserProfile, error) {
	docs, err := s.store.Query(ctx, ProfilesCollection, docstore.Query{
		OrderBy: []docstore.Order{{Field: "rating", Direction: docstore.Descending}},
		Limit:   clampLimit(limit, 100),
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, models.UserProfileFromDocument), nil
}

func (s *ProfileService) update(ctx context.Context, uid string, fields docstore.Document) error {
	err := s.store.Update(ctx, ProfilesCollection, uid, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrProfileNotFound
	}
	return err
}

func validateUsername(name string) error {
	if n := len([]rune(name)); n < 3 || n > 30 {
		return fmt.Errorf("%w: username must be 3 to 30 characters", ErrInvalidUpdate)
	}
	return nil
}

// decodeAll converts query results, skipping and logging documents that do
// not decode.
func decodeAll[T any](docs []docstore.Document, decode func(docstore.Document) (T, error)) []T {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := decode(doc)
		if err != nil {
			log.Printf("skipping malformed document: %v", err)
			continue
		}
		out = append(out, v)
	}
	return out
}
