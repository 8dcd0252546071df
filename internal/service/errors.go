package service

import "errors"

// Common service errors
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrRequestNotFound    = errors.New("friend request not found")
	ErrFriendshipNotFound = errors.New("friendship not found")

	ErrProfileExists  = errors.New("profile already exists")
	ErrGameExists     = errors.New("game already archived")
	ErrAlreadyFriends = errors.New("users are already friends")
	ErrRequestPending = errors.New("a friend request between these users is already pending")

	ErrSelfRequest       = errors.New("cannot send a friend request to yourself")
	ErrRequestNotPending = errors.New("friend request has already been answered")
	ErrInvalidGame       = errors.New("invalid game")
	ErrInvalidUpdate     = errors.New("invalid profile update")

	ErrForbidden = errors.New("forbidden")
)

// Collection names in the document store.
const (
	ProfilesCollection       = "user_profiles"
	FriendRequestsCollection = "friend_requests"
	FriendStatusCollection   = "friend_status"
	PairGuardsCollection     = "friend_pair_guards"
	GameHistoryCollection    = "game_history"
	AnalyticsCollection      = "analytics"
	AnalyticsCacheCollection = "analytics_cache"
)

// maxLimit caps every caller-supplied result size.
const maxLimit = 1000

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
