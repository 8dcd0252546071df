package models

import (
	"fmt"
	"time"

	"portalgambit/backend/internal/docstore"
)

// FriendRequestStatus defines the state of a friend request.
type FriendRequestStatus string

const (
	// RequestPending means the request was sent and not yet answered.
	RequestPending FriendRequestStatus = "pending"

	// RequestAccepted and RequestRejected are terminal.
	RequestAccepted FriendRequestStatus = "accepted"
	RequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest is a request from one user to another.
type FriendRequest struct {
	RequestID  string              `json:"request_id"`
	SenderID   string              `json:"sender_id"`
	ReceiverID string              `json:"receiver_id"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	Message    *string             `json:"message"`
}

// FriendStatus is one direction of a friendship. Every friendship is stored
// as two mirrored documents, one owned by each user.
type FriendStatus struct {
	UserID          string    `json:"user_id"`
	FriendID        string    `json:"friend_id"`
	BecameFriends   time.Time `json:"became_friends"`
	GamesPlayed     int       `json:"games_played"`
	LastGame        *string   `json:"last_game"`
	LastInteraction time.Time `json:"last_interaction"`
}

// FriendStatusID is the document id of the userID -> friendID side.
func FriendStatusID(userID, friendID string) string {
	return userID + "_" + friendID
}

// PairKey is the same for both orderings of two users.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

func (r FriendRequest) ToDocument() docstore.Document {
	return docstore.Document{
		"request_id":  r.RequestID,
		"sender_id":   r.SenderID,
		"receiver_id": r.ReceiverID,
		"status":      string(r.Status),
		"created_at":  r.CreatedAt,
		"updated_at":  r.UpdatedAt,
		"message":     optString(r.Message),
	}
}

func FriendRequestFromDocument(doc docstore.Document) (FriendRequest, error) {
	r := doc.Fields()
	req := FriendRequest{
		RequestID:  r.String("request_id"),
		SenderID:   r.String("sender_id"),
		ReceiverID: r.String("receiver_id"),
		Status:     FriendRequestStatus(r.String("status")),
		CreatedAt:  r.Time("created_at"),
		UpdatedAt:  r.Time("updated_at"),
		Message:    ptrString(r.OptString("message")),
	}
	if err := r.Err(); err != nil {
		return FriendRequest{}, fmt.Errorf("friend request: %w", err)
	}
	switch req.Status {
	case RequestPending, RequestAccepted, RequestRejected:
	default:
		return FriendRequest{}, fmt.Errorf("friend request: %w", &docstore.FieldError{Field: "status", Reason: "has unknown value " + string(req.Status)})
	}
	return req, nil
}

func (s FriendStatus) ToDocument() docstore.Document {
	return docstore.Document{
		"user_id":          s.UserID,
		"friend_id":        s.FriendID,
		"became_friends":   s.BecameFriends,
		"games_played":     s.GamesPlayed,
		"last_game":        optString(s.LastGame),
		"last_interaction": s.LastInteraction,
	}
}

func FriendStatusFromDocument(doc docstore.Document) (FriendStatus, error) {
	r := doc.Fields()
	s := FriendStatus{
		UserID:          r.String("user_id"),
		FriendID:        r.String("friend_id"),
		BecameFriends:   r.Time("became_friends"),
		GamesPlayed:     r.OptInt("games_played", 0),
		LastGame:        ptrString(r.OptString("last_game")),
		LastInteraction: r.OptTime("last_interaction"),
	}
	if err := r.Err(); err != nil {
		return FriendStatus{}, fmt.Errorf("friend status: %w", err)
	}
	return s, nil
}
