package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"portalgambit/backend/internal/docstore"
	"portalgambit/backend/internal/logging"
	"portalgambit/backend/internal/models"
)

// FriendService owns friend requests and the mirrored friendship documents.
type FriendService struct {
	store docstore.Store
	now   func() time.Time
	newID func() string
}

func NewFriendService(store docstore.Store) *FriendService {
	return &FriendService{store: store, now: time.Now, newID: uuid.NewString}
}

// SendRequest creates a pending request from sender to receiver. The checks
// and the write run in one transaction that also bumps a guard document
// shared by both orderings of the pair, so concurrent sends between the same
// two users conflict instead of both succeeding.
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID string, message *string) (models.FriendRequest, error) {
	if senderID == receiverID {
		return models.FriendRequest{}, ErrSelfRequest
	}

	now := s.now().UTC()
	req := models.FriendRequest{
		RequestID:  s.newID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.RequestPending,
		CreatedAt:  now,
		UpdatedAt:  now,
		Message:    message,
	}

	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		friends, err := friendshipExists(ctx, tx, senderID, receiverID)
		if err != nil {
			return err
		}
		if friends {
			return ErrAlreadyFriends
		}

		for _, pair := range [][2]string{{senderID, receiverID}, {receiverID, senderID}} {
			pending, err := tx.Query(ctx, FriendRequestsCollection, docstore.Query{
				Filters: []docstore.Filter{
					docstore.Where("sender_id", docstore.OpEqual, pair[0]),
					docstore.Where("receiver_id", docstore.OpEqual, pair[1]),
					docstore.Where("status", docstore.OpEqual, string(models.RequestPending)),
				},
				Limit: 1,
			})
			if err != nil {
				return err
			}
			if len(pending) > 0 {
				return ErrRequestPending
			}
		}

		if err := bumpPairGuard(ctx, tx, senderID, receiverID, now); err != nil {
			return err
		}
		err = tx.Create(ctx, FriendRequestsCollection, req.RequestID, req.ToDocument())
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return ErrRequestPending
		}
		return err
	})
	if err != nil {
		return models.FriendRequest{}, err
	}
	logging.Debugf("friend request %s sent %s -> %s", req.RequestID, senderID, receiverID)
	return req, nil
}

func friendshipExists(ctx context.Context, tx docstore.Tx, a, b string) (bool, error) {
	for _, id := range []string{models.FriendStatusID(a, b), models.FriendStatusID(b, a)} {
		_, err := tx.Get(ctx, FriendStatusCollection, id)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, docstore.ErrNotFound) {
			return false, err
		}
	}
	return false, nil
}

func bumpPairGuard(ctx context.Context, tx docstore.Tx, a, b string, now time.Time) error {
	key := models.PairKey(a, b)
	err := tx.Update(ctx, PairGuardsCollection, key, docstore.Document{
		"version":    docstore.Increment(1),
		"updated_at": now,
	})
	if !errors.Is(err, docstore.ErrNotFound) {
		return err
	}
	return tx.Create(ctx, PairGuardsCollection, key, docstore.Document{
		"version":    1,
		"updated_at": now,
	})
}

// GetRequest returns a single friend request.
func (s *FriendService) GetRequest(ctx context.Context, requestID string) (models.FriendRequest, error) {
	return getRequest(ctx, s.store, requestID)
}

func getRequest(ctx context.Context, tx docstore.Tx, requestID string) (models.FriendRequest, error) {
	doc, err := tx.Get(ctx, FriendRequestsCollection, requestID)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.FriendRequest{}, ErrRequestNotFound
	}
	if err != nil {
		return models.FriendRequest{}, err
	}
	return models.FriendRequestFromDocument(doc)
}

// RespondToRequest answers a pending request on behalf of responderID, who
// must be its receiver. Accepting creates both mirrored friendship documents
// in the same transaction as the status change.
func (s *FriendService) RespondToRequest(ctx context.Context, requestID, responderID string, accept bool) (models.FriendRequest, error) {
	var req models.FriendRequest
	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		var err error
		req, err = getRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if req.ReceiverID != responderID {
			return ErrForbidden
		}
		if req.Status != models.RequestPending {
			return ErrRequestNotPending
		}

		now := s.now().UTC()
		req.Status = models.RequestRejected
		if accept {
			req.Status = models.RequestAccepted
		}
		req.UpdatedAt = now
		err = tx.Update(ctx, FriendRequestsCollection, requestID, docstore.Document{
			"status":     string(req.Status),
			"updated_at": now,
		})
		if err != nil {
			return err
		}
		if !accept {
			return nil
		}

		for _, side := range [][2]string{{req.SenderID, req.ReceiverID}, {req.ReceiverID, req.SenderID}} {
			status := models.FriendStatus{
				UserID:          side[0],
				FriendID:        side[1],
				BecameFriends:   now,
				LastInteraction: now,
			}
			if err := tx.Set(ctx, FriendStatusCollection, models.FriendStatusID(side[0], side[1]), status.ToDocument()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.FriendRequest{}, err
	}
	return req, nil
}

// GetPendingRequests lists requests waiting for uid to answer.
func (s *FriendService) GetPendingRequests(ctx context.Context, uid string) ([]models.FriendRequest, error) {
	docs, err := s.store.Query(ctx, FriendRequestsCollection, docstore.Query{
		Filters: []docstore.Filter{
			docstore.Where("receiver_id", docstore.OpEqual, uid),
			docstore.Where("status", docstore.OpEqual, string(models.RequestPending)),
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, models.FriendRequestFromDocument), nil
}

// GetFriends returns the uid-owned side of every friendship.
func (s *FriendService) GetFriends(ctx context.Context, uid string) ([]models.FriendStatus, error) {
	docs, err := s.store.Query(ctx, FriendStatusCollection, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("user_id", docstore.OpEqual, uid)},
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, models.FriendStatusFromDocument), nil
}

// RemoveFriend deletes both sides of the friendship atomically. Removing a
// friendship that does not exist succeeds.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return s.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		if err := tx.Delete(ctx, FriendStatusCollection, models.FriendStatusID(userID, friendID)); err != nil {
			return err
		}
		return tx.Delete(ctx, FriendStatusCollection, models.FriendStatusID(friendID, userID))
	})
}

// UpdateLastInteraction records a game on the userID -> friendID side only.
func (s *FriendService) UpdateLastInteraction(ctx context.Context, userID, friendID string, gameID *string) error {
	fields := docstore.Document{
		"last_interaction": s.now().UTC(),
		"games_played":     docstore.Increment(1),
	}
	if gameID != nil && *gameID != "" {
		fields["last_game"] = *gameID
	}
	err := s.store.Update(ctx, FriendStatusCollection, models.FriendStatusID(userID, friendID), fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrFriendshipNotFound
	}
	return err
}
