package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"portalgambit/backend/internal/docstore"
	"portalgambit/backend/internal/models"
)

func newFriendService() (*FriendService, *docstore.MemoryStore) {
	store := docstore.NewMemoryStore()
	s := NewFriendService(store)
	s.now = newClock(epoch).Now
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("req-%d", n)
	}
	return s, store
}

func TestSendRequestShowsUpAsPending(t *testing.T) {
	ctx := context.Background()
	s, _ := newFriendService()

	msg := "good game!"
	req, err := s.SendRequest(ctx, "a", "b", &msg)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	pending, err := s.GetPendingRequests(ctx, "b")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].RequestID != req.RequestID || pending[0].SenderID != "a" || pending[0].Status != models.RequestPending {
		t.Fatalf("unexpected pending list: %+v", pending)
	}
	if pending[0].Message == nil || *pending[0].Message != msg {
		t.Fatalf("message lost: %+v", pending[0])
	}
	if others, _ := s.GetPendingRequests(ctx, "a"); len(others) != 0 {
		t.Fatalf("sender should have no incoming requests, got %+v", others)
	}
}

func TestSendRequestGuards(t *testing.T) {
	ctx := context.Background()
	s, _ := newFriendService()

	if _, err := s.SendRequest(ctx, "a", "a", nil); !errors.Is(err, ErrSelfRequest) {
		t.Fatalf("expected ErrSelfRequest, got %v", err)
	}

	if _, err := s.SendRequest(ctx, "a", "b", nil); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := s.SendRequest(ctx, "a", "b", nil); !errors.Is(err, ErrRequestPending) {
		t.Fatalf("expected ErrRequestPending for duplicate, got %v", err)
	}
	if _, err := s.SendRequest(ctx, "b", "a", nil); !errors.Is(err, ErrRequestPending) {
		t.Fatalf("expected ErrRequestPending for crossing request, got %v", err)
	}
}

func TestSendRequestRejectedWhenAlreadyFriends(t *testing.T) {
	ctx := context.Background()
	s, _ := newFriendService()

	req, _ := s.SendRequest(ctx, "a", "b", nil)
	if _, err := s.RespondToRequest(ctx, req.RequestID, "b", true); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := s.SendRequest(ctx, "a", "b", nil); !errors.Is(err, ErrAlreadyFriends) {
		t.Fatalf("expected ErrAlreadyFriends, got %v", err)
	}
	if _, err := s.SendRequest(ctx, "b", "a", nil); !errors.Is(err, ErrAlreadyFriends) {
		t.Fatalf("expected ErrAlreadyFriends in reverse, got %v", err)
	}
}

func TestAcceptCreatesMirroredFriendship(t *testing.T) {
	ctx := context.Background()
	s, store := newFriendService()

	req, _ := s.SendRequest(ctx, "a", "b", nil)
	answered, err := s.RespondToRequest(ctx, req.RequestID, "b", true)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if answered.Status != models.RequestAccepted {
		t.Fatalf("unexpected status %s", answered.Status)
	}

	ab, err := store.Get(ctx, FriendStatusCollection, "a_b")
	if err != nil {
		t.Fatalf("a_b missing: %v", err)
	}
	ba, err := store.Get(ctx, FriendStatusCollection, "b_a")
	if err != nil {
		t.Fatalf("b_a missing: %v", err)
	}
	sab, _ := models.FriendStatusFromDocument(ab)
	sba, _ := models.FriendStatusFromDocument(ba)
	if !sab.BecameFriends.Equal(sba.BecameFriends) {
		t.Fatalf("became_friends differs: %v vs %v", sab.BecameFriends, sba.BecameFriends)
	}

	fa, _ := s.GetFriends(ctx, "a")
	fb, _ := s.GetFriends(ctx, "b")
	if len(fa) != 1 || fa[0].FriendID != "b" || len(fb) != 1 || fb[0].FriendID != "a" {
		t.Fatalf("unexpected friend lists: %+v / %+v", fa, fb)
	}

	if _, err := s.RespondToRequest(ctx, req.RequestID, "b", true); !errors.Is(err, ErrRequestNotPending) {
		t.Fatalf("expected ErrRequestNotPending, got %v", err)
	}
}

func TestRejectCreatesNothing(t *testing.T) {
	ctx := context.Background()
	s, store := newFriendService()

	req, _ := s.SendRequest(ctx, "a", "b", nil)
	if _, err := s.RespondToRequest(ctx, req.RequestID, "b", false); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if store.Len(FriendStatusCollection) != 0 {
		t.Fatalf("rejection created %d friendship documents", store.Len(FriendStatusCollection))
	}
	got, _ := s.GetRequest(ctx, req.RequestID)
	if got.Status != models.RequestRejected {
		t.Fatalf("expected rejected, got %s", got.Status)
	}
	if _, err := s.RespondToRequest(ctx, req.RequestID, "b", true); !errors.Is(err, ErrRequestNotPending) {
		t.Fatalf("expected ErrRequestNotPending, got %v", err)
	}

	if _, err := s.SendRequest(ctx, "a", "b", nil); err != nil {
		t.Fatalf("a rejected request must not block a new one: %v", err)
	}
}

func TestRespondChecks(t *testing.T) {
	ctx := context.Background()
	s, _ := newFriendService()

	if _, err := s.RespondToRequest(ctx, "missing", "b", true); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
	req, _ := s.SendRequest(ctx, "a", "b", nil)
	if _, err := s.RespondToRequest(ctx, req.RequestID, "a", true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("sender must not answer their own request, got %v", err)
	}
	got, _ := s.GetRequest(ctx, req.RequestID)
	if got.Status != models.RequestPending {
		t.Fatalf("forbidden response changed status to %s", got.Status)
	}
}

func TestRemoveFriendDeletesBothSides(t *testing.T) {
	ctx := context.Background()
	s, _ := newFriendService()

	req, _ := s.SendRequest(ctx, "a", "b", nil)
	_, _ = s.RespondToRequest(ctx, req.RequestID, "b", true)

	if err := s.RemoveFriend(ctx, "a", "b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	fa, _ := s.GetFriends(ctx, "a")
	fb, _ := s.GetFriends(ctx, "b")
	if len(fa) != 0 || len(fb) != 0 {
		t.Fatalf("friendship survived removal: %+v / %+v", fa, fb)
	}
	if err := s.RemoveFriend(ctx, "a", "b"); err != nil {
		t.Fatalf("removing an absent friendship should succeed: %v", err)
	}
}

func TestUpdateLastInteractionIsOneSided(t *testing.T) {
	ctx := context.Background()
	s, store := newFriendService()

	req, _ := s.SendRequest(ctx, "a", "b", nil)
	_, _ = s.RespondToRequest(ctx, req.RequestID, "b", true)

	game := "g1"
	if err := s.UpdateLastInteraction(ctx, "a", "b", &game); err != nil {
		t.Fatalf("interaction: %v", err)
	}
	ab, _ := store.Get(ctx, FriendStatusCollection, "a_b")
	ba, _ := store.Get(ctx, FriendStatusCollection, "b_a")
	sab, _ := models.FriendStatusFromDocument(ab)
	sba, _ := models.FriendStatusFromDocument(ba)
	if sab.GamesPlayed != 1 || sab.LastGame == nil || *sab.LastGame != "g1" {
		t.Fatalf("a_b not updated: %+v", sab)
	}
	if sba.GamesPlayed != 0 || sba.LastGame != nil {
		t.Fatalf("b_a should be untouched: %+v", sba)
	}

	if err := s.UpdateLastInteraction(ctx, "a", "stranger", nil); !errors.Is(err, ErrFriendshipNotFound) {
		t.Fatalf("expected ErrFriendshipNotFound, got %v", err)
	}
}

func TestConcurrentCrossingRequests(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	s := NewFriendService(store)

	var wg sync.WaitGroup
	errs := make([]error, 20)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := "a", "b"
			if i%2 == 1 {
				from, to = to, from
			}
			_, errs[i] = s.SendRequest(ctx, from, to, nil)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, ErrRequestPending):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one request to succeed, got %d", ok)
	}
	if store.Len(FriendRequestsCollection) != 1 {
		t.Fatalf("expected one stored request, got %d", store.Len(FriendRequestsCollection))
	}
}

func TestFriendStorageFailure(t *testing.T) {
	s := NewFriendService(brokenStore{})
	if err := s.RemoveFriend(context.Background(), "a", "b"); !errors.Is(err, docstore.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}
