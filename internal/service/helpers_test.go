package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"portalgambit/backend/internal/docstore"
	"portalgambit/backend/internal/models"
)

// countingStore counts queries per collection.
type countingStore struct {
	*docstore.MemoryStore
	mu      sync.Mutex
	queries map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: docstore.NewMemoryStore(), queries: map[string]int{}}
}

func (s *countingStore) Query(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	s.mu.Lock()
	s.queries[collection]++
	s.mu.Unlock()
	return s.MemoryStore.Query(ctx, collection, q)
}

func (s *countingStore) count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[collection]
}

// brokenStore fails every operation with a storage error.
type brokenStore struct{}

var errBackend = &docstore.StorageError{Op: "test", Err: errors.New("connection refused")}

func (brokenStore) Get(context.Context, string, string) (docstore.Document, error) {
	return nil, errBackend
}
func (brokenStore) Query(context.Context, string, docstore.Query) ([]docstore.Document, error) {
	return nil, errBackend
}
func (brokenStore) Create(context.Context, string, string, docstore.Document) error { return errBackend }
func (brokenStore) Set(context.Context, string, string, docstore.Document) error    { return errBackend }
func (brokenStore) Update(context.Context, string, string, docstore.Document) error { return errBackend }
func (brokenStore) Delete(context.Context, string, string) error                    { return errBackend }
func (brokenStore) RunTransaction(context.Context, func(context.Context, docstore.Tx) error) error {
	return errBackend
}
func (brokenStore) Close() error { return nil }

// clock is a settable time source.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *clock { return &clock{t: t} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

var epoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func mustCreateProfile(t *testing.T, s *ProfileService, uid, username string, rating int) {
	t.Helper()
	_, err := s.Create(context.Background(), models.UserProfile{UID: uid, Username: username, Email: uid + "@example.com", Rating: rating})
	if err != nil {
		t.Fatalf("create profile %s: %v", uid, err)
	}
}
