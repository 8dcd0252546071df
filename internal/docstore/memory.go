package docstore

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in process memory. Transactions are
// serialized behind a single lock and rolled back from an undo log.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Document)}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s: s}).Get(ctx, collection, id)
}

func (s *MemoryStore) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s: s}).Query(ctx, collection, q)
}

func (s *MemoryStore) Create(ctx context.Context, collection, id string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s: s}).Create(ctx, collection, id, doc)
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s: s}).Set(ctx, collection, id, doc)
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s: s}).Update(ctx, collection, id, fields)
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s: s}).Delete(ctx, collection, id)
}

// RunTransaction holds the store lock for the whole of fn, so no other
// caller observes a partially applied transaction.
func (s *MemoryStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{s: s, journal: true}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	if err := ctx.Err(); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Len reports how many documents a collection holds.
func (s *MemoryStore) Len(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[collection])
}

type undoEntry struct {
	collection string
	id         string
	prev       Document
	existed    bool
}

// memTx operates on the store maps directly; the caller holds s.mu.
type memTx struct {
	s       *MemoryStore
	journal bool
	undo    []undoEntry
}

func (t *memTx) record(collection, id string) {
	if !t.journal {
		return
	}
	prev, ok := t.s.collections[collection][id]
	t.undo = append(t.undo, undoEntry{collection: collection, id: id, prev: prev, existed: ok})
}

func (t *memTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		u := t.undo[i]
		if u.existed {
			t.coll(u.collection)[u.id] = u.prev
		} else {
			delete(t.s.collections[u.collection], u.id)
		}
	}
	t.undo = nil
}

func (t *memTx) coll(name string) map[string]Document {
	c, ok := t.s.collections[name]
	if !ok {
		c = make(map[string]Document)
		t.s.collections[name] = c
	}
	return c
}

func (t *memTx) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageFailure("get", collection, id, err)
	}
	doc, ok := t.s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc.Clone(), nil
}

func (t *memTx) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageFailure("query", collection, "", err)
	}
	if err := validateQuery(q); err != nil {
		return nil, storageFailure("query", collection, "", err)
	}
	docs := make([]Document, 0, len(t.s.collections[collection]))
	for _, d := range t.s.collections[collection] {
		docs = append(docs, d)
	}
	res := runQuery(docs, q)
	out := make([]Document, len(res))
	for i, d := range res {
		out[i] = d.Clone()
	}
	return out, nil
}

func (t *memTx) Create(ctx context.Context, collection, id string, doc Document) error {
	if err := ctx.Err(); err != nil {
		return storageFailure("create", collection, id, err)
	}
	if _, ok := t.s.collections[collection][id]; ok {
		return ErrAlreadyExists
	}
	t.record(collection, id)
	t.coll(collection)[id] = doc.Normalize()
	return nil
}

func (t *memTx) Set(ctx context.Context, collection, id string, doc Document) error {
	if err := ctx.Err(); err != nil {
		return storageFailure("set", collection, id, err)
	}
	t.record(collection, id)
	t.coll(collection)[id] = doc.Normalize()
	return nil
}

func (t *memTx) Update(ctx context.Context, collection, id string, fields Document) error {
	if err := ctx.Err(); err != nil {
		return storageFailure("update", collection, id, err)
	}
	cur, ok := t.s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	next := cur.Clone()
	if err := applyUpdate(next, fields.Normalize()); err != nil {
		return storageFailure("update", collection, id, err)
	}
	t.record(collection, id)
	t.coll(collection)[id] = next
	return nil
}

func (t *memTx) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return storageFailure("delete", collection, id, err)
	}
	if _, ok := t.s.collections[collection][id]; !ok {
		return nil
	}
	t.record(collection, id)
	delete(t.s.collections[collection], id)
	return nil
}
