package docstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
)

var (
	// ErrNotFound is returned by Get and Update when the document does not exist.
	ErrNotFound = errors.New("docstore: document not found")

	// ErrAlreadyExists is returned by Create when the document id is taken.
	ErrAlreadyExists = errors.New("docstore: document already exists")

	// ErrStorage matches every *StorageError via errors.Is.
	ErrStorage = errors.New("docstore: storage failure")

	// ErrMalformed is wrapped by FieldError when a stored document is missing
	// a required field or holds a value of the wrong type.
	ErrMalformed = errors.New("docstore: malformed document")
)

// StorageError wraps a fault raised by the underlying backend.
type StorageError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *StorageError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("docstore: %s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
	}
	return fmt.Sprintf("docstore: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// storageFailure logs the backend fault and wraps it. Sentinel errors are
// passed through untouched so callers can still branch on them.
func storageFailure(op, collection, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrStorage) {
		return err
	}
	log.Printf("docstore: %s %s/%s failed: %v", op, collection, id, err)
	return &StorageError{Op: op, Collection: collection, ID: id, Err: err}
}

// Op is a comparison operator used in query filters.
type Op string

const (
	OpEqual          Op = "=="
	OpNotEqual       Op = "!="
	OpLess           Op = "<"
	OpLessOrEqual    Op = "<="
	OpGreater        Op = ">"
	OpGreaterOrEqual Op = ">="
)

// Filter is a single (field, operator, value) condition. Filters in a Query
// are combined with AND; there is no OR.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Where is shorthand for building a Filter.
func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// Direction orders query results.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Order sorts query results by a single field. Documents missing the field
// are excluded from ordered results.
type Order struct {
	Field     string
	Direction Direction
}

// Query selects documents from one collection.
type Query struct {
	Filters []Filter
	OrderBy []Order
	Limit   int
}

// Tx is the set of document operations available both directly on a Store
// and inside a transaction.
type Tx interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Query(ctx context.Context, collection string, q Query) ([]Document, error)

	// Create writes the document only if the id is free.
	Create(ctx context.Context, collection, id string, doc Document) error

	// Set overwrites or creates the document.
	Set(ctx context.Context, collection, id string, doc Document) error

	// Update merges fields into an existing document. Values may be
	// Increment or ArrayUnion transforms.
	Update(ctx context.Context, collection, id string, fields Document) error

	// Delete removes the document. Deleting an absent document is not an error.
	Delete(ctx context.Context, collection, id string) error
}

// Store is a key-document store addressed by (collection, id).
type Store interface {
	Tx

	// RunTransaction applies every write issued through tx, or none of them
	// when fn returns an error.
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	Close() error
}

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validateQuery(q Query) error {
	for _, f := range q.Filters {
		if !fieldPattern.MatchString(f.Field) {
			return fmt.Errorf("docstore: invalid filter field %q", f.Field)
		}
		switch f.Op {
		case OpEqual, OpNotEqual, OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual:
		default:
			return fmt.Errorf("docstore: unsupported operator %q", f.Op)
		}
	}
	for _, o := range q.OrderBy {
		if !fieldPattern.MatchString(o.Field) {
			return fmt.Errorf("docstore: invalid order field %q", o.Field)
		}
	}
	return nil
}
