package docstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	timeKey    = "$time"
	timeLayout = "2006-01-02T15:04:05.000Z"

	serializationFailure = "40001"
	maxTxAttempts        = 3
)

// documentRow is the single table backing every collection.
type documentRow struct {
	Collection string         `gorm:"primaryKey;size:128"`
	ID         string         `gorm:"primaryKey;size:256"`
	Data       datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (documentRow) TableName() string { return "documents" }

// Migrate creates or updates the documents table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&documentRow{})
}

// PostgresStore keeps every collection in one JSONB table.
type PostgresStore struct {
	db *gorm.DB
	pgTx
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db, pgTx: pgTx{db: db, root: true}}
}

func (s *PostgresStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	var err, fnErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		fnErr = nil
		err = s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
			fnErr = fn(ctx, &pgTx{db: gtx})
			return fnErr
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err == nil || !isSerializationFailure(err) {
			break
		}
		log.Printf("docstore: serialization failure, attempt %d/%d", attempt, maxTxAttempts)
	}
	if fnErr != nil {
		return fnErr
	}
	return storageFailure("transaction", "", "", err)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == serializationFailure
}

// pgTx runs document operations on either the root handle or an open
// transaction.
type pgTx struct {
	db   *gorm.DB
	root bool
}

func (t *pgTx) scope(ctx context.Context, collection string) *gorm.DB {
	return t.db.WithContext(ctx).Model(&documentRow{}).Where("collection = ?", collection)
}

func (t *pgTx) Get(ctx context.Context, collection, id string) (Document, error) {
	var row documentRow
	err := t.scope(ctx, collection).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageFailure("get", collection, id, err)
	}
	doc, err := decodeDocument(row.Data)
	if err != nil {
		return nil, storageFailure("get", collection, id, err)
	}
	return doc, nil
}

func (t *pgTx) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := validateQuery(q); err != nil {
		return nil, storageFailure("query", collection, "", err)
	}
	db := t.scope(ctx, collection)
	for _, f := range q.Filters {
		expr, arg, err := filterClause(f)
		if err != nil {
			return nil, storageFailure("query", collection, "", err)
		}
		db = db.Where(expr, arg)
	}
	for _, o := range q.OrderBy {
		path := fmt.Sprintf("data->'%s'", o.Field)
		db = db.Where(path + " IS NOT NULL").Order(clause.OrderByColumn{
			Column: clause.Column{Name: path, Raw: true},
			Desc:   o.Direction == Descending,
		})
	}
	db = db.Order("id")
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}

	var rows []documentRow
	if err := db.Find(&rows).Error; err != nil {
		return nil, storageFailure("query", collection, "", err)
	}
	out := make([]Document, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeDocument(row.Data)
		if err != nil {
			return nil, storageFailure("query", collection, row.ID, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func (t *pgTx) Create(ctx context.Context, collection, id string, doc Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return storageFailure("create", collection, id, err)
	}
	row := documentRow{Collection: collection, ID: id, Data: data}
	res := t.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return storageFailure("create", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (t *pgTx) Set(ctx context.Context, collection, id string, doc Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return storageFailure("set", collection, id, err)
	}
	row := documentRow{Collection: collection, ID: id, Data: data}
	err = t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	return storageFailure("set", collection, id, err)
}

// Update reads the row under a FOR UPDATE lock, applies the transforms in Go
// and writes the body back.
func (t *pgTx) Update(ctx context.Context, collection, id string, fields Document) error {
	apply := func(db *gorm.DB) error {
		var row documentRow
		err := db.Model(&documentRow{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND id = ?", collection, id).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		doc, err := decodeDocument(row.Data)
		if err != nil {
			return err
		}
		if err := applyUpdate(doc, fields.Normalize()); err != nil {
			return err
		}
		data, err := encodeDocument(doc)
		if err != nil {
			return err
		}
		return db.Model(&documentRow{}).
			Where("collection = ? AND id = ?", collection, id).
			Updates(map[string]any{"data": data, "updated_at": time.Now().UTC()}).Error
	}

	var err error
	if t.root {
		err = t.db.WithContext(ctx).Transaction(apply)
	} else {
		err = apply(t.db.WithContext(ctx))
	}
	return storageFailure("update", collection, id, err)
}

func (t *pgTx) Delete(ctx context.Context, collection, id string) error {
	err := t.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&documentRow{}).Error
	return storageFailure("delete", collection, id, err)
}

// filterClause translates a filter into a JSONB predicate. Field names are
// validated against fieldPattern before they are interpolated.
func filterClause(f Filter) (string, any, error) {
	path := fmt.Sprintf("data->'%s'", f.Field)
	value := normalize(f.Value)

	if f.Op == OpEqual || f.Op == OpNotEqual {
		raw, err := json.Marshal(encodeValue(value))
		if err != nil {
			return "", nil, err
		}
		op := "="
		if f.Op == OpNotEqual {
			op = "<>"
		}
		return fmt.Sprintf("%s IS NOT NULL AND %s %s CAST(? AS jsonb)", path, path, op), string(raw), nil
	}

	op := string(f.Op)
	text := fmt.Sprintf("data->>'%s'", f.Field)
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("(CASE WHEN jsonb_typeof(%s) = 'string' THEN %s END) COLLATE \"C\" %s ?", path, text, op), v, nil
	case int64, float64:
		return fmt.Sprintf("(CASE WHEN jsonb_typeof(%s) = 'number' THEN (%s)::numeric END) %s ?", path, text, op), v, nil
	case bool:
		return fmt.Sprintf("(CASE WHEN jsonb_typeof(%s) = 'boolean' THEN (%s)::boolean END) %s ?", path, text, op), v, nil
	case time.Time:
		return fmt.Sprintf("(%s->>'%s') COLLATE \"C\" %s ?", path, timeKey, op), v.Format(timeLayout), nil
	}
	return "", nil, fmt.Errorf("docstore: cannot range-compare %T", value)
}

func encodeDocument(doc Document) (datatypes.JSON, error) {
	b, err := json.Marshal(encodeValue(map[string]any(doc.Normalize())))
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// encodeValue tags timestamps so they survive the JSON round trip and keep
// a fixed-width, lexically ordered representation.
func encodeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return map[string]any{timeKey: t.UTC().Format(timeLayout)}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = encodeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = encodeValue(e)
		}
		return out
	}
	return v
}

func decodeDocument(raw []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return Document(decodeValue(m).(map[string]any)), nil
}

func decodeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		if len(t) == 1 {
			if s, ok := t[timeKey].(string); ok {
				if ts, err := time.Parse(timeLayout, s); err == nil {
					return ts.UTC()
				}
			}
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = decodeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = decodeValue(e)
		}
		return out
	}
	return v
}
