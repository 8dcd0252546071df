package docstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore maps each collection to a MongoDB collection of the same name,
// using the document id as _id. Transactions require a replica set.
type MongoStore struct {
	client *mongo.Client
	mongoTx
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{client: client, mongoTx: mongoTx{db: client.Database(database)}}
}

func (s *MongoStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return storageFailure("transaction", "", "", err)
	}
	defer sess.EndSession(context.Background())

	var fnErr error
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		fnErr = fn(sc, &s.mongoTx)
		return nil, fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return storageFailure("transaction", "", "", err)
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// mongoTx issues operations with whatever session the context carries.
type mongoTx struct {
	db *mongo.Database
}

func (t *mongoTx) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw bson.M
	err := t.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageFailure("get", collection, id, err)
	}
	return fromBSON(raw), nil
}

func (t *mongoTx) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := validateQuery(q); err != nil {
		return nil, storageFailure("query", collection, "", err)
	}

	conds := bson.A{}
	for _, f := range q.Filters {
		conds = append(conds, filterBSON(f))
	}
	sort := bson.D{}
	for _, o := range q.OrderBy {
		conds = append(conds, bson.M{o.Field: bson.M{"$exists": true}})
		dir := 1
		if o.Direction == Descending {
			dir = -1
		}
		sort = append(sort, bson.E{Key: o.Field, Value: dir})
	}
	sort = append(sort, bson.E{Key: "_id", Value: 1})

	filter := bson.M{}
	if len(conds) > 0 {
		filter = bson.M{"$and": conds}
	}
	opts := options.Find().SetSort(sort)
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := t.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, storageFailure("query", collection, "", err)
	}
	defer cur.Close(ctx)

	var out []Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, storageFailure("query", collection, "", err)
		}
		out = append(out, fromBSON(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, storageFailure("query", collection, "", err)
	}
	return out, nil
}

func filterBSON(f Filter) bson.M {
	v := normalize(f.Value)
	var cond bson.M
	switch f.Op {
	case OpEqual:
		cond = bson.M{"$eq": v}
	case OpNotEqual:
		// $ne alone would also match documents missing the field.
		cond = bson.M{"$exists": true, "$ne": v}
	case OpLess:
		cond = bson.M{"$lt": v}
	case OpLessOrEqual:
		cond = bson.M{"$lte": v}
	case OpGreater:
		cond = bson.M{"$gt": v}
	case OpGreaterOrEqual:
		cond = bson.M{"$gte": v}
	}
	return bson.M{f.Field: cond}
}

func (t *mongoTx) Create(ctx context.Context, collection, id string, doc Document) error {
	_, err := t.db.Collection(collection).InsertOne(ctx, withID(doc, id))
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	return storageFailure("create", collection, id, err)
}

func (t *mongoTx) Set(ctx context.Context, collection, id string, doc Document) error {
	_, err := t.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, withID(doc, id),
		options.Replace().SetUpsert(true))
	return storageFailure("set", collection, id, err)
}

func (t *mongoTx) Update(ctx context.Context, collection, id string, fields Document) error {
	set, inc, union := bson.M{}, bson.M{}, bson.M{}
	for k, v := range fields.Normalize() {
		switch tv := v.(type) {
		case IncrementValue:
			inc[k] = tv.By
		case ArrayUnionValue:
			union[k] = bson.M{"$each": tv.Values}
		default:
			set[k] = v
		}
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(inc) > 0 {
		update["$inc"] = inc
	}
	if len(union) > 0 {
		update["$addToSet"] = union
	}
	if len(update) == 0 {
		_, err := t.Get(ctx, collection, id)
		return err
	}

	res, err := t.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return storageFailure("update", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *mongoTx) Delete(ctx context.Context, collection, id string) error {
	_, err := t.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	return storageFailure("delete", collection, id, err)
}

func withID(doc Document, id string) bson.M {
	m := bson.M(doc.Normalize())
	m["_id"] = id
	return m
}

// fromBSON converts driver types back to the normalized representation and
// drops _id.
func fromBSON(raw bson.M) Document {
	out := make(Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		out[k] = fromBSONValue(v)
	}
	return out
}

func fromBSONValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case int32:
		return int64(t)
	case primitive.ObjectID:
		return t.Hex()
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = fromBSONValue(e)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = fromBSONValue(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = fromBSONValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = fromBSONValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = fromBSONValue(e)
		}
		return out
	}
	return v
}
