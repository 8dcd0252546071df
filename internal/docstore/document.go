package docstore

import (
	"fmt"
	"reflect"
	"sort"
	"time"
)

// Document is the generic field map persisted by every backend.
type Document map[string]any

// IncrementValue adds By to a numeric field inside Update.
type IncrementValue struct {
	By int64
}

// Increment returns an Update transform that adds n to the field.
func Increment(n int64) IncrementValue { return IncrementValue{By: n} }

// ArrayUnionValue appends the values not already present in an array field.
type ArrayUnionValue struct {
	Values []any
}

// ArrayUnion returns an Update transform that set-unions values into the field.
func ArrayUnion(values ...any) ArrayUnionValue {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = normalize(v)
	}
	return ArrayUnionValue{Values: out}
}

// normalize converts a value into the canonical representation shared by all
// backends: int64, float64, string, bool, UTC time.Time (millisecond
// precision), []any, map[string]any or nil.
func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string, bool, int64, float64:
		return t
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return float64(t)
	case time.Time:
		return t.UTC().Truncate(time.Millisecond)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC().Truncate(time.Millisecond)
	case IncrementValue, ArrayUnionValue:
		return t
	case Document:
		return normalizeMap(t)
	case map[string]any:
		return normalizeMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	}
	return v
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

// Normalize returns a deep copy of the document in canonical form.
func (d Document) Normalize() Document {
	return Document(normalizeMap(d))
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(cloneValue(map[string]any(d)).(map[string]any))
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Document:
		return cloneValue(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}

// applyUpdate merges normalized fields into doc, resolving transforms.
func applyUpdate(doc Document, fields Document) error {
	for k, v := range fields {
		switch t := v.(type) {
		case IncrementValue:
			switch cur := doc[k].(type) {
			case nil:
				doc[k] = t.By
			case int64:
				doc[k] = cur + t.By
			case float64:
				doc[k] = cur + float64(t.By)
			default:
				return fmt.Errorf("docstore: cannot increment field %q of type %T", k, cur)
			}
		case ArrayUnionValue:
			var arr []any
			switch cur := doc[k].(type) {
			case nil:
			case []any:
				arr = append(arr, cur...)
			default:
				return fmt.Errorf("docstore: cannot union into field %q of type %T", k, cur)
			}
			for _, nv := range t.Values {
				if !containsValue(arr, nv) {
					arr = append(arr, nv)
				}
			}
			doc[k] = arr
		default:
			doc[k] = cloneValue(v)
		}
	}
	return nil
}

func containsValue(arr []any, v any) bool {
	for _, e := range arr {
		if reflect.DeepEqual(e, v) {
			return true
		}
	}
	return false
}

// compareValues orders two normalized values. ok is false when the values
// are of incomparable kinds.
func compareValues(a, b any) (int, bool) {
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return cmp(av, bv), true
		case float64:
			return cmp(float64(av), bv), true
		}
	case float64:
		switch bv := b.(type) {
		case int64:
			return cmp(av, float64(bv)), true
		case float64:
			return cmp(av, bv), true
		}
	case string:
		if bv, ok := b.(string); ok {
			return cmp(av, bv), true
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv), true
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0, true
			case !av:
				return -1, true
			default:
				return 1, true
			}
		}
	}
	return 0, false
}

func cmp[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func matches(doc Document, filters []Filter) bool {
	for _, f := range filters {
		v, present := doc[f.Field]
		if !present {
			return false
		}
		want := normalize(f.Value)
		if f.Op == OpEqual || f.Op == OpNotEqual {
			eq := reflect.DeepEqual(v, want)
			if c, ok := compareValues(v, want); ok {
				eq = c == 0
			}
			if (f.Op == OpEqual) != eq {
				return false
			}
			continue
		}
		c, ok := compareValues(v, want)
		if !ok {
			return false
		}
		switch f.Op {
		case OpLess:
			ok = c < 0
		case OpLessOrEqual:
			ok = c <= 0
		case OpGreater:
			ok = c > 0
		case OpGreaterOrEqual:
			ok = c >= 0
		}
		if !ok {
			return false
		}
	}
	return true
}

// runQuery evaluates q over an in-memory set of documents.
func runQuery(docs []Document, q Query) []Document {
	var out []Document
	for _, d := range docs {
		if !matches(d, q.Filters) {
			continue
		}
		skip := false
		for _, o := range q.OrderBy {
			if _, ok := d[o.Field]; !ok {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, d)
		}
	}
	if len(q.OrderBy) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, o := range q.OrderBy {
				c, _ := compareValues(out[i][o.Field], out[j][o.Field])
				if c == 0 {
					continue
				}
				if o.Direction == Descending {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}
