package docstore

import (
	"fmt"
	"math"
	"time"
)

// FieldError reports a missing or mistyped field in a stored document.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("docstore: field %q %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrMalformed }

// FieldReader decodes typed values out of a Document. The first failure is
// kept and reported by Err; later reads return zero values.
type FieldReader struct {
	doc Document
	err error
}

// Fields returns a reader over the document.
func (d Document) Fields() *FieldReader {
	return &FieldReader{doc: d}
}

// Err returns the first decoding failure, if any.
func (r *FieldReader) Err() error { return r.err }

func (r *FieldReader) fail(field, reason string) {
	if r.err == nil {
		r.err = &FieldError{Field: field, Reason: reason}
	}
}

func (r *FieldReader) lookup(field string, required bool) (any, bool) {
	v, ok := r.doc[field]
	if !ok || v == nil {
		if required {
			r.fail(field, "is missing")
		}
		return nil, false
	}
	return v, true
}

// String reads a required string field.
func (r *FieldReader) String(field string) string {
	return r.str(field, true)
}

// OptString reads an optional string field.
func (r *FieldReader) OptString(field string) string {
	return r.str(field, false)
}

func (r *FieldReader) str(field string, required bool) string {
	v, ok := r.lookup(field, required)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(field, fmt.Sprintf("is %T, want string", v))
	}
	return s
}

// Int reads a required integer field.
func (r *FieldReader) Int(field string) int {
	v, ok := r.lookup(field, true)
	if !ok {
		return 0
	}
	return r.toInt(field, v)
}

// OptInt reads an optional integer field, returning def when absent.
func (r *FieldReader) OptInt(field string, def int) int {
	v, ok := r.lookup(field, false)
	if !ok {
		return def
	}
	return r.toInt(field, v)
}

func (r *FieldReader) toInt(field string, v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		if n != math.Trunc(n) {
			r.fail(field, "is not an integer")
		}
		return int(n)
	}
	r.fail(field, fmt.Sprintf("is %T, want integer", v))
	return 0
}

// Float reads a required numeric field.
func (r *FieldReader) Float(field string) float64 {
	v, ok := r.lookup(field, true)
	if !ok {
		return 0
	}
	return r.toFloat(field, v)
}

// OptFloat reads an optional numeric field.
func (r *FieldReader) OptFloat(field string) float64 {
	v, ok := r.lookup(field, false)
	if !ok {
		return 0
	}
	return r.toFloat(field, v)
}

func (r *FieldReader) toFloat(field string, v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	}
	r.fail(field, fmt.Sprintf("is %T, want number", v))
	return 0
}

// Bool reads an optional boolean field.
func (r *FieldReader) Bool(field string) bool {
	v, ok := r.lookup(field, false)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(field, fmt.Sprintf("is %T, want bool", v))
	}
	return b
}

// Time reads a required timestamp field.
func (r *FieldReader) Time(field string) time.Time {
	return r.tm(field, true)
}

// OptTime reads an optional timestamp field.
func (r *FieldReader) OptTime(field string) time.Time {
	return r.tm(field, false)
}

func (r *FieldReader) tm(field string, required bool) time.Time {
	v, ok := r.lookup(field, required)
	if !ok {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			r.fail(field, "is not a timestamp")
			return time.Time{}
		}
		return parsed.UTC()
	}
	r.fail(field, fmt.Sprintf("is %T, want timestamp", v))
	return time.Time{}
}

// Strings reads an optional array of strings.
func (r *FieldReader) Strings(field string) []string {
	v, ok := r.lookup(field, false)
	if !ok {
		return []string{}
	}
	arr, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return append([]string{}, ss...)
		}
		r.fail(field, fmt.Sprintf("is %T, want array", v))
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		s, ok := e.(string)
		if !ok {
			r.fail(field, "contains a non-string element")
			return []string{}
		}
		out = append(out, s)
	}
	return out
}

// Map reads an optional nested map.
func (r *FieldReader) Map(field string) map[string]any {
	v, ok := r.lookup(field, false)
	if !ok {
		return map[string]any{}
	}
	switch m := v.(type) {
	case map[string]any:
		return cloneValue(m).(map[string]any)
	case Document:
		return cloneValue(map[string]any(m)).(map[string]any)
	}
	r.fail(field, fmt.Sprintf("is %T, want map", v))
	return map[string]any{}
}

// IntMap reads an optional map of integer counters.
func (r *FieldReader) IntMap(field string) map[string]int {
	m := r.Map(field)
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = r.toInt(field+"."+k, v)
	}
	return out
}

// Sub returns a reader over a nested map field. A missing required map
// fails the parent reader.
func (r *FieldReader) Sub(field string, required bool) *FieldReader {
	v, ok := r.lookup(field, required)
	if !ok {
		return &FieldReader{doc: Document{}}
	}
	switch m := v.(type) {
	case map[string]any:
		return &FieldReader{doc: Document(m)}
	case Document:
		return &FieldReader{doc: m}
	}
	r.fail(field, fmt.Sprintf("is %T, want map", v))
	return &FieldReader{doc: Document{}}
}

// Merge copies the first failure of a nested reader into r, prefixed with
// the parent field name.
func (r *FieldReader) Merge(field string, sub *FieldReader) {
	if sub.err == nil || r.err != nil {
		return
	}
	if fe, ok := sub.err.(*FieldError); ok {
		r.err = &FieldError{Field: field + "." + fe.Field, Reason: fe.Reason}
		return
	}
	r.err = sub.err
}
