package models

import "portalgambit/backend/internal/docstore"

// ErrMalformedDocument is matched by every decoding failure in this package.
var ErrMalformedDocument = docstore.ErrMalformed

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func ptrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func intMap(m map[string]int) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
