package model

import "slices"

// OneOf reports whether v is one of allowed.
func OneOf(v string, allowed []string) bool {
	return slices.Contains(allowed, v)
}

// StringPtr returns nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
