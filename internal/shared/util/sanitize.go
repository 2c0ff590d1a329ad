package util

import (
	"errors"
	"path"
	"strings"
)

// ErrInvalidKey is returned for empty or escaping storage keys.
var ErrInvalidKey = errors.New("invalid storage key")

// CleanKey normalizes a slash-separated storage key and rejects traversal.
func CleanKey(key string) (string, error) {
	s := strings.TrimSpace(key)
	s = strings.ReplaceAll(s, "\\", "/")
	if s == "" || strings.HasPrefix(s, "/") {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(s, "/") {
		if part == ".." {
			return "", ErrInvalidKey
		}
	}
	clean := path.Clean(s)
	if clean == "." {
		return "", ErrInvalidKey
	}
	return clean, nil
}

// SafeSegment makes s usable as one key segment.
func SafeSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "..", "_")
	return s
}
