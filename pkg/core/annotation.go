// Package core defines the domain of Sidenote: annotations anchored to
// specific lines of source files, and the contracts for persisting them.
package core

import (
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLen is the maximum annotation length in runes, measured after trimming.
const MaxTextLen = 1000

// Annotation is a single note bound to a file path and a 0-based line number.
// FilePath is always the canonical absolute path; Text is always trimmed.
type Annotation struct {
	FilePath  string `json:"filePath"`
	Line      int    `json:"line"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Anchor returns the (path, line) identity of the annotation.
func (a Annotation) Anchor() (string, int) {
	return a.FilePath, a.Line
}

// Collection is the persisted bag of annotations.
// It is the exact shape of the on-disk JSON document.
type Collection struct {
	Notes []Annotation `json:"notes"`
}

// CanonicalPath converts a user-supplied path into the absolute, cleaned form
// used as the store's lookup key. Lookups must be independent of how the
// caller spelled the path ("./a.go" vs "/abs/a.go").
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// ValidateText trims the input and enforces the store invariants:
// non-empty after trimming, at most MaxTextLen runes.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(trimmed) > MaxTextLen {
		return "", ErrTextTooLong
	}
	return trimmed, nil
}

// NewTimestamp formats t in the on-disk timestamp format (RFC 3339, UTC).
func NewTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
