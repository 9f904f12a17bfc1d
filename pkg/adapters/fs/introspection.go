package fs

import (
	"context"
	"os"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path        string `json:"path"`
	FileExists  bool   `json:"file_exists"`
	Annotations int    `json:"annotations"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	state := StoreState{Path: s.path}

	if _, err := os.Stat(s.path); err == nil {
		state.FileExists = true
	}
	if c, err := s.Load(context.Background()); err == nil {
		state.Annotations = len(c.Notes)
	}

	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store-fs"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
