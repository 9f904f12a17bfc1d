package engine

import (
	"context"

	"github.com/aretw0/sidenote/pkg/core"
	"github.com/aretw0/sidenote/pkg/render"
)

// Level classifies host notifications.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// Host is the rendering side of the editor integration. The engine computes
// markers; the host paints them. Implementations must tolerate ApplyMarkers
// being called repeatedly for the same path (renders are recomputed, not
// diffed).
type Host interface {
	// ActiveDocument returns a snapshot of the currently focused document.
	ActiveDocument() (core.Document, bool)

	// VisibleDocuments returns snapshots of every document currently on screen.
	VisibleDocuments() []core.Document

	// ApplyMarkers replaces the painted markers for the given path.
	ApplyMarkers(path string, markers []render.Marker)

	// Notify surfaces a user-facing message.
	Notify(level Level, msg string)
}

// Editor captures annotation text from the user. The call suspends until the
// user acts; closing the input surface resolves to submitted == false.
type Editor interface {
	Edit(ctx context.Context, filePath string, line int, initial string) (text string, submitted bool, err error)
}

// Confirmer asks a yes/no question before a destructive operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// NopHost is a Host that displays nothing. Useful for headless operation
// (batch CLI commands) and tests.
type NopHost struct{}

func (NopHost) ActiveDocument() (core.Document, bool) { return core.Document{}, false }
func (NopHost) VisibleDocuments() []core.Document     { return nil }
func (NopHost) ApplyMarkers(string, []render.Marker)  {}
func (NopHost) Notify(Level, string)                  {}

var _ Host = NopHost{}
