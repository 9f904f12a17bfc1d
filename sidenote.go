package sidenote

import (
	"log/slog"
	"time"

	"github.com/aretw0/sidenote/internal/platform"
	"github.com/aretw0/sidenote/pkg/core"
	"github.com/aretw0/sidenote/pkg/engine"
)

// Version exposes the version of the library.
const Version = "0.1.0"

// --- Types ---

// Annotation is a public alias for the core annotation type.
type Annotation = core.Annotation

// Document is a public alias for the core document snapshot.
type Document = core.Document

// Store is a public alias for the annotation store port.
type Store = core.Store

// Engine is a public alias for the orchestration engine.
type Engine = engine.Engine

// --- Configuration ---

// Option defines a functional option for configuring sidenote.
type Option = platform.Option

// WithStorePath sets the path of the JSON store file.
func WithStorePath(path string) Option {
	return platform.WithStorePath(path)
}

// WithStore injects a custom store implementation.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithLogger sets the logger for the engine and the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithClock overrides the timestamp source (useful for testing).
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithWrapWidth sets the hover word-wrap width.
func WithWrapWidth(width int) Option {
	return platform.WithWrapWidth(width)
}

// WithClickWindow sets the width of the marker click area.
func WithClickWindow(window int) Option {
	return platform.WithClickWindow(window)
}

// WithDebounce sets the click-detection debounce interval.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// WithSettleDelays sets the re-render delays after open/activate events.
func WithSettleDelays(delays []time.Duration) Option {
	return platform.WithSettleDelays(delays)
}

// WithHost sets the editor surface the engine renders to.
func WithHost(host engine.Host) Option {
	return platform.WithHost(host)
}

// WithEditor sets the text-capture surface for interactive annotation.
func WithEditor(editor engine.Editor) Option {
	return platform.WithEditor(editor)
}

// WithConfirmer sets the yes/no prompt used before deletes.
func WithConfirmer(confirmer engine.Confirmer) Option {
	return platform.WithConfirmer(confirmer)
}

// --- Factory ---

// New assembles an annotation engine.
func New(opts ...Option) (*engine.Engine, error) {
	return platform.New(opts...)
}

// --- Utils ---

// ResolveStorePath picks the store file path from an explicit path, the
// environment, the project tree and the config file, in that order.
func ResolveStorePath(explicit, startDir, configPath string) (string, error) {
	return platform.ResolveStorePath(explicit, startDir, configPath)
}

// FindProjectStore looks upwards from startDir for a project-local
// .sidenote.json store file.
func FindProjectStore(startDir string) (string, bool) {
	return platform.FindProjectStore(startDir)
}

// DefaultStorePath returns the user-level store file location.
func DefaultStorePath() (string, error) {
	return platform.DefaultStorePath()
}
