package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/sidenote/pkg/core"
	"github.com/aretw0/sidenote/pkg/engine"
)

// options holds the internal configuration for the sidenote engine.
type options struct {
	storePath    string
	store        core.Store
	logger       *slog.Logger
	clock        func() time.Time
	wrapWidth    int
	clickWindow  int
	debounce     time.Duration
	settleDelays []time.Duration
	host         engine.Host
	editor       engine.Editor
	confirmer    engine.Confirmer
}

// Option defines a functional option for configuring sidenote.
type Option func(*options)

// defaultOptions returns the default configuration. The store path is left
// empty here; the factory resolves it (env, project file, config file,
// user-config default) when no explicit path was given.
func defaultOptions() *options {
	return &options{}
}

// WithStorePath sets the path of the JSON store file.
func WithStorePath(path string) Option {
	return func(o *options) {
		o.storePath = path
	}
}

// WithStore injects a custom store implementation. If provided, the default
// filesystem store (and any store path) is skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLogger sets the logger for the engine and the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the timestamp source (useful for testing).
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithWrapWidth sets the hover word-wrap width. Zero means the default (60).
func WithWrapWidth(width int) Option {
	return func(o *options) {
		o.wrapWidth = width
	}
}

// WithClickWindow sets how many trailing columns of a line count as the
// marker click area. Zero means the default (10).
func WithClickWindow(window int) Option {
	return func(o *options) {
		o.clickWindow = window
	}
}

// WithDebounce sets the click-detection debounce interval. Zero means the
// default (100ms).
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithSettleDelays sets the successive delays for the re-renders scheduled
// after open/activate events. Nil means the defaults.
func WithSettleDelays(delays []time.Duration) Option {
	return func(o *options) {
		o.settleDelays = delays
	}
}

// WithHost sets the editor surface the engine renders to. Defaults to
// engine.NopHost (headless).
func WithHost(host engine.Host) Option {
	return func(o *options) {
		o.host = host
	}
}

// WithEditor sets the text-capture surface for interactive annotation.
func WithEditor(editor engine.Editor) Option {
	return func(o *options) {
		o.editor = editor
	}
}

// WithConfirmer sets the yes/no prompt used before deletes.
func WithConfirmer(confirmer engine.Confirmer) Option {
	return func(o *options) {
		o.confirmer = confirmer
	}
}
