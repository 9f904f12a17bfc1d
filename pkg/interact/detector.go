// Package interact distinguishes deliberate clicks near an annotation marker
// from incidental caret movement (arrow keys, programmatic selection, edits).
//
// The detector is a small state machine: idle until a qualifying cursor event
// arrives, pending while the click debounce runs, and back to idle once the
// pending position is evaluated. Only the most recent candidate within the
// debounce window survives.
package interact

import (
	"context"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/aretw0/sidenote/pkg/core"
	"github.com/aretw0/sidenote/pkg/timer"
)

const (
	// DefaultDebounce is the quiet period before a candidate click is evaluated.
	DefaultDebounce = 100 * time.Millisecond

	// DefaultWindow is how many trailing characters of a line's text count as
	// the marker area.
	DefaultWindow = 10
)

// Source identifies what produced a selection change.
type Source int

const (
	SourcePointer Source = iota
	SourceKeyboard
	SourceProgrammatic
)

// Selection describes a single cursor/selection change in a live document.
type Selection struct {
	Doc          core.Document
	Line         int
	Col          int
	Source       Source
	HasSelection bool // true when a text range is selected (not a bare caret)
}

// Lookup resolves an annotation at an exact (path, line) anchor.
// *fs.Store satisfies it.
type Lookup interface {
	Get(ctx context.Context, filePath string, line int) (core.Annotation, bool, error)
}

// Config holds the configuration for a Detector.
type Config struct {
	Lookup   Lookup
	OnClick  func(core.Annotation) // invoked when a click resolves to an annotation
	Debounce time.Duration         // zero means DefaultDebounce
	Window   int                   // zero means DefaultWindow
	Logger   *slog.Logger
}

type position struct {
	path string
	line int
	col  int
}

// Detector observes selection changes and resolves marker-area clicks.
type Detector struct {
	lookup   Lookup
	onClick  func(core.Annotation)
	debounce time.Duration
	window   int
	logger   *slog.Logger

	mu     sync.Mutex
	timer  *timer.Resettable
	last   *position
	closed bool
}

// NewDetector creates a Detector.
func NewDetector(config Config) *Detector {
	debounce := config.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	window := config.Window
	if window <= 0 {
		window = DefaultWindow
	}
	return &Detector{
		lookup:   config.Lookup,
		onClick:  config.OnClick,
		debounce: debounce,
		window:   window,
		logger:   config.Logger,
		timer:    timer.NewResettable(),
	}
}

// Observe feeds one selection change through the state machine.
//
// A qualifying event (bare caret, pointer origin, position differing from the
// previously recorded one) starts or restarts the debounce timer. Anything
// else is a no-op and never advances the state.
func (d *Detector) Observe(sel Selection) {
	if sel.HasSelection || sel.Source != SourcePointer {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	pos := position{path: sel.Doc.Path, line: sel.Line, col: sel.Col}
	if d.last != nil && *d.last == pos {
		// Duplicate event for one physical click.
		d.mu.Unlock()
		return
	}
	d.last = &pos
	d.mu.Unlock()

	d.timer.Reset(d.debounce, func() { d.resolve(sel) })
}

// resolve evaluates the pending position once the debounce window elapsed.
func (d *Detector) resolve(sel Selection) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	if !inMarkerArea(sel.Doc.LineText(sel.Line), sel.Col, d.window) {
		return
	}

	ann, ok, err := d.lookup.Get(context.Background(), sel.Doc.Path, sel.Line)
	if err != nil {
		if d.logger != nil {
			d.logger.Debug("annotation lookup failed", "path", sel.Doc.Path, "line", sel.Line, "error", err)
		}
		return
	}
	if !ok {
		return
	}
	if d.onClick != nil {
		d.onClick(ann)
	}
}

// Close cancels any outstanding debounce timer. Further events are ignored.
func (d *Detector) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.timer.Stop()
}

// inMarkerArea reports whether col falls within the trailing window of the
// line's text. Columns past the end of the line also count: the marker is
// rendered after the text.
func inMarkerArea(line string, col, window int) bool {
	start := utf8.RuneCountInString(line) - window
	if start < 0 {
		start = 0
	}
	return col >= start
}
