// Package engine wires the annotation store, the position resolver and the
// interaction detector to a host editor surface.
//
// The engine owns all temporal coordination: settle re-renders around
// document-open races, the post-mutation render sequence, and the lifetime of
// event subscriptions. It holds no annotation state of its own: every render
// re-reads the store, every mutation is a full store cycle.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/sidenote/pkg/core"
	"github.com/aretw0/sidenote/pkg/interact"
	"github.com/aretw0/sidenote/pkg/render"
	"github.com/aretw0/sidenote/pkg/timer"
)

// Default settle timing. The host's visible-editor state may not be fully
// settled immediately after an open/activate event, so decorations are
// recomputed again after these delays.
var defaultOpenSettle = []time.Duration{100 * time.Millisecond, 400 * time.Millisecond}

// DefaultMutationSettle is the delay before the extra re-render that follows
// every mutation.
const DefaultMutationSettle = 500 * time.Millisecond

// Config holds the engine dependencies and timing knobs.
type Config struct {
	Store     core.Store
	Resolver  *render.Resolver
	Host      Host
	Editor    Editor
	Confirmer Confirmer
	Logger    *slog.Logger

	// ClickDebounce and ClickWindow configure the interaction detector.
	ClickDebounce time.Duration
	ClickWindow   int

	// OpenSettle lists successive delays between the re-renders scheduled
	// after an open/activate event. Nil means the defaults.
	OpenSettle []time.Duration

	// MutationSettle is the delay before the final re-render after a mutation.
	MutationSettle time.Duration
}

// Engine sequences operations between the store, the resolver and the host.
type Engine struct {
	store    core.Store
	resolver *render.Resolver
	host     Host
	editor   Editor
	confirm  Confirmer
	logger   *slog.Logger
	detector *interact.Detector

	openSettle     []time.Duration
	mutationSettle time.Duration
	settleTimer    *timer.Resettable

	mu      sync.Mutex
	subs    map[uuid.UUID]func()
	changed map[uuid.UUID]func()
	closed  bool
}

// New creates an Engine. Store and Host are required; Editor and Confirmer
// may be nil for headless use (interactive operations then fail gracefully).
func New(config Config) (*Engine, error) {
	if config.Store == nil {
		return nil, errors.New("engine requires a store")
	}
	if config.Host == nil {
		return nil, errors.New("engine requires a host")
	}

	resolver := config.Resolver
	if resolver == nil {
		resolver = render.NewResolver(render.DefaultWidth)
	}
	openSettle := config.OpenSettle
	if openSettle == nil {
		openSettle = defaultOpenSettle
	}
	mutationSettle := config.MutationSettle
	if mutationSettle <= 0 {
		mutationSettle = DefaultMutationSettle
	}

	e := &Engine{
		store:          config.Store,
		resolver:       resolver,
		host:           config.Host,
		editor:         config.Editor,
		confirm:        config.Confirmer,
		logger:         config.Logger,
		openSettle:     openSettle,
		mutationSettle: mutationSettle,
		settleTimer:    timer.NewResettable(),
		subs:           make(map[uuid.UUID]func()),
		changed:        make(map[uuid.UUID]func()),
	}

	e.detector = interact.NewDetector(interact.Config{
		Lookup:   config.Store,
		OnClick:  e.markerClicked,
		Debounce: config.ClickDebounce,
		Window:   config.ClickWindow,
		Logger:   config.Logger,
	})

	return e, nil
}

// Start performs the initial render and, when the store supports it, begins
// following external store changes. It returns immediately; background work
// stops when ctx is cancelled or Close is called.
func (e *Engine) Start(ctx context.Context) error {
	e.Activated(ctx)

	watchable, ok := e.store.(core.Watchable)
	if !ok {
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	events, err := watchable.Watch(watchCtx)
	if err != nil {
		cancel()
		// Watching is best-effort: the engine still works, views just will
		// not follow external writes.
		if e.logger != nil {
			e.logger.Warn("store watch unavailable", "error", err)
		}
		return nil
	}

	e.track(cancel)

	go func() {
		for range events {
			if e.logger != nil {
				e.logger.Debug("store changed externally, re-rendering")
			}
			e.RenderActive(context.Background())
			e.RefreshVisible(context.Background())
			e.notifyChanged()
		}
	}()

	return nil
}

// Put creates or replaces the annotation at (filePath, line) without
// prompting, then runs the post-mutation render sequence.
func (e *Engine) Put(ctx context.Context, filePath string, line int, text string) error {
	if err := e.store.Upsert(ctx, filePath, line, text); err != nil {
		e.reportWriteError(err)
		return err
	}
	e.afterMutation(ctx)
	e.host.Notify(LevelInfo, fmt.Sprintf("annotation saved at %s", anchorLabel(filePath, line)))
	return nil
}

// Annotate prompts for text at (filePath, line), prefilled with the existing
// annotation if any, and upserts the result. A cancelled prompt is not an
// error; nothing is written.
func (e *Engine) Annotate(ctx context.Context, filePath string, line int) error {
	if e.editor == nil {
		err := errors.New("no editor configured")
		e.host.Notify(LevelError, err.Error())
		return err
	}

	initial := ""
	if existing, ok, err := e.store.Get(ctx, filePath, line); err == nil && ok {
		initial = existing.Text
	}

	text, submitted, err := e.editor.Edit(ctx, filePath, line, initial)
	if err != nil {
		e.host.Notify(LevelError, "failed to capture annotation: "+err.Error())
		return err
	}
	if !submitted {
		e.host.Notify(LevelInfo, "annotation cancelled")
		return nil
	}

	return e.Put(ctx, filePath, line, text)
}

// Remove deletes the annotation at (filePath, line) after confirmation.
// A missing annotation is informational, not an error: the user is told and
// nil is returned.
func (e *Engine) Remove(ctx context.Context, filePath string, line int) error {
	if e.confirm != nil {
		if !e.confirm.Confirm(ctx, fmt.Sprintf("Delete annotation at %s?", anchorLabel(filePath, line))) {
			e.host.Notify(LevelInfo, "delete cancelled")
			return nil
		}
	}

	err := e.store.Delete(ctx, filePath, line)
	if errors.Is(err, core.ErrNotFound) {
		e.host.Notify(LevelInfo, fmt.Sprintf("no annotation at %s", anchorLabel(filePath, line)))
		return nil
	}
	if err != nil {
		e.reportWriteError(err)
		return err
	}

	e.afterMutation(ctx)
	e.host.Notify(LevelInfo, fmt.Sprintf("annotation deleted at %s", anchorLabel(filePath, line)))
	return nil
}

// List returns every annotation in presentation order.
func (e *Engine) List(ctx context.Context) ([]core.Annotation, error) {
	return e.store.AllSorted(ctx)
}

// Store exposes the underlying store for collaborator surfaces (TUI, CLI).
func (e *Engine) Store() core.Store {
	return e.store
}

// Resolver exposes the position resolver for collaborator surfaces.
func (e *Engine) Resolver() *render.Resolver {
	return e.resolver
}

// DocumentOpened recomputes decorations for a freshly opened document, then
// again after the settle delays: the host may not report the new view as
// visible yet when the open event fires.
func (e *Engine) DocumentOpened(ctx context.Context, doc core.Document) {
	e.renderDoc(ctx, doc)
	e.scheduleSettle(e.openSettle)
}

// Activated recomputes decorations for the active document, then again after
// the settle delays. Called on startup and when focus changes.
func (e *Engine) Activated(ctx context.Context) {
	e.RenderActive(ctx)
	e.scheduleSettle(e.openSettle)
}

// SelectionChanged feeds a cursor/selection event to the interaction detector.
func (e *Engine) SelectionChanged(sel interact.Selection) {
	e.detector.Observe(sel)
}

// RenderActive recomputes decorations for the host's active document.
func (e *Engine) RenderActive(ctx context.Context) {
	if doc, ok := e.host.ActiveDocument(); ok {
		e.renderDoc(ctx, doc)
	}
}

// RenderPath recomputes decorations for every visible view of one file.
func (e *Engine) RenderPath(ctx context.Context, filePath string) {
	canon, err := core.CanonicalPath(filePath)
	if err != nil {
		return
	}
	for _, doc := range e.host.VisibleDocuments() {
		if docCanon, err := core.CanonicalPath(doc.Path); err == nil && docCanon == canon {
			e.renderDoc(ctx, doc)
		}
	}
}

// RefreshVisible recomputes decorations for every visible document, keeping
// all open views of a file consistent.
func (e *Engine) RefreshVisible(ctx context.Context) {
	for _, doc := range e.host.VisibleDocuments() {
		e.renderDoc(ctx, doc)
	}
}

// Close cancels all subscriptions, the detector and any pending settle timer.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	cancels := make([]func(), 0, len(e.subs))
	for _, fn := range e.subs {
		cancels = append(cancels, fn)
	}
	e.subs = make(map[uuid.UUID]func())
	e.changed = make(map[uuid.UUID]func())
	e.mu.Unlock()

	for _, fn := range cancels {
		if fn != nil {
			fn()
		}
	}
	e.detector.Close()
	e.settleTimer.Stop()
}

// afterMutation runs the render sequence that follows every store write:
// immediate render of the active document, render of all visible documents,
// then one more delayed render in case the first pass raced a view that was
// not ready. The store write has already completed by the time this runs, so
// no render can observe half-written state.
func (e *Engine) afterMutation(ctx context.Context) {
	e.RenderActive(ctx)
	e.RefreshVisible(ctx)
	e.settleTimer.Reset(e.mutationSettle, func() {
		e.RenderActive(context.Background())
		e.RefreshVisible(context.Background())
	})
	e.notifyChanged()
}

// scheduleSettle chains delayed re-renders at each successive delay. A single
// timer backs the chain, so a newer settle sequence supersedes an older one.
func (e *Engine) scheduleSettle(delays []time.Duration) {
	if len(delays) == 0 {
		return
	}
	rest := delays[1:]
	e.settleTimer.Reset(delays[0], func() {
		e.RenderActive(context.Background())
		e.RefreshVisible(context.Background())
		e.scheduleSettle(rest)
	})
}

func (e *Engine) renderDoc(ctx context.Context, doc core.Document) {
	anns, err := e.store.ByFile(ctx, doc.Path)
	if err != nil {
		if e.logger != nil {
			e.logger.Error("failed to load annotations for render", "path", doc.Path, "error", err)
		}
		return
	}
	e.host.ApplyMarkers(doc.Path, e.resolver.Markers(doc, anns))
}

// markerClicked handles a resolved marker click by opening the edit prompt
// for the clicked annotation.
func (e *Engine) markerClicked(ann core.Annotation) {
	if e.logger != nil {
		e.logger.Debug("marker clicked", "path", ann.FilePath, "line", ann.Line)
	}
	_ = e.Annotate(context.Background(), ann.FilePath, ann.Line)
}

func (e *Engine) reportWriteError(err error) {
	var vErr *core.ValidationError
	switch {
	case errors.Is(err, core.ErrEmptyText), errors.Is(err, core.ErrTextTooLong), errors.As(err, &vErr):
		e.host.Notify(LevelWarn, err.Error())
	default:
		e.host.Notify(LevelError, "failed to save annotations: "+err.Error())
	}
}

// anchorLabel formats an anchor for humans: 1-based line number.
func anchorLabel(filePath string, line int) string {
	return fmt.Sprintf("%s:%d", filePath, line+1)
}
