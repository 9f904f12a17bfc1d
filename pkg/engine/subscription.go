package engine

import "github.com/google/uuid"

// Subscription is a cancellable handle to a registration held by the engine.
// Each handle can be cancelled independently; the engine also releases all
// outstanding handles as a unit on Close.
type Subscription struct {
	ID     uuid.UUID
	cancel func()
}

// Cancel releases the subscription. Safe to call more than once.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

// track registers a cancel function and returns its handle.
func (e *Engine) track(cancel func()) Subscription {
	id := uuid.New()

	e.mu.Lock()
	e.subs[id] = cancel
	e.mu.Unlock()

	return Subscription{
		ID: id,
		cancel: func() {
			e.mu.Lock()
			fn, ok := e.subs[id]
			delete(e.subs, id)
			e.mu.Unlock()
			if ok && fn != nil {
				fn()
			}
		},
	}
}

// SubscribeChanged registers fn to run after every annotation mutation or
// external store change. The callback runs on the engine's notification path;
// keep it short.
func (e *Engine) SubscribeChanged(fn func()) Subscription {
	id := uuid.New()

	e.mu.Lock()
	e.changed[id] = fn
	e.mu.Unlock()

	return Subscription{
		ID: id,
		cancel: func() {
			e.mu.Lock()
			delete(e.changed, id)
			e.mu.Unlock()
		},
	}
}

func (e *Engine) notifyChanged() {
	e.mu.Lock()
	fns := make([]func(), 0, len(e.changed))
	for _, fn := range e.changed {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
