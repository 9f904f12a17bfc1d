// Package timer provides a single-slot cancellable timer.
//
// Components that need debouncing or delayed work (click detection, settle
// re-renders) hold one Resettable per logical purpose instead of scattering
// raw time.AfterFunc calls.
package timer

import (
	"sync"
	"time"
)

// Resettable wraps at most one outstanding time.Timer. Resetting replaces the
// pending callback, so only the most recent one fires: pure debounce.
type Resettable struct {
	mu  sync.Mutex
	t   *time.Timer
	seq uint64
}

// NewResettable returns an idle timer.
func NewResettable() *Resettable {
	return &Resettable{}
}

// Reset schedules fn to run after d, cancelling any pending callback.
func (r *Resettable) Reset(d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.t != nil {
		r.t.Stop()
	}
	r.seq++
	seq := r.seq

	// The sequence check guards against a timer that already fired but whose
	// callback has not yet acquired the lock when Reset or Stop raced it.
	r.t = time.AfterFunc(d, func() {
		r.mu.Lock()
		stale := seq != r.seq
		if !stale {
			r.t = nil
		}
		r.mu.Unlock()
		if !stale {
			fn()
		}
	})
}

// Stop cancels the pending callback, if any.
func (r *Resettable) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.t != nil {
		r.t.Stop()
		r.t = nil
	}
	r.seq++
}

// Pending reports whether a callback is currently scheduled.
func (r *Resettable) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.t != nil
}
