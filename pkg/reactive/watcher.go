package reactive

import (
	"sync"
	"sync/atomic"
)

// Watcher is a minimal tracked computation.
//
// The watched function runs immediately under dependency tracking; every Dep
// it reads subscribes it. When any of those deps change, the watcher is marked
// invalidated and the OnInvalidate hook (if any) fires once. The watcher does
// not re-run by itself; a host scheduler decides when to call Rerun, which
// clears old subscriptions and tracks fresh ones.
type Watcher struct {
	id uint64

	// fn is the tracked function.
	fn func()

	// onInvalidate is called once per invalidation cycle, from Invalidate.
	onInvalidate func(*Watcher)

	// sources are the deps this watcher is subscribed to.
	sources   []*Dep
	sourcesMu sync.Mutex

	// invalidated is set by Invalidate and cleared by Rerun.
	invalidated atomic.Bool

	// stopped indicates the watcher has been stopped.
	stopped atomic.Bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// OnInvalidate sets a hook called once per invalidation cycle.
// This is where a host scheduler queues the watcher for re-running.
func OnInvalidate(fn func(*Watcher)) WatcherOption {
	return func(w *Watcher) {
		w.onInvalidate = fn
	}
}

// Watch creates a watcher and immediately runs fn under dependency tracking.
func Watch(fn func(), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		id: nextID(),
		fn: fn,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.run()
	return w
}

// ID returns the unique identifier for this watcher.
// Implements the Listener interface.
func (w *Watcher) ID() uint64 {
	return w.id
}

// Invalidate marks the watcher as needing a re-run.
// Implements the Listener interface. The OnInvalidate hook fires only on the
// first invalidation since the last Rerun.
func (w *Watcher) Invalidate() {
	if w.stopped.Load() {
		return
	}

	// CAS so the hook fires once per invalidation cycle
	if w.invalidated.CompareAndSwap(false, true) {
		if w.onInvalidate != nil {
			w.onInvalidate(w)
		}
	}
}

// Invalidated reports whether the watcher has been invalidated since its last
// run.
func (w *Watcher) Invalidated() bool {
	return w.invalidated.Load()
}

// Rerun clears the watcher's subscriptions and runs the function again under
// fresh tracking. No-op once stopped.
func (w *Watcher) Rerun() {
	if w.stopped.Load() {
		return
	}
	w.run()
}

// Stop unsubscribes the watcher from all of its deps.
// A stopped watcher never re-runs and ignores further invalidations.
func (w *Watcher) Stop() {
	if w.stopped.Swap(true) {
		return
	}
	w.clearSources()
}

// run executes the watched function under tracking.
func (w *Watcher) run() {
	w.invalidated.Store(false)
	w.clearSources()

	old := setCurrentListener(w)
	defer setCurrentListener(old)
	w.fn()
}

// addSource records a dep this watcher subscribed to.
// Called by Dep.Depend when the watcher is the current listener.
func (w *Watcher) addSource(d *Dep) {
	w.sourcesMu.Lock()
	defer w.sourcesMu.Unlock()

	for _, s := range w.sources {
		if s == d {
			return
		}
	}
	w.sources = append(w.sources, d)
}

// clearSources unsubscribes from all tracked deps.
func (w *Watcher) clearSources() {
	w.sourcesMu.Lock()
	sources := w.sources
	w.sources = nil
	w.sourcesMu.Unlock()

	for _, s := range sources {
		s.unsubscribe(w)
	}
}
