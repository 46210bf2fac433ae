package reactive

import "sync"

// Listener is the interface a host scheduler attaches to a Dep.
// When the Dep changes, every subscribed listener has Invalidate called
// exactly once per change. What happens next (batching, scheduling a re-run,
// tearing the computation down) is up to the listener's owner.
type Listener interface {
	// ID returns a unique identifier, used to deduplicate subscriptions.
	ID() uint64

	// Invalidate signals that a dependency of this listener changed.
	Invalidate()
}

// sourceTracker is implemented by listeners that want to know which Deps they
// subscribed to, so they can unsubscribe on stop or re-run.
type sourceTracker interface {
	Listener
	addSource(d *Dep)
}

// Dep is an invalidation handle.
//
// Reading through Depend during a tracked context subscribes the current
// listener. Changed invalidates every subscriber. Subscriptions persist across
// invalidations; a listener stays subscribed until it unsubscribes itself
// (Watcher does this on Stop and on Rerun).
type Dep struct {
	id uint64

	// subs are the listeners subscribed to this dep.
	subs []Listener

	// subMu protects the subs slice.
	subMu sync.RWMutex
}

// NewDep creates a new, dependent-free invalidation handle.
func NewDep() *Dep {
	return &Dep{id: nextID()}
}

// ID returns the unique identifier for this dep.
func (d *Dep) ID() uint64 {
	return d.id
}

// Depend subscribes the current listener to this dep.
// Returns true if a listener was active and newly subscribed, false if there
// was no active listener or it was already subscribed.
func (d *Dep) Depend() bool {
	l := CurrentListener()
	if l == nil {
		return false
	}

	added := d.subscribe(l)
	if added {
		if st, ok := l.(sourceTracker); ok {
			st.addSource(d)
		}
	}
	return added
}

// Changed invalidates every subscriber.
// Uses copy-before-notify so no lock is held while listener code runs.
func (d *Dep) Changed() {
	d.subMu.RLock()
	subs := make([]Listener, len(d.subs))
	copy(subs, d.subs)
	d.subMu.RUnlock()

	for _, sub := range subs {
		sub.Invalidate()
	}
}

// HasDependents reports whether any listener is subscribed.
// The store uses this to garbage-collect dependency handles that no
// computation reads anymore.
func (d *Dep) HasDependents() bool {
	d.subMu.RLock()
	defer d.subMu.RUnlock()
	return len(d.subs) > 0
}

// subscribe adds a listener, deduplicating by listener ID.
// Returns true if the listener was newly added.
func (d *Dep) subscribe(l Listener) bool {
	if l == nil {
		return false
	}

	d.subMu.Lock()
	defer d.subMu.Unlock()

	lid := l.ID()
	for _, existing := range d.subs {
		if existing.ID() == lid {
			return false
		}
	}

	d.subs = append(d.subs, l)
	return true
}

// unsubscribe removes a listener from this dep's subscribers.
func (d *Dep) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	d.subMu.Lock()
	defer d.subMu.Unlock()

	lid := l.ID()
	for i, existing := range d.subs {
		if existing.ID() == lid {
			// Remove by swapping with last element (order doesn't matter)
			d.subs[i] = d.subs[len(d.subs)-1]
			d.subs = d.subs[:len(d.subs)-1]
			return
		}
	}
}
