package store

import (
	"sync/atomic"

	"github.com/emberkv/ember/pkg/pattern"
)

// observerIDCounter issues unique observer ids across all stores.
var observerIDCounter uint64

func nextObserverID() uint64 {
	return atomic.AddUint64(&observerIDCounter, 1)
}

// EventKind classifies a change notification.
type EventKind int

const (
	// EventAdded fires when a key appears.
	EventAdded EventKind = iota

	// EventChanged fires when an existing key's value changes.
	EventChanged

	// EventRemoved fires when a key disappears.
	EventRemoved

	// EventUpdated is synthetic: it fires alongside every added and changed
	// event, for consumers that do not distinguish creation from update.
	EventUpdated
)

// String returns the event kind's name.
func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	case EventUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Entry is one key-value pair as carried in events and fetch results.
type Entry struct {
	Key   string
	Value Value
}

// observer is one registered (pattern, callback set) pair. The callbacks here
// are the normalized internal form; Cursor.Observe and Cursor.ObserveChanges
// adapt their richer callback structs onto these.
type observer struct {
	id      uint64
	matcher *pattern.Matcher

	onAdded   func(key string, value Value)
	onChanged func(key string, newValue, oldValue Value)
	onRemoved func(key string, oldValue Value)
	onUpdated func(key string, value Value)
}

// deliver invokes the callbacks matching the event kind. Updated fires
// alongside added and changed.
func (o *observer) deliver(key string, kind EventKind, newV, oldV Value) {
	switch kind {
	case EventAdded:
		if o.onAdded != nil {
			o.onAdded(key, newV)
		}
		if o.onUpdated != nil {
			o.onUpdated(key, newV)
		}
	case EventChanged:
		if o.onChanged != nil {
			o.onChanged(key, newV, oldV)
		}
		if o.onUpdated != nil {
			o.onUpdated(key, newV)
		}
	case EventRemoved:
		if o.onRemoved != nil {
			o.onRemoved(key, oldV)
		}
	}
}

// Handle deregisters an observer when stopped.
type Handle struct {
	stop func()
}

// Stop removes the observer from the store. Safe to call more than once.
func (h *Handle) Stop() {
	if h.stop != nil {
		h.stop()
		h.stop = nil
	}
}

// addObserver registers an observer and returns its stop handle.
func (s *Store) addObserver(o *observer) *Handle {
	o.id = nextObserverID()
	s.observers = append(s.observers, o)
	if s.metrics != nil {
		s.metrics.observers.Inc()
	}
	if s.logger != nil {
		s.logger.Debug("observer registered", "pattern", o.matcher.Pattern(), "id", o.id)
	}
	return &Handle{stop: func() { s.removeObserver(o.id) }}
}

// removeObserver drops an observer by id, preserving registration order.
func (s *Store) removeObserver(id uint64) {
	for i, o := range s.observers {
		if o.id == id {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			if s.metrics != nil {
				s.metrics.observers.Dec()
			}
			if s.logger != nil {
				s.logger.Debug("observer stopped", "pattern", o.matcher.Pattern(), "id", id)
			}
			return
		}
	}
}

// notify is the single exit point for committed, unpaused mutations:
// dependency invalidation first, then observer dispatch, synchronously.
func (s *Store) notify(key string, kind EventKind, newV, oldV Value) {
	s.invalidateKey(key, kind == EventRemoved)
	if kind != EventChanged {
		s.invalidatePatterns(key)
	}

	for _, o := range s.observers {
		if o.matcher.Match(key) {
			o.deliver(key, kind, newV, oldV)
		}
	}

	if s.metrics != nil {
		s.metrics.notifications.WithLabelValues(kind.String()).Inc()
		if kind == EventAdded || kind == EventChanged {
			s.metrics.notifications.WithLabelValues(EventUpdated.String()).Inc()
		}
	}
}
