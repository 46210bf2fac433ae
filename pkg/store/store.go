package store

import (
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel/trace"

	"github.com/emberkv/ember/pkg/reactive"
)

// Store owns the key-value mapping, the dependency registry, the observer
// registry and the originals journal. Create one with New; multiple
// independent stores can coexist, there is no ambient state.
type Store struct {
	// data is the base generation of the key-value mapping.
	data map[string]Value

	// overlay is the copy-on-write layer installed while paused.
	// nil when not paused. Only one layer ever exists.
	overlay map[string]overlayEntry
	paused  bool

	// keyDeps holds one invalidation handle per reactively-read key.
	// Created lazily on first tracked read, garbage-collected when
	// dependent-free after a removal.
	keyDeps map[string]*reactive.Dep

	// patternDeps holds one handle per distinct pattern used in a
	// pattern-scoped read, with its compiled matcher.
	patternDeps map[string]*patternDep

	// observers receive change events for keys matching their pattern,
	// in registration order.
	observers []*observer

	// journal captures first pre-mutation values while open.
	journal     map[string]Original
	journalOpen bool

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// overlayEntry is one copy-on-write slot: either a pending value or a
// tombstone for a pending removal.
type overlayEntry struct {
	value   Value
	deleted bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a structured logger. The store logs pause/resume and
// observer lifecycle at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithMetrics attaches a metrics set; see NewMetrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithTracer attaches an OpenTelemetry tracer. The command dispatcher opens
// one span per dispatched command.
func WithTracer(t trace.Tracer) Option {
	return func(s *Store) {
		s.tracer = t
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		data:        make(map[string]Value),
		keyDeps:     make(map[string]*reactive.Dep),
		patternDeps: make(map[string]*patternDep),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lookup returns the current value for a key, reading through the overlay
// while paused. No dependency is recorded.
func (s *Store) lookup(key string) (Value, bool) {
	if s.paused {
		if e, ok := s.overlay[key]; ok {
			if e.deleted {
				return nil, false
			}
			return e.value, true
		}
	}
	v, ok := s.data[key]
	return v, ok
}

// Has reports whether the key exists. Reactive read on the key.
func (s *Store) Has(key string) bool {
	s.dependKey(key)
	_, ok := s.lookup(key)
	return ok
}

// GetValue returns the current value for a key. Reactive read on the key.
// The returned value must not be mutated; commands that hand values to
// callers clone first.
func (s *Store) GetValue(key string) (Value, bool) {
	s.dependKey(key)
	return s.lookup(key)
}

// SetValue writes a value, journaling the first pre-mutation state and
// notifying observers unless paused. Observably a no-op when the new value
// deep-equals the old (the journal still records the touch).
func (s *Store) SetValue(key string, v Value) {
	old, existed := s.lookup(key)
	s.recordOriginal(key, old, existed)

	if existed && old.Equal(v) {
		return
	}

	if s.paused {
		s.overlay[key] = overlayEntry{value: v}
		return
	}

	s.data[key] = v
	s.gaugeKeys()
	if existed {
		s.notify(key, EventChanged, v, old)
	} else {
		s.notify(key, EventAdded, v, nil)
	}
}

// Remove deletes a key, journaling the first pre-mutation state and
// notifying observers unless paused. Removing an absent key is a no-op.
// Returns whether the key existed.
func (s *Store) Remove(key string) bool {
	old, existed := s.lookup(key)
	if !existed {
		return false
	}
	s.recordOriginal(key, old, true)

	if s.paused {
		s.overlay[key] = overlayEntry{deleted: true}
		return true
	}

	delete(s.data, key)
	s.gaugeKeys()
	s.notify(key, EventRemoved, nil, old)
	return true
}

// PauseObservers suspends dependency invalidation and observer dispatch.
// Writes keep landing in a copy-on-write overlay and keep feeding the
// journal; reads always see the most recent write. Idempotent.
func (s *Store) PauseObservers() {
	if s.paused {
		return
	}
	s.paused = true
	s.overlay = make(map[string]overlayEntry)
	if s.logger != nil {
		s.logger.Debug("observers paused")
	}
}

// ResumeObservers flattens the overlay into the base map and emits exactly
// one net notification per key whose value differs from its pre-pause state:
// added if it was absent, removed if it is now absent, changed otherwise.
// Intermediate writes made while paused are never observable. Idempotent.
//
// The flatten completes before any callback runs, so no observer ever sees a
// two-layer state.
func (s *Store) ResumeObservers() {
	if !s.paused {
		return
	}
	s.paused = false
	overlay := s.overlay
	s.overlay = nil

	type netEvent struct {
		key        string
		kind       EventKind
		newV, oldV Value
	}

	keys := make([]string, 0, len(overlay))
	for k := range overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	events := make([]netEvent, 0, len(keys))
	for _, k := range keys {
		e := overlay[k]
		old, existed := s.data[k]
		switch {
		case e.deleted:
			if existed {
				delete(s.data, k)
				events = append(events, netEvent{k, EventRemoved, nil, old})
			}
		case !existed:
			s.data[k] = e.value
			events = append(events, netEvent{k, EventAdded, e.value, nil})
		case !old.Equal(e.value):
			s.data[k] = e.value
			events = append(events, netEvent{k, EventChanged, e.value, old})
		}
	}

	s.gaugeKeys()
	if s.metrics != nil {
		s.metrics.resumeCoalesced.Add(float64(len(events)))
	}
	if s.logger != nil {
		s.logger.Debug("observers resumed",
			"paused_writes", len(overlay), "net_events", len(events))
	}

	for _, ev := range events {
		s.notify(ev.key, ev.kind, ev.newV, ev.oldV)
	}
}

// Paused reports whether observer dispatch is currently suspended.
func (s *Store) Paused() bool {
	return s.paused
}

// Len returns the number of keys currently in the store, overlay included.
// Not a reactive read.
func (s *Store) Len() int {
	if !s.paused {
		return len(s.data)
	}
	n := len(s.data)
	for k, e := range s.overlay {
		_, inBase := s.data[k]
		if e.deleted {
			if inBase {
				n--
			}
		} else if !inBase {
			n++
		}
	}
	return n
}

// gaugeKeys updates the key-count gauge if metrics are attached.
func (s *Store) gaugeKeys() {
	if s.metrics != nil {
		s.metrics.keys.Set(float64(len(s.data)))
	}
}
