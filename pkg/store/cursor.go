package store

import (
	"sort"

	"github.com/emberkv/ember/pkg/pattern"
)

// Cursor is a query handle bound to a store and a glob pattern.
type Cursor struct {
	store   *Store
	matcher *pattern.Matcher
}

// Find returns a cursor over the keys matching a glob pattern.
// Fails when the pattern's bracket syntax does not compile.
func (s *Store) Find(pat string) (*Cursor, error) {
	m, err := pattern.Compile(pat)
	if err != nil {
		return nil, err
	}
	return &Cursor{store: s, matcher: m}, nil
}

// Fetch returns the matching entries sorted by key, with cloned values.
// Reactive read on the pattern (membership) and on each matched key (value).
func (c *Cursor) Fetch() []Entry {
	s := c.store
	s.dependPattern(c.matcher)

	var entries []Entry
	if c.matcher.Literal() {
		key := c.matcher.Pattern()
		s.dependKey(key)
		if v, ok := s.lookup(key); ok {
			entries = append(entries, Entry{Key: key, Value: v.Clone()})
		}
		return entries
	}

	s.forEachKey(func(key string, v Value) {
		if c.matcher.Match(key) {
			s.dependKey(key)
			entries = append(entries, Entry{Key: key, Value: v.Clone()})
		}
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// Count returns the number of matching keys.
// Reactive read on the pattern only: counts care about membership, not values.
func (c *Cursor) Count() int {
	s := c.store
	s.dependPattern(c.matcher)

	if c.matcher.Literal() {
		if _, ok := s.lookup(c.matcher.Pattern()); ok {
			return 1
		}
		return 0
	}

	n := 0
	s.forEachKey(func(key string, _ Value) {
		if c.matcher.Match(key) {
			n++
		}
	})
	return n
}

// ObserveCallbacks is the callback set for Cursor.Observe. Either the plain
// callbacks (Added/Changed/Removed/Updated) or the ordered variants
// (AddedAt/ChangedAt/RemovedAt/MovedTo) are used; setting any ordered
// callback switches position tracking on. MovedTo never fires (keys sort by
// name and never move) but is accepted for interface parity.
type ObserveCallbacks struct {
	Added   func(e Entry)
	Changed func(newEntry, oldEntry Entry)
	Removed func(e Entry)
	Updated func(e Entry)

	AddedAt   func(e Entry, index int, before *string)
	ChangedAt func(newEntry, oldEntry Entry, index int)
	RemovedAt func(e Entry, index int)
	MovedTo   func(e Entry, from, to int, before *string)
}

func (cb *ObserveCallbacks) ordered() bool {
	return cb.AddedAt != nil || cb.ChangedAt != nil || cb.RemovedAt != nil || cb.MovedTo != nil
}

// Observe registers a long-lived observer for the cursor's pattern.
// Observers receive mutation events only; no initial snapshot is delivered.
// Ordered callbacks are positioned against the full matched key set, which is
// captured at registration so keys that predate the observer report correct
// indices. Stop the returned handle to deregister.
func (c *Cursor) Observe(cb ObserveCallbacks) *Handle {
	o := &observer{matcher: c.matcher}

	if cb.Updated != nil {
		updated := cb.Updated
		o.onUpdated = func(key string, v Value) {
			updated(Entry{Key: key, Value: v})
		}
	}

	if cb.ordered() {
		ord := &orderedKeys{keys: c.matchedKeys()}
		o.onAdded = func(key string, v Value) {
			e := Entry{Key: key, Value: v}
			index, before := ord.insert(key)
			if cb.AddedAt != nil {
				cb.AddedAt(e, index, before)
			}
			if cb.Added != nil {
				cb.Added(e)
			}
		}
		o.onChanged = func(key string, newV, oldV Value) {
			newE := Entry{Key: key, Value: newV}
			oldE := Entry{Key: key, Value: oldV}
			if cb.ChangedAt != nil {
				cb.ChangedAt(newE, oldE, ord.indexOf(key))
			}
			if cb.Changed != nil {
				cb.Changed(newE, oldE)
			}
		}
		o.onRemoved = func(key string, oldV Value) {
			e := Entry{Key: key, Value: oldV}
			index := ord.remove(key)
			if cb.RemovedAt != nil {
				cb.RemovedAt(e, index)
			}
			if cb.Removed != nil {
				cb.Removed(e)
			}
		}
	} else {
		if cb.Added != nil {
			added := cb.Added
			o.onAdded = func(key string, v Value) {
				added(Entry{Key: key, Value: v})
			}
		}
		if cb.Changed != nil {
			changed := cb.Changed
			o.onChanged = func(key string, newV, oldV Value) {
				changed(Entry{Key: key, Value: newV}, Entry{Key: key, Value: oldV})
			}
		}
		if cb.Removed != nil {
			removed := cb.Removed
			o.onRemoved = func(key string, oldV Value) {
				removed(Entry{Key: key, Value: oldV})
			}
		}
	}

	return c.store.addObserver(o)
}

// ChangeCallbacks is the callback set for Cursor.ObserveChanges: the
// field-diff style variant that reports the key separately from the payload.
// Either the plain callbacks (Added/Changed/Removed) or the positional
// variants (AddedBefore/MovedBefore plus Changed/Removed) are used.
// MovedBefore never fires but is accepted for interface parity.
type ChangeCallbacks struct {
	Added   func(key string, value Value)
	Changed func(key string, newValue Value)
	Removed func(key string)

	AddedBefore func(key string, value Value, before *string)
	MovedBefore func(key string, before *string)
}

func (cb *ChangeCallbacks) positional() bool {
	return cb.AddedBefore != nil || cb.MovedBefore != nil
}

// ObserveChanges registers a long-lived observer delivering bare
// key/value change events. Stop the returned handle to deregister.
func (c *Cursor) ObserveChanges(cb ChangeCallbacks) *Handle {
	o := &observer{matcher: c.matcher}

	if cb.positional() {
		ord := &orderedKeys{keys: c.matchedKeys()}
		o.onAdded = func(key string, v Value) {
			_, before := ord.insert(key)
			if cb.AddedBefore != nil {
				cb.AddedBefore(key, v, before)
			}
			if cb.Added != nil {
				cb.Added(key, v)
			}
		}
		o.onRemoved = func(key string, _ Value) {
			ord.remove(key)
			if cb.Removed != nil {
				cb.Removed(key)
			}
		}
	} else {
		if cb.Added != nil {
			o.onAdded = func(key string, v Value) {
				cb.Added(key, v)
			}
		}
		if cb.Removed != nil {
			o.onRemoved = func(key string, _ Value) {
				cb.Removed(key)
			}
		}
	}

	if cb.Changed != nil {
		o.onChanged = func(key string, newV, _ Value) {
			cb.Changed(key, newV)
		}
	}

	return c.store.addObserver(o)
}

// matchedKeys returns the sorted keys currently matching the cursor's
// pattern. Unlike Fetch and Count this is not a reactive read; it seeds the
// position translator for ordered observers.
func (c *Cursor) matchedKeys() []string {
	var keys []string
	if c.matcher.Literal() {
		if _, ok := c.store.lookup(c.matcher.Pattern()); ok {
			keys = append(keys, c.matcher.Pattern())
		}
		return keys
	}
	c.store.forEachKey(func(key string, _ Value) {
		if c.matcher.Match(key) {
			keys = append(keys, key)
		}
	})
	sort.Strings(keys)
	return keys
}

// forEachKey visits every live key-value pair, reading through the overlay
// while paused. Iteration order is unspecified.
func (s *Store) forEachKey(fn func(key string, v Value)) {
	if !s.paused {
		for k, v := range s.data {
			fn(k, v)
		}
		return
	}
	for k, v := range s.data {
		if _, shadowed := s.overlay[k]; shadowed {
			continue
		}
		fn(k, v)
	}
	for k, e := range s.overlay {
		if !e.deleted {
			fn(k, e.value)
		}
	}
}
