package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	s := New()
	s.Set("user:2", "b")
	s.Set("user:1", "a")
	s.Set("other", "x")

	c, err := s.Find("user:*")
	require.NoError(t, err)

	entries := c.Fetch()
	require.Len(t, entries, 2)
	assert.Equal(t, "user:1", entries[0].Key)
	assert.Equal(t, StringValue("a"), entries[0].Value)
	assert.Equal(t, "user:2", entries[1].Key)
}

func TestFetchLiteral(t *testing.T) {
	s := New()
	s.Set("exact", "v")

	c, err := s.Find("exact")
	require.NoError(t, err)
	entries := c.Fetch()
	require.Len(t, entries, 1)
	assert.Equal(t, "exact", entries[0].Key)

	c, err = s.Find("missing")
	require.NoError(t, err)
	assert.Empty(t, c.Fetch())
}

func TestFetchClonesValues(t *testing.T) {
	s := New()
	_, err := s.Rpush("l", "a")
	require.NoError(t, err)

	c, err := s.Find("l")
	require.NoError(t, err)
	entries := c.Fetch()
	require.Len(t, entries, 1)

	entries[0].Value.(ListValue)[0] = "mutated"
	got, err := s.Lrange("l", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
}

func TestCount(t *testing.T) {
	s := New()
	s.Set("user:1", "a")
	s.Set("user:2", "b")
	s.Set("other", "x")

	c, err := s.Find("user:*")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Count())

	lit, err := s.Find("other")
	require.NoError(t, err)
	assert.Equal(t, 1, lit.Count())

	none, err := s.Find("nope:*")
	require.NoError(t, err)
	assert.Equal(t, 0, none.Count())
}

func TestFindInvalidPattern(t *testing.T) {
	s := New()
	_, err := s.Find("user:[")
	assert.Error(t, err)
}

func TestObserveScopedToPattern(t *testing.T) {
	s := New()
	events, _ := recordEvents(t, s, "user:*")

	s.Set("user:1", "a")
	s.Set("other", "x")

	require.Len(t, *events, 1)
	assert.Equal(t, "user:1", (*events)[0].key)
}

func TestObserveNoInitialSnapshot(t *testing.T) {
	s := New()
	s.Set("user:1", "pre-existing")

	events, _ := recordEvents(t, s, "user:*")
	assert.Empty(t, *events, "registration delivers no events for existing keys")
}

func TestObserveStop(t *testing.T) {
	s := New()
	events, h := recordEvents(t, s, "*")

	s.Set("a", "1")
	require.Len(t, *events, 1)

	h.Stop()
	s.Set("b", "2")
	assert.Len(t, *events, 1, "stopped observer sees nothing")

	h.Stop() // idempotent
}

func TestObserveUpdatedFiresAlongsideAddedAndChanged(t *testing.T) {
	s := New()
	c, err := s.Find("*")
	require.NoError(t, err)

	var kinds []string
	c.Observe(ObserveCallbacks{
		Added:   func(e Entry) { kinds = append(kinds, "added") },
		Changed: func(newE, oldE Entry) { kinds = append(kinds, "changed") },
		Removed: func(e Entry) { kinds = append(kinds, "removed") },
		Updated: func(e Entry) { kinds = append(kinds, "updated") },
	})

	s.Set("k", "a")
	s.Set("k", "b")
	s.Remove("k")

	assert.Equal(t, []string{
		"added", "updated",
		"changed", "updated",
		"removed",
	}, kinds)
}

func TestObserveRegistrationOrder(t *testing.T) {
	s := New()
	c, err := s.Find("*")
	require.NoError(t, err)

	var order []int
	c.Observe(ObserveCallbacks{Added: func(Entry) { order = append(order, 1) }})
	c.Observe(ObserveCallbacks{Added: func(Entry) { order = append(order, 2) }})

	s.Set("k", "v")
	assert.Equal(t, []int{1, 2}, order)
}

type orderedEvent struct {
	kind   string
	key    string
	index  int
	before *string
}

func TestObserveOrderedPositions(t *testing.T) {
	s := New()
	c, err := s.Find("*")
	require.NoError(t, err)

	var events []orderedEvent
	c.Observe(ObserveCallbacks{
		AddedAt: func(e Entry, index int, before *string) {
			events = append(events, orderedEvent{"added", e.Key, index, before})
		},
		ChangedAt: func(newE, oldE Entry, index int) {
			events = append(events, orderedEvent{"changed", newE.Key, index, nil})
		},
		RemovedAt: func(e Entry, index int) {
			events = append(events, orderedEvent{"removed", e.Key, index, nil})
		},
	})

	s.Set("b", "1")
	s.Set("a", "2")
	s.Set("c", "3")

	require.Len(t, events, 3)
	// "b" lands at 0 in an empty sequence, nothing before it
	assert.Equal(t, orderedEvent{"added", "b", 0, nil}, events[0])
	// "a" sorts ahead of "b": index 0, before "b"
	assert.Equal(t, "added", events[1].kind)
	assert.Equal(t, 0, events[1].index)
	require.NotNil(t, events[1].before)
	assert.Equal(t, "b", *events[1].before)
	// "c" appends at the end
	assert.Equal(t, orderedEvent{"added", "c", 2, nil}, events[2])

	s.Set("b", "changed")
	require.Len(t, events, 4)
	assert.Equal(t, orderedEvent{"changed", "b", 1, nil}, events[3])

	s.Remove("a")
	require.Len(t, events, 5)
	assert.Equal(t, orderedEvent{"removed", "a", 0, nil}, events[4])

	// After removing "a", "b" sits at index 0
	s.Remove("b")
	require.Len(t, events, 6)
	assert.Equal(t, orderedEvent{"removed", "b", 0, nil}, events[5])
}

func TestObserveOrderedPreExistingKeys(t *testing.T) {
	s := New()
	s.Set("b", "1")
	s.Set("d", "2")

	c, err := s.Find("*")
	require.NoError(t, err)

	var events []orderedEvent
	c.Observe(ObserveCallbacks{
		AddedAt: func(e Entry, index int, before *string) {
			events = append(events, orderedEvent{"added", e.Key, index, before})
		},
		ChangedAt: func(newE, oldE Entry, index int) {
			events = append(events, orderedEvent{"changed", newE.Key, index, nil})
		},
		RemovedAt: func(e Entry, index int) {
			events = append(events, orderedEvent{"removed", e.Key, index, nil})
		},
	})

	// Keys that predate the observer hold their sorted positions
	s.Set("b", "changed")
	require.Len(t, events, 1)
	assert.Equal(t, orderedEvent{"changed", "b", 0, nil}, events[0])

	s.Set("c", "new")
	require.Len(t, events, 2)
	assert.Equal(t, "added", events[1].kind)
	assert.Equal(t, 1, events[1].index)
	require.NotNil(t, events[1].before)
	assert.Equal(t, "d", *events[1].before)

	s.Remove("d")
	require.Len(t, events, 3)
	assert.Equal(t, orderedEvent{"removed", "d", 2, nil}, events[2])

	s.Remove("b")
	require.Len(t, events, 4)
	assert.Equal(t, orderedEvent{"removed", "b", 0, nil}, events[3])
}

func TestObserveOrderedRemovePreExistingOnly(t *testing.T) {
	s := New()
	s.Set("k", "v")

	c, err := s.Find("*")
	require.NoError(t, err)

	var removedAt []int
	c.Observe(ObserveCallbacks{
		RemovedAt: func(e Entry, index int) {
			removedAt = append(removedAt, index)
		},
	})

	s.Remove("k")
	assert.Equal(t, []int{0}, removedAt)
}

func TestObserveOrderedSeedScopedToPattern(t *testing.T) {
	s := New()
	s.Set("user:2", "a")
	s.Set("other", "x")

	c, err := s.Find("user:*")
	require.NoError(t, err)

	var events []orderedEvent
	c.Observe(ObserveCallbacks{
		AddedAt: func(e Entry, index int, before *string) {
			events = append(events, orderedEvent{"added", e.Key, index, before})
		},
	})

	// Non-matching keys are not part of the seeded sequence
	s.Set("user:1", "b")
	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].index)
	require.NotNil(t, events[0].before)
	assert.Equal(t, "user:2", *events[0].before)
}

func TestObserveOrderedAlongsidePlain(t *testing.T) {
	s := New()
	c, err := s.Find("*")
	require.NoError(t, err)

	var plain, at int
	c.Observe(ObserveCallbacks{
		Added:   func(Entry) { plain++ },
		AddedAt: func(Entry, int, *string) { at++ },
	})

	s.Set("k", "v")
	assert.Equal(t, 1, plain)
	assert.Equal(t, 1, at)
}

func TestObserveChanges(t *testing.T) {
	s := New()
	c, err := s.Find("*")
	require.NoError(t, err)

	var log []string
	c.ObserveChanges(ChangeCallbacks{
		Added:   func(key string, v Value) { log = append(log, "added:"+key) },
		Changed: func(key string, v Value) { log = append(log, "changed:"+key) },
		Removed: func(key string) { log = append(log, "removed:"+key) },
	})

	s.Set("k", "a")
	s.Set("k", "b")
	s.Remove("k")

	assert.Equal(t, []string{"added:k", "changed:k", "removed:k"}, log)
}

func TestObserveChangesPositional(t *testing.T) {
	s := New()
	c, err := s.Find("*")
	require.NoError(t, err)

	var befores []*string
	c.ObserveChanges(ChangeCallbacks{
		AddedBefore: func(key string, v Value, before *string) {
			befores = append(befores, before)
		},
	})

	s.Set("b", "1")
	s.Set("a", "2")

	require.Len(t, befores, 2)
	assert.Nil(t, befores[0])
	require.NotNil(t, befores[1])
	assert.Equal(t, "b", *befores[1])
}

func TestObserveChangesPositionalPreExistingKeys(t *testing.T) {
	s := New()
	s.Set("b", "1")

	c, err := s.Find("*")
	require.NoError(t, err)

	var befores []*string
	var removed []string
	c.ObserveChanges(ChangeCallbacks{
		AddedBefore: func(key string, v Value, before *string) {
			befores = append(befores, before)
		},
		Removed: func(key string) {
			removed = append(removed, key)
		},
	})

	// The pre-existing key anchors positions for new arrivals
	s.Set("a", "2")
	require.Len(t, befores, 1)
	require.NotNil(t, befores[0])
	assert.Equal(t, "b", *befores[0])

	s.Remove("b")
	assert.Equal(t, []string{"b"}, removed)
}

func TestObserveDuringPauseDeliversOnResume(t *testing.T) {
	s := New()
	events, _ := recordEvents(t, s, "*")

	s.PauseObservers()
	s.Set("k", "v")
	assert.Empty(t, *events, "nothing delivered while paused")

	s.ResumeObservers()
	require.Len(t, *events, 1)
	assert.Equal(t, "added", (*events)[0].kind)
}
