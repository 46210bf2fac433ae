package reactive

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testListener counts invalidations.
type testListener struct {
	id uint64

	mu    sync.Mutex
	count int
}

func newTestListener() *testListener {
	return &testListener{id: nextID()}
}

func (l *testListener) ID() uint64 { return l.id }

func (l *testListener) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count++
}

func (l *testListener) invalidations() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

func TestDependSubscribesCurrentListener(t *testing.T) {
	dep := NewDep()
	l := newTestListener()

	WithListener(l, func() {
		assert.True(t, dep.Depend())
	})

	dep.Changed()
	assert.Equal(t, 1, l.invalidations())
}

func TestDependOutsideTrackingIsNoop(t *testing.T) {
	dep := NewDep()

	assert.False(t, dep.Depend())
	assert.False(t, dep.HasDependents())

	// Changed with no subscribers must not panic
	dep.Changed()
}

func TestDependDeduplicatesByListenerID(t *testing.T) {
	dep := NewDep()
	l := newTestListener()

	WithListener(l, func() {
		assert.True(t, dep.Depend())
		assert.False(t, dep.Depend())
	})

	dep.Changed()
	assert.Equal(t, 1, l.invalidations())
}

func TestChangedNotifiesAllSubscribers(t *testing.T) {
	dep := NewDep()
	listeners := []*testListener{newTestListener(), newTestListener(), newTestListener()}

	for _, l := range listeners {
		WithListener(l, func() {
			dep.Depend()
		})
	}

	dep.Changed()
	dep.Changed()

	for _, l := range listeners {
		assert.Equal(t, 2, l.invalidations())
	}
}

func TestUntrackedSuppressesSubscription(t *testing.T) {
	dep := NewDep()
	l := newTestListener()

	WithListener(l, func() {
		Untracked(func() {
			assert.False(t, dep.Depend())
		})
	})

	dep.Changed()
	assert.Equal(t, 0, l.invalidations())
}

func TestHasDependents(t *testing.T) {
	dep := NewDep()
	l := newTestListener()

	assert.False(t, dep.HasDependents())

	WithListener(l, func() {
		dep.Depend()
	})
	assert.True(t, dep.HasDependents())

	dep.unsubscribe(l)
	assert.False(t, dep.HasDependents())
}
