package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state for a goroutine.
// Each goroutine has its own tracking context so independent consumers can
// track dependencies without interfering with each other.
type trackingContext struct {
	// currentListener is what's currently tracking dependencies.
	// When a Dep is read via Depend, it subscribes this listener.
	// nil means no tracking (reads don't create subscriptions).
	currentListener Listener
}

// trackingContexts stores per-goroutine tracking contexts.
// Using sync.Map for concurrent access from multiple goroutines.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine.
// This uses the runtime stack to extract the goroutine ID.
// Note: This is an implementation detail and should not be relied upon externally.
func getGoroutineID() uint64 {
	// Use a buffer to read the stack
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack starts with "goroutine <id> "
	// Parse the ID from the stack trace
	var id uint64
	for i := 10; i < n; i++ { // Skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine.
// If no context exists, creates a new one.
func getTrackingContext() *trackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}

	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// CurrentListener returns the listener currently tracking dependencies.
// Returns nil if no tracking is active on this goroutine.
func CurrentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener sets the current listener for dependency tracking.
// Returns the previous listener so it can be restored.
func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

// WithListener runs a function with the specified listener for tracking.
// Every Dep read via Depend inside fn subscribes the listener.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}

// Untracked runs a function without tracking Dep reads as dependencies.
// This is useful when a value needs to be read without creating a
// subscription for the currently active listener.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}
