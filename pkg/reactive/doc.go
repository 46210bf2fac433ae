// Package reactive provides the dependency-tracking primitives used by the
// store's change-notification layer.
//
// A Dep is an invalidation handle. Reading through a Dep during a tracked
// context subscribes the current listener; writers call Changed to invalidate
// every subscriber. The package only signals invalidation; deciding when to
// re-run invalidated computations is the job of whatever scheduler hosts the
// listeners.
//
// # Core Types
//
// Dep is an invalidation handle:
//
//	dep := reactive.NewDep()
//	dep.Depend()   // subscribes the current listener, if any
//	dep.Changed()  // invalidates all subscribers
//
// Watcher is a minimal tracked computation:
//
//	w := reactive.Watch(func() {
//	    dep.Depend()
//	})
//	// dep.Changed() now marks w invalidated
//
// # Tracking
//
// The tracking context is per-goroutine. Reads performed outside of
// WithListener (or outside a Watcher body) do not create subscriptions.
package reactive
