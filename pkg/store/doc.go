// Package store implements an in-memory, reactive key-value engine.
//
// Values are typed (string, list, hash) and manipulated through a command set
// modeled on a well-known wire protocol: get/set/append, integer and float
// increments, range reads, list pushes and pops, bulk hash writes. Commands
// validate the value's type before acting and surface explicit errors; see
// errors.go for the full set.
//
// # Reactivity
//
// Reads performed inside a tracked context (see package reactive) subscribe
// the current listener to the key or pattern they touched. Writes invalidate
// exactly the affected dependencies: one invalidation per net observable
// change to a key, and pattern-level dependencies only when the key set
// changes (membership), not when an existing value changes.
//
// # Observers
//
// Cursors bind a store to a glob pattern and expose Fetch, Count, Observe and
// ObserveChanges. Observers receive added/changed/removed events for matching
// keys, plus a synthetic updated event alongside every added/changed. Ordered
// callback variants additionally report stable lexicographic positions.
//
// # Pause and resume
//
// PauseObservers installs a copy-on-write overlay: writes keep landing (and
// keep feeding the originals journal) but no dependency invalidation or
// observer dispatch happens. ResumeObservers flattens the overlay back into
// the base map and emits exactly one net event per changed key, no matter how
// many intermediate writes occurred.
//
// # Concurrency
//
// A Store is single-threaded by design: commands run to completion without
// interleaving, and observer callbacks fire synchronously inside the mutating
// call. Drive a Store from one goroutine. The async command adapter delivers
// its callback on a fresh goroutine only after all synchronous work is done.
package store
