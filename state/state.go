// Package state provides lock-free application state with point-in-time snapshots.
//
// Any state type driving the runtime implements AtomicState: it hands out immutable
// snapshots, reports liveness and accepts an irreversible quit signal. FlagState is the
// minimal reference shape; CounterState shows a richer one.
package state

// Snapshot is an immutable point-in-time view of application state
// Implementations are value types or otherwise safe to share across goroutines
type Snapshot interface {
	// ShouldQuit reports whether quit had been signalled when the snapshot was taken
	ShouldQuit() bool
}

// AtomicState is the capability the orchestrator requires from application state
//
// Thread-Safety:
//   - Snapshot, Quit, IsRunning may be called from any goroutine without external locking
//   - Quit is idempotent and irreversible; IsRunning never returns true after a Quit it can observe
type AtomicState[T Snapshot] interface {
	// Snapshot returns a consistent view; never a mix of two updates
	Snapshot() T

	// Quit transitions to the terminated condition; never blocks, never fails
	Quit()

	// IsRunning is a cheap lock-free liveness probe
	IsRunning() bool
}
