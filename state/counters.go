package state

import (
	"sync/atomic"

	"github.com/lixenwraith/termcore/core"
)

// counterRecord is never mutated after publication
type counterRecord struct {
	values  []uint64
	version uint64
	quit    bool
}

// CounterState holds N counters published copy-on-write behind one atomic pointer
//
// Every mutation builds a new record and installs it with CAS, so a snapshot is a
// single pointer load and always reflects one committed version. Suited to UI state
// that changes at human rates; each write costs O(N).
type CounterState struct {
	rec atomic.Pointer[counterRecord]
}

// NewCounterState creates n zeroed counters in the running condition
func NewCounterState(n int) *CounterState {
	if n < 0 {
		core.Violation("state.NewCounterState", "negative counter count %d", n)
	}
	s := &CounterState{}
	s.rec.Store(&counterRecord{values: make([]uint64, n)})
	return s
}

func (s *CounterState) mutate(fn func(values []uint64)) {
	for {
		cur := s.rec.Load()
		next := &counterRecord{
			values:  make([]uint64, len(cur.values)),
			version: cur.version + 1,
			quit:    cur.quit,
		}
		copy(next.values, cur.values)
		fn(next.values)
		if s.rec.CompareAndSwap(cur, next) {
			return
		}
	}
}

func (s *CounterState) check(op string, i int) {
	if n := len(s.rec.Load().values); i < 0 || i >= n {
		core.Violation(op, "counter index %d out of range [0,%d)", i, n)
	}
}

// Add adds delta to counter i
func (s *CounterState) Add(i int, delta uint64) {
	s.check("CounterState.Add", i)
	s.mutate(func(values []uint64) {
		values[i] += delta
	})
}

// Increment adds one to counter i
func (s *CounterState) Increment(i int) {
	s.Add(i, 1)
}

// IncrementAll adds one to every counter as a single update
func (s *CounterState) IncrementAll() {
	s.mutate(func(values []uint64) {
		for i := range values {
			values[i]++
		}
	})
}

// Get reads counter i from the latest record
func (s *CounterState) Get(i int) uint64 {
	s.check("CounterState.Get", i)
	return s.rec.Load().values[i]
}

// Len returns the number of counters
func (s *CounterState) Len() int {
	return len(s.rec.Load().values)
}

// Snapshot implements AtomicState
func (s *CounterState) Snapshot() CounterSnapshot {
	return CounterSnapshot{rec: s.rec.Load()}
}

// Quit implements AtomicState
func (s *CounterState) Quit() {
	for {
		cur := s.rec.Load()
		if cur.quit {
			return
		}
		next := &counterRecord{values: cur.values, version: cur.version + 1, quit: true}
		if s.rec.CompareAndSwap(cur, next) {
			return
		}
	}
}

// IsRunning implements AtomicState
func (s *CounterState) IsRunning() bool {
	return !s.rec.Load().quit
}

// CounterSnapshot is a view of one committed CounterState version
// Shares the immutable record; accessors never expose it for writing
type CounterSnapshot struct {
	rec *counterRecord
}

// Value returns counter i at capture time
func (s CounterSnapshot) Value(i int) uint64 {
	if i < 0 || i >= len(s.rec.values) {
		core.Violation("CounterSnapshot.Value", "counter index %d out of range [0,%d)", i, len(s.rec.values))
	}
	return s.rec.values[i]
}

// Values returns a copy of all counters
func (s CounterSnapshot) Values() []uint64 {
	out := make([]uint64, len(s.rec.values))
	copy(out, s.rec.values)
	return out
}

// Len returns the number of counters
func (s CounterSnapshot) Len() int {
	return len(s.rec.values)
}

// Version counts committed updates before capture
func (s CounterSnapshot) Version() uint64 {
	return s.rec.version
}

// ShouldQuit implements Snapshot
func (s CounterSnapshot) ShouldQuit() bool {
	return s.rec.quit
}
