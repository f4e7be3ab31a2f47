package state

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/lixenwraith/termcore/core"
)

// FlagCount is the register width; valid flag indices are 0..FlagCount-1
const FlagCount = 64

// Flag indexes one bit of a FlagState register
type Flag uint8

const (
	FlagRunning Flag = iota
	FlagProcessing
	FlagDebug
	FlagError
	FlagAwaitingInput
	FlagRendering

	// FlagQuit is reserved for Quit; once set it is never cleared
	FlagQuit Flag = FlagCount - 1
)

var flagNames = map[Flag]string{
	FlagRunning:       "running",
	FlagProcessing:    "processing",
	FlagDebug:         "debug",
	FlagError:         "error",
	FlagAwaitingInput: "awaiting_input",
	FlagRendering:     "rendering",
	FlagQuit:          "quit",
}

// String returns the flag name, or flag(N) for unnamed indices
func (f Flag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	return fmt.Sprintf("flag(%d)", uint8(f))
}

// bit returns the register mask for f, panicking on an out-of-range index
func (f Flag) bit(op string) uint64 {
	if f >= FlagCount {
		core.Violation(op, "flag index %d out of range [0,%d)", uint8(f), FlagCount)
	}
	return 1 << f
}

// Mask builds a register pattern with the given flags set
func Mask(flags ...Flag) uint64 {
	var m uint64
	for _, f := range flags {
		m |= f.bit("state.Mask")
	}
	return m
}

// FlagUpdate is one (flag, value) pair of a batch update
type FlagUpdate struct {
	Flag  Flag
	Value bool
}

// FlagState is a 64-bit atomic bitfield of named boolean facts
//
// Thread-Safety:
//   - Every operation is a single atomic load or one CAS retry loop on the whole register
//   - sync/atomic operations are sequentially consistent, so all readers agree on one global order
//   - Readers never observe a partially applied UpdateMultiple batch
//
// Zero value is ready to use (all flags clear, running)
type FlagState struct {
	bits atomic.Uint64
}

// NewFlagState creates a register holding the initial bit pattern
func NewFlagState(initial uint64) *FlagState {
	s := &FlagState{}
	s.bits.Store(initial)
	return s
}

// update applies fn in a CAS loop and returns the register before and after
// FlagQuit survives any fn once set
func (s *FlagState) update(fn func(uint64) uint64) (old, next uint64) {
	const quit = uint64(1) << FlagQuit
	for {
		old = s.bits.Load()
		next = fn(old) | (old & quit)
		if old == next || s.bits.CompareAndSwap(old, next) {
			return old, next
		}
	}
}

// Set assigns a single flag
func (s *FlagState) Set(flag Flag, value bool) {
	m := flag.bit("FlagState.Set")
	s.update(func(cur uint64) uint64 {
		if value {
			return cur | m
		}
		return cur &^ m
	})
}

// Get reads a single flag
func (s *FlagState) Get(flag Flag) bool {
	m := flag.bit("FlagState.Get")
	return s.bits.Load()&m != 0
}

// Toggle flips a flag and returns its new value
func (s *FlagState) Toggle(flag Flag) bool {
	m := flag.bit("FlagState.Toggle")
	_, next := s.update(func(cur uint64) uint64 {
		return cur ^ m
	})
	return next&m != 0
}

// UpdateMultiple applies all pairs in one CAS cycle
// Indices are validated before anything is written; later pairs win on duplicates
func (s *FlagState) UpdateMultiple(updates ...FlagUpdate) {
	var setMask, clearMask uint64
	for _, u := range updates {
		m := u.Flag.bit("FlagState.UpdateMultiple")
		if u.Value {
			setMask |= m
			clearMask &^= m
		} else {
			clearMask |= m
			setMask &^= m
		}
	}
	if setMask == 0 && clearMask == 0 {
		return
	}
	s.update(func(cur uint64) uint64 {
		return (cur &^ clearMask) | setMask
	})
}

// Bits returns the raw register value
func (s *FlagState) Bits() uint64 {
	return s.bits.Load()
}

// Snapshot captures the register with a single atomic load
func (s *FlagState) Snapshot() FlagsSnapshot {
	return FlagsSnapshot{bits: s.bits.Load()}
}

// Quit sets FlagQuit and clears FlagRunning in one step
func (s *FlagState) Quit() {
	s.update(func(cur uint64) uint64 {
		return (cur | 1<<FlagQuit) &^ (1 << FlagRunning)
	})
}

// IsRunning reports whether Quit has not been observed
func (s *FlagState) IsRunning() bool {
	return s.bits.Load()&(1<<FlagQuit) == 0
}

// FlagsSnapshot is an immutable copy of a FlagState register
type FlagsSnapshot struct {
	bits uint64
}

// Get reads a flag as it was at capture time
func (s FlagsSnapshot) Get(flag Flag) bool {
	return s.bits&flag.bit("FlagsSnapshot.Get") != 0
}

// Bits returns the captured register value
func (s FlagsSnapshot) Bits() uint64 {
	return s.bits
}

// ShouldQuit implements Snapshot
func (s FlagsSnapshot) ShouldQuit() bool {
	return s.bits&(1<<FlagQuit) != 0
}

// String lists set flags by name, e.g. "{running,debug}"
func (s FlagsSnapshot) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for f := Flag(0); f < FlagCount; f++ {
		if s.bits&(1<<f) == 0 {
			continue
		}
		if !first {
			sb.WriteByte(',')
		}
		sb.WriteString(f.String())
		first = false
	}
	sb.WriteByte('}')
	return sb.String()
}
