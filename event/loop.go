package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/termcore/core"
	"github.com/lixenwraith/termcore/status"
)

// DefaultTickRate bounds a single poll when none is configured
const DefaultTickRate = 50 * time.Millisecond

// LoopState is the observable phase of a Loop
type LoopState uint32

const (
	LoopIdle LoopState = iota
	LoopPolling
	LoopTranslating
	LoopStopped
)

func (s LoopState) String() string {
	switch s {
	case LoopIdle:
		return "Idle"
	case LoopPolling:
		return "Polling"
	case LoopTranslating:
		return "Translating"
	case LoopStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("LoopState(%d)", uint32(s))
	}
}

// OverflowPolicy decides what the loop does when the channel is full
type OverflowPolicy uint8

const (
	// DropNewest discards the event that did not fit and reports it
	DropNewest OverflowPolicy = iota
	// DropOldest evicts the oldest pending event, reports it, and retries once
	DropOldest
	// FailOnFull ends the loop with core.ErrChannelFull
	FailOnFull
)

func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "drop_newest"
	case DropOldest:
		return "drop_oldest"
	case FailOnFull:
		return "fail"
	default:
		return fmt.Sprintf("overflow(%d)", uint8(p))
	}
}

// ParseOverflowPolicy resolves a policy name as produced by String
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "", "drop_newest", "drop":
		return DropNewest, nil
	case "drop_oldest":
		return DropOldest, nil
	case "fail":
		return FailOnFull, nil
	default:
		return DropNewest, fmt.Errorf("unknown overflow policy %q", s)
	}
}

// LoopConfig tunes a Loop; zero values select defaults
type LoopConfig struct {
	TickRate time.Duration
	Overflow OverflowPolicy
	OnDrop   func(Event)      // Called from the loop goroutine for each discarded event
	Logger   *slog.Logger     // Defaults to slog.Default()
	Metrics  *status.Registry // Optional
}

// Loop polls a Source and forwards translated events into a Channel
//
// Lifecycle: Idle -> Polling -> {Translating -> Idle | Idle} until Stop or ctx ends,
// then Stopped permanently
type Loop struct {
	src Source
	ch  *Channel
	cfg LoopConfig
	log *slog.Logger

	state   atomic.Uint32
	running atomic.Bool
	stop    atomic.Bool

	polled  *atomic.Int64
	sent    *atomic.Int64
	dropped *atomic.Int64
}

// NewLoop binds src to ch
func NewLoop(src Source, ch *Channel, cfg LoopConfig) *Loop {
	if src == nil || ch == nil {
		core.Violation("event.NewLoop", "source and channel are required")
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	l := &Loop{
		src: src,
		ch:  ch,
		cfg: cfg,
		log: cfg.Logger,
	}
	if l.log == nil {
		l.log = slog.Default()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	l.polled = metrics.Ints.Get(status.EventPolled)
	l.sent = metrics.Ints.Get(status.EventSent)
	l.dropped = metrics.Ints.Get(status.EventDropped)
	return l
}

// State returns the current phase
func (l *Loop) State() LoopState {
	return LoopState(l.state.Load())
}

// TickRate returns the effective poll timeout
func (l *Loop) TickRate() time.Duration {
	return l.cfg.TickRate
}

// Dropped returns the number of events discarded by the overflow policy
func (l *Loop) Dropped() int64 {
	return l.dropped.Load()
}

// Stop requests termination; observed at the top of the next iteration
// Idempotent and safe from any goroutine
func (l *Loop) Stop() {
	l.stop.Store(true)
}

// Run polls until Stop, ctx cancellation, a closed channel or a backend failure
// Poll and read failures are returned as *core.TerminalError
// A stopped loop cannot be run again
func (l *Loop) Run(ctx context.Context) error {
	if l.State() == LoopStopped {
		return core.ErrLoopStopped
	}
	if !l.running.CompareAndSwap(false, true) {
		return core.ErrLoopRunning
	}
	defer func() {
		l.state.Store(uint32(LoopStopped))
		l.running.Store(false)
	}()

	for {
		if l.stop.Load() || ctx.Err() != nil {
			return nil
		}

		l.state.Store(uint32(LoopPolling))
		ready, err := l.src.Poll(l.cfg.TickRate)
		if err != nil {
			return core.Terminal("poll", err)
		}

		if ready {
			in, err := l.src.Read()
			if err != nil {
				return core.Terminal("read", err)
			}
			l.polled.Add(1)

			l.state.Store(uint32(LoopTranslating))
			if ev, ok := Translate(in); ok {
				if err := l.forward(ev); err != nil {
					if errors.Is(err, core.ErrChannelClosed) {
						l.log.Debug("event loop channel closed")
						return nil
					}
					return err
				}
			}
		}

		l.state.Store(uint32(LoopIdle))
		runtime.Gosched()
	}
}

// forward sends ev, applying the overflow policy when the channel is full
func (l *Loop) forward(ev Event) error {
	err := l.ch.TrySend(ev)
	if err == nil {
		l.sent.Add(1)
		return nil
	}
	if !errors.Is(err, core.ErrChannelFull) {
		return err
	}

	switch l.cfg.Overflow {
	case FailOnFull:
		return fmt.Errorf("event loop: %w", err)
	case DropOldest:
		if old, ok, _ := l.ch.TryRecv(); ok {
			l.drop(old)
		}
		if err := l.ch.TrySend(ev); err != nil {
			if errors.Is(err, core.ErrChannelClosed) {
				return err
			}
			l.drop(ev)
			return nil
		}
		l.sent.Add(1)
	default:
		l.drop(ev)
	}
	return nil
}

func (l *Loop) drop(ev Event) {
	n := l.dropped.Add(1)
	l.log.Warn("event dropped", "event", ev.String(), "policy", l.cfg.Overflow.String(), "total", n)
	if l.cfg.OnDrop != nil {
		l.cfg.OnDrop(ev)
	}
}
