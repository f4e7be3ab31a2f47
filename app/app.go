// Package app ties application state, the event pipeline and a render callback into one run loop.
//
// Run drains pending events, reacts to quit, renders the latest state snapshot, then yields.
// Background work registered with Spawn is joined, or abandoned after a timeout, at shutdown.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/termcore/core"
	"github.com/lixenwraith/termcore/event"
	"github.com/lixenwraith/termcore/state"
	"github.com/lixenwraith/termcore/status"
	"github.com/lixenwraith/termcore/terminal"
)

// frameSmoothing weights the newest sample of the frame time average
const frameSmoothing = 0.1

// Backend is the terminal the App reads input from and renders to
type Backend interface {
	event.Source
	Render(draw terminal.DrawFunc) error
	Close()
}

// RenderFunc paints one frame from a consistent state snapshot
type RenderFunc[T state.Snapshot] func(f *terminal.Frame, snap T) error

// App is the orchestrator for one terminal session
//
// Thread-Safety:
//   - Run: single call, owns the calling goroutine
//   - Spawn, TrySend, TryRecv, Shutdown: any goroutine
type App[T state.Snapshot] struct {
	st      state.AtomicState[T]
	backend Backend
	opts    options
	log     *slog.Logger

	ch   *event.Channel
	loop *event.Loop

	// Task context, cancelled when shutdown begins
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	tasks    map[TaskID]*task
	closing  bool
	finished ShutdownReport // Tasks reaped before shutdown

	started      atomic.Bool
	closeOnce    sync.Once
	shutdownOnce sync.Once
	report       ShutdownReport

	frames    *atomic.Int64
	events    *atomic.Int64
	spawned   *atomic.Int64
	completed *atomic.Int64
	failed    *atomic.Int64
	abandoned *atomic.Int64
	frameMs   *status.AtomicFloat
	lastError *status.AtomicString
	running   *atomic.Bool
}

// New creates an App on the controlling terminal
// Fails with an error wrapping core.ErrNoTerminal when no interactive terminal is attached
func New[T state.Snapshot](st state.AtomicState[T], tickRate time.Duration, opts ...Option) (*App[T], error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	term, err := terminal.New(terminal.Options{Mouse: o.mouse, Logger: o.logger})
	if err != nil {
		return nil, err
	}
	return newApp(st, term, tickRate, o), nil
}

// NewWithBackend creates an App over an existing backend, e.g. a simulation terminal
// The App takes ownership and closes backend when Run returns
func NewWithBackend[T state.Snapshot](st state.AtomicState[T], backend Backend, tickRate time.Duration, opts ...Option) (*App[T], error) {
	if backend == nil {
		return nil, fmt.Errorf("app: nil backend")
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return newApp(st, backend, tickRate, o), nil
}

func newApp[T state.Snapshot](st state.AtomicState[T], backend Backend, tickRate time.Duration, o options) *App[T] {
	if st == nil {
		core.Violation("app.New", "state is required")
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch := event.NewChannel(o.capacity)
	m := o.metrics

	return &App[T]{
		st:      st,
		backend: backend,
		opts:    o,
		log:     o.logger,
		ch:      ch,
		loop: event.NewLoop(backend, ch, event.LoopConfig{
			TickRate: tickRate,
			Overflow: o.overflow,
			OnDrop:   o.onDrop,
			Logger:   o.logger,
			Metrics:  m,
		}),
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(map[TaskID]*task),

		frames:    m.Ints.Get(status.AppFrames),
		events:    m.Ints.Get(status.AppEvents),
		spawned:   m.Ints.Get(status.AppTasksSpawned),
		completed: m.Ints.Get(status.AppTasksCompleted),
		failed:    m.Ints.Get(status.AppTasksFailed),
		abandoned: m.Ints.Get(status.AppTasksAbandoned),
		frameMs:   m.Floats.Get(status.AppFrameMs),
		lastError: m.Strings.Get(status.AppLastError),
		running:   m.Bools.Get(status.AppRunning),
	}
}

// Run drives the session until quit, ctx cancellation or a fatal error
// Shutdown and terminal restoration happen before Run returns, on every path
// Render failures and event loop failures are returned; quit and cancellation return nil
func (a *App[T]) Run(ctx context.Context, render RenderFunc[T]) (err error) {
	if !a.started.CompareAndSwap(false, true) {
		return core.ErrAlreadyRunning
	}
	defer a.closeBackend()
	defer a.Shutdown()
	defer func() {
		a.st.Quit()
		a.running.Store(false)
		if err != nil {
			a.lastError.Store(err.Error())
			a.log.Error("run loop failed", "error", err)
		}
	}()

	loopDone := make(chan error, 1)
	if _, err := a.Spawn(func(ctx context.Context) error {
		err := a.loop.Run(ctx)
		loopDone <- err
		return err
	}); err != nil {
		return err
	}

	a.running.Store(true)
	a.log.Info("run loop started", "tick", a.loop.TickRate(), "drain", a.opts.drain.String(), "overflow", a.opts.overflow.String())

	var pace <-chan time.Time
	if a.opts.frameInterval > 0 {
		ticker := time.NewTicker(a.opts.frameInterval)
		defer ticker.Stop()
		pace = ticker.C
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		select {
		case err := <-loopDone:
			if err != nil {
				return fmt.Errorf("event loop: %w", err)
			}
			loopDone = nil
		default:
		}

		if a.drain() {
			return nil
		}

		snap := a.st.Snapshot()
		if snap.ShouldQuit() {
			return nil
		}
		if err := a.renderFrame(render, snap); err != nil {
			return err
		}

		if pace == nil {
			runtime.Gosched()
			continue
		}
		select {
		case <-ctx.Done():
		case <-pace:
		}
	}
}

// drain handles pending events per the drain policy
// Returns true when a quit was requested
func (a *App[T]) drain() bool {
	limit := 1
	if a.opts.drain == DrainAll {
		limit = a.ch.Cap()
	}

	for range limit {
		ev, ok, err := a.ch.TryRecv()
		if err != nil {
			// Closed from outside; nothing further can arrive
			a.log.Debug("event channel closed, quitting", "error", err)
			return true
		}
		if !ok {
			return false
		}
		a.events.Add(1)

		if a.isQuit(ev) {
			a.log.Debug("quit requested", "event", ev.String())
			return true
		}
		if a.opts.handler != nil {
			a.opts.handler(ev)
		}
	}
	return false
}

func (a *App[T]) isQuit(ev event.Event) bool {
	switch ev.Kind {
	case event.KindQuit:
		return true
	case event.KindKey:
		return a.opts.quitKey.Key != event.KeyNone && ev.Key.Matches(a.opts.quitKey)
	}
	return false
}

// renderFrame runs one render pass; panics in render become errors
func (a *App[T]) renderFrame(render RenderFunc[T], snap T) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panic: %v", r)
		}
	}()

	if err := a.backend.Render(func(f *terminal.Frame) error {
		return render(f, snap)
	}); err != nil {
		return err
	}

	a.frames.Add(1)
	a.frameMs.Smooth(float64(time.Since(start).Microseconds())/1000, frameSmoothing)
	return nil
}

func (a *App[T]) closeBackend() {
	a.closeOnce.Do(a.backend.Close)
}

// TrySend injects an event without blocking
func (a *App[T]) TrySend(ev event.Event) error {
	return a.ch.TrySend(ev)
}

// TryRecv takes one pending event without blocking, bypassing Run
func (a *App[T]) TryRecv() (event.Event, bool, error) {
	return a.ch.TryRecv()
}

// Quit asks Run to finish after the current frame
func (a *App[T]) Quit() {
	a.st.Quit()
}

// State returns the application state
func (a *App[T]) State() state.AtomicState[T] {
	return a.st
}

// Channel returns the event channel
func (a *App[T]) Channel() *event.Channel {
	return a.ch
}

// TickRate returns the input poll timeout
func (a *App[T]) TickRate() time.Duration {
	return a.loop.TickRate()
}

// LoopState returns the event loop phase
func (a *App[T]) LoopState() event.LoopState {
	return a.loop.State()
}
