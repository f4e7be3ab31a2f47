package terminal

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termcore/core"
	"github.com/lixenwraith/termcore/event"
)

const (
	// pumpBuffer bounds backend events read ahead of the event loop
	pumpBuffer = 256

	// closeWait bounds the wait for the pump after the screen is finalized
	closeWait = time.Second
)

// Options configures a Terminal
type Options struct {
	Mouse  bool         // Enable mouse reporting
	Logger *slog.Logger // Defaults to slog.Default()
}

// Terminal owns a tcell screen in raw mode and the goroutine pumping its input
//
// Thread-Safety:
//   - Poll/Read: single reader goroutine (the event loop)
//   - Render: single render goroutine
//   - Close: any goroutine, restores exactly once
type Terminal struct {
	screen tcell.Screen
	log    *slog.Logger

	events chan tcell.Event
	quit   chan struct{}
	done   chan struct{}

	// Reader-owned
	pending tcell.Event
	mouse   mouseTracker

	closed    atomic.Bool
	closeOnce sync.Once
}

// New switches the controlling terminal to raw mode and the alternate screen
// Fails with core.ErrNoTerminal when stdin/stdout are not an interactive terminal
func New(opts Options) (*Terminal, error) {
	if !IsInteractive() {
		return nil, core.Terminal("init", core.ErrNoTerminal)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, core.Terminal("init", err)
	}
	if err := screen.Init(); err != nil {
		return nil, core.Terminal("init", err)
	}
	return start(screen, opts), nil
}

// NewSimulation creates a Terminal over an in-memory screen of w x h cells
// The returned SimulationScreen injects input and exposes drawn contents
func NewSimulation(w, h int, opts Options) (*Terminal, tcell.SimulationScreen, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		return nil, nil, core.Terminal("init", err)
	}
	sim.SetSize(w, h)
	return start(sim, opts), sim, nil
}

func start(screen tcell.Screen, opts Options) *Terminal {
	if opts.Mouse {
		screen.EnableMouse()
	}
	screen.HideCursor()

	t := &Terminal{
		screen: screen,
		log:    opts.Logger,
		events: make(chan tcell.Event, pumpBuffer),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	if t.log == nil {
		t.log = slog.Default()
	}
	go t.pump()
	return t
}

// pump forwards backend events until the screen is finalized
func (t *Terminal) pump() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// Poll implements event.Source
func (t *Terminal) Poll(timeout time.Duration) (bool, error) {
	if t.closed.Load() {
		return false, core.ErrTerminalClosed
	}
	if t.pending != nil {
		return true, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-t.events:
		t.pending = ev
		return true, nil
	case <-t.quit:
		return false, core.ErrTerminalClosed
	case <-timer.C:
		return false, nil
	}
}

// Read implements event.Source; blocks only if Poll did not report ready
func (t *Terminal) Read() (event.Input, error) {
	ev := t.pending
	t.pending = nil
	if ev == nil {
		select {
		case ev = <-t.events:
		case <-t.quit:
			return event.Input{}, core.ErrTerminalClosed
		}
	}
	return t.translate(ev), nil
}

// Size returns the current dimensions in cells
func (t *Terminal) Size() (width, height int) {
	return t.screen.Size()
}

// Render clears the screen, runs draw over the full area, then presents the frame
// Nothing is presented when draw fails
func (t *Terminal) Render(draw DrawFunc) error {
	if t.closed.Load() {
		return core.Terminal("render", core.ErrTerminalClosed)
	}

	t.screen.Clear()
	w, h := t.screen.Size()
	f := Frame{screen: t.screen, area: Rect{W: w, H: h}}
	if err := draw(&f); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	t.screen.Show()
	return nil
}

// Close restores the terminal and stops the input pump
// Safe to call multiple times
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		close(t.quit)
		t.screen.Fini()
		select {
		case <-t.done:
			t.log.Debug("terminal restored")
		case <-time.After(closeWait):
			t.log.Warn("terminal input pump did not exit", "wait", closeWait)
		}
	})
}

// Closed reports whether Close has run
func (t *Terminal) Closed() bool {
	return t.closed.Load()
}
