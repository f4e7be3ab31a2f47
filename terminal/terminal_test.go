package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termcore/core"
	"github.com/lixenwraith/termcore/event"
)

func newSim(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	term, sim, err := NewSimulation(w, h, Options{Mouse: true})
	require.NoError(t, err)
	t.Cleanup(term.Close)
	return term, sim
}

// readUntil polls until an input matching want arrives, skipping others
func readUntil(t *testing.T, term *Terminal, want func(event.Input) bool) event.Input {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ready, err := term.Poll(10 * time.Millisecond)
		require.NoError(t, err)
		if !ready {
			continue
		}
		in, err := term.Read()
		require.NoError(t, err)
		if want(in) {
			return in
		}
	}
	t.Fatal("expected input did not arrive")
	return event.Input{}
}

func TestProbe(t *testing.T) {
	tty := func(int) bool { return true }
	notTTY := func(fd int) bool { return fd != 1 }
	env := func(term string) func(string) string {
		return func(string) string { return term }
	}

	assert.True(t, probe(env("xterm-256color"), tty, 0, 1))
	assert.False(t, probe(env(""), tty, 0, 1))
	assert.False(t, probe(env("dumb"), tty, 0, 1))
	assert.False(t, probe(env("xterm"), notTTY, 0, 1))
}

func isKind(kind event.InputKind) func(event.Input) bool {
	return func(in event.Input) bool { return in.Kind == kind }
}

func TestSimulationKeyInput(t *testing.T) {
	term, sim := newSim(t, 20, 5)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	in := readUntil(t, term, isKind(event.InputKey))
	assert.Equal(t, event.Rune('q'), in.Key)

	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	in = readUntil(t, term, isKind(event.InputKey))
	assert.Equal(t, event.KeyInput{Key: event.KeyEscape}, in.Key)
}

func TestSimulationResizeInput(t *testing.T) {
	term, sim := newSim(t, 20, 5)

	sim.SetSize(30, 8)
	require.NoError(t, sim.PostEvent(tcell.NewEventResize(30, 8)))
	in := readUntil(t, term, func(in event.Input) bool {
		return in.Kind == event.InputResize && in.Width == 30
	})
	assert.Equal(t, uint16(30), in.Width)
	assert.Equal(t, uint16(8), in.Height)
}

func TestPollTimeout(t *testing.T) {
	term, _ := newSim(t, 10, 2)

	// Drain anything emitted at init
	for {
		ready, err := term.Poll(5 * time.Millisecond)
		require.NoError(t, err)
		if !ready {
			break
		}
		_, err = term.Read()
		require.NoError(t, err)
	}

	start := time.Now()
	ready, err := term.Poll(20 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ready)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestRenderDrawsFrame(t *testing.T) {
	term, sim := newSim(t, 10, 3)

	err := term.Render(func(f *Frame) error {
		assert.Equal(t, Rect{W: 10, H: 3}, f.Area())
		f.Fill(Rect{X: 0, Y: 2, W: 10, H: 1}, '-', StyleDefault)
		n := f.DrawText(1, 0, "hi世", StyleDefault.With(AttrBold))
		assert.Equal(t, 4, n)
		f.SetCell(9, 1, '#', StyleDefault.Foreground(RGB{255, 0, 0}))
		f.SetCell(10, 1, 'X', StyleDefault) // Outside, ignored
		return nil
	})
	require.NoError(t, err)

	cell := func(x, y int) rune {
		r, _, _, _ := sim.GetContent(x, y)
		return r
	}
	assert.Equal(t, 'h', cell(1, 0))
	assert.Equal(t, 'i', cell(2, 0))
	assert.Equal(t, '世', cell(3, 0))
	assert.Equal(t, '#', cell(9, 1))
	for x := 0; x < 10; x++ {
		assert.Equal(t, '-', cell(x, 2))
	}
}

func TestRenderFailureSkipsShow(t *testing.T) {
	term, _ := newSim(t, 4, 1)
	boom := errors.New("boom")

	err := term.Render(func(*Frame) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, core.IsTerminalFailure(err))
}

func TestCloseIdempotent(t *testing.T) {
	term, _, err := NewSimulation(4, 1, Options{})
	require.NoError(t, err)

	term.Close()
	term.Close()
	assert.True(t, term.Closed())

	err = term.Render(func(*Frame) error { return nil })
	require.ErrorIs(t, err, core.ErrTerminalClosed)
	assert.True(t, core.IsTerminalFailure(err))

	_, err = term.Poll(time.Millisecond)
	require.ErrorIs(t, err, core.ErrTerminalClosed)
}

func TestDrawTextClipsWideRune(t *testing.T) {
	term, _ := newSim(t, 3, 1)
	var used int
	require.NoError(t, term.Render(func(f *Frame) error {
		used = f.DrawText(0, 0, "a世b", StyleDefault)
		return nil
	}))
	// 'a' plus the two-column rune fill the row; 'b' does not fit
	assert.Equal(t, 3, used)

	require.NoError(t, term.Render(func(f *Frame) error {
		used = f.DrawText(1, 0, "世世", StyleDefault)
		return nil
	}))
	assert.Equal(t, 2, used)
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.Equal(t, Rect{X: 5, Y: 5, W: 5, H: 5}, a.Intersect(Rect{X: 5, Y: 5, W: 10, H: 10}))
	assert.True(t, a.Intersect(Rect{X: 20, Y: 0, W: 1, H: 1}).Empty())
	assert.True(t, a.Contains(9, 9))
	assert.False(t, a.Contains(10, 0))
}

func TestRGBBlend(t *testing.T) {
	black, white := RGB{0, 0, 0}, RGB{255, 255, 255}
	assert.Equal(t, black, black.Blend(white, 0))
	assert.Equal(t, white, black.Blend(white, 1))
	assert.Equal(t, white, black.Blend(white, 7)) // Clamped

	c, ok := Hex("#ff8000")
	require.True(t, ok)
	assert.Equal(t, RGB{255, 128, 0}, c)
	_, ok = Hex("nope")
	assert.False(t, ok)
}

func TestEmergencyResetSequences(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)

	out := buf.String()
	assert.Contains(t, out, "\x1b[?1049l", "leave alternate screen")
	assert.Contains(t, out, "\x1b[?25h", "show cursor")
	assert.Contains(t, out, "\x1b[?1000l", "mouse off")
	assert.True(t, strings.HasSuffix(out, "\x1bc"), "full reset comes last")
}
