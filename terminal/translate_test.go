package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/termcore/event"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want event.KeyInput
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), event.Rune('x')},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), event.KeyInput{Key: event.KeyRune, Rune: 'x', Mod: event.ModAlt}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), event.KeyInput{Key: event.KeyEscape}},
		{"ctrl c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), event.KeyInput{Key: event.KeyCtrlC}},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModCtrl), event.KeyInput{Key: event.KeyCtrlC}},
		{"shift up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), event.KeyInput{Key: event.KeyUp, Mod: event.ModShift}},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), event.KeyInput{Key: event.KeyBacktab}},
		{"del", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), event.KeyInput{Key: event.KeyBackspace}},
		{"f12", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), event.KeyInput{Key: event.KeyF12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateKey(tt.ev)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := translateKey(tcell.NewEventKey(tcell.KeyF40, 0, tcell.ModNone))
	assert.False(t, ok)
}

func TestMouseTracker(t *testing.T) {
	var mt mouseTracker
	step := func(x int, btn tcell.ButtonMask) event.MouseInput {
		return mt.translate(tcell.NewEventMouse(x, 1, btn, tcell.ModNone))
	}

	in := step(0, tcell.ButtonNone)
	assert.Equal(t, event.MouseActionMove, in.Action)
	assert.Equal(t, event.MouseBtnNone, in.Button)

	in = step(1, tcell.Button1)
	assert.Equal(t, event.MouseInput{X: 1, Y: 1, Button: event.MouseBtnLeft, Action: event.MouseActionPress}, in)

	in = step(2, tcell.Button1)
	assert.Equal(t, event.MouseActionDrag, in.Action)
	assert.Equal(t, event.MouseBtnLeft, in.Button)

	in = step(3, tcell.ButtonNone)
	assert.Equal(t, event.MouseActionRelease, in.Action)
	assert.Equal(t, event.MouseBtnLeft, in.Button)

	in = step(3, tcell.Button2)
	assert.Equal(t, event.MouseBtnRight, in.Button)
	assert.Equal(t, event.MouseActionPress, in.Action)
	step(3, tcell.ButtonNone)

	in = step(3, tcell.WheelDown)
	assert.Equal(t, event.MouseBtnWheelDown, in.Button)
}

func TestClampDim(t *testing.T) {
	assert.Equal(t, uint16(0), clampDim(-4))
	assert.Equal(t, uint16(80), clampDim(80))
	assert.Equal(t, uint16(65535), clampDim(1<<20))
}
