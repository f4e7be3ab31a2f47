package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termcore/event"
)

// tcellKeys maps backend keys to runtime keys
// tcell aliases Ctrl+H/I/M/[ to Backspace/Tab/Enter/Escape, so those never appear here
var tcellKeys = map[tcell.Key]event.Key{
	tcell.KeyEscape:     event.KeyEscape,
	tcell.KeyEnter:      event.KeyEnter,
	tcell.KeyTab:        event.KeyTab,
	tcell.KeyBacktab:    event.KeyBacktab,
	tcell.KeyBackspace:  event.KeyBackspace,
	tcell.KeyBackspace2: event.KeyBackspace,
	tcell.KeyDelete:     event.KeyDelete,

	tcell.KeyUp:     event.KeyUp,
	tcell.KeyDown:   event.KeyDown,
	tcell.KeyLeft:   event.KeyLeft,
	tcell.KeyRight:  event.KeyRight,
	tcell.KeyHome:   event.KeyHome,
	tcell.KeyEnd:    event.KeyEnd,
	tcell.KeyPgUp:   event.KeyPageUp,
	tcell.KeyPgDn:   event.KeyPageDown,
	tcell.KeyInsert: event.KeyInsert,

	tcell.KeyF1:  event.KeyF1,
	tcell.KeyF2:  event.KeyF2,
	tcell.KeyF3:  event.KeyF3,
	tcell.KeyF4:  event.KeyF4,
	tcell.KeyF5:  event.KeyF5,
	tcell.KeyF6:  event.KeyF6,
	tcell.KeyF7:  event.KeyF7,
	tcell.KeyF8:  event.KeyF8,
	tcell.KeyF9:  event.KeyF9,
	tcell.KeyF10: event.KeyF10,
	tcell.KeyF11: event.KeyF11,
	tcell.KeyF12: event.KeyF12,

	tcell.KeyCtrlA: event.KeyCtrlA,
	tcell.KeyCtrlB: event.KeyCtrlB,
	tcell.KeyCtrlC: event.KeyCtrlC,
	tcell.KeyCtrlD: event.KeyCtrlD,
	tcell.KeyCtrlE: event.KeyCtrlE,
	tcell.KeyCtrlF: event.KeyCtrlF,
	tcell.KeyCtrlG: event.KeyCtrlG,
	tcell.KeyCtrlJ: event.KeyCtrlJ,
	tcell.KeyCtrlK: event.KeyCtrlK,
	tcell.KeyCtrlL: event.KeyCtrlL,
	tcell.KeyCtrlN: event.KeyCtrlN,
	tcell.KeyCtrlO: event.KeyCtrlO,
	tcell.KeyCtrlP: event.KeyCtrlP,
	tcell.KeyCtrlQ: event.KeyCtrlQ,
	tcell.KeyCtrlR: event.KeyCtrlR,
	tcell.KeyCtrlS: event.KeyCtrlS,
	tcell.KeyCtrlT: event.KeyCtrlT,
	tcell.KeyCtrlU: event.KeyCtrlU,
	tcell.KeyCtrlV: event.KeyCtrlV,
	tcell.KeyCtrlW: event.KeyCtrlW,
	tcell.KeyCtrlX: event.KeyCtrlX,
	tcell.KeyCtrlY: event.KeyCtrlY,
	tcell.KeyCtrlZ: event.KeyCtrlZ,

	tcell.KeyCtrlSpace:      event.KeyCtrlSpace,
	tcell.KeyCtrlBackslash:  event.KeyCtrlBackslash,
	tcell.KeyCtrlRightSq:    event.KeyCtrlBracketRight,
	tcell.KeyCtrlCarat:      event.KeyCtrlCaret,
	tcell.KeyCtrlUnderscore: event.KeyCtrlUnderscore,
}

// ctrlLetters maps 'a'..'z' to Ctrl keys, for backends reporting Ctrl+letter as a modified rune
var ctrlLetters = [26]event.Key{
	event.KeyCtrlA, event.KeyCtrlB, event.KeyCtrlC, event.KeyCtrlD, event.KeyCtrlE,
	event.KeyCtrlF, event.KeyCtrlG, event.KeyBackspace, event.KeyTab, event.KeyCtrlJ,
	event.KeyCtrlK, event.KeyCtrlL, event.KeyEnter, event.KeyCtrlN, event.KeyCtrlO,
	event.KeyCtrlP, event.KeyCtrlQ, event.KeyCtrlR, event.KeyCtrlS, event.KeyCtrlT,
	event.KeyCtrlU, event.KeyCtrlV, event.KeyCtrlW, event.KeyCtrlX, event.KeyCtrlY,
	event.KeyCtrlZ,
}

func translateMod(m tcell.ModMask) event.Modifier {
	var mod event.Modifier
	if m&tcell.ModShift != 0 {
		mod |= event.ModShift
	}
	if m&tcell.ModAlt != 0 {
		mod |= event.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= event.ModCtrl
	}
	if m&tcell.ModMeta != 0 {
		mod |= event.ModMeta
	}
	return mod
}

// translateKey normalizes a key press
// Ctrl+letter always arrives as a Ctrl key without ModCtrl, matching ParseKey("ctrl_x")
func translateKey(ev *tcell.EventKey) (event.KeyInput, bool) {
	mod := translateMod(ev.Modifiers())

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if mod&event.ModCtrl != 0 {
			lower := r | 0x20
			if lower >= 'a' && lower <= 'z' {
				return event.KeyInput{Key: ctrlLetters[lower-'a'], Mod: mod &^ (event.ModCtrl | event.ModShift)}, true
			}
		}
		return event.KeyInput{Key: event.KeyRune, Rune: r, Mod: mod}, true
	}

	k, ok := tcellKeys[ev.Key()]
	if !ok {
		return event.KeyInput{}, false
	}
	if k >= event.KeyCtrlA {
		mod &^= event.ModCtrl
	}
	if k == event.KeyBacktab {
		mod &^= event.ModShift
	}
	return event.KeyInput{Key: k, Mod: mod}, true
}

const buttonsPressed = tcell.Button1 | tcell.Button2 | tcell.Button3

// mouseTracker derives press, release and drag from successive button masks
// Owned by the reading goroutine
type mouseTracker struct {
	held event.MouseButton
}

func (mt *mouseTracker) translate(ev *tcell.EventMouse) event.MouseInput {
	x, y := ev.Position()
	in := event.MouseInput{X: x, Y: y, Mod: translateMod(ev.Modifiers())}
	btns := ev.Buttons()

	switch {
	case btns&tcell.WheelUp != 0:
		in.Button, in.Action = event.MouseBtnWheelUp, event.MouseActionPress
		return in
	case btns&tcell.WheelDown != 0:
		in.Button, in.Action = event.MouseBtnWheelDown, event.MouseActionPress
		return in
	case btns&tcell.WheelLeft != 0:
		in.Button, in.Action = event.MouseBtnWheelLeft, event.MouseActionPress
		return in
	case btns&tcell.WheelRight != 0:
		in.Button, in.Action = event.MouseBtnWheelRight, event.MouseActionPress
		return in
	}

	var btn event.MouseButton
	switch {
	case btns&tcell.Button1 != 0:
		btn = event.MouseBtnLeft
	case btns&tcell.Button3 != 0:
		btn = event.MouseBtnMiddle
	case btns&tcell.Button2 != 0:
		btn = event.MouseBtnRight
	}

	switch {
	case btns&buttonsPressed == 0 && mt.held == event.MouseBtnNone:
		in.Action = event.MouseActionMove
	case btns&buttonsPressed == 0:
		in.Button, in.Action = mt.held, event.MouseActionRelease
		mt.held = event.MouseBtnNone
	case mt.held == event.MouseBtnNone:
		in.Button, in.Action = btn, event.MouseActionPress
		mt.held = btn
	default:
		in.Button, in.Action = mt.held, event.MouseActionDrag
	}
	return in
}

// clampDim fits a dimension reported by the backend into uint16
func clampDim(n int) uint16 {
	if n < 0 {
		return 0
	}
	if n > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(n)
}

// translate maps one backend event to raw runtime input
func (t *Terminal) translate(ev tcell.Event) event.Input {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if k, ok := translateKey(ev); ok {
			return event.Input{Kind: event.InputKey, Key: k}
		}
	case *tcell.EventMouse:
		return event.Input{Kind: event.InputMouse, Mouse: t.mouse.translate(ev)}
	case *tcell.EventResize:
		w, h := ev.Size()
		return event.Input{Kind: event.InputResize, Width: clampDim(w), Height: clampDim(h)}
	}
	return event.Input{Kind: event.InputOther}
}
