// Package event carries discrete terminal and application events from producers to the run loop.
//
// Components:
//   - Event: tagged variant (key, mouse, resize, custom, quit)
//   - Channel: bounded lock-free MPMC FIFO
//   - Loop: polls a Source at a fixed tick and forwards translated events into a Channel
package event

import "fmt"

// Kind discriminates the Event variant
type Kind uint8

const (
	KindNone Kind = iota
	KindKey
	KindMouse
	KindResize
	KindCustom
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "Key"
	case KindMouse:
		return "Mouse"
	case KindResize:
		return "Resize"
	case KindCustom:
		return "Custom"
	case KindQuit:
		return "Quit"
	default:
		return "None"
	}
}

// Event is a discrete occurrence delivered exactly once to one receiver
// Only the fields of the active Kind are meaningful
type Event struct {
	Kind    Kind
	Key     KeyInput   // KindKey
	Mouse   MouseInput // KindMouse
	Width   uint16     // KindResize
	Height  uint16     // KindResize
	Payload Payload    // KindCustom
}

// KeyEvent wraps a key press
func KeyEvent(k KeyInput) Event {
	return Event{Kind: KindKey, Key: k}
}

// MouseEvent wraps a mouse report
func MouseEvent(m MouseInput) Event {
	return Event{Kind: KindMouse, Mouse: m}
}

// ResizeEvent reports new terminal dimensions in cells
func ResizeEvent(width, height uint16) Event {
	return Event{Kind: KindResize, Width: width, Height: height}
}

// CustomEvent wraps an application payload
func CustomEvent(p Payload) Event {
	return Event{Kind: KindCustom, Payload: p}
}

// QuitEvent requests orderly termination
func QuitEvent() Event {
	return Event{Kind: KindQuit}
}

// Clone returns a copy whose custom payload is cloned with its concrete type intact
func (e Event) Clone() Event {
	if e.Payload != nil {
		e.Payload = e.Payload.Clone()
	}
	return e
}

func (e Event) String() string {
	switch e.Kind {
	case KindKey:
		return "Key(" + e.Key.String() + ")"
	case KindMouse:
		return "Mouse(" + e.Mouse.String() + ")"
	case KindResize:
		return fmt.Sprintf("Resize(%dx%d)", e.Width, e.Height)
	case KindCustom:
		if e.Payload == nil {
			return "Custom(nil)"
		}
		return "Custom(" + e.Payload.String() + ")"
	default:
		return e.Kind.String()
	}
}
