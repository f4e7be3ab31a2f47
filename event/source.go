package event

import "time"

// InputKind distinguishes raw backend input categories
type InputKind uint8

const (
	InputOther InputKind = iota // Ignored by the loop
	InputKey
	InputMouse
	InputResize
)

// Input is one raw event read from a terminal backend
type Input struct {
	Kind   InputKind
	Key    KeyInput
	Mouse  MouseInput
	Width  uint16
	Height uint16
}

// Source is the terminal input side consumed by Loop
// Poll and Read are called from a single goroutine
type Source interface {
	// Poll waits up to timeout for input; true means Read will not block
	Poll(timeout time.Duration) (bool, error)

	// Read returns exactly one raw input
	Read() (Input, error)
}

// Translate maps raw input to an Event; ok=false for ignored input
func Translate(in Input) (Event, bool) {
	switch in.Kind {
	case InputKey:
		return KeyEvent(in.Key), true
	case InputMouse:
		return MouseEvent(in.Mouse), true
	case InputResize:
		return ResizeEvent(in.Width, in.Height), true
	default:
		return Event{}, false
	}
}
