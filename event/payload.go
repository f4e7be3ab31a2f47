package event

import "fmt"

// Payload is the capability a custom event body must provide
// Clone must return a value of the same concrete type carrying equal data
type Payload interface {
	Clone() Payload
	fmt.Stringer
}

// Cloner is implemented by values with their own deep copy
type Cloner[T any] interface {
	Clone() T
}

// Value adapts any T into a Payload
// Clone uses T's own Clone when T implements Cloner[T], otherwise copies the value
type Value[T any] struct {
	V T
}

// Clone implements Payload
func (v Value[T]) Clone() Payload {
	if c, ok := any(v.V).(Cloner[T]); ok {
		return Value[T]{V: c.Clone()}
	}
	return Value[T]{V: v.V}
}

// String implements Payload
func (v Value[T]) String() string {
	return fmt.Sprintf("%T:%+v", v.V, v.V)
}

// Custom builds a custom event around v
func Custom[T any](v T) Event {
	return CustomEvent(Value[T]{V: v})
}

// PayloadAs extracts a T from a custom event built with Custom
// Reports false for other kinds or a different payload type
func PayloadAs[T any](e Event) (T, bool) {
	var zero T
	if e.Kind != KindCustom {
		return zero, false
	}
	if v, ok := e.Payload.(Value[T]); ok {
		return v.V, true
	}
	if v, ok := e.Payload.(T); ok {
		return v, true
	}
	return zero, false
}
