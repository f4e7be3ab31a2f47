package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lixenwraith/termcore/event"
	"github.com/lixenwraith/termcore/status"
)

const (
	DefaultFrameInterval   = 16 * time.Millisecond
	DefaultShutdownTimeout = time.Second
)

// DrainPolicy decides how many pending events are handled before each render
type DrainPolicy uint8

const (
	// DrainOne handles at most one event per frame
	DrainOne DrainPolicy = iota
	// DrainAll handles every event pending at frame start, bounded by channel capacity
	DrainAll
)

func (p DrainPolicy) String() string {
	if p == DrainAll {
		return "all"
	}
	return "one"
}

// ParseDrainPolicy resolves "one" or "all"
func ParseDrainPolicy(s string) (DrainPolicy, error) {
	switch s {
	case "", "one":
		return DrainOne, nil
	case "all":
		return DrainAll, nil
	default:
		return DrainOne, fmt.Errorf("unknown drain policy %q", s)
	}
}

// Option configures an App
type Option func(*options) error

type options struct {
	quitKey         event.KeyInput
	capacity        int
	overflow        event.OverflowPolicy
	drain           DrainPolicy
	frameInterval   time.Duration
	shutdownTimeout time.Duration
	mouse           bool
	handler         func(event.Event)
	onDrop          func(event.Event)
	logger          *slog.Logger
	metrics         *status.Registry
}

func defaultOptions() options {
	return options{
		quitKey:         event.Rune('q'),
		capacity:        event.DefaultCapacity,
		overflow:        event.DropNewest,
		drain:           DrainOne,
		frameInterval:   DefaultFrameInterval,
		shutdownTimeout: DefaultShutdownTimeout,
	}
}

func buildOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return options{}, err
		}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.metrics == nil {
		o.metrics = status.NewRegistry()
	}
	return o, nil
}

// WithQuitKey sets the key that ends Run; default 'q'
// KeyNone disables key-triggered quit, leaving only Quit events
func WithQuitKey(k event.KeyInput) Option {
	return func(o *options) error {
		o.quitKey = k
		return nil
	}
}

// WithChannelCapacity bounds pending events; default event.DefaultCapacity
func WithChannelCapacity(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return fmt.Errorf("channel capacity must be at least 1 (got %d)", n)
		}
		o.capacity = n
		return nil
	}
}

// WithOverflow selects what input polling does when the channel is full
func WithOverflow(p event.OverflowPolicy) Option {
	return func(o *options) error {
		if p > event.FailOnFull {
			return fmt.Errorf("unknown overflow policy %d", p)
		}
		o.overflow = p
		return nil
	}
}

// WithOnDrop observes events discarded by the overflow policy
// Called from the event loop goroutine
func WithOnDrop(fn func(event.Event)) Option {
	return func(o *options) error {
		o.onDrop = fn
		return nil
	}
}

// WithDrainPolicy selects DrainOne (default) or DrainAll
func WithDrainPolicy(p DrainPolicy) Option {
	return func(o *options) error {
		if p > DrainAll {
			return fmt.Errorf("unknown drain policy %d", p)
		}
		o.drain = p
		return nil
	}
}

// WithFrameInterval sets the pause between frames; 0 only yields the processor
func WithFrameInterval(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("frame interval must not be negative (got %s)", d)
		}
		o.frameInterval = d
		return nil
	}
}

// WithShutdownTimeout bounds how long Shutdown waits for spawned tasks
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("shutdown timeout must be positive (got %s)", d)
		}
		o.shutdownTimeout = d
		return nil
	}
}

// WithMouse enables mouse reporting on terminals created by New
func WithMouse(enabled bool) Option {
	return func(o *options) error {
		o.mouse = enabled
		return nil
	}
}

// WithEventHandler receives every drained event that does not end the run
// Called on the Run goroutine before the frame renders
func WithEventHandler(fn func(event.Event)) Option {
	return func(o *options) error {
		o.handler = fn
		return nil
	}
}

// WithLogger sets the logger; default slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		o.logger = l
		return nil
	}
}

// WithMetrics publishes runtime counters into r
func WithMetrics(r *status.Registry) Option {
	return func(o *options) error {
		o.metrics = r
		return nil
	}
}
