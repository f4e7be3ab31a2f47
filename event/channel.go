package event

import (
	"context"
	"sync/atomic"

	"github.com/lixenwraith/termcore/core"
)

// DefaultCapacity bounds pending events when no capacity is configured
const DefaultCapacity = 1024

// slot is one ring cell; seq encodes ownership
//   - seq == pos:       free for the producer claiming pos
//   - seq == pos+1:     published for the consumer claiming pos
//   - seq == pos+cap:   recycled for the producer one lap later
type slot struct {
	seq atomic.Uint64
	ev  Event
}

// Channel is a bounded lock-free MPMC FIFO of events
//
// Thread-Safety:
//   - TrySend/TryRecv: lock-free CAS on tail/head, any number of producers and consumers
//   - Slot sequence numbers prevent reading partial writes
//   - Per-producer order is preserved; producers are interleaved in claim order
//
// Overflow: TrySend fails with core.ErrChannelFull, nothing is overwritten
type Channel struct {
	slots  []slot
	size   uint64        // Ring length, at least 2
	limit  uint64        // Max undelivered events
	head   atomic.Uint64 // Next position to consume
	tail   atomic.Uint64 // Next position to produce
	closed atomic.Bool
	notify chan struct{} // 1-slot wakeup for Recv
	done   chan struct{} // Closed by Close, wakes every Recv
}

// NewChannel creates a channel holding at most capacity undelivered events
func NewChannel(capacity int) *Channel {
	if capacity < 1 {
		core.Violation("event.NewChannel", "capacity must be >= 1 (got %d)", capacity)
	}
	// A 1-slot ring cannot tell a published slot from a released one
	size := max(capacity, 2)
	c := &Channel{
		slots:  make([]slot, size),
		size:   uint64(size),
		limit:  uint64(capacity),
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	for i := range c.slots {
		c.slots[i].seq.Store(uint64(i))
	}
	return c
}

// TrySend enqueues ev without blocking
// A send racing Close may still land; it is then received before ErrChannelClosed
func (c *Channel) TrySend(ev Event) error {
	if c.closed.Load() {
		return core.ErrChannelClosed
	}

	pos := c.tail.Load()
	for {
		s := &c.slots[pos%c.size]
		seq := s.seq.Load()
		switch diff := int64(seq - pos); {
		case diff == 0:
			if int64(pos-c.head.Load()) >= int64(c.limit) {
				return core.ErrChannelFull
			}
			if c.tail.CompareAndSwap(pos, pos+1) {
				s.ev = ev
				s.seq.Store(pos + 1) // MUST be after write
				c.wake()
				return nil
			}
			pos = c.tail.Load()
		case diff < 0:
			// Slot still holds an event from the previous lap
			return core.ErrChannelFull
		default:
			pos = c.tail.Load()
		}
	}
}

// TryRecv dequeues one event without blocking
// Returns ok=false when empty; core.ErrChannelClosed once closed and drained
func (c *Channel) TryRecv() (Event, bool, error) {
	pos := c.head.Load()
	for {
		s := &c.slots[pos%c.size]
		seq := s.seq.Load()
		switch diff := int64(seq - (pos + 1)); {
		case diff == 0:
			if c.head.CompareAndSwap(pos, pos+1) {
				ev := s.ev
				s.ev = Event{}
				s.seq.Store(pos + c.size) // Release slot for next lap
				return ev, true, nil
			}
			pos = c.head.Load()
		case diff < 0:
			if c.closed.Load() && c.tail.Load() == pos {
				return Event{}, false, core.ErrChannelClosed
			}
			return Event{}, false, nil
		default:
			pos = c.head.Load()
		}
	}
}

// Recv waits for an event, the channel closing, or ctx cancellation
func (c *Channel) Recv(ctx context.Context) (Event, error) {
	for {
		ev, ok, err := c.TryRecv()
		if err != nil {
			return Event{}, err
		}
		if ok {
			return ev, nil
		}
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-c.notify:
		case <-c.done:
		}
	}
}

// wake signals a waiting Recv without blocking
func (c *Channel) wake() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// Close rejects further sends; pending events stay receivable
// Idempotent
func (c *Channel) Close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.done)
	}
}

// Closed reports whether Close was called
func (c *Channel) Closed() bool {
	return c.closed.Load()
}

// Len returns approximate pending event count
func (c *Channel) Len() int {
	head := c.head.Load()
	tail := c.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, c.limit))
}

// Cap returns the capacity
func (c *Channel) Cap() int {
	return int(c.limit)
}
