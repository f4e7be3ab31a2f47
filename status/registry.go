// Package status exposes runtime metrics as lock-free cells keyed by name.
//
// Writers cache a cell pointer once and update it with atomics; renderers read
// the same cells or walk the registry with Lines.
package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Metric keys written by the runtime packages
const (
	EventPolled  = "event.polled"
	EventSent    = "event.sent"
	EventDropped = "event.dropped"

	AppFrames         = "app.frames"
	AppEvents         = "app.events"
	AppTasksSpawned   = "app.tasks.spawned"
	AppTasksCompleted = "app.tasks.completed"
	AppTasksFailed    = "app.tasks.failed"
	AppTasksAbandoned = "app.tasks.abandoned"
	AppFrameMs        = "app.frame_ms"
	AppLastError      = "app.last_error"
	AppRunning        = "app.running"
)

// Registry is the central metrics facade
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Int returns the current value of an int metric, 0 if unregistered
func (r *Registry) Int(key string) int64 {
	if p, ok := r.Ints.Lookup(key); ok {
		return p.Load()
	}
	return 0
}

// Lines renders every metric as "key=value", ints first then floats, bools, strings
// Each group is sorted by key
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Ints.Range(func(k string, p *atomic.Int64) {
		lines = append(lines, k+"="+strconv.FormatInt(p.Load(), 10))
	})
	r.Floats.Range(func(k string, p *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s=%.2f", k, p.Get()))
	})
	r.Bools.Range(func(k string, p *atomic.Bool) {
		lines = append(lines, k+"="+strconv.FormatBool(p.Load()))
	})
	r.Strings.Range(func(k string, p *AtomicString) {
		lines = append(lines, k+"="+p.Load())
	})
	return lines
}
