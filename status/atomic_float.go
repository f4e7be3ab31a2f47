package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 gauge for averaged timings such as frame duration
// Writers fold samples in with Smooth; readers see the latest average with Get
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set overwrites the average
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Smooth folds sample into an exponential moving average with weight alpha and returns it
// A zero average takes the sample as-is, so the first frame is not dragged toward 0
func (f *AtomicFloat) Smooth(sample, alpha float64) float64 {
	for {
		old := f.bits.Load()
		avg := sample
		if old != 0 {
			prev := math.Float64frombits(old)
			avg = prev + alpha*(sample-prev)
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(avg)) {
			return avg
		}
	}
}
