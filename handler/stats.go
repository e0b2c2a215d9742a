package handler

import (
	"errors"
	"sync/atomic"

	"github.com/philipp01105/logchain/core"
)

// Stats tracks dispatch statistics
type Stats struct {
	// Separate atomic counters per claimed severity
	ConsumedWarning uint64
	ConsumedError   uint64
	// FatalTotal counts FatalError terminations
	FatalTotal uint64
	// UnrecognizedTotal counts Unknown terminations
	UnrecognizedTotal uint64
	// UnhandledTotal counts messages no handler claimed
	UnhandledTotal uint64
	// SinkFailuresTotal counts messages whose sink could not be reached
	SinkFailuresTotal uint64
	// HandlerFailuresTotal counts any other handler error
	HandlerFailuresTotal uint64
	// ForwardedTotal counts individual handler-to-successor hops
	ForwardedTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// Record atomically counts the result of one dispatch
func (s *Stats) Record(sev core.Severity, outcome core.Outcome, err error) {
	switch {
	case outcome == core.Unhandled:
		atomic.AddUint64(&s.UnhandledTotal, 1)
	case errors.Is(err, ErrFatalCondition):
		atomic.AddUint64(&s.FatalTotal, 1)
	case errors.Is(err, ErrUnrecognizedClassification):
		atomic.AddUint64(&s.UnrecognizedTotal, 1)
	case errors.Is(err, ErrSinkUnavailable):
		atomic.AddUint64(&s.SinkFailuresTotal, 1)
	case err != nil:
		atomic.AddUint64(&s.HandlerFailuresTotal, 1)
	case outcome == core.Consumed:
		s.incrementConsumed(sev)
	}
}

// IncrementForwarded atomically increments the forwarded counter
func (s *Stats) IncrementForwarded() {
	atomic.AddUint64(&s.ForwardedTotal, 1)
}

func (s *Stats) incrementConsumed(sev core.Severity) {
	switch sev {
	case core.Warning:
		atomic.AddUint64(&s.ConsumedWarning, 1)
	case core.Error:
		atomic.AddUint64(&s.ConsumedError, 1)
	}
}

// GetConsumed returns the consumed count for a severity
func (s *Stats) GetConsumed(sev core.Severity) uint64 {
	switch sev {
	case core.Warning:
		return atomic.LoadUint64(&s.ConsumedWarning)
	case core.Error:
		return atomic.LoadUint64(&s.ConsumedError)
	default:
		return 0
	}
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.ConsumedWarning, 0)
	atomic.StoreUint64(&s.ConsumedError, 0)
	atomic.StoreUint64(&s.FatalTotal, 0)
	atomic.StoreUint64(&s.UnrecognizedTotal, 0)
	atomic.StoreUint64(&s.UnhandledTotal, 0)
	atomic.StoreUint64(&s.SinkFailuresTotal, 0)
	atomic.StoreUint64(&s.HandlerFailuresTotal, 0)
	atomic.StoreUint64(&s.ForwardedTotal, 0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Consumed             map[core.Severity]uint64
	FatalTotal           uint64
	UnrecognizedTotal    uint64
	UnhandledTotal       uint64
	SinkFailuresTotal    uint64
	HandlerFailuresTotal uint64
	ForwardedTotal       uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Consumed: map[core.Severity]uint64{
			core.Warning: s.GetConsumed(core.Warning),
			core.Error:   s.GetConsumed(core.Error),
		},
		FatalTotal:           atomic.LoadUint64(&s.FatalTotal),
		UnrecognizedTotal:    atomic.LoadUint64(&s.UnrecognizedTotal),
		UnhandledTotal:       atomic.LoadUint64(&s.UnhandledTotal),
		SinkFailuresTotal:    atomic.LoadUint64(&s.SinkFailuresTotal),
		HandlerFailuresTotal: atomic.LoadUint64(&s.HandlerFailuresTotal),
		ForwardedTotal:       atomic.LoadUint64(&s.ForwardedTotal),
	}
}
