// File: spin/spin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Strategy kinds, wait results and the always-available Pause strategy.

package spin

import "sync/atomic"

// Kind identifies a wait strategy. It doubles as a bit index for the
// disable mask accepted by Detect: pass 1<<kind to exclude a kind.
type Kind int32

const (
	// KindMonitorX is AMD's user-mode monitor/wait (Zen2+).
	KindMonitorX Kind = iota
	// KindUMonitor is Intel's user-mode monitor/wait (Sapphire Rapids+).
	KindUMonitor
	// KindPause is the portable polling fallback, always available.
	KindPause

	numKinds
)

// String returns a human-readable name for diagnostics and logging.
func (k Kind) String() string {
	switch k {
	case KindMonitorX:
		return "MonitorX_C1"
	case KindUMonitor:
		return "UMonitor_C0.2"
	case KindPause:
		return "Pause"
	}
	return "Unknown"
}

// Result is returned by UntilDifferent in a single register pair.
type Result struct {
	// Current is the observed value that triggered the return.
	// 32 bits, matching what futex-style waits support.
	Current uint32
	// Reps is the number of polling rounds before returning, useful for
	// checking that the monitor/wait did not just return immediately.
	Reps uint32
}

// Strategy is the uniform contract implemented by every wait variant.
// Implementations are stateless zero-size values; constructing one is free
// and no synchronization is needed to share or discard them. None of the
// operations ever writes the watched location.
type Strategy interface {
	// Kind identifies the variant.
	Kind() Kind
	// UntilDifferent spins until watched != prev and returns the new value
	// together with the number of rounds spent waiting.
	UntilDifferent(prev uint32, watched *atomic.Uint32) Result
	// UntilEqual spins until watched == expected and returns the number of
	// rounds spent waiting. The value itself is dropped, the caller already
	// knows it.
	UntilEqual(expected uint32, watched *atomic.Uint32) uint64
}

// Pause is the reference strategy: acquire-load, compare, spin hint, retry.
// The hint (PAUSE on amd64, YIELD on arm64) varies across CPUs: it can be a
// no-op or wait on the order of a hundred cycles.
type Pause struct{}

// Kind implements Strategy.
func (Pause) Kind() Kind { return KindPause }

// UntilDifferent implements Strategy.
func (Pause) UntilDifferent(prev uint32, watched *atomic.Uint32) Result {
	for reps := uint32(0); ; reps++ {
		current := watched.Load()
		if current != prev {
			return Result{Current: current, Reps: reps}
		}
		procyield()
	}
}

// UntilEqual implements Strategy.
func (Pause) UntilEqual(expected uint32, watched *atomic.Uint32) uint64 {
	for reps := uint64(0); ; reps++ {
		if watched.Load() == expected {
			return reps
		}
		procyield()
	}
}
