//go:build amd64

// File: spin/dispatch_amd64.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Kind-based dispatch. Indirect calls are too expensive here: these entry
// points run several times per scheduler barrier, so selection is a single
// branch over a closed enum handing out concrete zero-size values.

package spin

import "sync/atomic"

// With calls fn exactly once with a freshly constructed strategy of the
// given kind. Kinds not compiled into the build, including unrecognized
// values, fall back to Pause.
func With(kind Kind, fn func(Strategy)) {
	switch kind {
	case KindMonitorX:
		fn(MonitorX{})
	case KindUMonitor:
		fn(UMonitor{})
	default:
		fn(Pause{})
	}
}

// UntilDifferent spins with the given kind until watched != prev. The
// switch keeps every branch a direct, inlinable call.
func UntilDifferent(kind Kind, prev uint32, watched *atomic.Uint32) Result {
	switch kind {
	case KindMonitorX:
		return MonitorX{}.UntilDifferent(prev, watched)
	case KindUMonitor:
		return UMonitor{}.UntilDifferent(prev, watched)
	default:
		return Pause{}.UntilDifferent(prev, watched)
	}
}

// UntilEqual spins with the given kind until watched == expected.
func UntilEqual(kind Kind, expected uint32, watched *atomic.Uint32) uint64 {
	switch kind {
	case KindMonitorX:
		return MonitorX{}.UntilEqual(expected, watched)
	case KindUMonitor:
		return UMonitor{}.UntilEqual(expected, watched)
	default:
		return Pause{}.UntilEqual(expected, watched)
	}
}
