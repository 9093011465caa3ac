//go:build !amd64

// File: spin/dispatch_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Dispatch for builds without the vendor strategies: every kind resolves to
// Pause. Selection still happens ahead of time in Detect, which never hands
// out an uncompiled kind, so this path only matters for callers carrying a
// Kind across build configurations.

package spin

import "sync/atomic"

// With calls fn exactly once with a freshly constructed strategy of the
// given kind; on this build that is always Pause.
func With(kind Kind, fn func(Strategy)) {
	fn(Pause{})
}

// UntilDifferent spins until watched != prev.
func UntilDifferent(kind Kind, prev uint32, watched *atomic.Uint32) Result {
	return Pause{}.UntilDifferent(prev, watched)
}

// UntilEqual spins until watched == expected.
func UntilEqual(kind Kind, expected uint32, watched *atomic.Uint32) uint64 {
	return Pause{}.UntilEqual(expected, watched)
}
