//go:build !amd64

// File: spin/monitor_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Non-x86 builds carry only the Pause strategy; the vendor monitor/wait
// variants are omitted entirely rather than stubbed, so they can never be
// entered on hardware that lacks the instructions.

package spin

func detectMonitor(enabled func(Kind) bool) (Kind, bool) {
	return KindPause, false
}

func monitorSupported(kind Kind) bool { return false }
