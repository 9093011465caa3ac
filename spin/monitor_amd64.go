//go:build amd64

// File: spin/monitor_amd64.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Vendor monitor/wait strategies. Both follow the same five-step shape:
// check, arm the monitor, check again, wait, loop. The second check is
// load-bearing: a store landing between the first check and the arming
// would never be seen by the wait instruction, stalling the thread forever.

package spin

import (
	"sync"
	"sync/atomic"
)

const (
	// MWAITX hints select the sleep state. 0xF would be C0; its wakeup
	// latency is under 0.1us shorter, yet package power sometimes exceeds a
	// PAUSE loop. C1 is a bit deeper and saves materially more.
	mwaitxHints = 0x0
	// MWAITX extensions: bit 0 would enable the EBX cycle timeout. No
	// timeout: MWAITX does not miss stores to the monitored line.
	mwaitxExtensions = 0

	// UMWAIT control: 1 would be C0.1. C0.2 has ~20x fewer spurious wakeups
	// and an additional ~4% package power saving, at 0.4-0.6us higher wake
	// latency.
	umwaitControl = 0
	// All-ones TSC deadline means no timeout, same reasoning as MWAITX.
	umwaitDeadline = ^uint64(0)

	// CPUID 0x80000001 ECX bit 29: MONITORX/MWAITX.
	amdExtLeaf  = 0x80000001
	monitorXBit = 1 << 29
	// CPUID 7.0 ECX bit 5: WAITPKG (UMONITOR/UMWAIT/TPAUSE).
	waitpkgBit = 1 << 5
)

// monitorx arms the AMD hardware monitor on the line containing watched.
// No extensions or hints are currently defined for MONITORX.
//
//go:noescape
func monitorx(watched *atomic.Uint32)

// mwaitx sleeps until the monitored line is written or a spurious wakeup.
//
//go:noescape
func mwaitx(extensions, hints uint32)

// umonitor arms the Intel hardware monitor on the line containing watched.
//
//go:noescape
func umonitor(watched *atomic.Uint32)

// umwait sleeps until the monitored line is written, a spurious wakeup, or
// the TSC reaches deadline.
//
//go:noescape
func umwait(control uint32, deadline uint64)

// MonitorX is AMD's user-mode monitor/wait strategy (Zen2+).
type MonitorX struct{}

// Kind implements Strategy.
func (MonitorX) Kind() Kind { return KindMonitorX }

// UntilDifferent implements Strategy.
func (MonitorX) UntilDifferent(prev uint32, watched *atomic.Uint32) Result {
	for reps := uint32(0); ; reps++ {
		current := watched.Load()
		if current != prev {
			return Result{Current: current, Reps: reps}
		}
		monitorx(watched)
		// Double-checked 'lock' to avoid missed events:
		current = watched.Load()
		if current != prev {
			return Result{Current: current, Reps: reps}
		}
		mwaitx(mwaitxExtensions, mwaitxHints)
	}
}

// UntilEqual implements Strategy.
func (MonitorX) UntilEqual(expected uint32, watched *atomic.Uint32) uint64 {
	for reps := uint64(0); ; reps++ {
		if watched.Load() == expected {
			return reps
		}
		monitorx(watched)
		// Double-checked 'lock' to avoid missed events:
		if watched.Load() == expected {
			return reps
		}
		mwaitx(mwaitxExtensions, mwaitxHints)
	}
}

// UMonitor is Intel's user-mode monitor/wait strategy (Sapphire Rapids+).
type UMonitor struct{}

// Kind implements Strategy.
func (UMonitor) Kind() Kind { return KindUMonitor }

// UntilDifferent implements Strategy.
func (UMonitor) UntilDifferent(prev uint32, watched *atomic.Uint32) Result {
	for reps := uint32(0); ; reps++ {
		current := watched.Load()
		if current != prev {
			return Result{Current: current, Reps: reps}
		}
		umonitor(watched)
		// Double-checked 'lock' to avoid missed events:
		current = watched.Load()
		if current != prev {
			return Result{Current: current, Reps: reps}
		}
		umwait(umwaitControl, umwaitDeadline)
	}
}

// UntilEqual implements Strategy.
func (UMonitor) UntilEqual(expected uint32, watched *atomic.Uint32) uint64 {
	for reps := uint64(0); ; reps++ {
		if watched.Load() == expected {
			return reps
		}
		umonitor(watched)
		// Double-checked 'lock' to avoid missed events:
		if watched.Load() == expected {
			return reps
		}
		umwait(umwaitControl, umwaitDeadline)
	}
}

var (
	probeOnce   sync.Once
	hasMonitorX bool
	hasUMonitor bool
)

// probeMonitor reads the CPUID feature bits once; CPUID serializes the
// pipeline, which is too costly for steady-state paths.
func probeMonitor() {
	probeOnce.Do(func() {
		if vendorIsAMD() {
			_, _, ecx, _ := cpuid(amdExtLeaf, 0)
			hasMonitorX = ecx&monitorXBit != 0
		}
		if maxCPUIDLevel() >= 7 {
			_, _, ecx, _ := cpuid(7, 0)
			hasUMonitor = ecx&waitpkgBit != 0
		}
	})
}

// detectMonitor returns the best vendor kind permitted by enabled, or
// (KindPause, false) when neither is supported or permitted.
func detectMonitor(enabled func(Kind) bool) (Kind, bool) {
	probeMonitor()
	if enabled(KindMonitorX) && hasMonitorX {
		return KindMonitorX, true
	}
	if enabled(KindUMonitor) && hasUMonitor {
		return KindUMonitor, true
	}
	return KindPause, false
}

// monitorSupported reports hardware support for a vendor kind.
func monitorSupported(kind Kind) bool {
	probeMonitor()
	switch kind {
	case KindMonitorX:
		return hasMonitorX
	case KindUMonitor:
		return hasUMonitor
	}
	return false
}
