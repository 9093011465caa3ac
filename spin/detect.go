// File: spin/detect.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package spin

// Detect returns the best available Kind whose bit in disabled is not set.
// Example: to exclude KindUMonitor, pass 1 << int(KindUMonitor).
//
// Priority: MonitorX on AMD parts reporting MONITORX/MWAITX, then UMonitor
// on parts reporting WAITPKG, then Pause. An attempt to disable KindPause is
// ignored when it is the only option left, with a warning through Warnf:
// honoring it would leave no valid strategy.
//
// Somewhat expensive (CPUID); typically called once during initialization,
// with the returned Kind reused for every subsequent wait.
func Detect(disabled int) Kind {
	enabled := func(k Kind) bool {
		return disabled&(1<<int(k)) == 0
	}
	if kind, ok := detectMonitor(enabled); ok {
		return kind
	}
	if !enabled(KindPause) {
		Warnf("spin: ignoring attempt to disable Pause, it is the only option left")
	}
	return KindPause
}

// Supported reports whether kind is compiled into this build and usable on
// the running processor. KindPause is always supported.
func Supported(kind Kind) bool {
	switch kind {
	case KindPause:
		return true
	case KindMonitorX, KindUMonitor:
		return monitorSupported(kind)
	}
	return false
}
