// File: spin/detect_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package spin

import (
	"sync/atomic"
	"testing"
)

func TestDetectReturnsSupportedKind(t *testing.T) {
	kind := Detect(0)
	if kind < 0 || kind >= numKinds {
		t.Fatalf("Detect(0) = %d, not a valid kind", kind)
	}
	if !Supported(kind) {
		t.Fatalf("Detect(0) = %v, which this build/CPU does not support", kind)
	}
}

func TestDetectHonorsDisableMask(t *testing.T) {
	for k := Kind(0); k < numKinds; k++ {
		if k == KindPause {
			continue
		}
		if got := Detect(1 << int(k)); got == k {
			t.Errorf("Detect(1<<%v) still returned %v", k, got)
		}
	}
	// Disabling both vendor kinds always leaves Pause.
	mask := 1<<int(KindMonitorX) | 1<<int(KindUMonitor)
	if got := Detect(mask); got != KindPause {
		t.Errorf("Detect(vendor mask) = %v, want %v", got, KindPause)
	}
}

func TestDetectPauseDisableIsOverridden(t *testing.T) {
	var warnings atomic.Int32
	orig := Warnf
	Warnf = func(format string, args ...any) {
		warnings.Add(1)
	}
	defer func() { Warnf = orig }()

	// Disable everything: Pause must still be returned, with one warning.
	mask := 1<<int(KindMonitorX) | 1<<int(KindUMonitor) | 1<<int(KindPause)
	if got := Detect(mask); got != KindPause {
		t.Fatalf("Detect(all disabled) = %v, want %v", got, KindPause)
	}
	if n := warnings.Load(); n != 1 {
		t.Fatalf("got %d warning events, want exactly 1", n)
	}

	// A mask that leaves a vendor kind available must not warn; a mask that
	// leaves only Pause naturally must not warn either.
	warnings.Store(0)
	Detect(0)
	if n := warnings.Load(); n != 0 {
		t.Fatalf("Detect(0) produced %d warnings, want 0", n)
	}
}

func TestWithFallsBackToPause(t *testing.T) {
	called := 0
	With(Kind(42), func(s Strategy) {
		called++
		if s.Kind() != KindPause {
			t.Errorf("unknown kind dispatched %v, want %v", s.Kind(), KindPause)
		}
	})
	if called != 1 {
		t.Fatalf("operation invoked %d times, want exactly once", called)
	}
}

func TestWithConstructsDetectedKind(t *testing.T) {
	kind := Detect(0)
	With(kind, func(s Strategy) {
		if s.Kind() != kind {
			t.Errorf("With(%v) dispatched %v", kind, s.Kind())
		}
	})
}

func TestDetectIsStable(t *testing.T) {
	first := Detect(0)
	for i := 0; i < 3; i++ {
		if got := Detect(0); got != first {
			t.Fatalf("Detect flapped: %v then %v", first, got)
		}
	}
}
