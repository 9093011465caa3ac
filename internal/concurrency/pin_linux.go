//go:build linux

// File: internal/concurrency/pin_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux thread affinity via sched_setaffinity, no cgo required.

package concurrency

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// platformPin pins the calling thread to cpuID.
func platformPin(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID % runtime.NumCPU())
	return unix.SchedSetaffinity(0, &set)
}

// platformUnpin restores the full affinity mask.
func platformUnpin() {
	var set unix.CPUSet
	set.Zero()
	for i := 0; i < runtime.NumCPU(); i++ {
		set.Set(i)
	}
	_ = unix.SchedSetaffinity(0, &set)
}
