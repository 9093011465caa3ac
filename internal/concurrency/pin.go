// File: internal/concurrency/pin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "runtime"

// PinCurrentThread locks the calling goroutine to its OS thread and pins
// that thread to the given logical CPU. On unsupported platforms the thread
// stays locked but unpinned, and no error is returned.
func PinCurrentThread(cpuID int) error {
	runtime.LockOSThread()
	if err := platformPin(cpuID); err != nil {
		runtime.UnlockOSThread()
		return err
	}
	return nil
}

// UnpinCurrentThread clears the affinity mask and releases the OS thread.
func UnpinCurrentThread() {
	platformUnpin()
	runtime.UnlockOSThread()
}
