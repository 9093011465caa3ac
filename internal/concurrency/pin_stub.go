//go:build !linux

// File: internal/concurrency/pin_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub for platforms without affinity support.

package concurrency

func platformPin(cpuID int) error { return nil }

func platformUnpin() {}
