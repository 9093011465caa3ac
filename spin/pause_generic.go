//go:build !amd64 && !arm64

// File: spin/pause_generic.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback for architectures without a dedicated spin hint.

package spin

func procyield() {}
