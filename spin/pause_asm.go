//go:build amd64 || arm64

// File: spin/pause_asm.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package spin

// procyield executes a one-instruction spin hint (PAUSE on amd64, YIELD on
// arm64). It tells the core this is a spin-wait loop, which avoids the
// memory-order-violation penalty on loop exit, trims power draw and keeps
// the sibling hardware thread from starving.
//
//go:noescape
func procyield()
