// File: pool/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "errors"

var (
	// ErrExecutorClosed is returned by Submit and Checkpoint after Close.
	ErrExecutorClosed = errors.New("pool: executor closed")
)
