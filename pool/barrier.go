// File: pool/barrier.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-spin/spin"
)

// Barrier is an N-participant rendezvous over a spin-observed epoch counter.
// The last arrival of an epoch resets the arrival count and publishes the
// next epoch; everyone else waits for the epoch to change through the
// configured spin strategy. The epoch and arrival counters sit on separate
// cache lines so waiters hammering the epoch do not contend with arrivals.
type Barrier struct {
	parties uint32
	kind    spin.Kind

	_       cpu.CacheLinePad
	arrived atomic.Uint32
	_       cpu.CacheLinePad
	epoch   atomic.Uint32
	_       cpu.CacheLinePad
}

// NewBarrier creates a barrier for the given number of participants, using
// kind for the waits. parties below 1 is treated as 1.
func NewBarrier(parties int, kind spin.Kind) *Barrier {
	if parties < 1 {
		parties = 1
	}
	return &Barrier{parties: uint32(parties), kind: kind}
}

// Parties returns the number of participants per rendezvous.
func (b *Barrier) Parties() int { return int(b.parties) }

// Wait blocks until all parties have reached the barrier for the current
// epoch, then returns the number of spin rounds this caller spent waiting
// (zero for the last arrival). The barrier is reusable: the next epoch
// starts as soon as Wait returns.
func (b *Barrier) Wait() uint32 {
	epoch := b.epoch.Load()
	if b.arrived.Add(1) == b.parties {
		// Last arrival: reset before publishing the new epoch, so a party
		// re-entering Wait cannot observe a stale arrival count.
		b.arrived.Store(0)
		b.epoch.Add(1)
		return 0
	}
	res := spin.UntilDifferent(b.kind, epoch, &b.epoch)
	return res.Reps
}
