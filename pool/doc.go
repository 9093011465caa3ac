// Package pool
// Author: momentics <momentics@gmail.com>
//
// Worker pool whose idle waits and checkpoint rendezvous run on the spin
// strategies. Workers drain per-worker bounded rings with a shared overflow
// queue behind them, and park on a submission counter through
// spin.UntilDifferent instead of sleeping, so a submitted task starts within
// a wake latency rather than a timer tick.
// See executor.go, barrier.go, queue.go for implementation details.
package pool
