// File: pool/executor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Executor dispatches tasks across worker goroutines using per-worker rings
// with an overflow queue fallback. Idle workers wait for the submission
// counter to move via the configured spin strategy; Checkpoint rendezvouses
// all workers plus the caller through a spin barrier.

package pool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-spin/control"
	"github.com/momentics/hioload-spin/internal/concurrency"
	"github.com/momentics/hioload-spin/spin"
)

// Task is a unit of work to execute.
type Task func()

// Config controls executor construction.
type Config struct {
	// Workers is the pool size; <= 0 defaults to runtime.NumCPU().
	Workers int
	// Spin selects the wait strategy for idle parking and checkpoints,
	// normally the result of spin.Detect at process start.
	Spin spin.Kind
	// Pin pins each worker's OS thread to a CPU core (best effort).
	Pin bool
	// Metrics, when non-nil, receives executor counters on Checkpoint and
	// Close.
	Metrics *control.MetricsRegistry
}

// Executor manages a pool of worker goroutines.
type Executor struct {
	cfg      Config
	local    []*taskRing
	overflow *overflowQueue
	workers  []*worker
	wg       sync.WaitGroup

	// submitSeq is bumped after every enqueue and on Close; idle workers
	// park on it with spin.UntilDifferent.
	submitSeq atomic.Uint32

	mu     sync.Mutex // serializes Checkpoint enqueues against Close
	closed int32      // atomic flag: 1 if closed
	rr     uint32     // round-robin submit cursor

	// statistics
	totalTasks     int64
	completedTasks int64
	spinRounds     int64
}

// NewExecutor creates and starts an executor.
func NewExecutor(cfg Config) *Executor {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	e := &Executor{
		cfg:      cfg,
		local:    make([]*taskRing, cfg.Workers),
		overflow: newOverflowQueue(),
		workers:  make([]*worker, cfg.Workers),
	}
	for i := 0; i < cfg.Workers; i++ {
		e.local[i] = newTaskRing(1024)
	}
	for i := 0; i < cfg.Workers; i++ {
		w := &worker{id: i, executor: e, ring: e.local[i]}
		e.workers[i] = w
		e.wg.Add(1)
		go w.run()
	}
	return e
}

// Submit enqueues a task for execution, returning ErrExecutorClosed if the
// executor is closed. Tasks overflow to the shared queue when the chosen
// ring is full; submission order across workers is not guaranteed.
func (e *Executor) Submit(task Task) error {
	if atomic.LoadInt32(&e.closed) == 1 {
		return ErrExecutorClosed
	}
	atomic.AddInt64(&e.totalTasks, 1)
	idx := int(atomic.AddUint32(&e.rr, 1)) % len(e.local)
	if !e.local[idx].enqueue(task) {
		e.overflow.push(task)
	}
	e.submitSeq.Add(1)
	return nil
}

// Checkpoint blocks until every worker has run the tasks already in its
// ring, the overflow queue is drained, and all workers plus the caller have
// met at the rendezvous. Tasks submitted concurrently with a checkpoint may
// land on either side of it. Returns ErrExecutorClosed after Close.
func (e *Executor) Checkpoint() error {
	// The lock keeps Close from retiring workers while rendezvous tasks are
	// still being placed; a worker that exited with an arrive task queued
	// would strand the remaining parties at the barrier.
	e.mu.Lock()
	if atomic.LoadInt32(&e.closed) == 1 {
		e.mu.Unlock()
		return ErrExecutorClosed
	}
	b := NewBarrier(len(e.workers)+1, e.cfg.Spin)
	atomic.AddInt64(&e.totalTasks, int64(len(e.workers)))
	arrive := func() {
		// Spilled tasks predate the checkpoint; finish them first.
		for {
			task, ok := e.overflow.pop()
			if !ok {
				break
			}
			e.runTask(task)
		}
		b.Wait()
	}
	for _, r := range e.local {
		// Each worker must run its own rendezvous task, so these bypass the
		// round-robin and target every ring, retrying while full.
		for !r.enqueue(arrive) {
			runtime.Gosched()
		}
		e.submitSeq.Add(1)
	}
	e.mu.Unlock()

	rounds := b.Wait()
	atomic.AddInt64(&e.spinRounds, int64(rounds))
	e.publishStats()
	return nil
}

// NumWorkers returns the pool size.
func (e *Executor) NumWorkers() int { return len(e.workers) }

// Close shuts the executor down and waits for workers to exit. Workers
// finish whatever is already in their rings before leaving. Idempotent.
func (e *Executor) Close() {
	e.mu.Lock()
	if atomic.CompareAndSwapInt32(&e.closed, 0, 1) {
		// Wake anyone parked on the submission counter.
		e.submitSeq.Add(1)
	}
	e.mu.Unlock()
	e.wg.Wait()
	e.publishStats()
}

// Stats returns basic executor metrics.
func (e *Executor) Stats() map[string]int64 {
	total := atomic.LoadInt64(&e.totalTasks)
	completed := atomic.LoadInt64(&e.completedTasks)
	return map[string]int64{
		"total_tasks":     total,
		"completed_tasks": completed,
		"pending_tasks":   total - completed,
		"overflow_depth":  int64(e.overflow.len()),
		"spin_rounds":     atomic.LoadInt64(&e.spinRounds),
		"num_workers":     int64(len(e.workers)),
	}
}

// publishStats mirrors Stats into the configured metrics registry.
func (e *Executor) publishStats() {
	if e.cfg.Metrics == nil {
		return
	}
	for k, v := range e.Stats() {
		e.cfg.Metrics.Set("pool."+k, v)
	}
}

// runTask runs one task and updates statistics, containing panics so one
// bad task cannot take a worker down.
func (e *Executor) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			// swallow panic to keep the worker alive
		}
		atomic.AddInt64(&e.completedTasks, 1)
	}()
	task()
}

// worker represents a single executor goroutine.
type worker struct {
	id       int
	executor *Executor
	ring     *taskRing
}

// run is the main worker loop: drain the local ring, then the overflow
// queue, then park on the submission counter. The queues are re-checked
// after reading the counter, closing the race where a submit lands between
// the last drain attempt and the wait.
func (w *worker) run() {
	e := w.executor
	defer e.wg.Done()
	if e.cfg.Pin {
		if err := concurrency.PinCurrentThread(w.id); err == nil {
			defer concurrency.UnpinCurrentThread()
		}
	}
	for {
		if task, ok := w.ring.dequeue(); ok {
			e.runTask(task)
			continue
		}
		if task, ok := e.overflow.pop(); ok {
			e.runTask(task)
			continue
		}
		if atomic.LoadInt32(&e.closed) == 1 {
			// Checkpoint rendezvous tasks are always queued before the close
			// flag is set, so one more drain after observing the flag is
			// enough to guarantee nothing is stranded.
			if task, ok := w.ring.dequeue(); ok {
				e.runTask(task)
				continue
			}
			if task, ok := e.overflow.pop(); ok {
				e.runTask(task)
				continue
			}
			return
		}
		seq := e.submitSeq.Load()
		// Double-check after capturing the counter to avoid a missed wakeup.
		if task, ok := w.ring.dequeue(); ok {
			e.runTask(task)
			continue
		}
		if task, ok := e.overflow.pop(); ok {
			e.runTask(task)
			continue
		}
		if atomic.LoadInt32(&e.closed) == 1 {
			continue
		}
		res := spin.UntilDifferent(e.cfg.Spin, seq, &e.submitSeq)
		atomic.AddInt64(&e.spinRounds, int64(res.Reps))
	}
}
