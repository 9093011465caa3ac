// File: pool/executor_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-spin/control"
	"github.com/momentics/hioload-spin/spin"
)

func newTestExecutor(workers int) *Executor {
	return NewExecutor(Config{Workers: workers, Spin: spin.Detect(0)})
}

func TestExecutorRunsSubmittedTasks(t *testing.T) {
	e := newTestExecutor(4)
	defer e.Close()

	const tasks = 1000
	var done atomic.Int64
	for i := 0; i < tasks; i++ {
		if err := e.Submit(func() { done.Add(1) }); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if err := e.Checkpoint(); err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}
	if got := done.Load(); got != tasks {
		t.Fatalf("after checkpoint: %d/%d tasks ran", got, tasks)
	}
}

func TestExecutorConcurrentSubmitters(t *testing.T) {
	e := newTestExecutor(4)
	defer e.Close()

	const submitters = 8
	const perSubmitter = 500
	var done atomic.Int64
	var wg sync.WaitGroup
	for s := 0; s < submitters; s++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perSubmitter; i++ {
				if err := e.Submit(func() { done.Add(1) }); err != nil {
					t.Errorf("Submit: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
	if err := e.Checkpoint(); err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}
	if got := done.Load(); got != submitters*perSubmitter {
		t.Fatalf("%d/%d tasks ran", got, submitters*perSubmitter)
	}
}

func TestExecutorCheckpointOnIdlePool(t *testing.T) {
	e := newTestExecutor(3)
	defer e.Close()

	finished := make(chan error, 1)
	go func() { finished <- e.Checkpoint() }()
	select {
	case err := <-finished:
		if err != nil {
			t.Fatalf("Checkpoint: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("checkpoint on idle pool deadlocked")
	}
}

func TestExecutorSubmitAfterClose(t *testing.T) {
	e := newTestExecutor(2)
	e.Close()
	if err := e.Submit(func() {}); err != ErrExecutorClosed {
		t.Fatalf("Submit after Close = %v, want ErrExecutorClosed", err)
	}
	if err := e.Checkpoint(); err != ErrExecutorClosed {
		t.Fatalf("Checkpoint after Close = %v, want ErrExecutorClosed", err)
	}
	// Idempotent.
	e.Close()
}

func TestExecutorContainsPanics(t *testing.T) {
	e := newTestExecutor(2)
	defer e.Close()

	var done atomic.Int64
	for i := 0; i < 10; i++ {
		_ = e.Submit(func() { panic("task blew up") })
		_ = e.Submit(func() { done.Add(1) })
	}
	if err := e.Checkpoint(); err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}
	if got := done.Load(); got != 10 {
		t.Fatalf("%d/10 healthy tasks ran after panics", got)
	}
	// 20 submitted tasks are done at the checkpoint; the rendezvous tasks
	// themselves may still be finishing their bookkeeping.
	if stats := e.Stats(); stats["completed_tasks"] < 20 {
		t.Errorf("completed_tasks = %d, want >= 20 (panicking tasks count too)",
			stats["completed_tasks"])
	}
}

func TestExecutorPublishesMetrics(t *testing.T) {
	reg := control.NewMetricsRegistry()
	e := NewExecutor(Config{Workers: 2, Spin: spin.Detect(0), Metrics: reg})
	defer e.Close()

	var done atomic.Int64
	for i := 0; i < 50; i++ {
		_ = e.Submit(func() { done.Add(1) })
	}
	if err := e.Checkpoint(); err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}
	snap := reg.GetSnapshot()
	if snap["pool.total_tasks"] == nil || snap["pool.num_workers"] == nil {
		t.Fatalf("metrics not published: %v", snap)
	}
	if got := snap["pool.num_workers"].(int64); got != 2 {
		t.Errorf("pool.num_workers = %d, want 2", got)
	}
}

func TestThreadPool(t *testing.T) {
	tp := NewThreadPool(2, 0)
	var done atomic.Int64
	for i := 0; i < 100; i++ {
		if err := tp.Submit(func() { done.Add(1) }); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if err := tp.Checkpoint(); err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}
	if got := done.Load(); got != 100 {
		t.Fatalf("%d/100 tasks ran", got)
	}
	tp.Close()
}

func TestTaskRingFIFO(t *testing.T) {
	r := newTaskRing(4)
	var order []int
	for i := 0; i < 4; i++ {
		i := i
		if !r.enqueue(func() { order = append(order, i) }) {
			t.Fatalf("enqueue %d failed on non-full ring", i)
		}
	}
	if r.enqueue(func() {}) {
		t.Fatal("enqueue succeeded on full ring")
	}
	for i := 0; i < 4; i++ {
		task, ok := r.dequeue()
		if !ok {
			t.Fatalf("dequeue %d failed", i)
		}
		task()
	}
	if _, ok := r.dequeue(); ok {
		t.Fatal("dequeue succeeded on empty ring")
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("order[%d] = %d, ring is not FIFO", i, got)
		}
	}
}

func TestOverflowQueue(t *testing.T) {
	o := newOverflowQueue()
	if _, ok := o.pop(); ok {
		t.Fatal("pop succeeded on empty overflow queue")
	}
	ran := 0
	o.push(func() { ran++ })
	o.push(func() { ran += 10 })
	if o.len() != 2 {
		t.Fatalf("len = %d, want 2", o.len())
	}
	for {
		task, ok := o.pop()
		if !ok {
			break
		}
		task()
	}
	if ran != 11 {
		t.Fatalf("overflow tasks ran out of order or not at all: %d", ran)
	}
}
