// File: pool/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-worker bounded task ring plus the shared overflow queue behind it.
// The ring serializes producers with a small mutex and leaves the consumer
// side (the owning worker) lock-free.

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
)

// taskRing is a bounded power-of-two ring with serialized producers and a
// single consumer.
type taskRing struct {
	mu      sync.Mutex
	mask    uint64
	entries []Task
	head    atomic.Uint64 // consumer position
	tail    atomic.Uint64 // producer position, advanced under mu
}

// newTaskRing creates a ring with capacity rounded up to a power of two.
func newTaskRing(capacity int) *taskRing {
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &taskRing{mask: uint64(size - 1), entries: make([]Task, size)}
}

// enqueue adds t; returns false if the ring is full.
func (r *taskRing) enqueue(t Task) bool {
	r.mu.Lock()
	tail := r.tail.Load()
	if tail-r.head.Load() >= uint64(len(r.entries)) {
		r.mu.Unlock()
		return false
	}
	r.entries[tail&r.mask] = t
	r.tail.Store(tail + 1)
	r.mu.Unlock()
	return true
}

// dequeue removes and returns a task; ok is false when empty. Only the
// owning worker may call this.
func (r *taskRing) dequeue() (t Task, ok bool) {
	head := r.head.Load()
	if head >= r.tail.Load() {
		return nil, false
	}
	t = r.entries[head&r.mask]
	r.entries[head&r.mask] = nil
	r.head.Store(head + 1)
	return t, true
}

// overflowQueue is the unbounded spill for bursts that outrun the rings.
type overflowQueue struct {
	mu sync.Mutex
	q  *queue.Queue
}

func newOverflowQueue() *overflowQueue {
	return &overflowQueue{q: queue.New()}
}

func (o *overflowQueue) push(t Task) {
	o.mu.Lock()
	o.q.Add(t)
	o.mu.Unlock()
}

func (o *overflowQueue) pop() (Task, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.q.Length() == 0 {
		return nil, false
	}
	return o.q.Remove().(Task), true
}

func (o *overflowQueue) len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.q.Length()
}
