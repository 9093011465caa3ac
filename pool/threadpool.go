// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ThreadPool wraps Executor with a detected spin strategy underneath.

package pool

import "github.com/momentics/hioload-spin/spin"

type ThreadPool struct {
	executor *Executor
}

// NewThreadPool creates a pool of size workers using the best spin strategy
// the host supports. disabled is forwarded to spin.Detect.
func NewThreadPool(size, disabled int) *ThreadPool {
	return &ThreadPool{
		executor: NewExecutor(Config{Workers: size, Spin: spin.Detect(disabled)}),
	}
}

func (tp *ThreadPool) Submit(f func()) error {
	return tp.executor.Submit(f)
}

// Checkpoint blocks until all workers have reached the rendezvous.
func (tp *ThreadPool) Checkpoint() error {
	return tp.executor.Checkpoint()
}

func (tp *ThreadPool) Close() {
	tp.executor.Close()
}
