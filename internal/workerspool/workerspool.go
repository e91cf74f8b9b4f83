// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package workerspool bounds the number of goroutines executing per-region
// work. It is deliberately small: region workers never block on one another
// (sub-regions are disjoint by construction), so all the pool needs is a
// soft cap on concurrently running tasks and a join barrier.
package workerspool

import (
	"runtime"
	"sync"
)

// Pool gates parallel region work to a soft maximum of concurrently running
// tasks.
//
// The zero value is not usable; create pools with New. A Pool is safe for
// concurrent use, but SetMaxParallelism should only be called while no
// work is in flight.
type Pool struct {
	// maxParallelism is a soft target on the limit of parallel work:
	// 0 disables parallelism (tasks run inline), < 0 removes the limit.
	maxParallelism int

	mu         sync.Mutex
	cond       sync.Cond // Signaled whenever numRunning decreases.
	numRunning int
}

// New returns a Pool with the default parallelism, runtime.NumCPU().
func New() *Pool {
	p := &Pool{maxParallelism: runtime.NumCPU()}
	p.cond = sync.Cond{L: &p.mu}
	return p
}

// MaxParallelism returns the soft target for concurrently running tasks.
// 0 means parallelism is disabled, a negative value means unlimited.
func (p *Pool) MaxParallelism() int { return p.maxParallelism }

// SetMaxParallelism changes the soft target. Only change it while no work
// is in flight; changing it mid-execution is undefined.
func (p *Pool) SetMaxParallelism(maxParallelism int) {
	p.maxParallelism = maxParallelism
}

// IsEnabled returns whether the pool runs tasks in parallel at all.
func (p *Pool) IsEnabled() bool { return p.maxParallelism != 0 }

// ForEach runs task(i) for every i in [0, n) and blocks until all calls
// return. At most MaxParallelism tasks run concurrently; with parallelism
// disabled the tasks run inline, sequentially, on the calling goroutine.
//
// Tasks must not depend on each other's completion: the pool provides no
// ordering between them, only the final join.
func (p *Pool) ForEach(n int, task func(i int)) {
	if n <= 0 {
		return
	}
	if !p.IsEnabled() || n == 1 {
		for i := range n {
			task(i)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		p.waitToStart()
		go func() {
			defer wg.Done()
			defer p.taskFinished()
			task(i)
		}()
	}
	wg.Wait()
}

// waitToStart blocks until the pool has room for one more running task and
// reserves the slot.
func (p *Pool) waitToStart() {
	if p.maxParallelism < 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.numRunning >= p.maxParallelism {
		p.cond.Wait()
	}
	p.numRunning++
}

// taskFinished releases the slot reserved by waitToStart.
func (p *Pool) taskFinished() {
	if p.maxParallelism < 0 {
		return
	}
	p.mu.Lock()
	p.numRunning--
	p.cond.Signal()
	p.mu.Unlock()
}
