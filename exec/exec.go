// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package exec runs per-region work data-parallel: it splits an output
// region into disjoint sub-regions (grid.Split) and executes a worker
// function once per sub-region, joining before it returns.
//
// This is the execution layer filters sit on: the worker function typically
// builds a neighborhood.Range scoped to its sub-region and writes output
// pixels through it. Because sub-regions are disjoint, workers write
// through the shared image buffer to non-overlapping addresses and need no
// synchronization beyond the final join.
//
// Cancellation is coarse-grained by design: there is no per-pixel
// cancellation point, a dispatched worker either finishes its sub-region
// or the embedding application abandons the whole operation.
package exec

import (
	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"

	"github.com/gomlx/ndimage/grid"
	"github.com/gomlx/ndimage/internal/workerspool"
)

// Executor dispatches region work onto a bounded worker pool. Create one
// with New and share it across filter executions; it carries no per-run
// state.
type Executor struct {
	pool *workerspool.Pool
}

// New returns an Executor with the default parallelism, one worker slot per
// CPU.
func New() *Executor {
	return &Executor{pool: workerspool.New()}
}

// MaxParallelism returns the soft cap on concurrently running workers.
// 0 means parallelism is disabled, a negative value means unlimited.
func (e *Executor) MaxParallelism() int { return e.pool.MaxParallelism() }

// SetMaxParallelism changes the cap. 0 disables parallelism: Parallelize
// then runs every sub-region inline, in split order, which is handy to make
// failures reproducible. Only change it while no work is in flight.
func (e *Executor) SetMaxParallelism(n int) { e.pool.SetMaxParallelism(n) }

// Parallelize splits region into at most pieces disjoint sub-regions and
// calls fn once per sub-region, returning after all calls complete.
//
// If pieces <= 0 it defaults to the executor's parallelism so each worker
// slot gets one piece. The actual piece count may be lower than requested
// when the region is too small to split further (see grid.Split). No
// ordering is guaranteed between sub-region workers; fn must tolerate any
// interleaving, which it does naturally when it only writes pixels inside
// its own sub-region.
func (e *Executor) Parallelize(pieces int, region grid.Region, fn func(sub grid.Region)) {
	if pieces <= 0 {
		pieces = max(e.pool.MaxParallelism(), 1)
	}
	subRegions := grid.Split(pieces, region)
	if klog.V(1).Enabled() {
		klog.Infof("exec: splitting %s pixels of %s into %d pieces (%d requested), parallelism %d",
			humanize.Comma(region.NumberOfPixels()), region, len(subRegions), pieces,
			e.pool.MaxParallelism())
	}
	e.pool.ForEach(len(subRegions), func(i int) {
		fn(subRegions[i])
	})
}
