// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package exec

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomlx/ndimage/grid"
	"github.com/gomlx/ndimage/image"
	"github.com/gomlx/ndimage/neighborhood"
)

// boxSum writes into dst, for every center of region, the sum of the 3x3(x3...)
// neighborhood of src under a constant-zero boundary.
func boxSum(src, dst *image.Image[int64], region grid.Region) {
	radius := make(grid.Size, src.Rank())
	for axis := range radius {
		radius[axis] = 1
	}
	r := neighborhood.New(src, region, neighborhood.Rectangle(radius), neighborhood.Constant[int64](0))
	for center, neighbors := range r.All() {
		var sum int64
		for px := range neighbors {
			sum += px.Get()
		}
		dst.Set(center, sum)
	}
}

func TestParallelizeMatchesSequential(t *testing.T) {
	extent := grid.MakeSize(37, 23)
	src := image.New[int64](extent)
	for i := range src.Flat() {
		src.Flat()[i] = int64(i * 31 % 97)
	}

	sequential := image.New[int64](extent)
	boxSum(src, sequential, src.Region())

	for _, pieces := range []int{1, 2, 3, 8, 64} {
		parallel := image.New[int64](extent)
		executor := New()
		executor.Parallelize(pieces, src.Region(), func(sub grid.Region) {
			boxSum(src, parallel, sub)
		})
		require.Equal(t, sequential.Flat(), parallel.Flat(), "pieces=%d", pieces)
	}
}

func TestParallelizeCoversRegionOnce(t *testing.T) {
	extent := grid.MakeSize(16, 16, 4)
	counts := image.New[int64](extent)
	flat := counts.Flat()

	executor := New()
	executor.Parallelize(-1, counts.Region(), func(sub grid.Region) {
		for idx := range sub.Iter() {
			// Each flat position is owned by exactly one sub-region, so
			// there is no racing increment here.
			flat[counts.FlatIndex(idx)]++
		}
	})
	for i, count := range flat {
		require.Equal(t, int64(1), count, "flat position %d", i)
	}
}

func TestParallelizeDisabledRunsInline(t *testing.T) {
	executor := New()
	executor.SetMaxParallelism(0)
	require.Equal(t, 0, executor.MaxParallelism())

	var calls atomic.Int32
	region := grid.MakeRegion(grid.MakeIndex(0, 0), grid.MakeSize(8, 8))
	executor.Parallelize(4, region, func(sub grid.Region) {
		calls.Add(1)
	})
	require.Equal(t, int32(4), calls.Load())
}

func TestParallelizeTinyRegion(t *testing.T) {
	executor := New()
	single := grid.MakeRegion(grid.MakeIndex(2, 2), grid.MakeSize(1, 1))
	var calls atomic.Int32
	executor.Parallelize(16, single, func(sub grid.Region) {
		calls.Add(1)
		require.Equal(t, single, sub)
	})
	require.Equal(t, int32(1), calls.Load(), "unsplittable region yields one worker")
}
