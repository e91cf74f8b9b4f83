// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/gomlx/ndimage/grid"
)

func TestOffsetTable(t *testing.T) {
	// End-to-end scenario: a 50x50x50 volume has table [1, 50, 2500] and
	// index (1,1,1) sits at flat position 2551.
	img := New[float32](grid.MakeSize(50, 50, 50))
	require.Equal(t, []int{1, 50, 2500}, img.OffsetTable())
	require.Equal(t, 2551, img.FlatIndex(grid.MakeIndex(1, 1, 1)))
	require.Equal(t, 0, img.FlatIndex(grid.MakeIndex(0, 0, 0)))
	require.Len(t, img.Flat(), 125_000)
}

func TestFlatIndexLinearity(t *testing.T) {
	img := New[uint8](grid.MakeSize(7, 11, 13))
	indices := []grid.Index{
		grid.MakeIndex(0, 0, 0),
		grid.MakeIndex(1, 2, 3),
		grid.MakeIndex(6, 10, 12),
		grid.MakeIndex(3, 0, 5),
	}
	for _, a := range indices {
		for _, b := range indices {
			sum := a.Add(grid.Offset(b))
			assert.Equal(t, img.FlatIndex(a)+img.FlatIndex(b), img.FlatIndex(sum),
				"FlatIndex must be linear: a=%s b=%s", a, b)
		}
	}
}

func TestFlatLayoutMatchesRegionIter(t *testing.T) {
	// Region iteration order (axis 0 fastest) walks the flat buffer
	// sequentially.
	img := New[int32](grid.MakeSize(4, 3, 2))
	wantFlat := 0
	for idx := range img.Region().Iter() {
		require.Equal(t, wantFlat, img.FlatIndex(idx))
		wantFlat++
	}
	require.Equal(t, len(img.Flat()), wantFlat)
}

func TestGetSet(t *testing.T) {
	img := New[float64](grid.MakeSize(3, 3))
	idx := grid.MakeIndex(2, 1)
	img.Set(idx, 3.25)
	require.Equal(t, 3.25, img.Get(idx))
	require.Equal(t, 3.25, img.Flat()[5])
}

func TestFromFlat(t *testing.T) {
	flat := []int16{0, 1, 2, 3, 4, 5}
	img := FromFlat(grid.MakeSize(3, 2), flat)
	require.Equal(t, int16(5), img.Get(grid.MakeIndex(2, 1)))

	// The buffer is wrapped, not copied.
	flat[0] = 42
	require.Equal(t, int16(42), img.Get(grid.MakeIndex(0, 0)))

	require.Panics(t, func() { FromFlat(grid.MakeSize(3, 3), flat) })
	require.Panics(t, func() { New[int16](grid.MakeSize()) })
}

func TestFloat16Pixels(t *testing.T) {
	// float16.Float16 is a uint16-based type, so it stores like any other
	// integer pixel; conversion happens at the edges.
	img := New[float16.Float16](grid.MakeSize(4, 4))
	idx := grid.MakeIndex(1, 3)
	img.Set(idx, float16.Fromfloat32(0.5))
	require.Equal(t, float32(0.5), img.Get(idx).Float32())
}

func BenchmarkFlatIndex(b *testing.B) {
	img := New[float32](grid.MakeSize(256, 256, 64))
	idx := grid.MakeIndex(131, 17, 33)
	sum := 0
	for range b.N {
		sum += img.FlatIndex(idx)
	}
	_ = sum
}
