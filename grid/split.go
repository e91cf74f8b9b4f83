// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package grid

import (
	"github.com/gomlx/exceptions"
)

// Split partitions the region into at most pieces disjoint sub-regions
// whose union reconstructs region exactly. It is the decomposition step of
// data-parallel filtering: one sub-region per worker, all workers writing
// through the same buffer to non-overlapping addresses.
//
// The split is deterministic: it recursively halves along the axis with the
// largest extent (the lowest such axis on ties), dividing the extent
// proportionally to the piece budget assigned to each half. Sub-regions
// come out ordered by ascending start along each split axis.
//
// When the region is too small to support the request (every axis extent
// 1, or fewer pixels than pieces along every splittable axis), fewer
// pieces than requested are returned; that is expected behavior, not an
// error. Split(1, r) always returns []Region{r}, as does splitting an
// empty region. It panics if pieces < 1.
func Split(pieces int, region Region) []Region {
	if pieces < 1 {
		exceptions.Panicf("grid.Split(%d, %s): pieces must be >= 1", pieces, region)
	}
	if pieces == 1 || region.IsEmpty() {
		return []Region{region.Clone()}
	}
	result := make([]Region, 0, pieces)
	return appendSplits(result, pieces, region.Clone())
}

// appendSplits recursively halves region, appending the final sub-regions
// to result. It owns region (callers pass a clone), so halving can slice
// it in place.
func appendSplits(result []Region, pieces int, region Region) []Region {
	if pieces == 1 {
		return append(result, region)
	}
	axis := widestAxis(region.Extent)
	if region.Extent[axis] < 2 {
		// Unsplittable: every axis has extent <= 1. Return what we have,
		// fewer pieces than requested.
		return append(result, region)
	}

	// Budget the pieces between the two halves and cut the extent
	// proportionally, so the halves end up with balanced pixels-per-piece.
	lowPieces := pieces / 2
	highPieces := pieces - lowPieces
	lowExtent := region.Extent[axis] * lowPieces / pieces
	if lowExtent == 0 {
		// More pieces than pixels along this axis: give the low half one
		// pixel and let recursion shed the excess budget.
		lowExtent = 1
	}

	low := region.Clone()
	low.Extent[axis] = lowExtent
	high := region
	high.Start[axis] += lowExtent
	high.Extent[axis] -= lowExtent

	result = appendSplits(result, lowPieces, low)
	return appendSplits(result, highPieces, high)
}

// widestAxis returns the lowest axis with the largest extent.
func widestAxis(extent Size) int {
	widest := 0
	for axis := 1; axis < len(extent); axis++ {
		if extent[axis] > extent[widest] {
			widest = axis
		}
	}
	return widest
}
