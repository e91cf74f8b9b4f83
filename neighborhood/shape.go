// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package neighborhood provides shaped iteration over the pixels
// surrounding each center of a traversal region: the substrate of every
// stencil-style filter (morphology, convolution-like kernels, local
// statistics).
//
// A Shape lists the relative offsets visited around each center. A Range
// binds a shape to an image, a traversal region and a boundary Policy, then
// yields one lazy pixel proxy per (center, offset) pair. Accesses that land
// outside the valid region are resolved by the policy: returned as a
// constant, clamped, wrapped, or trusted (no bounds check).
//
// The per-offset work is kept minimal: flat-buffer deltas per shape offset
// are computed once at Range construction, and whether a center's whole
// neighborhood lies inside the valid region is decided once per center, so
// interior centers skip per-offset bounds handling entirely.
package neighborhood

import (
	"github.com/gomlx/exceptions"

	"github.com/gomlx/ndimage/grid"
)

// Shape is an ordered, immutable set of relative offsets defining which
// neighbors are visited around a center, and in which order. It may be
// non-rectangular ("shaped"): any offset list works, including ones that
// skip the center or visit distant pixels.
//
// A Shape is shared read-only by all ranges and proxies built from it.
type Shape struct {
	offsets []grid.Offset

	// Per-axis extremal offsets, precomputed for the interior test.
	min, max grid.Offset
}

// NewShape returns a Shape visiting the given offsets in the given order.
// It panics if offsets is empty or the offsets have mixed ranks.
func NewShape(offsets []grid.Offset) *Shape {
	if len(offsets) == 0 {
		exceptions.Panicf("neighborhood.NewShape: a shape needs at least one offset")
	}
	rank := offsets[0].Rank()
	cloned := make([]grid.Offset, len(offsets))
	minOffset := make(grid.Offset, rank)
	maxOffset := make(grid.Offset, rank)
	for i, offset := range offsets {
		grid.AssertSameRank(offsets[0], offset)
		cloned[i] = offset.Clone()
		for axis, value := range offset {
			if i == 0 || value < minOffset[axis] {
				minOffset[axis] = value
			}
			if i == 0 || value > maxOffset[axis] {
				maxOffset[axis] = value
			}
		}
	}
	return &Shape{offsets: cloned, min: minOffset, max: maxOffset}
}

// Rectangle returns the dense hyperrectangular shape spanning
// [-radius[i], +radius[i]] on each axis i, visited in traversal order
// (axis 0 fastest). A radius of all zeros yields the single center offset.
// It panics if the radius has rank 0.
func Rectangle(radius grid.Size) *Shape {
	if radius.Rank() == 0 {
		exceptions.Panicf("neighborhood.Rectangle: radius must have rank >= 1")
	}
	start := make(grid.Index, radius.Rank())
	extent := make(grid.Size, radius.Rank())
	for axis, r := range radius {
		start[axis] = -r
		extent[axis] = 2*r + 1
	}
	span := grid.MakeRegion(start, extent)
	offsets := make([]grid.Offset, 0, span.NumberOfPixels())
	for idx := range span.Iter() {
		offsets = append(offsets, grid.Offset(idx.Clone()))
	}
	return NewShape(offsets)
}

// Cross returns the axis-aligned cross shape: the center offset first, then
// for each axis in order the displacements -radius[axis]..+radius[axis]
// excluding zero, ascending. It panics if the radius has rank 0.
func Cross(radius grid.Size) *Shape {
	if radius.Rank() == 0 {
		exceptions.Panicf("neighborhood.Cross: radius must have rank >= 1")
	}
	rank := radius.Rank()
	offsets := []grid.Offset{make(grid.Offset, rank)}
	for axis, r := range radius {
		for displacement := -r; displacement <= r; displacement++ {
			if displacement == 0 {
				continue
			}
			offset := make(grid.Offset, rank)
			offset[axis] = displacement
			offsets = append(offsets, offset)
		}
	}
	return NewShape(offsets)
}

// Offsets returns the shape's offsets in visiting order. The slice and its
// elements are owned by the shape: read-only.
func (s *Shape) Offsets() []grid.Offset { return s.offsets }

// Rank returns the number of axes of the shape's offsets.
func (s *Shape) Rank() int { return s.offsets[0].Rank() }

// Len returns the number of offsets (neighbors visited per center).
func (s *Shape) Len() int { return len(s.offsets) }
