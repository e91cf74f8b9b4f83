// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package grid

import (
	"fmt"
	"iter"
)

// Region is an axis-aligned box in N-dimensional integer coordinate space,
// covering the half-open interval [Start[i], Start[i]+Extent[i]) on each
// axis i.
//
// A Region with extent zero on any axis is empty: it contains no indices
// and intersects nothing. Regions are cheap value objects; mutating
// operations (Crop) are documented as such, everything else returns new
// values.
type Region struct {
	Start  Index
	Extent Size
}

// MakeRegion returns the Region starting at start and extending extent
// pixels per axis. It panics if the ranks differ.
func MakeRegion(start Index, extent Size) Region {
	AssertSameRank(start, extent)
	return Region{Start: start.Clone(), Extent: extent.Clone()}
}

// OfSize returns the Region of the given extent starting at the origin.
// This is the region covering a pixel buffer in its own coordinates.
func OfSize(extent Size) Region {
	return Region{Start: Zeros(extent.Rank()), Extent: extent.Clone()}
}

// Rank returns the number of axes.
func (r Region) Rank() int { return len(r.Start) }

// IsEmpty returns whether the region contains no pixels.
func (r Region) IsEmpty() bool { return r.Extent.IsZero() }

// NumberOfPixels returns the number of indices contained in the region,
// 0 for an empty region.
func (r Region) NumberOfPixels() int64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Extent.NumberOfPixels()
}

// End returns the exclusive upper corner of the region: the component-wise
// Start+Extent. No pixel of the region has any coordinate at or beyond End.
func (r Region) End() Index {
	end := make(Index, len(r.Start))
	for axis, start := range r.Start {
		end[axis] = start + r.Extent[axis]
	}
	return end
}

// Clone returns an independent copy of the region.
func (r Region) Clone() Region {
	return Region{Start: r.Start.Clone(), Extent: r.Extent.Clone()}
}

// Equal compares two regions: they are equal iff start and extent match
// component-wise.
func (r Region) Equal(other Region) bool {
	return r.Start.Equal(other.Start) && r.Extent.Equal(other.Extent)
}

// Contains returns whether the index falls inside the region, that is
// Start[i] <= index[i] < Start[i]+Extent[i] for every axis i.
// It panics if the ranks differ.
func (r Region) Contains(index Index) bool {
	AssertSameRank(r, index)
	// Complete the loop instead of returning early: branch-predictable for
	// the common all-inside case on small ranks.
	inside := true
	for axis, value := range index {
		inside = inside && value >= r.Start[axis] && value < r.Start[axis]+r.Extent[axis]
	}
	return inside
}

// ContainsRegion returns whether every index of other falls inside r.
// An empty other is contained in anything of the same rank.
func (r Region) ContainsRegion(other Region) bool {
	AssertSameRank(r, other)
	if other.IsEmpty() {
		return true
	}
	for axis := range r.Start {
		if other.Start[axis] < r.Start[axis] ||
			other.Start[axis]+other.Extent[axis] > r.Start[axis]+r.Extent[axis] {
			return false
		}
	}
	return true
}

// Intersects returns whether the two regions share at least one index.
// Empty regions never intersect anything. It panics if the ranks differ.
func (r Region) Intersects(other Region) bool {
	AssertSameRank(r, other)
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	for axis := range r.Start {
		if r.Start[axis]+r.Extent[axis] <= other.Start[axis] ||
			other.Start[axis]+other.Extent[axis] <= r.Start[axis] {
			return false
		}
	}
	return true
}

// Crop shrinks the region in place to its intersection with other and
// returns whether the result is non-empty. When the regions don't
// intersect, the receiver becomes the canonical empty region: extent zero
// on every axis (the start is unspecified beyond being within both former
// spans).
func (r *Region) Crop(other Region) bool {
	AssertSameRank(*r, other)
	for axis := range r.Start {
		start := max(r.Start[axis], other.Start[axis])
		end := min(r.Start[axis]+r.Extent[axis], other.Start[axis]+other.Extent[axis])
		if end <= start {
			// No intersection: canonical empty region.
			for i := range r.Extent {
				r.Extent[i] = 0
			}
			return false
		}
		r.Start[axis] = start
		r.Extent[axis] = end - start
	}
	return true
}

// Intersection returns the intersection of the two regions as a new value,
// without mutating either. The result is the canonical empty region when
// they don't intersect.
func (r Region) Intersection(other Region) Region {
	result := r.Clone()
	result.Crop(other)
	return result
}

// String implements fmt.Stringer.
func (r Region) String() string {
	return fmt.Sprintf("Region{start=%s, extent=%s}", r.Start, r.Extent)
}

// Iter iterates over every index of the region in traversal order: axis 0
// changes fastest, matching the buffer layout of package image so
// consecutive indices address consecutive buffer positions.
//
// To avoid allocating per step, the yielded Index is owned by the iterator:
// Clone it before keeping it past the current step. The returned sequence
// is restartable, each range over it starts from the beginning.
func (r Region) Iter() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		if r.IsEmpty() {
			return
		}
		rank := r.Rank()
		current := r.Start.Clone()
		for {
			if !yield(current) {
				return
			}
			// N-dimensional counter, axis 0 fastest.
			axis := 0
			for ; axis < rank; axis++ {
				current[axis]++
				if current[axis] < r.Start[axis]+r.Extent[axis] {
					break
				}
				// This axis overflowed: reset and carry to the next one.
				current[axis] = r.Start[axis]
			}
			if axis == rank {
				return
			}
		}
	}
}
