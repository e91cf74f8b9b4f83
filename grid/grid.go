// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package grid defines the integer coordinate types used to address
// N-dimensional pixel buffers: Index, Size and Offset, plus Region, an
// axis-aligned half-open box, and Split, a deterministic partitioner of
// regions for data-parallel execution.
//
// All types share a rank (the number of axes), fixed when the value is
// created. Go has no compile-time fixed-length generic arrays, so the rank
// is a runtime property: every operation combining two values validates
// that their ranks agree and panics (see package
// github.com/gomlx/exceptions) when they don't. Rank mismatches are
// programming errors, never data errors, so they fail fast instead of
// returning an error value.
//
// ## Glossary
//
//   - Rank: number of axes of an Index, Size, Offset or Region.
//   - Index: integer coordinate identifying one pixel.
//   - Size: non-negative extent per axis.
//   - Offset: directed displacement between two Indices.
//   - Region: the half-open box [Start[i], Start[i]+Extent[i]) per axis i.
package grid

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
)

// Index is an N-dimensional integer coordinate identifying one pixel.
// It is a plain value type: copy with Clone if the original may change.
type Index []int

// Size is a non-negative extent per axis.
type Size []int

// Offset is a directed integer displacement between two Indices.
type Offset []int

// Ranked is implemented by anything with a fixed number of axes:
// Index, Size, Offset and Region.
type Ranked interface {
	Rank() int
}

// MakeIndex returns an Index with the given coordinates.
func MakeIndex(coordinates ...int) Index {
	return slices.Clone(coordinates)
}

// MakeSize returns a Size with the given extents.
// It panics if any extent is negative: a zero extent is valid (it makes any
// enclosing Region empty), a negative one never is.
func MakeSize(extents ...int) Size {
	for _, extent := range extents {
		if extent < 0 {
			exceptions.Panicf("grid.MakeSize(%v): extents must be non-negative", extents)
		}
	}
	return slices.Clone(extents)
}

// MakeOffset returns an Offset with the given per-axis displacements.
func MakeOffset(displacements ...int) Offset {
	return slices.Clone(displacements)
}

// Zeros returns the origin Index of the given rank.
func Zeros(rank int) Index {
	if rank < 0 {
		exceptions.Panicf("grid.Zeros(%d): rank must be non-negative", rank)
	}
	return make(Index, rank)
}

// Rank returns the number of axes.
func (idx Index) Rank() int { return len(idx) }

// Rank returns the number of axes.
func (s Size) Rank() int { return len(s) }

// Rank returns the number of axes.
func (o Offset) Rank() int { return len(o) }

// Clone returns an independent copy.
func (idx Index) Clone() Index { return slices.Clone(idx) }

// Clone returns an independent copy.
func (s Size) Clone() Size { return slices.Clone(s) }

// Clone returns an independent copy.
func (o Offset) Clone() Offset { return slices.Clone(o) }

// Add returns a new Index displaced by the given offset.
// It panics if the ranks differ.
func (idx Index) Add(offset Offset) Index {
	AssertSameRank(idx, offset)
	result := make(Index, len(idx))
	for axis, value := range idx {
		result[axis] = value + offset[axis]
	}
	return result
}

// AddInPlace displaces idx by the given offset without allocating.
// It panics if the ranks differ.
func (idx Index) AddInPlace(offset Offset) {
	AssertSameRank(idx, offset)
	for axis := range idx {
		idx[axis] += offset[axis]
	}
}

// Sub returns the Offset that displaces other onto idx, that is
// idx == other.Add(idx.Sub(other)). It panics if the ranks differ.
func (idx Index) Sub(other Index) Offset {
	AssertSameRank(idx, other)
	result := make(Offset, len(idx))
	for axis, value := range idx {
		result[axis] = value - other[axis]
	}
	return result
}

// Equal compares two indices component-wise. Indices of different ranks are
// never equal.
func (idx Index) Equal(other Index) bool {
	return slices.Equal(idx, other)
}

// Equal compares two sizes component-wise.
func (s Size) Equal(other Size) bool {
	return slices.Equal(s, other)
}

// Equal compares two offsets component-wise.
func (o Offset) Equal(other Offset) bool {
	return slices.Equal(o, other)
}

// IsZero returns whether any axis has extent zero, in which case a Region of
// this size contains no pixels.
func (s Size) IsZero() bool {
	for _, extent := range s {
		if extent == 0 {
			return true
		}
	}
	return len(s) == 0
}

// NumberOfPixels returns the product of all extents. It accumulates in 64
// bits so counts of large volumetric images don't silently overflow on
// 32-bit builds.
func (s Size) NumberOfPixels() int64 {
	if len(s) == 0 {
		return 0
	}
	count := int64(1)
	for _, extent := range s {
		count *= int64(extent)
	}
	return count
}

// String implements fmt.Stringer.
func (idx Index) String() string { return formatVector("(", ")", idx) }

// String implements fmt.Stringer.
func (s Size) String() string { return formatVector("[", "]", s) }

// String implements fmt.Stringer.
func (o Offset) String() string { return formatVector("{", "}", o) }

func formatVector(opening, closing string, values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return opening + strings.Join(parts, ",") + closing
}
