// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package image holds Image, a generic N-dimensional pixel buffer with
// precomputed strided addressing.
//
// Pixels live in one flat slice laid out with axis 0 changing fastest: the
// offset table (per-axis strides) maps an Index to a flat buffer position
// with a single dot product. The table is derived from the extent alone and
// is shared read-only by every iterator over the image, so concurrent
// workers need no synchronization to address pixels.
//
// Indices are zero-based buffer coordinates: callers working in a shifted
// region coordinate space normalize (subtract the buffer start) before
// addressing.
package image

import (
	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"

	"github.com/gomlx/ndimage/grid"
)

// Pixel constrains the element types an Image can store. Any fixed-size
// integer or float works; float16 values (e.g. github.com/x448/float16,
// an uint16-based representation) are admitted through their underlying
// integer type.
type Pixel interface {
	constraints.Integer | constraints.Float
}

// Image is an N-dimensional pixel buffer of element type T.
//
// The zero value is not usable: create images with New or FromFlat. Images
// own their flat buffer; the extent and offset table are immutable after
// construction (resizing means creating a new Image).
type Image[T Pixel] struct {
	extent grid.Size
	flat   []T

	// table[i] is the flat-buffer stride of axis i: table[0] == 1 and
	// table[i] == table[i-1]*extent[i-1]. Derived from extent only.
	table []int
}

// New returns an Image of the given extent with all pixels zero.
// It panics if the extent has rank 0.
func New[T Pixel](extent grid.Size) *Image[T] {
	if extent.Rank() == 0 {
		exceptions.Panicf("image.New: extent must have rank >= 1")
	}
	return &Image[T]{
		extent: extent.Clone(),
		flat:   make([]T, extent.NumberOfPixels()),
		table:  offsetTable(extent),
	}
}

// FromFlat returns an Image of the given extent wrapping flat as its pixel
// buffer (taking ownership, no copy). It panics if len(flat) doesn't match
// the extent's pixel count.
func FromFlat[T Pixel](extent grid.Size, flat []T) *Image[T] {
	if extent.Rank() == 0 {
		exceptions.Panicf("image.FromFlat: extent must have rank >= 1")
	}
	if int64(len(flat)) != extent.NumberOfPixels() {
		exceptions.Panicf("image.FromFlat: buffer has %d elements, extent %s needs %d",
			len(flat), extent, extent.NumberOfPixels())
	}
	return &Image[T]{
		extent: extent.Clone(),
		flat:   flat,
		table:  offsetTable(extent),
	}
}

func offsetTable(extent grid.Size) []int {
	table := make([]int, extent.Rank())
	stride := 1
	for axis, dim := range extent {
		table[axis] = stride
		stride *= dim
	}
	return table
}

// Rank returns the number of axes.
func (img *Image[T]) Rank() int { return len(img.extent) }

// Extent returns the image size per axis. The returned slice is owned by
// the image: don't modify it.
func (img *Image[T]) Extent() grid.Size { return img.extent }

// Region returns the region covered by the buffer in its own coordinates:
// start at the origin, extent the image extent.
func (img *Image[T]) Region() grid.Region { return grid.OfSize(img.extent) }

// Flat returns the underlying pixel buffer, laid out with axis 0 fastest.
// It is the image's own storage, not a copy.
func (img *Image[T]) Flat() []T { return img.flat }

// OffsetTable returns the per-axis flat-buffer strides. Shared read-only;
// don't modify.
func (img *Image[T]) OffsetTable() []int { return img.table }

// FlatIndex maps a zero-based buffer Index to its position in Flat(). This
// is the hot path of every filter: it allocates nothing and its only
// branches are the axis loop. It performs no bounds checking -- combining
// it with out-of-range indices is the job of the boundary policies in
// package neighborhood.
//
// FlatIndex is linear: FlatIndex(a.Add(b)) == FlatIndex(a)+FlatIndex(b),
// interpreting b as an offset, which is what lets neighborhood iteration
// precompute per-offset deltas once and reuse them for every center.
func (img *Image[T]) FlatIndex(index grid.Index) int {
	flat := 0
	for axis, value := range index {
		flat += value * img.table[axis]
	}
	return flat
}

// Get returns the pixel at the given zero-based buffer index, which must be
// inside the buffer region.
func (img *Image[T]) Get(index grid.Index) T {
	return img.flat[img.FlatIndex(index)]
}

// Set writes the pixel at the given zero-based buffer index, which must be
// inside the buffer region.
func (img *Image[T]) Set(index grid.Index, value T) {
	img.flat[img.FlatIndex(index)] = value
}
