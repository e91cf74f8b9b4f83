// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package neighborhood

import (
	"iter"

	"github.com/gomlx/exceptions"

	"github.com/gomlx/ndimage/grid"
	"github.com/gomlx/ndimage/image"
)

// Range produces, for each center index of a traversal region, one lazy
// Pixel proxy per shape offset, resolving boundary accesses through its
// Policy.
//
// A Range is reusable: Centers, At and All return restartable sequences,
// each range over them starts a fresh traversal. Ranges are cheap value
// objects; parallel workers each build their own Range over their assigned
// sub-region (see package exec) and share only the image, whose offset
// table and buffer need no synchronization for disjoint writes.
type Range[T image.Pixel] struct {
	img       *image.Image[T]
	traversal grid.Region
	shape     *Shape
	policy    Policy[T]

	// region is what the policy considers "inside", fixed at construction.
	region grid.Region

	// deltas[k] is the flat-buffer displacement of shape offset k,
	// precomputed so interior centers address neighbors by one addition.
	deltas []int

	outside T
}

// New returns a Range traversing the centers of traversal over img, visiting
// shape's offsets around each center and resolving boundary accesses with
// policy.
//
// It panics if the ranks of img, traversal and shape disagree, if traversal
// is not contained in the image's buffer region, or if the policy rejects
// the image (e.g. Periodic over a zero-extent axis).
func New[T image.Pixel](img *image.Image[T], traversal grid.Region, shape *Shape, policy Policy[T]) *Range[T] {
	grid.AssertSameRank(traversal, img.Region())
	grid.AssertRank(img.Rank(), shape)
	if !img.Region().ContainsRegion(traversal) {
		exceptions.Panicf("neighborhood.New: traversal region %s exceeds the buffer region %s",
			traversal, img.Region())
	}
	deltas := make([]int, shape.Len())
	table := img.OffsetTable()
	for k, offset := range shape.Offsets() {
		for axis, value := range offset {
			deltas[k] += value * table[axis]
		}
	}
	return &Range[T]{
		img:       img,
		traversal: traversal.Clone(),
		shape:     shape,
		policy:    policy,
		region:    policy.bind(img),
		deltas:    deltas,
		outside:   policy.outsideValue(),
	}
}

// Traversal returns the region whose indices are visited as centers.
func (r *Range[T]) Traversal() grid.Region { return r.traversal }

// Shape returns the neighborhood shape visited around each center.
func (r *Range[T]) Shape() *Shape { return r.shape }

// Centers yields the center indices of the traversal region in buffer
// layout order (axis 0 fastest). The yielded Index is owned by the
// iterator: Clone it before keeping it past the current step.
func (r *Range[T]) Centers() iter.Seq[grid.Index] {
	return r.traversal.Iter()
}

// At yields one Pixel proxy per shape offset around center, in the shape's
// declared offset order. Each proxy is valid for the iteration step that
// produced it; don't store proxies past their step.
//
// When the center's whole neighborhood provably lies inside the valid
// region -- one comparison per axis against the shape's extremal offsets,
// amortized over all offsets of the center -- proxies are produced by
// direct precomputed-delta addressing with no per-offset bounds handling.
func (r *Range[T]) At(center grid.Index) iter.Seq[Pixel[T]] {
	return func(yield func(Pixel[T]) bool) {
		buf := r.img.Flat()
		if r.Interior(center) {
			base := r.img.FlatIndex(center)
			for _, delta := range r.deltas {
				if !yield(Pixel[T]{buf: buf, flat: base + delta}) {
					return
				}
			}
			return
		}
		neighbor := make(grid.Index, len(center))
		for _, offset := range r.shape.Offsets() {
			for axis, value := range center {
				neighbor[axis] = value + offset[axis]
			}
			flat, outside := r.policy.resolve(r.img, neighbor)
			if !yield(Pixel[T]{buf: buf, flat: flat, isOutside: outside, outside: r.outside}) {
				return
			}
		}
	}
}

// All yields every (center, neighborhood) pair of the traversal region:
// centers in buffer layout order, neighbors per At. The center Index is
// owned by the iterator.
func (r *Range[T]) All() iter.Seq2[grid.Index, iter.Seq[Pixel[T]]] {
	return func(yield func(grid.Index, iter.Seq[Pixel[T]]) bool) {
		for center := range r.traversal.Iter() {
			if !yield(center, r.At(center)) {
				return
			}
		}
	}
}

// Interior reports whether center's entire neighborhood lies inside the
// policy's valid region, i.e. whether At(center) takes the fast path.
func (r *Range[T]) Interior(center grid.Index) bool {
	inside := true
	for axis, value := range center {
		inside = inside && value+r.shape.min[axis] >= r.region.Start[axis] &&
			value+r.shape.max[axis] < r.region.Start[axis]+r.region.Extent[axis]
	}
	return inside
}

// Pixel is the transient access proxy to one neighbor of the current
// center. It exposes exactly Get and Set; under the constant policies an
// out-of-region Get returns the configured constant and Set is a no-op.
//
// A Pixel is produced lazily per (center, offset) pair and is only
// meaningful during the iteration step that produced it.
type Pixel[T image.Pixel] struct {
	buf  []T
	flat int

	isOutside bool
	outside   T
}

// Get returns the neighbor's value, or the policy's constant when the
// access resolved outside the valid region.
func (p Pixel[T]) Get() T {
	if p.isOutside {
		return p.outside
	}
	return p.buf[p.flat]
}

// Set writes the neighbor's value. Writes that resolved outside the valid
// region are silently discarded.
func (p Pixel[T]) Set(value T) {
	if p.isOutside {
		return
	}
	p.buf[p.flat] = value
}
