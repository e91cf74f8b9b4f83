// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package neighborhood

import (
	"github.com/gomlx/exceptions"

	"github.com/gomlx/ndimage/grid"
	"github.com/gomlx/ndimage/image"
)

// Policy resolves pixel accesses whose index may fall outside the valid
// region. It is a closed set of variants, selected once at Range
// construction -- the per-pixel hot path never switches on the policy kind,
// and interior centers bypass the policy entirely.
//
// Variants: NoBounds, Constant, ZeroFlux, Periodic, RegionalConstant.
type Policy[T image.Pixel] interface {
	// bind validates the policy against the image and returns the region
	// accesses are checked against. Called once per Range construction.
	bind(img *image.Image[T]) grid.Region

	// resolve maps an absolute buffer index, possibly outside the valid
	// region, to a flat buffer position. When outside is true the flat
	// result is meaningless: reads yield outsideValue and writes are
	// discarded.
	resolve(img *image.Image[T], index grid.Index) (flat int, outside bool)

	// outsideValue is the value produced by reads that resolve outside the
	// valid region. Only the constant variants return anything meaningful.
	outsideValue() T
}

// noBounds trusts the caller: every access is assumed to land inside the
// buffer. See NoBounds.
type noBounds[T image.Pixel] struct{}

// NoBounds returns the policy that performs no bounds handling at all.
// Use it only when the traversal provably keeps every neighborhood inside
// the buffer (interior-only passes); an out-of-buffer access under this
// policy corrupts memory or panics on the raw slice access.
func NoBounds[T image.Pixel]() Policy[T] { return noBounds[T]{} }

func (noBounds[T]) bind(img *image.Image[T]) grid.Region { return img.Region() }

func (noBounds[T]) resolve(img *image.Image[T], index grid.Index) (int, bool) {
	return img.FlatIndex(index), false
}

func (noBounds[T]) outsideValue() (zero T) { return }

// constant resolves out-of-buffer accesses to a fixed sentinel. See Constant.
type constant[T image.Pixel] struct {
	value T
}

// Constant returns the policy that reads the given value at any index
// outside the buffer region and silently discards writes there (a defined
// no-op, not an error).
func Constant[T image.Pixel](value T) Policy[T] { return constant[T]{value: value} }

func (constant[T]) bind(img *image.Image[T]) grid.Region { return img.Region() }

func (c constant[T]) resolve(img *image.Image[T], index grid.Index) (int, bool) {
	if !img.Region().Contains(index) {
		return 0, true
	}
	return img.FlatIndex(index), false
}

func (c constant[T]) outsideValue() T { return c.value }

// zeroFlux clamps out-of-buffer indices to the nearest valid pixel. See
// ZeroFlux.
type zeroFlux[T image.Pixel] struct{}

// ZeroFlux returns the replicate-boundary policy: an out-of-region index is
// clamped per axis to the nearest valid index, so reads beyond an edge
// repeat the edge pixel. The name comes from the zero-flux Neumann boundary
// condition this implements for difference operators.
func ZeroFlux[T image.Pixel]() Policy[T] { return zeroFlux[T]{} }

func (zeroFlux[T]) bind(img *image.Image[T]) grid.Region { return img.Region() }

func (zeroFlux[T]) resolve(img *image.Image[T], index grid.Index) (int, bool) {
	extent := img.Extent()
	table := img.OffsetTable()
	flat := 0
	for axis, value := range index {
		clamped := min(max(value, 0), extent[axis]-1)
		flat += clamped * table[axis]
	}
	return flat, false
}

func (zeroFlux[T]) outsideValue() (zero T) { return }

// periodic wraps out-of-buffer indices modulo the extent. See Periodic.
type periodic[T image.Pixel] struct{}

// Periodic returns the wrap-around boundary policy: an out-of-region index
// wraps modulo the buffer extent per axis, tiling the image over all of
// index space.
//
// Binding a periodic policy to an image with a zero-extent axis is a
// precondition violation (there is nothing to wrap onto); it panics at
// Range construction rather than dividing by zero per access.
func Periodic[T image.Pixel]() Policy[T] { return periodic[T]{} }

func (periodic[T]) bind(img *image.Image[T]) grid.Region {
	for axis, extent := range img.Extent() {
		if extent == 0 {
			exceptions.Panicf("neighborhood.Periodic: image axis %d has extent 0, cannot wrap", axis)
		}
	}
	return img.Region()
}

func (periodic[T]) resolve(img *image.Image[T], index grid.Index) (int, bool) {
	extent := img.Extent()
	table := img.OffsetTable()
	flat := 0
	for axis, value := range index {
		wrapped := value % extent[axis]
		if wrapped < 0 {
			wrapped += extent[axis]
		}
		flat += wrapped * table[axis]
	}
	return flat, false
}

func (periodic[T]) outsideValue() (zero T) { return }

// regionalConstant is like constant, but validity is an explicitly supplied
// sub-region of the buffer. See RegionalConstant.
type regionalConstant[T image.Pixel] struct {
	region grid.Region
	value  T
}

// RegionalConstant returns the policy that treats only the given sub-region
// of the buffer as valid: reads outside it yield value, writes outside it
// are discarded, even at indices that are perfectly valid buffer positions.
// This scopes a neighborhood's legality to a window smaller than the full
// image, e.g. masked or partially-computed areas.
//
// The region must be contained in the image's buffer region; binding panics
// otherwise.
func RegionalConstant[T image.Pixel](region grid.Region, value T) Policy[T] {
	return regionalConstant[T]{region: region.Clone(), value: value}
}

func (p regionalConstant[T]) bind(img *image.Image[T]) grid.Region {
	grid.AssertSameRank(p.region, img.Region())
	if !img.Region().ContainsRegion(p.region) {
		exceptions.Panicf("neighborhood.RegionalConstant: region %s exceeds the buffer region %s",
			p.region, img.Region())
	}
	return p.region
}

func (p regionalConstant[T]) resolve(img *image.Image[T], index grid.Index) (int, bool) {
	if !p.region.Contains(index) {
		return 0, true
	}
	return img.FlatIndex(index), false
}

func (p regionalConstant[T]) outsideValue() T { return p.value }
