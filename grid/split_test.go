// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitSinglePiece(t *testing.T) {
	r := MakeRegion(MakeIndex(3, 4), MakeSize(10, 20))
	pieces := Split(1, r)
	require.Equal(t, []Region{r}, pieces)

	// The returned region is a copy, not an alias.
	pieces[0].Start[0] = 99
	require.Equal(t, 3, r.Start[0])
}

func TestSplitLongestAxisFirst(t *testing.T) {
	// End-to-end scenario: Split(4, (0,0)+(100,50)) cuts along axis 0,
	// producing four (25,50) pieces.
	r := MakeRegion(MakeIndex(0, 0), MakeSize(100, 50))
	pieces := Split(4, r)
	want := []Region{
		MakeRegion(MakeIndex(0, 0), MakeSize(25, 50)),
		MakeRegion(MakeIndex(25, 0), MakeSize(25, 50)),
		MakeRegion(MakeIndex(50, 0), MakeSize(25, 50)),
		MakeRegion(MakeIndex(75, 0), MakeSize(25, 50)),
	}
	require.Equal(t, want, pieces)
}

func TestSplitExactCover(t *testing.T) {
	r := MakeRegion(MakeIndex(-3, 7, 2), MakeSize(13, 5, 9))
	for _, numPieces := range []int{1, 2, 3, 4, 7, 16, 100} {
		pieces := Split(numPieces, r)
		require.LessOrEqual(t, len(pieces), numPieces)

		// Pixel counts add up.
		var total int64
		for _, piece := range pieces {
			total += piece.NumberOfPixels()
		}
		require.Equal(t, r.NumberOfPixels(), total, "Split(%d, %s)", numPieces, r)

		// Every index of r is owned by exactly one piece.
		for idx := range r.Iter() {
			owners := 0
			for _, piece := range pieces {
				if piece.Contains(idx) {
					owners++
				}
			}
			require.Equal(t, 1, owners, "index %s of %s, Split(%d)", idx, r, numPieces)
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	r := MakeRegion(MakeIndex(0, 0, 0), MakeSize(31, 17, 8))
	first := Split(6, r)
	second := Split(6, r)
	require.Equal(t, first, second)
}

func TestSplitDegenerate(t *testing.T) {
	// A region with extent 1 everywhere yields one piece regardless of the
	// request.
	single := MakeRegion(MakeIndex(5, 5), MakeSize(1, 1))
	require.Equal(t, []Region{single}, Split(64, single))

	// More pieces than pixels: every pixel becomes its own piece, no more.
	tiny := MakeRegion(MakeIndex(0), MakeSize(3))
	pieces := Split(10, tiny)
	require.Len(t, pieces, 3)

	// Empty regions are returned as-is.
	empty := MakeRegion(MakeIndex(0, 0), MakeSize(0, 4))
	require.Equal(t, []Region{empty}, Split(4, empty))

	require.Panics(t, func() { Split(0, single) })
}

func TestSplitTiesPickLowestAxis(t *testing.T) {
	r := MakeRegion(MakeIndex(0, 0), MakeSize(8, 8))
	pieces := Split(2, r)
	want := []Region{
		MakeRegion(MakeIndex(0, 0), MakeSize(4, 8)),
		MakeRegion(MakeIndex(4, 0), MakeSize(4, 8)),
	}
	require.Equal(t, want, pieces)
}
