// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package grid

import (
	"fmt"

	"github.com/pkg/errors"
)

// CheckRank checks that the value has the given rank.
//
// It returns a descriptive error if it doesn't. See AssertRank for the
// panicking variant.
func CheckRank(want int, value Ranked) error {
	if value.Rank() != want {
		return errors.Errorf("value %v has rank %d, wanted %d", value, value.Rank(), want)
	}
	return nil
}

// CheckSameRank checks that the two values have the same rank.
func CheckSameRank(a, b Ranked) error {
	if a.Rank() != b.Rank() {
		return errors.Errorf("values %v (rank %d) and %v (rank %d) must have the same rank",
			a, a.Rank(), b, b.Rank())
	}
	return nil
}

// AssertRank checks that the value has the given rank. It panics if it
// doesn't.
func AssertRank(want int, value Ranked) {
	if err := CheckRank(want, value); err != nil {
		panic(fmt.Sprintf("grid.AssertRank(%d): %+v", want, err))
	}
}

// AssertSameRank checks that the two values have the same rank. It panics if
// they don't.
//
// This is the validation behind every binary operation in this package:
// combining values of different ranks is a programming error, so it fails
// fast rather than returning an error value.
func AssertSameRank(a, b Ranked) {
	if err := CheckSameRank(a, b); err != nil {
		panic(fmt.Sprintf("grid.AssertSameRank: %+v", err))
	}
}
