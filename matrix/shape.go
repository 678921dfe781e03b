// SPDX-License-Identifier: MIT

// Package matrix - mixed-radix index arithmetic for tensor-structured data.
//
// Purpose:
//   - Map a tuple of sub-indices (i_0, …, i_{n-1}) over axes of sizes
//     (d_0, …, d_{n-1}) to a flat offset and back, with the first axis as the
//     most significant digit. This is the exact ordering produced by Kron and
//     KronPower, so Flat/Unflat address Kronecker blocks directly.
//   - Keep repeated-game expansions as index arithmetic instead of nested
//     literal arrays.
//
// Complexity quicksheet:
//   - Size: O(n); Flat: O(n); Unflat: O(n).

package matrix

import (
	"fmt"
	"math"
)

// Shape lists axis sizes, most significant axis first.
type Shape []int

// PowerShape returns the shape of n axes of equal size dim.
func PowerShape(dim, n int) Shape {
	s := make(Shape, n)
	var k int
	for k = range s {
		s[k] = dim
	}

	return s
}

// Size returns the product of all axis sizes.
//
// Errors:
//   - ErrInvalidDimensions for an empty shape or a non-positive axis.
//   - ErrOverflow when the product does not fit in an int.
func (s Shape) Size() (int, error) {
	if len(s) == 0 {
		return 0, ErrInvalidDimensions
	}
	var (
		size = 1
		d    int
	)
	for _, d = range s {
		if d <= 0 {
			return 0, ErrInvalidDimensions
		}
		if size > math.MaxInt/d {
			return 0, ErrOverflow
		}
		size *= d
	}

	return size, nil
}

// Flat maps a sub-index tuple to its flat offset.
//
// Errors:
//   - ErrDimensionMismatch when len(idx) != len(s).
//   - ErrOutOfRange when some idx[k] ∉ [0, s[k]).
func (s Shape) Flat(idx []int) (int, error) {
	if len(idx) != len(s) {
		return 0, ErrDimensionMismatch
	}
	var (
		flat int
		k    int
	)
	for k = range s {
		if idx[k] < 0 || idx[k] >= s[k] {
			return 0, fmt.Errorf("Shape.Flat(axis %d = %d): %w", k, idx[k], ErrOutOfRange)
		}
		flat = flat*s[k] + idx[k]
	}

	return flat, nil
}

// Unflat decomposes a flat offset into out (len(out) must equal len(s)).
//
// Errors:
//   - ErrDimensionMismatch when len(out) != len(s).
//   - ErrOutOfRange when flat ∉ [0, Size()).
func (s Shape) Unflat(flat int, out []int) error {
	if len(out) != len(s) {
		return ErrDimensionMismatch
	}
	if flat < 0 {
		return fmt.Errorf("Shape.Unflat(%d): %w", flat, ErrOutOfRange)
	}
	var k int
	for k = len(s) - 1; k >= 0; k-- {
		if s[k] <= 0 {
			return ErrInvalidDimensions
		}
		out[k] = flat % s[k]
		flat /= s[k]
	}
	if flat != 0 {
		return fmt.Errorf("Shape.Unflat: %w", ErrOutOfRange)
	}

	return nil
}
