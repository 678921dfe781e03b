// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise (Hadamard) product, transpose, scalar scaling, row/column
// marginals and the Kronecker product. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Notes:
//   - Every kernel flattens its operands once (no-copy for *Dense) and walks
//     the flat buffers in a fixed order, so results are bitwise reproducible.
//   - Inputs are never mutated; a fresh *Dense is returned.

package matrix

import "fmt"

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opHadamard  = "Hadamard"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opKron      = "Kron"
	opKronPower = "KronPower"
	opSums      = "Sums"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Hadamard computes the element-wise product out[i,j] = a[i,j]·b[i,j].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (from ValidateSameShape).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Hadamard(a, b Matrix) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	fa, err := flatten(a)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	fb, err := flatten(b)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	out := make([]float64, len(fa))
	var k int
	for k = range fa {
		out[k] = fa[k] * fb[k]
	}

	return newDenseRaw(a.Rows(), a.Cols(), out), nil
}

// Transpose returns mᵀ.
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	f, err := flatten(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var (
		r, c = m.Rows(), m.Cols()
		out  = make([]float64, r*c)
		i, j int
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out[j*r+i] = f[i*c+j]
		}
	}

	return newDenseRaw(c, r, out), nil
}

// Scale returns alpha·m.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	f, err := flatten(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out := make([]float64, len(f))
	var k int
	for k = range f {
		out[k] = alpha * f[k]
	}

	return newDenseRaw(m.Rows(), m.Cols(), out), nil
}

// Sums returns the row marginals, the column marginals and the total mass of m
// in one pass.
//
// Complexity: O(r*c) time, O(r+c) space.
func Sums(m Matrix) (rows, cols []float64, total float64, err error) {
	if err = ValidateNotNil(m); err != nil {
		return nil, nil, 0, matrixErrorf(opSums, err)
	}
	f, err := flatten(m)
	if err != nil {
		return nil, nil, 0, matrixErrorf(opSums, err)
	}
	var (
		r, c = m.Rows(), m.Cols()
		i, j int
		v    float64
	)
	rows = make([]float64, r)
	cols = make([]float64, c)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = f[i*c+j]
			rows[i] += v
			cols[j] += v
			total += v
		}
	}

	return rows, cols, total, nil
}

// Kron computes the Kronecker product a ⊗ b.
//
// Layout:
//
//	(a⊗b)[i·rb + k, j·cb + l] = a[i,j]·b[k,l]
//
// i.e. the left operand indexes the most significant digit of the row and
// column index (see Shape for the matching mixed-radix arithmetic).
//
// Errors:
//   - ErrNilMatrix for nil operands; ErrOverflow when the result is not addressable.
//
// Complexity:
//   - Time O(ra·ca·rb·cb), Space O(ra·ca·rb·cb).
func Kron(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	fa, err := flatten(a)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	fb, err := flatten(b)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	var (
		ra, ca = a.Rows(), a.Cols()
		rb, cb = b.Rows(), b.Cols()
	)
	res, err := NewDense(ra*rb, ca*cb)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	var (
		i, j, k, l int
		aij        float64
		cols       = ca * cb
	)
	for i = 0; i < ra; i++ {
		for j = 0; j < ca; j++ {
			aij = fa[i*ca+j]
			if aij == 0 {
				continue // block stays zero
			}
			for k = 0; k < rb; k++ {
				for l = 0; l < cb; l++ {
					res.data[(i*rb+k)*cols+j*cb+l] = aij * fb[k*cb+l]
				}
			}
		}
	}

	return res, nil
}

// KronPower computes the n-fold Kronecker power m^{⊗n} (n ≥ 1).
//
// Memory ceiling: the result has Rows()^n × Cols()^n entries; ErrOverflow is
// returned before allocation when that does not fit in an int.
//
// Complexity:
//   - Time O((r·c)^n), Space O((r·c)^n).
func KronPower(m Matrix, n int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opKronPower, err)
	}
	if n < 1 {
		return nil, matrixErrorf(opKronPower, ErrInvalidDimensions)
	}
	if _, err := PowerShape(m.Rows()*m.Cols(), n).Size(); err != nil {
		return nil, matrixErrorf(opKronPower, err)
	}
	f, err := flatten(m)
	if err != nil {
		return nil, matrixErrorf(opKronPower, err)
	}
	acc := newDenseRaw(m.Rows(), m.Cols(), append([]float64(nil), f...))
	var k int
	for k = 1; k < n; k++ {
		if acc, err = Kron(acc, m); err != nil {
			return nil, matrixErrorf(opKronPower, err)
		}
	}

	return acc, nil
}
