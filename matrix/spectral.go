// SPDX-License-Identifier: MIT

// Package matrix - spectral kernels and gonum interop.
//
// Purpose:
//   - Copy a Matrix into gonum's mat.Dense for factorizations the package does
//     not implement natively (SVD, Cholesky, inverses).
//   - Provide SpectralNorm (largest singular value), the quantity that drives
//     the closed-form characterisation of XOR-game biases.
//
// Determinism:
//   - gonum's LAPACK-backed routines are deterministic for a fixed input.

package matrix

import (
	"gonum.org/v1/gonum/mat"
)

const opSpectralNorm = "SpectralNorm"

// ToGonum copies m into a freshly allocated *mat.Dense. Implementations other
// than *Dense may hold NaN or ±Inf; those are rejected before LAPACK sees them.
// Complexity: O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf("ToGonum", err)
	}
	f, err := flatten(m)
	if err != nil {
		return nil, matrixErrorf("ToGonum", err)
	}

	return mat.NewDense(m.Rows(), m.Cols(), append([]float64(nil), f...)), nil
}

// SpectralNorm returns σ_max(m), the largest singular value (operator 2-norm).
//
// Implementation:
//   - Stage 1: copy into gonum and run a values-only SVD (mat.SVDNone).
//   - Stage 2: singular values come sorted descending; return the first.
//
// Errors:
//   - ErrNilMatrix; ErrSVDFailed when the factorization reports failure.
//
// Complexity:
//   - Time O(min(r,c)·r·c), Space O(r*c).
func SpectralNorm(m Matrix) (float64, error) {
	g, err := ToGonum(m)
	if err != nil {
		return 0, matrixErrorf(opSpectralNorm, err)
	}
	var svd mat.SVD
	if ok := svd.Factorize(g, mat.SVDNone); !ok {
		return 0, matrixErrorf(opSpectralNorm, ErrSVDFailed)
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0, nil
	}

	return values[0], nil
}
