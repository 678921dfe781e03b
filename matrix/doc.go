// Package matrix offers the dense linear-algebra substrate used by the game solvers.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with error-returning accessors and a
//     finite-only numeric policy.
//   - Central validators (ValidateNotNil, ValidateSquare, ValidateSameShape,
//     ValidateFinite) returning sentinel errors matched via errors.Is.
//   - Kernels: Hadamard, Transpose, Scale, Sums, Kron, KronPower.
//   - Shape, mixed-radix index arithmetic matching the Kronecker layout, used
//     to address tensor-power (parallel repetition) data without nested arrays.
//   - SpectralNorm and the ToGonum bridge.
//
// Matrices are dense; the memory cost of a Kronecker power grows as
// (rows·cols)^n, so repeated-game callers should keep n small.
package matrix
