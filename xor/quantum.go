// SPDX-License-Identifier: MIT

// Package xor - quantum value.
//
// Tsirelson: an XOR game with bias matrix B has quantum value ½ + ½·β,
// β the optimum of the vector program solved in sdp.go.
//
// Repetition never builds the repeated bias matrix:
//   - XORProduct: the bias matrix of n copies is B^{⊗n} and quantum biases
//     of XOR games multiply, so the value is ½ + ½·βⁿ.
//   - Conjunctive: quantum values of XOR games multiply under parallel
//     repetition, so the value is ω*(G)ⁿ.
package xor

import (
	"fmt"
	"math"

	"github.com/katalvlaran/xorgames/matrix"
)

// QuantumValue returns the entangled value in [0,1], always ≥ ClassicalValue
// within tol.
//
// Errors:
//   - ErrNotConverged when the SDP fails to close its duality gap after retries.
//
// Complexity: O(iters·m³), independent of Reps().
func (g *Game) QuantumValue() (float64, error) {
	b, err := g.bias()
	if err != nil {
		return 0, fmt.Errorf("QuantumValue: %w", err)
	}
	m := b.Rows()
	beta, err := g.tsirelsonBias(b.RowMajor(), m, m)
	if err != nil {
		return 0, err
	}

	return clamp01(g.repeatBias(clamp01(beta))), nil
}

// SpectralBound returns the closed-form upper bound
//
//	½ + ½·min(1, m·σ_max(B))
//
// (for an m×m game; √(m·k) in general), lifted to Reps() copies the same way
// QuantumValue is. It equals the quantum value whenever the top singular
// vectors of B are flat, CHSH and the odd-cycle games among them.
//
// Errors:
//   - matrix.ErrSVDFailed wrapped when the factorization fails.
func (g *Game) SpectralBound() (float64, error) {
	b, err := g.bias()
	if err != nil {
		return 0, fmt.Errorf("SpectralBound: %w", err)
	}
	sigma, err := matrix.SpectralNorm(b)
	if err != nil {
		return 0, fmt.Errorf("SpectralBound: %w", err)
	}
	r, c := b.Shape()
	beta := math.Min(1, math.Sqrt(float64(r*c))*sigma)

	return clamp01(g.repeatBias(beta)), nil
}

// repeatBias maps a single-copy bias to the value of Reps() copies.
func (g *Game) repeatBias(beta float64) float64 {
	n := float64(g.reps)
	if g.mode == XORProduct {
		return 0.5 + 0.5*math.Pow(beta, n)
	}

	return math.Pow(0.5+0.5*beta, n)
}
