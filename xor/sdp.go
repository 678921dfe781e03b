// SPDX-License-Identifier: MIT

// Package xor - Tsirelson SDP by a primal–dual interior-point method.
//
// For an m×k bias matrix B the quantum bias is
//
//	β = max Σ_{x,y} B[x,y]·⟨u_x, v_y⟩ over unit vectors
//	  = max ⟨L, X⟩  s.t.  diag(X) = 1, X ⪰ 0,      L = ½·[[0, B], [Bᵀ, 0]]
//
// with dual  min Σ y_i  s.t.  Z = Diag(y) − L ⪰ 0.
//
// Implementation (Helmberg–Rendl–Vanderbei–Wolkowicz):
//   - Stage 1: X = I, y_i = 1.1·Σ_j |L_ij|, Z = Diag(y) − L (strictly diagonally dominant).
//   - Stage 2: Newton direction
//     dy = (Z⁻¹∘X)⁻¹·(μ·diag(Z⁻¹) − 1),  dX = sym(−Z⁻¹·Diag(dy)·X + μ·Z⁻¹ − X).
//   - Stage 3: backtrack each step by 0.8 until the Cholesky factorization
//     succeeds, then shorten by 0.95 to stay interior.
//   - Stage 4: μ = ⟨X,Z⟩/(2n), halved when α_p+α_d > 1.6 and divided by 5 when > 1.9.
//   - Stop when φ − ψ ≤ tol·max(1, |φ|). The dual φ is returned: an upper bound
//     on β within the gap.
//
// Retries: an exhausted iteration cap doubles the cap; a failed factorization
// damps the Schur system, (Z⁻¹∘X + δ·d_max·I)·dy = r, multiplying δ by 100 on
// every further failure. Both keep the stopping rule, so a converged answer
// is still certified by its duality gap.
//
// Complexity: O(n³) per iteration, n = m + k.
package xor

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	sdpBacktrack = 0.8
	sdpInterior  = 0.95
	sdpMinStep   = 1e-12

	// sdpDamping is the first relative Schur damping after a numerical failure.
	sdpDamping       = 1e-10
	sdpDampingFactor = 100
)

var (
	errSDPIterations = errors.New("iteration cap reached")
	errSDPNumerical  = errors.New("factorization failed")
)

// sdpParams are the knobs a retry may change.
type sdpParams struct {
	maxIter int
	damping float64 // relative to the largest Schur diagonal entry
}

// retune returns the parameters of the attempt after one that failed with err.
func (p sdpParams) retune(err error) sdpParams {
	if !errors.Is(err, errSDPNumerical) {
		p.maxIter *= 2

		return p
	}
	if p.damping == 0 {
		p.damping = sdpDamping
	} else {
		p.damping *= sdpDampingFactor
	}

	return p
}

// sdpResult reports the final objectives and the iteration count.
type sdpResult struct {
	primal, dual float64
	iters        int
}

// solveTsirelson runs one interior-point solve with the given parameters.
func solveTsirelson(bias []float64, m, k int, tol float64, p sdpParams) (sdpResult, error) {
	n := m + k
	l := mat.NewSymDense(n, nil)
	var i, j, x, y int
	for x = 0; x < m; x++ {
		for y = 0; y < k; y++ {
			l.SetSym(x, m+y, 0.5*bias[x*k+y])
		}
	}

	var (
		xm    = mat.NewSymDense(n, nil)
		z     = mat.NewSymDense(n, nil)
		dual  = make([]float64, n)
		s     float64
		chol  mat.Cholesky
		zi    = mat.NewSymDense(n, nil)
		schur = mat.NewSymDense(n, nil)
		rhs   = mat.NewVecDense(n, nil)
		dy    = mat.NewVecDense(n, nil)
		t     = mat.NewDense(n, n, nil)
		tx    = mat.NewDense(n, n, nil)
		dx    = mat.NewSymDense(n, nil)
		trial = mat.NewSymDense(n, nil)
	)
	for i = 0; i < n; i++ {
		xm.SetSym(i, i, 1)
		s = 0
		for j = 0; j < n; j++ {
			s += math.Abs(l.At(i, j))
		}
		dual[i] = 1.1 * s
		if dual[i] == 0 {
			dual[i] = 1
		}
		for j = i; j < n; j++ {
			z.SetSym(i, j, -l.At(i, j))
		}
		z.SetSym(i, i, dual[i])
	}

	var (
		phi    = floats.Sum(dual)
		psi    = symInner(l, xm)
		mu     = symInner(xm, z) / float64(2*n)
		iter   int
		alphaP float64
		alphaD float64
		v      float64
		dmax   float64
	)
	for ; phi-psi > tol*math.Max(1, math.Abs(phi)); iter++ {
		if iter >= p.maxIter {
			return sdpResult{primal: psi, dual: phi, iters: iter}, errSDPIterations
		}
		if !chol.Factorize(z) {
			return sdpResult{primal: psi, dual: phi, iters: iter}, errSDPNumerical
		}
		if err := chol.InverseTo(zi); err != nil {
			return sdpResult{primal: psi, dual: phi, iters: iter}, fmt.Errorf("%w: %w", errSDPNumerical, err)
		}

		// Schur complement Z⁻¹∘X and right-hand side μ·diag(Z⁻¹) − 1.
		dmax = 0
		for i = 0; i < n; i++ {
			rhs.SetVec(i, mu*zi.At(i, i)-1)
			for j = i; j < n; j++ {
				schur.SetSym(i, j, zi.At(i, j)*xm.At(i, j))
			}
			dmax = math.Max(dmax, schur.At(i, i))
		}
		if p.damping > 0 {
			for i = 0; i < n; i++ {
				schur.SetSym(i, i, schur.At(i, i)+p.damping*dmax)
			}
		}
		if !chol.Factorize(schur) {
			return sdpResult{primal: psi, dual: phi, iters: iter}, errSDPNumerical
		}
		if err := chol.SolveVecTo(dy, rhs); err != nil {
			return sdpResult{primal: psi, dual: phi, iters: iter}, fmt.Errorf("%w: %w", errSDPNumerical, err)
		}

		// dX = sym(−Z⁻¹·Diag(dy)·X + μ·Z⁻¹ − X)
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				t.Set(i, j, zi.At(i, j)*dy.AtVec(j))
			}
		}
		tx.Mul(t, xm)
		for i = 0; i < n; i++ {
			for j = i; j < n; j++ {
				v = -0.5*(tx.At(i, j)+tx.At(j, i)) + mu*zi.At(i, j) - xm.At(i, j)
				dx.SetSym(i, j, v)
			}
		}

		alphaP = backtrack(&chol, trial, func(dst *mat.SymDense, a float64) {
			for i := 0; i < n; i++ {
				for j := i; j < n; j++ {
					dst.SetSym(i, j, xm.At(i, j)+a*dx.At(i, j))
				}
			}
		})
		alphaD = backtrack(&chol, trial, func(dst *mat.SymDense, a float64) {
			dst.CopySym(z)
			for i := 0; i < n; i++ {
				dst.SetSym(i, i, z.At(i, i)+a*dy.AtVec(i))
			}
		})

		for i = 0; i < n; i++ {
			for j = i; j < n; j++ {
				xm.SetSym(i, j, xm.At(i, j)+alphaP*dx.At(i, j))
			}
			z.SetSym(i, i, z.At(i, i)+alphaD*dy.AtVec(i))
		}
		floats.AddScaled(dual, alphaD, dy.RawVector().Data)

		mu = symInner(xm, z) / float64(2*n)
		if alphaP+alphaD > 1.6 {
			mu *= 0.5
		}
		if alphaP+alphaD > 1.9 {
			mu /= 5
		}
		phi = floats.Sum(dual)
		psi = symInner(l, xm)
	}

	return sdpResult{primal: psi, dual: phi, iters: iter}, nil
}

// backtrack returns the largest step 0.8^j for which fill(trial, α) is
// positive definite, shortened by 0.95 when below 1.
func backtrack(chol *mat.Cholesky, trial *mat.SymDense, fill func(*mat.SymDense, float64)) float64 {
	alpha := 1.0
	for alpha > sdpMinStep {
		fill(trial, alpha)
		if chol.Factorize(trial) {
			break
		}
		alpha *= sdpBacktrack
	}
	if alpha < 1 {
		alpha *= sdpInterior
	}

	return alpha
}

// symInner is the trace inner product ⟨A,B⟩ = Σ_ij A_ij·B_ij of symmetric matrices.
func symInner(a, b mat.Symmetric) float64 {
	var (
		n    = a.SymmetricDim()
		sum  float64
		i, j int
	)
	for i = 0; i < n; i++ {
		sum += a.At(i, i) * b.At(i, i)
		for j = i + 1; j < n; j++ {
			sum += 2 * a.At(i, j) * b.At(i, j)
		}
	}

	return sum
}

// tsirelsonBias solves the SDP, retuning the parameters after each failure.
//
// Errors:
//   - ErrNotConverged wrapping the last failure after sdpAttempts solves.
func (g *Game) tsirelsonBias(bias []float64, m, k int) (float64, error) {
	var (
		params  = sdpParams{maxIter: g.sdpMaxIter}
		res     sdpResult
		err     error
		attempt int
	)
	for attempt = 1; attempt <= sdpAttempts; attempt++ {
		res, err = solveTsirelson(bias, m, k, g.tol, params)
		if err == nil {
			g.logger.Debug("xor: tsirelson sdp",
				slog.Int("attempt", attempt), slog.Int("iterations", res.iters),
				slog.Float64("dual", res.dual), slog.Float64("gap", res.dual-res.primal))

			return res.dual, nil
		}
		g.logger.Debug("xor: tsirelson sdp retry",
			slog.Int("attempt", attempt), slog.Int("cap", params.maxIter),
			slog.Float64("damping", params.damping),
			slog.Float64("gap", res.dual-res.primal), slog.String("reason", err.Error()))
		params = params.retune(err)
	}

	return 0, fmt.Errorf("QuantumValue: %d attempts: %w: %w", sdpAttempts, ErrNotConverged, err)
}
