// SPDX-License-Identifier: MIT

// Package nonlocal: non-signaling value by linear programming.
//
// Variables: p(a,b|x,y) ≥ 0, one per (x,y,a,b), flattened as ((x·Y+y)·A+a)·B+b.
//
// Objective (maximise):
//
//	Σ_{x,y,a,b} π(x,y)·V(a,b,x,y)·p(a,b|x,y)
//
// Equality rows (standard form A·p = rhs, p ≥ 0):
//  1. normalisation:   Σ_{a,b} p(a,b|x,y) = 1                       for all x,y
//  2. Alice marginals: Σ_b p(a,b|x,y) − Σ_b p(a,b|x,0) = 0         for a < A−1, y ≥ 1
//  3. Bob marginals:   Σ_a p(a,b|x,y) − Σ_a p(a,b|0,y) = 0         for b < B−1, x ≥ 1
//
// The last answer of each marginal family follows from normalisation, so it is
// omitted; what remains has full row rank, as the simplex solver requires.
// Row count: X·Y + X(Y−1)(A−1) + (X−1)Y(B−1); free dimension
// (X(A−1)+1)(Y(B−1)+1) − 1, the dimension of the non-signaling polytope.
package nonlocal

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// nsProgram is the standard-form LP handed to lp.Simplex (which minimises).
type nsProgram struct {
	c   []float64
	a   *mat.Dense
	rhs []float64
}

// buildNonsignalingLP assembles objective and constraints for a single-copy game.
func buildNonsignalingLP(g *Game) nsProgram {
	nA, nB, nX, nY := g.referee.Dims()
	var (
		vars = nX * nY * nA * nB
		rows = nX*nY + nX*(nY-1)*(nA-1) + (nX-1)*nY*(nB-1)
		c    = make([]float64, vars)
		rhs  = make([]float64, rows)
		a    = mat.NewDense(rows, vars, nil)
	)
	idx := func(x, y, ai, bi int) int { return ((x*nY+y)*nA+ai)*nB + bi }

	var (
		x, y, ai, bi int
		p            float64
		row          int
	)
	for x = 0; x < nX; x++ {
		for y = 0; y < nY; y++ {
			p, _ = g.prob.At(x, y)
			for ai = 0; ai < nA; ai++ {
				for bi = 0; bi < nB; bi++ {
					c[idx(x, y, ai, bi)] = -p * g.referee.at(ai, bi, x, y)
					a.Set(row, idx(x, y, ai, bi), 1)
				}
			}
			rhs[row] = 1
			row++
		}
	}
	for x = 0; x < nX; x++ {
		for y = 1; y < nY; y++ {
			for ai = 0; ai < nA-1; ai++ {
				for bi = 0; bi < nB; bi++ {
					a.Set(row, idx(x, y, ai, bi), 1)
					a.Set(row, idx(x, 0, ai, bi), -1)
				}
				row++
			}
		}
	}
	for y = 0; y < nY; y++ {
		for x = 1; x < nX; x++ {
			for bi = 0; bi < nB-1; bi++ {
				for ai = 0; ai < nA; ai++ {
					a.Set(row, idx(x, y, ai, bi), 1)
					a.Set(row, idx(0, y, ai, bi), -1)
				}
				row++
			}
		}
	}

	return nsProgram{c: c, a: a, rhs: rhs}
}

// NonsignalingValue returns the maximum winning probability over all
// non-signaling correlations of the (repeated, when Reps() > 1) game.
//
// Errors:
//   - ErrLPFailed wrapping the solver error (infeasible, unbounded, singular).
//     A validated game always yields a feasible, bounded program, so this
//     signals a construction bug and is never masked.
//   - ErrTooLarge from the repetition.
func (g *Game) NonsignalingValue() (float64, error) {
	s, err := g.single()
	if err != nil {
		return 0, err
	}
	prog := buildNonsignalingLP(s)
	rows, cols := prog.a.Dims()
	g.logger.Debug("nonlocal: non-signaling LP", slog.Int("rows", rows), slog.Int("vars", cols))

	opt, _, err := lp.Simplex(prog.c, prog.a, prog.rhs, s.lpTol, nil)
	if err != nil {
		return 0, fmt.Errorf("NonsignalingValue: %w: %w", ErrLPFailed, err)
	}

	return clamp01(-opt), nil
}
