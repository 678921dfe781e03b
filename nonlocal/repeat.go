// SPDX-License-Identifier: MIT

// Package nonlocal - conjunctive parallel repetition.
//
// In n parallel copies the referee samples n independent question pairs and
// accepts iff every copy accepts:
//
//	π_n(x⃗,y⃗)        = Π_k π(x_k, y_k)                (Kronecker power of π)
//	V_n(a⃗,b⃗,x⃗,y⃗)    = Π_k V(a_k, b_k, x_k, y_k)
//
// Tuples are flattened with matrix.Shape (first copy most significant), the
// same layout matrix.KronPower uses, so π_n and V_n index consistently.
//
// Memory ceiling: V_n has (A·B·X·Y)^n entries.
package nonlocal

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/xorgames/matrix"
)

// Repeat returns the single-copy game equivalent to Reps() conjunctive copies.
// The result has Reps() == 1. For Reps() == 1 it returns g.
//
// Errors:
//   - ErrTooLarge when the repeated tensor is not addressable.
//
// Complexity: O(n·(A·B·X·Y)^n).
func (g *Game) Repeat() (*Game, error) {
	n := g.reps
	if n == 1 {
		return g, nil
	}
	nA, nB, nX, nY := g.referee.Dims()
	if _, err := matrix.PowerShape(nA*nB*nX*nY, n).Size(); err != nil {
		return nil, fmt.Errorf("Repeat(%d): %w: %w", n, ErrTooLarge, err)
	}

	prob, err := matrix.KronPower(g.prob, n)
	if err != nil {
		return nil, fmt.Errorf("Repeat(%d): %w: %w", n, ErrTooLarge, err)
	}
	ref, err := NewReferee(pow(nA, n), pow(nB, n), pow(nX, n), pow(nY, n))
	if err != nil {
		return nil, fmt.Errorf("Repeat(%d): %w", n, err)
	}

	// Digit tables: digits[axis][flat] = sub-index tuple of that flat index.
	var tables [4][][]int
	for i, dim := range [4]int{nA, nB, nX, nY} {
		if tables[i], err = digitTable(dim, n); err != nil {
			return nil, fmt.Errorf("Repeat(%d): %w", n, err)
		}
	}
	da, db, dx, dy := tables[0], tables[1], tables[2], tables[3]

	var (
		a, b, x, y, k int
		v             float64
		off           int
	)
	for a = range da {
		for b = range db {
			for x = range dx {
				for y = range dy {
					v = 1
					for k = 0; k < n && v != 0; k++ {
						v *= g.referee.at(da[a][k], db[b][k], dx[x][k], dy[y][k])
					}
					ref.data[off] = v
					off++
				}
			}
		}
	}

	g.logger.Debug("nonlocal: conjunctive repetition",
		slog.Int("reps", n), slog.Int("questions", prob.Rows()), slog.Int("answers", pow(nA, n)))

	// Derived from a validated game: products of valid entries stay valid, so
	// the checks are not re-run (the mass drifts by at most n·tol).
	return &Game{prob: prob, referee: ref, reps: 1, tol: g.tol, lpTol: g.lpTol, logger: g.logger}, nil
}

// digitTable lists the base-dim digits of every index in [0, dim^n).
func digitTable(dim, n int) ([][]int, error) {
	s := matrix.PowerShape(dim, n)
	size, err := s.Size()
	if err != nil {
		return nil, err
	}
	out := make([][]int, size)
	var i int
	for i = range out {
		out[i] = make([]int, n)
		if err = s.Unflat(i, out[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// pow is integer exponentiation for small, already range-checked operands.
func pow(base, n int) int {
	r := 1
	for ; n > 0; n-- {
		r *= base
	}

	return r
}
