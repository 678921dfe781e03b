// SPDX-License-Identifier: MIT

// Package xor - parallel repetition.
//
// XORProduct: n copies are sampled independently and the referee accepts iff
// the XOR of all answers matches the XOR of all predicates:
//
//	prob_n[x⃗,y⃗] = Π_k prob[x_k, y_k]          (Kronecker power)
//	pred_n[x⃗,y⃗] = ⊕_k pred[x_k, y_k]
//
// Question tuples are flattened with matrix.Shape (first copy most
// significant), the layout matrix.KronPower produces, so both matrices index
// consistently. The bias matrix of the result is bias^{⊗n}.
//
// Conjunctive repetition has answer tuples and lives in nonlocal.Game.Repeat;
// ToNonlocalGame is its entry point.
//
// Memory ceiling: m^n × m^n entries per expanded matrix.
package xor

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/xorgames/matrix"
)

// Expand returns the single-copy XOR game the solvers see: g itself when
// Reps() == 1, the XORProduct expansion otherwise. Results are memoized when
// the game carries an ExpansionCache.
//
// Errors:
//   - ErrNotXOR for Conjunctive mode with Reps() > 1.
//   - ErrTooLarge when m^n × m^n is not addressable.
//
// Complexity: O(n·m^{2n}).
func (g *Game) Expand() (*Game, error) {
	if g.reps == 1 {
		return g, nil
	}
	if g.mode == Conjunctive {
		return nil, fmt.Errorf("Expand(reps=%d): %w", g.reps, ErrNotXOR)
	}

	var key expansionKey
	if g.cache != nil {
		key = keyOf(g)
		if e, ok := g.cache.lookup(key, g); ok {
			g.logger.Debug("xor: expansion cache hit", slog.Int("reps", g.reps))

			return g.derive(e.prob, e.pred), nil
		}
	}

	prob, pred, err := g.expandXOR()
	if err != nil {
		return nil, err
	}
	if g.cache != nil {
		g.cache.store(key, g, prob, pred)
	}
	g.logger.Debug("xor: xor-product expansion",
		slog.Int("reps", g.reps), slog.Int("questions", prob.Rows()))

	return g.derive(prob, pred), nil
}

// expandXOR builds prob^{⊗n} and the mod-2 predicate sum.
func (g *Game) expandXOR() (prob, pred *matrix.Dense, err error) {
	var (
		n = g.reps
		m = g.prob.Rows()
	)
	if prob, err = matrix.KronPower(g.prob, n); err != nil {
		return nil, nil, fmt.Errorf("Expand(reps=%d): %w: %w", n, ErrTooLarge, err)
	}
	size := prob.Rows()
	if pred, err = matrix.NewDense(size, size); err != nil {
		return nil, nil, fmt.Errorf("Expand(reps=%d): %w: %w", n, ErrTooLarge, err)
	}

	var (
		base  = g.pred.RowMajor()
		shape = matrix.PowerShape(m, n)
		xs    = make([]int, n)
		ys    = make([]int, n)
		x, y  int
		k     int
		bit   int
	)
	for x = 0; x < size; x++ {
		if err = shape.Unflat(x, xs); err != nil {
			return nil, nil, fmt.Errorf("Expand: %w", err)
		}
		for y = 0; y < size; y++ {
			if err = shape.Unflat(y, ys); err != nil {
				return nil, nil, fmt.Errorf("Expand: %w", err)
			}
			bit = 0
			for k = 0; k < n; k++ {
				bit ^= int(base[xs[k]*m+ys[k]])
			}
			if bit == 1 {
				_ = pred.Set(x, y, 1)
			}
		}
	}

	return prob, pred, nil
}
