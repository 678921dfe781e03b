// SPDX-License-Identifier: MIT

package xor

import (
	"fmt"

	"github.com/katalvlaran/xorgames/nonlocal"
)

// ToNonlocalGame maps the game to the general representation with
// V[a,b,x,y] = 1 iff a⊕b == pred[x,y] and the question distribution unchanged.
//
// Repetition is carried over: Conjunctive games keep Reps() on the general
// game (its solvers expand to answer tuples), XORProduct games are expanded
// first and converted as a single copy.
//
// Invariant: ToNonlocalGame().ClassicalValue() == ClassicalValue() within tol.
func (g *Game) ToNonlocalGame() (*nonlocal.Game, error) {
	src, reps := g, g.reps
	if g.mode == XORProduct {
		s, err := g.Expand()
		if err != nil {
			return nil, err
		}
		src, reps = s, 1
	}

	m := src.prob.Rows()
	ref, err := nonlocal.NewReferee(2, 2, m, m)
	if err != nil {
		return nil, fmt.Errorf("ToNonlocalGame: %w: %w", ErrTooLarge, err)
	}
	var (
		pred = src.pred.RowMajor()
		x, y int
		a, b int
		want int
	)
	for x = 0; x < m; x++ {
		for y = 0; y < m; y++ {
			want = int(pred[x*m+y])
			for a = 0; a < 2; a++ {
				b = a ^ want
				if err = ref.Set(a, b, x, y, 1); err != nil {
					return nil, fmt.Errorf("ToNonlocalGame: %w", err)
				}
			}
		}
	}

	ng, err := nonlocal.NewGame(src.prob.ToRows(), ref,
		nonlocal.WithReps(reps),
		nonlocal.WithTol(src.tol),
		nonlocal.WithLogger(src.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("ToNonlocalGame: %w", err)
	}

	return ng, nil
}
