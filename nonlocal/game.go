// SPDX-License-Identifier: MIT

// Package nonlocal - Game construction and validation.
//
// Validation is eager (fail fast) and runs in a fixed order:
//
//	nil referee → shape → finite → non-negative → probability sum → referee range.
//
// A validated Game is immutable; every solver is a pure function of it.
package nonlocal

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/xorgames/matrix"
)

// Game is a validated, immutable two-player non-local game.
type Game struct {
	prob    *matrix.Dense // X×Y question distribution
	referee *Referee      // A×B×X×Y acceptance tensor
	reps    int
	tol     float64
	lpTol   float64
	logger  *slog.Logger
}

// NewGame validates prob and referee and returns an immutable Game.
//
// Contract:
//   - prob is an X×Y matrix of finite, non-negative reals summing to 1 within tol.
//   - referee has dims (A, B, X, Y) matching prob, entries in [0,1].
//
// Errors:
//   - ErrNilReferee, ErrShapeMismatch, ErrNonFinite, ErrNegativeProbability,
//     ErrProbabilitySum, ErrRefereeRange.
//
// Complexity: O(A·B·X·Y).
func NewGame(prob [][]float64, referee *Referee, opts ...Option) (*Game, error) {
	if referee == nil {
		return nil, ErrNilReferee
	}
	o := gatherOptions(opts...)

	p, err := matrix.NewDenseFrom(prob)
	if err != nil {
		if errors.Is(err, matrix.ErrNaNInf) {
			return nil, fmt.Errorf("NewGame: %w: %w", ErrNonFinite, err)
		}

		return nil, fmt.Errorf("NewGame: %w: %w", ErrShapeMismatch, err)
	}

	return newGame(p, referee.clone(), o)
}

// newGame runs the value checks on already-shaped inputs and takes ownership of them.
func newGame(p *matrix.Dense, referee *Referee, o options) (*Game, error) {
	_, _, nx, ny := referee.Dims()
	if p.Rows() != nx || p.Cols() != ny {
		return nil, fmt.Errorf("NewGame: prob %dx%d vs referee questions %dx%d: %w",
			p.Rows(), p.Cols(), nx, ny, ErrShapeMismatch)
	}
	var (
		x, y  int
		v     float64
		total float64
	)
	for x = 0; x < nx; x++ {
		for y = 0; y < ny; y++ {
			v, _ = p.At(x, y)
			if v < 0 {
				return nil, fmt.Errorf("NewGame: prob(%d,%d) = %g: %w", x, y, v, ErrNegativeProbability)
			}
			total += v
		}
	}
	if math.Abs(total-1) > o.tol {
		return nil, fmt.Errorf("NewGame: sum = %g: %w", total, ErrProbabilitySum)
	}
	for _, v = range referee.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("NewGame: %w", ErrNonFinite)
		}
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("NewGame: referee entry %g: %w", v, ErrRefereeRange)
		}
	}

	return &Game{
		prob:    p,
		referee: referee,
		reps:    o.reps,
		tol:     o.tol,
		lpTol:   o.lpTol,
		logger:  o.logger,
	}, nil
}

// Reps returns the number of conjunctively repeated copies.
func (g *Game) Reps() int { return g.reps }

// Tol returns the configured tolerance.
func (g *Game) Tol() float64 { return g.tol }

// Questions returns (X, Y) of the single-copy game.
func (g *Game) Questions() (questionsA, questionsB int) { return g.prob.Rows(), g.prob.Cols() }

// Answers returns (A, B) of the single-copy game.
func (g *Game) Answers() (answersA, answersB int) {
	a, b, _, _ := g.referee.Dims()

	return a, b
}

// ProbMat returns a copy of the question distribution.
func (g *Game) ProbMat() [][]float64 { return g.prob.ToRows() }

// Referee returns a copy of the acceptance tensor.
func (g *Game) Referee() *Referee { return g.referee.clone() }

// single returns the game the solvers operate on: g itself for one copy,
// the conjunctive repetition otherwise.
func (g *Game) single() (*Game, error) {
	if g.reps == 1 {
		return g, nil
	}

	return g.Repeat()
}
