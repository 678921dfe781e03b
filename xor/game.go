// SPDX-License-Identifier: MIT

// Package xor - Game construction and validation.
//
// Validation is eager (fail fast): no solver ever runs on an invalid game.
// A validated Game is immutable; every solver is a pure function of it.
package xor

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/xorgames/matrix"
)

// Game is a validated, immutable two-player XOR game.
type Game struct {
	prob *matrix.Dense // m×m question distribution
	pred *matrix.Dense // m×m required a⊕b, entries in {0,1}

	reps        int
	tol         float64
	mode        RepetitionMode
	parallelism int
	sdpMaxIter  int
	cache       *ExpansionCache
	logger      *slog.Logger
}

// NewGame validates prob and pred and returns an immutable Game.
//
// Contract:
//   - prob is a square m×m matrix of finite, non-negative reals summing to 1 within tol.
//   - pred has the same shape with entries in {0,1}.
//   - no row or column of prob sums to exactly 0.
//
// Errors (wrapped with the failing check, matched via errors.Is):
//   - ErrInvalidReps, ErrInvalidTolerance (from options).
//   - ErrEmptyGame, ErrShapeMismatch, ErrNonSquare, ErrNonFinite,
//     ErrNegativeProbability, ErrProbabilitySum, ErrPredicateNotBinary, ErrZeroQuestion.
//
// Complexity: O(m²).
func NewGame(prob, pred [][]float64, opts ...Option) (*Game, error) {
	o := gatherOptions(opts...)
	if o.reps < 1 {
		return nil, fmt.Errorf("NewGame: reps = %d: %w", o.reps, ErrInvalidReps)
	}
	if math.IsNaN(o.tol) || math.IsInf(o.tol, 0) || o.tol <= 0 {
		return nil, fmt.Errorf("NewGame: tol = %g: %w", o.tol, ErrInvalidTolerance)
	}

	p, err := ingest("prob", prob)
	if err != nil {
		return nil, err
	}
	q, err := ingest("pred", pred)
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateSquare(p); err != nil {
		return nil, fmt.Errorf("NewGame: prob %dx%d: %w", p.Rows(), p.Cols(), ErrNonSquare)
	}
	if err = matrix.ValidateSameShape(p, q); err != nil {
		return nil, fmt.Errorf("NewGame: prob %dx%d vs pred %dx%d: %w",
			p.Rows(), p.Cols(), q.Rows(), q.Cols(), ErrShapeMismatch)
	}
	if err = validateValues(p, q, o.tol); err != nil {
		return nil, err
	}

	return &Game{
		prob:        p,
		pred:        q,
		reps:        o.reps,
		tol:         o.tol,
		mode:        o.mode,
		parallelism: o.parallelism,
		sdpMaxIter:  o.sdpMaxIter,
		cache:       o.cache,
		logger:      o.logger,
	}, nil
}

// ingest copies a row-slice literal and maps matrix sentinels onto xor ones.
func ingest(name string, rows [][]float64) (*matrix.Dense, error) {
	d, err := matrix.NewDenseFrom(rows)
	switch {
	case err == nil:
		return d, nil
	case errors.Is(err, matrix.ErrInvalidDimensions):
		return nil, fmt.Errorf("NewGame: %s: %w", name, ErrEmptyGame)
	case errors.Is(err, matrix.ErrNaNInf):
		return nil, fmt.Errorf("NewGame: %s: %w: %w", name, ErrNonFinite, err)
	default:
		return nil, fmt.Errorf("NewGame: %s: %w: %w", name, ErrShapeMismatch, err)
	}
}

// validateValues runs the numeric checks on same-shape, finite inputs.
func validateValues(p, q *matrix.Dense, tol float64) error {
	var (
		n    = p.Rows()
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, _ = p.At(i, j); v < 0 {
				return fmt.Errorf("NewGame: prob(%d,%d) = %g: %w", i, j, v, ErrNegativeProbability)
			}
		}
	}
	rows, cols, total, err := matrix.Sums(p)
	if err != nil {
		return fmt.Errorf("NewGame: %w", err)
	}
	if math.Abs(total-1) > tol {
		return fmt.Errorf("NewGame: sum = %g: %w", total, ErrProbabilitySum)
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, _ = q.At(i, j); v != 0 && v != 1 {
				return fmt.Errorf("NewGame: pred(%d,%d) = %g: %w", i, j, v, ErrPredicateNotBinary)
			}
		}
	}
	for i = 0; i < n; i++ {
		if rows[i] == 0 {
			return fmt.Errorf("NewGame: row %d: %w", i, ErrZeroQuestion)
		}
		if cols[i] == 0 {
			return fmt.Errorf("NewGame: column %d: %w", i, ErrZeroQuestion)
		}
	}

	return nil
}

// derive wraps already-validated matrices in a single-copy Game that keeps
// g's configuration.
func (g *Game) derive(prob, pred *matrix.Dense) *Game {
	return &Game{
		prob:        prob,
		pred:        pred,
		reps:        1,
		tol:         g.tol,
		mode:        g.mode,
		parallelism: g.parallelism,
		sdpMaxIter:  g.sdpMaxIter,
		cache:       g.cache,
		logger:      g.logger,
	}
}

// Swapped returns the game with Alice and Bob exchanged: prob and pred are
// transposed, every option is kept. Classical, quantum and non-signaling
// values are invariant under the exchange.
func (g *Game) Swapped() (*Game, error) {
	prob, err := matrix.Transpose(g.prob)
	if err != nil {
		return nil, fmt.Errorf("Swapped: %w", err)
	}
	pred, err := matrix.Transpose(g.pred)
	if err != nil {
		return nil, fmt.Errorf("Swapped: %w", err)
	}
	s := g.derive(prob, pred)
	s.reps = g.reps

	return s, nil
}

// Reps returns the number of repeated copies.
func (g *Game) Reps() int { return g.reps }

// Tol returns the configured tolerance.
func (g *Game) Tol() float64 { return g.tol }

// Mode returns the repetition mode.
func (g *Game) Mode() RepetitionMode { return g.mode }

// Questions returns the number of questions per player of the single copy.
func (g *Game) Questions() int { return g.prob.Rows() }

// ProbMat returns a copy of the question distribution.
func (g *Game) ProbMat() [][]float64 { return g.prob.ToRows() }

// PredMat returns a copy of the predicate matrix.
func (g *Game) PredMat() [][]float64 { return g.pred.ToRows() }

// BiasMatrix returns bias[x,y] = prob[x,y]·(1 − 2·pred[x,y]) of the single copy.
func (g *Game) BiasMatrix() [][]float64 {
	b, err := g.bias()
	if err != nil {
		// Shapes are fixed at construction; kernels cannot fail here.
		return nil
	}

	return b.ToRows()
}

// bias computes the signed reweighting prob ∘ (1 − 2·pred).
func (g *Game) bias() (*matrix.Dense, error) {
	signs, err := matrix.Scale(g.pred, -2)
	if err != nil {
		return nil, err
	}
	var (
		r, c = signs.Shape()
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v, _ = signs.At(i, j)
			_ = signs.Set(i, j, v+1)
		}
	}

	return matrix.Hadamard(g.prob, signs)
}
