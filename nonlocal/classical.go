// SPDX-License-Identifier: MIT

// Package nonlocal: classical value by Branch-and-Bound.
//
// Shared randomness is a convex mixture of deterministic strategies, so the
// classical value is attained by a deterministic pair (f: X→A, g: Y→B).
//
// Rationale (succinct):
//  1. Alice's answers are fixed question by question (DFS over x = 0..X-1).
//  2. For a fixed (partial) f, Bob's best response decouples per question y:
//     g(y) = argmax_b Σ_x π(x,y)·V(f(x),b,x,y). The accumulator acc[y][b]
//     carries that sum incrementally down the search.
//  3. Admissible upper bound for a partial f at depth d:
//     UB = Σ_y max_b acc[y][b] + Σ_{x ≥ d} best(x),
//     best(x) = Σ_y π(x,y)·max_{a,b} V(a,b,x,y).
//     Prune whenever UB ≤ incumbent: no completion can strictly improve it,
//     so the optimum value is identical with or without pruning.
//  4. Early exit once the incumbent reaches the global bound within tol.
//
// Complexity:
//   - Worst case O(A^X · X·Y·B) time, O(X·Y·B) memory.
package nonlocal

import (
	"fmt"
	"log/slog"
	"math"
)

// maxStrategyBits caps the search space at 2^62 deterministic strategies.
const maxStrategyBits = 62

// ClassicalResult is an optimal deterministic strategy pair and its value.
type ClassicalResult struct {
	// Value is the winning probability of the pair, in [0,1].
	Value float64

	// Alice[x] is Alice's answer to question x.
	Alice []int

	// Bob[y] is Bob's best-response answer to question y.
	Bob []int
}

// classicalEngine holds all search data and policies.
type classicalEngine struct {
	nA, nB, nX, nY int
	tol            float64

	// gain[((x*A+a)*Y+y)*B+b] = π(x,y)·V(a,b,x,y)
	gain []float64

	// rest[d] = Σ_{x ≥ d} best(x); rest[X] = 0
	rest []float64

	// acc[d] is the Y×B accumulator after fixing f(0..d-1)
	acc [][]float64

	strat []int

	best      float64
	bestStrat []int
	done      bool

	nodes, pruned int
}

// newClassicalEngine prefetches gains and bounds from a single-copy game.
func newClassicalEngine(g *Game) (*classicalEngine, error) {
	nA, nB, nX, nY := g.referee.Dims()
	if float64(nX)*math.Log2(float64(nA)) > maxStrategyBits {
		return nil, fmt.Errorf("ClassicalValue: %d^%d strategies: %w", nA, nX, ErrTooLarge)
	}
	e := &classicalEngine{nA: nA, nB: nB, nX: nX, nY: nY, tol: g.tol}
	e.gain = make([]float64, nX*nA*nY*nB)
	e.rest = make([]float64, nX+1)

	var (
		x, a, y, b int
		p, v, top  float64
		rowBest    float64
	)
	for x = nX - 1; x >= 0; x-- {
		rowBest = 0
		for y = 0; y < nY; y++ {
			p, _ = g.prob.At(x, y)
			top = 0
			for a = 0; a < nA; a++ {
				for b = 0; b < nB; b++ {
					v = p * g.referee.at(a, b, x, y)
					e.gain[((x*nA+a)*nY+y)*nB+b] = v
					if v > top {
						top = v
					}
				}
			}
			rowBest += top
		}
		e.rest[x] = e.rest[x+1] + rowBest
	}

	e.acc = make([][]float64, nX+1)
	for x = range e.acc {
		e.acc[x] = make([]float64, nY*nB)
	}
	e.strat = make([]int, nX)
	e.bestStrat = make([]int, nX)
	e.best = -1

	return e, nil
}

// responseValue is Σ_y max_b acc[y][b] at the given depth.
func (e *classicalEngine) responseValue(depth int) float64 {
	var (
		row      = e.acc[depth]
		sum, top float64
		y, b     int
	)
	for y = 0; y < e.nY; y++ {
		top = row[y*e.nB]
		for b = 1; b < e.nB; b++ {
			if row[y*e.nB+b] > top {
				top = row[y*e.nB+b]
			}
		}
		sum += top
	}

	return sum
}

// dfs performs the core search over Alice's answer for question x.
func (e *classicalEngine) dfs(x int) {
	if e.done {
		return
	}
	e.nodes++
	cur := e.responseValue(x)

	if x == e.nX {
		if cur > e.best {
			e.best = cur
			copy(e.bestStrat, e.strat)
			if e.best >= e.rest[0]-e.tol {
				e.done = true
			}
		}

		return
	}

	// Prune: no completion can strictly beat the incumbent.
	if cur+e.rest[x] <= e.best {
		e.pruned++

		return
	}

	var (
		a, k int
		base = e.acc[x]
		next = e.acc[x+1]
		off  int
	)
	for a = 0; a < e.nA; a++ {
		off = (x*e.nA + a) * e.nY * e.nB
		for k = range next {
			next[k] = base[k] + e.gain[off+k]
		}
		e.strat[x] = a
		e.dfs(x + 1)
		if e.done {
			return
		}
	}
}

// bobResponse recomputes Bob's best response to Alice's strategy f.
func (e *classicalEngine) bobResponse(f []int) []int {
	var (
		acc  = make([]float64, e.nY*e.nB)
		x, k int
		off  int
	)
	for x = 0; x < e.nX; x++ {
		off = (x*e.nA + f[x]) * e.nY * e.nB
		for k = range acc {
			acc[k] += e.gain[off+k]
		}
	}
	bob := make([]int, e.nY)
	var y, b int
	for y = 0; y < e.nY; y++ {
		for b = 1; b < e.nB; b++ {
			if acc[y*e.nB+b] > acc[y*e.nB+bob[y]] {
				bob[y] = b
			}
		}
	}

	return bob
}

// ClassicalStrategy returns an optimal deterministic strategy pair of the
// (repeated, when Reps() > 1) game.
//
// Errors:
//   - ErrTooLarge when A^X exceeds 2^62 or the repetition is not addressable.
func (g *Game) ClassicalStrategy() (ClassicalResult, error) {
	s, err := g.single()
	if err != nil {
		return ClassicalResult{}, err
	}
	e, err := newClassicalEngine(s)
	if err != nil {
		return ClassicalResult{}, err
	}
	e.dfs(0)
	g.logger.Debug("nonlocal: classical search",
		slog.Int("nodes", e.nodes), slog.Int("pruned", e.pruned), slog.Float64("value", e.best))

	return ClassicalResult{
		Value: clamp01(e.best),
		Alice: append([]int(nil), e.bestStrat...),
		Bob:   e.bobResponse(e.bestStrat),
	}, nil
}

// ClassicalValue returns the classical (shared-randomness) value in [0,1].
func (g *Game) ClassicalValue() (float64, error) {
	res, err := g.ClassicalStrategy()
	if err != nil {
		return 0, err
	}

	return res.Value, nil
}

// clamp01 removes floating drift outside [0,1].
func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
