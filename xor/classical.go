// SPDX-License-Identifier: MIT

// Package xor - classical value by Branch-and-Bound.
//
// In bias form a deterministic pair of sign vectors s (Alice), t (Bob) wins
// with probability
//
//	½ + ½·Σ_{x,y} s_x·t_y·B[x,y],   s_x = (−1)^{a_x}, t_y = (−1)^{b_y}.
//
// For fixed s, Bob's optimum is t_y = sign(Σ_x s_x·B[x,y]) per column, so the
// classical bias is max_s Σ_y |Σ_x s_x·B[x,y]|.
//
// Rationale (succinct):
//  1. DFS over Alice's bits; acc[d][y] = Σ_{x<d} s_x·B[x,y] at depth d.
//  2. Admissible upper bound at depth d: Σ_y |acc[d][y]| + Σ_{x≥d} Σ_y |B[x,y]|.
//     Prune whenever bound ≤ incumbent: pruning never changes the optimum.
//  3. Early exit once the incumbent bias reaches Σ|B| − 2·tol (winning probability within tol of 1).
//  4. a₀ = 0 is fixed: flipping every answer of both players preserves all XORs.
//  5. Optional parallelism: the bits after a₀ are split into 2^ℓ independent
//     prefixes searched on an errgroup, each with its own incumbent, merged by max.
//
// Complexity:
//   - Worst case O(2^{m−1}·m) time, O(m²) memory per branch.
package xor

import (
	"fmt"
	"log/slog"
	"math"
	"math/bits"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// maxStrategyBits caps the search at 2^62 Alice strategies.
const maxStrategyBits = 62

// Strategy is an optimal deterministic strategy pair and its winning probability.
type Strategy struct {
	// Alice[x] is Alice's answer bit for question x.
	Alice []uint8

	// Bob[y] is Bob's best-response answer bit for question y.
	Bob []uint8

	// Value is the winning probability of the pair, in [0,1].
	Value float64
}

// xorEngine holds the immutable search data plus per-branch state.
type xorEngine struct {
	m, k   int
	bias   []float64 // row-major m×k, shared read-only
	rest   []float64 // rest[d] = Σ_{x≥d} Σ_y |B[x,y]|, shared read-only
	target float64   // early-exit threshold on the bias

	acc   [][]float64 // acc[d] = column sums after fixing s_0..s_{d-1}
	strat []uint8

	best      float64
	bestStrat []uint8
	done      bool

	nodes, pruned int
}

// newXOREngine prefetches the bound table from a row-major bias matrix.
func newXOREngine(bias []float64, m, k int, tol float64) *xorEngine {
	e := &xorEngine{m: m, k: k, bias: bias, rest: make([]float64, m+1)}
	var x, y int
	for x = m - 1; x >= 0; x-- {
		e.rest[x] = e.rest[x+1]
		for y = 0; y < k; y++ {
			e.rest[x] += math.Abs(bias[x*k+y])
		}
	}
	e.target = e.rest[0] - 2*tol
	e.reset()

	return e
}

// reset allocates fresh branch state.
func (e *xorEngine) reset() {
	e.acc = make([][]float64, e.m+1)
	for d := range e.acc {
		e.acc[d] = make([]float64, e.k)
	}
	e.strat = make([]uint8, e.m)
	e.bestStrat = make([]uint8, e.m)
	e.best = -1
	e.done = false
	e.nodes, e.pruned = 0, 0
}

// branch returns an engine sharing the read-only tables of e.
func (e *xorEngine) branch() *xorEngine {
	b := &xorEngine{m: e.m, k: e.k, bias: e.bias, rest: e.rest, target: e.target}
	b.reset()

	return b
}

// push fixes Alice's bit at depth x, filling acc[x+1].
func (e *xorEngine) push(x int, a uint8) {
	row := e.bias[x*e.k : (x+1)*e.k]
	if a == 0 {
		floats.AddTo(e.acc[x+1], e.acc[x], row)
	} else {
		floats.SubTo(e.acc[x+1], e.acc[x], row)
	}
	e.strat[x] = a
}

// absSum is Bob's best-response bias for a column accumulator.
func absSum(col []float64) float64 {
	var s float64
	for _, v := range col {
		s += math.Abs(v)
	}

	return s
}

// dfs performs the core search from depth x.
func (e *xorEngine) dfs(x int) {
	if e.done {
		return
	}
	e.nodes++
	cur := absSum(e.acc[x])

	if x == e.m {
		if cur > e.best {
			e.best = cur
			copy(e.bestStrat, e.strat)
			if e.best >= e.target {
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

	var a uint8
	for a = 0; a < 2; a++ {
		e.push(x, a)
		e.dfs(x + 1)
		if e.done {
			return
		}
	}
}

// run searches every completion of prefix (prefix[0] is a₀).
func (e *xorEngine) run(prefix []uint8) {
	for x, a := range prefix {
		e.push(x, a)
	}
	e.dfs(len(prefix))
}

// bobResponse recomputes Bob's best response to Alice's bits.
func (e *xorEngine) bobResponse(alice []uint8) []uint8 {
	col := make([]float64, e.k)
	for x, a := range alice {
		row := e.bias[x*e.k : (x+1)*e.k]
		if a == 0 {
			floats.Add(col, row)
		} else {
			floats.Sub(col, row)
		}
	}
	bob := make([]uint8, e.k)
	for y, v := range col {
		if v < 0 {
			bob[y] = 1
		}
	}

	return bob
}

// splitBits returns ℓ, the number of bits after a₀ split into parallel
// prefixes: enough for two branches per worker, capped by the free bits.
func splitBits(parallelism, m int) int {
	l := bits.Len(uint(parallelism-1)) + 1
	if l > m-1 {
		l = m - 1
	}

	return l
}

// searchBias returns the optimal bias and Alice's bits (a₀ = 0).
func (g *Game) searchBias(bias []float64, m, k int) (float64, []uint8) {
	root := newXOREngine(bias, m, k, g.tol)
	l := 0
	if g.parallelism > 1 {
		l = splitBits(g.parallelism, m)
	}
	if l <= 0 {
		root.run([]uint8{0})
		g.logger.Debug("xor: classical search",
			slog.Int("nodes", root.nodes), slog.Int("pruned", root.pruned), slog.Float64("bias", root.best))

		return root.best, root.bestStrat
	}

	branches := make([]*xorEngine, 1<<l)
	var eg errgroup.Group
	eg.SetLimit(g.parallelism)
	for i := range branches {
		i := i
		eg.Go(func() error {
			prefix := make([]uint8, l+1)
			for j := 0; j < l; j++ {
				prefix[1+j] = uint8(i >> (l - 1 - j) & 1)
			}
			b := root.branch()
			b.run(prefix)
			branches[i] = b

			return nil
		})
	}
	_ = eg.Wait()

	// Max-reduction in branch order; ties keep the earliest branch.
	best := branches[0]
	var nodes, pruned int
	for _, b := range branches {
		nodes += b.nodes
		pruned += b.pruned
		if b.best > best.best {
			best = b
		}
	}
	g.logger.Debug("xor: classical search",
		slog.Int("branches", len(branches)), slog.Int("nodes", nodes),
		slog.Int("pruned", pruned), slog.Float64("bias", best.best))

	return best.best, best.bestStrat
}

// exhaustiveBias enumerates all 2^m sign vectors without pruning or
// symmetry reduction. Reference implementation for the pruned search.
func exhaustiveBias(bias []float64, m, k int) float64 {
	var (
		best = -1.0
		col  = make([]float64, k)
		mask uint64
		x    int
		y    int
		v    float64
	)
	for mask = 0; mask < 1<<uint(m); mask++ {
		for y = range col {
			col[y] = 0
		}
		for x = 0; x < m; x++ {
			row := bias[x*k : (x+1)*k]
			if mask>>uint(x)&1 == 0 {
				floats.Add(col, row)
			} else {
				floats.Sub(col, row)
			}
		}
		if v = absSum(col); v > best {
			best = v
		}
	}

	return best
}

// ClassicalStrategy returns an optimal deterministic strategy pair of the
// single-copy XOR game the solvers see (see Expand).
//
// Errors:
//   - ErrNotXOR for Conjunctive mode with Reps() > 1 (answers are tuples; use
//     ToNonlocalGame().ClassicalStrategy).
//   - ErrTooLarge when 2^{m−1} exceeds 2^62.
func (g *Game) ClassicalStrategy() (Strategy, error) {
	s, err := g.Expand()
	if err != nil {
		return Strategy{}, err
	}
	m := s.prob.Rows()
	if m-1 > maxStrategyBits {
		return Strategy{}, fmt.Errorf("ClassicalStrategy: 2^%d strategies: %w", m-1, ErrTooLarge)
	}
	b, err := s.bias()
	if err != nil {
		return Strategy{}, fmt.Errorf("ClassicalStrategy: %w", err)
	}
	data := b.RowMajor()
	best, alice := s.searchBias(data, m, m)

	e := &xorEngine{m: m, k: m, bias: data}

	return Strategy{
		Alice: append([]uint8(nil), alice...),
		Bob:   e.bobResponse(alice),
		Value: clamp01(0.5 + 0.5*best),
	}, nil
}

// ClassicalValue returns the classical (shared-randomness) value in [0,1].
// Conjunctive repetitions are solved on the equivalent general game.
func (g *Game) ClassicalValue() (float64, error) {
	if g.reps > 1 && g.mode == Conjunctive {
		ng, err := g.ToNonlocalGame()
		if err != nil {
			return 0, err
		}

		return ng.ClassicalValue()
	}
	st, err := g.ClassicalStrategy()
	if err != nil {
		return 0, err
	}

	return st.Value, nil
}

// clamp01 removes floating drift outside [0,1].
func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
