// SPDX-License-Identifier: MIT
// Package xor_test validates construction, options and accessors of XOR games.
package xor_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xorgames/xor"
)

var (
	chshProb = [][]float64{{0.25, 0.25}, {0.25, 0.25}}
	chshPred = [][]float64{{0, 0}, {0, 1}}

	oddCycleProb = [][]float64{
		{0.1, 0.1, 0, 0, 0},
		{0, 0.1, 0.1, 0, 0},
		{0, 0, 0.1, 0.1, 0},
		{0, 0, 0, 0.1, 0.1},
		{0.1, 0, 0, 0, 0.1},
	}
	oddCyclePred = [][]float64{
		{0, 1, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0},
	}
)

func mustGame(t testing.TB, prob, pred [][]float64, opts ...xor.Option) *xor.Game {
	t.Helper()
	g, err := xor.NewGame(prob, pred, opts...)
	require.NoError(t, err)

	return g
}

func TestNewGame_Errors(t *testing.T) {
	t.Parallel()

	sixth := 1.0 / 6
	tests := []struct {
		name    string
		prob    [][]float64
		pred    [][]float64
		opts    []xor.Option
		wantErr error
	}{
		{"empty", [][]float64{}, [][]float64{}, nil, xor.ErrEmptyGame},
		{"empty row", [][]float64{{}}, [][]float64{{}}, nil, xor.ErrEmptyGame},
		{"non-square", [][]float64{{sixth, sixth, sixth}, {sixth, sixth, sixth}},
			[][]float64{{0, 0, 0}, {0, 0, 0}}, nil, xor.ErrNonSquare},
		{"pred shape", chshProb, [][]float64{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}}, nil, xor.ErrShapeMismatch},
		{"ragged pred", chshProb, [][]float64{{0, 0}, {0}}, nil, xor.ErrShapeMismatch},
		{"nan prob", [][]float64{{math.NaN(), 0.25}, {0.25, 0.25}}, chshPred, nil, xor.ErrNonFinite},
		{"inf pred", chshProb, [][]float64{{0, math.Inf(1)}, {0, 1}}, nil, xor.ErrNonFinite},
		{"negative", [][]float64{{0.25, -0.25}, {0.25, 0.25}}, chshPred, nil, xor.ErrNegativeProbability},
		{"sum", [][]float64{{0.25, 1}, {0.25, 0.25}}, chshPred, nil, xor.ErrProbabilitySum},
		{"zero column with bad mass", [][]float64{{0.25, 0}, {0.25, 0}}, chshPred, nil, xor.ErrProbabilitySum},
		{"zero column", [][]float64{{0.5, 0}, {0.5, 0}}, chshPred, nil, xor.ErrZeroQuestion},
		{"zero row", [][]float64{{0.5, 0.5}, {0, 0}}, chshPred, nil, xor.ErrZeroQuestion},
		{"pred not binary", chshProb, [][]float64{{0, 2}, {0, 1}}, nil, xor.ErrPredicateNotBinary},
		{"pred fractional", chshProb, [][]float64{{0, 0.5}, {0, 1}}, nil, xor.ErrPredicateNotBinary},
		{"reps", chshProb, chshPred, []xor.Option{xor.WithReps(0)}, xor.ErrInvalidReps},
		{"tol negative", chshProb, chshPred, []xor.Option{xor.WithTol(-1)}, xor.ErrInvalidTolerance},
		{"tol nan", chshProb, chshPred, []xor.Option{xor.WithTol(math.NaN())}, xor.ErrInvalidTolerance},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := xor.NewGame(tc.prob, tc.pred, tc.opts...)
			require.Error(t, err)
			require.Truef(t, errors.Is(err, tc.wantErr), "expected errors.Is(%v, %v)", err, tc.wantErr)
		})
	}
}

func TestNewGame_SumWithinTolerance(t *testing.T) {
	t.Parallel()

	prob := [][]float64{{0.25, 0.25}, {0.25, 0.25 + 1e-9}}
	_, err := xor.NewGame(prob, chshPred)
	require.NoError(t, err)

	_, err = xor.NewGame(prob, chshPred, xor.WithTol(1e-12))
	require.ErrorIs(t, err, xor.ErrProbabilitySum)
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { xor.WithParallelism(0) })
	require.Panics(t, func() { xor.WithSDPMaxIter(0) })
	require.Panics(t, func() { xor.WithRepetitionMode(xor.RepetitionMode(7)) })
	require.NotPanics(t, func() { xor.WithLogger(nil) })
	require.NotPanics(t, func() { xor.WithCache(nil) })
}

func TestGame_Accessors(t *testing.T) {
	t.Parallel()

	prob := [][]float64{{0.25, 0.25}, {0.25, 0.25}}
	pred := [][]float64{{0, 0}, {0, 1}}
	g := mustGame(t, prob, pred, xor.WithReps(3), xor.WithTol(1e-4), xor.WithRepetitionMode(xor.XORProduct))

	require.Equal(t, 3, g.Reps())
	require.Equal(t, 1e-4, g.Tol())
	require.Equal(t, xor.XORProduct, g.Mode())
	require.Equal(t, "xor-product", g.Mode().String())
	require.Equal(t, 2, g.Questions())

	// Inputs and outputs are copies.
	prob[0][0] = 0.9
	pred[1][1] = 0
	got := g.ProbMat()
	got[0][1] = 5
	require.Equal(t, chshProb, g.ProbMat())
	require.Equal(t, chshPred, g.PredMat())

	require.Equal(t, [][]float64{{0.25, 0.25}, {0.25, -0.25}}, g.BiasMatrix())
}

func TestRepetitionMode_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "conjunctive", xor.Conjunctive.String())
	require.Equal(t, "unknown", xor.RepetitionMode(-1).String())
}

func TestExpand(t *testing.T) {
	t.Parallel()

	single := mustGame(t, chshProb, chshPred)
	same, err := single.Expand()
	require.NoError(t, err)
	require.Same(t, single, same)

	conj := mustGame(t, chshProb, chshPred, xor.WithReps(2))
	_, err = conj.Expand()
	require.ErrorIs(t, err, xor.ErrNotXOR)

	g := mustGame(t, chshProb, chshPred, xor.WithReps(2), xor.WithRepetitionMode(xor.XORProduct))
	e, err := g.Expand()
	require.NoError(t, err)
	require.Equal(t, 1, e.Reps())
	require.Equal(t, 4, e.Questions())

	// Question tuples (x1,x2) flatten as 2·x1+x2; pred = x1·y1 ⊕ x2·y2.
	pred := e.PredMat()
	prob := e.ProbMat()
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			want := float64(((x >> 1) & (y >> 1)) ^ (x & y & 1))
			require.Equalf(t, want, pred[x][y], "pred(%d,%d)", x, y)
			require.InDelta(t, 1.0/16, prob[x][y], 1e-15)
		}
	}
}

func TestExpansionCache(t *testing.T) {
	t.Parallel()

	_, err := xor.NewExpansionCache(0)
	require.Error(t, err)

	cache, err := xor.NewExpansionCache(4)
	require.NoError(t, err)
	opts := []xor.Option{xor.WithReps(2), xor.WithRepetitionMode(xor.XORProduct), xor.WithCache(cache)}

	g1 := mustGame(t, chshProb, chshPred, opts...)
	g2 := mustGame(t, [][]float64{{0.25, 0.25}, {0.25, 0.25}}, [][]float64{{0, 0}, {0, 1}}, opts...)

	e1, err := g1.Expand()
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())
	e2, err := g2.Expand()
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())
	require.Equal(t, e1.PredMat(), e2.PredMat())

	g3 := mustGame(t, chshProb, chshPred, xor.WithReps(3), xor.WithRepetitionMode(xor.XORProduct), xor.WithCache(cache))
	_, err = g3.Expand()
	require.NoError(t, err)
	require.Equal(t, 2, cache.Len())

	cache.Purge()
	require.Equal(t, 0, cache.Len())
}
