// SPDX-License-Identifier: MIT
package nonlocal

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/xorgames/matrix"
)

// randomGame draws a positive distribution and a random {0,1} referee.
func randomGame(t *testing.T, r *rand.Rand, nA, nB, nX, nY int) *Game {
	t.Helper()
	ref, err := NewReferee(nA, nB, nX, nY)
	require.NoError(t, err)
	for i := range ref.data {
		ref.data[i] = float64(r.IntN(2))
	}
	prob := make([][]float64, nX)
	var total float64
	for x := range prob {
		prob[x] = make([]float64, nY)
		for y := range prob[x] {
			prob[x][y] = 0.1 + r.Float64()
			total += prob[x][y]
		}
	}
	for x := range prob {
		for y := range prob[x] {
			prob[x][y] /= total
		}
	}
	g, err := NewGame(prob, ref)
	require.NoError(t, err)

	return g
}

// bruteClassical enumerates every pair of deterministic strategies.
func bruteClassical(g *Game) float64 {
	nA, nB, nX, nY := g.referee.Dims()
	fa, fb := make([]int, nX), make([]int, nY)
	best := 0.0
	var next func(v []int, base int) bool
	next = func(v []int, base int) bool {
		for i := range v {
			if v[i]++; v[i] < base {
				return true
			}
			v[i] = 0
		}
		return false
	}
	for {
		for i := range fb {
			fb[i] = 0
		}
		for {
			var v float64
			for x := 0; x < nX; x++ {
				for y := 0; y < nY; y++ {
					p, _ := g.prob.At(x, y)
					v += p * g.referee.at(fa[x], fb[y], x, y)
				}
			}
			if v > best {
				best = v
			}
			if !next(fb, nB) {
				break
			}
		}
		if !next(fa, nA) {
			break
		}
	}

	return best
}

func TestClassical_MatchesBruteForce(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(5, 8))
	dims := [][4]int{{2, 2, 2, 2}, {3, 2, 2, 3}, {2, 3, 3, 2}, {3, 3, 3, 3}, {2, 2, 4, 4}}
	for _, d := range dims {
		g := randomGame(t, r, d[0], d[1], d[2], d[3])
		want := bruteClassical(g)
		got, err := g.ClassicalValue()
		require.NoError(t, err)
		require.InDeltaf(t, want, got, 1e-9, "dims %v", d)
	}
}

func TestNonsignalingLP_Structure(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(2, 3))
	for _, d := range [][4]int{{2, 2, 2, 2}, {3, 2, 2, 3}, {2, 2, 3, 1}} {
		nA, nB, nX, nY := d[0], d[1], d[2], d[3]
		g := randomGame(t, r, nA, nB, nX, nY)
		prog := buildNonsignalingLP(g)
		rows, cols := prog.a.Dims()
		require.Equal(t, nX*nY*nA*nB, cols)
		require.Equal(t, nX*nY+nX*(nY-1)*(nA-1)+(nX-1)*nY*(nB-1), rows)

		// Full row rank.
		var svd mat.SVD
		require.True(t, svd.Factorize(prog.a, mat.SVDNone))
		require.Equal(t, rows, svd.Rank(1e-10))

		// Uniform local noise p(a,b|x,y) = 1/(A·B) is non-signaling and feasible.
		p := mat.NewVecDense(cols, nil)
		for i := 0; i < cols; i++ {
			p.SetVec(i, 1/float64(nA*nB))
		}
		var lhs mat.VecDense
		lhs.MulVec(prog.a, p)
		for i := 0; i < rows; i++ {
			require.InDelta(t, prog.rhs[i], lhs.AtVec(i), 1e-12)
		}
	}
}

func TestDigitTable(t *testing.T) {
	t.Parallel()

	d, err := digitTable(3, 2)
	require.NoError(t, err)
	require.Len(t, d, 9)
	require.Equal(t, []int{0, 0}, d[0])
	require.Equal(t, []int{1, 2}, d[5])
	require.Equal(t, []int{2, 2}, d[8])

	_, err = digitTable(0, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
