// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xorgames/matrix"
)

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

func TestHadamard(t *testing.T) {
	t.Parallel()

	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	b := mustDense(t, [][]float64{{5, 6}, {7, 8}})
	got, err := matrix.Hadamard(a, b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{5, 12}, {21, 32}}, got.ToRows())

	_, err = matrix.Hadamard(a, mustDense(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Hadamard(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTransposeScale(t *testing.T) {
	t.Parallel()

	a := mustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	tr, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr.ToRows())

	sc, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{-2, -4, -6}, {-8, -10, -12}}, sc.ToRows())
}

func TestSums(t *testing.T) {
	t.Parallel()

	rows, cols, total, err := matrix.Sums(mustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}}))
	require.NoError(t, err)
	require.Equal(t, []float64{6, 15}, rows)
	require.Equal(t, []float64{5, 7, 9}, cols)
	require.Equal(t, 21.0, total)

	_, _, _, err = matrix.Sums(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestKron(t *testing.T) {
	t.Parallel()

	a := mustDense(t, [][]float64{{1, 2}, {3, 0}})
	b := mustDense(t, [][]float64{{0, 5}, {6, 7}})
	got, err := matrix.Kron(a, b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{
		{0, 5, 0, 10},
		{6, 7, 12, 14},
		{0, 15, 0, 0},
		{18, 21, 0, 0},
	}, got.ToRows())

	// Non-square operands.
	row := mustDense(t, [][]float64{{1, -1}})
	col := mustDense(t, [][]float64{{2}, {3}})
	rc, err := matrix.Kron(row, col)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{2, -2}, {3, -3}}, rc.ToRows())
}

func TestKronPower(t *testing.T) {
	t.Parallel()

	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	p1, err := matrix.KronPower(a, 1)
	require.NoError(t, err)
	require.Equal(t, a.ToRows(), p1.ToRows())

	p3, err := matrix.KronPower(a, 3)
	require.NoError(t, err)
	aa, err := matrix.Kron(a, a)
	require.NoError(t, err)
	want, err := matrix.Kron(aa, a)
	require.NoError(t, err)
	require.Equal(t, want.ToRows(), p3.ToRows())

	// Entry at tuple indices is the product of the per-factor entries.
	s := matrix.PowerShape(2, 3)
	i, err := s.Flat([]int{1, 0, 1})
	require.NoError(t, err)
	j, err := s.Flat([]int{0, 1, 1})
	require.NoError(t, err)
	v, err := p3.At(i, j)
	require.NoError(t, err)
	require.Equal(t, 3.0*2*4, v)

	_, err = matrix.KronPower(a, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.KronPower(a, 40)
	require.ErrorIs(t, err, matrix.ErrOverflow)
}
