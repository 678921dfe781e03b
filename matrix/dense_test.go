// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xorgames/matrix"
)

func TestNewDense(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDense(2, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDense(math.MaxInt/2, 3)
	require.ErrorIs(t, err, matrix.ErrOverflow)

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	r, c := m.Shape()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	require.Equal(t, make([]float64, 6), m.RowMajor())
}

func TestNewDenseFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    [][]float64
		wantErr error
	}{
		{"nil", nil, matrix.ErrInvalidDimensions},
		{"empty row", [][]float64{{}}, matrix.ErrInvalidDimensions},
		{"ragged", [][]float64{{1, 2}, {3}}, matrix.ErrRagged},
		{"nan", [][]float64{{1, math.NaN()}}, matrix.ErrNaNInf},
		{"inf", [][]float64{{1}, {math.Inf(-1)}}, matrix.ErrNaNInf},
		{"ok", [][]float64{{1, 2}, {3, 4}}, nil},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := matrix.NewDenseFrom(tc.rows)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.rows, m.ToRows())
		})
	}
}

func TestDense_AtSet(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 0, 3.5))
	v, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 3.5, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
}

func TestDense_CopiesAreIndependent(t *testing.T) {
	t.Parallel()

	src := [][]float64{{1, 2}, {3, 4}}
	m, err := matrix.NewDenseFrom(src)
	require.NoError(t, err)
	src[0][0] = 9

	cl := m.Clone()
	require.NoError(t, cl.Set(0, 1, 7))
	flat := m.RowMajor()
	flat[3] = 8
	rows := m.ToRows()
	rows[1][0] = 6

	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, m.ToRows())
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}
