// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xorgames/matrix"
)

// TestValidateSameShape covers nil inputs, matching and mismatched dimensions.
func TestValidateSameShape(t *testing.T) {
	t.Parallel()

	zeros := func(r, c int) matrix.Matrix {
		m, err := matrix.NewDense(r, c)
		require.NoError(t, err)
		return m
	}
	var typedNil *matrix.Dense

	tests := []struct {
		name    string
		a, b    matrix.Matrix
		wantErr error
	}{
		{"both nil", nil, nil, matrix.ErrNilMatrix},
		{"first nil", nil, zeros(2, 2), matrix.ErrNilMatrix},
		{"typed nil", typedNil, zeros(2, 2), matrix.ErrNilMatrix},
		{"second nil", zeros(2, 2), nil, matrix.ErrNilMatrix},
		{"equal 2x3", zeros(2, 3), zeros(2, 3), nil},
		{"row mismatch", zeros(2, 3), zeros(3, 3), matrix.ErrDimensionMismatch},
		{"col mismatch", zeros(2, 3), zeros(2, 4), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSameShape(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Truef(t, errors.Is(err, tc.wantErr),
					"expected errors.Is(%v, %v)", err, tc.wantErr)
			}
		})
	}
}

// TestValidateSquare covers nil inputs, square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	m22, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	m23, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	require.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateSquare(m22))
	require.ErrorIs(t, matrix.ValidateSquare(m23), matrix.ErrNonSquare)
}

// fakeMatrix lets ValidateFinite see values that Dense refuses to store.
type fakeMatrix struct{ v float64 }

func (f fakeMatrix) Rows() int { return 1 }
func (f fakeMatrix) Cols() int { return 2 }

func (f fakeMatrix) At(i, j int) (float64, error) {
	if j == 1 {
		return f.v, nil
	}

	return 0, nil
}

func (f fakeMatrix) Set(i, j int, v float64) error { return nil }
func (f fakeMatrix) Clone() matrix.Matrix          { return f }

func TestValidateFinite(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateFinite(fakeMatrix{v: 2}))

	inf := fakeMatrix{v: math.Inf(1)}
	err := matrix.ValidateFinite(inf)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	require.Contains(t, err.Error(), "(0,1)")
}
