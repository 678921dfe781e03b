// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/xorgames/matrix"
)

// ExampleKronPower addresses a Kronecker power through tuple indices.
func ExampleKronPower() {
	p, _ := matrix.NewDenseFrom([][]float64{{0.5, 0.5}, {0, 1}})
	p2, _ := matrix.KronPower(p, 2)

	s := matrix.PowerShape(2, 2)
	row, _ := s.Flat([]int{0, 1}) // (x1, x2) = (0, 1)
	col, _ := s.Flat([]int{1, 1})
	v, _ := p2.At(row, col)
	fmt.Println(p2.Rows(), p2.Cols(), v)
	// Output: 4 4 0.5
}

// ExampleSpectralNorm computes the largest singular value of a bias matrix.
func ExampleSpectralNorm() {
	b, _ := matrix.NewDenseFrom([][]float64{{3, 0}, {4, 0}})
	sigma, _ := matrix.SpectralNorm(b)
	fmt.Printf("%.3f\n", sigma)
	// Output: 5.000
}
