// SPDX-License-Identifier: MIT

package nonlocal

import (
	"fmt"
	"math"

	"github.com/katalvlaran/xorgames/matrix"
)

// Referee is the acceptance tensor V(a,b,x,y) of a non-local game.
// Axis order is (Alice answer, Bob answer, Alice question, Bob question);
// storage is flat, addressed through a matrix.Shape.
type Referee struct {
	shape matrix.Shape // {A, B, X, Y}
	data  []float64
}

// NewReferee allocates an all-zero (never accepting) referee tensor.
//
// Errors:
//   - ErrTooLarge wrapping matrix.ErrInvalidDimensions / matrix.ErrOverflow.
func NewReferee(answersA, answersB, questionsA, questionsB int) (*Referee, error) {
	s := matrix.Shape{answersA, answersB, questionsA, questionsB}
	size, err := s.Size()
	if err != nil {
		return nil, fmt.Errorf("NewReferee(%d,%d,%d,%d): %w: %w", answersA, answersB, questionsA, questionsB, ErrTooLarge, err)
	}

	return &Referee{shape: s, data: make([]float64, size)}, nil
}

// Dims returns (A, B, X, Y).
func (r *Referee) Dims() (answersA, answersB, questionsA, questionsB int) {
	return r.shape[0], r.shape[1], r.shape[2], r.shape[3]
}

// At returns V(a,b,x,y).
func (r *Referee) At(a, b, x, y int) (float64, error) {
	off, err := r.shape.Flat([]int{a, b, x, y})
	if err != nil {
		return 0, err
	}

	return r.data[off], nil
}

// Set writes V(a,b,x,y). Values must lie in [0,1].
func (r *Referee) Set(a, b, x, y int, v float64) error {
	off, err := r.shape.Flat([]int{a, b, x, y})
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("Referee.Set(%d,%d,%d,%d): %w", a, b, x, y, ErrNonFinite)
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("Referee.Set(%d,%d,%d,%d) = %g: %w", a, b, x, y, v, ErrRefereeRange)
	}
	r.data[off] = v

	return nil
}

// clone returns an independent copy.
func (r *Referee) clone() *Referee {
	return &Referee{
		shape: append(matrix.Shape(nil), r.shape...),
		data:  append([]float64(nil), r.data...),
	}
}

// at is the unchecked hot-path accessor.
func (r *Referee) at(a, b, x, y int) float64 {
	return r.data[((a*r.shape[1]+b)*r.shape[2]+x)*r.shape[3]+y]
}
