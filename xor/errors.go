// SPDX-License-Identifier: MIT

package xor

import "errors"

// Sentinel errors. Validators wrap them with the failing check and the
// offending coordinates; callers match via errors.Is.
//
// Validation order (first failure wins):
//
//	options → ingest (empty, ragged, finite) → square → shape → negative → sum → binary → zero question.
var (
	// ErrEmptyGame is returned for a probability matrix without rows or columns.
	ErrEmptyGame = errors.New("xor: empty game")

	// ErrNonSquare is returned when the probability matrix is not square.
	ErrNonSquare = errors.New("xor: probability matrix is not square")

	// ErrShapeMismatch covers ragged rows and prob/pred shape disagreement.
	ErrShapeMismatch = errors.New("xor: shape mismatch")

	// ErrNonFinite signals a NaN or ±Inf entry.
	ErrNonFinite = errors.New("xor: non-finite entry")

	// ErrNegativeProbability signals a negative question probability.
	ErrNegativeProbability = errors.New("xor: negative probability")

	// ErrProbabilitySum signals that the probabilities do not sum to 1 within tol.
	ErrProbabilitySum = errors.New("xor: probabilities do not sum to 1")

	// ErrPredicateNotBinary signals a predicate entry outside {0,1}.
	ErrPredicateNotBinary = errors.New("xor: predicate entry not in {0,1}")

	// ErrZeroQuestion signals a question (row or column) that is never asked.
	ErrZeroQuestion = errors.New("xor: question with zero probability")

	// ErrInvalidReps signals a repetition count below 1.
	ErrInvalidReps = errors.New("xor: reps must be >= 1")

	// ErrInvalidTolerance signals a non-positive or non-finite tolerance.
	ErrInvalidTolerance = errors.New("xor: tolerance must be finite and > 0")

	// ErrNotXOR is returned when a conjunctively repeated game is asked for an
	// XOR-only representation (its answers are bit tuples, not bits).
	ErrNotXOR = errors.New("xor: conjunctive repetition is not an XOR game")

	// ErrTooLarge signals that a strategy space or an expansion is not addressable.
	ErrTooLarge = errors.New("xor: game too large")

	// ErrNotConverged signals that the Tsirelson SDP failed to close its
	// duality gap after every retry.
	ErrNotConverged = errors.New("xor: semidefinite program did not converge")
)
