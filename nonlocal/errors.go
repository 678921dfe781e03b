// SPDX-License-Identifier: MIT

package nonlocal

import "errors"

// Sentinel errors. Every message is prefixed with "nonlocal: ..."; validators
// wrap them with the failing check and coordinates, callers match via errors.Is.
var (
	// ErrNilReferee is returned when NewGame receives a nil referee tensor.
	ErrNilReferee = errors.New("nonlocal: referee is nil")

	// ErrShapeMismatch indicates that the question distribution and the
	// referee tensor disagree on the number of questions.
	ErrShapeMismatch = errors.New("nonlocal: shape mismatch")

	// ErrNonFinite signals a NaN or ±Inf in the distribution or tensor.
	ErrNonFinite = errors.New("nonlocal: non-finite entry")

	// ErrNegativeProbability signals a negative question probability.
	ErrNegativeProbability = errors.New("nonlocal: negative probability")

	// ErrProbabilitySum signals that the question distribution does not sum to 1.
	ErrProbabilitySum = errors.New("nonlocal: probabilities do not sum to 1")

	// ErrRefereeRange signals a referee entry outside [0,1].
	ErrRefereeRange = errors.New("nonlocal: referee entry outside [0,1]")

	// ErrTooLarge signals that the strategy space or a repeated tensor is not addressable.
	ErrTooLarge = errors.New("nonlocal: game too large")

	// ErrLPFailed signals that the non-signaling linear program did not reach an
	// optimum. On a validated game this indicates a constraint-construction bug.
	ErrLPFailed = errors.New("nonlocal: linear program failed")
)
