// SPDX-License-Identifier: MIT

// Package xor: functional configuration for Game construction.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Data-level values (reps, tol) are recorded as given and validated by
//     NewGame, so every bad input surfaces through one error path.
//   - Structural knobs (mode, parallelism, SDP iteration cap) panic on
//     nonsensical values: that is a programmer error, not a data error.
package xor

import (
	"io"
	"log/slog"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultReps plays a single copy of the game.
	DefaultReps = 1

	// DefaultTol governs the probability-sum check, the classical early exit
	// and the relative duality gap of the quantum SDP.
	DefaultTol = 1e-6

	// DefaultSDPMaxIter is the interior-point iteration cap of the first
	// attempt; each retry doubles it.
	DefaultSDPMaxIter = 100

	// DefaultParallelism runs the classical search on the calling goroutine.
	DefaultParallelism = 1

	// sdpAttempts is the total number of SDP solves before ErrNotConverged.
	sdpAttempts = 3
)

const (
	panicModeInvalid        = "xor: WithRepetitionMode: unknown mode"
	panicParallelismInvalid = "xor: WithParallelism: k must be >= 1"
	panicSDPMaxIterInvalid  = "xor: WithSDPMaxIter: n must be >= 1"
)

// RepetitionMode selects how Reps() copies of a game are combined.
type RepetitionMode int

const (
	// Conjunctive plays the copies in parallel and wins iff every copy is won.
	Conjunctive RepetitionMode = iota

	// XORProduct wins iff the XOR of all answer bits matches the XOR of all
	// predicates; the result is again an XOR game over m^n questions.
	XORProduct
)

// String implements fmt.Stringer.
func (m RepetitionMode) String() string {
	switch m {
	case Conjunctive:
		return "conjunctive"
	case XORProduct:
		return "xor-product"
	default:
		return "unknown"
	}
}

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*options)

// options stores the effective configuration after applying Option setters.
type options struct {
	reps        int
	tol         float64
	mode        RepetitionMode
	parallelism int
	sdpMaxIter  int
	cache       *ExpansionCache
	logger      *slog.Logger
}

// WithReps sets the number of parallel copies. NewGame rejects reps < 1
// with ErrInvalidReps.
func WithReps(reps int) Option {
	return func(o *options) { o.reps = reps }
}

// WithTol sets the numeric tolerance. NewGame rejects non-finite or
// non-positive values with ErrInvalidTolerance.
func WithTol(tol float64) Option {
	return func(o *options) { o.tol = tol }
}

// WithRepetitionMode selects Conjunctive (default) or XORProduct repetition.
// Panics on an unknown mode.
func WithRepetitionMode(m RepetitionMode) Option {
	if m != Conjunctive && m != XORProduct {
		panic(panicModeInvalid)
	}

	return func(o *options) { o.mode = m }
}

// WithParallelism bounds the number of goroutines the classical search may
// use for its top-level branches. Panics when k < 1.
func WithParallelism(k int) Option {
	if k < 1 {
		panic(panicParallelismInvalid)
	}

	return func(o *options) { o.parallelism = k }
}

// WithSDPMaxIter sets the iteration cap of the first SDP attempt.
// Panics when n < 1.
func WithSDPMaxIter(n int) Option {
	if n < 1 {
		panic(panicSDPMaxIterInvalid)
	}

	return func(o *options) { o.sdpMaxIter = n }
}

// WithCache memoizes XORProduct expansions in c. A nil cache disables memoization.
func WithCache(c *ExpansionCache) Option {
	return func(o *options) { o.cache = c }
}

// WithLogger routes debug records (SDP progress, search statistics, LP
// sizes, cache hits) to l. A nil logger keeps the default discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// discardLogger is the silent default.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// gatherOptions applies setters over documented defaults.
func gatherOptions(opts ...Option) options {
	o := options{
		reps:        DefaultReps,
		tol:         DefaultTol,
		mode:        Conjunctive,
		parallelism: DefaultParallelism,
		sdpMaxIter:  DefaultSDPMaxIter,
		logger:      discardLogger(),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
