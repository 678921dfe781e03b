// SPDX-License-Identifier: MIT

// Package nonlocal: functional configuration for Game construction.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: WithX panics only on nonsensical values (programmer error).
//   - Options fields are unexported; public entry points consume ...Option.
package nonlocal

import (
	"io"
	"log/slog"
	"math"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultReps plays a single copy of the game.
	DefaultReps = 1

	// DefaultTol is the tolerance for the probability-sum check and the
	// classical early exit.
	DefaultTol = 1e-6

	// DefaultLPTol is handed to the simplex solver as its zero threshold.
	DefaultLPTol = 1e-10
)

const (
	panicRepsInvalid = "nonlocal: WithReps: reps must be >= 1"
	panicTolInvalid  = "nonlocal: WithTol: tol must be finite and > 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*options)

// options stores the effective configuration after applying Option setters.
type options struct {
	reps   int
	tol    float64
	lpTol  float64
	logger *slog.Logger
}

// WithReps sets the number of parallel copies (conjunctive repetition).
// Panics when reps < 1.
func WithReps(reps int) Option {
	if reps < 1 {
		panic(panicRepsInvalid)
	}

	return func(o *options) { o.reps = reps }
}

// WithTol sets the numeric tolerance used by validation and early exit.
// Panics when tol is not finite and positive.
func WithTol(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicTolInvalid)
	}

	return func(o *options) { o.tol = tol }
}

// WithLogger routes debug records (search statistics, LP sizes) to l.
// A nil logger keeps the default discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// discardLogger is the silent default; library code never logs unless asked.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// gatherOptions applies setters over documented defaults.
func gatherOptions(opts ...Option) options {
	o := options{
		reps:   DefaultReps,
		tol:    DefaultTol,
		lpTol:  DefaultLPTol,
		logger: discardLogger(),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
