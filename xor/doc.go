// Package xor computes the values of two-player XOR games.
//
// An XOR game is a question distribution prob[x,y] over an m×m grid and a
// predicate pred[x,y] ∈ {0,1}: both players answer one bit and win iff
// a⊕b = pred[x,y]. The package provides:
//
//   - NewGame: eager validation (shape, finiteness, mass, binary predicate,
//     no unreachable question) returning an immutable Game.
//   - ClassicalValue / ClassicalStrategy: branch-and-bound over Alice's bits
//     with Bob best-responding in closed form, optionally parallel.
//   - QuantumValue: Tsirelson's SDP by a primal–dual interior-point method;
//     SpectralBound is the closed-form bound from σ_max of the bias matrix.
//   - NonsignalingValue: a linear program over the non-signaling polytope.
//   - ToNonlocalGame: the general referee-tensor form (package nonlocal).
//   - Expand / ExpansionCache: XOR-product parallel repetition, memoized.
//
// Repetition modes:
//
//	Conjunctive (default)  win every copy          CHSH, n=2: 0.625 / cos⁴(π/8) / 1
//	XORProduct             XOR of all outcomes     CHSH, n=2: 0.75  / 0.75      / 1
//
// Quick example:
//
//	g, _ := xor.NewGame(
//		[][]float64{{0.25, 0.25}, {0.25, 0.25}},
//		[][]float64{{0, 0}, {0, 1}},
//	)
//	cv, _ := g.ClassicalValue() // 0.75
//	qv, _ := g.QuantumValue()   // cos²(π/8) ≈ 0.8536
//
// Complexity: the classical solver is exponential in the number of questions
// of the (expanded) game, the LP grows as (4·m²)^n; callers pick Reps()
// accordingly.
package xor
