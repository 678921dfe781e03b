// Package xorgames computes the values of two-player non-local games.
//
// Three correlation models are covered for XOR games:
//
//	classical     shared randomness          branch-and-bound over deterministic strategies
//	quantum       shared entanglement        Tsirelson SDP (primal–dual interior point)
//	non-signaling no-signaling correlations  linear program over the polytope
//
// Under the hood, everything is organized under three subpackages:
//
//	matrix/   row-major Dense, validators, Hadamard/Kronecker kernels, Shape index arithmetic, SVD
//	nonlocal/ general games: referee tensor, conjunctive repetition, classical and non-signaling values
//	xor/      XOR games: validation, XOR-product repetition and cache, all three values, conversion
//
// Quick example (CHSH):
//
//	g, _ := xor.NewGame(
//		[][]float64{{0.25, 0.25}, {0.25, 0.25}},
//		[][]float64{{0, 0}, {0, 1}},
//	)
//	cv, _ := g.ClassicalValue()    // 0.75
//	qv, _ := g.QuantumValue()      // cos²(π/8)
//	ns, _ := g.NonsignalingValue() // 1
//
//	go get github.com/katalvlaran/xorgames/xor
package xorgames
