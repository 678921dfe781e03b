// SPDX-License-Identifier: MIT
package xor_test

import (
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/xorgames/xor"
)

func benchGame(b *testing.B, m int, opts ...xor.Option) *xor.Game {
	b.Helper()
	r := rand.New(rand.NewPCG(42, uint64(m)))
	prob := make([][]float64, m)
	pred := make([][]float64, m)
	var total float64
	for i := range prob {
		prob[i] = make([]float64, m)
		pred[i] = make([]float64, m)
		for j := range prob[i] {
			prob[i][j] = 0.1 + r.Float64()
			total += prob[i][j]
			pred[i][j] = float64(r.IntN(2))
		}
	}
	for i := range prob {
		for j := range prob[i] {
			prob[i][j] /= total
		}
	}

	return mustGame(b, prob, pred, opts...)
}

func BenchmarkClassicalValue_16(b *testing.B) {
	g := benchGame(b, 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.ClassicalValue()
	}
}

func BenchmarkClassicalValue_16_Parallel4(b *testing.B) {
	g := benchGame(b, 16, xor.WithParallelism(4))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.ClassicalValue()
	}
}

func BenchmarkQuantumValue_16(b *testing.B) {
	g := benchGame(b, 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.QuantumValue()
	}
}

func BenchmarkNonsignalingValue_4(b *testing.B) {
	g := benchGame(b, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.NonsignalingValue()
	}
}

func BenchmarkExpand_CHSH3_Cached(b *testing.B) {
	cache, err := xor.NewExpansionCache(8)
	if err != nil {
		b.Fatal(err)
	}
	g := mustGame(b, chshProb, chshPred,
		xor.WithReps(3), xor.WithRepetitionMode(xor.XORProduct), xor.WithCache(cache))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.Expand()
	}
}
