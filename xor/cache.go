// SPDX-License-Identifier: MIT

package xor

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/xorgames/matrix"
)

// ExpansionCache memoizes XORProduct expansions keyed by the content of the
// base game, the repetition count and the mode. It is safe for concurrent
// use; share one instance between games through WithCache.
//
// Cached matrices are never mutated, so games built from the same entry
// share storage.
type ExpansionCache struct {
	entries *lru.Cache[expansionKey, expansion]
}

// expansionKey identifies an expansion. sum is the xxhash of the shape and
// the IEEE-754 bits of prob and pred.
type expansionKey struct {
	sum  uint64
	dim  int
	reps int
	mode RepetitionMode
}

// expansion keeps the base matrices next to the expanded ones so a hit can be
// told apart from a fingerprint collision.
type expansion struct {
	baseProb, basePred []float64
	prob, pred         *matrix.Dense
}

// matches reports whether e was expanded from the base matrices of g.
func (e expansion) matches(g *Game) bool {
	return floats.Equal(e.baseProb, g.prob.RowMajor()) && floats.Equal(e.basePred, g.pred.RowMajor())
}

// NewExpansionCache returns an LRU cache holding at most size expansions.
func NewExpansionCache(size int) (*ExpansionCache, error) {
	c, err := lru.New[expansionKey, expansion](size)
	if err != nil {
		return nil, fmt.Errorf("NewExpansionCache(%d): %w", size, err)
	}

	return &ExpansionCache{entries: c}, nil
}

// Len reports the number of cached expansions.
func (c *ExpansionCache) Len() int { return c.entries.Len() }

// Purge drops every cached expansion.
func (c *ExpansionCache) Purge() { c.entries.Purge() }

// lookup returns the expansion of g stored under k. An entry whose base
// matrices differ from g's is a collision and reported as a miss.
func (c *ExpansionCache) lookup(k expansionKey, g *Game) (expansion, bool) {
	e, ok := c.entries.Get(k)
	if !ok || !e.matches(g) {
		return expansion{}, false
	}

	return e, true
}

// store records the expansion of g under k, overwriting a colliding entry.
func (c *ExpansionCache) store(k expansionKey, g *Game, prob, pred *matrix.Dense) {
	c.entries.Add(k, expansion{
		baseProb: g.prob.RowMajor(),
		basePred: g.pred.RowMajor(),
		prob:     prob,
		pred:     pred,
	})
}

// keyOf fingerprints the base matrices of g.
func keyOf(g *Game) expansionKey {
	var (
		n   = g.prob.Rows()
		buf = make([]byte, 0, 8*(1+2*n*n))
		v   float64
	)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(n))
	for _, v = range g.prob.RowMajor() {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	for _, v = range g.pred.RowMajor() {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}

	return expansionKey{sum: xxhash.Sum64(buf), dim: n, reps: g.reps, mode: g.mode}
}
