// SPDX-License-Identifier: MIT

package xor

// NonsignalingValue returns the maximum winning probability over all
// non-signaling correlations, solved as a linear program on the equivalent
// general game (see ToNonlocalGame and nonlocal.Game.NonsignalingValue).
//
// The LP has 4·m² variables for one copy and (4·m²)^n under Conjunctive
// repetition, so Reps() must stay small.
//
// Errors:
//   - nonlocal.ErrLPFailed wrapped when the solver reports failure; on a
//     validated game this is a construction bug and is surfaced as is.
func (g *Game) NonsignalingValue() (float64, error) {
	ng, err := g.ToNonlocalGame()
	if err != nil {
		return 0, err
	}

	return ng.NonsignalingValue()
}
