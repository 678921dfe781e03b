// Package nonlocal models general two-player, one-round non-local games.
//
// A Game is a question distribution π(x,y) over Alice's questions x and Bob's
// questions y, together with a referee tensor V(a,b,x,y) ∈ [0,1] that scores
// answer pair (a,b) on question pair (x,y). The package provides:
//
//   - NewGame and NewReferee: eager validation of the distribution and tensor.
//   - Repeat: conjunctive parallel repetition: n copies are played at once and
//     the referee accepts iff every copy accepts (answers become base-A tuples).
//   - ClassicalValue: branch-and-bound over Alice's deterministic strategies
//     with Bob best-responding per question.
//   - NonsignalingValue: a single linear program over the non-signaling polytope.
//
// Complexity: the classical solver visits up to A^X strategies; the
// non-signaling LP has A·B·X·Y variables. Both grow exponentially with Reps.
package nonlocal
