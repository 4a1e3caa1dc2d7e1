// Package timingsafe provides byte-sequence comparison whose running time is
// independent of where — or whether — the inputs differ.
//
// # Why not bytes.Equal
//
// bytes.Equal returns as soon as it finds the first mismatching byte.  When
// the compared value is secret (a password hash, an HMAC, an API token), the
// time taken by the comparison leaks how long the matching prefix is, and a
// remote attacker can recover the secret byte by byte from response-time
// measurements.
//
// [Equal] never short-circuits: it always walks a fixed number of steps no
// smaller than the longer operand (and never smaller than [MinSteps], which
// masks the timing of very short inputs behind a constant floor), folding
// every byte difference into a single accumulator with bitwise operations.
// There is deliberately no fast path for equal-length or identical inputs —
// the cost of a comparison must not depend on its outcome.
//
// # Scope
//
// Operand lengths are not secret to the same degree as contents: allocating
// and walking an input of a given size is inherently length-dependent.  Equal
// conceals the position of a mismatch completely and conceals a length
// mismatch to the extent feasible by folding the length difference into the
// same accumulator rather than branching on it.
package timingsafe
