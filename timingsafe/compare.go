package timingsafe

// MinSteps is the minimum number of loop iterations performed by [Equal],
// regardless of operand length.  Comparing two 3-byte inputs therefore costs
// the same as comparing two empty ones, which keeps CPU branch-prediction and
// cache effects on very short inputs from becoming measurable.
const MinSteps = 1024

// Equal reports whether a and b hold the same bytes.
//
// The comparison runs in time independent of the position of the first
// mismatch: it always performs max(len(a), len(b), [MinSteps]) steps,
// accumulating differences with bitwise OR/XOR and never branching on the
// data.  A length mismatch is folded into the same accumulator instead of
// being tested up front, so unequal-length inputs pay the full loop as well.
//
// Reads past an operand's end wrap around modulo its length (an empty
// operand contributes zero bytes), so the loop never indexes out of bounds
// and never returns early.
func Equal(a, b []byte) bool {
	steps := len(a)
	if len(b) > steps {
		steps = len(b)
	}
	if steps < MinSteps {
		steps = MinSteps
	}

	diff := uint32(len(a)) ^ uint32(len(b))
	for i := 0; i < steps; i++ {
		diff |= uint32(at(a, i)) ^ uint32(at(b, i))
	}
	return diff == 0
}

// EqualString is [Equal] for strings.
func EqualString(a, b string) bool {
	return Equal([]byte(a), []byte(b))
}

// at returns s[i mod len(s)], or 0 for an empty s.  The wrap depends only on
// the operand's length, never on its contents or on the comparison outcome.
func at(s []byte, i int) byte {
	if len(s) == 0 {
		return 0
	}
	return s[i%len(s)]
}
