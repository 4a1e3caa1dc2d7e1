package credential

import (
	"crypto/rand"
	"fmt"
	"io"
)

// GenerateSalt returns length cryptographically random bytes read from
// crypto/rand.  The result is exactly length bytes — never truncated or
// padded — or an error.
//
// A failure of the OS entropy source is reported as [ErrEntropy]; there is
// no fallback to a deterministic generator.
func GenerateSalt(length int) ([]byte, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: salt length %d must be ≥ 1", ErrInvalidOption, length)
	}
	return readSalt(rand.Reader, length)
}

// readSalt fills n bytes from r.  The engine routes its salt reads through
// here with its configured reader so entropy failure is testable.
func readSalt(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return b, nil
}
