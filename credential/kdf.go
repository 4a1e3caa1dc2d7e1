package credential

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

// Method identifies a key-stretching algorithm.
// Using a named string type prevents accidental confusion with plain strings.
type Method string

const (
	// MethodPBKDF2 selects PBKDF2-HMAC-SHA-256 (RFC 2898 / PKCS #5 v2.0),
	// the single built-in method.  It is the value written into the
	// hashMethod field of every record produced with default options.
	MethodPBKDF2 Method = "pbkdf2"
)

// Deriver is the adapter around a key-stretching primitive.
//
// Implementations must be stateless (or internally synchronised) so that a
// single Deriver can serve concurrent Hash/Verify calls, and must perform
// the full amount of work their parameters imply on every call — a deriver
// that caches or short-circuits reintroduces the timing oracle this package
// exists to remove.
type Deriver interface {
	// Method returns the identifier stored in records produced with this
	// deriver and matched against records during verification.
	Method() Method

	// Derive stretches password with salt into a key of keyLength bytes,
	// applying the given iteration count.  It returns [ErrDerivation]
	// (wrapped) when the parameter combination is invalid.
	Derive(password, salt []byte, iterations, keyLength int) ([]byte, error)
}

// PBKDF2Deriver applies PBKDF2 (RFC 2898) with a caller-chosen HMAC digest.
//
// The built-in engine registration uses SHA-256.  Additional family members
// can be constructed and registered without touching the engine:
//
//	d, _ := credential.NewPBKDF2Deriver("pbkdf2-sha512", sha512.New)
//	_ = engine.RegisterDeriver(d)
//
// # Thread safety
//
// PBKDF2Deriver is immutable after construction and safe for concurrent use.
type PBKDF2Deriver struct {
	method Method
	digest func() hash.Hash
}

// NewPBKDF2Deriver constructs a PBKDF2Deriver that records itself under
// method and stretches with HMAC over the given digest constructor.
func NewPBKDF2Deriver(method Method, digest func() hash.Hash) (*PBKDF2Deriver, error) {
	if method == "" {
		return nil, ErrEmptyMethod
	}
	if digest == nil {
		return nil, fmt.Errorf("%w: pbkdf2 digest constructor must not be nil", ErrInvalidOption)
	}
	return &PBKDF2Deriver{method: method, digest: digest}, nil
}

// newDefaultDeriver returns the single built-in deriver: PBKDF2-HMAC-SHA-256
// registered under [MethodPBKDF2].
func newDefaultDeriver() *PBKDF2Deriver {
	return &PBKDF2Deriver{method: MethodPBKDF2, digest: sha256.New}
}

// Method returns the identifier this deriver was constructed with.
func (d *PBKDF2Deriver) Method() Method { return d.method }

// Derive stretches password into a keyLength-byte key.
//
// The iteration count and output length are validated here rather than
// trusted from the record: PBKDF2 itself accepts a zero iteration count,
// which would silently produce an unstretched key.
func (d *PBKDF2Deriver) Derive(password, salt []byte, iterations, keyLength int) ([]byte, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: empty password", ErrDerivation)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", ErrDerivation)
	}
	if iterations < 1 {
		return nil, fmt.Errorf("%w: iteration count %d must be ≥ 1", ErrDerivation, iterations)
	}
	if keyLength < 1 {
		return nil, fmt.Errorf("%w: key length %d must be ≥ 1", ErrDerivation, keyLength)
	}
	return pbkdf2.Key(password, salt, iterations, keyLength, d.digest), nil
}
