package credential

import "errors"

// Sentinel errors returned by credential operations.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := engine.Verify(record, input)
//	if errors.Is(err, credential.ErrMalformedRecord) {
//	    // the stored record is corrupt — this is NOT a wrong password
//	}
//
// A (false, nil) result from Verify and a (false, err) result are distinct
// outcomes: an error never means "wrong password", and no error path ever
// reports a match.
var (
	// ErrInvalidInput is returned by Hash and Verify when the supplied
	// password is empty.  It is reported before any entropy is consumed or
	// any derivation work is performed.
	ErrInvalidInput = errors.New("credential: password must not be empty")

	// ErrEntropy is returned when the secure random source cannot supply
	// salt bytes.  The engine never falls back to a weaker source; the call
	// fails and retrying is the caller's decision.
	ErrEntropy = errors.New("credential: secure random source failed")

	// ErrDerivation is returned when the key-stretching primitive rejects
	// its parameters or otherwise fails.
	ErrDerivation = errors.New("credential: key derivation failed")

	// ErrMalformedRecord is returned when a stored record cannot be decoded:
	// unparseable JSON, missing or wrong-typed fields, undecodable base64,
	// or internally inconsistent lengths.
	ErrMalformedRecord = errors.New("credential: malformed credential record")

	// ErrUnknownMethod is returned when a record names a hash method that is
	// not registered with the engine.  Verification never silently falls
	// back to the default method.
	ErrUnknownMethod = errors.New("credential: unknown hash method")

	// ErrInvalidOption is returned when a constructor or policy is given a
	// parameter outside its allowed range (e.g. a non-positive work
	// multiplier or key length).
	ErrInvalidOption = errors.New("credential: invalid option value")

	// ErrNilDeriver is returned by [Engine.RegisterDeriver] when the
	// supplied [Deriver] is nil.
	ErrNilDeriver = errors.New("credential: deriver must not be nil")

	// ErrEmptyMethod is returned by [Engine.RegisterDeriver] when the
	// deriver reports an empty method name.
	ErrEmptyMethod = errors.New("credential: method name must not be empty")
)
