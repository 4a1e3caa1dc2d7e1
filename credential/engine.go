package credential

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hasbyte1/go-credential/timingsafe"
)

const (
	// DefaultKeyLength is the byte length of both the salt and the derived
	// key.  66 bytes is deliberately large: a 528-bit derived key is far
	// beyond what a brute-force cluster can search, and matching the salt
	// to it 1:1 keeps per-credential precomputation equally out of reach.
	DefaultKeyLength = 66

	// DefaultWork is the relative work multiplier applied on top of the
	// time-based schedule.  Raise it for high-value deployments; the
	// iteration count scales linearly with it.
	DefaultWork = 1.0

	// DefaultExpiryDays is the hash-age window used by the CLI and
	// recommended for [Engine.Expired]: a record whose iteration count falls
	// short of what the policy prescribed 90 days ago should be rehashed on
	// the user's next successful login.
	DefaultExpiryDays = 90

	// DefaultLegacyIterations is the iteration count assumed for records in
	// the legacy "<salt>$<hash>" encoding, which predates self-describing
	// records.  It equals the policy's epoch base, which is the era that
	// format was current — and guarantees legacy records always report as
	// expired.
	DefaultLegacyIterations = DefaultBaseIterations

	// minKeyLength guards against configurations whose salt would be short
	// enough to make rainbow-table precomputation workable again.
	minKeyLength = 16
)

// Options configures an [Engine].
//
// The three security-relevant fields (KeyLength, Work, Method) are validated
// strictly by [New]; use [DefaultOptions] as the starting point.  The
// remaining fields are plumbing and fall back to sensible defaults when left
// zero.
type Options struct {
	// KeyLength is the byte length of the salt and the derived key.
	// Minimum 16.  Default: [DefaultKeyLength] (66).
	KeyLength int

	// Work is the relative work multiplier fed to the [WorkPolicy].
	// Must be positive.  Default: [DefaultWork] (1).
	Work float64

	// Method selects the key-stretching algorithm for new hashes.
	// Default: [MethodPBKDF2].
	Method Method

	// LegacyIterations is the iteration count applied when verifying
	// records in the legacy "<salt>$<hash>" encoding.
	// Defaults to [DefaultLegacyIterations] if zero or negative.
	LegacyIterations int

	// Policy is the time-based iteration schedule.
	// Defaults to [DefaultWorkPolicy] if the zero value.
	Policy WorkPolicy

	// Clock supplies "now" to the policy.  Defaults to [time.Now].
	// Inject a fixed clock in tests to evaluate past or future instants
	// deterministically.
	Clock func() time.Time

	// Rand is the source of salt material.  Defaults to crypto/rand.Reader.
	// Never set this to a non-cryptographic source in production.
	Rand io.Reader
}

// DefaultOptions returns Options with the recommended defaults:
// 66-byte keys and salts, work multiplier 1, PBKDF2-HMAC-SHA-256.
func DefaultOptions() Options {
	return Options{
		KeyLength: DefaultKeyLength,
		Work:      DefaultWork,
		Method:    MethodPBKDF2,
	}
}

func validateOptions(opts Options) error {
	if opts.KeyLength < minKeyLength {
		return fmt.Errorf("%w: key length %d must be ≥ %d", ErrInvalidOption, opts.KeyLength, minKeyLength)
	}
	if opts.Work <= 0 {
		return fmt.Errorf("%w: work multiplier %g must be > 0", ErrInvalidOption, opts.Work)
	}
	if opts.Method == "" {
		return fmt.Errorf("%w: hash method must not be empty", ErrInvalidOption)
	}
	return nil
}

// Engine orchestrates salt generation, the work-factor policy, and the key
// derivation registry into the three credential operations: [Engine.Hash],
// [Engine.Verify], and [Engine.Expired].
//
// # Configuration lifecycle
//
// An Engine's configuration is fixed at construction.  There is no ambient
// process-wide state, so engines with different policies coexist safely in
// one process.  Configure before first use: the only mutation an Engine
// supports afterwards is [Engine.RegisterDeriver], which is guarded by a
// read-write mutex.
//
// # Thread safety
//
// All Engine methods are safe for concurrent use.  Hash and Verify hold no
// lock while deriving, so any number of calls stretch keys in parallel and a
// caller abandoning one (e.g. on request timeout, by walking away from the
// goroutine running it) cannot stall another.
type Engine struct {
	opts   Options
	policy WorkPolicy
	clock  func() time.Time
	rand   io.Reader

	mu       sync.RWMutex
	derivers map[Method]Deriver
}

// New constructs an Engine from opts, registering the built-in PBKDF2
// deriver.  Returns [ErrInvalidOption] for out-of-range configuration.
func New(opts Options) (*Engine, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	policy := opts.Policy
	if policy == (WorkPolicy{}) {
		policy = DefaultWorkPolicy()
	}
	if err := policy.validate(); err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	random := opts.Rand
	if random == nil {
		random = rand.Reader
	}
	if opts.LegacyIterations < 1 {
		opts.LegacyIterations = DefaultLegacyIterations
	}

	e := &Engine{
		opts:     opts,
		policy:   policy,
		clock:    clock,
		rand:     random,
		derivers: make(map[Method]Deriver),
	}
	e.derivers[MethodPBKDF2] = newDefaultDeriver()
	return e, nil
}

// NewDefaultEngine constructs an Engine with [DefaultOptions].
// This is the recommended starting point for most applications.
func NewDefaultEngine() (*Engine, error) {
	return New(DefaultOptions())
}

// Options returns a copy of the engine's configuration.
func (e *Engine) Options() Options { return e.opts }

// RegisterDeriver adds or replaces a key-stretching algorithm.  Records
// produced with it verify on any engine that registers a deriver under the
// same method name.
//
// It is safe to call while other goroutines use the engine, but treat it as
// setup: register everything before serving traffic.
func (e *Engine) RegisterDeriver(d Deriver) error {
	if d == nil {
		return ErrNilDeriver
	}
	if d.Method() == "" {
		return ErrEmptyMethod
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.derivers[d.Method()] = d
	return nil
}

// HasMethod reports whether a deriver is registered under method.
func (e *Engine) HasMethod(method Method) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.derivers[method]
	return ok
}

func (e *Engine) deriver(method Method) (Deriver, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	d, ok := e.derivers[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return d, nil
}

// Hash stretches password into a fresh self-describing [Record].
//
// A new salt of KeyLength bytes is generated on every call, so hashing the
// same password twice always yields different records — identical passwords
// must not be linkable through the credential store.  The iteration count is
// whatever the work policy prescribes for the moment of the call.
//
// An empty password returns [ErrInvalidInput] before any entropy is consumed
// or derivation performed.
func (e *Engine) Hash(password string) (Record, error) {
	if password == "" {
		return Record{}, ErrInvalidInput
	}

	d, err := e.deriver(e.opts.Method)
	if err != nil {
		return Record{}, err
	}
	iterations, err := e.policy.Iterations(e.opts.Work, e.clock())
	if err != nil {
		return Record{}, err
	}
	salt, err := readSalt(e.rand, e.opts.KeyLength)
	if err != nil {
		return Record{}, err
	}
	key, err := d.Derive([]byte(password), salt, iterations, e.opts.KeyLength)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Hash:       base64.StdEncoding.EncodeToString(key),
		Salt:       base64.StdEncoding.EncodeToString(salt),
		KeyLength:  e.opts.KeyLength,
		HashMethod: e.opts.Method,
		Iterations: iterations,
	}, nil
}

// Verify decodes encoded and checks password against it.
//
// The return values keep three outcomes distinct: (true, nil) match,
// (false, nil) wrong password, (false, err) the check could not be
// performed — malformed record, unknown method, empty input, derivation
// failure.  No error path reports a match.
func (e *Engine) Verify(encoded, password string) (bool, error) {
	rec, err := DecodeRecord(encoded)
	if err != nil {
		return false, err
	}
	return e.VerifyRecord(rec, password)
}

// VerifyRecord checks password against an already-decoded record.
//
// The key is re-derived from the record's own salt, iteration count, and
// key length — never from the engine's current defaults — so records created
// under older configurations keep verifying after the defaults change.  The
// final comparison is [timingsafe.Equal]; there is no short-circuit that
// skips derivation for an obviously wrong input.
func (e *Engine) VerifyRecord(rec Record, password string) (bool, error) {
	if password == "" {
		return false, ErrInvalidInput
	}

	d, err := e.deriver(rec.HashMethod)
	if err != nil {
		return false, err
	}
	salt, err := rec.SaltBytes()
	if err != nil {
		return false, err
	}
	stored, err := rec.KeyBytes()
	if err != nil {
		return false, err
	}
	if len(salt) == 0 || len(stored) == 0 {
		return false, fmt.Errorf("%w: empty salt or hash", ErrMalformedRecord)
	}
	if rec.KeyLength != len(stored) {
		return false, fmt.Errorf("%w: keyLength %d disagrees with decoded hash length %d",
			ErrMalformedRecord, rec.KeyLength, len(stored))
	}

	iterations := rec.Iterations
	if iterations < 1 {
		if !rec.legacy {
			return false, fmt.Errorf("%w: iterations %d must be ≥ 1", ErrMalformedRecord, rec.Iterations)
		}
		iterations = e.opts.LegacyIterations
	}

	derived, err := d.Derive([]byte(password), salt, iterations, rec.KeyLength)
	if err != nil {
		return false, err
	}
	return timingsafe.Equal(derived, stored), nil
}

// Expired decodes encoded and reports whether its work factor has fallen
// behind the policy.  See [Engine.ExpiredRecord].
func (e *Engine) Expired(encoded string, days int) (bool, error) {
	rec, err := DecodeRecord(encoded)
	if err != nil {
		return false, err
	}
	return e.ExpiredRecord(rec, days)
}

// ExpiredRecord reports whether the record's iteration count is below what
// the policy would prescribe for a hash created days ago — i.e. whether the
// hash has aged past the deployment's tolerance and should be recreated on
// the next successful login.
//
// The judgment is independent of whether any password still matches: an
// expired record is a rehash prompt, not an authentication failure.  Pass
// [DefaultExpiryDays] for the recommended 90-day window; a negative days
// judges against a future threshold and therefore reports even a fresh
// record as expired.
func (e *Engine) ExpiredRecord(rec Record, days int) (bool, error) {
	at := e.clock().Add(-time.Duration(days) * 24 * time.Hour)
	threshold, err := e.policy.Iterations(e.opts.Work, at)
	if err != nil {
		return false, err
	}
	iterations := rec.Iterations
	if iterations < 1 && rec.legacy {
		iterations = e.opts.LegacyIterations
	}
	if iterations < 1 {
		return false, fmt.Errorf("%w: iterations %d must be ≥ 1", ErrMalformedRecord, rec.Iterations)
	}
	return iterations < threshold, nil
}
