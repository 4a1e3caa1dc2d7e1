package credential

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultBaseIterations is the iteration count the default policy
	// prescribes at its epoch.  Today's counts are derived from it by the
	// doubling schedule, so the absolute number only anchors the curve.
	DefaultBaseIterations = 1000

	// DefaultDoubling is the period over which the prescribed iteration
	// count doubles — a Moore's-Law assumption: hardware an attacker can buy
	// gets twice as fast roughly every two years, so the work factor must
	// track it.
	DefaultDoubling = 2 * yearApprox

	// yearApprox is a Julian year (365.25 days).
	yearApprox = 8766 * time.Hour
)

// defaultEpoch is the reference instant of [DefaultWorkPolicy]:
// 2014-01-01T00:00:00Z.
var defaultEpoch = time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)

// WorkPolicy converts a relative work multiplier and a point in time into a
// concrete iteration count.
//
// The count grows exponentially with elapsed time since Epoch:
//
//	iterations = floor(Base × 2^(elapsed/Doubling) × work)
//
// Evaluating the policy at "now" prices a new hash for today's hardware;
// evaluating it at a past instant yields the threshold a hash of that age
// should meet, which is how [Engine.Expired] judges old records without
// rehashing them.
//
// WorkPolicy is an immutable value type and safe for concurrent use.
type WorkPolicy struct {
	// Base is the iteration count prescribed exactly at Epoch.
	Base int

	// Epoch is the fixed reference instant of the schedule.
	Epoch time.Time

	// Doubling is the period over which the prescribed count doubles.
	Doubling time.Duration
}

// DefaultWorkPolicy returns the reference schedule: 1000 iterations at
// 2014-01-01 UTC, doubling every two years.
func DefaultWorkPolicy() WorkPolicy {
	return WorkPolicy{
		Base:     DefaultBaseIterations,
		Epoch:    defaultEpoch,
		Doubling: DefaultDoubling,
	}
}

func (p WorkPolicy) validate() error {
	if p.Base < 1 {
		return fmt.Errorf("%w: policy base %d must be ≥ 1", ErrInvalidOption, p.Base)
	}
	if p.Doubling <= 0 {
		return fmt.Errorf("%w: policy doubling period must be positive", ErrInvalidOption)
	}
	if p.Epoch.IsZero() {
		return fmt.Errorf("%w: policy epoch must be set", ErrInvalidOption)
	}
	return nil
}

// Iterations returns the iteration count prescribed for the instant at,
// scaled by the relative multiplier work.
//
// work must be positive: a zero or negative multiplier would prescribe zero
// or negative stretching, so it is rejected with [ErrInvalidOption] rather
// than clamped.  Counts that underflow to zero (an instant far before the
// epoch) or overflow int32 are rejected the same way.
func (p WorkPolicy) Iterations(work float64, at time.Time) (int, error) {
	if work <= 0 {
		return 0, fmt.Errorf("%w: work multiplier %g must be > 0", ErrInvalidOption, work)
	}
	if err := p.validate(); err != nil {
		return 0, err
	}

	elapsed := at.Sub(p.Epoch)
	n := math.Floor(float64(p.Base) * math.Pow(2, elapsed.Hours()/p.Doubling.Hours()) * work)
	if n < 1 {
		return 0, fmt.Errorf("%w: policy yields non-positive iteration count at %s",
			ErrInvalidOption, at.Format(time.RFC3339))
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: policy yields iteration count beyond int32 at %s",
			ErrInvalidOption, at.Format(time.RFC3339))
	}
	return int(n), nil
}
