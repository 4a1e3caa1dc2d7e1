package credential_test

import (
	"errors"
	"testing"
	"time"

	"github.com/hasbyte1/go-credential/credential"
)

var policyEpoch = time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestDefaultWorkPolicy(t *testing.T) {
	p := credential.DefaultWorkPolicy()
	if p.Base != credential.DefaultBaseIterations {
		t.Errorf("Base = %d, want %d", p.Base, credential.DefaultBaseIterations)
	}
	if !p.Epoch.Equal(policyEpoch) {
		t.Errorf("Epoch = %v, want %v", p.Epoch, policyEpoch)
	}
	if p.Doubling != credential.DefaultDoubling {
		t.Errorf("Doubling = %v, want %v", p.Doubling, credential.DefaultDoubling)
	}
}

func TestWorkPolicy_Iterations_AtEpoch(t *testing.T) {
	p := credential.DefaultWorkPolicy()
	got, err := p.Iterations(1, p.Epoch)
	if err != nil {
		t.Fatalf("Iterations: %v", err)
	}
	if got != p.Base {
		t.Errorf("iterations at epoch = %d, want base %d", got, p.Base)
	}
}

func TestWorkPolicy_Iterations_DoublesPerPeriod(t *testing.T) {
	p := credential.DefaultWorkPolicy()
	tests := []struct {
		name    string
		periods int
		want    int
	}{
		{"one doubling period", 1, 2 * p.Base},
		{"two doubling periods", 2, 4 * p.Base},
		{"three doubling periods", 3, 8 * p.Base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := p.Epoch.Add(time.Duration(tt.periods) * p.Doubling)
			got, err := p.Iterations(1, at)
			if err != nil {
				t.Fatalf("Iterations: %v", err)
			}
			// math.Pow introduces sub-iteration float error; floor may land
			// one below the exact power of two.
			if got != tt.want && got != tt.want-1 {
				t.Errorf("iterations after %d periods = %d, want ≈%d", tt.periods, got, tt.want)
			}
		})
	}
}

func TestWorkPolicy_Iterations_ScalesLinearlyWithWork(t *testing.T) {
	p := credential.DefaultWorkPolicy()
	base, err := p.Iterations(1, p.Epoch)
	if err != nil {
		t.Fatalf("Iterations: %v", err)
	}
	quadruple, err := p.Iterations(4, p.Epoch)
	if err != nil {
		t.Fatalf("Iterations: %v", err)
	}
	if quadruple != 4*base {
		t.Errorf("work=4 iterations = %d, want %d", quadruple, 4*base)
	}
	half, err := p.Iterations(0.5, p.Epoch)
	if err != nil {
		t.Fatalf("Iterations: %v", err)
	}
	if half != base/2 {
		t.Errorf("work=0.5 iterations = %d, want %d", half, base/2)
	}
}

func TestWorkPolicy_Iterations_MonotonicOverTime(t *testing.T) {
	p := credential.DefaultWorkPolicy()
	prev := 0
	for year := 0; year <= 20; year += 2 {
		at := p.Epoch.AddDate(year, 0, 0)
		got, err := p.Iterations(1, at)
		if err != nil {
			t.Fatalf("Iterations at +%dy: %v", year, err)
		}
		if got <= prev && year > 0 {
			t.Errorf("iterations at +%dy = %d, not greater than %d", year, got, prev)
		}
		prev = got
	}
}

func TestWorkPolicy_Iterations_RejectsNonPositiveWork(t *testing.T) {
	p := credential.DefaultWorkPolicy()
	for _, work := range []float64{0, -1, -0.25} {
		if _, err := p.Iterations(work, p.Epoch); !errors.Is(err, credential.ErrInvalidOption) {
			t.Errorf("work=%g: expected ErrInvalidOption, got %v", work, err)
		}
	}
}

func TestWorkPolicy_Iterations_RejectsUnderflow(t *testing.T) {
	p := credential.DefaultWorkPolicy()
	// Far enough before the epoch that the count floors to zero.
	at := p.Epoch.AddDate(-100, 0, 0)
	if _, err := p.Iterations(1, at); !errors.Is(err, credential.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption for pre-epoch underflow, got %v", err)
	}
}

func TestWorkPolicy_Iterations_RejectsOverflow(t *testing.T) {
	p := credential.DefaultWorkPolicy()
	at := p.Epoch.AddDate(500, 0, 0)
	if _, err := p.Iterations(1, at); !errors.Is(err, credential.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption for int32 overflow, got %v", err)
	}
}

func TestWorkPolicy_Iterations_InvalidPolicy(t *testing.T) {
	tests := []struct {
		name string
		p    credential.WorkPolicy
	}{
		{"zero base", credential.WorkPolicy{Base: 0, Epoch: policyEpoch, Doubling: time.Hour}},
		{"zero doubling", credential.WorkPolicy{Base: 1000, Epoch: policyEpoch}},
		{"zero epoch", credential.WorkPolicy{Base: 1000, Doubling: time.Hour}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.p.Iterations(1, policyEpoch); !errors.Is(err, credential.ErrInvalidOption) {
				t.Errorf("expected ErrInvalidOption, got %v", err)
			}
		})
	}
}
