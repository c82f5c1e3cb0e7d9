package config

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/hei-school/avereno/retry"
)

func TestDefault(t *testing.T) {
	p := Default()

	if p.MaxRetries != DefaultMaxRetries {
		t.Errorf("expected MaxRetries %d, got %d", DefaultMaxRetries, p.MaxRetries)
	}
	if p.MaxSleep.Duration != DefaultMaxSleep {
		t.Errorf("expected MaxSleep %v, got %v", DefaultMaxSleep, p.MaxSleep.Duration)
	}
	if p.InitialBackoff.Duration != DefaultInitialBackoff {
		t.Errorf("expected InitialBackoff %v, got %v", DefaultInitialBackoff, p.InitialBackoff.Duration)
	}
	if p.BackoffMultiplier != DefaultBackoffMultiplier {
		t.Errorf("expected BackoffMultiplier %v, got %v", DefaultBackoffMultiplier, p.BackoffMultiplier)
	}
	if err := Validate(p); err != nil {
		t.Errorf("expected default policy to be valid, got %v", err)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvMaxRetries, "")
	t.Setenv(EnvMaxSleep, "")
	t.Setenv(EnvInitialBackoff, "")
	t.Setenv(EnvBackoffMultiplier, "")

	p := FromEnv()

	if p.MaxRetries != DefaultMaxRetries {
		t.Errorf("expected MaxRetries %d, got %d", DefaultMaxRetries, p.MaxRetries)
	}
	if p.MaxSleep.Duration != DefaultMaxSleep {
		t.Errorf("expected MaxSleep %v, got %v", DefaultMaxSleep, p.MaxSleep.Duration)
	}
}

func TestFromEnv_CustomValues(t *testing.T) {
	t.Setenv(EnvMaxRetries, "12")
	t.Setenv(EnvMaxSleep, "30s")
	t.Setenv(EnvInitialBackoff, "250ms")
	t.Setenv(EnvBackoffMultiplier, "1.5")

	p := FromEnv()

	if p.MaxRetries != 12 {
		t.Errorf("expected MaxRetries 12, got %d", p.MaxRetries)
	}
	if p.MaxSleep.Duration != 30*time.Second {
		t.Errorf("expected MaxSleep 30s, got %v", p.MaxSleep.Duration)
	}
	if p.InitialBackoff.Duration != 250*time.Millisecond {
		t.Errorf("expected InitialBackoff 250ms, got %v", p.InitialBackoff.Duration)
	}
	if p.BackoffMultiplier != 1.5 {
		t.Errorf("expected BackoffMultiplier 1.5, got %v", p.BackoffMultiplier)
	}
}

func TestFromEnv_InvalidValues(t *testing.T) {
	// Invalid values fall back to defaults
	t.Setenv(EnvMaxRetries, "0")
	t.Setenv(EnvMaxSleep, "invalid")
	t.Setenv(EnvInitialBackoff, "-1s")
	t.Setenv(EnvBackoffMultiplier, "0.5")

	p := FromEnv()

	if p.MaxRetries != DefaultMaxRetries {
		t.Errorf("expected default MaxRetries, got %d", p.MaxRetries)
	}
	if p.MaxSleep.Duration != DefaultMaxSleep {
		t.Errorf("expected default MaxSleep, got %v", p.MaxSleep.Duration)
	}
	if p.InitialBackoff.Duration != DefaultInitialBackoff {
		t.Errorf("expected default InitialBackoff, got %v", p.InitialBackoff.Duration)
	}
	if p.BackoffMultiplier != DefaultBackoffMultiplier {
		t.Errorf("expected default BackoffMultiplier, got %v", p.BackoffMultiplier)
	}
}

func TestFromEnv_NonFiniteMultiplier(t *testing.T) {
	for _, v := range []string{"NaN", "+Inf", "Inf"} {
		t.Setenv(EnvBackoffMultiplier, v)

		p := FromEnv()

		if p.BackoffMultiplier != DefaultBackoffMultiplier {
			t.Errorf("%s: expected default BackoffMultiplier, got %v", v, p.BackoffMultiplier)
		}
	}
}

func TestValidate_NonFiniteMultiplier(t *testing.T) {
	for _, m := range []float64{math.NaN(), math.Inf(1)} {
		if err := Validate(Default().WithBackoffMultiplier(m)); err == nil {
			t.Errorf("expected error for multiplier %v", m)
		}
	}
}

func TestWithMaxRetries(t *testing.T) {
	p := Default()
	np := p.WithMaxRetries(42)

	// Original should be unchanged
	if p.MaxRetries != DefaultMaxRetries {
		t.Error("original policy was modified")
	}
	if np.MaxRetries != 42 {
		t.Errorf("expected MaxRetries 42, got %d", np.MaxRetries)
	}
}

func TestChainedWith(t *testing.T) {
	p := Default().
		WithMaxRetries(3).
		WithMaxSleep(time.Minute).
		WithInitialBackoff(100 * time.Millisecond).
		WithBackoffMultiplier(1)

	if p.MaxRetries != 3 {
		t.Errorf("expected MaxRetries 3, got %d", p.MaxRetries)
	}
	if p.MaxSleep.Duration != time.Minute {
		t.Errorf("expected MaxSleep 1m, got %v", p.MaxSleep.Duration)
	}
	if p.InitialBackoff.Duration != 100*time.Millisecond {
		t.Errorf("expected InitialBackoff 100ms, got %v", p.InitialBackoff.Duration)
	}
	if p.BackoffMultiplier != 1 {
		t.Errorf("expected BackoffMultiplier 1, got %v", p.BackoffMultiplier)
	}
}

func TestRetryConfig(t *testing.T) {
	cfg := Default().WithMaxRetries(7).WithMaxSleep(time.Minute).RetryConfig()

	if cfg.MaxRetries != 7 {
		t.Errorf("expected MaxRetries 7, got %d", cfg.MaxRetries)
	}
	if cfg.MaxSleep != time.Minute {
		t.Errorf("expected MaxSleep 1m, got %v", cfg.MaxSleep)
	}
	if cfg.Clock == nil {
		t.Error("expected a clock")
	}
}

func TestOptions_DriveRetry(t *testing.T) {
	p := Default().WithMaxRetries(2).WithInitialBackoff(0)

	calls := 0
	err := retry.Do(func() error {
		calls++
		return errors.New("fail")
	}, p.Options()...)

	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if !errors.Is(err, retry.ErrMaxRetriesReached) {
		t.Errorf("expected ErrMaxRetriesReached, got %v", err)
	}
}
