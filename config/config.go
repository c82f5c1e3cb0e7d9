package config

import (
	"math"
	"os"
	"strconv"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/hei-school/avereno/retry"
)

// Default policy values, kept in step with the retry package
const (
	// DefaultMaxRetries is the number of retries before giving up
	DefaultMaxRetries = retry.DefaultMaxRetries

	// DefaultMaxSleep is the cumulative sleep limit
	DefaultMaxSleep = retry.DefaultMaxSleep

	// DefaultInitialBackoff is the sleep before the first retry
	DefaultInitialBackoff = retry.DefaultInitialBackoff

	// DefaultBackoffMultiplier is the factor between consecutive backoffs
	DefaultBackoffMultiplier = retry.DefaultBackoffMultiplier
)

// Environment variable names for configuration overrides
const (
	EnvMaxRetries        = "AVERENO_MAX_RETRIES"
	EnvMaxSleep          = "AVERENO_MAX_SLEEP"
	EnvInitialBackoff    = "AVERENO_INITIAL_BACKOFF"
	EnvBackoffMultiplier = "AVERENO_BACKOFF_MULTIPLIER"
)

// Policy is a named, serializable retry configuration
type Policy struct {
	// Name identifies the policy when loaded from a directory
	Name string `json:"name,omitempty"`

	// MaxRetries is the number of retries after which the executor gives up
	MaxRetries int `json:"maxRetries"`

	// MaxSleep bounds the cumulative sleep (e.g. "10m")
	MaxSleep metav1.Duration `json:"maxSleep"`

	// InitialBackoff is the sleep before the first retry (e.g. "1s")
	InitialBackoff metav1.Duration `json:"initialBackoff"`

	// BackoffMultiplier is 1 for constant backoff, greater than 1 for exponential
	BackoffMultiplier float64 `json:"backoffMultiplier"`
}

// Default returns a Policy with all default values
func Default() *Policy {
	return &Policy{
		MaxRetries:        DefaultMaxRetries,
		MaxSleep:          metav1.Duration{Duration: DefaultMaxSleep},
		InitialBackoff:    metav1.Duration{Duration: DefaultInitialBackoff},
		BackoffMultiplier: DefaultBackoffMultiplier,
	}
}

// FromEnv returns a Policy with values from environment variables, falling back to defaults
func FromEnv() *Policy {
	p := Default()

	if v := os.Getenv(EnvMaxRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			p.MaxRetries = n
		}
	}

	if v := os.Getenv(EnvMaxSleep); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			p.MaxSleep.Duration = d
		}
	}

	if v := os.Getenv(EnvInitialBackoff); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			p.InitialBackoff.Duration = d
		}
	}

	if v := os.Getenv(EnvBackoffMultiplier); v != "" {
		if m, err := strconv.ParseFloat(v, 64); err == nil && m >= 1 && !math.IsInf(m, 1) {
			p.BackoffMultiplier = m
		}
	}

	return p
}

// WithMaxRetries returns a copy with updated max retries
func (p *Policy) WithMaxRetries(n int) *Policy {
	cp := *p
	cp.MaxRetries = n
	return &cp
}

// WithMaxSleep returns a copy with updated cumulative sleep limit
func (p *Policy) WithMaxSleep(d time.Duration) *Policy {
	cp := *p
	cp.MaxSleep = metav1.Duration{Duration: d}
	return &cp
}

// WithInitialBackoff returns a copy with updated initial backoff
func (p *Policy) WithInitialBackoff(d time.Duration) *Policy {
	cp := *p
	cp.InitialBackoff = metav1.Duration{Duration: d}
	return &cp
}

// WithBackoffMultiplier returns a copy with updated backoff multiplier
func (p *Policy) WithBackoffMultiplier(m float64) *Policy {
	cp := *p
	cp.BackoffMultiplier = m
	return &cp
}

// RetryConfig converts the policy into a retry.Config using the wall clock and no hook
func (p *Policy) RetryConfig() retry.Config {
	cfg := *retry.DefaultConfig()
	cfg.MaxRetries = p.MaxRetries
	cfg.MaxSleep = p.MaxSleep.Duration
	cfg.InitialBackoff = p.InitialBackoff.Duration
	cfg.BackoffMultiplier = p.BackoffMultiplier
	return cfg
}

// Options returns retry options carrying the policy limits. Callers may append
// further options such as retry.WithOnRetry.
func (p *Policy) Options() []retry.Option {
	return []retry.Option{
		retry.WithMaxRetries(p.MaxRetries),
		retry.WithMaxSleep(p.MaxSleep.Duration),
		retry.WithInitialBackoff(p.InitialBackoff.Duration),
		retry.WithBackoffMultiplier(p.BackoffMultiplier),
	}
}
