package retry

import (
	"math"
	"time"

	"k8s.io/utils/clock"
)

// Default retry configuration values
const (
	DefaultMaxRetries        = 5
	DefaultMaxSleep          = 10 * time.Minute
	DefaultInitialBackoff    = 1 * time.Second
	DefaultBackoffMultiplier = 2.0
)

// OnRetryFunc is called before each sleep with the 1-based retry count and
// the error that triggered the retry.
type OnRetryFunc func(retry int, err error)

// Config holds retry configuration
type Config struct {
	// MaxRetries is the number of retries after which the loop gives up (must be >= 1)
	MaxRetries int

	// MaxSleep bounds the cumulative time spent sleeping between attempts
	MaxSleep time.Duration

	// InitialBackoff is the sleep before the first retry
	InitialBackoff time.Duration

	// BackoffMultiplier is the factor between consecutive backoffs.
	// 1 gives a constant backoff, greater than 1 an exponential one.
	BackoffMultiplier float64

	// OnRetry is called before each retry. Nil means no-op.
	OnRetry OnRetryFunc

	// Clock provides the sleep primitive. Nil means the wall clock.
	Clock clock.Clock
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:        DefaultMaxRetries,
		MaxSleep:          DefaultMaxSleep,
		InitialBackoff:    DefaultInitialBackoff,
		BackoffMultiplier: DefaultBackoffMultiplier,
		Clock:             clock.RealClock{},
	}
}

// Validate checks the limits that must hold before the operation is tried
func (c *Config) Validate() error {
	if c.MaxRetries < 1 {
		return NewInvalidConfigurationError("max_retries", "Must satisfy: max_retries >= 1")
	}
	if math.IsNaN(c.BackoffMultiplier) || math.IsInf(c.BackoffMultiplier, 0) {
		return NewInvalidConfigurationError("backoff_multiplier", "Must satisfy: backoff_multiplier is finite")
	}
	if c.BackoffMultiplier < 1 {
		return NewInvalidConfigurationError("backoff_multiplier", "reducing backoff over time")
	}
	return nil
}

// Option is a function that modifies Config
type Option func(*Config)

// WithMaxRetries sets the maximum number of retries
func WithMaxRetries(n int) Option {
	return func(c *Config) {
		c.MaxRetries = n
	}
}

// WithMaxSleep sets the cumulative sleep limit
func WithMaxSleep(d time.Duration) Option {
	return func(c *Config) {
		c.MaxSleep = d
	}
}

// WithInitialBackoff sets the initial backoff
func WithInitialBackoff(d time.Duration) Option {
	return func(c *Config) {
		c.InitialBackoff = d
	}
}

// WithBackoffMultiplier sets the backoff multiplier
func WithBackoffMultiplier(m float64) Option {
	return func(c *Config) {
		c.BackoffMultiplier = m
	}
}

// WithOnRetry sets the retry callback function
func WithOnRetry(fn OnRetryFunc) Option {
	return func(c *Config) {
		c.OnRetry = fn
	}
}

// WithClock sets the clock used for sleeping between attempts
func WithClock(clk clock.Clock) Option {
	return func(c *Config) {
		c.Clock = clk
	}
}

// WithConfig replaces the whole configuration. Options given after it still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

func noopOnRetry(int, error) {}

// Do calls fn until it returns nil or a give-up condition is reached.
//
// On give-up the returned error is a *GiveUpError wrapping the last error of fn.
// A configuration that fails Validate is returned before fn is ever called.
func Do(fn func() error, opts ...Option) error {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	onRetry := cfg.OnRetry
	if onRetry == nil {
		onRetry = noopOnRetry
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}

	retries := 0
	backoff := cfg.InitialBackoff

	for {
		err := fn()
		if err == nil {
			return nil
		}

		retries++
		if retries > cfg.MaxRetries {
			return &GiveUpError{
				Reason:     ReasonMaxRetries,
				MaxRetries: cfg.MaxRetries,
				MaxSleep:   cfg.MaxSleep,
				Retries:    retries,
				Err:        err,
			}
		}
		if exceedsMaxSleep(cfg, retries) {
			return &GiveUpError{
				Reason:     ReasonMaxSleep,
				MaxRetries: cfg.MaxRetries,
				MaxSleep:   cfg.MaxSleep,
				Retries:    retries,
				Err:        err,
			}
		}

		onRetry(retries, err)
		clk.Sleep(backoff)
		backoff = nextBackoff(backoff, cfg.BackoffMultiplier)
	}
}

// DoWithData executes the function with retries and returns its result
func DoWithData[T any](fn func() (T, error), opts ...Option) (T, error) {
	var result T
	err := Do(func() error {
		var err error
		result, err = fn()
		return err
	}, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
