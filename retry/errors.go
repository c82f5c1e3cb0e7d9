package retry

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for retry outcomes
var (
	// ErrInvalidConfiguration indicates the retry configuration was rejected before any attempt
	ErrInvalidConfiguration = errors.New("invalid retry configuration")

	// ErrGiveUp indicates the executor stopped retrying
	ErrGiveUp = errors.New("gave up retrying")

	// ErrMaxRetriesReached indicates the retry-count limit was hit
	ErrMaxRetriesReached = errors.New("max retries reached")

	// ErrMaxSleepExceeded indicates one more sleep would exceed the cumulative sleep limit
	ErrMaxSleepExceeded = errors.New("max sleep would be exceeded")
)

// GiveUpReason tells which limit stopped the retry loop
type GiveUpReason int

const (
	// ReasonMaxRetries means retries exceeded Config.MaxRetries
	ReasonMaxRetries GiveUpReason = iota + 1

	// ReasonMaxSleep means the projected cumulative sleep exceeded Config.MaxSleep
	ReasonMaxSleep
)

func (r GiveUpReason) String() string {
	switch r {
	case ReasonMaxRetries:
		return "max-retries-exceeded"
	case ReasonMaxSleep:
		return "max-sleep-exceeded"
	default:
		return fmt.Sprintf("GiveUpReason(%d)", int(r))
	}
}

// InvalidConfigurationError is returned when a Config fails validation
type InvalidConfigurationError struct {
	Field   string
	Message string
}

func (e *InvalidConfigurationError) Error() string {
	return e.Message
}

func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NewInvalidConfigurationError creates a new InvalidConfigurationError
func NewInvalidConfigurationError(field, message string) *InvalidConfigurationError {
	return &InvalidConfigurationError{
		Field:   field,
		Message: message,
	}
}

// GiveUpError is the terminal error of a retry loop. Err holds the last
// failure returned by the operation.
type GiveUpError struct {
	Reason     GiveUpReason
	MaxRetries int
	MaxSleep   time.Duration
	Retries    int
	Err        error
}

func (e *GiveUpError) Error() string {
	switch e.Reason {
	case ReasonMaxRetries:
		return fmt.Sprintf("max_retries=%d reached", e.MaxRetries)
	case ReasonMaxSleep:
		return fmt.Sprintf("will exceed max_sleep=%s if sleeping once more", FormatDuration(e.MaxSleep))
	default:
		return fmt.Sprintf("gave up after %d retries", e.Retries)
	}
}

func (e *GiveUpError) Unwrap() error {
	return e.Err
}

func (e *GiveUpError) Is(target error) bool {
	switch target {
	case ErrGiveUp:
		return true
	case ErrMaxRetriesReached:
		return e.Reason == ReasonMaxRetries
	case ErrMaxSleepExceeded:
		return e.Reason == ReasonMaxSleep
	}
	return false
}

// IsGiveUp returns true if the error is a give-up error
func IsGiveUp(err error) bool {
	var ge *GiveUpError
	return errors.As(err, &ge)
}

// IsInvalidConfiguration returns true if the error indicates a rejected configuration
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
