// Package retry re-invokes a failing operation with exponential or constant
// backoff until it succeeds or a give-up limit is reached.
//
// # Basic Usage
//
// Use Do to retry a function until it succeeds:
//
//	err := retry.Do(func() error {
//	    return someOperation()
//	}, retry.WithMaxRetries(5))
//
// # Configuration Options
//
// Customize retry behavior with options:
//
//	err := retry.Do(fn,
//	    retry.WithMaxRetries(10),
//	    retry.WithMaxSleep(2*time.Minute),
//	    retry.WithInitialBackoff(500*time.Millisecond),
//	    retry.WithBackoffMultiplier(2),
//	)
//
// A multiplier of 1 sleeps InitialBackoff between every attempt. A multiplier
// below 1 is rejected.
//
// # Give-up Limits
//
// The loop stops with a *GiveUpError when either:
//
//   - the number of retries would exceed MaxRetries, or
//   - sleeping once more would push the cumulative sleep past MaxSleep.
//
// The last operation error stays reachable through errors.Is and errors.As:
//
//	err := retry.Do(fn)
//	if errors.Is(err, retry.ErrMaxSleepExceeded) {
//	    // slept too long
//	}
//	if errors.Is(err, io.ErrUnexpectedEOF) {
//	    // underlying failure
//	}
//
// # Retry Callbacks
//
// Get notified before each retry:
//
//	err := retry.Do(fn,
//	    retry.WithOnRetry(func(retry int, err error) {
//	        log.Printf("retry %d after: %v", retry, err)
//	    }),
//	)
//
// LogRetries builds such a callback on top of a *slog.Logger.
//
// # Returning Values
//
// Use DoWithData to retry and return a value:
//
//	result, err := retry.DoWithData(func() (string, error) {
//	    return fetchData()
//	})
//
// # Testing
//
// Sleeping goes through a k8s.io/utils/clock.Clock. Tests can pass a fake
// clock with WithClock so no real time elapses.
package retry
