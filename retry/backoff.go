package retry

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// projectedSleep returns, in seconds, the cumulative sleep the loop would have
// spent once it sleeps for the given retry.
//
// The exponential branch is initial*multiplier^retries - 1, with the one second
// subtracted after the product. Give-up thresholds depend on this exact value.
func projectedSleep(initial time.Duration, multiplier float64, retries int) float64 {
	if multiplier == 1 {
		return initial.Seconds() * float64(retries)
	}
	return initial.Seconds()*math.Pow(multiplier, float64(retries)) - 1
}

// exceedsMaxSleep reports whether sleeping once more after the given retry goes past maxSleep
func exceedsMaxSleep(cfg *Config, retries int) bool {
	return projectedSleep(cfg.InitialBackoff, cfg.BackoffMultiplier, retries) > cfg.MaxSleep.Seconds()
}

// nextBackoff grows the backoff by multiplier, saturating at the largest
// duration. Negative results clamp to zero.
func nextBackoff(current time.Duration, multiplier float64) time.Duration {
	next := float64(current) * multiplier
	switch {
	case math.IsNaN(next) || next >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	case next < 0:
		return 0
	}
	return time.Duration(next)
}

// FormatDuration renders d in clock form: "H:MM:SS", with a ".ffffff"
// microsecond suffix when needed and a "N day(s), " prefix for whole days.
// Negative durations borrow a whole day, so -10s renders as "-1 day, 23:59:50".
func FormatDuration(d time.Duration) string {
	const usPerDay = int64(24 * time.Hour / time.Microsecond)

	us := d.Microseconds()
	days := us / usPerDay
	rem := us % usPerDay
	if rem < 0 {
		days--
		rem += usPerDay
	}

	secs := rem / 1_000_000
	frac := rem % 1_000_000

	var b strings.Builder
	if days != 0 {
		plural := "s"
		if days == 1 || days == -1 {
			plural = ""
		}
		fmt.Fprintf(&b, "%d day%s, ", days, plural)
	}
	fmt.Fprintf(&b, "%d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
	if frac != 0 {
		fmt.Fprintf(&b, ".%06d", frac)
	}
	return b.String()
}
