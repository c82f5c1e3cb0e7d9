package retry

import "log/slog"

// LogRetries returns an OnRetryFunc that logs every retry at warn level.
// A nil logger uses slog.Default().
func LogRetries(logger *slog.Logger) OnRetryFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(retry int, err error) {
		logger.Warn("operation failed, retrying", "retry", retry, "error", err)
	}
}

// ChainOnRetry runs each non-nil hook in order
func ChainOnRetry(hooks ...OnRetryFunc) OnRetryFunc {
	return func(retry int, err error) {
		for _, hook := range hooks {
			if hook != nil {
				hook(retry, err)
			}
		}
	}
}
