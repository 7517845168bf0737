package poker

import "errors"

var (
	// ErrNoMatch means no match exists in the requested scope. This is the
	// normal state of a brand-new league, not a system failure, and callers
	// are expected to degrade to an empty result.
	ErrNoMatch = errors.New("no match in scope")

	// ErrStoreUnavailable wraps persistence failures (connection errors,
	// timeouts). Retryable at the caller's discretion.
	ErrStoreUnavailable = errors.New("score store unavailable")
)
