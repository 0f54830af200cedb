package domain

import "errors"

// Fetch failure taxonomy. Wrapped with fmt.Errorf("...: %w", ...) at the
// failure site and checked with errors.Is by callers. There is no internal
// recovery: any of these fails the whole snapshot fetch.
var (
	// ErrNetwork covers DNS, connection, and non-2xx status failures.
	ErrNetwork = errors.New("fear & greed upstream request failed")

	// ErrTimeout covers requests that exceeded the configured bound.
	ErrTimeout = errors.New("fear & greed upstream request timed out")

	// ErrMalformedData covers invalid JSON and missing or mistyped
	// required fields. No partial snapshot is ever returned.
	ErrMalformedData = errors.New("malformed fear & greed data")
)
