package fetch

import "errors"

var (
	// ErrInvalidArgument reports a request value of the wrong type or range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotConfigured reports a terminal operation on a request without urls.
	ErrNotConfigured = errors.New("url(s) not set")

	// ErrSkipped marks a job that never ran because its batch was aborted.
	ErrSkipped = errors.New("skipped")
)
