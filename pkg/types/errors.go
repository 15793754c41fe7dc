package types

import "errors"

// ErrMalformedInput marks a source file that is not valid JSON/CSV or lacks an expected field.
var ErrMalformedInput = errors.New("malformed input")

// ErrInvalidInput marks a numeric series the statistics routines cannot summarize.
var ErrInvalidInput = errors.New("invalid input")

var ErrUsage = errors.New("usage error")
