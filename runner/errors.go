package runner

import "errors"

var (
	ErrNoTracers       = errors.New("runner: no tracers attached")
	ErrBatchNotDefined = errors.New("runner: no ray batch defined")
	ErrSolidNotDefined = errors.New("runner: no solid defined")
	ErrInterrupted     = errors.New("runner: interrupted while tracing")
)
